package dto

import "time"

type RegisterDTO struct {
	Name     string `json:"name" validate:"required,min=1,max=64"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6,max=64"`
}

type LoginDTO struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UserDTO struct {
	ID        uint64     `json:"id"`
	Name      string     `json:"name"`
	Email     string     `json:"email"`
	Image     string     `json:"image,omitempty"`
	CreatedAt *time.Time `json:"created_at,omitempty"`
}

type LoginResultDTO struct {
	Token string  `json:"token"`
	User  UserDTO `json:"user"`
}
