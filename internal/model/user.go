package model

import (
	"time"
)

type User struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(64);not null"`
	Email     string `gorm:"type:varchar(128);uniqueIndex:idx_email;not null"`
	Password  string `gorm:"type:varchar(255);not null"`
	Image     string `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Members []Member `gorm:"foreignKey:UserID;references:ID"`
}

func (User) TableName() string {
	return "users"
}
