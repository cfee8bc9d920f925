package model

import (
	"time"
)

// Member 用户在某工作区内的成员身份
type Member struct {
	ID          uint64 `gorm:"primaryKey"`
	UserID      uint64 `gorm:"not null;uniqueIndex:idx_user_workspace" json:"user_id"`
	WorkspaceID uint64 `gorm:"not null;uniqueIndex:idx_user_workspace;index:idx_workspace" json:"workspace_id"`
	Role        string `gorm:"type:varchar(16);not null;default:'member'" json:"role"`
	CreatedAt   time.Time
	UpdatedAt   time.Time

	User User `gorm:"foreignKey:UserID;references:ID"`
}

func (Member) TableName() string {
	return "members"
}
