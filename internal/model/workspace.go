package model

import (
	"time"
)

type Workspace struct {
	ID        uint64 `gorm:"primaryKey"`
	Name      string `gorm:"type:varchar(64);not null"`
	UserID    uint64 `gorm:"not null;index:idx_owner" json:"user_id"`
	JoinCode  string `gorm:"type:varchar(16);not null" json:"join_code"`
	CreatedAt time.Time
	UpdatedAt time.Time

	// 关联关系
	Owner    User      `gorm:"foreignKey:UserID;references:ID"`
	Members  []Member  `gorm:"foreignKey:WorkspaceID;references:ID"`
	Channels []Channel `gorm:"foreignKey:WorkspaceID;references:ID"`
}

func (Workspace) TableName() string {
	return "workspaces"
}
