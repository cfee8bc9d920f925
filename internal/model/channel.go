package model

import (
	"time"
)

type Channel struct {
	ID          uint64 `gorm:"primaryKey"`
	WorkspaceID uint64 `gorm:"not null;index:idx_workspace" json:"workspace_id"`
	Name        string `gorm:"type:varchar(64);not null" json:"name"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Channel) TableName() string {
	return "channels"
}
