package model

import (
	"time"
)

// Conversation 工作区内两名成员之间的私聊会话
// MemberKey 形如 "小ID_大ID"，保证同一对成员只会有一条会话
type Conversation struct {
	ID          uint64 `gorm:"primaryKey"`
	WorkspaceID uint64 `gorm:"not null;uniqueIndex:idx_workspace_member_key" json:"workspace_id"`
	MemberOneID uint64 `gorm:"not null" json:"member_one_id"`
	MemberTwoID uint64 `gorm:"not null" json:"member_two_id"`
	MemberKey   string `gorm:"type:varchar(48);not null;uniqueIndex:idx_workspace_member_key" json:"-"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (Conversation) TableName() string {
	return "conversations"
}
