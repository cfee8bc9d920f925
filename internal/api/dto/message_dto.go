package dto

import "time"

type CreateMessageDTO struct {
	WorkspaceID     uint64 `json:"workspace_id" validate:"required"`
	ChannelID       uint64 `json:"channel_id"`
	ConversationID  uint64 `json:"conversation_id"`
	ParentMessageID string `json:"parent_message_id"`
	Body            string `json:"body"`
	Image           string `json:"image"`
}

type UpdateMessageDTO struct {
	Body string `json:"body" validate:"required"`
}

type ToggleReactionDTO struct {
	Value string `json:"value" validate:"required,max=32"`
}

type ReactionDTO struct {
	Value     string   `json:"value"`
	MemberIDs []uint64 `json:"member_ids"`
}

// ReplyBriefDTO 线程回复摘要，挂在父消息上
type ReplyBriefDTO struct {
	Count         int64      `json:"count"`
	LastName      string     `json:"last_name,omitempty"`
	LastImage     string     `json:"last_image,omitempty"`
	LastTimestamp *time.Time `json:"last_timestamp,omitempty"`
}

type MessageDTO struct {
	ID              string         `json:"id"`
	WorkspaceID     uint64         `json:"workspace_id"`
	MemberID        uint64         `json:"member_id"`
	MemberName      string         `json:"member_name"`
	Body            string         `json:"body"`
	Image           string         `json:"image,omitempty"`
	ChannelID       uint64         `json:"channel_id,omitempty"`
	ConversationID  uint64         `json:"conversation_id,omitempty"`
	ParentMessageID string         `json:"parent_message_id,omitempty"`
	Reactions       []ReactionDTO  `json:"reactions"`
	Replies         *ReplyBriefDTO `json:"replies,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       *time.Time     `json:"updated_at,omitempty"`
}

// MessagePageDTO 一页历史消息，最新在前
type MessagePageDTO struct {
	Messages   []*MessageDTO `json:"messages"`
	NextCursor string        `json:"next_cursor,omitempty"`
	IsLast     bool          `json:"is_last"`
}

// MediaUploadResultDTO 上传成功后返回的对象键
type MediaUploadResultDTO struct {
	FileKey string `json:"file_key"`
}
