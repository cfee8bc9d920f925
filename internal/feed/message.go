package feed

import "time"

// Status 消息生命周期状态
type Status string

const (
	StatusSending Status = "sending" // 本地已插入，等待服务端确认
	StatusSent    Status = "sent"    // 服务端已确认
	StatusFailed  Status = "failed"  // 创建请求失败
)

// Reaction 单个表情的计数项：表情值 + 按加入顺序排列的成员 ID 列表
type Reaction struct {
	Value     string   `json:"value"`
	MemberIDs []uint64 `json:"member_ids"`
}

// ReplyBrief 线程回复摘要
type ReplyBrief struct {
	Count         int    `json:"count"`
	LastName      string `json:"last_name"`
	LastImage     string `json:"last_image"`
	LastTimestamp int64  `json:"last_timestamp"`
}

// Message 消息视图模型
// MemberName 在创建时快照，成员被移出工作区后仍可展示
type Message struct {
	ID              string     `json:"id"`
	WorkspaceID     uint64     `json:"workspace_id"`
	MemberID        uint64     `json:"member_id"`
	MemberName      string     `json:"member_name"`
	Body            string     `json:"body,omitempty"`
	Image           string     `json:"image,omitempty"`
	ChannelID       uint64     `json:"channel_id,omitempty"`
	ConversationID  uint64     `json:"conversation_id,omitempty"`
	ParentMessageID string     `json:"parent_message_id,omitempty"`
	Reactions       []Reaction `json:"reactions"`
	Replies         ReplyBrief `json:"replies"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at,omitempty"`
	Status          Status     `json:"status"`
}

const dateKeyLayout = "2006-01-02"

// DateKey 返回消息创建时间对应的日历日期键
func (m *Message) DateKey() string {
	return m.CreatedAt.Format(dateKeyLayout)
}
