package mongo

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const messageCollection = "messages"

// Reaction 嵌入在消息文档中的表情计数项
type Reaction struct {
	Value     string   `bson:"value" json:"value"`
	MemberIDs []uint64 `bson:"member_ids" json:"member_ids"` // 按加入顺序排列，成员至多出现一次
}

// Message MongoDB 消息文档模型
// ChannelID / ConversationID / ParentMessageID 三者恰有一个非零：
// 线程回复只携带 ParentMessageID，频道或会话归属从父消息继承
type Message struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	WorkspaceID     uint64             `bson:"workspace_id" json:"workspaceId"`
	MemberID        uint64             `bson:"member_id" json:"memberId"`
	MemberName      string             `bson:"member_name" json:"memberName"` // 创建时快照，成员被移出后仍可展示
	Body            string             `bson:"body,omitempty" json:"body"`
	Image           string             `bson:"image,omitempty" json:"image"` // MinIO 对象键
	ChannelID       uint64             `bson:"channel_id,omitempty" json:"channelId"`
	ConversationID  uint64             `bson:"conversation_id,omitempty" json:"conversationId"`
	ParentMessageID primitive.ObjectID `bson:"parent_message_id,omitempty" json:"parentMessageId"`
	Reactions       []Reaction         `bson:"reactions" json:"reactions"`
	CreatedAt       time.Time          `bson:"created_at" json:"createdAt"`
	UpdatedAt       *time.Time         `bson:"updated_at,omitempty" json:"updatedAt"`
}

// ScopeFilter 消息归属过滤条件，三个字段恰有一个非零
type ScopeFilter struct {
	ChannelID       uint64
	ConversationID  uint64
	ParentMessageID primitive.ObjectID
}
