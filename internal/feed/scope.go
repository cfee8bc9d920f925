package feed

// ScopeKind 消息列表归属的上下文类型
type ScopeKind int8

const (
	ScopeChannel      ScopeKind = 1 // 频道
	ScopeConversation ScopeKind = 2 // 私聊会话
	ScopeThread       ScopeKind = 3 // 消息线程
)

// Scope 作用域描述符：确定一个消息列表的拉取端点与身份字段
// 三种作用域共用同一套引擎，差异只体现在这里
type Scope struct {
	Kind            ScopeKind
	WorkspaceID     uint64
	ChannelID       uint64
	ConversationID  uint64
	ParentMessageID string
}

// ChannelScope 频道作用域
func ChannelScope(workspaceID, channelID uint64) Scope {
	return Scope{Kind: ScopeChannel, WorkspaceID: workspaceID, ChannelID: channelID}
}

// ConversationScope 私聊作用域，conversationID 为 0 表示会话尚未创建
func ConversationScope(workspaceID, conversationID uint64) Scope {
	return Scope{Kind: ScopeConversation, WorkspaceID: workspaceID, ConversationID: conversationID}
}

// ThreadScope 线程作用域，列出某条消息下的全部回复
func ThreadScope(workspaceID uint64, parentMessageID string) Scope {
	return Scope{Kind: ScopeThread, WorkspaceID: workspaceID, ParentMessageID: parentMessageID}
}

// Ready 作用域身份是否已确定，未确定前不允许拉取
func (s Scope) Ready() bool {
	switch s.Kind {
	case ScopeChannel:
		return s.ChannelID != 0
	case ScopeConversation:
		return s.ConversationID != 0
	case ScopeThread:
		return s.ParentMessageID != ""
	}
	return false
}
