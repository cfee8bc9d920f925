package api

import "Parley/internal/api/handler"

// HandlersGroup 封装了所有已初始化的 Handler 实例
type HandlersGroup struct {
	AuthHandler         *handler.AuthHandler
	WorkspaceHandler    *handler.WorkspaceHandler
	ChannelHandler      *handler.ChannelHandler
	ConversationHandler *handler.ConversationHandler
	MessageHandler      *handler.MessageHandler
	MediaHandler        *handler.MediaHandler
}
