package api

import (
	"Parley/internal/api/middleware"
	"Parley/internal/pkg/logger"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRouter(group *HandlersGroup) *gin.Engine {
	r := gin.New()
	_ = r.SetTrustedProxies([]string{"localhost"})

	// TraceId & Logger & CORS
	r.Use(middleware.TraceMiddleware())
	r.Use(middleware.AuditMiddleware())
	r.Use(middleware.CORSMiddleware())
	logger.SetupGin(r)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/ping", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{
				"Code":    200,
				"Message": "pong",
				"Data":    nil,
			})
		})

		authGroup := apiGroup.Group("/auth")
		{
			authGroup.POST("/register", group.AuthHandler.Register)
			authGroup.POST("/login", group.AuthHandler.Login)

			loggedGroup := authGroup.Group("")
			loggedGroup.Use(middleware.AuthMiddleware())
			{
				loggedGroup.POST("/logout", group.AuthHandler.Logout)
				loggedGroup.GET("/me", group.AuthHandler.GetUserInfo)
			}
		}

		workspaceGroup := apiGroup.Group("/workspace")
		workspaceGroup.Use(middleware.AuthMiddleware())
		{
			workspaceGroup.POST("", group.WorkspaceHandler.Create)
			workspaceGroup.GET("", group.WorkspaceHandler.List)
			workspaceGroup.GET("/:workspace_id", group.WorkspaceHandler.Info)
			workspaceGroup.PUT("/:workspace_id", group.WorkspaceHandler.Rename)
			workspaceGroup.DELETE("/:workspace_id", group.WorkspaceHandler.Delete)
			workspaceGroup.POST("/:workspace_id/join-code", group.WorkspaceHandler.ResetJoinCode)
			workspaceGroup.POST("/:workspace_id/join", group.WorkspaceHandler.Join)
			workspaceGroup.GET("/:workspace_id/members", group.WorkspaceHandler.Members)
			workspaceGroup.GET("/:workspace_id/member", group.WorkspaceHandler.CurrentMember)
			workspaceGroup.GET("/:workspace_id/channels", group.ChannelHandler.List)
		}

		memberGroup := apiGroup.Group("/member")
		memberGroup.Use(middleware.AuthMiddleware())
		{
			memberGroup.PUT("/:member_id/role", group.WorkspaceHandler.UpdateMemberRole)
			memberGroup.DELETE("/:member_id", group.WorkspaceHandler.RemoveMember)
		}

		channelGroup := apiGroup.Group("/channel")
		channelGroup.Use(middleware.AuthMiddleware())
		{
			channelGroup.POST("", group.ChannelHandler.Create)
			channelGroup.GET("/:channel_id", group.ChannelHandler.Info)
			channelGroup.PUT("/:channel_id", group.ChannelHandler.Rename)
			channelGroup.DELETE("/:channel_id", group.ChannelHandler.Delete)
		}

		conversationGroup := apiGroup.Group("/conversation")
		conversationGroup.Use(middleware.AuthMiddleware())
		{
			conversationGroup.POST("", group.ConversationHandler.GetOrCreate)
			conversationGroup.GET("/:conversation_id", group.ConversationHandler.Info)
		}

		messageGroup := apiGroup.Group("/message")
		messageGroup.Use(middleware.AuthMiddleware())
		{
			messageGroup.GET("", group.MessageHandler.List)
			messageGroup.POST("", group.MessageHandler.Create)
			messageGroup.GET("/:message_id", group.MessageHandler.Info)
			messageGroup.PUT("/:message_id", group.MessageHandler.Update)
			messageGroup.DELETE("/:message_id", group.MessageHandler.Delete)
			messageGroup.POST("/:message_id/reaction", group.MessageHandler.ToggleReaction)
		}

		mediaGroup := apiGroup.Group("/media")
		mediaGroup.Use(middleware.AuthMiddleware())
		{
			mediaGroup.POST("/upload", group.MediaHandler.Upload)
		}
	}

	return r
}
