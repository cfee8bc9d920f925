package wire

import (
	"Parley/internal/api"
	"Parley/internal/api/config"
	"Parley/internal/api/handler"
	"Parley/internal/job"
	"Parley/internal/pkg/cron"
	pkgmongo "Parley/internal/pkg/mongo"
	"Parley/internal/repository"
	"Parley/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"gorm.io/gorm"
)

// ApplicationContainer 封装了应用运行所需的所有顶级组件
type ApplicationContainer struct {
	Router  *gin.Engine
	DB      *gorm.DB
	CronMgr *cron.Manager
}

func BuildApplication(db *gorm.DB, mongoDB *mongo.Database, cfg *config.Config) (*ApplicationContainer, error) {
	userRepo := repository.NewUserRepo(db)
	workspaceRepo := repository.NewWorkspaceRepo(db)
	memberRepo := repository.NewMemberRepo(db)
	channelRepo := repository.NewChannelRepo(db)
	conversationRepo := repository.NewConversationRepo(db)
	messageRepo := pkgmongo.NewMessageRepo(mongoDB)

	authService := service.NewAuthService(userRepo)
	workspaceService := service.NewWorkspaceService(workspaceRepo, memberRepo, messageRepo)
	channelService := service.NewChannelService(channelRepo, memberRepo, messageRepo)
	conversationService := service.NewConversationService(conversationRepo, memberRepo)
	messageService := service.NewMessageService(messageRepo, memberRepo, channelRepo, conversationRepo)

	handlers := &api.HandlersGroup{
		AuthHandler:         handler.NewAuthHandler(authService),
		WorkspaceHandler:    handler.NewWorkspaceHandler(workspaceService),
		ChannelHandler:      handler.NewChannelHandler(channelService),
		ConversationHandler: handler.NewConversationHandler(conversationService),
		MessageHandler:      handler.NewMessageHandler(messageService),
		MediaHandler:        handler.NewMediaHandler(),
	}

	router := api.SetupRouter(handlers)

	cronMgr := cron.NewCronManager(job.NewMediaCleanupJob(messageRepo))

	return &ApplicationContainer{
		Router:  router,
		DB:      db,
		CronMgr: cronMgr,
	}, nil
}
