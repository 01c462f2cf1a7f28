package bootstrap

import (
	"github.com/bigcv/neo-livechat/internal/config"
	"github.com/bigcv/neo-livechat/internal/controller"
	"github.com/bigcv/neo-livechat/internal/handler"
	"github.com/bigcv/neo-livechat/internal/pkg/logger"
	"github.com/bigcv/neo-livechat/internal/repository/memory"
	"github.com/bigcv/neo-livechat/internal/repository/unitofwork"
	"github.com/bigcv/neo-livechat/internal/service"
	"github.com/bigcv/neo-livechat/internal/websocket"
	"github.com/bigcv/neo-livechat/pkg/bot"
	"github.com/bigcv/neo-livechat/pkg/events"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	AuthController controller.IAuthController
	ChatController controller.IChatController

	// Background Services (Exposed for main.go to run)
	AnalyticsConsumer service.IAnalyticsConsumer

	// WebSockets
	ChatStreamHandler *handler.ChatStreamHandler
	WebSocketHub      *websocket.Hub

	// Shared
	AuthService service.IAuthService
	Logger      logger.ILogger
	DB          *gorm.DB
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	publisher := events.NewPublisher(pubSub)

	// 3. Response Engine
	topicStore := memory.NewTopicRepository()
	responder := bot.NewResponder(topicStore, bot.WithTimezone(cfg.Chat.Timezone))

	// 4. Services
	chatStore := service.NewChatStoreService(uowFactory, publisher, sysLogger)
	chatService := service.NewChatService(chatStore, responder, sysLogger)
	authService := service.NewAuthService(uowFactory, cfg.Auth.JWTSecret)
	analyticsConsumer := service.NewAnalyticsConsumerService(pubSub, uowFactory, sysLogger)

	// 5. WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/chat_stream.log")
	wsHub := websocket.NewHub(wsLogger)
	go wsHub.Run()

	chatStreamHandler := handler.NewChatStreamHandler(chatStore, responder, wsHub, wsLogger)

	return &Container{
		AuthController:    controller.NewAuthController(authService),
		ChatController:    controller.NewChatController(chatService),
		AnalyticsConsumer: analyticsConsumer,
		ChatStreamHandler: chatStreamHandler,
		WebSocketHub:      wsHub,
		AuthService:       authService,
		Logger:            sysLogger,
		DB:                db,
	}
}
