package bootstrap

import (
	"log"

	"trupilot-gateway/internal/config"
	"trupilot-gateway/internal/constant"
	"trupilot-gateway/internal/controller"
	"trupilot-gateway/internal/pkg/logger"
	"trupilot-gateway/internal/repository/contract"
	"trupilot-gateway/internal/repository/memory"
	"trupilot-gateway/internal/repository/redisrepo"
	"trupilot-gateway/internal/service"
	"trupilot-gateway/pkg/assistant"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type Container struct {
	// Controllers
	ChatController     controller.IChatController
	DocumentController controller.IDocumentController

	// Background Services (Exposed for main.go to run)
	AuditService service.IAuditService
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	assistantClient := assistant.New(cfg.Assistant.BaseURL, cfg.Assistant.Timeout)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 3. Session Storage
	// In-memory is the default; Redis takes over when REDIS_URL is set
	// so multiple gateway instances can share view state.
	var sessionRepo contract.ISessionRepository
	if cfg.App.RedisURL != "" {
		redisRepo, err := redisrepo.NewSessionRepository(cfg.App.RedisURL, cfg.Chat.SessionTTL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v. Falling back to in-memory sessions", err)
			sessionRepo = memory.NewSessionRepository(cfg.Chat.SessionTTL)
		} else {
			log.Printf("[INFO] Using Session Store: REDIS")
			sessionRepo = redisRepo
		}
	} else {
		log.Printf("[INFO] Using Session Store: IN-MEMORY")
		sessionRepo = memory.NewSessionRepository(cfg.Chat.SessionTTL)
	}

	// 4. Services
	publisherService := service.NewPublisherService(pubSub, constant.ActivityTopic)
	auditService := service.NewAuditService(pubSub, constant.ActivityTopic, sysLogger)

	chatService := service.NewChatService(
		assistantClient,
		sessionRepo,
		publisherService,
		sysLogger,
		cfg.Chat.FlowDelay,
	)
	documentService := service.NewDocumentService(
		assistantClient,
		sessionRepo,
		publisherService,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		ChatController:     controller.NewChatController(chatService),
		DocumentController: controller.NewDocumentController(documentService),

		AuditService: auditService,
	}
}
