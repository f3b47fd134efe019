package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-interview-be/internal/config"
	"ai-interview-be/internal/controller"
	"ai-interview-be/internal/grading"
	"ai-interview-be/internal/handler"
	"ai-interview-be/internal/pkg/logger"
	"ai-interview-be/internal/pkg/mailer"
	"ai-interview-be/internal/repository/memory"
	"ai-interview-be/internal/repository/rediscache"
	"ai-interview-be/internal/repository/unitofwork"
	"ai-interview-be/internal/service"
	"ai-interview-be/internal/websocket"
	"ai-interview-be/pkg/llm/factory"

	pktNats "ai-interview-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	ToolsController    controller.IToolsController
	RealtimeController controller.IRealtimeController

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	// WebSockets & Feed
	FeedHandler  *handler.FeedHandler
	WebSocketHub *websocket.Hub
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	emailService := mailer.NewEmailService(
		cfg.SMTP.Host,
		cfg.SMTP.Port,
		cfg.SMTP.Email,
		cfg.SMTP.Password,
		cfg.SMTP.SenderName,
	)

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)

	// 2.5 Infrastructure
	natsPub, err := pktNats.NewPublisher(cfg.App.NatsURL)
	if err != nil {
		log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
	}

	opt, err := redis.ParseURL(cfg.App.RedisURL)
	if err != nil {
		log.Printf("[WARN] Failed to parse Redis URL: %v. Using direct Addr", err)
		opt = &redis.Options{
			Addr: cfg.App.RedisURL,
		}
	}
	rdb := redis.NewClient(opt)
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Printf("[WARN] Failed to connect to Redis: %v", err)
	}

	contextCache := rediscache.NewContextCache(rdb, sysLogger)
	fallbackRepo := memory.NewContextRepository()

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger("logs/feed.log")
	wsHub := websocket.NewHub(rdb, wsLogger)
	go wsHub.Run()

	// 3. LLM Provider (nil when no credential; rubric grading then runs on
	// the deterministic heuristic)
	llmProvider, err := factory.NewLLMProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		cfg.Ai.OllamaBaseURL,
		cfg.Keys.OpenAI,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	if llmProvider == nil {
		log.Printf("[WARN] No LLM credential configured; rubric grading uses heuristic fallback")
	} else {
		log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)
	}

	// 4. Grading
	gradeTimeout := time.Duration(cfg.Ai.GradeTimeoutSecs) * time.Second
	dispatcher := grading.NewDispatcher(
		grading.NewObjectiveStrategy(grading.DefaultAnswerPolicy{}),
		grading.NewFormulaStrategy(),
		grading.NewRubricStrategy(llmProvider, gradeTimeout, sysLogger),
	)

	// 5. Services
	publisherService := service.NewPublisherService(cfg.App.InteractionTopic, pubSub)
	consumerService := service.NewConsumerService(
		pubSub,
		cfg.App.InteractionTopic,
		uowFactory,
		contextCache,
		wsHub,
		natsPub,
	)

	contextService := service.NewContextService(uowFactory, contextCache, fallbackRepo, sysLogger)
	questionService := service.NewQuestionService(uowFactory, contextService, sysLogger)
	gradingService := service.NewGradingService(uowFactory, dispatcher, sysLogger)
	ratingService := service.NewRatingService(uowFactory, contextService, sysLogger)
	finalizerService := service.NewFinalizerService(uowFactory, contextService, emailService, cfg, sysLogger)
	interactionService := service.NewInteractionService(publisherService, sysLogger)
	realtimeService := service.NewRealtimeService(cfg, sysLogger)

	// 6. Controllers & Handlers
	toolsController := controller.NewToolsController(
		questionService,
		gradingService,
		ratingService,
		finalizerService,
		interactionService,
	)
	realtimeController := controller.NewRealtimeController(realtimeService)
	feedHandler := handler.NewFeedHandler(wsHub, wsLogger)

	return &Container{
		ToolsController:    toolsController,
		RealtimeController: realtimeController,
		ConsumerService:    consumerService,
		FeedHandler:        feedHandler,
		WebSocketHub:       wsHub,
	}
}
