package bootstrap

import (
	"context"
	"fmt"

	"github.com/dhanushgc/HireMind/internal/config"
	"github.com/dhanushgc/HireMind/internal/controller"
	"github.com/dhanushgc/HireMind/internal/handler"
	"github.com/dhanushgc/HireMind/internal/pkg/logger"
	"github.com/dhanushgc/HireMind/internal/repository/contract"
	"github.com/dhanushgc/HireMind/internal/repository/memory"
	"github.com/dhanushgc/HireMind/internal/repository/unitofwork"
	"github.com/dhanushgc/HireMind/internal/service"
	"github.com/dhanushgc/HireMind/internal/websocket"
	"github.com/dhanushgc/HireMind/pkg/interview/aggregator"
	"github.com/dhanushgc/HireMind/pkg/interview/directory"
	"github.com/dhanushgc/HireMind/pkg/interview/evaluation"
	interviewEvents "github.com/dhanushgc/HireMind/pkg/interview/events"
	"github.com/dhanushgc/HireMind/pkg/interview/followup"
	"github.com/dhanushgc/HireMind/pkg/interview/generation"
	"github.com/dhanushgc/HireMind/pkg/interview/ingestion"
	"github.com/dhanushgc/HireMind/pkg/interview/store"
	"github.com/dhanushgc/HireMind/pkg/llm/factory"
	"github.com/dhanushgc/HireMind/pkg/lock"

	pktNats "github.com/dhanushgc/HireMind/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	Logger logger.ILogger

	// Controllers
	InterviewController controller.IInterviewController
	InterviewWsHandler  *handler.InterviewWsHandler

	InterviewService service.IInterviewService

	// Background Services (started by Start)
	ConsumerService     service.IEvaluationConsumerService
	NotificationService *service.NotificationService
	WebSocketHub        *websocket.Hub

	pubSub  *gochannel.GoChannel
	natsPub *pktNats.Publisher
	natsSub *pktNats.Subscriber
	rdb     *redis.Client
}

// NewContainer wires every dependency once. db may be nil, in which case
// sessions and snippets live in memory.
func NewContainer(db *gorm.DB, cfg *config.Config) (*Container, error) {
	ctx := context.Background()

	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	sessionRepo, snippetRepo := repositories(db, cfg, sysLogger)

	// 2. Infrastructure
	rdb := connectRedis(ctx, cfg.App.RedisURL, sysLogger)

	var locker lock.Locker = lock.NewKeyedMutex()
	if cfg.App.LockBackend == "redis" {
		if rdb != nil {
			locker = lock.NewRedisLocker(rdb, 0)
			sysLogger.Info("Bootstrap", "Using Redis session locks", nil)
		} else {
			sysLogger.Warn("Bootstrap", "LOCK_BACKEND=redis but Redis is unavailable, using in-process locks", nil)
		}
	}

	var natsPub *pktNats.Publisher
	var natsSub *pktNats.Subscriber
	if cfg.App.NatsURL != "" {
		var err error
		natsPub, err = pktNats.NewPublisher(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Publisher", map[string]interface{}{"error": err.Error()})
		}
		natsSub, err = pktNats.NewSubscriber(cfg.App.NatsURL, sysLogger)
		if err != nil {
			sysLogger.Warn("Bootstrap", "Failed to connect to NATS Subscriber", map[string]interface{}{"error": err.Error()})
		}
	}

	// WebSocket Hub
	wsLogger := logger.NewIsolatedLogger(cfg.App.HubLogFilePath)
	wsHub := websocket.NewHub(rdb, wsLogger)
	notifService := service.NewNotificationService(natsSub, wsHub, wsLogger) // Hub implements NotificationDelivery

	eventPublisher := interviewEvents.NewPublisher(eventBus(natsPub, natsSub, sysLogger), notifService, sysLogger)

	llmProvider, err := factory.NewLLMProvider(ctx, ProviderConfig(cfg))
	if err != nil {
		return nil, fmt.Errorf("initialize LLM provider: %w", err)
	}
	sysLogger.Info("Bootstrap", "Using LLM Provider", map[string]interface{}{
		"provider": cfg.Ai.LLMProvider,
		"model":    cfg.Ai.LLMModel,
	})

	// 3. Evaluation queue
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: int64(cfg.Worker.MaxConcurrent)},
		watermill.NewStdLogger(false, false),
	)

	// 4. Domain
	sessionStore := store.NewSessionStore(sessionRepo, locker, sysLogger)
	counters := service.NewEvaluationCounters()
	publisherService := service.NewPublisherService(pubSub, cfg.Worker.EvaluationTopic, counters)

	consumerService := service.NewEvaluationConsumerService(
		pubSub,
		cfg.Worker.EvaluationTopic,
		evaluation.NewClient(cfg.Services.AdaptiveEngineURL, cfg.Services.EvaluationTimeout, sysLogger),
		followup.NewPolicy(sessionStore, sysLogger),
		eventPublisher,
		counters,
		cfg.Worker.MaxConcurrent,
		sysLogger,
	)

	companies := directory.NewResolver(
		cfg.Services.CompanyID,
		directory.NewClient(cfg.Services.CompanyDirectoryURL, cfg.Services.DirectoryTimeout, sysLogger),
	)

	generator := generation.NewPipeline(
		aggregator.NewContextAggregator(snippetRepo, cfg.Services.ContextTimeout, sysLogger),
		llmProvider,
		sessionStore,
		companies,
		cfg.Ai.GenerationTimeout,
		sysLogger,
	)

	interviewService := service.NewInterviewService(
		sessionStore,
		generator,
		ingestion.NewPipeline(sessionStore, publisherService, sysLogger),
		eventPublisher,
		consumerService,
		sysLogger,
	)

	// 5. Controllers
	return &Container{
		Logger:              sysLogger,
		InterviewController: controller.NewInterviewController(interviewService, cfg.App.JwtSecret),
		InterviewWsHandler:  handler.NewInterviewWsHandler(wsHub, cfg.App.JwtSecret, wsLogger),
		InterviewService:    interviewService,
		ConsumerService:     consumerService,
		NotificationService: notifService,
		WebSocketHub:        wsHub,
		pubSub:              pubSub,
		natsPub:             natsPub,
		natsSub:             natsSub,
		rdb:                 rdb,
	}, nil
}

// Start launches the background workers. They stop when ctx is done.
func (c *Container) Start(ctx context.Context) error {
	go c.WebSocketHub.Run(ctx)
	c.NotificationService.Start(ctx)

	if err := c.ConsumerService.Consume(ctx); err != nil {
		return fmt.Errorf("start evaluation consumer: %w", err)
	}
	return nil
}

func (c *Container) Close() {
	if c.natsSub != nil {
		c.natsSub.Close()
	}
	if c.natsPub != nil {
		c.natsPub.Close()
	}
	if err := c.pubSub.Close(); err != nil {
		c.Logger.Warn("Bootstrap", "Failed to close evaluation queue", map[string]interface{}{"error": err.Error()})
	}
	if c.rdb != nil {
		_ = c.rdb.Close()
	}
	_ = c.Logger.Sync()
}

// ProviderConfig picks the credentials that belong to the configured provider.
func ProviderConfig(cfg *config.Config) factory.ProviderConfig {
	pc := factory.ProviderConfig{
		Provider:  cfg.Ai.LLMProvider,
		ModelName: cfg.Ai.LLMModel,
	}

	switch cfg.Ai.LLMProvider {
	case factory.ProviderGemini:
		pc.APIKey = cfg.Keys.GoogleGemini
	case factory.ProviderOllama:
		pc.BaseURL = cfg.Ai.OllamaBaseURL
	default:
		pc.APIKey = cfg.Keys.OpenAI
		pc.BaseURL = cfg.Keys.OpenAIBaseURL
	}
	return pc
}

// eventBus returns NATS only when both sides connected. Otherwise nothing
// would feed the hub, so events go straight to local delivery. The result is
// a nil interface in that case, never a typed nil.
func eventBus(pub *pktNats.Publisher, sub *pktNats.Subscriber, log logger.ILogger) interviewEvents.Bus {
	if pub == nil || sub == nil {
		if pub != nil || sub != nil {
			log.Warn("Bootstrap", "NATS only partially connected, delivering events locally", map[string]interface{}{
				"publisher":  pub != nil,
				"subscriber": sub != nil,
			})
		}
		return nil
	}
	return pub
}

func repositories(db *gorm.DB, cfg *config.Config, log logger.ILogger) (contract.InterviewSessionRepository, contract.ContextSnippetRepository) {
	if db == nil {
		log.Warn("Bootstrap", "No database configured, sessions and context snippets are in memory", nil)
		return memory.NewSessionRepository(), memory.NewSnippetRepository()
	}

	uow := unitofwork.NewRepositoryFactory(db).NewUnitOfWork(context.Background())
	if cfg.App.SessionStore == "memory" {
		log.Info("Bootstrap", "Using in-memory session store", nil)
		return memory.NewSessionRepository(), uow.ContextSnippetRepository()
	}
	return uow.InterviewSessionRepository(), uow.ContextSnippetRepository()
}

// connectRedis returns nil when Redis is not configured or not reachable.
func connectRedis(ctx context.Context, url string, log logger.ILogger) *redis.Client {
	if url == "" {
		return nil
	}

	opt, err := redis.ParseURL(url)
	if err != nil {
		log.Warn("Bootstrap", "Failed to parse Redis URL, using direct Addr", map[string]interface{}{"error": err.Error()})
		opt = &redis.Options{Addr: url}
	}

	rdb := redis.NewClient(opt)
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("Bootstrap", "Failed to connect to Redis, running single-instance", map[string]interface{}{"error": err.Error()})
		_ = rdb.Close()
		return nil
	}
	return rdb
}
