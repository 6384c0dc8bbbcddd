package bootstrap

import (
	"context"
	"log"

	"blog-publishing-be/internal/config"
	"blog-publishing-be/internal/controller"
	"blog-publishing-be/internal/handler"
	"blog-publishing-be/internal/metrics"
	"blog-publishing-be/internal/pkg/logger"
	"blog-publishing-be/internal/repository/contract"
	"blog-publishing-be/internal/repository/memory"
	"blog-publishing-be/internal/repository/rediscache"
	"blog-publishing-be/internal/repository/unitofwork"
	"blog-publishing-be/internal/service"
	"blog-publishing-be/internal/websocket"

	pktNats "blog-publishing-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type Container struct {
	// Controllers
	PostController controller.IPostController
	FeedHandler    *handler.FeedHandler

	// Background Services (Exposed for main.go to run)
	ConsumerService service.IConsumerService

	Metrics *metrics.Metrics
	Logger  logger.ILogger

	closers []func()
}

func NewContainer(db *gorm.DB, cfg *config.Config) *Container {
	// 1. Core Facades
	uowFactory := unitofwork.NewRepositoryFactory(db)
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.IsProduction())
	appMetrics := metrics.New()

	c := &Container{
		Metrics: appMetrics,
		Logger:  sysLogger,
	}

	// 2. Event Bus
	watermillLogger := watermill.NewStdLogger(false, false)
	pubSub := gochannel.NewGoChannel(
		gochannel.Config{},
		watermillLogger,
	)
	c.closers = append(c.closers, func() { _ = pubSub.Close() })

	var natsPublisher service.EventPublisher
	if cfg.Messaging.NatsURL != "" {
		natsPub, err := pktNats.NewPublisher(cfg.Messaging.NatsURL)
		if err != nil {
			log.Printf("[WARN] Failed to connect to NATS Publisher: %v", err)
		} else {
			natsPublisher = natsPub
			c.closers = append(c.closers, natsPub.Close)
		}
	}

	// 3. Render cache
	var rdb *redis.Client
	var renderCache contract.RenderCache
	switch cfg.Cache.Driver {
	case "redis":
		rdb = rediscache.NewClient(cfg.Cache.RedisURL)
		if _, err := rdb.Ping(context.Background()).Result(); err != nil {
			log.Printf("[WARN] Failed to connect to Redis: %v", err)
		}
		renderCache = rediscache.NewRenderCache(rdb, cfg.Cache.TTL)
		c.closers = append(c.closers, func() { _ = rdb.Close() })
	default:
		renderCache = memory.NewRenderCache(cfg.Cache.TTL)
	}

	// 4. Live feed (shares Redis with the cache for cross-instance delivery)
	hubCtx, stopHub := context.WithCancel(context.Background())
	wsHub := websocket.NewHub(rdb, sysLogger)
	go wsHub.Run(hubCtx)
	c.closers = append(c.closers, stopHub)

	// 5. Services
	renderService := service.NewRenderService(renderCache, appMetrics, sysLogger)
	publisherService := service.NewPublisherService(cfg.Messaging.RenderTopic, pubSub)
	c.ConsumerService = service.NewConsumerService(
		pubSub,
		cfg.Messaging.RenderTopic,
		uowFactory,
		renderService,
		sysLogger,
	)

	postService := service.NewPostService(
		uowFactory,
		renderService,
		publisherService,
		service.NewEventFanout(natsPublisher, wsHub),
		appMetrics,
		sysLogger,
	)

	// 6. Controllers
	c.PostController = controller.NewPostController(postService, cfg.App.JwtSecret)
	c.FeedHandler = handler.NewFeedHandler(wsHub, sysLogger)

	return c
}

// Close releases broker and cache connections in reverse order.
func (c *Container) Close() {
	for i := len(c.closers) - 1; i >= 0; i-- {
		c.closers[i]()
	}
	_ = c.Logger.Sync()
}
