package container

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/faithmatch-backend/internal/config"
	"github.com/gdugdh24/faithmatch-backend/internal/delivery/http"
	"github.com/gdugdh24/faithmatch-backend/internal/delivery/http/handler"
	"github.com/gdugdh24/faithmatch-backend/internal/delivery/http/middleware"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/database"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/gemini"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/googleauth"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/locks"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/redisstore"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/server"
	"github.com/gdugdh24/faithmatch-backend/internal/infrastructure/storage"
	"github.com/gdugdh24/faithmatch-backend/internal/repository/postgres"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/auth"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/feed"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/match"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/media"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/notification"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/profile"
	"github.com/gdugdh24/faithmatch-backend/internal/usecase/swipe"
	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// Container holds all application dependencies
type Container struct {
	Config *config.Config
	DB     *sqlx.DB
	Redis  *redis.Client
	Server *server.Server
	Gemini *gemini.GeminiClient

	swipes *swipe.SwipeUseCase
	logger *zap.Logger
}

// NewContainer creates a new dependency injection container. Redis and
// Gemini are optional: without Redis locks are process-local and caching
// and publishing are off; without Gemini AI features are off.
func NewContainer(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Container, error) {
	db, err := database.Open(ctx, &cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c := &Container{Config: cfg, DB: db, logger: logger}

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(ctx, db, logger); err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to migrate database: %w", err)
		}
	}

	var (
		locker      swipe.Locker = locks.NewLocalLock()
		publisher   notification.Publisher
		feedCache   feed.CandidateCache
		invalidator swipe.CacheInvalidator
	)
	if cfg.Redis.Enabled() {
		redisClient, err := database.OpenRedis(ctx, &cfg.Redis, logger)
		if err != nil {
			_ = c.Close()
			return nil, fmt.Errorf("failed to initialize redis: %w", err)
		}
		c.Redis = redisClient
		cache := redisstore.NewCandidateCache(redisClient)
		locker = locks.NewRedisLock(redisClient, "faithmatch:")
		publisher = redisstore.NewNotificationPublisher(redisClient)
		feedCache = cache
		invalidator = cache
	} else {
		logger.Warn("redis not configured, using in-process locks without discovery cache")
	}

	var (
		bioGenerator  profile.BioGenerator
		matchEnricher swipe.MatchEnricher
	)
	if cfg.GeminiAPIKey != "" {
		geminiClient, err := gemini.NewGeminiClient(cfg.GeminiAPIKey, logger)
		if err != nil {
			logger.Warn("gemini disabled", zap.Error(err))
		} else {
			c.Gemini = geminiClient
			bioGenerator = geminiClient
			matchEnricher = geminiClient
		}
	}

	photoStore, err := storage.NewLocalPhotoStore(cfg.Storage.Path, cfg.Storage.PublicBaseURL)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize storage: %w", err)
	}

	// Initialize repositories
	userRepo := postgres.NewUserRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	profileRepo := postgres.NewProfileRepository(db)
	swipeRepo := postgres.NewSwipeRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	notificationRepo := postgres.NewNotificationRepository(db)

	// Initialize use cases
	authUseCase := auth.NewAuthUseCase(
		userRepo,
		sessionRepo,
		googleauth.NewVerifier(cfg.Google.ClientID),
		cfg.JWT.AccessSecret,
		time.Duration(cfg.JWT.SessionTTLHours)*time.Hour,
		logger,
	)
	profileUseCase := profile.NewProfileUseCase(profileRepo, userRepo, bioGenerator, invalidator, logger)
	mediaUseCase := media.NewMediaUseCase(photoStore, cfg.Storage.MaxPhotoBytes, logger)
	feedUseCase := feed.NewFeedUseCase(profileRepo, swipeRepo, feedCache, cfg.Discovery.CacheTTL, cfg.Discovery.Limit, logger)
	notificationUseCase := notification.NewNotificationUseCase(notificationRepo, publisher, logger)
	c.swipes = swipe.NewSwipeUseCase(
		swipeRepo,
		matchRepo,
		profileRepo,
		locker,
		cfg.Swipe.LockTTL,
		notificationUseCase,
		invalidator,
		matchEnricher,
		logger,
	)
	matchUseCase := match.NewMatchUseCase(matchRepo, profileRepo, logger)

	router := http.NewRouter(
		handler.NewAuthHandler(authUseCase),
		handler.NewProfileHandler(profileUseCase),
		handler.NewMediaHandler(mediaUseCase, cfg.Storage.MaxPhotoBytes),
		handler.NewDiscoverHandler(feedUseCase),
		handler.NewSwipeHandler(c.swipes),
		handler.NewMatchHandler(matchUseCase),
		handler.NewNotificationHandler(notificationUseCase),
		middleware.NewAuthMiddleware(authUseCase),
		photoStore.Dir(),
		logger,
	)
	engine, err := router.Setup()
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to set up routes: %w", err)
	}

	c.Server = server.NewServer(&cfg.Server, engine, logger)
	return c, nil
}

// Close waits for background match enrichment and closes all connections.
func (c *Container) Close() error {
	if c.swipes != nil {
		c.swipes.Wait()
	}

	var errs []error
	if c.Gemini != nil {
		if err := c.Gemini.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close gemini: %w", err))
		}
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close redis: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
