package container

import (
	"context"
	"fmt"
	"time"

	"gamestore-backend/internal/config"
	gameHandler "gamestore-backend/internal/domains/game/handler"
	"gamestore-backend/internal/domains/game/model"
	gameRepo "gamestore-backend/internal/domains/game/repository"
	gameService "gamestore-backend/internal/domains/game/service"
	infraCache "gamestore-backend/internal/infrastructure/cache"
	"gamestore-backend/internal/infrastructure/database"
	"gamestore-backend/internal/metrics"
	"gamestore-backend/pkg/jwt"
	"gamestore-backend/pkg/logger"

	"github.com/rs/zerolog/log"
)

// Container chứa tất cả dependencies của application.
// Thứ tự khởi tạo: Config -> Infrastructure -> Repository -> Service -> Handler
type Container struct {
	// Infrastructure
	Config     *config.Config
	DB         *database.PostgresDB // nil khi REPOSITORY_TYPE=memory
	Redis      *infraCache.RedisCache
	JWTManager *jwt.Manager
	Metrics    *metrics.Recorder

	// Game domain
	GameRepo    gameRepo.RepositoryInterface
	GameService gameService.ServiceInterface
	GameHandler *gameHandler.GameHandler
}

// NewContainer tạo toàn bộ dependency graph.
// Lỗi config được wrap nguyên vẹn để caller dùng errors.As với *config.ConfigurationError
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return NewContainerWithConfig(context.Background(), cfg)
}

// NewContainerWithConfig builds the graph from an already loaded config
func NewContainerWithConfig(ctx context.Context, cfg *config.Config) (*Container, error) {
	logger.Init(cfg.App.Environment, cfg.App.LogLevel)

	c := &Container{Config: cfg}
	log.Info().Str("env", cfg.App.Environment).Str("repository", cfg.Store.Type).Msg("🔧 Initializing DI Container...")

	if err := c.initRepository(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initCache(ctx)

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.Audience)
	c.Metrics = metrics.NewRecorder("gamestore")

	c.GameService = gameService.NewDispatcher(c.GameRepo)
	c.GameHandler = gameHandler.NewGameHandler(c.GameService)

	log.Info().Msg("✅ DI Container initialized successfully")
	return c, nil
}

func (c *Container) seed() []model.Game {
	if !c.Config.Store.SeedData {
		return nil
	}
	return model.SeedGames()
}

// initRepository chọn backend theo REPOSITORY_TYPE
func (c *Container) initRepository(ctx context.Context) error {
	switch c.Config.Store.Type {
	case config.RepositoryPostgres:
		db := database.NewPostgresDB(c.Config.DBConfig())
		if err := db.Connect(ctx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		c.DB = db

		if err := database.Migrate(ctx, db.Pool, c.seed()); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		c.GameRepo = gameRepo.NewPostgresRepository(db.Pool)
		log.Info().Msg("✅ PostgreSQL game repository ready")
	default:
		c.GameRepo = gameRepo.NewMemoryRepository(c.seed()...)
		log.Info().Msg("✅ In-memory game repository ready")
	}
	return nil
}

// initCache - cache là non-critical: Redis lỗi thì app vẫn chạy không cache
func (c *Container) initCache(ctx context.Context) {
	if !c.Config.Cache.Enabled {
		return
	}

	redisCache := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB)
	connectCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := redisCache.Connect(connectCtx); err != nil {
		log.Warn().Err(err).Msg("⚠️  Redis unavailable, game cache disabled")
		_ = redisCache.Close()
		return
	}

	c.Redis = redisCache
	c.GameRepo = gameRepo.NewCachedRepository(c.GameRepo, redisCache, c.Config.Cache.TTL)
	log.Info().Dur("ttl", c.Config.Cache.TTL).Msg("✅ Redis game cache enabled")
}

// Cleanup đóng connections; gọi khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up resources...")

	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			log.Error().Err(err).Msg("Failed to close Redis")
		}
	}
	if c.DB != nil {
		c.DB.Close()
	}

	log.Info().Msg("✅ Cleanup completed")
}
