package container

import (
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/rs/zerolog/log"

	"book-manage/internal/config"
	infraCache "book-manage/internal/infrastructure/cache"
	"book-manage/internal/infrastructure/database"
	"book-manage/internal/infrastructure/i18n"
	"book-manage/internal/shared/view"
	"book-manage/pkg/cache"
	dbtx "book-manage/pkg/database"
	"book-manage/pkg/jwt"

	"book-manage/internal/domains/book/audit"
	bookHandler "book-manage/internal/domains/book/handler"
	bookRepo "book-manage/internal/domains/book/repository"
	bookService "book-manage/internal/domains/book/service"

	userHandler "book-manage/internal/domains/user/handler"
	userRepo "book-manage/internal/domains/user/repository"
	userService "book-manage/internal/domains/user/service"
)

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
// Struct này là "root" của dependency graph
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil khi APP_STORE=memory
	Cache      cache.Cache
	TxManager  dbtx.TxManager
	JWTManager *jwt.Manager
	I18n       *i18n.Catalog
	Templates  *template.Template

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	BookRepo bookRepo.Repository
	UserRepo userRepo.UserRepository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	BookService bookService.ServiceInterface
	AuthService userService.AuthService

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	BookHandler *bookHandler.Handler
	AuthHandler *userHandler.AuthHandler
}

// ========================================
// CONSTRUCTOR: BUILD CONTAINER
// ========================================

// NewContainer loads configuration from the environment and builds the
// dependency graph.
func NewContainer() (*Container, error) {
	log.Info().Msg("📋 Loading configuration...")

	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	log.Info().Str("environment", cfg.App.Environment).Str("store", cfg.App.Store).Msg("✅ Config loaded")

	return Build(context.Background(), cfg)
}

// Build tạo và initialize toàn bộ dependency graph từ cfg.
//
// Thứ tự initialization:
// 1. Infrastructure (DB, Cache, templates)
// 2. Repositories - phụ thuộc Infrastructure
// 3. Services - phụ thuộc Repositories
// 4. Handlers - phụ thuộc Services
// 5. Seed users
func Build(ctx context.Context, cfg *config.Config) (*Container, error) {
	log.Info().Msg("🔧 Initializing DI Container...")

	c := &Container{Config: cfg}

	if err := c.initInfrastructure(ctx); err != nil {
		c.Cleanup()
		return nil, err
	}

	c.initRepositories()
	log.Info().Msg("✅ Repositories initialized")

	c.initServices()
	log.Info().Msg("✅ Services initialized")

	c.initHandlers()
	log.Info().Msg("✅ Handlers initialized")

	if err := c.seedUsers(ctx); err != nil {
		c.Cleanup()
		return nil, fmt.Errorf("failed to seed users: %w", err)
	}

	log.Info().Msg("🎉 DI Container initialized successfully")
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initInfrastructure(ctx context.Context) error {
	cfg := c.Config

	// ----------------------------------------
	// DATABASE
	// ----------------------------------------
	if cfg.App.Store == config.StorePostgres {
		log.Info().Msg("🗄️  Connecting to PostgreSQL...")

		dbConfig, err := config.LoadDatabaseConfig()
		if err != nil {
			return fmt.Errorf("failed to load database config: %w", err)
		}

		if cfg.App.Migrate {
			migrateCtx, cancel := context.WithTimeout(ctx, 60*time.Second)
			err := database.Migrate(migrateCtx, dbConfig.DSN())
			cancel()
			if err != nil {
				return fmt.Errorf("failed to migrate database: %w", err)
			}
			log.Info().Msg("✅ Migrations applied")
		}

		db := database.NewPostgresDB(dbConfig)
		connectCtx, cancel := context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
		if err := db.Connect(connectCtx); err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}

		c.DB = db
		c.TxManager = dbtx.NewTxManager(db.Pool)
		log.Info().Msg("✅ Database connected")
	} else {
		c.TxManager = dbtx.NoopTxManager{}
		log.Warn().Msg("⚠️  Using in-memory store, data is lost on restart")
	}

	// ----------------------------------------
	// CACHE
	// ----------------------------------------
	log.Info().Msg("🔴 Connecting to Redis...")
	redisCache := infraCache.NewRedisCache(cfg.Redis.Host, cfg.Redis.Password, cfg.Redis.DB, cfg.Redis.Prefix)
	if rc, ok := redisCache.(*infraCache.RedisCache); ok {
		if err := rc.Connect(ctx); err != nil {
			// Redis failure không critical - log warning và continue
			log.Warn().Err(err).Msg("⚠️  Redis connection failed (non-critical)")
		} else {
			log.Info().Msg("✅ Redis connected")
		}
	}
	c.Cache = redisCache

	// ----------------------------------------
	// SESSION, I18N, VIEWS
	// ----------------------------------------
	c.JWTManager = jwt.NewManager(cfg.Session.Secret, cfg.Session.TTL)
	c.I18n = i18n.New(cfg.I18n.DefaultLanguage)

	tmpl, err := view.Templates()
	if err != nil {
		return fmt.Errorf("failed to parse templates: %w", err)
	}
	c.Templates = tmpl

	return nil
}

func (c *Container) initRepositories() {
	if c.DB != nil {
		c.BookRepo = bookRepo.NewPostgresRepository(c.DB.Pool)
		c.UserRepo = userRepo.NewUserRepository(c.DB.Pool)
		return
	}
	c.BookRepo = bookRepo.NewMemoryRepository()
	c.UserRepo = userRepo.NewMemoryUserRepository()
}

func (c *Container) initServices() {
	c.BookService = bookService.NewService(c.BookRepo, c.TxManager, audit.NewStamper())

	throttle := userService.NewLoginThrottle(c.Cache, c.Config.Session.MaxFailedLogins, c.Config.Session.LockoutWindow)
	c.AuthService = userService.NewAuthService(c.UserRepo, c.JWTManager, c.Cache, throttle)
}

func (c *Container) initHandlers() {
	c.BookHandler = bookHandler.NewHandler(c.BookService)
	c.AuthHandler = userHandler.NewAuthHandler(c.AuthService, userHandler.CookieConfig{
		Name:   c.Config.Session.CookieName,
		Secure: c.Config.Session.CookieSecure,
	})
}

func (c *Container) seedUsers(ctx context.Context) error {
	for _, u := range c.Config.Seed.Users {
		if err := c.AuthService.EnsureUser(ctx, u.Username, u.Password, u.Authority); err != nil {
			return fmt.Errorf("seed user %s: %w", u.Username, err)
		}
	}
	return nil
}

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	log.Info().Msg("🧹 Cleaning up container resources...")

	if c.DB != nil {
		c.DB.Close()
		log.Info().Msg("✅ Database connections closed")
	}

	if c.Cache != nil {
		if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
			if err := rc.Close(); err != nil {
				log.Warn().Err(err).Msg("⚠️  Failed to close Redis")
			} else {
				log.Info().Msg("✅ Redis connections closed")
			}
		}
	}

	log.Info().Msg("✅ Container cleanup completed")
}
