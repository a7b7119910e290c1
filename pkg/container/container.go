package container

import (
	"context"
	"fmt"
	"time"

	"sidehustle-backend/internal/config"
	infraCache "sidehustle-backend/internal/infrastructure/cache"
	"sidehustle-backend/internal/infrastructure/database"
	"sidehustle-backend/pkg/cache"
	"sidehustle-backend/pkg/jwt"
	"sidehustle-backend/pkg/logger"

	// User domain
	userHandler "sidehustle-backend/internal/domains/user/handler"
	userRepo "sidehustle-backend/internal/domains/user/repository"
	userService "sidehustle-backend/internal/domains/user/service"

	// Post domain
	postHandler "sidehustle-backend/internal/domains/post/handler"
	postRepo "sidehustle-backend/internal/domains/post/repository"
	postService "sidehustle-backend/internal/domains/post/service"

	// Project domain
	projectHandler "sidehustle-backend/internal/domains/project/handler"
	projectRepo "sidehustle-backend/internal/domains/project/repository"
	projectService "sidehustle-backend/internal/domains/project/service"
)

const cachePrefix = "sidehustle:"

// ========================================
// CONTAINER STRUCT
// ========================================

// Container chứa TẤT CẢ dependencies của application
type Container struct {
	// ========================================
	// INFRASTRUCTURE LAYER
	// ========================================
	Config     *config.Config
	DB         *database.PostgresDB // nil khi APP_STORE=memory
	Cache      cache.Cache
	JWTManager *jwt.Manager

	// ========================================
	// REPOSITORY LAYER (DATA ACCESS)
	// ========================================
	UserRepo    userRepo.Repository
	PostRepo    postRepo.Repository
	ProjectRepo projectRepo.Repository

	// ========================================
	// SERVICE LAYER (BUSINESS LOGIC)
	// ========================================
	UserService    userService.Service
	PostService    postService.Service
	ProjectService projectService.Service

	// ========================================
	// HANDLER LAYER (HTTP)
	// ========================================
	UserHandler    *userHandler.UserHandler
	PostHandler    *postHandler.PostHandler
	ProjectHandler *projectHandler.ProjectHandler
}

// NewContainer load config từ environment rồi build toàn bộ dependency graph
func NewContainer() (*Container, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger.Init(cfg.App.Environment, cfg.Log.Level)
	return Build(cfg)
}

// Build tạo container từ config có sẵn
//
// QUAN TRỌNG: Thứ tự initialization:
// 1. Infrastructure (DB, Cache, JWT) - phụ thuộc Config
// 2. Repositories - phụ thuộc Infrastructure
// 3. Services - phụ thuộc Repositories
// 4. Handlers - phụ thuộc Services
func Build(cfg *config.Config) (*Container, error) {
	logger.Info("🔧 Initializing DI Container...", map[string]interface{}{
		"environment": cfg.App.Environment,
		"store":       cfg.App.Store,
	})

	c := &Container{Config: cfg}

	// ========================================
	// STEP 1: INITIALIZE DATABASE
	// ========================================
	if cfg.App.Store == config.StorePostgres {
		if err := c.initDatabase(); err != nil {
			return nil, err
		}
	} else {
		logger.Warn("⚠️  Using in-memory store, data is lost on restart", nil)
	}

	// ========================================
	// STEP 2: INITIALIZE CACHE
	// ========================================
	c.initCache()

	c.JWTManager = jwt.NewManager(cfg.JWT.Secret, cfg.JWT.TokenExpiry)

	// ========================================
	// STEP 3-5: REPOSITORIES, SERVICES, HANDLERS
	// ========================================
	c.initRepositories()
	c.initServices()
	c.initHandlers()

	logger.Info("🎉 DI Container initialized successfully", nil)
	return c, nil
}

// ========================================
// PRIVATE INITIALIZATION METHODS
// ========================================

func (c *Container) initDatabase() error {
	dbConfig, err := config.LoadDatabaseConfig()
	if err != nil {
		return fmt.Errorf("failed to load database config: %w", err)
	}

	if c.Config.App.AutoMigrate {
		logger.Info("📜 Running database migrations...", nil)
		if err := database.Migrate(dbConfig); err != nil {
			return fmt.Errorf("failed to run migrations: %w", err)
		}
	}

	logger.Info("🗄️  Connecting to PostgreSQL...", map[string]interface{}{"host": dbConfig.Host, "db": dbConfig.DBName})
	db := database.NewPostgresDB(dbConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := db.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := db.HealthCheck(ctx); err != nil {
		db.Close()
		return fmt.Errorf("database health check failed: %w", err)
	}

	c.DB = db
	logger.Info("✅ Database connected", nil)
	return nil
}

// initCache: Redis failure không critical - fallback sang in-process cache
func (c *Container) initCache() {
	if !c.Config.Redis.Enabled {
		logger.Debug("Redis disabled, using in-memory cache")
		c.Cache = infraCache.NewMemoryCache()
		return
	}

	logger.Info("🔴 Connecting to Redis...", map[string]interface{}{"host": c.Config.Redis.Host})
	rc := infraCache.NewRedisCache(c.Config.Redis.Host, c.Config.Redis.Password, c.Config.Redis.DB, cachePrefix)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := rc.Connect(ctx); err != nil {
		logger.Warn("⚠️  Redis connection failed (non-critical), using in-memory cache", map[string]interface{}{"error": err.Error()})
		_ = rc.Close()
		c.Cache = infraCache.NewMemoryCache()
		return
	}

	c.Cache = rc
	logger.Info("✅ Redis connected", nil)
}

func (c *Container) initRepositories() {
	if c.DB == nil {
		logger.Debug("Wiring in-memory repositories")
		c.UserRepo = userRepo.NewMemoryRepository()
		c.PostRepo = postRepo.NewMemoryRepository()
		c.ProjectRepo = projectRepo.NewMemoryRepository()
		return
	}

	pool := c.DB.Pool
	c.UserRepo = userRepo.NewPostgresRepository(pool, c.Cache, c.Config.Redis.UserTTL)
	c.PostRepo = postRepo.NewPostgresRepository(pool)
	c.ProjectRepo = projectRepo.NewPostgresRepository(pool)
}

func (c *Container) initServices() {
	c.UserService = userService.NewUserService(c.UserRepo, c.JWTManager)

	// Cross-domain dependency: author/owner được resolve qua user repository
	c.PostService = postService.NewPostService(c.PostRepo, c.UserRepo)
	c.ProjectService = projectService.NewProjectService(c.ProjectRepo, c.UserRepo)
}

func (c *Container) initHandlers() {
	c.UserHandler = userHandler.NewUserHandler(c.UserService)
	c.PostHandler = postHandler.NewPostHandler(c.PostService)
	c.ProjectHandler = projectHandler.NewProjectHandler(c.ProjectService)
}

// ========================================
// LIFECYCLE
// ========================================

// Cleanup dọn dẹp resources khi shutdown
func (c *Container) Cleanup() {
	logger.Info("🧹 Cleaning up container resources...", nil)

	if c.DB != nil {
		c.DB.Close()
	}

	if rc, ok := c.Cache.(*infraCache.RedisCache); ok {
		if err := rc.Close(); err != nil {
			logger.Error("⚠️  Failed to close Redis", err)
		}
	}

	logger.Info("✅ Container cleanup completed", nil)
}
