package app

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/threadly/server/internal/module/auth"
	"github.com/threadly/server/internal/module/user"
	"github.com/threadly/server/internal/module/workspace"
	sharedcache "github.com/threadly/server/internal/shared/cache"
	"github.com/threadly/server/internal/shared/config"
	"github.com/threadly/server/internal/shared/database"
	"github.com/threadly/server/internal/shared/logger"
	"github.com/threadly/server/internal/shared/metrics"
	"github.com/threadly/server/internal/shared/middleware"
)

// App represents the application.
type App struct {
	config    *config.Config
	db        *gorm.DB
	redis     redis.UniversalClient
	router    *gin.Engine
	logger    *logger.Logger
	zapLogger *zap.Logger
	metrics   *metrics.Metrics

	authHandler      *auth.Handler
	workspaceHandler *workspace.Handler
}

// New creates a new application instance.
func New(cfg *config.Config) (*App, error) {
	log := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})

	zapLog, err := logger.NewZapLogger(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
	})
	if err != nil {
		return nil, fmt.Errorf("init zap logger: %w", err)
	}

	app := &App{
		config:    cfg,
		logger:    log,
		zapLogger: zapLog,
		metrics:   metrics.New("threadly"),
	}

	db, err := database.New(&cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("init database: %w", err)
	}
	if err := database.Migrate(db,
		&user.User{},
		&workspace.Workspace{},
		&workspace.Channel{},
		&workspace.Member{},
	); err != nil {
		return nil, err
	}
	app.db = db

	// Redis is optional; without it the basic-info cache is disabled.
	if cfg.Redis.Address != "" {
		redisClient, err := sharedcache.NewRedisClient(&cfg.Redis)
		if err != nil {
			log.Warn("redis connection failed, continuing without cache", logger.Err(err))
		} else {
			app.redis = redisClient
		}
	}

	app.initModules()
	app.router = app.setupRouter()

	return app, nil
}

// initModules initializes all application modules.
func (a *App) initModules() {
	userRepo := user.NewRepository(a.db)

	jwtManager := auth.NewJWTManager(&auth.JWTConfig{
		Secret:            a.config.Auth.JWTSecret,
		AccessTokenExpiry: a.config.Auth.AccessTokenExpiry,
		Issuer:            a.config.Auth.Issuer,
	})
	authService := auth.NewService(userRepo, jwtManager, a.zapLogger.Named("auth"))
	a.authHandler = auth.NewHandler(authService)

	workspaceRepo := workspace.NewRepository(a.db)
	guard := workspace.NewGuard(workspaceRepo)
	infoCache := workspace.NewBasicInfoCache(a.redis)
	workspaceService := workspace.NewService(workspaceRepo, guard, infoCache, a.zapLogger.Named("workspace"))
	a.workspaceHandler = workspace.NewHandler(workspaceService)
}

// setupRouter creates and configures the Gin router.
func (a *App) setupRouter() *gin.Engine {
	if a.config.Log.Level == "debug" {
		gin.SetMode(gin.DebugMode)
	} else {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	r.Use(middleware.Recovery(a.logger))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logging(a.logger))
	r.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	r.Use(middleware.Metrics(a.metrics))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := r.Group("/api/v1")
	a.authHandler.RegisterRoutes(v1)
	a.workspaceHandler.RegisterRoutes(v1, a.authHandler.RequireAuth(), a.authHandler.OptionalAuth())

	return r
}

// Router returns the HTTP router.
func (a *App) Router() *gin.Engine {
	return a.router
}

// Stop releases application resources.
func (a *App) Stop() {
	if a.redis != nil {
		if err := sharedcache.Close(a.redis); err != nil {
			a.logger.Warn("close redis", logger.Err(err))
		}
	}
	if a.db != nil {
		if err := database.Close(a.db); err != nil {
			a.logger.Warn("close database", logger.Err(err))
		}
	}
	_ = a.zapLogger.Sync()
}
