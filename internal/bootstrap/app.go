// Package bootstrap loads configuration, wires every component together
// and owns the HTTP server lifecycle.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	httpHandler "movie-watchlist/internal/handler/http"
	gormpersistence "movie-watchlist/internal/infra/persistence/gorm"
	"movie-watchlist/internal/infra/setup"
	redisstate "movie-watchlist/internal/infra/state/redis"
	"movie-watchlist/internal/middleware"
	"movie-watchlist/internal/service"
)

// Config holds everything loaded from the environment.
type Config struct {
	DBUser        string
	DBPassword    string
	DBHost        string
	DBPort        string
	DBName        string
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	SessionSecret string
	SessionTTL    time.Duration
	ServerPort    string
	LogLevel      string
	AppEnv        string
	KeyPrefix     string
	TemplateGlob  string

	// RequireAuthForMutations selects between the two app variants: with
	// the login gate on catalog mutations, or without any gate.
	RequireAuthForMutations bool

	// First-run seeding credentials. Optional; when absent the admin
	// command is the only way to create the account.
	AdminUsername string
	AdminPassword string

	LoginRateLimitMax    int
	LoginRateLimitWindow time.Duration
}

// LoadConfig reads configuration from the environment, loading .env first
// when present.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load() // .env is optional

	cfg := &Config{
		DBUser:        os.Getenv("DB_USER"),
		DBPassword:    os.Getenv("DB_PASSWORD"),
		DBHost:        os.Getenv("DB_HOST"),
		DBPort:        os.Getenv("DB_PORT"),
		DBName:        os.Getenv("DB_NAME"),
		RedisAddr:     os.Getenv("REDIS_ADDR"),
		RedisPassword: os.Getenv("REDIS_PASSWORD"),
		SessionSecret: os.Getenv("SESSION_SECRET"),
		ServerPort:    os.Getenv("SERVER_PORT"),
		LogLevel:      os.Getenv("LOG_LEVEL"),
		AppEnv:        os.Getenv("APP_ENV"),
		KeyPrefix:     os.Getenv("REDIS_KEY_PREFIX"),
		TemplateGlob:  os.Getenv("TEMPLATE_GLOB"),
		AdminUsername: os.Getenv("ADMIN_USERNAME"),
		AdminPassword: os.Getenv("ADMIN_PASSWORD"),

		SessionTTL:           24 * time.Hour,
		LoginRateLimitMax:    10,
		LoginRateLimitWindow: time.Minute,
	}

	cfg.RedisDB, _ = strconv.Atoi(os.Getenv("REDIS_DB"))

	// AUTH_REQUIRED defaults to on; only an explicit "false"/"0" selects
	// the gate-free variant.
	cfg.RequireAuthForMutations = true
	if v := os.Getenv("AUTH_REQUIRED"); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			cfg.RequireAuthForMutations = parsed
		}
	}
	if v := os.Getenv("SESSION_TTL_HOURS"); v != "" {
		if hours, err := strconv.Atoi(v); err == nil && hours > 0 {
			cfg.SessionTTL = time.Duration(hours) * time.Hour
		}
	}

	if cfg.ServerPort == "" {
		cfg.ServerPort = "8080"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.AppEnv == "" {
		cfg.AppEnv = "development"
	}
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "wl:"
	}
	if cfg.TemplateGlob == "" {
		cfg.TemplateGlob = "web/templates/*.html"
	}
	if cfg.RedisAddr == "" {
		return nil, fmt.Errorf("environment variable REDIS_ADDR must be set")
	}
	if cfg.SessionSecret == "" {
		return nil, fmt.Errorf("environment variable SESSION_SECRET must be set")
	}

	if _, err := logrus.ParseLevel(cfg.LogLevel); err != nil {
		logrus.Warnf("Invalid LOG_LEVEL '%s', using default 'info'", cfg.LogLevel)
		cfg.LogLevel = "info"
	}

	return cfg, nil
}

// App holds the assembled application.
type App struct {
	Config      *Config
	Log         *logrus.Logger
	DB          *gorm.DB
	RedisClient *redis.Client
	HTTPServer  *http.Server
}

// NewApp loads config and wires every component.
func NewApp() (*App, error) {
	cfg, err := LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return nil, err
	}

	log := NewLogger(cfg)
	log.Info("Configuration loaded")

	// Infrastructure.
	db, err := setup.InitDB(cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		return nil, fmt.Errorf("failed to init DB: %w", err)
	}
	log.Info("Database connected")

	if err := setup.MigrateDB(db); err != nil {
		return nil, fmt.Errorf("failed to migrate DB: %w", err)
	}

	redisClient, err := setup.InitRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
	if err != nil {
		return nil, fmt.Errorf("failed to init Redis: %w", err)
	}
	log.Info("Redis connected")

	// Repositories.
	userRepo := gormpersistence.NewGormUserRepository(db)
	movieRepo := gormpersistence.NewGormMovieRepository(db)
	sessionRepo := redisstate.NewRedisSessionRepository(redisClient, cfg.KeyPrefix)

	// First-run seeding, gated on configured credentials.
	if err := setup.SeedAdmin(context.Background(), userRepo, cfg.AdminUsername, cfg.AdminPassword); err != nil {
		return nil, fmt.Errorf("failed to seed admin user: %w", err)
	}

	// Services.
	authService := service.NewAuthService(userRepo)
	catalogService := service.NewCatalogService(movieRepo)
	sessionService, err := service.NewSessionService(sessionRepo, cfg.SessionSecret, cfg.SessionTTL)
	if err != nil {
		return nil, fmt.Errorf("failed to create SessionService: %w", err)
	}

	// Handlers.
	renderer := httpHandler.NewRenderer(authService, sessionService)
	authHandler := httpHandler.NewAuthHandler(authService, sessionService, renderer)
	catalogHandler := httpHandler.NewCatalogHandler(catalogService, sessionService, renderer, cfg.RequireAuthForMutations)

	// Router.
	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(LoggerMiddleware(log))
	router.Use(middleware.Session(sessionService))
	router.LoadHTMLGlob(cfg.TemplateGlob)

	SetupRoutes(router, cfg, redisClient, sessionService, authHandler, catalogHandler, renderer)
	log.Info("Router setup complete")

	httpServer := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &App{
		Config:      cfg,
		Log:         log,
		DB:          db,
		RedisClient: redisClient,
		HTTPServer:  httpServer,
	}, nil
}

// NewLogger configures the process logger from the config.
func NewLogger(cfg *Config) *logrus.Logger {
	log := logrus.New()
	if cfg.AppEnv == "production" {
		log.SetFormatter(&logrus.JSONFormatter{TimestampFormat: time.RFC3339Nano})
	} else {
		log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true, ForceColors: true})
	}
	level, _ := logrus.ParseLevel(cfg.LogLevel) // validated in LoadConfig
	log.SetLevel(level)
	log.SetOutput(os.Stdout)
	return log
}

// SetupRoutes registers every route on the engine. Split out from NewApp
// so handler tests can assemble the same routing table.
func SetupRoutes(router *gin.Engine, cfg *Config, redisClient *redis.Client,
	sessions *service.SessionService,
	authHandler *httpHandler.AuthHandler, catalogHandler *httpHandler.CatalogHandler,
	renderer *httpHandler.Renderer) {

	// gate wraps catalog mutations with the login check when this variant
	// of the app runs with the gate enabled.
	gate := func(h gin.HandlerFunc) []gin.HandlerFunc {
		if cfg.RequireAuthForMutations {
			return []gin.HandlerFunc{middleware.RequireLogin(sessions), h}
		}
		return []gin.HandlerFunc{h}
	}

	router.GET("/", catalogHandler.Index)
	// POST / does its own auth check so anonymous posts bounce to "/".
	router.POST("/", catalogHandler.CreateMovie)

	login := router.Group("/login")
	if redisClient != nil {
		login.Use(middleware.RateLimit(redisClient, cfg.LoginRateLimitMax, cfg.LoginRateLimitWindow))
	}
	login.GET("", authHandler.ShowLogin)
	login.POST("", authHandler.Login)

	// Account pages operate on the logged-in user, so they stay gated in
	// both variants; the flag only opens the catalog mutations.
	loginRequired := middleware.RequireLogin(sessions)
	router.GET("/logout", loginRequired, authHandler.Logout)
	router.GET("/settings", loginRequired, authHandler.ShowSettings)
	router.POST("/settings", loginRequired, authHandler.UpdateSettings)

	router.GET("/edit/:id", gate(catalogHandler.ShowEdit)...)
	router.POST("/edit/:id", gate(catalogHandler.UpdateMovie)...)
	router.POST("/movie/delete/:id", gate(catalogHandler.DeleteMovie)...)

	router.NoRoute(renderer.NotFound)
}

// Start launches the HTTP server in the background.
func (a *App) Start() {
	go func() {
		a.Log.Infof("HTTP server listening on %s", a.HTTPServer.Addr)
		if err := a.HTTPServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.Log.Fatalf("Failed to start HTTP server: %v", err)
		}
	}()
}

// Shutdown drains the HTTP server and closes the Redis connection.
func (a *App) Shutdown() {
	a.Log.Info("Shutting down application...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := a.HTTPServer.Shutdown(ctx); err != nil {
		a.Log.Errorf("Error shutting down HTTP server: %v", err)
	} else {
		a.Log.Info("HTTP server shut down gracefully")
	}

	if a.RedisClient != nil {
		if err := a.RedisClient.Close(); err != nil {
			a.Log.Errorf("Error closing Redis connection: %v", err)
		}
	}

	a.Log.Info("Application shutdown complete")
}

// LoggerMiddleware logs every request with status, latency and client IP.
func LoggerMiddleware(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		startTime := time.Now()
		c.Next()
		latency := time.Since(startTime)
		statusCode := c.Writer.Status()
		path := c.Request.URL.Path
		if c.Request.URL.RawQuery != "" {
			path = path + "?" + c.Request.URL.RawQuery
		}

		entry := log.WithFields(logrus.Fields{
			"status_code": statusCode,
			"latency_ms":  latency.Milliseconds(),
			"client_ip":   c.ClientIP(),
			"method":      c.Request.Method,
			"path":        path,
		})

		if errs := c.Errors.ByType(gin.ErrorTypePrivate).String(); errs != "" {
			entry.Error(errs)
		} else if statusCode >= 500 {
			entry.Error("Server error")
		} else if statusCode >= 400 {
			entry.Warn("Client error")
		} else {
			entry.Info("Request handled")
		}
	}
}
