package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/dired/backend/internal/api/http"
	"github.com/GriffinCanCode/dired/backend/internal/api/middleware"
	"github.com/GriffinCanCode/dired/backend/internal/events"
	"github.com/GriffinCanCode/dired/backend/internal/infrastructure/config"
	"github.com/GriffinCanCode/dired/backend/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/dired/backend/internal/logging"
	"github.com/GriffinCanCode/dired/backend/internal/providers/explorer"
	"github.com/GriffinCanCode/dired/backend/internal/service"
	"github.com/GriffinCanCode/dired/backend/internal/vfs"
	"github.com/GriffinCanCode/dired/backend/internal/ws"
)

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	registry *service.Registry
	provider *explorer.Provider
	hub      *events.Hub
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		logger = logging.NewDefault()
	}

	logger.Info("Initializing dired backend",
		zap.String("port", cfg.Server.Port),
		zap.String("root", cfg.Explorer.Root),
	)

	metrics := monitoring.NewMetrics()
	hub := events.NewHub()

	provider := explorer.NewProvider(vfs.NewLocal(), cfg.Explorer, hub, logger).
		WithMetrics(metrics)

	registry := service.NewRegistry()
	if err := registry.Register(provider); err != nil {
		return nil, err
	}
	logger.Info("Registered service providers", zap.Any("stats", registry.Stats()))

	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	router.Use(gin.Recovery())
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig()))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		router.Use(middleware.RateLimit(middleware.RateLimitConfig{
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			Burst:             cfg.RateLimit.Burst,
		}))
	}

	handlers := apihttp.NewHandlers(registry, provider)
	wsHandler := ws.NewHandler(hub, metrics, logger)

	router.GET("/", handlers.Root)
	router.GET("/health", handlers.Health)

	// Service management
	router.GET("/services", handlers.ListServices)
	router.POST("/services/execute", handlers.ExecuteService)

	// Directory browsing
	router.GET("/browse", handlers.Browse)
	router.POST("/browse/commit", handlers.Commit)

	// Clipboard
	router.GET("/clipboard", handlers.ClipboardStatus)
	router.POST("/clipboard/mark", handlers.ClipboardMark)
	router.POST("/clipboard/paste", handlers.ClipboardPaste)
	router.POST("/clipboard/clear", handlers.ClipboardClear)

	// Search
	router.GET("/search", handlers.Search)

	// WebSocket
	router.GET("/stream", wsHandler.HandleConnection)

	// Metrics
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	logger.Info("Server initialized successfully")

	return &Server{
		router:   router,
		registry: registry,
		provider: provider,
		hub:      hub,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Run starts the HTTP server
func (s *Server) Run() error {
	addr := s.config.Server.Host + ":" + s.config.Server.Port
	s.logger.Info("Starting HTTP server", zap.String("addr", addr))
	return s.router.Run(addr)
}

// Close gracefully shuts down the server
func (s *Server) Close() error {
	s.logger.Info("Shutting down server...")

	if err := s.provider.Close(); err != nil {
		s.logger.Warn("Failed to close explorer provider", zap.Error(err))
	}

	s.logger.Sync()
	return nil
}
