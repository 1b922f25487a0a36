// File: internal/app/server.go
package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	ginprometheus "github.com/zsais/go-gin-prometheus"
	"go.uber.org/zap"

	"salehunt_backend/internal/announcement"
	"salehunt_backend/internal/auth"
	"salehunt_backend/internal/authstate"
	"salehunt_backend/internal/client"
	"salehunt_backend/internal/config"
	"salehunt_backend/internal/dashboard"
	"salehunt_backend/internal/guard"
	"salehunt_backend/internal/jobs"
	"salehunt_backend/internal/middleware"
	"salehunt_backend/internal/negotiation"
	"salehunt_backend/internal/onboarding"
	"salehunt_backend/internal/profile"
	"salehunt_backend/internal/proposal"
	"salehunt_backend/internal/session"
	"salehunt_backend/internal/shared"
	"salehunt_backend/internal/tag"
	"salehunt_backend/internal/workspace"
)

// Server struct holds the dependencies for the HTTP server.
type Server struct {
	httpServer *http.Server
	router     *gin.Engine
	cfg        *config.Config
	logger     *zap.Logger

	reindexJob *jobs.ProposalReindexJob
}

// NewServer assembles the router, wires every handler under /api/v1 and
// returns the HTTP server wrapper.
func NewServer(
	cfg *config.Config,
	logger *zap.Logger,
	verifier shared.TokenVerifier,
	revocations session.RevocationService,
	profiles shared.ProfileService,
	registry *authstate.Registry,
	authHandler *auth.Handler,
	profileHandler *profile.Handler,
	workspaceHandler *workspace.Handler,
	onboardingHandler *onboarding.Handler,
	guardHandler *guard.Handler,
	tagHandler *tag.Handler,
	clientHandler *client.Handler,
	proposalHandler *proposal.Handler,
	negotiationHandler *negotiation.Handler,
	dashboardHandler *dashboard.Handler,
	announcementHandler *announcement.Handler,
	reindexJob *jobs.ProposalReindexJob,
) (*Server, error) {
	gin.SetMode(cfg.GinMode)
	router := gin.New()

	// --- Global Middleware ---
	router.Use(middleware.ZapLogger(logger, cfg))
	router.Use(middleware.ErrorHandler(logger))
	router.Use(gin.Recovery())

	rateLimiter := middleware.NewRateLimiter(cfg, logger)
	router.Use(rateLimiter.Middleware())

	// CORS Middleware
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"*"}
	if cfg.FrontendURL != "" {
		corsConfig.AllowOrigins = []string{cfg.FrontendURL}
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Authorization", middleware.RequestIDHeader}
	corsConfig.AllowCredentials = true
	corsConfig.ExposeHeaders = []string{"Content-Length", middleware.RequestIDHeader}
	router.Use(cors.New(corsConfig))

	// Prometheus metrics on /metrics.
	prom := ginprometheus.NewPrometheus("gin")
	prom.Use(router)

	authMW := middleware.AuthMiddleware(verifier, revocations, profiles, registry, logger.Named("AuthMiddleware"))
	optionalAuthMW := middleware.OptionalAuthMiddleware(verifier, revocations, logger.Named("OptionalAuthMiddleware"))

	// --- Setup Routes ---
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP", "message": "SaleHunt API is healthy!"})
	})

	v1 := router.Group("/api/v1")

	authHandler.RegisterRoutes(v1, authMW)
	profileHandler.RegisterRoutes(v1, authMW)
	workspaceHandler.RegisterRoutes(v1, authMW)
	onboardingHandler.RegisterRoutes(v1, authMW)
	guardHandler.RegisterRoutes(v1, optionalAuthMW)
	tagHandler.RegisterRoutes(v1, authMW)
	clientHandler.RegisterRoutes(v1, authMW)
	proposalHandler.RegisterRoutes(v1, authMW)
	negotiationHandler.RegisterRoutes(v1, authMW)
	dashboardHandler.RegisterRoutes(v1, authMW)
	announcementHandler.RegisterRoutes(v1, authMW)

	addr := fmt.Sprintf("%s:%s", cfg.ServerHost, cfg.ServerPort)
	httpServer := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		cfg:        cfg,
		logger:     logger,
		reindexJob: reindexJob,
	}, nil
}

func (s *Server) Start() error {
	if s.reindexJob != nil {
		if err := s.reindexJob.SetupAndStart(); err != nil {
			s.logger.Error("Failed to setup and start proposal reindex job", zap.Error(err))
		}
	} else {
		s.logger.Info("Proposal reindex job is not configured, skipping start.")
	}

	s.logger.Info("HTTP Server starting",
		zap.String("address", s.httpServer.Addr),
		zap.String("gin_mode", s.cfg.GinMode),
	)
	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		s.logger.Error("Failed to start HTTP server", zap.Error(err))
		return err
	}
	s.logger.Info("HTTP Server stopped gracefully or an error occurred")
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Attempting graceful server shutdown...")
	if s.reindexJob != nil {
		s.reindexJob.Stop()
	}
	return s.httpServer.Shutdown(ctx)
}
