package server

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"mishura/internal/admin"
	"mishura/internal/analysis"
	"mishura/internal/auth"
	"mishura/internal/config"
	"mishura/internal/consultation"
	"mishura/internal/logger"
	"mishura/internal/payment"
	"mishura/internal/pricing"
	"mishura/internal/user"
	"mishura/internal/wallet"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

// Dependencies are the stores and services the HTTP layer is built from.
type Dependencies struct {
	Ping          func(ctx context.Context) error
	Users         user.Repository
	Wallets       wallet.Repository
	Consultations consultation.Repository
	Payments      payment.Repository
	AI            AIChecker
	Analysis      *analysis.Service
	Payment       *payment.Service
}

type Server struct {
	router     *gin.Engine
	httpServer *http.Server
	limiter    *RateLimiter
	config     *config.Config
}

func New(cfg *config.Config, deps Dependencies) *Server {
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware(cfg.CORSAllowedOrigins))

	limiter := NewRateLimiter(cfg.RateLimitRPS, cfg.RateLimitBurst, 3*time.Minute)

	system := NewSystemHandler(cfg, deps.Ping, deps.AI, deps.Payment)
	router.GET("/health", system.Health)
	router.HEAD("/health", system.Health)
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	analysisHandler := analysis.NewHandler(deps.Analysis, cfg.MaxImageBytes)
	userHandler := user.NewHandler(deps.Users, cfg.DefaultBalance)
	walletHandler := wallet.NewHandler(deps.Wallets)
	consultationHandler := consultation.NewHandler(deps.Consultations, deps.Users)
	paymentHandler := payment.NewHandler(deps.Payment)

	// routes kept for clients built against the first API revision
	legacy := router.Group("/api", limiter.Middleware())
	{
		legacy.POST("/analyze", analysisHandler.AnalyzeOutfit)
		legacy.POST("/compare", analysisHandler.CompareOutfits)
	}

	v1 := router.Group("/api/v1")
	{
		v1.GET("/", system.Info)
		v1.GET("/health", system.ComponentsHealth)

		ai := v1.Group("", limiter.Middleware())
		ai.POST("/analyze-outfit", analysisHandler.AnalyzeOutfit)
		ai.POST("/analyze/single", analysisHandler.AnalyzeOutfit)
		ai.POST("/compare-outfits", analysisHandler.CompareOutfits)
		ai.POST("/analyze/compare", analysisHandler.CompareOutfits)

		v1.GET("/users/:telegram_id", userHandler.GetProfile)
		v1.PUT("/users/:telegram_id", userHandler.SaveProfile)
		v1.GET("/users/:telegram_id/balance", walletHandler.GetBalance)
		v1.GET("/users/:telegram_id/transactions", walletHandler.ListTransactions)
		v1.GET("/users/:telegram_id/consultations", consultationHandler.List)
		v1.GET("/users/:telegram_id/consultations/:id", consultationHandler.Get)

		v1.GET("/pricing/plans", pricing.ListPlans)

		v1.POST("/payments/create", paymentHandler.CreatePayment)
		v1.POST("/payments/webhook", paymentHandler.Webhook)
		v1.GET("/payments/:payment_id/status", paymentHandler.GetStatus)
	}

	if cfg.AdminEnabled() {
		registerAdmin(v1, cfg, deps, limiter)
	} else {
		logger.Info("admin API disabled: JWT_SECRET or ADMIN_PASSWORD_HASH not set")
	}

	// analysis requests wait for the model, retries included
	attempts := time.Duration(cfg.AIMaxRetries)
	writeTimeout := (cfg.AIRequestTimeout+cfg.AIRetryDelay)*attempts + 30*time.Second

	return &Server{
		router:  router,
		limiter: limiter,
		config:  cfg,
		httpServer: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
			WriteTimeout:      writeTimeout,
			IdleTimeout:       2 * time.Minute,
		},
	}
}

func (s *Server) Handler() http.Handler {
	return s.router
}

// Start blocks serving HTTP until Shutdown is called.
func (s *Server) Start() error {
	err := s.httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.limiter.Stop()
	return s.httpServer.Shutdown(ctx)
}

func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodOptions, http.MethodHead},
		AllowHeaders:  []string{"Origin", "Content-Type", "Content-Length", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders: []string{"Content-Length"},
		MaxAge:        12 * time.Hour,
	}

	allowAll := len(origins) == 0
	for _, o := range origins {
		if strings.TrimSpace(o) == "*" {
			allowAll = true
		}
	}
	if allowAll {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}

	return cors.New(cfg)
}

func registerAdmin(v1 *gin.RouterGroup, cfg *config.Config, deps Dependencies, limiter *RateLimiter) {
	tokens, err := auth.NewTokens(cfg.JWTSecret)
	if err != nil {
		logger.Error("admin API disabled", "error", err)
		return
	}

	adminHandler := admin.NewHandler(
		admin.Credentials{
			Username:     cfg.AdminUsername,
			PasswordHash: cfg.AdminPasswordHash,
		},
		tokens,
		deps.Users, deps.Consultations, deps.Payments, deps.Wallets,
	)

	adminPublic := v1.Group("/admin", limiter.Middleware())
	adminPublic.POST("/login", adminHandler.Login)
	adminPublic.POST("/refresh", adminHandler.Refresh)

	adminProtected := v1.Group("/admin", auth.AuthMiddleware(tokens), auth.RequireRole(auth.RoleAdmin))
	adminProtected.GET("/stats", adminHandler.Stats)
	adminProtected.POST("/users/:telegram_id/balance", adminHandler.AdjustBalance)
}
