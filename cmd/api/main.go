package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/smartlend/smartlend/smartlend-portal/docs"
	"github.com/smartlend/smartlend/smartlend-portal/internal/apiclient"
	"github.com/smartlend/smartlend/smartlend-portal/internal/config"
	"github.com/smartlend/smartlend/smartlend-portal/internal/document"
	"github.com/smartlend/smartlend/smartlend-portal/internal/handler"
	"github.com/smartlend/smartlend/smartlend-portal/internal/metrics"
	"github.com/smartlend/smartlend/smartlend-portal/internal/middleware"
	"github.com/smartlend/smartlend/smartlend-portal/internal/repository/postgres"
	"github.com/smartlend/smartlend/smartlend-portal/internal/repository/storage"
	"github.com/smartlend/smartlend/smartlend-portal/internal/service"
	"github.com/smartlend/smartlend/smartlend-portal/internal/websocket"
)

// @title SmartLend Portal API
// @version 1.0
// @description Customer and administrator portal over the SmartLend loan service: EMI schedules and payments, receipts, closure certificates and support chat.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Initialize zerolog
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if os.Getenv("ENV") != "production" {
		log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Loan service client
	client := apiclient.New(cfg.APIBaseURL, apiclient.WithTimeout(cfg.APITimeout))
	log.Info().Str("url", cfg.APIBaseURL).Msg("Using loan service")

	// Push channel
	hub := websocket.NewHub()

	// Document rendering
	renderer := document.NewRenderer(brandFromConfig(cfg.Brand))
	if cfg.Brand.LogoPath != "" {
		if err := renderer.LoadLogo(cfg.Brand.LogoPath); err != nil {
			log.Warn().Err(err).Str("path", cfg.Brand.LogoPath).Msg("Failed to load document logo, rendering without it")
		}
	}

	// Initialize services
	emiService := service.NewEmiService(client)
	emiService.SetEventPublisher(hub)
	documentService := service.NewDocumentService(client, renderer)
	adminLoanService := service.NewAdminLoanService(client)
	adminLoanService.SetEventPublisher(hub)
	loanTypeService := service.NewLoanTypeService(client)
	loanTypeService.SetEventPublisher(hub)

	// Document archive, optional
	var pool *pgxpool.Pool
	if cfg.S3.Enabled() {
		store, err := storage.NewS3DocumentStore(ctx, cfg.S3)
		if err != nil {
			log.Fatal().Err(err).Msg("Failed to initialize document storage")
		}

		var repo *postgres.DocumentRepository
		if cfg.DatabaseURL != "" {
			pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
			if err != nil {
				log.Fatal().Err(err).Msg("Failed to connect to database")
			}
			if err := pool.Ping(ctx); err != nil {
				log.Fatal().Err(err).Msg("Failed to ping database")
			}
			repo = postgres.NewDocumentRepository(pool)
			if err := repo.EnsureSchema(ctx); err != nil {
				log.Fatal().Err(err).Msg("Failed to prepare document ledger")
			}
			log.Info().Msg("Connected to database")
		}

		if repo != nil {
			documentService.SetArchive(store, repo)
		} else {
			documentService.SetArchive(store, nil)
		}
		log.Info().Str("bucket", cfg.S3.Bucket).Bool("ledger", repo != nil).Msg("Document archive enabled")
	}
	if pool != nil {
		defer pool.Close()
	}

	// Chat delivery: poll the loan service when a service credential is
	// configured, otherwise push only what passes through the portal
	var chatFeed service.ChatFeed
	var chatPoller *service.ChatPoller
	if cfg.ServiceToken != "" {
		chatPoller = service.NewChatPoller(client, hub, log.Logger, service.ChatPollerConfig{
			Interval:     cfg.ChatPollInterval,
			ServiceToken: cfg.ServiceToken,
		})
		chatPoller.Start(ctx)
		chatFeed = chatPoller
	} else {
		chatFeed = service.NewDirectFeed(hub)
	}
	chatService := service.NewChatService(client, chatFeed)

	// Initialize auth middleware
	sessionAuth, err := middleware.NewSessionAuth(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create session auth")
	}
	limiter := middleware.NewRateLimiterWithConfig(cfg.RateLimit.PerMinute, cfg.RateLimit.Burst)

	// Initialize handlers
	emiHandler := handler.NewEmiHandler(emiService)
	documentHandler := handler.NewDocumentHandler(documentService)
	adminLoanHandler := handler.NewAdminLoanHandler(adminLoanService)
	loanTypeHandler := handler.NewLoanTypeHandler(loanTypeService)
	chatHandler := handler.NewChatHandler(chatService)
	wsHandler := handler.NewWebSocketHandler(hub, sessionAuth, cfg.CORSOrigins)

	// Create Echo instance
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Request ID middleware
	e.Use(echomiddleware.RequestID())

	// CORS middleware
	e.Use(echomiddleware.CORSWithConfig(echomiddleware.CORSConfig{
		AllowOrigins:     cfg.CORSOrigins,
		AllowMethods:     []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowHeaders:     []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, echo.HeaderAuthorization},
		ExposeHeaders:    []string{echo.HeaderContentDisposition, "X-RateLimit-Limit", "X-RateLimit-Remaining", "X-RateLimit-Reset"},
		AllowCredentials: true,
		MaxAge:           86400,
	}))

	// Security headers middleware
	e.Use(echomiddleware.SecureWithConfig(echomiddleware.SecureConfig{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
		HSTSMaxAge:         31536000,
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))

	// Request logging middleware with zerolog
	e.Use(zerologMiddleware())

	// Recovery middleware
	e.Use(echomiddleware.Recover())

	e.Use(metrics.Middleware())

	// Health check endpoint
	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]any{
			"status":    "ok",
			"archive":   documentService.ArchiveEnabled(),
			"wsClients": hub.TotalClientCount(),
		})
	})
	e.GET("/metrics", metrics.Handler())

	// API documentation
	e.GET("/swagger/*", echoSwagger.WrapHandler)
	e.GET("/openapi.json", handler.ServeOpenAPI3Spec)

	// Register API routes
	handler.RegisterRoutes(e, sessionAuth, limiter, emiHandler, documentHandler, adminLoanHandler, loanTypeHandler, chatHandler, wsHandler)

	// Start server in goroutine
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("Starting server")
		if err := e.Start(":" + cfg.Port); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server failed")
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	if chatPoller != nil {
		chatPoller.Stop()
	}
	limiter.Stop()
	hub.CloseAll()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited")
}

// brandFromConfig overlays the configured letterhead on the default one
func brandFromConfig(b config.BrandConfig) document.Brand {
	brand := document.DefaultBrand()
	if b.Name != "" {
		brand.Name = b.Name
	}
	if b.Email != "" {
		brand.Email = b.Email
	}
	if b.Contact != "" {
		brand.Contact = b.Contact
	}
	if b.Address != "" {
		brand.Address = b.Address
	}
	return brand
}

// zerologMiddleware returns a middleware that logs requests using zerolog
func zerologMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)
			if err != nil {
				c.Error(err)
			}

			req := c.Request()
			res := c.Response()

			log.Info().
				Str("method", req.Method).
				Str("path", req.URL.Path).
				Int("status", res.Status).
				Dur("latency", time.Since(start)).
				Str("request_id", res.Header().Get(echo.HeaderXRequestID)).
				Msg("request")

			return nil
		}
	}
}
