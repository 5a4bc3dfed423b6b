package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	auditsvc "github.com/mrlokans/readinglog/internal/audit"
	"github.com/mrlokans/readinglog/internal/auth"
	"github.com/mrlokans/readinglog/internal/cache"
	"github.com/mrlokans/readinglog/internal/config"
	"github.com/mrlokans/readinglog/internal/database"
	auditrepo "github.com/mrlokans/readinglog/internal/database/audit"
	"github.com/mrlokans/readinglog/internal/database/books"
	"github.com/mrlokans/readinglog/internal/database/shares"
	http_controllers "github.com/mrlokans/readinglog/internal/http"
	"github.com/mrlokans/readinglog/internal/share"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Starting server at %s:%d\n", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s\n", err)
		}
	}()

	// Graceful shutdown on SIGINT/SIGTERM
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing\n", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Reading Log v%s", version)

	db, err := database.NewDatabase(cfg.Database.Path, cfg.Database.SeedPath)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	bookRepo := books.NewRepository(db.DB)
	shareRepo := shares.NewRepository(db.DB)
	shareService := share.NewService(shareRepo)
	bookCache := cache.NewBookList(bookRepo.ListAll)

	auditService := auditsvc.NewService(auditrepo.NewRepository(db.DB))
	sweeper := auditsvc.NewSweeper(auditrepo.NewRepository(db.DB), cfg.Audit.RetentionDays)
	if err := sweeper.Start(cfg.Audit.SweepSchedule); err != nil {
		log.Fatalf("Failed to start audit sweeper: %v", err)
	}

	var authController *auth.Controller
	var authMiddleware *auth.Middleware
	var sessionManager *auth.SessionManager
	var csrfSecret []byte

	if cfg.Auth.Mode == config.AuthModeLocal {
		log.Printf("Authentication mode: local (password gate)")

		authService, err := auth.NewService(cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize auth service: %v", err)
		}

		sqlDB, err := db.DB.DB()
		if err != nil {
			log.Fatalf("Failed to get SQL DB for sessions: %v", err)
		}
		sessionManager, err = auth.NewSessionManager(sqlDB, cfg.Auth)
		if err != nil {
			log.Fatalf("Failed to initialize session manager: %v", err)
		}

		authMiddleware = auth.NewMiddleware(sessionManager, cfg.Auth)
		authController = auth.NewController(authService, sessionManager)

		secret := cfg.Auth.SessionSecret
		if secret == "" {
			secret, err = auth.GenerateSessionSecret()
			if err != nil {
				log.Fatalf("Failed to generate CSRF secret: %v", err)
			}
			log.Printf("Generated session secret (set AUTH_SESSION_SECRET to persist)")
		}
		csrfSecret = []byte(secret)
	} else {
		log.Printf("Authentication mode: none (no authentication required)")
	}

	router := http_controllers.NewRouter(http_controllers.RouterConfig{
		Database:            db,
		BookStore:           bookRepo,
		BookFetcher:         bookRepo,
		BookCache:           bookCache,
		ShareService:        shareService,
		BaseURL:             cfg.Share.BaseURL,
		DefaultValidityDays: cfg.Share.DefaultValidityDays,
		Version:             version,
		AuditService:        auditService,
		AuthController:      authController,
		AuthMiddleware:      authMiddleware,
		SessionManager:      sessionManager,
		CSRFSecret:          csrfSecret,
		SecureCookies:       cfg.Auth.SecureCookies,
	})

	onShutdown := func(ctx context.Context) {
		sweeper.Stop()
	}

	Serve(router, cfg, onShutdown)
}
