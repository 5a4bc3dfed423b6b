package http

import (
	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readinglog/internal/audit"
	"github.com/mrlokans/readinglog/internal/auth"
	"github.com/mrlokans/readinglog/internal/cache"
	"github.com/mrlokans/readinglog/internal/database"
	"github.com/mrlokans/readinglog/internal/share"
)

// RouterConfig carries all dependencies for the router. Optional fields
// (auth, audit) may be nil.
type RouterConfig struct {
	Database            *database.Database
	BookStore           BookStore
	BookFetcher         BookFetcher
	BookCache           *cache.BookList
	ShareService        *share.Service
	BaseURL             string
	DefaultValidityDays int
	Version             string

	AuditService   *audit.Service
	AuthController *auth.Controller
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool
}

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}
	if cfg.SessionManager != nil {
		router.Use(cfg.SessionManager.SessionLoadSave())
	}
	if cfg.AuthMiddleware != nil {
		router.Use(cfg.AuthMiddleware.Handler())
	}

	if cfg.AuthController != nil {
		cfg.AuthController.RegisterRoutes(router)
	}

	health := NewHealthController(cfg.Database, cfg.Version)
	booksController := NewBooksController(cfg.BookStore, cfg.BookCache, cfg.AuditService)
	sharesController := NewSharesController(cfg.ShareService, cfg.BaseURL, cfg.DefaultValidityDays, cfg.AuditService)
	sharedView := NewSharedViewController(cfg.ShareService, cfg.BookFetcher)

	// Health endpoints
	router.GET("/health", health.Status)
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})

	// Reading log endpoints (authenticated when the gate is on)
	router.GET("/api/books", booksController.ListBooks)
	router.POST("/api/books", booksController.CreateBook)
	router.DELETE("/api/books/:id", booksController.DeleteBook)

	// Share management endpoints (authenticated when the gate is on)
	router.POST("/api/shares", sharesController.CreateShare)
	router.POST("/api/shares/:token/revoke", sharesController.RevokeShare)

	// Audit trail (authenticated when the gate is on)
	if cfg.AuditService != nil {
		router.GET("/api/audit", NewAuditController(cfg.AuditService).GetAuditEvents)
	}

	// Public read-only view, deliberately outside the gate
	router.GET("/shared", sharedView.View)

	return router
}
