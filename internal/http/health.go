package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/mrlokans/readinglog/internal/database"
	"github.com/mrlokans/readinglog/internal/entities"
)

// HealthResponse reports service liveness together with a small snapshot
// of the log: how many books it holds and how many share links are still
// live (not revoked).
type HealthResponse struct {
	Status       string `json:"status"`
	Time         string `json:"time"`
	Version      string `json:"version,omitempty"`
	Database     string `json:"database"`
	Books        int64  `json:"books"`
	ActiveShares int64  `json:"active_shares"`
}

type HealthController struct {
	db      *database.Database
	version string
}

func NewHealthController(db *database.Database, version string) *HealthController {
	return &HealthController{
		db:      db,
		version: version,
	}
}

// Status answers GET /health. Unreachable storage degrades the status to
// unhealthy with a 503; the counts are informational and a failed count
// does not.
func (h *HealthController) Status(c *gin.Context) {
	health := HealthResponse{
		Status:   "healthy",
		Time:     time.Now().Format(time.RFC3339),
		Version:  h.version,
		Database: "ok",
	}

	if h.db == nil {
		health.Database = "not configured"
	} else if err := h.ping(); err != nil {
		health.Status = "unhealthy"
		health.Database = "error: " + err.Error()
	} else {
		h.db.DB.Model(&entities.Book{}).Count(&health.Books)
		h.db.DB.Model(&entities.ShareLink{}).
			Where("is_revoked = ?", false).
			Count(&health.ActiveShares)
	}

	statusCode := http.StatusOK
	if health.Status != "healthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.IndentedJSON(statusCode, health)
}

func (h *HealthController) ping() error {
	sqlDB, err := h.db.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}
