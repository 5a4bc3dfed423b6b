package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/mrlokans/readinglog/internal/audit"
	"github.com/mrlokans/readinglog/internal/database"
	"github.com/mrlokans/readinglog/internal/share"
)

// ShareManager defines the share operations on the authenticated surface.
type ShareManager interface {
	Create(ownerID *uint, bookIDs []uint, validityDays *int) (string, error)
	Revoke(token string) error
}

// SharesController handles share link creation and revocation on the
// authenticated surface. The public read path lives in shared.go.
type SharesController struct {
	service         ShareManager
	baseURL         string
	defaultValidity int
	auditService    *audit.Service
}

func NewSharesController(service ShareManager, baseURL string, defaultValidity int, auditService *audit.Service) *SharesController {
	return &SharesController{
		service:         service,
		baseURL:         baseURL,
		defaultValidity: defaultValidity,
		auditService:    auditService,
	}
}

type createShareRequest struct {
	BookIDs      []uint `json:"book_ids"`
	ValidityDays *int   `json:"validity_days"` // omitted = server default
	NeverExpires bool   `json:"never_expires"`
}

// CreateShare snapshots a book set behind a fresh token. Links expire
// after validity_days (the configured default when omitted) unless
// never_expires is set.
// POST /api/shares
func (sc *SharesController) CreateShare(c *gin.Context) {
	var req createShareRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}
	if req.ValidityDays != nil && *req.ValidityDays <= 0 {
		respondBadRequest(c, "validity_days must be positive")
		return
	}

	validity := req.ValidityDays
	if req.NeverExpires {
		validity = nil
	} else if validity == nil && sc.defaultValidity > 0 {
		days := sc.defaultValidity
		validity = &days
	}

	token, err := sc.service.Create(nil, req.BookIDs, validity)
	if err != nil {
		if errors.Is(err, database.ErrStorageUnavailable) {
			respondError(c, http.StatusServiceUnavailable, "storage unavailable, try again")
			return
		}
		respondInternalError(c, err, "create share")
		return
	}

	if sc.auditService != nil {
		if err := sc.auditService.LogShareCreated(token, len(req.BookIDs)); err != nil {
			logAuditFailure(err)
		}
	}

	c.IndentedJSON(http.StatusCreated, gin.H{
		"token": token,
		"url":   share.URL(sc.baseURL, token),
	})
}

// RevokeShare permanently invalidates a token.
// POST /api/shares/:token/revoke
func (sc *SharesController) RevokeShare(c *gin.Context) {
	token := c.Param("token")

	if err := sc.service.Revoke(token); err != nil {
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			respondNotFound(c, "share link")
		case errors.Is(err, database.ErrStorageUnavailable):
			respondError(c, http.StatusServiceUnavailable, "storage unavailable, try again")
		default:
			respondInternalError(c, err, "revoke share")
		}
		return
	}

	if sc.auditService != nil {
		if err := sc.auditService.LogShareRevoked(token); err != nil {
			logAuditFailure(err)
		}
	}

	respondSuccess(c, "share link revoked")
}
