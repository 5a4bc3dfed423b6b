// Package share implements the share-link mechanism: opaque tokens that
// resolve to a fixed set of book ids until they expire or get revoked.
package share

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/mrlokans/readinglog/internal/database/shares"
	"github.com/mrlokans/readinglog/internal/entities"
)

// Reason explains why a token failed to resolve.
type Reason string

const (
	ReasonNone     Reason = ""
	ReasonNotFound Reason = "not_found"
	ReasonRevoked  Reason = "revoked"
	ReasonExpired  Reason = "expired"
)

// tokenBytes is the amount of randomness per token; rendered as hex this
// gives a fixed-length 32-character identifier.
const tokenBytes = 16

// Service creates and resolves share links.
type Service struct {
	repo *shares.Repository
	now  func() time.Time
}

// NewService creates a share service backed by the given repository.
func NewService(repo *shares.Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

// SetClock overrides the clock used for expiry checks. Intended for tests.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

// Create generates a token for the given book set and persists the link
// plus one item row per book id, atomically. A nil validityDays makes the
// link indefinite; otherwise it expires validityDays after creation.
// Book ids are not validated for existence; fetch time filters deleted
// books out of the result instead.
func (s *Service) Create(ownerID *uint, bookIDs []uint, validityDays *int) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}

	link := entities.ShareLink{
		Token:     token,
		OwnerID:   ownerID,
		CreatedAt: s.now(),
	}
	if validityDays != nil {
		expires := link.CreatedAt.AddDate(0, 0, *validityDays)
		link.ExpiresAt = &expires
	}

	if err := s.repo.CreateLink(&link, bookIDs); err != nil {
		return "", fmt.Errorf("failed to create share link: %w", err)
	}
	return token, nil
}

// Resolve maps a token back to its book set. A failed resolution is
// reported through the Reason, never as an error; the error return is for
// storage failures only.
//
// Precedence: an unknown token short-circuits as not_found; otherwise
// revocation is checked before expiry. Both checks run on every access,
// never from a cache.
func (s *Service) Resolve(token string) ([]uint, Reason, error) {
	link, err := s.repo.GetLink(token)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ReasonNotFound, nil
		}
		return nil, ReasonNone, err
	}

	if link.IsRevoked {
		return nil, ReasonRevoked, nil
	}
	if link.ExpiresAt != nil && s.now().After(*link.ExpiresAt) {
		return nil, ReasonExpired, nil
	}

	ids, err := s.repo.GetItemBookIDs(token)
	if err != nil {
		return nil, ReasonNone, err
	}
	return ids, ReasonNone, nil
}

// Revoke invalidates a token. One-way; revoking an already revoked token
// is a no-op. Returns gorm.ErrRecordNotFound for unknown tokens.
func (s *Service) Revoke(token string) error {
	return s.repo.Revoke(token)
}

// generateToken returns 128 bits from a cryptographically strong source,
// hex-encoded.
func generateToken() (string, error) {
	b := make([]byte, tokenBytes)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
