// Package audit records mutating user actions to the database.
package audit

import (
	"fmt"

	"github.com/mrlokans/readinglog/internal/database/audit"
	"github.com/mrlokans/readinglog/internal/entities"
)

// Service provides high-level audit logging.
type Service struct {
	repo *audit.Repository
}

// NewService creates a new audit service.
func NewService(repo *audit.Repository) *Service {
	return &Service{repo: repo}
}

// Log records a generic audit event.
func (s *Service) Log(event *entities.AuditEvent) error {
	return s.repo.LogEvent(event)
}

// GetEvents returns a page of audit events, most recent first, plus the
// total event count.
func (s *Service) GetEvents(limit, offset int) ([]entities.AuditEvent, int64, error) {
	return s.repo.GetEvents(limit, offset)
}

// LogBookAdded records a book insert.
func (s *Service) LogBookAdded(bookID uint, title string) error {
	return s.Log(&entities.AuditEvent{
		EventType:   entities.AuditEventBookAdd,
		Description: fmt.Sprintf("Added book %q", title),
		EntityID:    &bookID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogBookDeleted records a book deletion.
func (s *Service) LogBookDeleted(bookID uint) error {
	return s.Log(&entities.AuditEvent{
		EventType:   entities.AuditEventBookDelete,
		Description: fmt.Sprintf("Deleted book %d", bookID),
		EntityID:    &bookID,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogShareCreated records a share link creation.
func (s *Service) LogShareCreated(token string, bookCount int) error {
	return s.Log(&entities.AuditEvent{
		EventType:   entities.AuditEventShareCreate,
		Description: fmt.Sprintf("Created share link for %d books", bookCount),
		Token:       token,
		Status:      entities.AuditStatusSuccess,
	})
}

// LogShareRevoked records a share link revocation.
func (s *Service) LogShareRevoked(token string) error {
	return s.Log(&entities.AuditEvent{
		EventType:   entities.AuditEventShareRevoke,
		Description: "Revoked share link",
		Token:       token,
		Status:      entities.AuditStatusSuccess,
	})
}
