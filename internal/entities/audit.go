package entities

import "time"

type AuditEventType string

const (
	AuditEventBookAdd     AuditEventType = "book_add"
	AuditEventBookDelete  AuditEventType = "book_delete"
	AuditEventShareCreate AuditEventType = "share_create"
	AuditEventShareRevoke AuditEventType = "share_revoke"
)

type AuditStatus string

const (
	AuditStatusSuccess AuditStatus = "success"
	AuditStatusFailed  AuditStatus = "failed"
)

// AuditEvent records one mutating user action.
type AuditEvent struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	EventType   AuditEventType `gorm:"index;size:50" json:"event_type"`
	Description string         `gorm:"size:500" json:"description"`
	EntityID    *uint          `gorm:"index" json:"entity_id,omitempty"`
	Token       string         `gorm:"size:64" json:"token,omitempty"`
	Status      AuditStatus    `gorm:"size:20" json:"status"`
	ErrorMsg    string         `gorm:"size:500" json:"error_msg,omitempty"`
	CreatedAt   time.Time      `gorm:"index" json:"created_at"`
}

func (AuditEvent) TableName() string {
	return "audit_events"
}
