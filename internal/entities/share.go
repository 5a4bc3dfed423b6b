package entities

import "time"

// ShareLink is a revocable, optionally expiring read-only link to a fixed
// set of books. The set is snapshotted into ShareItem rows at creation and
// never updated afterwards.
type ShareLink struct {
	Token     string     `gorm:"primaryKey;size:64" json:"token"`
	OwnerID   *uint      `gorm:"index" json:"owner_id,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	ExpiresAt *time.Time `json:"expires_at,omitempty"` // nil = never expires
	IsRevoked bool       `gorm:"default:false" json:"is_revoked"`
}

func (ShareLink) TableName() string {
	return "share_links"
}

// ShareItem associates one book with one share link.
type ShareItem struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Token  string `gorm:"index;size:64" json:"token"`
	BookID uint   `gorm:"index" json:"book_id"`
}

func (ShareItem) TableName() string {
	return "share_items"
}
