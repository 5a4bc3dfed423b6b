// Package shares provides database operations for share links and their
// book sets.
package shares

import (
	"gorm.io/gorm"

	"github.com/mrlokans/readinglog/internal/database"
	"github.com/mrlokans/readinglog/internal/entities"
)

// Repository handles all share link database operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository creates a new shares repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateLink persists a share link together with one item row per book id.
// The pair is a single transaction so a mid-batch failure leaves no
// orphaned link behind.
func (r *Repository) CreateLink(link *entities.ShareLink, bookIDs []uint) error {
	return database.WithRetry(func() error {
		return r.db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(link).Error; err != nil {
				return err
			}
			for _, bookID := range bookIDs {
				item := entities.ShareItem{Token: link.Token, BookID: bookID}
				if err := tx.Create(&item).Error; err != nil {
					return err
				}
			}
			return nil
		})
	})
}

// GetLink retrieves a share link by token. Returns gorm.ErrRecordNotFound
// for unknown tokens.
func (r *Repository) GetLink(token string) (*entities.ShareLink, error) {
	var link entities.ShareLink
	err := r.db.Where("token = ?", token).First(&link).Error
	if err != nil {
		return nil, err
	}
	return &link, nil
}

// GetItemBookIDs returns the book ids snapshotted for a token, in insert
// order.
func (r *Repository) GetItemBookIDs(token string) ([]uint, error) {
	var ids []uint
	err := r.db.Model(&entities.ShareItem{}).
		Where("token = ?", token).
		Order("id ASC").
		Pluck("book_id", &ids).Error
	return ids, err
}

// Revoke flips the revocation flag for a token. The flag is one-way; there
// is no un-revoke. Returns gorm.ErrRecordNotFound for unknown tokens.
func (r *Repository) Revoke(token string) error {
	return database.WithRetry(func() error {
		result := r.db.Model(&entities.ShareLink{}).
			Where("token = ?", token).
			Update("is_revoked", true)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
