package inventory

import (
	"context"
	"time"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists on-hand inventory. Writes are full replacements per
// stockpile; the upload is the source of truth.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ReplaceForStock drops the stockpile's current inventory and inserts the new
// records. Must run inside a transaction.
func (r *Repository) ReplaceForStock(tx *gorm.DB, stockID int64, records []models.InventoryRecord) error {
	if err := tx.Where("stock_id = ?", stockID).Delete(&models.InventoryRecord{}).Error; err != nil {
		return err
	}
	if len(records) == 0 {
		return nil
	}
	return tx.Create(&records).Error
}

// StampLastUpdate records when the stockpile's inventory was last replaced.
func (r *Repository) StampLastUpdate(tx *gorm.DB, stockID int64, at time.Time) error {
	return tx.Model(&models.Stockpile{}).
		Where("id = ?", stockID).
		Update("last_update", at).Error
}

// ListByStock returns the stockpile's current inventory records.
func (r *Repository) ListByStock(ctx context.Context, stockID int64) ([]models.InventoryRecord, error) {
	var records []models.InventoryRecord
	err := r.db.WithContext(ctx).
		Where("stock_id = ?", stockID).
		Find(&records).Error
	return records, err
}
