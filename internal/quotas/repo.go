package quotas

import (
	"context"
	stdErrors "errors"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Detail is a stored quota with its catalog item resolved.
type Detail struct {
	ItemID      int64  `json:"item_id"`
	CodeName    string `json:"code_name"`
	DisplayName string `json:"display_name"`
	Category    string `json:"category"`
	PerCrate    int64  `json:"per_crate"`
	Amount      int64  `json:"amount"`
}

const detailQuery = `
SELECT q.item_id, i.code_name, i.display_name, i.category, i.per_crate, q.amount
FROM quotas q
JOIN items i ON i.id = q.item_id
WHERE q.stock_id = ?
ORDER BY i.display_name`

// Repository persists per-stockpile quotas.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Upsert writes the quotas, overwriting the amount of any existing
// (stock, item) pair.
func (r *Repository) Upsert(ctx context.Context, quotas []models.Quota) error {
	if len(quotas) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "stock_id"}, {Name: "item_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"amount"}),
		}).
		Create(&quotas).Error
}

// Accumulate adds each quota's amount onto whatever is already stored for the
// pair, inserting when absent. Must run inside a transaction.
func (r *Repository) Accumulate(tx *gorm.DB, quotas []models.Quota) error {
	for _, quota := range quotas {
		var existing models.Quota
		err := tx.Where("stock_id = ? AND item_id = ?", quota.StockID, quota.ItemID).
			First(&existing).Error
		switch {
		case stdErrors.Is(err, gorm.ErrRecordNotFound):
			if err := tx.Create(&quota).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		default:
			err := tx.Model(&models.Quota{}).
				Where("stock_id = ? AND item_id = ?", quota.StockID, quota.ItemID).
				Update("amount", existing.Amount+quota.Amount).Error
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// DeleteByStock removes every quota on the stockpile.
func (r *Repository) DeleteByStock(ctx context.Context, stockID int64) error {
	return r.db.WithContext(ctx).
		Where("stock_id = ?", stockID).
		Delete(&models.Quota{}).Error
}

// FetchDetails returns the stockpile's quotas joined with their items.
func (r *Repository) FetchDetails(ctx context.Context, stockID int64) ([]Detail, error) {
	var details []Detail
	err := r.db.WithContext(ctx).Raw(detailQuery, stockID).Scan(&details).Error
	return details, err
}
