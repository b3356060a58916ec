package stockpiles

import (
	"context"
	"time"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Summary is the list-view projection of a stockpile with its location
// denormalized for display.
type Summary struct {
	ID            int64      `json:"id"`
	Name          string     `json:"name"`
	TownName      string     `json:"town_name"`
	StructureType string     `json:"structure_type"`
	LastUpdate    *time.Time `json:"last_update"`
}

const summaryQuery = `
SELECT s.id, s.name, t.name AS town_name, st.type AS structure_type, s.last_update
FROM stockpiles s
JOIN structures st ON st.id = s.structure_id
JOIN towns t ON t.id = st.town_id
WHERE s.guild_id = ?
ORDER BY t.name, st.type, s.name`

const summaryByIDQuery = `
SELECT s.id, s.name, t.name AS town_name, st.type AS structure_type, s.last_update
FROM stockpiles s
JOIN structures st ON st.id = s.structure_id
JOIN towns t ON t.id = st.town_id
WHERE s.id = ?`

// Repository persists stockpile registrations.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, stockpile *models.Stockpile) error {
	return r.db.WithContext(ctx).Create(stockpile).Error
}

func (r *Repository) FindByID(ctx context.Context, stockID int64) (*models.Stockpile, error) {
	var stockpile models.Stockpile
	if err := r.db.WithContext(ctx).First(&stockpile, "id = ?", stockID).Error; err != nil {
		return nil, err
	}
	return &stockpile, nil
}

// Exists reports whether a stockpile with the same identity triple is already
// registered.
func (r *Repository) Exists(ctx context.Context, guildID, structureID int64, name string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Stockpile{}).
		Where("guild_id = ? AND structure_id = ? AND name = ?", guildID, structureID, name).
		Count(&count).Error
	return count > 0, err
}

// ListByGuild returns the guild's stockpiles with town and structure resolved.
func (r *Repository) ListByGuild(ctx context.Context, guildID int64) ([]Summary, error) {
	var rows []Summary
	err := r.db.WithContext(ctx).Raw(summaryQuery, guildID).Scan(&rows).Error
	return rows, err
}

// SummaryByID returns one stockpile with town and structure resolved.
func (r *Repository) SummaryByID(ctx context.Context, stockID int64) (*Summary, error) {
	var rows []Summary
	if err := r.db.WithContext(ctx).Raw(summaryByIDQuery, stockID).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return &rows[0], nil
}

// DeleteCascade removes the stockpile and its dependent inventory and quota
// rows. Must run inside a transaction.
func (r *Repository) DeleteCascade(tx *gorm.DB, stockID int64) error {
	if err := tx.Where("stock_id = ?", stockID).Delete(&models.InventoryRecord{}).Error; err != nil {
		return err
	}
	if err := tx.Where("stock_id = ?", stockID).Delete(&models.Quota{}).Error; err != nil {
		return err
	}
	return tx.Delete(&models.Stockpile{}, "id = ?", stockID).Error
}
