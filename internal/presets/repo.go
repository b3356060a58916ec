package presets

import (
	"context"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository persists guild-scoped quota presets.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) Create(ctx context.Context, preset *models.Preset) error {
	return r.db.WithContext(ctx).Create(preset).Error
}

func (r *Repository) Find(ctx context.Context, guildID int64, name string) (*models.Preset, error) {
	var preset models.Preset
	err := r.db.WithContext(ctx).
		Where("guild_id = ? AND name = ?", guildID, name).
		First(&preset).Error
	if err != nil {
		return nil, err
	}
	return &preset, nil
}

// Delete removes the preset and reports whether it existed.
func (r *Repository) Delete(ctx context.Context, guildID int64, name string) (bool, error) {
	result := r.db.WithContext(ctx).
		Where("guild_id = ? AND name = ?", guildID, name).
		Delete(&models.Preset{})
	return result.RowsAffected > 0, result.Error
}

func (r *Repository) ListByGuild(ctx context.Context, guildID int64) ([]models.Preset, error) {
	var presets []models.Preset
	err := r.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("name").
		Find(&presets).Error
	return presets, err
}
