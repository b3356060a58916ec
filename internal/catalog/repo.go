package catalog

import (
	"context"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"gorm.io/gorm"
)

// Repository handles the read-mostly reference tables (towns, structures,
// items). The core queries them but never mutates them outside the bootstrap
// loader.
type Repository struct {
	db *gorm.DB
}

// NewRepository binds a GORM DB to catalog lookups.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindTownByName loads a town by its display name.
func (r *Repository) FindTownByName(ctx context.Context, name string) (*models.Town, error) {
	var town models.Town
	if err := r.db.WithContext(ctx).First(&town, "name = ?", name).Error; err != nil {
		return nil, err
	}
	return &town, nil
}

// FindStructure resolves the structure of the given type inside a town. The
// reference data is assumed to carry a single match per (town, type) pair.
func (r *Repository) FindStructure(ctx context.Context, townID int64, structureType string) (*models.Structure, error) {
	var structure models.Structure
	if err := r.db.WithContext(ctx).
		Where("town_id = ? AND type = ?", townID, structureType).
		First(&structure).Error; err != nil {
		return nil, err
	}
	return &structure, nil
}

// ItemsByCodeNames returns the catalog items for the provided code names,
// keyed by code name. Missing codes are simply absent from the map.
func (r *Repository) ItemsByCodeNames(ctx context.Context, codes []string) (map[string]models.Item, error) {
	var rows []models.Item
	if err := r.db.WithContext(ctx).Where("code_name IN ?", codes).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.Item, len(rows))
	for _, item := range rows {
		out[item.CodeName] = item
	}
	return out, nil
}

// ItemsByDisplayNames returns the catalog items for the provided display
// names, keyed by display name. Display names are treated as unique by every
// query path.
func (r *Repository) ItemsByDisplayNames(ctx context.Context, names []string) (map[string]models.Item, error) {
	var rows []models.Item
	if err := r.db.WithContext(ctx).Where("display_name IN ?", names).Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[string]models.Item, len(rows))
	for _, item := range rows {
		out[item.DisplayName] = item
	}
	return out, nil
}

// ListDisplayNames returns every item display name, for the fuzzy resolver.
func (r *Repository) ListDisplayNames(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Pluck("display_name", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

// InsertTowns bulk-inserts towns during the catalog bootstrap.
func (r *Repository) InsertTowns(tx *gorm.DB, towns []models.Town) error {
	if len(towns) == 0 {
		return nil
	}
	return tx.Create(&towns).Error
}

// InsertStructures bulk-inserts structures during the catalog bootstrap.
func (r *Repository) InsertStructures(tx *gorm.DB, structures []models.Structure) error {
	if len(structures) == 0 {
		return nil
	}
	return tx.Create(&structures).Error
}

// InsertItems bulk-inserts items during the catalog bootstrap.
func (r *Repository) InsertItems(tx *gorm.DB, items []models.Item) error {
	if len(items) == 0 {
		return nil
	}
	return tx.Create(&items).Error
}
