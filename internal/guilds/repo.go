package guilds

import (
	"context"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository persists guild registrations and role access grants.
type Repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// CreateGuild inserts a new guild row. The caller checks for duplicates first;
// the primary key constraint is the backstop.
func (r *Repository) CreateGuild(ctx context.Context, guild *models.Guild) error {
	return r.db.WithContext(ctx).Create(guild).Error
}

// GuildExists reports whether the guild has been registered.
func (r *Repository) GuildExists(ctx context.Context, guildID int64) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Guild{}).
		Where("id = ?", guildID).
		Count(&count).Error
	return count > 0, err
}

// UpsertRoleAccess writes a role's access level, overwriting any previous
// grant for the same (guild, role) pair.
func (r *Repository) UpsertRoleAccess(ctx context.Context, access *models.RoleAccess) error {
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "guild_id"}, {Name: "role_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"access_level"}),
		}).
		Create(access).Error
}

// ListRoleAccess returns every access grant for a guild, ordered by role.
func (r *Repository) ListRoleAccess(ctx context.Context, guildID int64) ([]models.RoleAccess, error) {
	var grants []models.RoleAccess
	err := r.db.WithContext(ctx).
		Where("guild_id = ?", guildID).
		Order("role_id").
		Find(&grants).Error
	return grants, err
}

// MaxAccessLevel returns the highest access level among the given roles, or 0
// when none of them carries a grant.
func (r *Repository) MaxAccessLevel(ctx context.Context, guildID int64, roleIDs []int64) (int, error) {
	if len(roleIDs) == 0 {
		return 0, nil
	}
	var level *int
	err := r.db.WithContext(ctx).
		Model(&models.RoleAccess{}).
		Where("guild_id = ? AND role_id IN ?", guildID, roleIDs).
		Select("MAX(access_level)").
		Scan(&level).Error
	if err != nil || level == nil {
		return 0, err
	}
	return *level, nil
}
