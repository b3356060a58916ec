package guilds

import (
	"context"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/enums"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
)

type guildRepo interface {
	CreateGuild(ctx context.Context, guild *models.Guild) error
	GuildExists(ctx context.Context, guildID int64) (bool, error)
	UpsertRoleAccess(ctx context.Context, access *models.RoleAccess) error
	ListRoleAccess(ctx context.Context, guildID int64) ([]models.RoleAccess, error)
	MaxAccessLevel(ctx context.Context, guildID int64, roleIDs []int64) (int, error)
}

// Service owns guild registration and the role access model. Every other
// guild-scoped operation asks this service whether the caller may proceed.
type Service struct {
	repo   guildRepo
	logger *logger.Logger
}

func NewService(repo guildRepo, logg *logger.Logger) *Service {
	return &Service{repo: repo, logger: logg}
}

// Register creates the guild record. Registering an already-registered guild
// is a conflict, not an update.
func (s *Service) Register(ctx context.Context, guildID int64, name string) error {
	if guildID == 0 {
		return errors.New(errors.CodeValidation, "guild id is required")
	}
	if name == "" {
		return errors.New(errors.CodeValidation, "guild name is required")
	}

	exists, err := s.repo.GuildExists(ctx, guildID)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "checking guild registration")
	}
	if exists {
		return errors.New(errors.CodeConflict, "guild is already registered")
	}

	if err := s.repo.CreateGuild(ctx, &models.Guild{ID: guildID, Name: name}); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "creating guild")
	}

	s.logger.Info(s.logger.WithGuildID(ctx, guildID), "guild registered")
	return nil
}

// IsRegistered reports whether the guild exists.
func (s *Service) IsRegistered(ctx context.Context, guildID int64) (bool, error) {
	exists, err := s.repo.GuildExists(ctx, guildID)
	if err != nil {
		return false, errors.Wrap(errors.CodeInternal, err, "checking guild registration")
	}
	return exists, nil
}

// SetAccess grants a role an access level, overwriting any previous grant.
// Only member and officer are grantable; revocation is not modeled.
func (s *Service) SetAccess(ctx context.Context, guildID, roleID int64, level int) error {
	parsed, err := enums.ParseAccessLevel(level)
	if err != nil {
		return errors.New(errors.CodeValidation, "access level must be member or officer")
	}

	if err := s.requireRegistered(ctx, guildID); err != nil {
		return err
	}

	access := &models.RoleAccess{GuildID: guildID, RoleID: roleID, AccessLevel: parsed}
	if err := s.repo.UpsertRoleAccess(ctx, access); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "storing role access")
	}

	meta := map[string]any{"guild_id": guildID, "role_id": roleID, "level": parsed.String()}
	s.logger.Info(s.logger.WithFields(ctx, meta), "role access updated")
	return nil
}

// AccessLevel answers the central access query: the caller's effective level
// is the maximum over their roles. Guild managers bypass role grants and act
// as officers.
func (s *Service) AccessLevel(ctx context.Context, guildID int64, roleIDs []int64, manager bool) (enums.AccessLevel, error) {
	if err := s.requireRegistered(ctx, guildID); err != nil {
		return enums.AccessLevelNone, err
	}
	if manager {
		return enums.AccessLevelOfficer, nil
	}

	level, err := s.repo.MaxAccessLevel(ctx, guildID, roleIDs)
	if err != nil {
		return enums.AccessLevelNone, errors.Wrap(errors.CodeInternal, err, "resolving access level")
	}
	parsed, err := enums.ParseAccessLevel(level)
	if err != nil {
		return enums.AccessLevelNone, nil
	}
	return parsed, nil
}

// ListAccess returns the guild's role grants.
func (s *Service) ListAccess(ctx context.Context, guildID int64) ([]models.RoleAccess, error) {
	if err := s.requireRegistered(ctx, guildID); err != nil {
		return nil, err
	}
	grants, err := s.repo.ListRoleAccess(ctx, guildID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing role access")
	}
	return grants, nil
}

func (s *Service) requireRegistered(ctx context.Context, guildID int64) error {
	exists, err := s.repo.GuildExists(ctx, guildID)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "checking guild registration")
	}
	if !exists {
		return errors.New(errors.CodeNotRegistered, "guild is not registered")
	}
	return nil
}
