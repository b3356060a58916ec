package presets

import (
	"context"
	stdErrors "errors"

	"github.com/quartermaster-gg/quartermaster-backend/internal/quotas"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"gorm.io/gorm"
)

type presetRepo interface {
	Create(ctx context.Context, preset *models.Preset) error
	Find(ctx context.Context, guildID int64, name string) (*models.Preset, error)
	Delete(ctx context.Context, guildID int64, name string) (bool, error)
	ListByGuild(ctx context.Context, guildID int64) ([]models.Preset, error)
}

type quotaApplier interface {
	ResolveEntries(ctx context.Context, stockID int64, entries []quotas.Entry) ([]models.Quota, error)
	ApplyAdditive(ctx context.Context, stockID int64, entries []quotas.Entry) error
}

// Service manages reusable quota templates. A preset stores the raw quota
// text; it is validated against the catalog when created, then re-parsed and
// re-resolved on every application, so a later catalog rename can make an old
// preset unusable until it is recreated.
type Service struct {
	repo   presetRepo
	quotas quotaApplier
	logger *logger.Logger
}

func NewService(repo presetRepo, quotaSvc quotaApplier, logg *logger.Logger) *Service {
	return &Service{repo: repo, quotas: quotaSvc, logger: logg}
}

// Create validates and stores a new preset. The quota text must parse and
// every item name must resolve right now.
func (s *Service) Create(ctx context.Context, guildID int64, name, quotaText string) error {
	if name == "" {
		return errors.New(errors.CodeValidation, "preset name is required")
	}

	entries, err := quotas.ParseQuotaText(quotaText)
	if err != nil {
		return err
	}
	if _, err := s.quotas.ResolveEntries(ctx, 0, entries); err != nil {
		return err
	}

	if _, err := s.repo.Find(ctx, guildID, name); err == nil {
		return errors.New(errors.CodeConflict, "preset already exists")
	} else if !stdErrors.Is(err, gorm.ErrRecordNotFound) {
		return errors.Wrap(errors.CodeInternal, err, "checking preset uniqueness")
	}

	preset := &models.Preset{Name: name, GuildID: guildID, QuotaString: quotaText}
	if err := s.repo.Create(ctx, preset); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "creating preset")
	}

	meta := map[string]any{"guild_id": guildID, "preset": name}
	s.logger.Info(s.logger.WithFields(ctx, meta), "preset created")
	return nil
}

// Delete removes a preset.
func (s *Service) Delete(ctx context.Context, guildID int64, name string) error {
	deleted, err := s.repo.Delete(ctx, guildID, name)
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting preset")
	}
	if !deleted {
		return errors.New(errors.CodeNotFound, "preset not found")
	}

	meta := map[string]any{"guild_id": guildID, "preset": name}
	s.logger.Info(s.logger.WithFields(ctx, meta), "preset deleted")
	return nil
}

// Apply adds the preset's amounts onto the stockpile's quotas. Applying the
// same preset twice doubles its contribution.
func (s *Service) Apply(ctx context.Context, guildID, stockID int64, name string) error {
	preset, err := s.repo.Find(ctx, guildID, name)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.New(errors.CodeNotFound, "preset not found")
		}
		return errors.Wrap(errors.CodeInternal, err, "loading preset")
	}

	entries, err := quotas.ParseQuotaText(preset.QuotaString)
	if err != nil {
		return err
	}
	if err := s.quotas.ApplyAdditive(ctx, stockID, entries); err != nil {
		return err
	}

	meta := map[string]any{"guild_id": guildID, "stock_id": stockID, "preset": name}
	s.logger.Info(s.logger.WithFields(ctx, meta), "preset applied")
	return nil
}

// List returns the guild's presets.
func (s *Service) List(ctx context.Context, guildID int64) ([]models.Preset, error) {
	presets, err := s.repo.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing presets")
	}
	return presets, nil
}
