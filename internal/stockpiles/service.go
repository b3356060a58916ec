package stockpiles

import (
	"context"
	stdErrors "errors"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/db"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"gorm.io/gorm"
)

type stockpileRepo interface {
	Create(ctx context.Context, stockpile *models.Stockpile) error
	FindByID(ctx context.Context, stockID int64) (*models.Stockpile, error)
	Exists(ctx context.Context, guildID, structureID int64, name string) (bool, error)
	ListByGuild(ctx context.Context, guildID int64) ([]Summary, error)
	DeleteCascade(tx *gorm.DB, stockID int64) error
}

type locationFinder interface {
	FindTownByName(ctx context.Context, name string) (*models.Town, error)
	FindStructure(ctx context.Context, townID int64, structureType string) (*models.Structure, error)
}

// Service manages the lifecycle of stockpile registrations.
type Service struct {
	conn    *gorm.DB
	repo    stockpileRepo
	catalog locationFinder
	logger  *logger.Logger
}

func NewService(conn *gorm.DB, repo stockpileRepo, catalog locationFinder, logg *logger.Logger) *Service {
	return &Service{conn: conn, repo: repo, catalog: catalog, logger: logg}
}

// Create registers a stockpile at the structure of the given type in the
// given town. The location must exist in the catalog and the (guild,
// structure, name) triple must be new.
func (s *Service) Create(ctx context.Context, guildID int64, townName, structureType, name string) (*models.Stockpile, error) {
	if name == "" {
		return nil, errors.New(errors.CodeValidation, "stockpile name is required")
	}

	town, err := s.catalog.FindTownByName(ctx, townName)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "town not found: "+townName)
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up town")
	}

	structure, err := s.catalog.FindStructure(ctx, town.ID, structureType)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "no "+structureType+" in "+townName)
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "looking up structure")
	}

	exists, err := s.repo.Exists(ctx, guildID, structure.ID, name)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "checking stockpile uniqueness")
	}
	if exists {
		return nil, errors.New(errors.CodeConflict, "stockpile already registered at this structure")
	}

	stockpile := &models.Stockpile{
		Name:        name,
		GuildID:     guildID,
		StructureID: structure.ID,
	}
	if err := s.repo.Create(ctx, stockpile); err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "creating stockpile")
	}

	s.logger.Info(s.logger.WithStockpileID(s.logger.WithGuildID(ctx, guildID), stockpile.ID), "stockpile created")
	return stockpile, nil
}

// List returns the guild's stockpiles with their locations.
func (s *Service) List(ctx context.Context, guildID int64) ([]Summary, error) {
	rows, err := s.repo.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "listing stockpiles")
	}
	return rows, nil
}

// Get loads a stockpile owned by the guild. A stockpile belonging to another
// guild is reported as not found rather than forbidden.
func (s *Service) Get(ctx context.Context, guildID, stockID int64) (*models.Stockpile, error) {
	stockpile, err := s.repo.FindByID(ctx, stockID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "stockpile not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading stockpile")
	}
	if stockpile.GuildID != guildID {
		return nil, errors.New(errors.CodeNotFound, "stockpile not found")
	}
	return stockpile, nil
}

// Delete removes the stockpile and everything recorded against it. Inventory
// and quota rows fall with it in one transaction.
func (s *Service) Delete(ctx context.Context, guildID, stockID int64) error {
	if _, err := s.Get(ctx, guildID, stockID); err != nil {
		return err
	}

	err := db.WithTx(ctx, s.conn, func(tx *gorm.DB) error {
		return s.repo.DeleteCascade(tx, stockID)
	})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting stockpile")
	}

	s.logger.Info(s.logger.WithStockpileID(ctx, stockID), "stockpile deleted")
	return nil
}
