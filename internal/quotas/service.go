package quotas

import (
	"context"
	"fmt"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/db"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

type quotaRepo interface {
	Upsert(ctx context.Context, quotas []models.Quota) error
	Accumulate(tx *gorm.DB, quotas []models.Quota) error
	DeleteByStock(ctx context.Context, stockID int64) error
	FetchDetails(ctx context.Context, stockID int64) ([]Detail, error)
}

type itemsByNameFinder interface {
	ItemsByDisplayNames(ctx context.Context, names []string) (map[string]models.Item, error)
}

type nameSuggester interface {
	FindClosestNames(ctx context.Context, names []string) (map[string]string, error)
}

// Suggestion pairs an unresolved item name with the catalog's closest guess,
// if any.
type Suggestion struct {
	Name       string `json:"name"`
	Suggestion string `json:"suggestion,omitempty"`
}

// Service manages per-stockpile quotas. Item names in quota text resolve
// against catalog display names all-or-nothing; a single unknown name rejects
// the whole request.
type Service struct {
	conn     *gorm.DB
	repo     quotaRepo
	catalog  itemsByNameFinder
	resolver nameSuggester
	logger   *logger.Logger
}

func NewService(conn *gorm.DB, repo quotaRepo, catalog itemsByNameFinder, resolver nameSuggester, logg *logger.Logger) *Service {
	return &Service{conn: conn, repo: repo, catalog: catalog, resolver: resolver, logger: logg}
}

// Add parses the quota text and writes the quotas, overwriting existing
// amounts for the named items. Other items on the stockpile are untouched.
func (s *Service) Add(ctx context.Context, stockID int64, text string) error {
	entries, err := ParseQuotaText(text)
	if err != nil {
		return err
	}

	quotas, err := s.ResolveEntries(ctx, stockID, entries)
	if err != nil {
		return err
	}

	if err := s.repo.Upsert(ctx, quotas); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "storing quotas")
	}

	meta := map[string]any{"stock_id": stockID, "items": len(quotas)}
	s.logger.Info(s.logger.WithFields(ctx, meta), "quotas set")
	return nil
}

// ApplyAdditive adds each entry's amount onto the stored quota, creating the
// quota when absent. All entries land in one transaction.
func (s *Service) ApplyAdditive(ctx context.Context, stockID int64, entries []Entry) error {
	quotas, err := s.ResolveEntries(ctx, stockID, entries)
	if err != nil {
		return err
	}

	err = db.WithTx(ctx, s.conn, func(tx *gorm.DB) error {
		return s.repo.Accumulate(tx, quotas)
	})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "accumulating quotas")
	}

	meta := map[string]any{"stock_id": stockID, "items": len(quotas)}
	s.logger.Info(s.logger.WithFields(ctx, meta), "quotas accumulated")
	return nil
}

// Delete clears every quota on the stockpile.
func (s *Service) Delete(ctx context.Context, stockID int64) error {
	if err := s.repo.DeleteByStock(ctx, stockID); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "deleting quotas")
	}
	s.logger.Info(s.logger.WithStockpileID(ctx, stockID), "quotas cleared")
	return nil
}

// Fetch returns the stockpile's quotas with item details. An empty result is
// not an error.
func (s *Service) Fetch(ctx context.Context, stockID int64) ([]Detail, error) {
	details, err := s.repo.FetchDetails(ctx, stockID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "fetching quotas")
	}
	return details, nil
}

// ResolveEntries maps parsed entries onto catalog items. When any name fails
// to resolve, the error carries one suggestion per failing name and no quotas
// are returned.
func (s *Service) ResolveEntries(ctx context.Context, stockID int64, entries []Entry) ([]models.Quota, error) {
	names := make([]string, 0, len(entries))
	for _, entry := range entries {
		names = append(names, entry.Name)
	}

	items, err := s.catalog.ItemsByDisplayNames(ctx, names)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "resolving item names")
	}

	var unresolved []string
	for _, entry := range entries {
		if _, ok := items[entry.Name]; !ok {
			unresolved = append(unresolved, entry.Name)
		}
	}
	if len(unresolved) > 0 {
		return nil, s.unresolvedError(ctx, unresolved)
	}

	quotas := make([]models.Quota, 0, len(entries))
	for _, entry := range entries {
		quotas = append(quotas, models.Quota{
			StockID: stockID,
			ItemID:  items[entry.Name].ID,
			Amount:  entry.Amount,
		})
	}
	return quotas, nil
}

func (s *Service) unresolvedError(ctx context.Context, names []string) error {
	suggestions := make([]Suggestion, 0, len(names))
	guesses, err := s.resolver.FindClosestNames(ctx, names)
	if err != nil {
		s.logger.Warn(ctx, "suggestion lookup failed: "+err.Error())
		guesses = map[string]string{}
	}

	var cause error
	for _, name := range names {
		suggestions = append(suggestions, Suggestion{Name: name, Suggestion: guesses[name]})
		cause = multierr.Append(cause, fmt.Errorf("unknown item %q", name))
	}

	return errors.Wrap(errors.CodeNotFound, cause, "some item names were not recognized").
		WithDetails(suggestions)
}
