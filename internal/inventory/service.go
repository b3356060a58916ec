package inventory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/db"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"gorm.io/gorm"
)

type inventoryRepo interface {
	ReplaceForStock(tx *gorm.DB, stockID int64, records []models.InventoryRecord) error
	StampLastUpdate(tx *gorm.DB, stockID int64, at time.Time) error
	ListByStock(ctx context.Context, stockID int64) ([]models.InventoryRecord, error)
}

type itemsByCodeFinder interface {
	ItemsByCodeNames(ctx context.Context, codes []string) (map[string]models.Item, error)
}

// Service ingests scanner exports. Uploads replace a stockpile's inventory
// wholesale; there is no partial merge.
type Service struct {
	conn    *gorm.DB
	repo    inventoryRepo
	catalog itemsByCodeFinder
	logger  *logger.Logger
	now     func() time.Time
}

func NewService(conn *gorm.DB, repo inventoryRepo, catalog itemsByCodeFinder, logg *logger.Logger) *Service {
	return &Service{
		conn:    conn,
		repo:    repo,
		catalog: catalog,
		logger:  logg,
		now:     time.Now,
	}
}

// UpdateSingle replaces one stockpile's inventory with the uploaded rows. The
// whole upload is rejected when any row names an item the catalog does not
// know.
func (s *Service) UpdateSingle(ctx context.Context, stockID int64, rows []Row) error {
	if len(rows) == 0 {
		return errors.New(errors.CodeValidation, "export contains no inventory rows")
	}

	records, err := s.buildRecords(ctx, stockID, rows)
	if err != nil {
		return err
	}

	at := s.now().UTC()
	err = db.WithTx(ctx, s.conn, func(tx *gorm.DB) error {
		if err := s.repo.ReplaceForStock(tx, stockID, records); err != nil {
			return err
		}
		return s.repo.StampLastUpdate(tx, stockID, at)
	})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "replacing inventory")
	}

	meta := map[string]any{"stock_id": stockID, "items": len(records)}
	s.logger.Info(s.logger.WithFields(ctx, meta), "inventory replaced")
	return nil
}

// UpdateMultiple replaces the inventory of several stockpiles from one export.
// The declared stockpile ids and the ids referenced by the rows must match
// exactly; on any mismatch nothing is written.
func (s *Service) UpdateMultiple(ctx context.Context, declared []int64, rows []Row) error {
	if len(rows) == 0 {
		return errors.New(errors.CodeValidation, "export contains no inventory rows")
	}
	if len(declared) == 0 {
		return errors.New(errors.CodeValidation, "no stockpile ids declared")
	}

	grouped, err := groupByStock(rows)
	if err != nil {
		return err
	}
	if err := checkDeclaredMatch(declared, grouped); err != nil {
		return err
	}

	recordsByStock := make(map[int64][]models.InventoryRecord, len(grouped))
	for stockID, stockRows := range grouped {
		records, err := s.buildRecords(ctx, stockID, stockRows)
		if err != nil {
			return err
		}
		recordsByStock[stockID] = records
	}

	at := s.now().UTC()
	err = db.WithTx(ctx, s.conn, func(tx *gorm.DB) error {
		for stockID, records := range recordsByStock {
			if err := s.repo.ReplaceForStock(tx, stockID, records); err != nil {
				return err
			}
			if err := s.repo.StampLastUpdate(tx, stockID, at); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return errors.Wrap(errors.CodeInternal, err, "replacing inventory")
	}

	meta := map[string]any{"stockpiles": len(recordsByStock), "rows": len(rows)}
	s.logger.Info(s.logger.WithFields(ctx, meta), "multi-stockpile inventory replaced")
	return nil
}

// buildRecords resolves every row against the catalog and collapses duplicate
// items into one record with crated and loose counts filled independently.
func (s *Service) buildRecords(ctx context.Context, stockID int64, rows []Row) ([]models.InventoryRecord, error) {
	codes := make([]string, 0, len(rows))
	for _, row := range rows {
		codes = append(codes, row.CodeName)
	}

	items, err := s.catalog.ItemsByCodeNames(ctx, codes)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "resolving catalog items")
	}

	byItem := make(map[int64]*models.InventoryRecord)
	order := make([]int64, 0, len(rows))
	for _, row := range rows {
		item, ok := items[row.CodeName]
		if !ok {
			return nil, errors.New(errors.CodeNotFound,
				fmt.Sprintf("unknown item %q (%s)", row.DisplayName, row.CodeName))
		}

		record := byItem[item.ID]
		if record == nil {
			record = &models.InventoryRecord{ItemID: item.ID, StockID: stockID}
			byItem[item.ID] = record
			order = append(order, item.ID)
		}
		if row.Crated {
			record.Crates += row.Quantity
		} else {
			record.NonCrates += row.Quantity
		}
	}

	records := make([]models.InventoryRecord, 0, len(order))
	for _, itemID := range order {
		records = append(records, *byItem[itemID])
	}
	return records, nil
}

func groupByStock(rows []Row) (map[int64][]Row, error) {
	grouped := make(map[int64][]Row)
	for _, row := range rows {
		stockID, ok := ParseStockRef(row.StockRef)
		if !ok {
			return nil, errors.New(errors.CodeValidation,
				fmt.Sprintf("stockpile title %q does not start with a stockpile id", row.StockRef))
		}
		grouped[stockID] = append(grouped[stockID], row)
	}
	return grouped, nil
}

// checkDeclaredMatch requires an exact correspondence between the declared
// ids and the ids present in the export.
func checkDeclaredMatch(declared []int64, grouped map[int64][]Row) error {
	declaredSet := make(map[int64]bool, len(declared))
	for _, id := range declared {
		declaredSet[id] = true
	}

	var missing, extra []int64
	for id := range declaredSet {
		if _, ok := grouped[id]; !ok {
			missing = append(missing, id)
		}
	}
	for id := range grouped {
		if !declaredSet[id] {
			extra = append(extra, id)
		}
	}
	if len(missing) == 0 && len(extra) == 0 {
		return nil
	}

	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	sort.Slice(extra, func(i, j int) bool { return extra[i] < extra[j] })
	return errors.New(errors.CodeValidation, "declared stockpiles do not match the export").
		WithDetails(map[string]any{
			"declared_but_absent":    missing,
			"present_but_undeclared": extra,
		})
}

// ListByStock exposes the stored records, keyed by item id.
func (s *Service) ListByStock(ctx context.Context, stockID int64) (map[int64]models.InventoryRecord, error) {
	records, err := s.repo.ListByStock(ctx, stockID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading inventory")
	}
	out := make(map[int64]models.InventoryRecord, len(records))
	for _, record := range records {
		out[record.ItemID] = record
	}
	return out, nil
}
