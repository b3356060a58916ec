package requirements

import (
	"context"
	stdErrors "errors"
	"time"

	"github.com/quartermaster-gg/quartermaster-backend/internal/quotas"
	"github.com/quartermaster-gg/quartermaster-backend/internal/stockpiles"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"gorm.io/gorm"
)

// Shortfall is one item still owed against its quota.
type Shortfall struct {
	ItemID      int64  `json:"item_id"`
	CodeName    string `json:"code_name"`
	DisplayName string `json:"display_name"`
	Needed      int64  `json:"needed"`
}

// Report is the shortfall view of a stockpile. HasQuotas distinguishes "no
// quotas configured" from "all quotas satisfied": both produce an empty
// shortfall list.
type Report struct {
	StockID       int64       `json:"stock_id"`
	Name          string      `json:"name"`
	TownName      string      `json:"town_name"`
	StructureType string      `json:"structure_type"`
	LastUpdate    *time.Time  `json:"last_update"`
	HasQuotas     bool        `json:"has_quotas"`
	Shortfalls    []Shortfall `json:"shortfalls"`
}

type stockpileSource interface {
	SummaryByID(ctx context.Context, stockID int64) (*stockpiles.Summary, error)
}

type quotaSource interface {
	FetchDetails(ctx context.Context, stockID int64) ([]quotas.Detail, error)
}

type inventorySource interface {
	ListByStock(ctx context.Context, stockID int64) ([]models.InventoryRecord, error)
}

// Service computes what a stockpile still needs to meet its quotas.
type Service struct {
	stockpiles stockpileSource
	quotas     quotaSource
	inventory  inventorySource
	logger     *logger.Logger
}

func NewService(stockSrc stockpileSource, quotaSrc quotaSource, invSrc inventorySource, logg *logger.Logger) *Service {
	return &Service{stockpiles: stockSrc, quotas: quotaSrc, inventory: invSrc, logger: logg}
}

// Get builds the shortfall report for a stockpile. Quota amounts count crates
// for most items; vehicles and structures are fielded uncrated, so their
// on-hand stock is crates times crate size plus loose units.
func (s *Service) Get(ctx context.Context, stockID int64) (*Report, error) {
	summary, err := s.stockpiles.SummaryByID(ctx, stockID)
	if err != nil {
		if stdErrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.New(errors.CodeNotFound, "stockpile not found")
		}
		return nil, errors.Wrap(errors.CodeInternal, err, "loading stockpile")
	}

	quotaDetails, err := s.quotas.FetchDetails(ctx, stockID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading quotas")
	}

	records, err := s.inventory.ListByStock(ctx, stockID)
	if err != nil {
		return nil, errors.Wrap(errors.CodeInternal, err, "loading inventory")
	}
	onHand := make(map[int64]models.InventoryRecord, len(records))
	for _, record := range records {
		onHand[record.ItemID] = record
	}

	report := &Report{
		StockID:       summary.ID,
		Name:          summary.Name,
		TownName:      summary.TownName,
		StructureType: summary.StructureType,
		LastUpdate:    summary.LastUpdate,
		HasQuotas:     len(quotaDetails) > 0,
		Shortfalls:    []Shortfall{},
	}

	for _, quota := range quotaDetails {
		needed := quota.Amount - stockedAmount(quota, onHand[quota.ItemID])
		if needed < 1 {
			continue
		}
		report.Shortfalls = append(report.Shortfalls, Shortfall{
			ItemID:      quota.ItemID,
			CodeName:    quota.CodeName,
			DisplayName: quota.DisplayName,
			Needed:      needed,
		})
	}
	return report, nil
}

// stockedAmount converts an inventory record into quota units for the item.
func stockedAmount(quota quotas.Detail, record models.InventoryRecord) int64 {
	item := models.Item{Category: quota.Category}
	if item.CountsLooseUnits() {
		return record.Crates*quota.PerCrate + record.NonCrates
	}
	return record.Crates
}
