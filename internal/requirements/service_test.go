package requirements

import (
	"context"
	"testing"
	"time"

	"github.com/quartermaster-gg/quartermaster-backend/internal/quotas"
	"github.com/quartermaster-gg/quartermaster-backend/internal/stockpiles"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"gorm.io/gorm"
)

type stubSources struct {
	summary *stockpiles.Summary
	quotas  []quotas.Detail
	records []models.InventoryRecord
}

func (s *stubSources) SummaryByID(ctx context.Context, stockID int64) (*stockpiles.Summary, error) {
	if s.summary == nil {
		return nil, gorm.ErrRecordNotFound
	}
	return s.summary, nil
}

func (s *stubSources) FetchDetails(ctx context.Context, stockID int64) ([]quotas.Detail, error) {
	return s.quotas, nil
}

func (s *stubSources) ListByStock(ctx context.Context, stockID int64) ([]models.InventoryRecord, error) {
	return s.records, nil
}

func newTestService(stub *stubSources) *Service {
	return NewService(stub, stub, stub, logger.New(logger.Options{ServiceName: "test"}))
}

func baseSummary() *stockpiles.Summary {
	at := time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC)
	return &stockpiles.Summary{
		ID:            7,
		Name:          "Alpha",
		TownName:      "Abandoned Ward",
		StructureType: "Storage Depot",
		LastUpdate:    &at,
	}
}

func TestGetUnknownStockpile(t *testing.T) {
	svc := newTestService(&stubSources{})

	_, err := svc.Get(context.Background(), 7)
	typed := errors.As(err)
	if typed == nil || typed.Code() != errors.CodeNotFound {
		t.Fatalf("got %v, want not-found error", err)
	}
}

func TestGetNoQuotas(t *testing.T) {
	svc := newTestService(&stubSources{summary: baseSummary()})

	report, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if report.HasQuotas {
		t.Errorf("HasQuotas = true, want false")
	}
	if len(report.Shortfalls) != 0 {
		t.Errorf("shortfalls = %+v, want empty", report.Shortfalls)
	}
	if report.Name != "Alpha" || report.TownName != "Abandoned Ward" {
		t.Errorf("unexpected metadata: %+v", report)
	}
}

func TestGetCratedItemIgnoresLooseStock(t *testing.T) {
	// Ordinary items count crates only; loose units never satisfy the quota.
	svc := newTestService(&stubSources{
		summary: baseSummary(),
		quotas: []quotas.Detail{
			{ItemID: 1, CodeName: "RifleW", DisplayName: "Blakerow 871", Category: "SmallArms", PerCrate: 10, Amount: 10},
		},
		records: []models.InventoryRecord{
			{ItemID: 1, StockID: 7, Crates: 10, NonCrates: 1000},
		},
	})

	report, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !report.HasQuotas {
		t.Errorf("HasQuotas = false, want true")
	}
	if len(report.Shortfalls) != 0 {
		t.Errorf("shortfalls = %+v, want none (quota satisfied)", report.Shortfalls)
	}
}

func TestGetVehicleCountsLooseUnits(t *testing.T) {
	// Vehicles convert crates to units and add loose stock: 2*3+1 = 7 of 10.
	svc := newTestService(&stubSources{
		summary: baseSummary(),
		quotas: []quotas.Detail{
			{ItemID: 2, CodeName: "TruckA", DisplayName: "R-1 Hauler", Category: "EVehicleProfileType::Standard", PerCrate: 3, Amount: 10},
		},
		records: []models.InventoryRecord{
			{ItemID: 2, StockID: 7, Crates: 2, NonCrates: 1},
		},
	})

	report, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(report.Shortfalls) != 1 {
		t.Fatalf("shortfalls = %+v, want exactly one", report.Shortfalls)
	}
	if report.Shortfalls[0].Needed != 3 {
		t.Errorf("needed = %d, want 3", report.Shortfalls[0].Needed)
	}
}

func TestGetStructureCountsLooseUnits(t *testing.T) {
	svc := newTestService(&stubSources{
		summary: baseSummary(),
		quotas: []quotas.Detail{
			{ItemID: 3, CodeName: "Wall", DisplayName: "Bunker Base", Category: "Structures", PerCrate: 5, Amount: 12},
		},
		records: []models.InventoryRecord{
			{ItemID: 3, StockID: 7, Crates: 2, NonCrates: 1},
		},
	})

	report, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(report.Shortfalls) != 1 || report.Shortfalls[0].Needed != 1 {
		t.Fatalf("shortfalls = %+v, want single shortfall of 1", report.Shortfalls)
	}
}

func TestGetMissingInventoryCountsAsZero(t *testing.T) {
	svc := newTestService(&stubSources{
		summary: baseSummary(),
		quotas: []quotas.Detail{
			{ItemID: 4, CodeName: "Bandages", DisplayName: "Bandages", Category: "Medical", PerCrate: 20, Amount: 15},
		},
	})

	report, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(report.Shortfalls) != 1 || report.Shortfalls[0].Needed != 15 {
		t.Fatalf("shortfalls = %+v, want full quota owed", report.Shortfalls)
	}
}

func TestGetOverstockedAndNonPositiveQuotasDropped(t *testing.T) {
	svc := newTestService(&stubSources{
		summary: baseSummary(),
		quotas: []quotas.Detail{
			{ItemID: 5, CodeName: "Cloth", DisplayName: "Basic Materials", Category: "Materials", PerCrate: 100, Amount: 5},
			{ItemID: 6, CodeName: "Shirts", DisplayName: "Shirts", Category: "Uniforms", PerCrate: 10, Amount: 0},
			{ItemID: 7, CodeName: "Helmet", DisplayName: "Helmet", Category: "Uniforms", PerCrate: 10, Amount: -3},
		},
		records: []models.InventoryRecord{
			{ItemID: 5, StockID: 7, Crates: 9},
		},
	})

	report, err := svc.Get(context.Background(), 7)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !report.HasQuotas {
		t.Errorf("HasQuotas = false, want true")
	}
	if len(report.Shortfalls) != 0 {
		t.Errorf("shortfalls = %+v, want none", report.Shortfalls)
	}
}
