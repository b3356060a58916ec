package inventory

import (
	"context"
	"testing"
	"time"

	"github.com/quartermaster-gg/quartermaster-backend/internal/catalog"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type fixture struct {
	svc    *Service
	conn   *gorm.DB
	cloth  models.Item
	rifle  models.Item
	stockA models.Stockpile
	stockB models.Stockpile
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Guild{}, &models.Town{}, &models.Structure{},
		&models.Item{}, &models.Stockpile{}, &models.InventoryRecord{},
	))

	f := &fixture{conn: conn}
	f.cloth = models.Item{CodeName: "Cloth", DisplayName: "Basic Materials", PerCrate: 100}
	f.rifle = models.Item{CodeName: "RifleW", DisplayName: "Blakerow 871", PerCrate: 10}
	require.NoError(t, conn.Create(&f.cloth).Error)
	require.NoError(t, conn.Create(&f.rifle).Error)

	require.NoError(t, conn.Create(&models.Guild{ID: 42, Name: "Legion"}).Error)
	town := models.Town{Name: "Abandoned Ward"}
	require.NoError(t, conn.Create(&town).Error)
	structure := models.Structure{TownID: town.ID, Type: "Storage Depot"}
	require.NoError(t, conn.Create(&structure).Error)

	f.stockA = models.Stockpile{Name: "Alpha", GuildID: 42, StructureID: structure.ID}
	f.stockB = models.Stockpile{Name: "Bravo", GuildID: 42, StructureID: structure.ID}
	require.NoError(t, conn.Create(&f.stockA).Error)
	require.NoError(t, conn.Create(&f.stockB).Error)

	logg := logger.New(logger.Options{ServiceName: "test"})
	f.svc = NewService(conn, NewRepository(conn), catalog.NewRepository(conn), logg)
	f.svc.now = func() time.Time { return time.Date(2026, 2, 3, 4, 5, 6, 0, time.UTC) }
	return f
}

func (f *fixture) records(t *testing.T, stockID int64) []models.InventoryRecord {
	t.Helper()
	var records []models.InventoryRecord
	require.NoError(t, f.conn.Where("stock_id = ?", stockID).Order("item_id").Find(&records).Error)
	return records
}

func TestUpdateSingleReplacesInventory(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rows := []Row{
		{CodeName: "Cloth", DisplayName: "Basic Materials", Quantity: 5, Crated: true},
		{CodeName: "Cloth", DisplayName: "Basic Materials", Quantity: 30, Crated: false},
		{CodeName: "RifleW", DisplayName: "Blakerow 871", Quantity: 2, Crated: true},
	}
	require.NoError(t, f.svc.UpdateSingle(ctx, f.stockA.ID, rows))

	records := f.records(t, f.stockA.ID)
	require.Len(t, records, 2)
	require.Equal(t, int64(5), records[0].Crates)
	require.Equal(t, int64(30), records[0].NonCrates)
	require.Equal(t, int64(2), records[1].Crates)
	require.Zero(t, records[1].NonCrates)

	var stockpile models.Stockpile
	require.NoError(t, f.conn.First(&stockpile, f.stockA.ID).Error)
	require.NotNil(t, stockpile.LastUpdate)

	// A later upload fully replaces the earlier one.
	require.NoError(t, f.svc.UpdateSingle(ctx, f.stockA.ID, []Row{
		{CodeName: "RifleW", DisplayName: "Blakerow 871", Quantity: 9, Crated: true},
	}))
	records = f.records(t, f.stockA.ID)
	require.Len(t, records, 1)
	require.Equal(t, f.rifle.ID, records[0].ItemID)
	require.Equal(t, int64(9), records[0].Crates)
}

func TestUpdateSingleIsIdempotent(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rows := []Row{{CodeName: "Cloth", DisplayName: "Basic Materials", Quantity: 5, Crated: true}}
	require.NoError(t, f.svc.UpdateSingle(ctx, f.stockA.ID, rows))
	require.NoError(t, f.svc.UpdateSingle(ctx, f.stockA.ID, rows))

	records := f.records(t, f.stockA.ID)
	require.Len(t, records, 1)
	require.Equal(t, int64(5), records[0].Crates)
}

func TestUpdateSingleRejectsEmpty(t *testing.T) {
	f := newFixture(t)

	err := f.svc.UpdateSingle(context.Background(), f.stockA.ID, nil)
	typed := errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeValidation, typed.Code())
}

func TestUpdateSingleUnknownItemWritesNothing(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	require.NoError(t, f.svc.UpdateSingle(ctx, f.stockA.ID, []Row{
		{CodeName: "Cloth", DisplayName: "Basic Materials", Quantity: 5, Crated: true},
	}))

	err := f.svc.UpdateSingle(ctx, f.stockA.ID, []Row{
		{CodeName: "Cloth", DisplayName: "Basic Materials", Quantity: 9, Crated: true},
		{CodeName: "Ghost", DisplayName: "Phantom Crate", Quantity: 1, Crated: true},
	})
	typed := errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeNotFound, typed.Code())
	require.Contains(t, typed.Message(), "Phantom Crate")

	// The previous upload survives untouched.
	records := f.records(t, f.stockA.ID)
	require.Len(t, records, 1)
	require.Equal(t, int64(5), records[0].Crates)
}

func TestUpdateMultiple(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	refA := "1.alpha"
	refB := "2.bravo"
	rows := []Row{
		{StockRef: refA, CodeName: "Cloth", DisplayName: "Basic Materials", Quantity: 5, Crated: true},
		{StockRef: refB, CodeName: "RifleW", DisplayName: "Blakerow 871", Quantity: 3, Crated: true},
	}
	// Fixture ids are 1 and 2 in insertion order.
	require.Equal(t, int64(1), f.stockA.ID)
	require.Equal(t, int64(2), f.stockB.ID)

	require.NoError(t, f.svc.UpdateMultiple(ctx, []int64{f.stockA.ID, f.stockB.ID}, rows))

	require.Len(t, f.records(t, f.stockA.ID), 1)
	require.Len(t, f.records(t, f.stockB.ID), 1)

	var stockpiles []models.Stockpile
	require.NoError(t, f.conn.Find(&stockpiles).Error)
	for _, stockpile := range stockpiles {
		require.NotNil(t, stockpile.LastUpdate, "stockpile %d should be stamped", stockpile.ID)
	}
}

func TestUpdateMultipleDeclaredMismatch(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rows := []Row{
		{StockRef: "1.alpha", CodeName: "Cloth", DisplayName: "Basic Materials", Quantity: 5, Crated: true},
	}

	// Declared but absent from the export.
	err := f.svc.UpdateMultiple(ctx, []int64{f.stockA.ID, f.stockB.ID}, rows)
	typed := errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeValidation, typed.Code())

	// Present in the export but not declared.
	err = f.svc.UpdateMultiple(ctx, []int64{f.stockB.ID}, rows)
	typed = errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeValidation, typed.Code())

	require.Empty(t, f.records(t, f.stockA.ID))
	require.Empty(t, f.records(t, f.stockB.ID))
}

func TestUpdateMultipleRejectsUntaggedRows(t *testing.T) {
	f := newFixture(t)

	rows := []Row{
		{StockRef: "untitled", CodeName: "Cloth", DisplayName: "Basic Materials", Quantity: 5, Crated: true},
	}
	err := f.svc.UpdateMultiple(context.Background(), []int64{f.stockA.ID}, rows)
	typed := errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeValidation, typed.Code())
}

func TestUpdateMultipleUnknownItemIsAtomic(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	rows := []Row{
		{StockRef: "1.alpha", CodeName: "Cloth", DisplayName: "Basic Materials", Quantity: 5, Crated: true},
		{StockRef: "2.bravo", CodeName: "Ghost", DisplayName: "Phantom Crate", Quantity: 1, Crated: true},
	}
	err := f.svc.UpdateMultiple(ctx, []int64{f.stockA.ID, f.stockB.ID}, rows)
	typed := errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeNotFound, typed.Code())

	require.Empty(t, f.records(t, f.stockA.ID))
	require.Empty(t, f.records(t, f.stockB.ID))
}
