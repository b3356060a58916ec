package stockpiles

import (
	"context"
	"testing"

	"github.com/quartermaster-gg/quartermaster-backend/internal/catalog"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/errors"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Guild{}, &models.Town{}, &models.Structure{},
		&models.Stockpile{}, &models.InventoryRecord{}, &models.Quota{},
		&models.Item{},
	))

	require.NoError(t, conn.Create(&models.Guild{ID: 42, Name: "Legion"}).Error)
	town := models.Town{Name: "Abandoned Ward", X: 0.1, Y: 0.2}
	require.NoError(t, conn.Create(&town).Error)
	require.NoError(t, conn.Create(&models.Structure{
		TownID: town.ID, Type: "Storage Depot",
	}).Error)

	logg := logger.New(logger.Options{ServiceName: "test"})
	svc := NewService(conn, NewRepository(conn), catalog.NewRepository(conn), logg)
	return svc, conn
}

func TestCreateAndList(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 42, "Abandoned Ward", "Storage Depot", "Alpha")
	require.NoError(t, err)
	require.NotZero(t, created.ID)
	require.Nil(t, created.LastUpdate)

	rows, err := svc.List(ctx, 42)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, "Alpha", rows[0].Name)
	require.Equal(t, "Abandoned Ward", rows[0].TownName)
	require.Equal(t, "Storage Depot", rows[0].StructureType)
	require.Nil(t, rows[0].LastUpdate)

	// Other guilds never see it.
	rows, err = svc.List(ctx, 99)
	require.NoError(t, err)
	require.Empty(t, rows)
}

func TestCreateUnknownLocation(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 42, "Nowhere", "Storage Depot", "Alpha")
	typed := errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeNotFound, typed.Code())

	_, err = svc.Create(ctx, 42, "Abandoned Ward", "Seaport", "Alpha")
	typed = errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeNotFound, typed.Code())
}

func TestCreateDuplicateTriple(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, 42, "Abandoned Ward", "Storage Depot", "Alpha")
	require.NoError(t, err)

	_, err = svc.Create(ctx, 42, "Abandoned Ward", "Storage Depot", "Alpha")
	typed := errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeConflict, typed.Code())

	// A different name at the same structure is fine.
	_, err = svc.Create(ctx, 42, "Abandoned Ward", "Storage Depot", "Bravo")
	require.NoError(t, err)
}

func TestDeleteCascades(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 42, "Abandoned Ward", "Storage Depot", "Alpha")
	require.NoError(t, err)

	item := models.Item{CodeName: "Cloth", DisplayName: "Basic Materials"}
	require.NoError(t, conn.Create(&item).Error)
	require.NoError(t, conn.Create(&models.InventoryRecord{
		ItemID: item.ID, StockID: created.ID, Crates: 5,
	}).Error)
	require.NoError(t, conn.Create(&models.Quota{
		StockID: created.ID, ItemID: item.ID, Amount: 10,
	}).Error)

	require.NoError(t, svc.Delete(ctx, 42, created.ID))

	for _, model := range []any{&models.Stockpile{}, &models.InventoryRecord{}, &models.Quota{}} {
		var count int64
		require.NoError(t, conn.Model(model).Count(&count).Error)
		require.Zero(t, count)
	}
}

func TestDeleteForeignGuild(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 42, "Abandoned Ward", "Storage Depot", "Alpha")
	require.NoError(t, err)

	err = svc.Delete(ctx, 99, created.ID)
	typed := errors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, errors.CodeNotFound, typed.Code())
}
