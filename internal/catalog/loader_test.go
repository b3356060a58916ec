package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/config"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, conn.AutoMigrate(
		&models.Town{}, &models.Structure{}, &models.Item{},
	))
	return conn
}

func writeCatalogDir(t *testing.T) config.CatalogConfig {
	t.Helper()
	dir := t.TempDir()

	files := map[string]string{
		"towns.csv": "name,x,y\n" +
			"Abandoned Ward,0.1,0.2\n" +
			"Ash Fields,0.3,0.4\n",
		"structures.csv": "town_name,type,x,y\n" +
			"Abandoned Ward,Storage Depot,0.11,0.21\n" +
			"Ash Fields,Seaport,0.31,0.41\n",
		"items.csv": "code_name,display_name,category,per_crate,factory_queue,mpf_queue,faction,reserve_max_quantity,shippable_type,ingredients,description\n" +
			"Cloth,Basic Materials,Materials,100,,,NEUTRAL,0,Crate,,Basic building blocks\n" +
			"RifleW,Blakerow 871,SmallArms,10,Weapons,Weapons,WARDENS,0,Crate,,A long rifle\n",
	}
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}

	return config.CatalogConfig{
		Dir:            dir,
		TownsFile:      "towns.csv",
		StructuresFile: "structures.csv",
		ItemsFile:      "items.csv",
	}
}

func TestLoadDir(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	logg := logger.New(logger.Options{ServiceName: "test"})
	loader := NewLoader(conn, repo, logg)

	require.NoError(t, loader.LoadDir(context.Background(), writeCatalogDir(t)))

	ctx := context.Background()

	town, err := repo.FindTownByName(ctx, "Ash Fields")
	require.NoError(t, err)
	require.Equal(t, 0.3, town.X)

	structure, err := repo.FindStructure(ctx, town.ID, "Seaport")
	require.NoError(t, err)
	require.Equal(t, town.ID, structure.TownID)

	items, err := repo.ItemsByDisplayNames(ctx, []string{"Blakerow 871"})
	require.NoError(t, err)
	require.Equal(t, int64(10), items["Blakerow 871"].PerCrate)

	names, err := repo.ListDisplayNames(ctx)
	require.NoError(t, err)
	require.Len(t, names, 2)
}

func TestLoadDirRejectsBadHeader(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	logg := logger.New(logger.Options{ServiceName: "test"})
	loader := NewLoader(conn, repo, logg)

	cfg := writeCatalogDir(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.Dir, cfg.TownsFile),
		[]byte("town,x,y\nAbandoned Ward,0.1,0.2\n"), 0o644,
	))

	err := loader.LoadDir(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), "unexpected header")
}

func TestLoadDirRejectsUnknownTownReference(t *testing.T) {
	conn := openTestDB(t)
	repo := NewRepository(conn)
	logg := logger.New(logger.Options{ServiceName: "test"})
	loader := NewLoader(conn, repo, logg)

	cfg := writeCatalogDir(t)
	require.NoError(t, os.WriteFile(
		filepath.Join(cfg.Dir, cfg.StructuresFile),
		[]byte("town_name,type,x,y\nNowhere,Storage Depot,0,0\n"), 0o644,
	))

	err := loader.LoadDir(context.Background(), cfg)
	require.Error(t, err)
	require.Contains(t, err.Error(), `unknown town "Nowhere"`)

	// The transaction must leave no partial town rows behind.
	var count int64
	require.NoError(t, conn.Model(&models.Town{}).Count(&count).Error)
	require.Zero(t, count)
}
