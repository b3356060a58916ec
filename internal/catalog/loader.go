package catalog

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/quartermaster-gg/quartermaster-backend/pkg/config"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/db/models"
	"github.com/quartermaster-gg/quartermaster-backend/pkg/logger"
	"gorm.io/gorm"
)

var (
	townsHeader      = []string{"name", "x", "y"}
	structuresHeader = []string{"town_name", "type", "x", "y"}
	itemsHeader = []string{
		"code_name", "display_name", "category", "per_crate",
		"factory_queue", "mpf_queue", "faction", "reserve_max_quantity",
		"shippable_type", "ingredients", "description",
	}
)

// Loader bootstraps the reference tables from the exported CSV files. It is
// meant to run once against an empty catalog.
type Loader struct {
	conn   *gorm.DB
	repo   *Repository
	logger *logger.Logger
}

// NewLoader builds a loader over the given connection.
func NewLoader(conn *gorm.DB, repo *Repository, logg *logger.Logger) *Loader {
	return &Loader{conn: conn, repo: repo, logger: logg}
}

// LoadDir imports towns, structures and items from cfg's catalog directory in
// a single transaction. Structures reference towns by name, so towns must be
// inserted first.
func (l *Loader) LoadDir(ctx context.Context, cfg config.CatalogConfig) error {
	towns, err := readTowns(filepath.Join(cfg.Dir, cfg.TownsFile))
	if err != nil {
		return err
	}
	items, err := readItems(filepath.Join(cfg.Dir, cfg.ItemsFile))
	if err != nil {
		return err
	}

	return db.WithTx(ctx, l.conn, func(tx *gorm.DB) error {
		if err := l.repo.InsertTowns(tx, towns); err != nil {
			return fmt.Errorf("inserting towns: %w", err)
		}

		townIDs := make(map[string]int64, len(towns))
		var inserted []models.Town
		if err := tx.Find(&inserted).Error; err != nil {
			return fmt.Errorf("reloading towns: %w", err)
		}
		for _, town := range inserted {
			townIDs[town.Name] = town.ID
		}

		structures, err := readStructures(filepath.Join(cfg.Dir, cfg.StructuresFile), townIDs)
		if err != nil {
			return err
		}
		if err := l.repo.InsertStructures(tx, structures); err != nil {
			return fmt.Errorf("inserting structures: %w", err)
		}
		if err := l.repo.InsertItems(tx, items); err != nil {
			return fmt.Errorf("inserting items: %w", err)
		}

		meta := map[string]any{
			"towns":      len(towns),
			"structures": len(structures),
			"items":      len(items),
		}
		l.logger.Info(l.logger.WithFields(ctx, meta), "catalog imported")
		return nil
	})
}

func readTowns(path string) ([]models.Town, error) {
	rows, err := readCSV(path, townsHeader)
	if err != nil {
		return nil, err
	}

	towns := make([]models.Town, 0, len(rows))
	for i, row := range rows {
		x, err := parseFloat(row[1])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		y, err := parseFloat(row[2])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		towns = append(towns, models.Town{Name: row[0], X: x, Y: y})
	}
	return towns, nil
}

func readStructures(path string, townIDs map[string]int64) ([]models.Structure, error) {
	rows, err := readCSV(path, structuresHeader)
	if err != nil {
		return nil, err
	}

	structures := make([]models.Structure, 0, len(rows))
	for i, row := range rows {
		townID, ok := townIDs[row[0]]
		if !ok {
			return nil, rowErr(path, i, fmt.Errorf("unknown town %q", row[0]))
		}
		x, err := parseFloat(row[2])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		y, err := parseFloat(row[3])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		structures = append(structures, models.Structure{
			TownID: townID,
			Type:   row[1],
			X:      x,
			Y:      y,
		})
	}
	return structures, nil
}

func readItems(path string) ([]models.Item, error) {
	rows, err := readCSV(path, itemsHeader)
	if err != nil {
		return nil, err
	}

	items := make([]models.Item, 0, len(rows))
	for i, row := range rows {
		perCrate, err := parseInt(row[3])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		reserveMax, err := parseInt(row[7])
		if err != nil {
			return nil, rowErr(path, i, err)
		}
		items = append(items, models.Item{
			CodeName:           row[0],
			DisplayName:        row[1],
			Category:           row[2],
			PerCrate:           perCrate,
			FactoryQueue:       row[4],
			MPFQueue:           row[5],
			Faction:            row[6],
			ReserveMaxQuantity: reserveMax,
			ShippableType:      row[8],
			Ingredients:        row[9],
			Description:        row[10],
		})
	}
	return items, nil
}

// readCSV reads a whole file, validating the header against the expected
// column names.
func readCSV(path string, header []string) ([][]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(header)

	got, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("reading header of %s: %w", path, err)
	}
	for i := range header {
		if strings.TrimSpace(got[i]) != header[i] {
			return nil, fmt.Errorf("%s: unexpected header column %d: got %q, want %q", path, i, got[i], header[i])
		}
	}

	var rows [][]string
	for {
		row, err := reader.Read()
		if err == io.EOF {
			return rows, nil
		}
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", path, err)
		}
		rows = append(rows, row)
	}
}

func parseFloat(raw string) (float64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return strconv.ParseFloat(strings.TrimSpace(raw), 64)
}

func parseInt(raw string) (int64, error) {
	if strings.TrimSpace(raw) == "" {
		return 0, nil
	}
	return strconv.ParseInt(strings.TrimSpace(raw), 10, 64)
}

func rowErr(path string, index int, err error) error {
	// +2: one for the header, one for 1-based line numbers.
	return fmt.Errorf("%s line %d: %w", path, index+2, err)
}
