package models

import "strings"

const (
	// CategoryStructures tags buildable structures in the item catalog.
	CategoryStructures = "Structures"

	// vehicleProfilePrefix matches the game's vehicle profile category values
	// (e.g. "EVehicleProfileType::Standard") as written by the catalog ETL.
	vehicleProfilePrefix = "EVehicleProfileType"
)

// Item is static reference data keyed by a stable machine code name. The
// display name is what players see and what quota text refers to; every query
// path treats it as unique.
type Item struct {
	ID                 int64  `gorm:"column:id;primaryKey;autoIncrement"`
	CodeName           string `gorm:"column:code_name;not null;uniqueIndex"`
	DisplayName        string `gorm:"column:display_name;not null"`
	Category           string `gorm:"column:category"`
	PerCrate           int64  `gorm:"column:per_crate"`
	FactoryQueue       string `gorm:"column:factory_queue"`
	MPFQueue           string `gorm:"column:mpf_queue"`
	Faction            string `gorm:"column:faction"`
	ReserveMaxQuantity int64  `gorm:"column:reserve_max_quantity"`
	ShippableType      string `gorm:"column:shippable_type"`
	Ingredients        string `gorm:"column:ingredients"`
	Description        string `gorm:"column:description"`
}

// CountsLooseUnits reports whether uncrated units of this item count toward a
// quota. Vehicles and structures are fielded uncrated, so their loose count is
// real stock; for everything else only crated goods are considered stocked.
func (i Item) CountsLooseUnits() bool {
	return i.Category == CategoryStructures || strings.HasPrefix(i.Category, vehicleProfilePrefix)
}
