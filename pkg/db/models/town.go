package models

// Town is static reference data produced by the catalog ETL.
type Town struct {
	ID   int64   `gorm:"column:id;primaryKey;autoIncrement"`
	Name string  `gorm:"column:name;not null;uniqueIndex"`
	X    float64 `gorm:"column:x"`
	Y    float64 `gorm:"column:y"`
}
