package models

// Structure is a storage facility inside a town (depot, seaport, factory...).
// The registry assumes a single structure per (town, type) pair.
type Structure struct {
	ID     int64   `gorm:"column:id;primaryKey;autoIncrement"`
	TownID int64   `gorm:"column:town_id;not null"`
	Type   string  `gorm:"column:type;not null"`
	X      float64 `gorm:"column:x"`
	Y      float64 `gorm:"column:y"`
}
