package models

// Route is reserved for future pathfinding between towns. The table exists in
// the schema but nothing reads or writes it yet.
type Route struct {
	ID        int64 `gorm:"column:id;primaryKey;autoIncrement"`
	FromID    int64 `gorm:"column:from_id;not null;uniqueIndex:idx_routes_from_to"`
	ToID      int64 `gorm:"column:to_id;not null;uniqueIndex:idx_routes_from_to"`
	EstLength int64 `gorm:"column:est_length;not null"`
}
