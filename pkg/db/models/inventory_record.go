package models

// InventoryRecord is the current on-hand count of one item at one stockpile,
// split by packaging. Crated and loose counts are tracked independently
// because conversion to a common unit depends on the item's category.
type InventoryRecord struct {
	ItemID    int64 `gorm:"column:item_id;primaryKey"`
	StockID   int64 `gorm:"column:stock_id;primaryKey"`
	Crates    int64 `gorm:"column:crates;not null;default:0"`
	NonCrates int64 `gorm:"column:non_crates;not null;default:0"`
}

func (InventoryRecord) TableName() string { return "inventory" }
