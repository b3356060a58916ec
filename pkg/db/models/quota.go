package models

// Quota is the target quantity of an item at a stockpile. Upserts overwrite
// the amount; only preset application accumulates.
type Quota struct {
	StockID int64 `gorm:"column:stock_id;primaryKey"`
	ItemID  int64 `gorm:"column:item_id;primaryKey"`
	Amount  int64 `gorm:"column:amount;not null"`
}

func (Quota) TableName() string { return "quotas" }
