package models

// Preset is a reusable, guild-scoped quota template. The quota list is kept as
// the raw validated text rather than normalized rows; it is re-parsed on every
// application and can go stale if items are renamed in the catalog.
type Preset struct {
	Name        string `gorm:"column:name;primaryKey"`
	GuildID     int64  `gorm:"column:guild_id;primaryKey"`
	QuotaString string `gorm:"column:quota_string;not null"`
}
