package models

import "time"

// Stockpile is a named inventory location bound to a structure, scoped to one
// guild. No two stockpiles share (guild_id, structure_id, name). LastUpdate is
// nil until the first inventory upload lands.
type Stockpile struct {
	ID          int64      `gorm:"column:id;primaryKey;autoIncrement"`
	Name        string     `gorm:"column:name;not null;uniqueIndex:idx_stockpiles_guild_structure_name"`
	GuildID     int64      `gorm:"column:guild_id;not null;uniqueIndex:idx_stockpiles_guild_structure_name"`
	StructureID int64      `gorm:"column:structure_id;not null;uniqueIndex:idx_stockpiles_guild_structure_name"`
	LastUpdate  *time.Time `gorm:"column:last_update"`
}
