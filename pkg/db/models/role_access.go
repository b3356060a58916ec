package models

import "github.com/quartermaster-gg/quartermaster-backend/pkg/enums"

// RoleAccess maps a chat role to its access level within a guild.
// Upserts are last-write-wins on the composite key.
type RoleAccess struct {
	GuildID     int64             `gorm:"column:guild_id;primaryKey"`
	RoleID      int64             `gorm:"column:role_id;primaryKey"`
	AccessLevel enums.AccessLevel `gorm:"column:access_level;not null"`
}

func (RoleAccess) TableName() string { return "role_access" }
