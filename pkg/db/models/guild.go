package models

// Guild is a registered chat community, the root of all tenant-scoped data.
// The ID is the chat platform's snowflake, so it is never auto-generated.
type Guild struct {
	ID   int64  `gorm:"column:id;primaryKey"`
	Name string `gorm:"column:name;not null"`
}
