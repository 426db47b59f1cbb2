package models

import "time"

// StoreEntry is one row of the persistent key-value store backing the
// image cache and device tokens when CACHE_BACKEND=mysql.
type StoreEntry struct {
	EntryKey  string    `gorm:"primaryKey;size:255" json:"key"`
	Value     string    `gorm:"type:text;not null" json:"value"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// TableName specifies the table name for StoreEntry model
func (StoreEntry) TableName() string {
	return "store_entries"
}
