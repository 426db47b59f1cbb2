package repository

import (
	"context"
	"errors"

	"choosecare-bff/internal/kvstore"
	"choosecare-bff/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StoreEntryRepository is the MySQL-backed kvstore.Store.
type StoreEntryRepository struct {
	db *gorm.DB
}

func NewStoreEntryRepo(db *gorm.DB) *StoreEntryRepository {
	return &StoreEntryRepository{db: db}
}

// Get finds an entry by key
func (r *StoreEntryRepository) Get(ctx context.Context, key string) (string, error) {
	var entry models.StoreEntry
	err := r.db.WithContext(ctx).Where("entry_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", kvstore.ErrNotFound
		}
		return "", err
	}
	return entry.Value, nil
}

// Set inserts or overwrites an entry
func (r *StoreEntryRepository) Set(ctx context.Context, key, value string) error {
	entry := &models.StoreEntry{EntryKey: key, Value: value}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "entry_key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(entry).Error
}

// Delete removes an entry; deleting a missing key is not an error
func (r *StoreEntryRepository) Delete(ctx context.Context, key string) error {
	return r.db.WithContext(ctx).
		Where("entry_key = ?", key).
		Delete(&models.StoreEntry{}).Error
}
