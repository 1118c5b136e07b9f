package repo

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ymy1064-stack/App-backend/internal/domain"
)

// CacheStore implements cache.Store on a GORM database. Writes upsert on
// the fingerprint primary key (last write wins, matching the in-memory
// store's semantics).
type CacheStore struct {
	db *gorm.DB
}

// NewCacheStore wraps db in a CacheStore.
func NewCacheStore(db *gorm.DB) *CacheStore {
	return &CacheStore{db: db}
}

// Get returns the entry for fingerprint, or nil when absent.
func (s *CacheStore) Get(ctx context.Context, fingerprint string) (*domain.CacheEntry, error) {
	var entry domain.CacheEntry
	err := s.db.WithContext(ctx).
		Where("fingerprint = ?", fingerprint).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// Put stores entry, overwriting any previous row for the same fingerprint.
func (s *CacheStore) Put(ctx context.Context, entry *domain.CacheEntry) error {
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "fingerprint"}},
		UpdateAll: true,
	}).Create(entry).Error
}
