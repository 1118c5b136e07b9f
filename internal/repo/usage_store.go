package repo

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ymy1064-stack/App-backend/internal/domain"
)

// UsageStore implements quota.Store on a GORM database. Each increment is a
// single upsert, so concurrent charges for the same counter cannot lose
// updates; the surrounding check-and-increment is serialized by the quota
// Tracker.
type UsageStore struct {
	db *gorm.DB
}

// NewUsageStore wraps db in a UsageStore.
func NewUsageStore(db *gorm.DB) *UsageStore {
	return &UsageStore{db: db}
}

// Counts returns the counters for (day, identity), zero for missing rows.
func (s *UsageStore) Counts(ctx context.Context, day, identity string) (domain.UsageCounts, error) {
	var rows []domain.UsageCounter
	err := s.db.WithContext(ctx).
		Where("day = ? AND identity = ?", day, identity).
		Find(&rows).Error
	if err != nil {
		return domain.UsageCounts{}, err
	}
	var counts domain.UsageCounts
	for _, r := range rows {
		switch r.Feature {
		case domain.FeatureSEO:
			counts.SEO = r.Count
		case domain.FeatureLearn:
			counts.Learn = r.Count
		}
	}
	return counts, nil
}

// Increment adds one use to the (day, identity, feature) counter, creating
// the row when absent, and returns the new count.
func (s *UsageStore) Increment(ctx context.Context, day, identity string, feature domain.Feature) (int, error) {
	now := time.Now().UTC()
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "day"}, {Name: "identity"}, {Name: "feature"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count":      gorm.Expr("count + 1"),
			"updated_at": now,
		}),
	}).Create(&domain.UsageCounter{
		Day:      day,
		Identity: identity,
		Feature:  feature,
		Count:    1,
	}).Error
	if err != nil {
		return 0, err
	}

	var row domain.UsageCounter
	err = s.db.WithContext(ctx).
		Where("day = ? AND identity = ? AND feature = ?", day, identity, feature).
		First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, ErrNotFound
	}
	return row.Count, err
}

// Prune drops counters for days other than keepDay.
func (s *UsageStore) Prune(ctx context.Context, keepDay string) error {
	return s.db.WithContext(ctx).
		Where("day <> ?", keepDay).
		Delete(&domain.UsageCounter{}).Error
}
