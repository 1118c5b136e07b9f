// Package domain defines the persistence models for quota accounting and
// response caching. These types are mapped with GORM when the SQLite-backed
// stores are enabled; the in-memory stores reuse the same shapes.
package domain

import (
	"time"
)

// Feature is one of the two supported request categories. Each feature has
// its own daily quota and cache namespace.
type Feature string

const (
	// FeatureSEO covers SEO metadata generation requests.
	FeatureSEO Feature = "seo"
	// FeatureLearn covers learning Q&A requests.
	FeatureLearn Feature = "learn"
)

// Valid reports whether f is a known feature.
func (f Feature) Valid() bool { return f == FeatureSEO || f == FeatureLearn }

// UsageCounter tracks how many attempts an identity has made for a feature
// on a given UTC calendar day. The count only ever grows within a day;
// old-day rows become unreachable once the day key rolls over.
//
// The (day, identity, feature) tuple is unique so concurrent increments
// land on a single row.
type UsageCounter struct {
	ID       uint    `json:"-"        gorm:"primaryKey;autoIncrement"`
	Day      string  `json:"day"      gorm:"type:char(10);not null;uniqueIndex:ux_usage_day_identity_feature,priority:1"`
	Identity string  `json:"identity" gorm:"type:char(64);not null;uniqueIndex:ux_usage_day_identity_feature,priority:2"`
	Feature  Feature `json:"feature"  gorm:"type:varchar(16);not null;uniqueIndex:ux_usage_day_identity_feature,priority:3;check:feature IN ('seo','learn')"`
	Count    int     `json:"count"    gorm:"not null;default:0"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName returns the database table name for UsageCounter.
func (UsageCounter) TableName() string { return "usage_counters" }

// UsageCounts holds the per-feature counters for one (day, identity) pair.
type UsageCounts struct {
	SEO   int `json:"seo"`
	Learn int `json:"learn"`
}

// Remaining holds the per-feature budget still available for one
// (day, identity) pair. Values are clamped at zero.
type Remaining struct {
	SEO   int `json:"seo"`
	Learn int `json:"learn"`
}

// For returns the remaining budget for a single feature.
func (r Remaining) For(f Feature) int {
	if f == FeatureLearn {
		return r.Learn
	}
	return r.SEO
}

// CacheEntry is a memoized provider response keyed by the fingerprint of the
// semantically relevant request fields. Entries are content-addressed and
// shared across identities. They are written once and never mutated; a
// concurrent duplicate write carries identical content, so last-write-wins
// is safe.
type CacheEntry struct {
	Fingerprint string  `json:"fingerprint" gorm:"type:char(64);primaryKey"`
	Feature     Feature `json:"feature"     gorm:"type:varchar(16);not null;index"`
	Provider    string  `json:"provider"    gorm:"type:varchar(32);not null"`
	// Payload is the parsed result serialized as JSON.
	Payload   string    `json:"payload"    gorm:"type:text;not null"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName returns the database table name for CacheEntry.
func (CacheEntry) TableName() string { return "cache_entries" }
