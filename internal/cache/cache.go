// Package cache memoizes provider responses by a content-addressed
// fingerprint of the semantically relevant request fields. Entries are
// shared across identities and independent of quota: a hit costs nothing.
//
// The fingerprint deliberately excludes identity and timestamps so that two
// callers asking the same question share one provider response. Entries do
// not expire by default; a TTL can be configured to bound staleness.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/ymy1064-stack/App-backend/internal/domain"
)

var cacheReqs = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "cache_requests_total",
		Help: "Response cache lookups by feature and result (hit, miss, expired).",
	},
	[]string{"feature", "result"},
)

func init() {
	prometheus.MustRegister(cacheReqs)
}

// Store persists cache entries. A nil entry with a nil error means absent.
type Store interface {
	Get(ctx context.Context, fingerprint string) (*domain.CacheEntry, error)
	Put(ctx context.Context, entry *domain.CacheEntry) error
}

// Fingerprint returns the deterministic cache key for the given feature and
// normalized request fields: a SHA-256 hex digest over a canonical
// serialization (feature, then fields sorted by name). Field values are used
// as-is; callers normalize them first so that semantically identical
// requests collide.
func Fingerprint(feature domain.Feature, fields map[string]string) string {
	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var b strings.Builder
	b.WriteString(string(feature))
	for _, k := range keys {
		b.WriteByte(0)
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(fields[k])
	}
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

// Cache wraps a Store with TTL handling and metrics.
type Cache struct {
	store Store
	ttl   time.Duration // 0 disables expiry

	nowFn func() time.Time // test seam
}

// New constructs a Cache over store. ttl <= 0 means entries never expire.
func New(store Store, ttl time.Duration) *Cache {
	if ttl < 0 {
		ttl = 0
	}
	return &Cache{store: store, ttl: ttl, nowFn: time.Now}
}

// Get returns the entry for fingerprint, or (nil, false) on a miss. Expired
// entries read as misses; the stale row is left for Put to overwrite.
func (c *Cache) Get(ctx context.Context, feature domain.Feature, fingerprint string) (*domain.CacheEntry, bool, error) {
	entry, err := c.store.Get(ctx, fingerprint)
	if err != nil {
		return nil, false, err
	}
	if entry == nil {
		cacheReqs.WithLabelValues(string(feature), "miss").Inc()
		return nil, false, nil
	}
	if c.ttl > 0 && c.nowFn().Sub(entry.CreatedAt) >= c.ttl {
		cacheReqs.WithLabelValues(string(feature), "expired").Inc()
		return nil, false, nil
	}
	cacheReqs.WithLabelValues(string(feature), "hit").Inc()
	return entry, true, nil
}

// Put records a provider response for fingerprint. Writes are
// last-write-wins; concurrent writers for the same fingerprint carry
// identical content, so the race is benign.
func (c *Cache) Put(ctx context.Context, feature domain.Feature, fingerprint, provider, payload string) error {
	return c.store.Put(ctx, &domain.CacheEntry{
		Fingerprint: fingerprint,
		Feature:     feature,
		Provider:    provider,
		Payload:     payload,
		CreatedAt:   c.nowFn().UTC(),
	})
}
