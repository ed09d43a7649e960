package aggregate

import (
	"context"
	"errors"
	"log"
	"sync"
	"time"
)

// ErrAgencyNotFound reports a slug absent from the current snapshot.
var ErrAgencyNotFound = errors.New("agency not found")

// defaultCacheTTL is the freshness window for a stored snapshot.
const defaultCacheTTL = time.Hour

// SnapshotBuilder produces aggregation snapshots.
type SnapshotBuilder interface {
	Build(ctx context.Context) (*Snapshot, error)
}

// Cache holds the most recent snapshot and rebuilds it on demand.
//
// The cache starts empty (Stale) and transitions to Fresh whenever a build
// succeeds. There is no background refresh: staleness is resolved on the
// next Get or an explicit ForceRefresh.
type Cache struct {
	builder SnapshotBuilder
	ttl     time.Duration
	now     func() time.Time

	mu        sync.Mutex
	snapshot  *Snapshot
	fetchedAt time.Time
}

// NewCache builds a snapshot cache with the given freshness window. A
// non-positive ttl falls back to one hour.
func NewCache(builder SnapshotBuilder, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &Cache{
		builder: builder,
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached snapshot, rebuilding first when the cache is stale.
//
// The rebuild runs under the cache mutex, so concurrent callers hitting a
// stale cache trigger exactly one build and then all observe its result.
// When a rebuild fails but an earlier snapshot exists, the stale snapshot is
// served instead of the error.
func (c *Cache) Get(ctx context.Context) (*Snapshot, error) {
	if c == nil || c.builder == nil {
		return nil, errors.New("cache requires a builder")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && c.now().Sub(c.fetchedAt) < c.ttl {
		return c.snapshot, nil
	}

	snapshot, err := c.builder.Build(ctx)
	if err != nil {
		if c.snapshot != nil {
			log.Printf("snapshot rebuild failed, serving stale data: %v", err)
			return c.snapshot, nil
		}
		return nil, err
	}

	c.snapshot = snapshot
	c.fetchedAt = c.now()
	return snapshot, nil
}

// ForceRefresh rebuilds the snapshot unconditionally. On failure the cached
// snapshot is left untouched and the error is returned.
func (c *Cache) ForceRefresh(ctx context.Context) (*Snapshot, error) {
	if c == nil || c.builder == nil {
		return nil, errors.New("cache requires a builder")
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	snapshot, err := c.builder.Build(ctx)
	if err != nil {
		return nil, err
	}

	c.snapshot = snapshot
	c.fetchedAt = c.now()
	return snapshot, nil
}

// Populated reports whether the cache holds a snapshot, fresh or stale. It
// never triggers a build.
func (c *Cache) Populated() bool {
	if c == nil {
		return false
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot != nil
}

// AgencyStats returns the snapshot's sorted agency list and build time.
func (c *Cache) AgencyStats(ctx context.Context) ([]Agency, time.Time, error) {
	snapshot, err := c.Get(ctx)
	if err != nil {
		return nil, time.Time{}, err
	}
	return snapshot.Agencies, snapshot.BuiltAt, nil
}

// RecentDocuments returns the documents flagged recent at build time, sorted
// by publication time descending.
func (c *Cache) RecentDocuments(ctx context.Context) ([]Document, error) {
	snapshot, err := c.Get(ctx)
	if err != nil {
		return nil, err
	}
	return snapshot.RecentDocuments(), nil
}

// AgencyDetail returns one agency from the snapshot, or ErrAgencyNotFound.
func (c *Cache) AgencyDetail(ctx context.Context, slug string) (Agency, error) {
	snapshot, err := c.Get(ctx)
	if err != nil {
		return Agency{}, err
	}
	agency, ok := snapshot.Agency(slug)
	if !ok {
		return Agency{}, ErrAgencyNotFound
	}
	return agency, nil
}
