package aggregate

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

type countingBuilder struct {
	mu       sync.Mutex
	builds   int32
	snapshot *Snapshot
	err      error
	delay    time.Duration
}

func (b *countingBuilder) Build(ctx context.Context) (*Snapshot, error) {
	atomic.AddInt32(&b.builds, 1)
	if b.delay > 0 {
		time.Sleep(b.delay)
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.err != nil {
		return nil, b.err
	}
	return b.snapshot, nil
}

func (b *countingBuilder) setErr(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.err = err
}

func (b *countingBuilder) buildCount() int32 {
	return atomic.LoadInt32(&b.builds)
}

func testSnapshot() *Snapshot {
	published := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	return &Snapshot{
		BuiltAt: time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC),
		Agencies: []Agency{
			{
				Slug: "energy-department",
				Name: "DOE",
				Documents: []Document{
					{DocumentNumber: "1", PublishedAt: published, Recent: true},
				},
				DocumentCount: 1,
			},
		},
	}
}

func TestGetBuildsOnceWithinFreshnessWindow(t *testing.T) {
	builder := &countingBuilder{snapshot: testSnapshot()}
	cache := NewCache(builder, time.Hour)

	for i := 0; i < 3; i++ {
		if _, err := cache.Get(context.Background()); err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
	}
	if got := builder.buildCount(); got != 1 {
		t.Fatalf("expected exactly 1 build, got %d", got)
	}
}

func TestGetRebuildsAfterFreshnessWindow(t *testing.T) {
	builder := &countingBuilder{snapshot: testSnapshot()}
	cache := NewCache(builder, time.Hour)

	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("get: %v", err)
	}
	current = current.Add(2 * time.Hour)
	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("get after expiry: %v", err)
	}
	if got := builder.buildCount(); got != 2 {
		t.Fatalf("expected 2 builds, got %d", got)
	}
}

func TestForceRefreshAlwaysBuilds(t *testing.T) {
	builder := &countingBuilder{snapshot: testSnapshot()}
	cache := NewCache(builder, time.Hour)

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("get: %v", err)
	}
	if _, err := cache.ForceRefresh(context.Background()); err != nil {
		t.Fatalf("force refresh: %v", err)
	}
	if got := builder.buildCount(); got != 2 {
		t.Fatalf("expected force refresh to rebuild, got %d builds", got)
	}
}

func TestConcurrentGetTriggersSingleBuild(t *testing.T) {
	builder := &countingBuilder{snapshot: testSnapshot(), delay: 50 * time.Millisecond}
	cache := NewCache(builder, time.Hour)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Get(context.Background()); err != nil {
				t.Errorf("concurrent get: %v", err)
			}
		}()
	}
	wg.Wait()

	if got := builder.buildCount(); got != 1 {
		t.Fatalf("expected a single build across concurrent gets, got %d", got)
	}
}

func TestGetFailsWhenNoSnapshotExists(t *testing.T) {
	builder := &countingBuilder{err: errors.New("upstream unavailable")}
	cache := NewCache(builder, time.Hour)

	if _, err := cache.Get(context.Background()); err == nil {
		t.Fatal("expected error when no previous snapshot exists")
	}
}

func TestGetServesStaleSnapshotOnRebuildFailure(t *testing.T) {
	builder := &countingBuilder{snapshot: testSnapshot()}
	cache := NewCache(builder, time.Hour)

	current := time.Date(2026, 8, 29, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return current }

	first, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	current = current.Add(2 * time.Hour)
	builder.setErr(errors.New("upstream unavailable"))

	second, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("expected stale snapshot instead of error, got %v", err)
	}
	if second != first {
		t.Fatal("expected the previous snapshot to be served")
	}
}

func TestForceRefreshFailureKeepsCache(t *testing.T) {
	builder := &countingBuilder{snapshot: testSnapshot()}
	cache := NewCache(builder, time.Hour)

	first, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("get: %v", err)
	}

	builder.setErr(errors.New("upstream unavailable"))
	if _, err := cache.ForceRefresh(context.Background()); err == nil {
		t.Fatal("expected force refresh to surface the error")
	}

	builder.setErr(nil)
	got, err := cache.Get(context.Background())
	if err != nil {
		t.Fatalf("get after failed refresh: %v", err)
	}
	if got != first {
		t.Fatal("expected the cache to be unchanged after a failed refresh")
	}
}

func TestPopulatedNeverBuilds(t *testing.T) {
	builder := &countingBuilder{snapshot: testSnapshot()}
	cache := NewCache(builder, time.Hour)

	if cache.Populated() {
		t.Fatal("expected an empty cache before the first build")
	}
	if got := builder.buildCount(); got != 0 {
		t.Fatalf("Populated triggered %d builds", got)
	}

	if _, err := cache.Get(context.Background()); err != nil {
		t.Fatalf("get: %v", err)
	}
	if !cache.Populated() {
		t.Fatal("expected a populated cache after a successful build")
	}
}

func TestAgencyDetail(t *testing.T) {
	builder := &countingBuilder{snapshot: testSnapshot()}
	cache := NewCache(builder, time.Hour)

	agency, err := cache.AgencyDetail(context.Background(), "energy-department")
	if err != nil {
		t.Fatalf("agency detail: %v", err)
	}
	if agency.Name != "DOE" {
		t.Fatalf("unexpected agency %+v", agency)
	}

	if _, err := cache.AgencyDetail(context.Background(), "missing-agency"); !errors.Is(err, ErrAgencyNotFound) {
		t.Fatalf("expected ErrAgencyNotFound, got %v", err)
	}
}

func TestRecentDocumentsSortedDescending(t *testing.T) {
	base := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)
	snapshot := &Snapshot{
		BuiltAt: base.Add(12 * time.Hour),
		Agencies: []Agency{
			{
				Slug: "a",
				Documents: []Document{
					{DocumentNumber: "older", PublishedAt: base.Add(-2 * time.Hour), Recent: true},
					{DocumentNumber: "stale", PublishedAt: base.Add(-40 * time.Hour), Recent: false},
				},
				DocumentCount: 2,
			},
			{
				Slug: "b",
				Documents: []Document{
					{DocumentNumber: "newest", PublishedAt: base, Recent: true},
				},
				DocumentCount: 1,
			},
		},
	}
	builder := &countingBuilder{snapshot: snapshot}
	cache := NewCache(builder, time.Hour)

	docs, err := cache.RecentDocuments(context.Background())
	if err != nil {
		t.Fatalf("recent documents: %v", err)
	}
	if len(docs) != 2 {
		t.Fatalf("expected 2 recent documents, got %d", len(docs))
	}
	if docs[0].DocumentNumber != "newest" || docs[1].DocumentNumber != "older" {
		t.Fatalf("expected publication-time descending order, got %+v", docs)
	}
}
