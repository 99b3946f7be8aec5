package wizard

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry_OpenReusesAndResumes(t *testing.T) {
	repos := map[string]*MemoryRepository{}
	reg := NewRegistry(func(key string) (*Controller, error) {
		repo, ok := repos[key]
		if !ok {
			repo = NewMemoryRepository()
			repos[key] = repo
		}
		return New(Config{Steps: testSteps(), Defaults: testDefaults, Repo: repo, Submitter: &stubSubmitter{}})
	})
	ctx := context.Background()

	c1, err := reg.Open(ctx, "draft-1")
	require.NoError(t, err)
	c2, err := reg.Open(ctx, "draft-1")
	require.NoError(t, err)
	assert.Same(t, c1, c2)
	assert.Equal(t, 1, reg.Len())

	require.NoError(t, c1.Update(ctx, Document{"name": "Loft"}))
	reg.Close("draft-1")
	_, ok := reg.Get("draft-1")
	assert.False(t, ok)
	assert.ErrorIs(t, c1.Update(ctx, Document{}), ErrClosed)

	c3, err := reg.Open(ctx, "draft-1")
	require.NoError(t, err)
	assert.NotSame(t, c1, c3)
	assert.Equal(t, "Loft", c3.Document()["name"], "draft survives the closed instance")

	reg.CloseAll()
	assert.Equal(t, 0, reg.Len())
}

func TestRegistry_SweepEvictsIdle(t *testing.T) {
	repos := map[string]*MemoryRepository{"idle": NewMemoryRepository(), "busy": NewMemoryRepository(), "fresh": NewMemoryRepository()}
	started := make(chan struct{})
	release := make(chan struct{})
	busySub := SubmitterFunc(func(ctx context.Context, _ Document) error {
		close(started)
		select {
		case <-release:
		case <-ctx.Done():
		}
		return nil
	})
	reg := NewRegistry(func(key string) (*Controller, error) {
		var sub Submitter = &stubSubmitter{}
		if key == "busy" {
			sub = busySub
		}
		return New(Config{Steps: testSteps(), Defaults: testDefaults, Repo: repos[key], Submitter: sub})
	})
	t.Cleanup(reg.CloseAll)

	now := time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)
	reg.now = func() time.Time { return now }
	ctx := context.Background()

	idle, err := reg.Open(ctx, "idle")
	require.NoError(t, err)
	require.NoError(t, idle.Update(ctx, Document{"name": "Loft"}))
	busy, err := reg.Open(ctx, "busy")
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- busy.Submit(ctx) }()
	<-started

	now = now.Add(time.Hour)
	_, err = reg.Open(ctx, "fresh")
	require.NoError(t, err)

	assert.Equal(t, 1, reg.Sweep(30*time.Minute))
	assert.Equal(t, 2, reg.Len())
	_, ok := reg.Get("idle")
	assert.False(t, ok)
	assert.ErrorIs(t, idle.Update(ctx, Document{}), ErrClosed)

	close(release)
	require.NoError(t, <-done)

	resumed, err := reg.Open(ctx, "idle")
	require.NoError(t, err)
	assert.Equal(t, "Loft", resumed.Document()["name"], "eviction keeps the draft")
}

func TestRegistry_ConcurrentOpenSharesOneController(t *testing.T) {
	const n = 4
	var built atomic.Int32
	entered := make(chan struct{}, n)
	gate := make(chan struct{})
	reg := NewRegistry(func(key string) (*Controller, error) {
		if key == "draft-1" {
			built.Add(1)
			entered <- struct{}{}
			<-gate
		}
		return New(Config{Steps: testSteps(), Defaults: testDefaults, Repo: NewMemoryRepository(), Submitter: &stubSubmitter{}})
	})
	t.Cleanup(reg.CloseAll)

	got := make([]*Controller, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			c, err := reg.Open(context.Background(), "draft-1")
			assert.NoError(t, err)
			got[i] = c
		}(i)
	}
	<-entered

	// a slow initialisation does not hold up other drafts
	_, err := reg.Open(context.Background(), "draft-2")
	require.NoError(t, err)

	close(gate)
	wg.Wait()

	assert.Equal(t, 2, reg.Len())
	for _, c := range got {
		assert.Same(t, got[0], c)
	}
	assert.GreaterOrEqual(t, built.Load(), int32(1))
	assert.NoError(t, got[0].Update(context.Background(), Document{"name": "Loft"}), "the shared controller is open")
}
