package export

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"access-diff/internal/domain"
)

// fakeClock is a manually advanced time source.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

func newTestStore(ttl time.Duration) (*Store, *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)}
	s := NewStore(ttl)
	s.now = clock.Now
	return s, clock
}

func requireNotFound(t *testing.T, err error) {
	t.Helper()
	var notFound *domain.NotFoundError
	require.True(t, errors.As(err, &notFound), "expected NotFoundError, got %v", err)
}

func TestStore_PutGet(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	token := s.Put([]byte("UserID,Name\n"), FileUsersAdded)
	assert.Len(t, token, 32)

	f, err := s.Get(token)
	require.NoError(t, err)
	assert.Equal(t, FileUsersAdded, f.Filename)
	assert.Equal(t, "UserID,Name\n", string(f.Bytes))
}

func TestStore_UnknownToken(t *testing.T) {
	s, _ := newTestStore(time.Minute)

	_, err := s.Get("does-not-exist")
	requireNotFound(t, err)

	_, err = s.Get("")
	requireNotFound(t, err)
}

func TestStore_Expiry(t *testing.T) {
	s, clock := newTestStore(30 * time.Minute)
	token := s.Put([]byte("x"), "x.csv")

	clock.Advance(30 * time.Minute)
	_, err := s.Get(token)
	require.NoError(t, err, "still valid at the boundary")

	clock.Advance(time.Second)
	_, err = s.Get(token)
	requireNotFound(t, err)
	assert.Equal(t, 0, s.Len(), "expired entry evicted on lookup")
}

func TestStore_ReapOnce(t *testing.T) {
	s, clock := newTestStore(time.Minute)
	s.Put([]byte("a"), "a.csv")
	clock.Advance(2 * time.Minute)
	keep := s.Put([]byte("b"), "b.csv")

	assert.Equal(t, 1, s.reapOnce())
	assert.Equal(t, 1, s.Len())
	_, err := s.Get(keep)
	require.NoError(t, err)
}

func TestStore_ReapStopsOnCancel(t *testing.T) {
	s, _ := newTestStore(time.Minute)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Reap(ctx, time.Millisecond)
		close(done)
	}()
	cancel()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("reaper did not stop")
	}
}

func TestStore_DefaultTTL(t *testing.T) {
	s := NewStore(0)
	assert.Equal(t, DefaultTTL, s.ttl)
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore(time.Minute)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 50 {
				token := s.Put([]byte("x"), "x.csv")
				_, err := s.Get(token)
				assert.NoError(t, err)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 16*50, s.Len())
}
