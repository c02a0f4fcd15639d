package export

import (
	"context"
	"sync"
	"time"

	"access-diff/internal/domain"
)

// DefaultTTL is how long a stored export stays retrievable.
const DefaultTTL = 30 * time.Minute

// StoredFile is a rendered export payload.
type StoredFile struct {
	Filename  string
	Bytes     []byte
	ExpiresAt time.Time
}

// Store keeps export payloads in memory under opaque tokens. It is safe for
// concurrent use.
type Store struct {
	mu    sync.RWMutex
	files map[string]StoredFile
	ttl   time.Duration
	now   func() time.Time
}

// NewStore creates a Store whose entries expire after ttl. A non-positive
// ttl selects DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Store{
		files: make(map[string]StoredFile),
		ttl:   ttl,
		now:   time.Now,
	}
}

// Put stores payload under a new token and returns the token.
func (s *Store) Put(payload []byte, filename string) string {
	token := domain.NewToken()
	f := StoredFile{Filename: filename, Bytes: payload, ExpiresAt: s.now().Add(s.ttl)}

	s.mu.Lock()
	s.files[token] = f
	s.mu.Unlock()
	return token
}

// Get returns the file stored under token. Unknown and expired tokens return
// a *domain.NotFoundError; expired entries are evicted.
func (s *Store) Get(token string) (StoredFile, error) {
	if token == "" {
		return StoredFile{}, domain.ErrNotFound("export not found or expired")
	}

	s.mu.RLock()
	f, ok := s.files[token]
	s.mu.RUnlock()
	if !ok {
		return StoredFile{}, domain.ErrNotFound("export not found or expired")
	}

	if s.now().After(f.ExpiresAt) {
		s.mu.Lock()
		delete(s.files, token)
		s.mu.Unlock()
		return StoredFile{}, domain.ErrNotFound("export not found or expired")
	}
	return f, nil
}

// Len returns the number of entries, expired or not.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.files)
}

// Reap evicts expired entries every interval until ctx is done.
// Should be called in a background goroutine.
func (s *Store) Reap(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.reapOnce()
		}
	}
}

func (s *Store) reapOnce() int {
	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()
	n := 0
	for token, f := range s.files {
		if now.After(f.ExpiresAt) {
			delete(s.files, token)
			n++
		}
	}
	return n
}
