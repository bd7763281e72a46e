package store

import (
	"context"
	"sync"
	"time"

	"github.com/lzjever/open189/internal/core"
)

// MemoryStore keeps verification codes in process memory. Used when no
// database is configured; contents are lost on restart.
type MemoryStore struct {
	mu    sync.RWMutex
	codes map[string]core.Randcode
	ttl   time.Duration
	now   func() time.Time
}

// NewMemoryStore returns an empty store. Codes older than ttl are dropped
// on the next Put; a non-positive ttl keeps them forever.
func NewMemoryStore(ttl time.Duration) *MemoryStore {
	return &MemoryStore{
		codes: make(map[string]core.Randcode),
		ttl:   ttl,
		now:   time.Now,
	}
}

func (s *MemoryStore) Put(_ context.Context, r core.Randcode) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pruneLocked(s.now())
	s.codes[r.Identifier] = r
	return nil
}

func (s *MemoryStore) pruneLocked(now time.Time) {
	if s.ttl <= 0 {
		return
	}
	for id, r := range s.codes {
		if r.Expired(now, s.ttl) {
			delete(s.codes, id)
		}
	}
}

func (s *MemoryStore) Get(_ context.Context, identifier string) (core.Randcode, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.codes[identifier]
	if !ok {
		return core.Randcode{}, core.ErrRandcodeNotFound
	}
	return r, nil
}

// Len returns the number of stored codes.
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.codes)
}

func (s *MemoryStore) Ping(context.Context) error {
	return nil
}
