package memory

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/geocasagroup/portal/internal/session"
)

type entry struct {
	payload   []byte
	expiresAt time.Time
}

// Store is an in-process session store used in tests and in single-node
// deployments without Redis. Identities still cross a JSON boundary so the
// serialization contract matches the Redis store.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	ttl     time.Duration
}

func NewStore(ttl time.Duration) *Store {
	return &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
	}
}

func (s *Store) Save(_ context.Context, identity *session.Identity) error {
	payload, err := json.Marshal(identity)
	if err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[identity.ID] = entry{payload: payload, expiresAt: time.Now().Add(s.ttl)}
	return nil
}

func (s *Store) Load(_ context.Context, userID string) (*session.Identity, error) {
	s.mu.RLock()
	e, ok := s.entries[userID]
	s.mu.RUnlock()
	if !ok || time.Now().After(e.expiresAt) {
		return nil, nil
	}

	var identity session.Identity
	if err := json.Unmarshal(e.payload, &identity); err != nil {
		return nil, err
	}
	return &identity, nil
}

func (s *Store) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
	return nil
}

// StartSweeper removes expired entries on a fixed interval. The returned stop
// function must be called on teardown so the ticker does not leak.
func (s *Store) StartSweeper(interval time.Duration, logger *slog.Logger) (stop func()) {
	if interval <= 0 {
		interval = time.Minute
	}
	ticker := time.NewTicker(interval)
	done := make(chan struct{})

	go func() {
		for {
			select {
			case <-ticker.C:
				removed := s.sweep()
				if removed > 0 {
					logger.Debug("swept expired sessions", "count", removed)
				}
			case <-done:
				return
			}
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			ticker.Stop()
			close(done)
		})
	}
}

func (s *Store) sweep() int {
	now := time.Now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for id, e := range s.entries {
		if now.After(e.expiresAt) {
			delete(s.entries, id)
			removed++
		}
	}
	return removed
}
