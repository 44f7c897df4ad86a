// README: In-memory session store for single-instance runs and tests; sessions expire after the TTL.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	gocache "github.com/patrickmn/go-cache"
)

type lockEntry struct {
	token   string
	expires time.Time
}

// MemoryStore keeps sessions as encoded snapshots so callers never share
// mutable state with the store. Like RedisStore, every read pushes the
// expiry ttl into the future.
type MemoryStore struct {
	mu       sync.Mutex
	sessions *gocache.Cache
	locks    map[string]lockEntry
	now      func() time.Time
}

func NewMemoryStore(ttl time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &MemoryStore{
		sessions: gocache.New(ttl, ttl),
		locks:    make(map[string]lockEntry),
		now:      time.Now,
	}
}

func (s *MemoryStore) Create(ctx context.Context, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	data.CreatedAt = now
	data.UpdatedAt = now
	data.Version = 1

	raw, err := json.Marshal(data)
	if err != nil {
		return err
	}
	s.sessions.SetDefault(data.ID, raw)
	return nil
}

func (s *MemoryStore) Get(ctx context.Context, id string) (*Data, error) {
	s.mu.Lock()
	raw, ok := s.load(id)
	if ok {
		s.sessions.SetDefault(id, raw)
	}
	s.mu.Unlock()
	if !ok {
		return nil, ErrNotFound
	}

	var data Data
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, err
	}
	return &data, nil
}

func (s *MemoryStore) Update(ctx context.Context, data *Data) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	raw, ok := s.load(data.ID)
	if !ok {
		return ErrNotFound
	}
	var stored Data
	if err := json.Unmarshal(raw, &stored); err != nil {
		return err
	}
	if stored.Version != data.Version {
		return ErrVersionConflict
	}

	data.Version++
	data.UpdatedAt = s.now()
	next, err := json.Marshal(data)
	if err != nil {
		data.Version--
		return err
	}
	s.sessions.SetDefault(data.ID, next)
	return nil
}

func (s *MemoryStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions.Delete(id)
	delete(s.locks, id)
	return nil
}

func (s *MemoryStore) TryLock(ctx context.Context, id string, ttl time.Duration) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if held, ok := s.locks[id]; ok && now.Before(held.expires) {
		return "", ErrLocked
	}
	token := uuid.NewString()
	s.locks[id] = lockEntry{token: token, expires: now.Add(ttl)}
	return token, nil
}

func (s *MemoryStore) Unlock(ctx context.Context, id, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if held, ok := s.locks[id]; ok && held.token == token {
		delete(s.locks, id)
	}
	return nil
}

func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions.Flush()
	s.locks = make(map[string]lockEntry)
	return nil
}

func (s *MemoryStore) load(id string) ([]byte, bool) {
	v, ok := s.sessions.Get(id)
	if !ok {
		return nil, false
	}
	raw, ok := v.([]byte)
	return raw, ok
}
