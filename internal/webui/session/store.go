// Package session persists per-browser view State between requests, keyed
// by the session cookie. Redis when an address is configured, an in-process
// map otherwise.
package session

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"user-console/internal/webui/view"
)

// ErrNotFound means the id has no live session (never stored, or expired).
var ErrNotFound = errors.New("session not found")

type Store interface {
	Load(ctx context.Context, id string) (view.State, error)
	Save(ctx context.Context, id string, s view.State) error
	Delete(ctx context.Context, id string) error
}

// RedisStore keeps sessions as JSON values with a TTL refreshed on save.
type RedisStore struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedis(addr, pass string, db int, ttl time.Duration) *RedisStore {
	return &RedisStore{
		rdb: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db}),
		ttl: ttl,
	}
}

func (s *RedisStore) Load(ctx context.Context, id string) (view.State, error) {
	b, err := s.rdb.Get(ctx, key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return view.State{}, ErrNotFound
	}
	if err != nil {
		return view.State{}, err
	}
	var st view.State
	if err := json.Unmarshal(b, &st); err != nil {
		return view.State{}, err
	}
	return st, nil
}

func (s *RedisStore) Save(ctx context.Context, id string, st view.State) error {
	b, err := json.Marshal(st)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, key(id), b, s.ttl).Err()
}

func (s *RedisStore) Delete(ctx context.Context, id string) error {
	return s.rdb.Del(ctx, key(id)).Err()
}

func key(id string) string { return "webui:session:" + id }

// MemoryStore is the fallback when no redis is configured. Good enough for
// a single console process; state is lost on restart.
type MemoryStore struct {
	mu  sync.Mutex
	ttl time.Duration
	m   map[string]memEntry
}

type memEntry struct {
	state   view.State
	expires time.Time
}

func NewMemory(ttl time.Duration) *MemoryStore {
	return &MemoryStore{ttl: ttl, m: make(map[string]memEntry)}
}

func (s *MemoryStore) Load(_ context.Context, id string) (view.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.m[id]
	if !ok || time.Now().After(e.expires) {
		delete(s.m, id)
		return view.State{}, ErrNotFound
	}
	return e.state, nil
}

func (s *MemoryStore) Save(_ context.Context, id string, st view.State) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[id] = memEntry{state: st, expires: time.Now().Add(s.ttl)}
	return nil
}

func (s *MemoryStore) Delete(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, id)
	return nil
}
