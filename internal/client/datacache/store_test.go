package datacache

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/gophcache/internal/client/durable"
)

// memStore is a durable.Store that counts reads per key and can fail reads of
// selected keys.
type memStore struct {
	mu      sync.Mutex
	data    map[string][]byte
	gets    map[string]int
	failGet map[string]error
}

func newMemStore() *memStore {
	return &memStore{
		data:    map[string][]byte{},
		gets:    map[string]int{},
		failGet: map[string]error{},
	}
}

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gets[key]++
	if err := s.failGet[key]; err != nil {
		return nil, err
	}
	v, ok := s.data[key]
	if !ok {
		return nil, durable.ErrNotFound
	}
	return v, nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *memStore) Update(_ context.Context, key string, mutate durable.Mutator) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	cur, ok := s.data[key]
	next, err := mutate(cur, ok)
	if err != nil {
		return err
	}
	s.data[key] = next
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *memStore) getCount(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gets[key]
}

func (s *memStore) has(key string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.data[key]
	return ok
}

// barrierStore holds every messages read until n of them are in flight at
// once. Reads that never meet fail after a second.
type barrierStore struct {
	*memStore
	n       int
	mu      sync.Mutex
	arrived int
	all     chan struct{}
}

func newBarrierStore(st *memStore, n int) *barrierStore {
	return &barrierStore{memStore: st, n: n, all: make(chan struct{})}
}

func (s *barrierStore) Get(ctx context.Context, key string) ([]byte, error) {
	if strings.HasPrefix(key, MessagesKey("")) {
		s.mu.Lock()
		s.arrived++
		if s.arrived == s.n {
			close(s.all)
		}
		s.mu.Unlock()

		select {
		case <-s.all:
		case <-time.After(time.Second):
			return nil, errors.New("messages reads did not overlap")
		}
	}
	return s.memStore.Get(ctx, key)
}
