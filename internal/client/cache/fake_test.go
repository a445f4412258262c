package cache

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/gophcache/internal/client/durable"
)

// fakeStore is an in-memory durable.Store with call counting, per-op failure
// injection and an optional gate that holds writes until released.
type fakeStore struct {
	mu     sync.Mutex
	data   map[string][]byte
	calls  map[Op]int
	fail   map[Op]error
	log    []string
	gate   chan struct{}
	getHit chan struct{}
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		data:  map[string][]byte{},
		calls: map[Op]int{},
		fail:  map[Op]error{},
	}
}

func (s *fakeStore) begin(op Op, key string) error {
	s.mu.Lock()
	s.calls[op]++
	s.log = append(s.log, string(op)+":"+key)
	err := s.fail[op]
	gate := s.gate
	s.mu.Unlock()

	if gate != nil && op != OpGet {
		<-gate
	}
	return err
}

func (s *fakeStore) Get(ctx context.Context, key string) ([]byte, error) {
	if err := s.begin(OpGet, key); err != nil {
		return nil, err
	}
	if s.getHit != nil {
		<-s.getHit
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	if !ok {
		return nil, durable.ErrNotFound
	}
	return v, nil
}

func (s *fakeStore) Set(_ context.Context, key string, value []byte) error {
	if err := s.begin(OpSet, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
	return nil
}

func (s *fakeStore) Update(_ context.Context, key string, mutate durable.Mutator) error {
	if err := s.begin(OpUpdate, key); err != nil {
		return err
	}
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

func (s *fakeStore) Delete(_ context.Context, key string) error {
	if err := s.begin(OpDelete, key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

func (s *fakeStore) count(op Op) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls[op]
}

func (s *fakeStore) raw(key string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *fakeStore) put(key string, v []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = v
}

func (s *fakeStore) failOn(op Op, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fail[op] = err
}

// recorder collects reported failures.
type recorder struct {
	mu       sync.Mutex
	failures []Failure
}

func (r *recorder) OnFailure(_ context.Context, f Failure) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.failures = append(r.failures, f)
}

func (r *recorder) all() []Failure {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Failure(nil), r.failures...)
}
