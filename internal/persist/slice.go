// Package persist binds a typed in-memory value to one key of a storage
// provider. Storage faults are logged and swallowed: the in-memory value is
// always authoritative.
package persist

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/bytedance/sonic"

	"github.com/julianstephens/learnnova/internal/logger"
	"github.com/julianstephens/learnnova/internal/storage"
)

var codec = sonic.ConfigStd

// Slice holds the current value of a single durable key.
type Slice[T any] struct {
	provider  storage.Provider
	key       string
	def       func() T
	normalize func(T) T

	mu    sync.RWMutex
	value T
	dirty bool

	once     sync.Once
	hydrated atomic.Bool
	done     chan struct{}
}

type Option[T any] func(*Slice[T])

// WithNormalize runs fn over every value decoded from storage, so a
// snapshot that parses but breaks the value's invariants is repaired on
// load.
func WithNormalize[T any](fn func(T) T) Option[T] {
	return func(s *Slice[T]) { s.normalize = fn }
}

// New returns an unhydrated slice holding def(). def is called again on
// every fallback and reset, so it must return a fresh value each time.
func New[T any](provider storage.Provider, key string, def func() T, opts ...Option[T]) *Slice[T] {
	s := &Slice[T]{
		provider: provider,
		key:      key,
		def:      def,
		value:    def(),
		done:     make(chan struct{}),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Slice[T]) Key() string { return s.key }

// Load reads the persisted value once. Later calls return immediately. A
// missing or malformed snapshot leaves the default in place. Load only
// fails when ctx is done before the read starts, in which case the slice
// stays unhydrated and a later Load may retry.
func (s *Slice[T]) Load(ctx context.Context) error {
	if err := ctx.Err(); err != nil && !s.hydrated.Load() {
		return err
	}
	s.once.Do(s.load)
	return nil
}

func (s *Slice[T]) load() {
	defer func() {
		s.hydrated.Store(true)
		close(s.done)
	}()

	raw, ok, err := s.provider.Get(s.key)
	if err != nil {
		logger.Error("Failed to load persisted value", "key", s.key, "error", err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !ok || raw == "" {
		// Nothing stored yet; persist anything mutated before hydration.
		if s.dirty {
			s.writeLocked()
		}
		return
	}

	var v T
	if err := codec.UnmarshalFromString(raw, &v); err != nil {
		logger.Warn("Discarding malformed persisted value", "key", s.key, "error", err)
		s.value = s.def()
		return
	}
	if s.normalize != nil {
		v = s.normalize(v)
	}
	s.value = v
	s.dirty = false
}

// Hydrated reports whether Load has completed. It never reverts to false.
func (s *Slice[T]) Hydrated() bool {
	return s.hydrated.Load()
}

// Done is closed once the slice is hydrated.
func (s *Slice[T]) Done() <-chan struct{} {
	return s.done
}

// Value returns the current in-memory value. Callers must not mutate
// reference types reachable from it.
func (s *Slice[T]) Value() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the value and persists it.
func (s *Slice[T]) Set(v T) {
	s.Update(func(T) T { return v })
}

// Update applies fn to the current value under the slice lock and persists
// the result.
func (s *Slice[T]) Update(fn func(T) T) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = fn(s.value)
	s.dirty = true
	if s.hydrated.Load() {
		s.writeLocked()
	}
}

// Save persists the current value. It is a no-op until the slice is
// hydrated so a default can never overwrite data that has not been read yet.
func (s *Slice[T]) Save() {
	if !s.hydrated.Load() {
		return
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	s.writeLocked()
}

// Reset restores the default and removes the durable copy.
func (s *Slice[T]) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.value = s.def()
	s.dirty = false
	if err := s.provider.Delete(s.key); err != nil {
		logger.Error("Failed to delete persisted value", "key", s.key, "error", err)
	}
}

func (s *Slice[T]) writeLocked() {
	raw, err := codec.MarshalToString(s.value)
	if err != nil {
		logger.Error("Failed to serialize value", "key", s.key, "error", err)
		return
	}
	if err := s.provider.Set(s.key, raw); err != nil {
		logger.Error("Failed to persist value", "key", s.key, "error", err)
	}
}
