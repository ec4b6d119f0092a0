// Package store holds the client-side caches of server entities. Each store
// keeps a list, a loading flag and an error string, and only changes its list
// after the backend has confirmed a mutation.
package store

import (
	"errors"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

var (
	// ErrMutationInFlight is returned when an entity is changed while an earlier
	// change to the same entity has not completed yet.
	ErrMutationInFlight = errors.New("another change to this item is still in progress")
	// ErrClosed is returned by every call on a closed store.
	ErrClosed = errors.New("store is closed")
	// ErrNotLoaded is returned when an operation needs an entity the store has not fetched.
	ErrNotLoaded = errors.New("item is not loaded")
)

// State is an immutable snapshot of a store.
type State[T any] struct {
	Items   []T
	Loading bool
	Error   string
}

// Option configures a store.
type Option func(*options)

type options struct {
	now func() time.Time
}

// WithClock replaces time.Now, used for the date rules of form validation.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

func buildOptions(opts []Option) options {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

// list is the state container shared by all stores. Items are merged by id:
// the server's copy of an entity replaces the local one.
type list[T any] struct {
	mu       sync.Mutex
	items    []T
	pending  int
	err      string
	inflight map[string]struct{}
	closed   bool
	subs     map[int]func(State[T])
	nextSub  int

	idOf   func(T) string
	logger zerolog.Logger
}

func newList[T any](idOf func(T) string, logger zerolog.Logger) *list[T] {
	return &list[T]{
		inflight: make(map[string]struct{}),
		subs:     make(map[int]func(State[T])),
		idOf:     idOf,
		logger:   logger,
	}
}

// State returns a copy of the current state.
func (l *list[T]) State() State[T] {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.snapshot()
}

// Subscribe registers fn to be called with the new state after every change.
// The returned func removes the subscription.
func (l *list[T]) Subscribe(fn func(State[T])) func() {
	l.mu.Lock()
	defer l.mu.Unlock()
	id := l.nextSub
	l.nextSub++
	l.subs[id] = fn
	return func() {
		l.mu.Lock()
		delete(l.subs, id)
		l.mu.Unlock()
	}
}

// ClearError resets the error string.
func (l *list[T]) ClearError() {
	l.mu.Lock()
	if l.err == "" {
		l.mu.Unlock()
		return
	}
	l.err = ""
	s, subs := l.snapshot(), l.subscribers()
	l.mu.Unlock()
	publish(subs, s)
}

// Close disposes the store. Requests still running when Close is called
// complete without touching the store.
func (l *list[T]) Close() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.closed = true
	l.subs = make(map[int]func(State[T]))
}

// Find returns the loaded entity with the given id.
func (l *list[T]) Find(id string) (T, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	for _, it := range l.items {
		if l.idOf(it) == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}

// begin marks a request as started. A non-empty key claims the entity for the
// duration of the request.
func (l *list[T]) begin(key string) error {
	l.mu.Lock()
	if l.closed {
		l.mu.Unlock()
		return ErrClosed
	}
	if key != "" {
		if _, busy := l.inflight[key]; busy {
			l.mu.Unlock()
			return ErrMutationInFlight
		}
		l.inflight[key] = struct{}{}
	}
	l.pending++
	l.err = ""
	s, subs := l.snapshot(), l.subscribers()
	l.mu.Unlock()

	publish(subs, s)
	return nil
}

// finish ends a request started with begin. On failure the list is left as is
// and the error string is set to err's message, or fallback.
func (l *list[T]) finish(key string, err error, fallback string, apply func()) {
	l.mu.Lock()
	if key != "" {
		delete(l.inflight, key)
	}
	l.pending--
	if l.closed {
		l.mu.Unlock()
		l.logger.Debug().Str("key", key).Msg("request completed after store was closed")
		return
	}
	if err != nil {
		l.err = err.Error()
		if l.err == "" {
			l.err = fallback
		}
	} else if apply != nil {
		apply()
	}
	s, subs := l.snapshot(), l.subscribers()
	l.mu.Unlock()

	publish(subs, s)
}

// The helpers below must be called with mu held.

func (l *list[T]) replaceAll(items []T) {
	l.items = append([]T(nil), items...)
}

func (l *list[T]) upsert(item T) {
	id := l.idOf(item)
	for i := range l.items {
		if l.idOf(l.items[i]) == id {
			l.items[i] = item
			return
		}
	}
	l.items = append(l.items, item)
}

func (l *list[T]) remove(id string) {
	kept := l.items[:0:0]
	for _, it := range l.items {
		if l.idOf(it) != id {
			kept = append(kept, it)
		}
	}
	l.items = kept
}

func (l *list[T]) snapshot() State[T] {
	return State[T]{
		Items:   append([]T(nil), l.items...),
		Loading: l.pending > 0,
		Error:   l.err,
	}
}

func (l *list[T]) subscribers() []func(State[T]) {
	out := make([]func(State[T]), 0, len(l.subs))
	for _, fn := range l.subs {
		out = append(out, fn)
	}
	return out
}

func publish[T any](subs []func(State[T]), s State[T]) {
	for _, fn := range subs {
		fn(s)
	}
}
