// Package reactive provides the small reactive layer Pathlight uses to publish
// the current location.
//
// # Signals
//
// A [Signal] holds one value and notifies watchers synchronously when the
// value changes. Notification is equality-gated: setting a signal to the value
// it already holds wakes nobody.
//
// # Selectors
//
// A [Selector] answers "is the signal currently equal to this key" without
// waking every subscriber on every change. A key's watchers fire only when
// equality with that key flips. With n rendered links watching the current
// location, a navigation notifies at most two of them (the link losing the
// active state and the link gaining it) instead of all n.
package reactive

import "sync"

// Signal holds a single value of a comparable type and notifies watchers when
// it changes. The zero value is not usable; create signals with [NewSignal].
type Signal[T comparable] struct {
	mu       sync.RWMutex
	value    T
	watchers map[int]func(T)
	nextID   int
}

// NewSignal creates a signal holding initial.
func NewSignal[T comparable](initial T) *Signal[T] {
	return &Signal[T]{value: initial, watchers: map[int]func(T){}}
}

// Get returns the current value.
func (s *Signal[T]) Get() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set updates the value and synchronously notifies watchers. Setting the value
// the signal already holds is a no-op. Watchers run without the signal's lock
// held, so they may call Get (but a watcher calling Set will re-enter the
// notification path).
func (s *Signal[T]) Set(v T) {
	s.mu.Lock()
	if s.value == v {
		s.mu.Unlock()
		return
	}
	s.value = v
	fns := make([]func(T), 0, len(s.watchers))
	for _, fn := range s.watchers {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	for _, fn := range fns {
		fn(v)
	}
}

// Watch registers fn to run on every change. It returns a cancel function that
// removes the watcher; cancel is idempotent.
func (s *Signal[T]) Watch(fn func(T)) (cancel func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.watchers[id] = fn
	s.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			s.mu.Lock()
			delete(s.watchers, id)
			s.mu.Unlock()
		})
	}
}

// Selector is a keyed view over a [Signal]. Each key's watchers are notified
// only when the signal's equality with that key changes.
type Selector[T comparable] struct {
	source *Signal[T]

	mu     sync.Mutex
	keys   map[T]map[int]func(bool)
	nextID int
	cancel func()
}

// NewSelector creates a selector over source. Call [Selector.Close] when the
// selector is no longer needed to detach it from the source signal.
func NewSelector[T comparable](source *Signal[T]) *Selector[T] {
	sel := &Selector[T]{source: source, keys: map[T]map[int]func(bool){}}

	prev := source.Get()
	sel.cancel = source.Watch(func(next T) {
		sel.mu.Lock()
		var fire []func(bool)
		var args []bool
		for key, watchers := range sel.keys {
			was, is := key == prev, key == next
			if was == is {
				continue
			}
			for _, fn := range watchers {
				fire = append(fire, fn)
				args = append(args, is)
			}
		}
		prev = next
		sel.mu.Unlock()

		for i, fn := range fire {
			fn(args[i])
		}
	})
	return sel
}

// IsActive reports whether the source signal currently equals key.
func (sel *Selector[T]) IsActive(key T) bool {
	return sel.source.Get() == key
}

// Bind returns an O(1) probe for key, for call sites that repeatedly ask the
// same question.
func (sel *Selector[T]) Bind(key T) func() bool {
	return func() bool { return sel.IsActive(key) }
}

// Watch registers fn to run when equality between the signal and key flips.
// fn receives the new equality state. The returned cancel removes the watcher.
func (sel *Selector[T]) Watch(key T, fn func(bool)) (cancel func()) {
	sel.mu.Lock()
	id := sel.nextID
	sel.nextID++
	if sel.keys[key] == nil {
		sel.keys[key] = map[int]func(bool){}
	}
	sel.keys[key][id] = fn
	sel.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			sel.mu.Lock()
			delete(sel.keys[key], id)
			if len(sel.keys[key]) == 0 {
				delete(sel.keys, key)
			}
			sel.mu.Unlock()
		})
	}
}

// Close detaches the selector from its source signal. Watchers registered on
// the selector stop firing.
func (sel *Selector[T]) Close() {
	sel.cancel()
}
