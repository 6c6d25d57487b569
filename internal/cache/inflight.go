package cache

import "sync"

// InFlight tracks keys with an outstanding model call so concurrent
// requests for the same (ticket, content) pair never trigger a second
// one. Check-and-mark is atomic under one mutex; End must run on every
// exit path or the key is stuck until restart.
type InFlight struct {
	mu   sync.Mutex
	keys map[string]struct{}
}

func NewInFlight() *InFlight {
	return &InFlight{keys: make(map[string]struct{})}
}

// Begin marks key as in flight. It returns false when a call for the
// key is already outstanding, in which case the caller must not start
// another one.
func (f *InFlight) Begin(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, exists := f.keys[key]; exists {
		return false
	}
	f.keys[key] = struct{}{}
	return true
}

// End clears the marker. Safe to call for a key that is not marked.
func (f *InFlight) End(key string) {
	f.mu.Lock()
	delete(f.keys, key)
	f.mu.Unlock()
}

// Active reports whether key currently has an outstanding call.
func (f *InFlight) Active(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, exists := f.keys[key]
	return exists
}
