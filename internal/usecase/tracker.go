package usecase

import "sync"

// ResultTracker guards against the stale-response race: when a client
// changes filters faster than requests complete, a response dispatched
// earlier can land after a later one and must not overwrite it. Each
// dispatch takes a monotonically increasing generation per session key, and
// only the response carrying the latest generation is allowed to commit.
type ResultTracker struct {
	mu     sync.Mutex
	latest map[string]uint64
}

// NewResultTracker creates an empty tracker.
func NewResultTracker() *ResultTracker {
	return &ResultTracker{latest: make(map[string]uint64)}
}

// Begin registers a new dispatch for the session key and returns its
// generation. Every call supersedes all earlier generations for the key.
func (t *ResultTracker) Begin(key string) uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.latest[key]++
	return t.latest[key]
}

// Current reports whether the generation is still the latest for the key.
// A response whose generation is stale must be discarded.
func (t *ResultTracker) Current(key string, generation uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.latest[key] == generation
}

// Forget drops the bookkeeping for a session key.
func (t *ResultTracker) Forget(key string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.latest, key)
}
