package utils

import "sync"

// InFlight tracks outstanding requests per control key so a single control
// (one client, one endpoint) cannot fire duplicate concurrent provider calls.
// Different controls are independent: a chat send is allowed while an image
// edit is still pending.
type InFlight struct {
	mu   sync.Mutex
	busy map[string]bool
}

// NewInFlight creates an empty guard.
func NewInFlight() *InFlight {
	return &InFlight{
		busy: make(map[string]bool),
	}
}

// TryAcquire reserves the key. Returns false when a request for the same
// key is already outstanding.
func (f *InFlight) TryAcquire(key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.busy[key] {
		return false
	}
	f.busy[key] = true
	return true
}

// Release frees the key. Safe to call for a key that was never acquired.
func (f *InFlight) Release(key string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	delete(f.busy, key)
}
