package handle

import "sync"

// Locked serializes access to a Manager so it can be shared between
// goroutines. Each method holds the lock for exactly one Manager call; use
// Do to run several calls atomically.
type Locked struct {
	mu sync.Mutex
	m  *Manager
}

// NewLocked wraps m. The caller must not use m directly afterwards.
func NewLocked(m *Manager) *Locked {
	return &Locked{m: m}
}

// Next calls Manager.Next under the lock.
func (l *Locked) Next() (Handle, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Next()
}

// Release calls Manager.Release under the lock.
func (l *Locked) Release(h Handle) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Release(h)
}

// IsUsed calls Manager.IsUsed under the lock.
func (l *Locked) IsUsed(h Handle) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.IsUsed(h)
}

// Stats calls Manager.Stats under the lock.
func (l *Locked) Stats() Stats {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.Stats()
}

// FreeRanges calls Manager.FreeRanges under the lock.
func (l *Locked) FreeRanges() []Range {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.m.FreeRanges()
}

// Reset calls Manager.Reset under the lock.
func (l *Locked) Reset() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.m.Reset()
}

// Do runs fn with exclusive access to the underlying Manager. fn must not
// retain the Manager after it returns.
func (l *Locked) Do(fn func(m *Manager) error) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return fn(l.m)
}
