package ops

import "sync"

// RenameLock is the process-wide serialization point around rename:
// the classic implementation sleeps on a wait list to exclude other
// renames, which can restructure parents. Go has no cooperative
// scheduler to model faithfully, so this is a plain sync.Mutex — the
// observable contract (only one rename restructures parents at a
// time) is what matters, not the sleep/wake-up mechanism itself.
type RenameLock struct {
	mu sync.Mutex
}

// NewRenameLock builds an unlocked RenameLock.
func NewRenameLock() *RenameLock {
	return &RenameLock{}
}

// Acquire blocks until the lock is held.
func (l *RenameLock) Acquire() { l.mu.Lock() }

// Release releases the lock.
func (l *RenameLock) Release() { l.mu.Unlock() }
