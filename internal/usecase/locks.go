package usecase

import "sync"

// InstanceLocks serializes every read-compute-write sequence touching one
// league night's waiting set or court set. The scope is per instance, not
// global: different nights never contend.
type InstanceLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewInstanceLocks() *InstanceLocks {
	return &InstanceLocks{locks: make(map[string]*sync.Mutex)}
}

// Lock acquires the mutex for the given key and returns its unlock func.
func (l *InstanceLocks) Lock(key string) func() {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = &sync.Mutex{}
		l.locks[key] = m
	}
	l.mu.Unlock()

	m.Lock()

	return m.Unlock
}
