package indexer

import (
	"sync/atomic"
	"time"
)

// IndexLock admits one indexing run at a time. Callers that find it held are
// turned away instead of queued.
type IndexLock struct {
	running atomic.Bool
	started atomic.Int64 // unix nanos of the current run
}

// TryAcquire claims the lock for a new run and reports whether it succeeded.
func (l *IndexLock) TryAcquire() bool {
	if !l.running.CompareAndSwap(false, true) {
		return false
	}
	l.started.Store(time.Now().UnixNano())
	return true
}

// Release ends the current run. Only the holder may call it.
func (l *IndexLock) Release() {
	l.started.Store(0)
	l.running.Store(false)
}

// Busy reports whether a run holds the lock
func (l *IndexLock) Busy() bool {
	return l.running.Load()
}

// Since returns when the current run started, or false when idle
func (l *IndexLock) Since() (time.Time, bool) {
	nanos := l.started.Load()
	if !l.running.Load() || nanos == 0 {
		return time.Time{}, false
	}
	return time.Unix(0, nanos), true
}
