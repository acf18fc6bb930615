package hoard

import (
	"runtime"
	"sync/atomic"
)

// spinLock is a CAS-based mutual-exclusion lock meant for short,
// bounded critical sections only: no I/O, no arena growth, no nested
// allocation while held. Go has no native spinlock type — as
// tef-crow/roundabout.go puts it, "[you'd reach] to SpinLock etc but our
// hands are tied in go, alas" — so busy-waiting on an atomic flag,
// yielding with Gosched after each failed attempt, is the idiomatic
// stand-in. Its zero value is an
// unlocked lock, ready to use.
type spinLock struct {
	held atomic.Bool
}

// Lock spins until the lock is acquired.
func (l *spinLock) Lock() {
	for !l.held.CompareAndSwap(false, true) {
		runtime.Gosched()
	}
}

// Unlock releases the lock. Unlocking an already-unlocked spinLock is a
// programmer error, same as sync.Mutex.
func (l *spinLock) Unlock() {
	l.held.Store(false)
}
