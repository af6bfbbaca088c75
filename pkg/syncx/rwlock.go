// Package syncx provides concurrency primitives used by the pipeline to guard
// shared per-run state.
//
// The main export is ReentrantRWLock, a cooperative read-write lock that
// tracks reentrancy through context.Context rather than goroutine identity.
// Lifecycle handlers routinely trigger further dispatches from inside a
// dispatch (a tool-call handler driving another model call that touches the
// same feature state), so a plain sync.RWMutex would deadlock a task against
// itself. Every acquisition is cancellation-aware: waiting on the lock
// respects the caller's context.
package syncx

import (
	"context"
	"errors"
)

// ErrUpgradeDeadlock is returned by WithWriteLock when the calling task
// already holds the read lock. Upgrading read to write is refused outright:
// two tasks attempting the same upgrade would each wait for the other's
// readers to drain and never make progress. This is a programming error in
// the caller, not a transient condition.
var ErrUpgradeDeadlock = errors.New("syncx: cannot acquire write lock while holding read lock")

// lockFlags records what the current task already holds. The zero value means
// the task holds nothing.
type lockFlags struct {
	read  bool
	write bool
}

// flagsKey scopes the reentrancy flags to one lock instance, so two locks
// used on the same call path never observe each other's state.
type flagsKey struct{ lock *ReentrantRWLock }

// ReentrantRWLock is a read-write lock whose reentrancy is tracked via
// context values instead of thread identity. A task that already holds the
// write lock may take the read lock (write implies read) or the write lock
// again without blocking; a task holding only the read lock may re-enter the
// read lock freely.
//
// Readers use the classic lightswitch pattern: a counter guarded by a small
// semaphore, with the first reader in and the last reader out acquiring and
// releasing the exclusive primitive that writers contend on.
type ReentrantRWLock struct {
	writer  chan struct{}
	gate    chan struct{}
	readers int
}

// NewReentrantRWLock returns an unlocked lock.
func NewReentrantRWLock() *ReentrantRWLock {
	return &ReentrantRWLock{
		writer: make(chan struct{}, 1),
		gate:   make(chan struct{}, 1),
	}
}

func (l *ReentrantRWLock) flags(ctx context.Context) lockFlags {
	fl, _ := ctx.Value(flagsKey{l}).(lockFlags)
	return fl
}

func (l *ReentrantRWLock) acquire(ctx context.Context, sem chan struct{}) error {
	select {
	case sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// HoldsRead reports whether the task owning ctx currently holds the read or
// write lock. Exposed for assertions in calling code and tests.
func (l *ReentrantRWLock) HoldsRead(ctx context.Context) bool {
	fl := l.flags(ctx)
	return fl.read || fl.write
}

// HoldsWrite reports whether the task owning ctx currently holds the write lock.
func (l *ReentrantRWLock) HoldsWrite(ctx context.Context) bool {
	return l.flags(ctx).write
}

// WithReadLock runs fn while holding the read lock.
//
// If the calling task already holds the write lock, fn runs directly: write
// implies read and taking the primitive again would self-deadlock. If the
// task already holds the read lock, fn also runs directly. Otherwise the
// reader counter is bumped under the gate, the first reader acquires the
// exclusive primitive to block writers, and fn receives a context whose
// flags mark the read lock as held so nested acquisitions short-circuit.
//
// The counter is decremented and the primitive released on every exit path,
// including when fn returns an error.
func (l *ReentrantRWLock) WithReadLock(ctx context.Context, fn func(context.Context) error) error {
	fl := l.flags(ctx)
	if fl.read || fl.write {
		return fn(ctx)
	}

	if err := l.acquire(ctx, l.gate); err != nil {
		return err
	}
	l.readers++
	if l.readers == 1 {
		if err := l.acquire(ctx, l.writer); err != nil {
			l.readers--
			<-l.gate
			return err
		}
	}
	<-l.gate

	defer func() {
		// Release must not be interruptible, otherwise the counter and the
		// primitive would go out of sync on cancellation.
		l.gate <- struct{}{}
		l.readers--
		if l.readers == 0 {
			<-l.writer
		}
		<-l.gate
	}()

	return fn(context.WithValue(ctx, flagsKey{l}, lockFlags{read: true}))
}

// WithWriteLock runs fn while holding the write lock.
//
// A task that already holds the write lock re-enters directly. A task that
// holds only the read lock gets ErrUpgradeDeadlock immediately rather than
// blocking forever. Otherwise the exclusive primitive is acquired, fn runs
// with both flags set (write implies read), and the primitive is released on
// every exit path.
func (l *ReentrantRWLock) WithWriteLock(ctx context.Context, fn func(context.Context) error) error {
	fl := l.flags(ctx)
	if fl.write {
		return fn(ctx)
	}
	if fl.read {
		return ErrUpgradeDeadlock
	}

	if err := l.acquire(ctx, l.writer); err != nil {
		return err
	}
	defer func() { <-l.writer }()

	return fn(context.WithValue(ctx, flagsKey{l}, lockFlags{read: true, write: true}))
}
