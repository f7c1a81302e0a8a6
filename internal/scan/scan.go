// Package scan drives a user-supplied operation over every entry in an
// imported vault, under a shared main passphrase, using a pool of
// worker goroutines.
package scan

import (
	"runtime"
	"sync/atomic"

	"github.com/redeauxlabs/passvault/internal/entry"
)

// Operation is the vtable a caller supplies to describe what Run should
// do with each entry. State is owned entirely by the operation; the
// driver never inspects it.
type Operation interface {
	// Initialize runs once, before any worker starts. Returning an
	// error aborts the whole run without spawning workers.
	Initialize(entries []*entry.Entry) error

	// LoopNotify runs once per visited entry, before LoopBody, letting
	// the operation record which entry a worker is about to touch.
	LoopNotify(workerID, entryIndex int)

	// LoopCondition is a cooperative continuation check consulted
	// before every entry. Once it returns false, no worker already
	// past this check will enter LoopBody for a new entry, though a
	// worker already inside entry.Do is not interrupted.
	LoopCondition() bool

	// LoopBody is invoked as the entry.Do callback for each entry this
	// operation is permitted to process. entryIndex identifies which
	// entry this call belongs to, so operations that need to remember
	// "which entry matched" do not need any thread-local bookkeeping
	// of their own — a plain atomic or mutex-guarded field suffices.
	LoopBody(entryIndex int, space, key, value []byte) error

	// Finalize runs once, after every worker has exited. failurePending
	// is true iff some worker recorded an entry.Do error. Its own
	// non-zero return also fails the overall run, and it owns any
	// persistent side effect (e.g. writing the vault back out).
	Finalize(failurePending bool) error

	// DecryptFailed is consulted whenever entry.Do fails for an entry
	// this worker claimed. Returning true aborts the run (the
	// destructive-operation policy: delete/set/change-main must not
	// silently skip an entry). Returning false lets the worker continue
	// on to the next entry; the driver itself neither logs nor records
	// the failure, so an operation that wants it reported does so here
	// (the tolerant policy: an unrelated tampered entry must not block
	// get/list/check/update from completing).
	DecryptFailed(entryIndex int, err error) (abort bool)
}

// Failure records which entry failed and the error kind it failed
// with, as observed by whichever worker reached it first.
type Failure struct {
	EntryIndex int
	Err        error
}

func (f *Failure) Error() string {
	return f.Err.Error()
}

// Run imports nothing itself: entries must already be decrypted-at-rest
// (i.e. still encrypted; Run decrypts each one via entry.Do under
// main). jobs workers are spawned (fewer than 1 means runtime.NumCPU(),
// and at least one worker always runs); they
// share a single atomic counter so every entry is claimed by exactly
// one worker. Run is successful iff no worker recorded a Failure and
// Finalize returned nil.
func Run(entries []*entry.Entry, main string, jobs int, op Operation) error {
	if jobs < 1 {
		jobs = runtime.NumCPU()
		if jobs < 1 {
			jobs = 1
		}
	}

	if err := op.Initialize(entries); err != nil {
		return err
	}

	var next int64
	var firstFailure atomic.Pointer[Failure]

	done := make(chan struct{}, jobs)
	for w := 0; w < jobs; w++ {
		go func(workerID int) {
			defer func() { done <- struct{}{} }()

			for {
				i := int(atomic.AddInt64(&next, 1)) - 1
				if i >= len(entries) {
					return
				}

				op.LoopNotify(workerID, i)
				if !op.LoopCondition() {
					return
				}

				cb := func(space, key, value []byte) error {
					return op.LoopBody(i, space, key, value)
				}
				if err := entry.Do(main, entries[i], cb); err != nil {
					if op.DecryptFailed(i, err) {
						firstFailure.CompareAndSwap(nil, &Failure{EntryIndex: i, Err: err})
						return
					}
					continue
				}
			}
		}(w)
	}
	for w := 0; w < jobs; w++ {
		<-done
	}

	failure := firstFailure.Load()
	finalizeErr := op.Finalize(failure != nil)

	if failure != nil {
		return failure
	}
	if finalizeErr != nil {
		return finalizeErr
	}
	return nil
}
