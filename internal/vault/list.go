package vault

import (
	"sync"

	"github.com/redeauxlabs/passvault/internal/entry"
)

// listOp decrypts every entry and reports its (space, key) pair via
// emit. An unrelated tampered entry must not stop the rest of the
// listing from completing, so decryption failures here are non-fatal;
// the caller is told which indices were skipped via onSkip.
type listOp struct {
	lenientOp
	mu   sync.Mutex
	emit func(space, key string)
}

func (l *listOp) Initialize(entries []*entry.Entry) error { return nil }
func (l *listOp) LoopNotify(workerID, entryIndex int)      {}
func (l *listOp) LoopCondition() bool                      { return true }

func (l *listOp) LoopBody(entryIndex int, space, key, value []byte) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.emit(string(space), string(key))
	return nil
}

func (l *listOp) Finalize(failurePending bool) error { return nil }

// Skipped describes an entry List could not decrypt.
type Skipped struct {
	EntryIndex int
	Err        error
}

// List decrypts every entry and calls emit(space, key) for each one
// that decrypts successfully, in no particular order. It returns the
// entries that failed to decrypt rather than treating them as fatal.
func (v *Vault) List(entries []*entry.Entry, main string, emit func(space, key string)) ([]Skipped, error) {
	var mu sync.Mutex
	var skipped []Skipped

	op := &listOp{emit: emit}
	op.onSkip = func(entryIndex int, err error) {
		mu.Lock()
		defer mu.Unlock()
		skipped = append(skipped, Skipped{EntryIndex: entryIndex, Err: err})
	}

	if err := v.run(entries, main, op); err != nil {
		return skipped, err
	}
	return skipped, nil
}
