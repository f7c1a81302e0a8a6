package vault

import (
	"sync"
	"sync/atomic"

	"github.com/redeauxlabs/passvault/internal/audit"
	"github.com/redeauxlabs/passvault/internal/entry"
)

// CheckResult is the per-entry outcome of a weak-password scan.
type CheckResult struct {
	Space, Key string
	Verdict    audit.Verdict
}

// checkOp applies the dictionary/breach heuristics in internal/audit to
// every decrypted entry, optionally restricted to one space and/or key.
// Like list, a single unrelated tampered entry must not abort the whole
// scan: entries that fail to decrypt are reported as skipped rather than
// fatal.
type checkOp struct {
	lenientOp
	space, key string
	dict       audit.Dictionary
	breach     audit.BreachChecker

	mu       sync.Mutex
	results  []CheckResult
	foundWeak atomic.Bool
}

func (c *checkOp) Initialize(entries []*entry.Entry) error { return nil }
func (c *checkOp) LoopNotify(workerID, entryIndex int)      {}
func (c *checkOp) LoopCondition() bool                      { return true }

func (c *checkOp) LoopBody(entryIndex int, space, key, value []byte) error {
	if c.space != "" && string(space) != c.space {
		return nil
	}
	if c.key != "" && string(key) != c.key {
		return nil
	}

	v := audit.Check(string(value), c.dict, c.breach)
	if v.Weak {
		c.foundWeak.Store(true)
	}

	c.mu.Lock()
	c.results = append(c.results, CheckResult{Space: string(space), Key: string(key), Verdict: v})
	c.mu.Unlock()
	return nil
}

func (c *checkOp) Finalize(failurePending bool) error { return nil }

// Check scans the vault for weak passwords, restricting to space and/or
// key when either is non-empty. It returns one CheckResult per examined
// entry (in no particular order), the entries skipped due to decryption
// failure, and whether at least one weak password was found.
func (v *Vault) Check(entries []*entry.Entry, main, space, key string, dict audit.Dictionary, breach audit.BreachChecker) ([]CheckResult, []Skipped, bool, error) {
	var mu sync.Mutex
	var skipped []Skipped

	op := &checkOp{space: space, key: key, dict: dict, breach: breach}
	op.onSkip = func(entryIndex int, err error) {
		mu.Lock()
		defer mu.Unlock()
		skipped = append(skipped, Skipped{EntryIndex: entryIndex, Err: err})
	}

	if err := v.run(entries, main, op); err != nil {
		return nil, skipped, false, err
	}
	return op.results, skipped, op.foundWeak.Load(), nil
}
