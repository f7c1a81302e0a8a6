package vault

import (
	"sync/atomic"

	"github.com/redeauxlabs/passvault/internal/entry"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// getOp looks up a single (space, key) pair and stops as soon as it is
// found, tolerating decryption failures on unrelated entries along the
// way.
type getOp struct {
	lenientOp
	space, key string

	found atomic.Bool
	value atomic.Pointer[string]
}

func (g *getOp) Initialize(entries []*entry.Entry) error { return nil }
func (g *getOp) LoopNotify(workerID, entryIndex int)      {}
func (g *getOp) LoopCondition() bool                      { return !g.found.Load() }

func (g *getOp) LoopBody(entryIndex int, space, key, value []byte) error {
	if string(space) == g.space && string(key) == g.key {
		v := string(value)
		g.value.Store(&v)
		g.found.Store(true)
	}
	return nil
}

func (g *getOp) Finalize(failurePending bool) error { return nil }

// Get returns the value stored for (space, key), or NotFound if no
// entry matches.
func (v *Vault) Get(entries []*entry.Entry, main, space, key string) (string, error) {
	op := &getOp{space: space, key: key}
	if err := v.run(entries, main, op); err != nil {
		return "", err
	}
	if !op.found.Load() {
		return "", vaulterr.New(vaulterr.NotFound)
	}
	return *op.value.Load(), nil
}
