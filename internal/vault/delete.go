package vault

import (
	"sync/atomic"

	"github.com/redeauxlabs/passvault/internal/entry"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// deleteOp locates the (space, key) entry to remove. Unlike update, a
// deletion is destructive enough that the original tool treated any
// decryption failure encountered along the way as fatal — the caller
// should not guess which entry it removed from a database it cannot
// fully read.
type deleteOp struct {
	strictOp
	space, key string

	found      atomic.Bool
	foundIndex atomic.Int64
}

func (d *deleteOp) Initialize(entries []*entry.Entry) error { return nil }
func (d *deleteOp) LoopNotify(workerID, entryIndex int)      {}
func (d *deleteOp) LoopCondition() bool                      { return !d.found.Load() }

func (d *deleteOp) LoopBody(entryIndex int, space, key, value []byte) error {
	if string(space) == d.space && string(key) == d.key {
		if d.found.CompareAndSwap(false, true) {
			d.foundIndex.Store(int64(entryIndex))
		}
	}
	return nil
}

func (d *deleteOp) Finalize(failurePending bool) error { return nil }

// Delete removes the entry matching (space, key). NotFound if no entry
// matches.
func (v *Vault) Delete(entries []*entry.Entry, main, space, key string) error {
	op := &deleteOp{space: space, key: key}
	if err := v.run(entries, main, op); err != nil {
		return err
	}
	if !op.found.Load() {
		return vaulterr.New(vaulterr.NotFound)
	}
	foundIndex := int(op.foundIndex.Load())

	updated := make([]*entry.Entry, 0, len(entries)-1)
	for i, e := range entries {
		if i != foundIndex {
			updated = append(updated, e)
		}
	}

	return v.Save(updated)
}
