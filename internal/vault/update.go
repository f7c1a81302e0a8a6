package vault

import (
	"sync/atomic"

	"github.com/redeauxlabs/passvault/internal/entry"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// updateOp locates an existing (space, key) entry. There is an inherent
// race between locating the target and an unrelated entry decrypting
// badly elsewhere in the scan; this is resolved the same way the
// original CLI resolved it: decryption failures here are never fatal,
// since an update can only act on an entry it has actually decrypted.
type updateOp struct {
	lenientOp
	space, key string

	found      atomic.Bool
	foundIndex atomic.Int64
}

func (u *updateOp) Initialize(entries []*entry.Entry) error { return nil }
func (u *updateOp) LoopNotify(workerID, entryIndex int)      {}
func (u *updateOp) LoopCondition() bool                      { return !u.found.Load() }

func (u *updateOp) LoopBody(entryIndex int, space, key, value []byte) error {
	if string(space) == u.space && string(key) == u.key {
		if u.found.CompareAndSwap(false, true) {
			u.foundIndex.Store(int64(entryIndex))
		}
	}
	return nil
}

func (u *updateOp) Finalize(failurePending bool) error { return nil }

// Update replaces the value of an existing (space, key) entry,
// re-encrypting it fresh (new salt, new IV, new HMAC salt) and moving
// it to the front of the exported list. NotFound if no entry matches.
func (v *Vault) Update(entries []*entry.Entry, main, space, key, value string) error {
	op := &updateOp{space: space, key: key}
	if err := v.run(entries, main, op); err != nil {
		return err
	}
	if !op.found.Load() {
		return vaulterr.New(vaulterr.NotFound)
	}
	foundIndex := int(op.foundIndex.Load())

	e, err := entry.New(main, space, key, value, v.WorkFactor)
	if err != nil {
		return err
	}
	if err := entry.SetMAC(main, e); err != nil {
		return err
	}

	updated := make([]*entry.Entry, 0, len(entries))
	updated = append(updated, e)
	for i, old := range entries {
		if i != foundIndex {
			updated = append(updated, old)
		}
	}

	return v.Save(updated)
}
