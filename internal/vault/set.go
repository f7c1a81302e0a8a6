package vault

import (
	"sync/atomic"

	"github.com/redeauxlabs/passvault/internal/entry"
	"github.com/redeauxlabs/passvault/internal/genpass"
	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// setOp scans for an existing (space, key) entry; Finalize fails the
// scan with AlreadyExists if one was found. Otherwise Set creates the
// new entry and exports the whole vault with it prepended (callers look
// up what they just set more often than old entries, so the fresh entry
// goes first).
type setOp struct {
	strictOp
	v     *Vault
	main  string
	space string
	key   string
	value string

	found atomic.Bool
}

func (s *setOp) Initialize(entries []*entry.Entry) error { return nil }
func (s *setOp) LoopNotify(workerID, entryIndex int)      {}
func (s *setOp) LoopCondition() bool                      { return !s.found.Load() }

func (s *setOp) LoopBody(entryIndex int, space, key, value []byte) error {
	if string(space) == s.space && string(key) == s.key {
		s.found.CompareAndSwap(false, true)
	}
	return nil
}

func (s *setOp) Finalize(failurePending bool) error {
	if s.found.Load() {
		return vaulterr.New(vaulterr.AlreadyExists)
	}
	return nil
}

// Set creates a new entry for (space, key, value). It fails with
// AlreadyExists if one is already present.
func (v *Vault) Set(entries []*entry.Entry, main, space, key, value string) error {
	op := &setOp{v: v, main: main, space: space, key: key, value: value}
	if err := v.run(entries, main, op); err != nil {
		return err
	}

	e, err := entry.New(main, space, key, value, v.WorkFactor)
	if err != nil {
		return err
	}
	if err := entry.SetMAC(main, e); err != nil {
		return err
	}

	updated := make([]*entry.Entry, 0, len(entries)+1)
	updated = append(updated, e)
	updated = append(updated, entries...)

	return v.Save(updated)
}

// Generate is Set with a freshly generated value in place of a
// caller-supplied one.
func (v *Vault) Generate(entries []*entry.Entry, main, space, key string, length int) (string, error) {
	value, err := genpass.Generate(length)
	if err != nil {
		return "", err
	}
	if err := v.Set(entries, main, space, key, value); err != nil {
		return "", err
	}
	return value, nil
}
