// Package vault orchestrates the store, entry, scan, genpass, and audit
// packages into the vault's eight user-facing operations: get, set,
// update, delete, list, generate, change-main, and check.
package vault

import (
	"os"

	"github.com/redeauxlabs/passvault/internal/entry"
	"github.com/redeauxlabs/passvault/internal/kdf"
	"github.com/redeauxlabs/passvault/internal/scan"
	"github.com/redeauxlabs/passvault/internal/store"
)

// Vault names the on-disk file and the parameters every operation
// against it runs under.
type Vault struct {
	Path       string
	Jobs       int
	WorkFactor int
}

// Open resolves the work factor and imports every entry from v.Path.
// A missing file is treated as an empty vault, matching the "create
// the database on first set" convention the original CLI's own
// argument parsing implements at a higher layer.
func (v *Vault) Open() ([]*entry.Entry, error) {
	wf, err := kdf.ResolveWorkFactor(v.WorkFactor)
	if err != nil {
		return nil, err
	}
	if _, statErr := os.Stat(v.Path); os.IsNotExist(statErr) {
		return nil, nil
	}
	return store.Import(v.Path, wf)
}

// Save exports entries back to v.Path, atomically.
func (v *Vault) Save(entries []*entry.Entry) error {
	return store.Export(v.Path, entries)
}

// jobs resolves v.Jobs into the value scan.Run expects (0 meaning
// "auto-detect").
func (v *Vault) jobs() int {
	return v.Jobs
}

// run is a thin wrapper so every operation in this package drives the
// entries it was given through the same scan.Run call.
func (v *Vault) run(entries []*entry.Entry, main string, op scan.Operation) error {
	return scan.Run(entries, main, v.jobs(), op)
}

// strictOp is embedded by operations that must abort on the first
// decryption failure: set, delete, generate, change-main. A
// tampered entry blocking a destructive operation is the documented
// policy, not a bug.
type strictOp struct{}

func (strictOp) DecryptFailed(entryIndex int, err error) bool { return true }

// lenientOp is embedded by operations that must tolerate an unrelated
// tampered entry: the read-only get, list, and check, plus update (see
// updateOp).
type lenientOp struct {
	onSkip func(entryIndex int, err error)
}

func (l lenientOp) DecryptFailed(entryIndex int, err error) bool {
	if l.onSkip != nil {
		l.onSkip(entryIndex, err)
	}
	return false
}
