package vault

import (
	"sync"

	"github.com/redeauxlabs/passvault/internal/entry"
)

// changeMainOp re-encrypts every entry under a new main passphrase as
// it is decrypted under the old one. Any single entry's re-encryption
// failure aborts the whole operation: a partially re-keyed vault would
// leave some entries unreadable under either passphrase.
type changeMainOp struct {
	strictOp
	newMain    string
	workFactor int

	mu          sync.Mutex
	newEntries  []*entry.Entry
	firstErr    error
}

func (c *changeMainOp) Initialize(entries []*entry.Entry) error {
	c.newEntries = make([]*entry.Entry, len(entries))
	return nil
}

func (c *changeMainOp) LoopNotify(workerID, entryIndex int) {}
func (c *changeMainOp) LoopCondition() bool                 { return true }

func (c *changeMainOp) LoopBody(entryIndex int, space, key, value []byte) error {
	e, err := entry.New(c.newMain, string(space), string(key), string(value), c.workFactor)
	if err != nil {
		c.mu.Lock()
		if c.firstErr == nil {
			c.firstErr = err
		}
		c.mu.Unlock()
		return err
	}
	if err := entry.SetMAC(c.newMain, e); err != nil {
		c.mu.Lock()
		if c.firstErr == nil {
			c.firstErr = err
		}
		c.mu.Unlock()
		return err
	}

	c.mu.Lock()
	c.newEntries[entryIndex] = e
	c.mu.Unlock()
	return nil
}

func (c *changeMainOp) Finalize(failurePending bool) error {
	return c.firstErr
}

// ChangeMain re-encrypts every entry in the vault under newMain,
// rotating each entry's salt, IV, and HMAC salt in the process, and
// exports the result. RecordRotation (see rotation.go) records the
// rotation for the summary report.
func (v *Vault) ChangeMain(entries []*entry.Entry, oldMain, newMain string) error {
	op := &changeMainOp{newMain: newMain, workFactor: v.WorkFactor}
	if err := v.run(entries, oldMain, op); err != nil {
		return err
	}
	if op.firstErr != nil {
		return op.firstErr
	}

	RecordRotation(len(entries))

	return v.Save(op.newEntries)
}
