package vault

import (
	"fmt"
	"io"
	"time"
)

// CheckReport summarizes one run of Check: how many entries were
// examined, how many were flagged weak, and how many could not be
// decrypted at all.
type CheckReport struct {
	GeneratedAt   time.Time
	Space, Key    string
	Examined      int
	Weak          int
	Skipped       int
	RotationCount int
	LastRotation  time.Time
	HasRotated    bool
}

// NewCheckReport tallies the results of a Check call into a report,
// alongside this process's change-main history so an operator can see
// at a glance whether weak passwords were flagged before or after the
// main passphrase was last rotated.
func NewCheckReport(space, key string, results []CheckResult, skipped []Skipped) *CheckReport {
	r := &CheckReport{GeneratedAt: time.Now(), Space: space, Key: key}
	r.Examined = len(results)
	r.Skipped = len(skipped)
	for _, res := range results {
		if res.Verdict.Weak {
			r.Weak++
		}
	}
	r.RotationCount = RotationCount()
	r.LastRotation, r.HasRotated = LastRotation()
	return r
}

// WriteTo renders a one-line-per-entry summary followed by a totals
// line, in the order the original CLI printed its check output.
func (r *CheckReport) WriteTo(w io.Writer, results []CheckResult) (int64, error) {
	var n int
	for _, res := range results {
		status := "OK"
		if res.Verdict.Weak {
			status = "weak password (" + res.Verdict.Reason + ")"
		}
		c, err := fmt.Fprintf(w, "%s/%s: %s\n", res.Space, res.Key, status)
		n += c
		if err != nil {
			return int64(n), err
		}
	}

	c, err := fmt.Fprintf(w, "examined %d entries, %d weak, %d skipped\n", r.Examined, r.Weak, r.Skipped)
	n += c
	if err != nil {
		return int64(n), err
	}

	if r.HasRotated {
		c, err = fmt.Fprintf(w, "main passphrase rotated %d time(s), last at %s\n",
			r.RotationCount, r.LastRotation.Format(time.RFC3339))
		n += c
	}
	return int64(n), err
}
