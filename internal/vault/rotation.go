package vault

import (
	"sync"
	"time"
)

// rotationEvent records one change-main pass over the vault.
type rotationEvent struct {
	At         time.Time
	EntryCount int
}

// rotationTracker is a mutex-guarded log of every key-rotation pass
// this process has performed, consulted by the check/report summary.
type rotationTracker struct {
	mu     sync.Mutex
	events []rotationEvent
}

var rotations rotationTracker

// RecordRotation appends a rotation event for a change-main pass that
// touched entryCount entries.
func RecordRotation(entryCount int) {
	rotations.mu.Lock()
	defer rotations.mu.Unlock()
	rotations.events = append(rotations.events, rotationEvent{At: time.Now(), EntryCount: entryCount})
}

// RotationCount reports how many change-main passes have run in this
// process.
func RotationCount() int {
	rotations.mu.Lock()
	defer rotations.mu.Unlock()
	return len(rotations.events)
}

// LastRotation reports the time of the most recent change-main pass,
// and whether one has happened at all in this process.
func LastRotation() (time.Time, bool) {
	rotations.mu.Lock()
	defer rotations.mu.Unlock()
	if len(rotations.events) == 0 {
		return time.Time{}, false
	}
	return rotations.events[len(rotations.events)-1].At, true
}
