//go:build linux

package secmem

import "golang.org/x/sys/unix"

// disablePtrace makes a one-shot attempt to stop other processes
// attaching to us with PTRACE_ATTACH, going some way towards preventing
// a colocated process from peeking at the secure heap. This is not
// foolproof (it leaves /proc/<pid>/mem open on some kernels) but costs
// nothing to attempt.
func disablePtrace() {
	_ = unix.Prctl(unix.PR_SET_DUMPABLE, 0, 0, 0, 0)
}
