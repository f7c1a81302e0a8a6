//go:build !windows && !plan9 && !js

package secmem

import (
	"fmt"

	"golang.org/x/sys/unix"
)

// newChunk maps and locks a fresh page of anonymous memory. The pages
// backing a chunk are never swapped to disk for the lifetime of the
// process; mlock's guarantee is what makes this allocator worth having
// over the plain Go heap for secret material.
func newChunk() (*chunk, error) {
	mem, err := unix.Mmap(-1, 0, pageSize, unix.PROT_READ|unix.PROT_WRITE, unix.MAP_ANON|unix.MAP_PRIVATE)
	if err != nil {
		return nil, fmt.Errorf("mmap: %w", err)
	}
	if err := unix.Mlock(mem); err != nil {
		_ = unix.Munmap(mem)
		return nil, fmt.Errorf("mlock: %w", err)
	}
	return &chunk{mem: mem}, nil
}

func releaseChunk(c *chunk) {
	_ = unix.Munlock(c.mem)
	_ = unix.Munmap(c.mem)
}
