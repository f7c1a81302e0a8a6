//go:build windows || plan9 || js

package secmem

// newChunk provides the non-mlockable fallback for platforms the
// reference implementation never targeted (it assumed a POSIX mlock).
// The allocator's bitmap bookkeeping, zero-on-free, and poisoning
// semantics still apply; only the "never swapped to disk" guarantee is
// unavailable here.
func newChunk() (*chunk, error) {
	return &chunk{mem: make([]byte, pageSize)}, nil
}

func releaseChunk(c *chunk) {
	// nothing to unmap; the garbage collector reclaims c.mem once it is
	// no longer referenced from the freelist.
}
