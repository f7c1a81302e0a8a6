package secmem

import (
	"fmt"
	"io"

	"github.com/redeauxlabs/passvault/internal/vaulterr"
)

// Alloc returns a zeroed buffer of n bytes backed by locked, non-pageable
// memory. It rejects n == 0 and n greater than one page. Once the
// allocator has latched into its poisoned state (see the package doc),
// every subsequent call fails with OutOfMemory regardless of n.
func Alloc(n int) ([]byte, error) {
	if n == 0 {
		return nil, vaulterr.New(vaulterr.OutOfMemory)
	}
	rounded := roundToBlock(n)
	if rounded > pageSize {
		return nil, vaulterr.New(vaulterr.OutOfMemory)
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if global.disabled {
		return nil, vaulterr.New(vaulterr.OutOfMemory)
	}

	if !global.ptraceHandled {
		disablePtrace()
		global.ptraceHandled = true
	}

	blocks := rounded / blockSize

	for c := global.freelist; c != nil; c = c.next {
		if p, ok := c.carve(blocks, n); ok {
			return p, nil
		}
	}

	c, err := newChunk()
	if err != nil {
		return nil, vaulterr.Wrap(vaulterr.OutOfMemory, err)
	}
	c.next = global.freelist
	global.freelist = c

	// carve from the tail of the freshly acquired page
	start := blocksPerChunk - blocks
	for i := 0; i < blocks; i++ {
		c.setBit(start+i, true)
	}
	c.lastIndex = blocksPerChunk
	return c.mem[start*blockSize : start*blockSize+n], nil
}

// carve searches this chunk's bitmap, starting from its cached
// lastIndex, for `blocks` contiguous free blocks and marks them in use
// on success. It mirrors the reference allocator's resumable linear
// scan: lastIndex is purely an optimisation for where to resume.
func (c *chunk) carve(blocks, size int) ([]byte, bool) {
	firstIndex := c.lastIndex

	for c.lastIndex < blocksPerChunk {
		for c.lastIndex < blocksPerChunk && c.bitSet(c.lastIndex) {
			c.lastIndex++
		}

		offset := 0
		for offset < blocks && c.lastIndex+offset < blocksPerChunk {
			if c.bitSet(c.lastIndex + offset) {
				break
			}
			offset++
		}

		if offset == blocks {
			for i := 0; i < blocks; i++ {
				c.setBit(c.lastIndex+i, true)
			}
			start := c.lastIndex * blockSize
			c.lastIndex += blocks
			return c.mem[start : start+size], true
		}

		c.lastIndex += offset
	}

	c.lastIndex = 0
	if firstIndex >= blocks {
		return c.carve(blocks, size)
	}
	return nil, false
}

// Free zero-wipes the n bytes at p and returns the underlying blocks to
// their chunk's freelist. Any violation of the allocator's invariants —
// a pointer outside every chunk, or a range whose blocks are not all
// currently marked in use — latches the allocator into its disabled
// state: every future Alloc fails, and Free becomes a no-op.
func Free(p []byte) {
	if len(p) == 0 {
		return
	}

	global.mu.Lock()
	defer global.mu.Unlock()

	if global.disabled {
		return
	}

	c, offset, ok := locate(global.freelist, p)
	if !ok {
		global.disabled = true
		return
	}

	blocks := roundToBlock(len(p)) / blockSize
	if !c.allOfRangeSet(offset, blocks) {
		global.disabled = true
		return
	}

	for i := range p {
		p[i] = 0
	}
	for i := 0; i < blocks; i++ {
		c.setBit(offset+i, false)
	}
}

// Reset releases every chunk back to the operating system. It fails if
// any block anywhere is still marked allocated: callers must Free every
// outstanding buffer first.
func Reset() error {
	global.mu.Lock()
	defer global.mu.Unlock()

	if global.disabled {
		return vaulterr.New(vaulterr.OutOfMemory)
	}

	for c := global.freelist; c != nil; c = c.next {
		for i := 0; i < blocksPerChunk; i++ {
			if c.bitSet(i) {
				return vaulterr.New(vaulterr.OutOfMemory)
			}
		}
	}

	for c := global.freelist; c != nil; {
		next := c.next
		releaseChunk(c)
		c = next
	}
	global.freelist = nil
	global.ptraceHandled = false
	return nil
}

// PrintHeap dumps the bitmap of every chunk to sink as a debugging aid.
func PrintHeap(sink io.Writer) {
	global.mu.Lock()
	defer global.mu.Unlock()

	for c := global.freelist; c != nil; c = c.next {
		fmt.Fprintf(sink, "%p:\n", c.mem)
		for i := 0; i < blocksPerChunk; i++ {
			if i%64 == 0 {
				fmt.Fprint(sink, " ")
			}
			if c.bitSet(i) {
				fmt.Fprint(sink, "1")
			} else {
				fmt.Fprint(sink, "0")
			}
			if i%64 == 63 {
				fmt.Fprintln(sink)
			}
		}
	}
}
