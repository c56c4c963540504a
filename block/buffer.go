package block

import "sync"

// BlockSize mirrors ondisk.BlockSize as a local untyped constant; the
// two must stay equal.
const BlockSize = 1024

// Buffer is a reference-counted handle over one in-memory copy of a
// block, modeling the classic struct buffer_head. Every Buffer
// returned by Cache.Bread carries one reference that the caller must
// release via Cache.Brelse exactly once, even on an error path.
type Buffer struct {
	mu sync.Mutex

	dev  DeviceID
	no   Num
	data [BlockSize]byte

	refs  int
	dirty bool
	hole  bool // true if this block has never been written (sparse)
}

// Dev returns the device this buffer belongs to.
func (b *Buffer) Dev() DeviceID { return b.dev }

// Num returns the block number this buffer caches.
func (b *Buffer) Num() Num { return b.no }

// Data returns the mutable backing array for this block. Callers
// writing through it must call MarkDirty.
func (b *Buffer) Data() []byte { return b.data[:] }

// Hole reports whether this block was never written (a gap in a
// sparse directory that a scanner must skip over rather than error on).
func (b *Buffer) Hole() bool { return b.hole }

// MarkDirty marks the buffer as needing write-back (b_dirt). This is
// the commit point: once marked dirty the cache is responsible for
// eventual write-back. A dirtied block is no longer a hole.
func (b *Buffer) MarkDirty() {
	b.mu.Lock()
	b.dirty = true
	b.hole = false
	b.mu.Unlock()
}

func (b *Buffer) addRef() {
	b.mu.Lock()
	b.refs++
	b.mu.Unlock()
}
