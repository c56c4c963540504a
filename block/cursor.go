package block

import "github.com/jacobsa/minixfs/ondisk"

// Cursor is an entry cursor into a directory block: a (buffer, byte
// offset) pair that owns exactly one buffer reference. Callers walking
// a directory never see a raw pointer into a block's backing array;
// they see a Cursor.
type Cursor struct {
	Buf    *Buffer
	Offset int
}

// Entry unmarshals the directory slot this cursor points at.
func (c Cursor) Entry() ondisk.DirEntry {
	d := c.Buf.Data()
	return ondisk.Unmarshal(d[c.Offset : c.Offset+ondisk.DirEntrySize])
}

// SetIno overwrites just the inode-number field of the slot and marks
// the buffer dirty. add_entry's caller must call this before any
// operation that may sleep, since another thread could otherwise
// reuse the slot.
func (c Cursor) SetIno(ino uint32) {
	d := c.Buf.Data()
	d[c.Offset] = byte(ino)
	d[c.Offset+1] = byte(ino >> 8)
	c.Buf.MarkDirty()
}

// WriteName zero-pads and writes name into the slot's name field,
// without touching the inode-number field.
func (c Cursor) WriteName(name string) {
	d := c.Buf.Data()
	var nameBuf [ondisk.NameLen]byte
	copy(nameBuf[:], name)
	copy(d[c.Offset+2:c.Offset+ondisk.DirEntrySize], nameBuf[:])
}

// Zero clears the inode-number field, freeing the slot.
func (c Cursor) Zero() {
	d := c.Buf.Data()
	d[c.Offset] = 0
	d[c.Offset+1] = 0
	c.Buf.MarkDirty()
}

// Release gives up this cursor's one buffer reference.
func (c Cursor) Release(cache *Cache) {
	cache.Brelse(c.Buf)
}
