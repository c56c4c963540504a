package namei

import (
	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/ondisk"
)

// AddEntry appends a free slot for name in dir. It writes the
// (zero-padded) name into the slot but leaves the inode number at 0;
// the caller must call
// cursor.SetIno before any operation that may sleep, since another
// caller could otherwise reuse the slot in the meantime.
func (r *Resolver) AddEntry(dir *inode.Inode, name string) (block.Cursor, error) {
	if len(name) > ondisk.NameLen {
		name = name[:ondisk.NameLen]
	}

	zones := dir.ZonesSnapshot()
	size := int(dir.Size())
	count := size / ondisk.DirEntrySize

	var buf *block.Buffer
	curBlock := -1
	releaseBuf := func() {
		if buf != nil {
			r.Blocks.Brelse(buf)
			buf = nil
		}
	}
	defer releaseBuf()

	i := 0
	for ; i < count; i++ {
		blk := ondisk.BlockIndex(i)
		if blk != curBlock {
			releaseBuf()
			no, ok, err := r.Alloc.Bmap(dir.Dev, &zones, blk, false)
			if err != nil {
				return block.Cursor{}, err
			}
			curBlock = blk
			if !ok {
				// A hole has no free slots to offer; it is still
				// reserved by the directory's size, so a new slot
				// would-be written here must first fault in a real
				// block. Materialize it eagerly so this code path
				// behaves the same as any other block boundary.
				b, err := r.Alloc.CreateBlock(dir.Dev)
				if err != nil {
					return block.Cursor{}, err
				}
				zones[blk] = uint32(b.Num())
				buf = b
				curBlock = blk
			} else {
				b, err := r.Blocks.Bread(dir.Dev, no)
				if err != nil {
					return block.Cursor{}, err
				}
				buf = b
			}
		}

		off := ondisk.SlotOffset(i)
		cur := block.Cursor{Buf: buf, Offset: off}
		if cur.Entry().Ino == 0 {
			cur.WriteName(name)
			cur.Buf.MarkDirty()
			buf = nil
			dir.CommitZones(zones)
			return cur, nil
		}
	}

	// Ran off the end: extend the directory by one slot.
	blk := ondisk.BlockIndex(i)
	if blk != curBlock {
		releaseBuf()
		no, ok, err := r.Alloc.Bmap(dir.Dev, &zones, blk, false)
		if err != nil {
			return block.Cursor{}, err
		}
		if !ok {
			b, err := r.Alloc.CreateBlock(dir.Dev)
			if err != nil {
				return block.Cursor{}, err
			}
			zones[blk] = uint32(b.Num())
			buf = b
		} else {
			b, err := r.Blocks.Bread(dir.Dev, no)
			if err != nil {
				return block.Cursor{}, err
			}
			buf = b
		}
	}

	off := ondisk.SlotOffset(i)
	cur := block.Cursor{Buf: buf, Offset: off}
	cur.WriteName(name)
	cur.Buf.MarkDirty()
	buf = nil

	dir.SetSize(uint32((i + 1) * ondisk.DirEntrySize))
	dir.CommitZones(zones)
	return cur, nil
}
