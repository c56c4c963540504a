package namei

import (
	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/ondisk"
	"github.com/jacobsa/minixfs/task"
)

// FindEntry locates name within *dirp. *dirp may be rebound in place:
// if the directory is the task's pseudo-root, ".." folds to "."; if
// the directory is the
// filesystem root of a mounted-elsewhere device, the search rebinds
// to the inode the device is mounted on (releasing the old handle,
// taking a reference on the new one) before scanning.
//
// On success, the returned block.Cursor owns exactly one buffer
// reference, which the caller must Release. On failure, no buffer is
// held.
func (r *Resolver) FindEntry(dirp **inode.Inode, name string, t *task.Task) (block.Cursor, error) {
	dir := *dirp
	if !dir.Mode().IsDir() {
		return block.Cursor{}, minixfs.ErrNotDir
	}

	namelen := len(name)
	if namelen > ondisk.NameLen {
		namelen = ondisk.NameLen
		name = name[:namelen]
	}

	if name == ".." {
		switch {
		case t.IsPseudoRoot(dir):
			name = "."
		case r.Mounts.IsRoot(dir.Dev, dir.Num):
			if parentDev, parentIno, ok := r.Mounts.MountedOn(dir.Dev); ok {
				newDir, err := r.Inodes.Get(parentDev, parentIno)
				if err != nil {
					return block.Cursor{}, err
				}
				dir.Put()
				*dirp = newDir
				dir = newDir
			}
		}
	}

	size := int(dir.Size())
	count := size / ondisk.DirEntrySize
	zones := dir.ZonesSnapshot()

	var buf *block.Buffer
	curBlock := -1
	defer func() {
		if buf != nil {
			r.Blocks.Brelse(buf)
		}
	}()

	for i := 0; i < count; i++ {
		blk := ondisk.BlockIndex(i)
		if blk != curBlock {
			if buf != nil {
				r.Blocks.Brelse(buf)
				buf = nil
			}
			no, ok, err := r.Alloc.Bmap(dir.Dev, &zones, blk, false)
			if err != nil {
				return block.Cursor{}, err
			}
			curBlock = blk
			if !ok {
				// Sparse hole: skip the rest of this block's slots.
				i = (blk+1)*ondisk.DirEntriesPerBlock - 1
				continue
			}
			b, err := r.Blocks.Bread(dir.Dev, no)
			if err != nil {
				return block.Cursor{}, err
			}
			buf = b
		}

		off := ondisk.SlotOffset(i)
		cur := block.Cursor{Buf: buf, Offset: off}
		if ondisk.MatchName(name, true, cur.Entry()) {
			buf = nil // ownership transferred to the returned cursor
			return cur, nil
		}
	}

	return block.Cursor{}, minixfs.ErrNoEnt
}
