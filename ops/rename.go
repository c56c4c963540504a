package ops

import (
	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/ondisk"
	"github.com/jacobsa/minixfs/task"
)

// maxSubdirHops bounds subdir's ancestor walk explicitly, rather than
// relying solely on "two consecutive .. lookups returned the same
// inode" as the only stop condition.
const maxSubdirHops = 4096

// Rename atomically rebinds (oldDir, oldName) to (newDir, newName),
// removing the old entry. Both parents must already exist and be on
// the same device; the destination name must not exist; a directory
// may not be renamed into its own subtree.
func (o *Ops) Rename(oldPath, newPath string, t *task.Task) error {
	o.RenameLock.Acquire()
	defer o.RenameLock.Release()

	oldParent, oldName, err := o.parentFor(oldPath, t)
	if err != nil {
		return err
	}
	newParent, newName, err := o.parentFor(newPath, t)
	if err != nil {
		oldParent.Put()
		return err
	}
	if oldParent.Dev != newParent.Dev {
		oldParent.Put()
		newParent.Put()
		return minixfs.ErrCrossDevice
	}

	oldCur, err := o.R.FindEntry(&oldParent, oldName, t)
	if err != nil {
		oldParent.Put()
		newParent.Put()
		return err
	}
	srcIno := oldCur.Entry().Ino
	oldCur.Release(o.R.Blocks)

	src, err := o.R.Inodes.Get(oldParent.Dev, srcIno)
	if err != nil {
		oldParent.Put()
		newParent.Put()
		return err
	}

	isDir := src.Mode().IsDir()
	if isDir {
		ancestor, err := o.subdir(newParent, src, t)
		if err != nil {
			src.Put()
			oldParent.Put()
			newParent.Put()
			return err
		}
		if ancestor {
			src.Put()
			oldParent.Put()
			newParent.Put()
			return minixfs.ErrInvalid
		}
	}

	if err := o.requireAbsent(newParent, newName, t); err != nil {
		src.Put()
		oldParent.Put()
		newParent.Put()
		return err
	}

	// Prepare: reserve the destination slot.
	newCur, err := o.R.AddEntry(newParent, newName)
	if err != nil {
		src.Put()
		oldParent.Put()
		newParent.Put()
		return minixfs.ErrNoSpace
	}

	// Sanity recheck: the destination slot must still be free and the
	// source slot must still refer to the resolved inode. Either
	// failing means another mutator raced us; the caller must retry
	// the whole call.
	if newCur.Entry().Ino != 0 {
		newCur.Release(o.R.Blocks)
		src.Put()
		oldParent.Put()
		newParent.Put()
		return minixfs.ErrRestart
	}
	recheckCur, err := o.R.FindEntry(&oldParent, oldName, t)
	if err != nil || recheckCur.Entry().Ino != src.Num {
		if err == nil {
			recheckCur.Release(o.R.Blocks)
		}
		newCur.Release(o.R.Blocks)
		src.Put()
		oldParent.Put()
		newParent.Put()
		return minixfs.ErrRestart
	}

	// Commit.
	recheckCur.Zero()
	recheckCur.Release(o.R.Blocks)
	newCur.SetIno(src.Num)
	newCur.Release(o.R.Blocks)

	now := o.R.Clock.Now()
	if isDir {
		if err := o.rewriteDotDot(src, newParent.Num); err != nil {
			src.Put()
			oldParent.Put()
			newParent.Put()
			return err
		}
		oldParent.AddNlinks(-1)
		newParent.AddNlinks(1)
	}
	src.Touch(now, false, false, true)
	oldParent.Touch(now, false, true, true)
	newParent.Touch(now, false, true, true)

	src.Put()
	oldParent.Put()
	newParent.Put()
	return nil
}

// rewriteDotDot overwrites a moved directory's ".." slot (always slot
// 1) to point at newParentIno: renaming a directory to a new parent
// must update its own idea of where it lives.
func (o *Ops) rewriteDotDot(dir *inode.Inode, newParentIno uint32) error {
	zones := dir.ZonesSnapshot()
	no, ok, err := o.R.Alloc.Bmap(dir.Dev, &zones, 0, false)
	if err != nil {
		return err
	}
	if !ok {
		return minixfs.ErrIO
	}
	buf, err := o.R.Blocks.Bread(dir.Dev, no)
	if err != nil {
		return err
	}
	cur := block.Cursor{Buf: buf, Offset: ondisk.SlotOffset(1)}
	cur.SetIno(newParentIno)
	cur.Release(o.R.Blocks)
	return nil
}

// subdir walks ".." from dest upward to test whether src is one of its
// ancestors: a directory may not be renamed into its own subtree. It
// reuses find_entry's own ".." semantics (pseudo-root folding, mount
// crossing) rather than a literal zone[1] read, since those already
// define what "the device changes" or "'..' stops advancing" mean.
func (o *Ops) subdir(dest, src *inode.Inode, t *task.Task) (bool, error) {
	cur := dest
	cur.AddRef()

	for i := 0; i < maxSubdirHops; i++ {
		if cur.Dev == src.Dev && cur.Num == src.Num {
			cur.Put()
			return true, nil
		}

		dd, err := o.R.FindEntry(&cur, "..", t)
		if err != nil {
			cur.Put()
			return false, err
		}
		parentIno := dd.Entry().Ino
		dd.Release(o.R.Blocks)

		if cur.Dev != src.Dev {
			cur.Put()
			return false, nil
		}
		if parentIno == cur.Num {
			cur.Put()
			return false, nil
		}

		next, err := o.R.Inodes.Get(cur.Dev, parentIno)
		cur.Put()
		if err != nil {
			return false, err
		}
		cur = next
	}

	cur.Put()
	return false, minixfs.ErrLoop
}
