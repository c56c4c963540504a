package ops

import (
	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// Rmdir removes an empty directory at path. The target must be on the
// same device as the parent, held by no other handle, not the
// caller's own current directory, a directory, and empty, and honors
// the sticky-bit restriction on the parent the same as Unlink.
func (o *Ops) Rmdir(path string, t *task.Task) error {
	parent, name, err := o.parentFor(path, t)
	if err != nil {
		return err
	}

	cur, err := o.R.FindEntry(&parent, name, t)
	if err != nil {
		parent.Put()
		return err
	}
	ino := cur.Entry().Ino
	cur.Release(o.R.Blocks)

	target, err := o.R.Inodes.Get(parent.Dev, ino)
	if err != nil {
		parent.Put()
		return err
	}

	if target.Dev != parent.Dev {
		target.Put()
		parent.Put()
		return minixfs.ErrCrossDevice
	}
	if target.Refs() != 1 {
		target.Put()
		parent.Put()
		return minixfs.ErrBusy
	}
	if target.Num == t.Cwd.Num && target.Dev == t.Cwd.Dev {
		target.Put()
		parent.Put()
		return minixfs.ErrBusy
	}
	if !target.Mode().IsDir() {
		target.Put()
		parent.Put()
		return minixfs.ErrNotDir
	}
	if stickyDenies(parent, target, t) {
		target.Put()
		parent.Put()
		return minixfs.ErrPermission
	}

	empty, err := o.R.EmptyDir(target)
	if err != nil {
		target.Put()
		parent.Put()
		return err
	}
	if !empty {
		target.Put()
		parent.Put()
		return minixfs.ErrNotEmpty
	}

	if err := o.zeroEntry(parent, name, t); err != nil {
		target.Put()
		parent.Put()
		return err
	}

	now := o.R.Clock.Now()
	target.AddNlinks(-int(target.Nlinks()))
	target.Touch(now, false, false, true)
	parent.AddNlinks(-1)
	parent.Touch(now, false, true, true)

	target.Put()
	parent.Put()
	return nil
}

// zeroEntry re-locates name in dir and zeroes its inode slot, the
// "zero the entry's inode, mark buffer dirty" half shared by unlink
// and rmdir.
func (o *Ops) zeroEntry(dir *inode.Inode, name string, t *task.Task) error {
	cur, err := o.R.FindEntry(&dir, name, t)
	if err != nil {
		return err
	}
	cur.Zero()
	cur.Release(o.R.Blocks)
	return nil
}
