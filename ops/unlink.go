package ops

import (
	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// Unlink removes a directory entry at path: denies directories,
// honors the sticky-bit restriction on the parent, then zeroes the
// entry and drops the target's link count.
func (o *Ops) Unlink(path string, t *task.Task) error {
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

	if target.Mode().IsDir() {
		target.Put()
		parent.Put()
		return minixfs.ErrIsDir
	}

	if stickyDenies(parent, target, t) {
		target.Put()
		parent.Put()
		return minixfs.ErrPermission
	}

	if err := o.zeroEntry(parent, name, t); err != nil {
		target.Put()
		parent.Put()
		return err
	}

	target.AddNlinks(-1)
	target.Touch(o.R.Clock.Now(), false, false, true)

	target.Put()
	parent.Put()
	return nil
}

// stickyDenies implements the sticky-bit restriction: if the parent
// directory has the sticky bit set, only root, the file's owner, or
// the directory's owner may remove it.
func stickyDenies(parent, target *inode.Inode, t *task.Task) bool {
	if parent.Mode()&inode.ModeSticky == 0 {
		return false
	}
	if t.IsSuperuser() {
		return false
	}
	return t.Uid != target.Uid() && t.Uid != parent.Uid()
}
