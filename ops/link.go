package ops

import (
	"github.com/pkg/errors"

	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/task"
)

// Link creates a new name newPath bound to the inode oldPath resolves
// to (with symlink following). Rejects directories, requires the same
// device and write permission on the new parent, and requires the new
// name be free.
func (o *Ops) Link(oldPath, newPath string, t *task.Task) error {
	old, err := o.R.Namei(oldPath, nil, t)
	if err != nil {
		return errors.Wrapf(err, "resolve %q", oldPath)
	}
	if old.Mode().IsDir() {
		old.Put()
		return minixfs.ErrIsDir
	}

	parent, name, err := o.parentFor(newPath, t)
	if err != nil {
		old.Put()
		return err
	}
	if parent.Dev != old.Dev {
		old.Put()
		parent.Put()
		return minixfs.ErrCrossDevice
	}
	if err := o.requireAbsent(parent, name, t); err != nil {
		old.Put()
		parent.Put()
		return err
	}

	cur, err := o.R.AddEntry(parent, name)
	if err != nil {
		old.Put()
		parent.Put()
		return minixfs.ErrNoSpace
	}
	cur.SetIno(old.Num)
	cur.Release(o.R.Blocks)

	old.AddNlinks(1)
	old.Touch(o.R.Clock.Now(), false, false, true)

	old.Put()
	parent.Put()
	return nil
}
