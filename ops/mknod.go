package ops

import (
	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// Mknod creates a device special file (or FIFO/socket) at path.
// Restricted to the superuser. If mode names a char or block special
// file, dev is packed into the new inode's zone[0].
func (o *Ops) Mknod(path string, mode inode.Mode, dev uint32, t *task.Task) (*inode.Inode, error) {
	if !t.IsSuperuser() {
		return nil, minixfs.ErrPermission
	}

	parent, name, err := o.parentFor(path, t)
	if err != nil {
		return nil, err
	}
	if err := o.requireAbsent(parent, name, t); err != nil {
		parent.Put()
		return nil, err
	}

	in, err := o.R.Inodes.New(parent.Dev, mode)
	if err != nil {
		parent.Put()
		return nil, err
	}
	in.SetUid(t.Uid)
	in.SetGid(t.Gid)
	if mode.IsDevice() {
		in.SetZone(0, dev)
	}
	now := o.R.Clock.Now()
	in.Touch(now, true, true, true)
	in.AddNlinks(1)

	cur, err := o.R.AddEntry(parent, name)
	if err != nil {
		in.AddNlinks(-1)
		in.Put()
		parent.Put()
		return nil, minixfs.ErrNoSpace
	}
	cur.SetIno(in.Num)
	cur.Release(o.R.Blocks)
	parent.Put()
	return in, nil
}
