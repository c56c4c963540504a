package ops

import (
	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/ondisk"
	"github.com/jacobsa/minixfs/task"
)

// Symlink creates a symbolic link at linkPath whose stored target is
// target: allocate a symlink inode, write the target bytes (at most
// ondisk.MaxSymlinkTarget) into its first data block, then add the
// entry in the parent.
func (o *Ops) Symlink(target, linkPath string, t *task.Task) (*inode.Inode, error) {
	if len(target) > ondisk.MaxSymlinkTarget {
		target = target[:ondisk.MaxSymlinkTarget]
	}

	parent, name, err := o.parentFor(linkPath, t)
	if err != nil {
		return nil, err
	}
	if err := o.requireAbsent(parent, name, t); err != nil {
		parent.Put()
		return nil, err
	}

	in, err := o.R.Inodes.New(parent.Dev, inode.ModeSymlink|0777)
	if err != nil {
		parent.Put()
		return nil, err
	}
	in.SetUid(t.Uid)
	in.SetGid(t.Gid)

	buf, err := o.R.Alloc.CreateBlock(parent.Dev)
	if err != nil {
		in.Put()
		parent.Put()
		return nil, minixfs.ErrNoSpace
	}
	n := copy(buf.Data(), target)
	if n < len(buf.Data()) {
		buf.Data()[n] = 0
	}
	buf.MarkDirty()

	zones := in.ZonesSnapshot()
	zones[0] = uint32(buf.Num())
	in.CommitZones(zones)
	in.SetSize(uint32(len(target)))
	o.R.Blocks.Brelse(buf)

	now := o.R.Clock.Now()
	in.AddNlinks(1)
	in.Touch(now, true, true, true)

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
