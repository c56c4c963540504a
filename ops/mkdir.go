package ops

import (
	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// Mkdir creates a new directory at path: allocate an inode, write "."
// and ".." into its first block, set nlinks = 2, add the entry in the
// parent, and bump the parent's nlinks (because the new directory's
// ".." refers back to it).
//
// The new directory's ".." slot is written with the parent's literal
// inode number; pseudo-root folding happens only at lookup time in
// find_entry, never baked into on-disk data.
func (o *Ops) Mkdir(path string, mode inode.Mode, t *task.Task) (*inode.Inode, error) {
	parent, name, err := o.parentFor(path, t)
	if err != nil {
		return nil, err
	}
	if err := o.requireAbsent(parent, name, t); err != nil {
		parent.Put()
		return nil, err
	}

	in, err := o.R.Inodes.New(parent.Dev, inode.ModeDir|mode.Perm())
	if err != nil {
		parent.Put()
		return nil, err
	}
	in.SetUid(t.Uid)
	in.SetGid(t.Gid)

	selfCur, err := o.R.AddEntry(in, ".")
	if err != nil {
		in.Put()
		parent.Put()
		return nil, minixfs.ErrNoSpace
	}
	selfCur.SetIno(in.Num)
	selfCur.Release(o.R.Blocks)

	parentCur, err := o.R.AddEntry(in, "..")
	if err != nil {
		in.Put()
		parent.Put()
		return nil, minixfs.ErrNoSpace
	}
	parentCur.SetIno(parent.Num)
	parentCur.Release(o.R.Blocks)

	now := o.R.Clock.Now()
	in.AddNlinks(2)
	in.Touch(now, true, true, true)

	entryCur, err := o.R.AddEntry(parent, name)
	if err != nil {
		in.AddNlinks(-2)
		in.Put()
		parent.Put()
		return nil, minixfs.ErrNoSpace
	}
	entryCur.SetIno(in.Num)
	entryCur.Release(o.R.Blocks)

	parent.AddNlinks(1)
	parent.Touch(now, false, true, true)
	parent.Put()
	return in, nil
}
