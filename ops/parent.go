package ops

import (
	"github.com/pkg/errors"

	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/namei"
	"github.com/jacobsa/minixfs/task"
)

// parentFor walks to path's parent directory and validates the shared
// mutator precondition: a non-empty basename and write permission on
// the parent. The caller takes ownership of the returned parent
// handle.
func (o *Ops) parentFor(path string, t *task.Task) (*inode.Inode, string, error) {
	parent, basename, err := o.R.DirNamei(path, nil, t)
	if err != nil {
		return nil, "", errors.Wrapf(err, "resolve parent of %q", path)
	}
	if basename == "" {
		parent.Put()
		return nil, "", minixfs.ErrInvalid
	}
	if basename == "." || basename == ".." {
		parent.Put()
		return nil, "", minixfs.ErrInvalid
	}
	if !namei.Permission(parent, namei.Write, t) {
		parent.Put()
		return nil, "", minixfs.ErrPermission
	}
	return parent, basename, nil
}

// requireAbsent fails with ErrExist if name is already bound in
// parent — the shared "creators must fail on an existing name" check.
// On success (name free) it returns nil, having released nothing
// further.
func (o *Ops) requireAbsent(parent *inode.Inode, name string, t *task.Task) error {
	cur, err := o.R.FindEntry(&parent, name, t)
	if err == nil {
		cur.Release(o.R.Blocks)
		return minixfs.ErrExist
	}
	if err != minixfs.ErrNoEnt {
		return err
	}
	return nil
}
