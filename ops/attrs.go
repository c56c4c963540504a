package ops

import (
	"time"

	"github.com/pkg/errors"

	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// Attr is a point-in-time snapshot of an inode's metadata, returned by
// Stat.
type Attr struct {
	Mode   inode.Mode
	Uid    uint32
	Gid    uint32
	Size   uint32
	Nlinks uint16
	Atime  time.Time
	Mtime  time.Time
	Ctime  time.Time
}

// Stat resolves path via namei.Namei (following a final symlink) and
// returns its attributes.
func (o *Ops) Stat(path string, t *task.Task) (Attr, error) {
	in, err := o.R.Namei(path, nil, t)
	if err != nil {
		return Attr{}, errors.Wrapf(err, "stat %q", path)
	}
	defer in.Put()
	return Attr{
		Mode:   in.Mode(),
		Uid:    in.Uid(),
		Gid:    in.Gid(),
		Size:   in.Size(),
		Nlinks: in.Nlinks(),
		Atime:  in.Atime(),
		Mtime:  in.Mtime(),
		Ctime:  in.Ctime(),
	}, nil
}

// ownerOrRoot is the shared permission policy for chmod/chown/utime:
// only the inode's owner or the superuser may change its metadata.
func ownerOrRoot(in *inode.Inode, t *task.Task) bool {
	return t.IsSuperuser() || t.Uid == in.Uid()
}

// Chmod changes path's permission and type bits.
func (o *Ops) Chmod(path string, perm inode.Mode, t *task.Task) error {
	in, err := o.R.Namei(path, nil, t)
	if err != nil {
		return errors.Wrapf(err, "chmod %q", path)
	}
	defer in.Put()
	if !ownerOrRoot(in, t) {
		return minixfs.ErrPermission
	}
	in.SetMode((in.Mode() &^ inode.ModePerm) | (perm & inode.ModePerm))
	in.Touch(o.R.Clock.Now(), false, false, true)
	return nil
}

// Chown changes path's owning uid/gid. Only root may change the uid;
// the owner may change the gid to one of their own groups.
func (o *Ops) Chown(path string, uid, gid uint32, t *task.Task) error {
	in, err := o.R.Namei(path, nil, t)
	if err != nil {
		return errors.Wrapf(err, "chown %q", path)
	}
	defer in.Put()
	if !t.IsSuperuser() {
		if t.Uid != in.Uid() || uid != in.Uid() || !t.InGroup(gid) {
			return minixfs.ErrPermission
		}
	}
	in.SetUid(uid)
	in.SetGid(gid)
	in.Touch(o.R.Clock.Now(), false, false, true)
	return nil
}

// Utime sets path's atime/mtime explicitly.
func (o *Ops) Utime(path string, atime, mtime time.Time, t *task.Task) error {
	in, err := o.R.Namei(path, nil, t)
	if err != nil {
		return errors.Wrapf(err, "utime %q", path)
	}
	defer in.Put()
	if !ownerOrRoot(in, t) {
		return minixfs.ErrPermission
	}
	in.Touch(atime, true, false, false)
	in.Touch(mtime, false, true, false)
	in.Touch(o.R.Clock.Now(), false, false, true)
	return nil
}
