package namei

import (
	"golang.org/x/sys/unix"

	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// OpenFlags mirrors the open(2) flag bits open_namei inspects, sourced
// from golang.org/x/sys/unix's constants.
type OpenFlags int

const (
	ORdOnly OpenFlags = unix.O_RDONLY
	OWrOnly OpenFlags = unix.O_WRONLY
	ORdWr   OpenFlags = unix.O_RDWR
	OAccMode OpenFlags = unix.O_ACCMODE
	OCreat  OpenFlags = unix.O_CREAT
	OExcl   OpenFlags = unix.O_EXCL
	OTrunc  OpenFlags = unix.O_TRUNC
)

// accMode maps the 2-bit access-mode field to a permission mask, the
// original's ACC_MODE macro: O_RDONLY -> R(4), O_WRONLY -> W(2),
// O_RDWR -> RW(6).
func accMode(flags OpenFlags) AccessMask {
	switch flags & OAccMode {
	case OWrOnly:
		return Write
	case ORdWr:
		return Read | Write
	default: // ORdOnly
		return Read
	}
}

// OpenNamei resolves or creates a file given open flags.
func (r *Resolver) OpenNamei(path string, flags OpenFlags, mode inode.Mode, t *task.Task) (*inode.Inode, error) {
	if flags&OTrunc != 0 && flags&OAccMode == 0 {
		flags |= OWrOnly
	}
	creationMode := (mode & inode.ModePerm &^ inode.Mode(t.Umask)) | inode.ModeRegular

	parent, basename, err := r.DirNamei(path, nil, t)
	if err != nil {
		return nil, err
	}

	if basename == "" {
		// Special case: "/usr/" etc — a trailing slash with no
		// access/create/truncate intent is a stat-like open of the
		// directory itself.
		if flags&(OAccMode|OCreat|OTrunc) == 0 {
			return parent, nil
		}
		parent.Put()
		return nil, minixfs.ErrIsDir
	}

	entryCur, err := r.FindEntry(&parent, basename, t)
	if err != nil {
		if err != minixfs.ErrNoEnt {
			parent.Put()
			return nil, err
		}
		return r.createForOpen(parent, basename, flags, creationMode, t)
	}

	ino := entryCur.Entry().Ino
	entryCur.Release(r.Blocks)

	if flags&OExcl != 0 {
		parent.Put()
		return nil, minixfs.ErrExist
	}

	target, err := r.Inodes.Get(parent.Dev, ino)
	if err != nil {
		parent.Put()
		return nil, err
	}

	depth := 0
	result, err := r.FollowLink(parent, target, t, &depth)
	if err != nil {
		return nil, minixfs.ErrAccess
	}

	if (result.Mode().IsDir() && flags&OAccMode != 0) || !Permission(result, accMode(flags), t) {
		result.Put()
		return nil, minixfs.ErrPermission
	}

	result.Touch(r.Clock.Now(), true, false, false)
	if flags&OTrunc != 0 {
		result.SetSize(0)
	}
	return result, nil
}

func (r *Resolver) createForOpen(parent *inode.Inode, basename string, flags OpenFlags, mode inode.Mode, t *task.Task) (*inode.Inode, error) {
	if flags&OCreat == 0 {
		parent.Put()
		return nil, minixfs.ErrNoEnt
	}
	if !Permission(parent, Write, t) {
		parent.Put()
		return nil, minixfs.ErrPermission
	}

	in, err := r.Inodes.New(parent.Dev, mode)
	if err != nil {
		parent.Put()
		return nil, err
	}
	in.SetUid(t.Uid)
	in.AddNlinks(1)
	in.MarkDirty()

	cur, err := r.AddEntry(parent, basename)
	if err != nil {
		in.AddNlinks(-1)
		in.Put()
		parent.Put()
		return nil, minixfs.ErrNoSpace
	}
	cur.SetIno(in.Num)
	cur.Release(r.Blocks)
	parent.Put()
	return in, nil
}
