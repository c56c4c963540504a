package namei

import (
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// resolve walks to the parent via getDir, then resolves the final
// component, optionally following a trailing symlink.
func (r *Resolver) resolve(um task.UserMemory, base *inode.Inode, follow bool, t *task.Task, depth *int) (*inode.Inode, error) {
	path, err := um.ReadPath()
	if err != nil {
		if base != nil {
			base.Put()
		}
		return nil, err
	}

	parent, basename, err := r.getDir(path, base, t, depth)
	if err != nil {
		return nil, err
	}

	if basename == "" {
		r.touchResolved(parent)
		return parent, nil
	}

	entryCur, err := r.FindEntry(&parent, basename, t)
	if err != nil {
		parent.Put()
		return nil, err
	}
	ino := entryCur.Entry().Ino
	entryCur.Release(r.Blocks)

	target, err := r.Inodes.Get(parent.Dev, ino)
	if err != nil {
		parent.Put()
		return nil, err
	}

	var result *inode.Inode
	if follow {
		result, err = r.FollowLink(parent, target, t, depth)
		if err != nil {
			return nil, err
		}
	} else {
		parent.Put()
		result = target
	}

	r.touchResolved(result)
	return result, nil
}

func (r *Resolver) touchResolved(in *inode.Inode) {
	in.Touch(r.Clock.Now(), true, false, false)
}

// Namei resolves path to an inode, following a symlink at the final
// component.
func (r *Resolver) Namei(path string, base *inode.Inode, t *task.Task) (*inode.Inode, error) {
	depth := 0
	return r.resolve(task.FromString(path), base, true, t, &depth)
}

// LNamei resolves path to an inode without following a symlink at the
// final component — ReadLink and lstat-like callers use this.
func (r *Resolver) LNamei(path string, base *inode.Inode, t *task.Task) (*inode.Inode, error) {
	depth := 0
	return r.resolve(task.FromString(path), base, false, t, &depth)
}
