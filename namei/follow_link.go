package namei

import (
	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// FollowLink dereferences one level of a symbolic link. parent may be
// nil (defaults to the task root inside the resolver this calls back
// into); target may be nil, in which case parent is released and the
// call fails.
//
// If target is not a symlink, parent is released and target is
// returned unchanged. Otherwise the link's first data block (its
// target path) is read, the link inode is released, and the target
// path is resolved with _namei(follow=false) using parent as the
// base — FollowLink itself never recurses into a chain of symlinks;
// the caller's per-component loop drives repeated following, bounded
// by MaxSymlinkDepth.
func (r *Resolver) FollowLink(parent, target *inode.Inode, t *task.Task, depth *int) (*inode.Inode, error) {
	if target == nil {
		if parent != nil {
			parent.Put()
		}
		return nil, minixfs.ErrNoEnt
	}
	if !target.Mode().IsSymlink() {
		if parent != nil {
			parent.Put()
		}
		return target, nil
	}

	*depth++
	if *depth > MaxSymlinkDepth {
		target.Put()
		if parent != nil {
			parent.Put()
		}
		return nil, minixfs.ErrLoop
	}

	linkText, err := r.readLinkTarget(target)
	target.Put()
	if err != nil {
		if parent != nil {
			parent.Put()
		}
		return nil, err
	}

	base := parent
	if base == nil {
		base = t.Root
		base.AddRef()
	}
	um := task.FromKernelBuffer(linkText)
	return r.resolve(um, base, false, t, depth)
}

// readLinkTarget reads the symlink's first data block and trims it to
// the recorded size (at most 1023 bytes plus a NUL terminator).
func (r *Resolver) readLinkTarget(link *inode.Inode) (string, error) {
	zones := link.ZonesSnapshot()
	no, ok, err := r.Alloc.Bmap(link.Dev, &zones, 0, false)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", nil
	}
	buf, err := r.Blocks.Bread(link.Dev, no)
	if err != nil {
		return "", err
	}
	defer r.Blocks.Brelse(buf)

	n := int(link.Size())
	data := buf.Data()
	if n > len(data) {
		n = len(data)
	}
	return string(data[:n]), nil
}
