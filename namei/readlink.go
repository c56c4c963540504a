package namei

import (
	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// ReadLink resolves path without following its final component and, if
// it names a symlink, returns the stored target text, the read-only
// companion to sys_symlink. It is an error to call this on anything
// but a symlink.
func (r *Resolver) ReadLink(path string, base *inode.Inode, t *task.Task) (string, error) {
	in, err := r.LNamei(path, base, t)
	if err != nil {
		return "", err
	}
	defer in.Put()

	if !in.Mode().IsSymlink() {
		return "", minixfs.ErrInvalid
	}
	return r.readLinkTarget(in)
}
