package namei

import (
	"strings"

	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// getDir walks path to the directory inode that holds its final
// component. It returns that directory and whatever of path remains
// unconsumed — which, because the loop below stops exactly when no
// further "/" remains, is already the final component (get_dir and
// dir_namei's re-scan folded into one pass instead of two).
//
// If base is nil, the walk starts from t.Cwd (taking a reference);
// otherwise it takes ownership of the single reference the caller
// already holds on base. depth accumulates across the whole
// resolution: intermediate components and any final follow_link call
// share one symlink budget.
func (r *Resolver) getDir(path string, base *inode.Inode, t *task.Task, depth *int) (*inode.Inode, string, error) {
	var cur *inode.Inode
	if base == nil {
		cur = t.Cwd
		cur.AddRef()
	} else {
		cur = base
	}

	rest := path
	if strings.HasPrefix(rest, "/") {
		cur.Put()
		cur = t.Root
		cur.AddRef()
		rest = rest[1:]
	}

	for {
		if !cur.Mode().IsDir() {
			cur.Put()
			return nil, "", minixfs.ErrNotDir
		}
		if !Permission(cur, Exec, t) {
			cur.Put()
			return nil, "", minixfs.ErrAccess
		}

		idx := strings.IndexByte(rest, '/')
		if idx < 0 {
			// No more separators: rest is the final component.
			return cur, rest, nil
		}

		comp := rest[:idx]
		rest = rest[idx+1:]

		entryCur, err := r.FindEntry(&cur, comp, t)
		if err != nil {
			cur.Put()
			return nil, "", err
		}
		ino := entryCur.Entry().Ino
		entryCur.Release(r.Blocks)

		next, err := r.Inodes.Get(cur.Dev, ino)
		if err != nil {
			cur.Put()
			return nil, "", err
		}

		resolved, err := r.FollowLink(cur, next, t, depth)
		if err != nil {
			// FollowLink has already released cur (and next, on the
			// failure paths it takes).
			return nil, "", err
		}
		cur = resolved
	}
}

// DirNamei resolves path to (parent directory inode, basename). A
// path ending in "/" yields basename == "".
func (r *Resolver) DirNamei(path string, base *inode.Inode, t *task.Task) (*inode.Inode, string, error) {
	depth := 0
	return r.getDir(path, base, t, &depth)
}
