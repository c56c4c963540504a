package namei

import (
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/task"
)

// AccessMask is a requested access bitmask.
type AccessMask int

const (
	Exec  AccessMask = 1
	Write AccessMask = 2
	Read  AccessMask = 4
)

// Permission implements the classic permission() policy: given an
// inode and a requested access mask, decide allow/deny. It has no
// side effects.
func Permission(in *inode.Inode, mask AccessMask, t *task.Task) bool {
	// A deleted-but-open file denies unconditionally, even for the
	// superuser: it cannot be re-opened by name.
	if in.Deleted() {
		return false
	}

	mode := in.Mode()
	uid := in.Uid()
	gid := in.Gid()

	var triple AccessMask
	switch {
	case t.Uid == uid:
		triple = AccessMask((mode >> 6) & 07)
	case t.InGroup(gid):
		triple = AccessMask((mode >> 3) & 07)
	default:
		triple = AccessMask(mode & 07)
	}

	if mask&^triple == 0 {
		return true
	}
	return t.IsSuperuser()
}
