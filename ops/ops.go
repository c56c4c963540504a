// Package ops implements the directory-mutating system calls —
// mknod, mkdir, rmdir, unlink, symlink, link, rename — plus the
// supplemental attribute operations (stat, chmod, chown, utime) that
// share their resolver plumbing.
//
// Control flow follows the classic sys_mknod/sys_mkdir/sys_rmdir/
// sys_unlink/sys_symlink/sys_link/sys_rename family, in the Go idiom
// of samples/memfs/fs.go's CreateFile/MkDir/Rename/Unlink: explicit
// struct params and named error returns in place of goto-based
// cleanup.
package ops

import (
	"github.com/jacobsa/minixfs/namei"
)

// Ops bundles the resolver every mutator walks through plus the
// process-wide rename serialization point.
type Ops struct {
	R          *namei.Resolver
	RenameLock *RenameLock
}

// New builds an Ops instance over the given resolver.
func New(r *namei.Resolver) *Ops {
	return &Ops{R: r, RenameLock: NewRenameLock()}
}
