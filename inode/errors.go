package inode

import "errors"

// ErrNoSuchInode is returned by Cache.Get when the requested (dev,
// num) pair has no backing record. This is a storage-layer error,
// distinct from minixfs.ErrNoEnt (which is about a missing directory
// entry, one layer up); namei.findEntry/getDir never surface this
// directly except as an on-disk corruption signal (the directory
// pointed at an inode number that does not exist).
var ErrNoSuchInode = errors.New("inode: no such inode")
