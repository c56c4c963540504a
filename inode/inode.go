// Copyright 2015 Google Inc. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package inode implements the in-memory, reference-counted inode
// handle and the inode cache (iget/iput/new_inode), generalized from
// samples/memfs/inode.go's single in-process slice to a bbolt-backed,
// LRU-fronted, multi-device cache.
package inode

import (
	"fmt"
	"time"

	"github.com/jacobsa/syncutil"

	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/ondisk"
)

// Inode is a handle to a filesystem object, identified by
// (Dev, Num). Every field below is GUARDED_BY mu except Dev and Num,
// which are immutable for the handle's lifetime.
type Inode struct {
	mu syncutil.InvariantMutex

	Dev block.DeviceID
	Num uint32

	// GUARDED_BY(mu)
	mode   Mode
	uid    uint32
	gid    uint32
	size   uint32
	atime  time.Time
	mtime  time.Time
	ctime  time.Time
	nlinks uint16
	zone   [ondisk.NumZones]uint32

	refs  int  // GUARDED_BY(mu)
	dirty bool // GUARDED_BY(mu)

	cache *Cache
}

func (in *Inode) checkInvariants() {
	// INVARIANT: a deleted-but-open inode (Dev != 0, Nlinks == 0) is
	// only reachable while refs > 0; the cache frees it otherwise.
	if in.dev0() && in.nlinks == 0 && in.refs == 0 {
		panic(fmt.Sprintf("inode %d on dev %d: deleted inode with no refs outlived Put", in.Num, in.Dev))
	}
}

func (in *Inode) dev0() bool { return in.Dev != 0 }

// Lock acquires the inode's invariant-checked mutex for a read-modify
// sequence spanning multiple field accesses (e.g. a mutator bumping
// Nlinks and Ctime together).
func (in *Inode) Lock() { in.mu.Lock() }

// Unlock releases the lock acquired by Lock.
func (in *Inode) Unlock() { in.mu.Unlock() }

// Mode returns the inode's type+permission bits.
func (in *Inode) Mode() Mode { in.mu.Lock(); defer in.mu.Unlock(); return in.mode }

// SetMode sets the inode's type+permission bits and marks it dirty.
func (in *Inode) SetMode(m Mode) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.mode = m
	in.dirty = true
}

// Uid returns the owning user id.
func (in *Inode) Uid() uint32 { in.mu.Lock(); defer in.mu.Unlock(); return in.uid }

// SetUid sets the owning user id and marks the inode dirty.
func (in *Inode) SetUid(uid uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.uid = uid
	in.dirty = true
}

// Gid returns the owning group id.
func (in *Inode) Gid() uint32 { in.mu.Lock(); defer in.mu.Unlock(); return in.gid }

// SetGid sets the owning group id and marks the inode dirty.
func (in *Inode) SetGid(gid uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.gid = gid
	in.dirty = true
}

// Size returns the inode's byte size (directory entry-slot count
// times entry size, for directories; content length for files and
// symlinks).
func (in *Inode) Size() uint32 { in.mu.Lock(); defer in.mu.Unlock(); return in.size }

// SetSize sets the inode's byte size and marks it dirty.
func (in *Inode) SetSize(size uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.size = size
	in.dirty = true
}

// Nlinks returns the number of directory entries referring to this
// inode.
func (in *Inode) Nlinks() uint16 { in.mu.Lock(); defer in.mu.Unlock(); return in.nlinks }

// AddNlinks adjusts Nlinks by delta (positive or negative) and marks
// the inode dirty. Nlinks mirrors directory-entry count except during
// a mutator's window.
func (in *Inode) AddNlinks(delta int) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.nlinks = uint16(int(in.nlinks) + delta)
	in.dirty = true
}

// Deleted reports whether this inode is "deleted-but-open": it has a
// real device and zero link count, and must deny all further access
// regardless of caller.
func (in *Inode) Deleted() bool {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.dev0() && in.nlinks == 0
}

// Zone returns the value of zone slot i. Slot 0 doubles as the device
// id for char/block special inodes and as the first data block
// otherwise.
func (in *Inode) Zone(i int) uint32 { in.mu.Lock(); defer in.mu.Unlock(); return in.zone[i] }

// SetZone sets zone slot i and marks the inode dirty.
func (in *Inode) SetZone(i int, v uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.zone[i] = v
	in.dirty = true
}

// ZonesSnapshot returns a copy of the full zone array, for passing to
// block.Allocator.Bmap without holding in.mu across an I/O call.
func (in *Inode) ZonesSnapshot() [ondisk.NumZones]uint32 {
	in.mu.Lock()
	defer in.mu.Unlock()
	return in.zone
}

// CommitZones writes back a zone array mutated by Bmap (which may
// have allocated a new block into an empty slot).
func (in *Inode) CommitZones(z [ondisk.NumZones]uint32) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.zone = z
	in.dirty = true
}

// Atime, Mtime, Ctime return the respective timestamps.
func (in *Inode) Atime() time.Time { in.mu.Lock(); defer in.mu.Unlock(); return in.atime }
func (in *Inode) Mtime() time.Time { in.mu.Lock(); defer in.mu.Unlock(); return in.mtime }
func (in *Inode) Ctime() time.Time { in.mu.Lock(); defer in.mu.Unlock(); return in.ctime }

// Touch updates atime/mtime/ctime selectively and marks the inode
// dirty. Passing false for a given flag leaves that timestamp alone.
func (in *Inode) Touch(now time.Time, atime, mtime, ctime bool) {
	in.mu.Lock()
	defer in.mu.Unlock()
	if atime {
		in.atime = now
	}
	if mtime {
		in.mtime = now
	}
	if ctime {
		in.ctime = now
	}
	in.dirty = true
}

// MarkDirty marks the inode as needing write-back, without changing
// any timestamp.
func (in *Inode) MarkDirty() {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.dirty = true
}

func (in *Inode) addRef() {
	in.mu.Lock()
	in.refs++
	in.mu.Unlock()
}

// AddRef takes an additional reference on an inode handle the caller
// already holds (e.g. task.Task.Root or task.Task.Cwd, reused across
// many resolutions). The caller must release it with Put like any
// other handle.
func (in *Inode) AddRef() { in.addRef() }

// Refs returns the current handle count, used by rmdir's "no other
// process holds it" check.
func (in *Inode) Refs() int { in.mu.Lock(); defer in.mu.Unlock(); return in.refs }

// Put releases one reference via the owning cache (iput).
func (in *Inode) Put() {
	in.cache.Put(in)
}
