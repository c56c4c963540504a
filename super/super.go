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

// Package super implements the superblock table and mount table
// collaborators: get_super, and the lookup of which inode a
// mounted-elsewhere device is grafted onto.
package super

import (
	"sync"

	"github.com/google/uuid"

	"github.com/jacobsa/minixfs/block"
)

// Superblock is the in-memory record for one mounted device.
type Superblock struct {
	Dev      block.DeviceID
	RootIno  uint32
	VolumeID uuid.UUID
}

type mountPoint struct {
	parentDev block.DeviceID
	parentIno uint32
}

// Table is the superblock table plus mount table: get_super() plus
// "if mounted elsewhere, the inode it is mounted on".
type Table struct {
	mu     sync.RWMutex
	supers map[block.DeviceID]*Superblock
	mounts map[block.DeviceID]mountPoint // child device -> inode it's grafted onto
}

// NewTable builds an empty superblock/mount table.
func NewTable() *Table {
	return &Table{
		supers: make(map[block.DeviceID]*Superblock),
		mounts: make(map[block.DeviceID]mountPoint),
	}
}

// AddSuper registers dev as a mounted device with the given root
// inode number, stamping a fresh volume id for log correlation across
// mounts.
func (t *Table) AddSuper(dev block.DeviceID, rootIno uint32) *Superblock {
	t.mu.Lock()
	defer t.mu.Unlock()
	sb := &Superblock{Dev: dev, RootIno: rootIno, VolumeID: uuid.New()}
	t.supers[dev] = sb
	return sb
}

// GetSuper returns the superblock for dev, if mounted.
func (t *Table) GetSuper(dev block.DeviceID) (*Superblock, bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	sb, ok := t.supers[dev]
	return sb, ok
}

// Mount records that childDev's root is grafted onto
// (parentDev, parentIno) — the classic Unix mount(2) relationship.
func (t *Table) Mount(childDev, parentDev block.DeviceID, parentIno uint32) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.mounts[childDev] = mountPoint{parentDev: parentDev, parentIno: parentIno}
}

// Unmount removes a previously recorded mount relationship.
func (t *Table) Unmount(childDev block.DeviceID) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.mounts, childDev)
}

// MountedOn reports, for a device that is mounted elsewhere, the
// (device, inode) it is grafted onto — used by find_entry's ".."
// handling when the current directory is the root of its device.
func (t *Table) MountedOn(dev block.DeviceID) (parentDev block.DeviceID, parentIno uint32, ok bool) {
	t.mu.RLock()
	defer t.mu.RUnlock()
	mp, found := t.mounts[dev]
	if !found {
		return 0, 0, false
	}
	return mp.parentDev, mp.parentIno, true
}

// IsRoot reports whether (dev, ino) is the filesystem root of dev.
func (t *Table) IsRoot(dev block.DeviceID, ino uint32) bool {
	sb, ok := t.GetSuper(dev)
	return ok && sb.RootIno == ino
}
