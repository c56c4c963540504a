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

// Package block models the block cache and block allocator
// collaborators: bread/brelse/b_dirt, and new_block/create_block/bmap.
// Bread/brelse/allocation are backed by a bbolt database so the
// in-memory refcounted cache has a real write-back target.
package block

import (
	"fmt"

	bolt "go.etcd.io/bbolt"
)

// DeviceID identifies a backing device, analogous to the original's
// (major, minor) dev_t.
type DeviceID uint32

// Num identifies a block on a device.
type Num uint32

// Store is the persistent backing target for blocks. BoltDevice is
// the one real implementation; it is an interface so tests can swap
// in a plain in-memory fake without a bbolt file on disk.
type Store interface {
	// ReadBlock returns the stored bytes for (dev, no). ok is false
	// for a block that was never written (a "hole" in a sparse file;
	// find_entry must skip these, not error).
	ReadBlock(dev DeviceID, no Num) (data []byte, ok bool, err error)

	// WriteBlock persists data (must be exactly BlockSize bytes).
	WriteBlock(dev DeviceID, no Num, data []byte) error

	// AllocBlock reserves a fresh block number for dev, reusing a
	// freed one if available (new_block).
	AllocBlock(dev DeviceID) (Num, error)

	// FreeBlock returns no to the free list for dev.
	FreeBlock(dev DeviceID, no Num) error
}

const (
	metaKey        = "next"
	freeListBucket = "free"
)

func blocksBucket(dev DeviceID) []byte { return []byte(fmt.Sprintf("blocks-%d", dev)) }
func metaBucket(dev DeviceID) []byte   { return []byte(fmt.Sprintf("meta-%d", dev)) }
func freeBucket(dev DeviceID) []byte   { return []byte(fmt.Sprintf("free-%d", dev)) }

// BoltDevice stores every block of every device as one key in a bolt
// bucket keyed by block number; a dirty buffer's write-back is a real
// bolt Update transaction.
type BoltDevice struct {
	db *bolt.DB
}

// OpenBoltDevice opens (creating if absent) a bbolt file to back one
// or more simulated devices.
func OpenBoltDevice(path string) (*BoltDevice, error) {
	db, err := bolt.Open(path, 0600, nil)
	if err != nil {
		return nil, err
	}
	return &BoltDevice{db: db}, nil
}

// Close releases the underlying bbolt file.
func (s *BoltDevice) Close() error { return s.db.Close() }

// DB exposes the underlying bbolt handle so the inode package can
// share one on-disk file for both block and inode storage, the way a
// real device carries both in one block address space.
func (s *BoltDevice) DB() *bolt.DB { return s.db }

func (s *BoltDevice) ReadBlock(dev DeviceID, no Num) (data []byte, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(blocksBucket(dev))
		if b == nil {
			return nil
		}
		v := b.Get(numKey(no))
		if v == nil {
			return nil
		}
		ok = true
		data = make([]byte, len(v))
		copy(data, v)
		return nil
	})
	return
}

func (s *BoltDevice) WriteBlock(dev DeviceID, no Num, data []byte) error {
	if len(data) != BlockSize {
		return fmt.Errorf("block: WriteBlock: want %d bytes, got %d", BlockSize, len(data))
	}
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(blocksBucket(dev))
		if err != nil {
			return err
		}
		return b.Put(numKey(no), data)
	})
}

func (s *BoltDevice) AllocBlock(dev DeviceID) (no Num, err error) {
	err = s.db.Update(func(tx *bolt.Tx) error {
		fb, err := tx.CreateBucketIfNotExists(freeBucket(dev))
		if err != nil {
			return err
		}
		// Prefer reusing a freed block (LIFO via cursor on last key).
		if c := fb.Cursor(); true {
			k, _ := c.Last()
			if k != nil {
				no = numFromKey(k)
				return fb.Delete(k)
			}
		}

		mb, err := tx.CreateBucketIfNotExists(metaBucket(dev))
		if err != nil {
			return err
		}
		v := mb.Get([]byte(metaKey))
		next := Num(1)
		if v != nil {
			next = numFromKey(v)
		}
		no = next
		return mb.Put([]byte(metaKey), numKey(next+1))
	})
	return
}

func (s *BoltDevice) FreeBlock(dev DeviceID, no Num) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		fb, err := tx.CreateBucketIfNotExists(freeBucket(dev))
		if err != nil {
			return err
		}
		return fb.Put(numKey(no), []byte{1})
	})
}

func numKey(n Num) []byte {
	return []byte(fmt.Sprintf("%016x", uint32(n)))
}

func numFromKey(k []byte) Num {
	var n uint32
	fmt.Sscanf(string(k), "%016x", &n)
	return Num(n)
}
