package inode

import (
	"encoding/binary"
	"fmt"

	bolt "go.etcd.io/bbolt"

	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/ondisk"
)

// onDiskSize is the marshaled size of one inode record: Mode(2) +
// Uid(4) + Gid(4) + Size(4) + Atime(4) + Mtime(4) + Ctime(4) +
// Nlinks(2) + Zone[9](4 each).
const onDiskSize = 2 + 4 + 4 + 4 + 4 + 4 + 4 + 2 + 4*ondisk.NumZones

// raw is the on-disk representation of an Inode, independent of the
// in-memory refcount/dirty bookkeeping Cache layers on top.
type raw struct {
	Mode   Mode
	Uid    uint32
	Gid    uint32
	Size   uint32
	Atime  uint32
	Mtime  uint32
	Ctime  uint32
	Nlinks uint16
	Zone   [ondisk.NumZones]uint32
}

func (r raw) marshal() []byte {
	buf := make([]byte, onDiskSize)
	o := 0
	binary.LittleEndian.PutUint16(buf[o:], uint16(r.Mode))
	o += 2
	binary.LittleEndian.PutUint32(buf[o:], r.Uid)
	o += 4
	binary.LittleEndian.PutUint32(buf[o:], r.Gid)
	o += 4
	binary.LittleEndian.PutUint32(buf[o:], r.Size)
	o += 4
	binary.LittleEndian.PutUint32(buf[o:], r.Atime)
	o += 4
	binary.LittleEndian.PutUint32(buf[o:], r.Mtime)
	o += 4
	binary.LittleEndian.PutUint32(buf[o:], r.Ctime)
	o += 4
	binary.LittleEndian.PutUint16(buf[o:], r.Nlinks)
	o += 2
	for _, z := range r.Zone {
		binary.LittleEndian.PutUint32(buf[o:], z)
		o += 4
	}
	return buf
}

func unmarshalRaw(buf []byte) raw {
	var r raw
	o := 0
	r.Mode = Mode(binary.LittleEndian.Uint16(buf[o:]))
	o += 2
	r.Uid = binary.LittleEndian.Uint32(buf[o:])
	o += 4
	r.Gid = binary.LittleEndian.Uint32(buf[o:])
	o += 4
	r.Size = binary.LittleEndian.Uint32(buf[o:])
	o += 4
	r.Atime = binary.LittleEndian.Uint32(buf[o:])
	o += 4
	r.Mtime = binary.LittleEndian.Uint32(buf[o:])
	o += 4
	r.Ctime = binary.LittleEndian.Uint32(buf[o:])
	o += 4
	r.Nlinks = binary.LittleEndian.Uint16(buf[o:])
	o += 2
	for i := range r.Zone {
		r.Zone[i] = binary.LittleEndian.Uint32(buf[o:])
		o += 4
	}
	return r
}

// Store is the persistent backing target for inode records.
type Store interface {
	ReadInode(dev block.DeviceID, num uint32) (r raw, ok bool, err error)
	WriteInode(dev block.DeviceID, num uint32, r raw) error
	AllocInode(dev block.DeviceID) (num uint32, err error)
	FreeInode(dev block.DeviceID, num uint32) error
}

// BoltStore shares the bbolt file a block.BoltDevice already opened,
// so one on-disk file backs both block data and inode metadata for a
// device, the way a real block device carries both in one address
// space.
type BoltStore struct {
	db *bolt.DB
}

// NewBoltStore wraps the bbolt handle underneath dev.
func NewBoltStore(dev *block.BoltDevice) *BoltStore {
	return &BoltStore{db: dev.DB()}
}

func inodeBucket(dev block.DeviceID) []byte { return []byte(fmt.Sprintf("inodes-%d", dev)) }
func inodeMetaBucket(dev block.DeviceID) []byte {
	return []byte(fmt.Sprintf("inode-meta-%d", dev))
}
func inodeFreeBucket(dev block.DeviceID) []byte {
	return []byte(fmt.Sprintf("inode-free-%d", dev))
}

func inodeKey(num uint32) []byte {
	k := make([]byte, 4)
	binary.BigEndian.PutUint32(k, num)
	return k
}

func (s *BoltStore) ReadInode(dev block.DeviceID, num uint32) (r raw, ok bool, err error) {
	err = s.db.View(func(tx *bolt.Tx) error {
		b := tx.Bucket(inodeBucket(dev))
		if b == nil {
			return nil
		}
		v := b.Get(inodeKey(num))
		if v == nil {
			return nil
		}
		ok = true
		r = unmarshalRaw(v)
		return nil
	})
	return
}

func (s *BoltStore) WriteInode(dev block.DeviceID, num uint32, r raw) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		b, err := tx.CreateBucketIfNotExists(inodeBucket(dev))
		if err != nil {
			return err
		}
		return b.Put(inodeKey(num), r.marshal())
	})
}

func (s *BoltStore) AllocInode(dev block.DeviceID) (num uint32, err error) {
	err = s.db.Update(func(tx *bolt.Tx) error {
		fb, err := tx.CreateBucketIfNotExists(inodeFreeBucket(dev))
		if err != nil {
			return err
		}
		if c := fb.Cursor(); true {
			k, _ := c.Last()
			if k != nil {
				num = binary.BigEndian.Uint32(k)
				return fb.Delete(k)
			}
		}

		mb, err := tx.CreateBucketIfNotExists(inodeMetaBucket(dev))
		if err != nil {
			return err
		}
		v := mb.Get([]byte("next"))
		next := uint32(1)
		if v != nil {
			next = binary.BigEndian.Uint32(v)
		}
		num = next
		return mb.Put([]byte("next"), inodeKey(next+1))
	})
	return
}

func (s *BoltStore) FreeInode(dev block.DeviceID, num uint32) error {
	return s.db.Update(func(tx *bolt.Tx) error {
		if b := tx.Bucket(inodeBucket(dev)); b != nil {
			if err := b.Delete(inodeKey(num)); err != nil {
				return err
			}
		}
		fb, err := tx.CreateBucketIfNotExists(inodeFreeBucket(dev))
		if err != nil {
			return err
		}
		return fb.Put(inodeKey(num), []byte{1})
	})
}
