package inode

import (
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru"
	"github.com/jacobsa/syncutil"
	"github.com/jacobsa/timeutil"
	"github.com/sirupsen/logrus"

	"github.com/jacobsa/minixfs/block"
)

func fromUnix(sec uint32) time.Time {
	if sec == 0 {
		return time.Time{}
	}
	return time.Unix(int64(sec), 0)
}

type key struct {
	dev block.DeviceID
	num uint32
}

// Cache is the in-memory, reference-counted inode cache, modeling
// iget/new_inode/iput. It is bounded by an LRU so inodes with a zero
// refcount are eventually evicted (writing back first if dirty).
type Cache struct {
	store Store
	clock timeutil.Clock
	log   logrus.FieldLogger

	mu  sync.Mutex
	lru *lru.Cache // key -> *Inode
}

// NewCache wraps store with an LRU-bounded refcounted cache of at
// most size inodes.
func NewCache(store Store, size int, clock timeutil.Clock, log logrus.FieldLogger) (*Cache, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Cache{store: store, clock: clock, log: log}
	l, err := lru.NewWithEvict(size, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.lru = l
	return c, nil
}

func (c *Cache) onEvict(k interface{}, v interface{}) {
	in := v.(*Inode)
	in.mu.Lock()
	refs := in.refs
	dirty := in.dirty
	in.mu.Unlock()

	if refs > 0 {
		c.lru.Add(k, in)
		return
	}
	if dirty {
		if err := c.writeBack(in); err != nil {
			c.log.WithFields(logrus.Fields{
				"device": in.Dev,
				"inode":  in.Num,
			}).WithError(err).Warn("inode: write-back on eviction failed")
		}
	}
}

func (c *Cache) writeBack(in *Inode) error {
	in.mu.Lock()
	r := raw{
		Mode:   in.mode,
		Uid:    in.uid,
		Gid:    in.gid,
		Size:   in.size,
		Atime:  uint32(in.atime.Unix()),
		Mtime:  uint32(in.mtime.Unix()),
		Ctime:  uint32(in.ctime.Unix()),
		Nlinks: in.nlinks,
		Zone:   in.zone,
	}
	in.dirty = false
	in.mu.Unlock()
	return c.store.WriteInode(in.Dev, in.Num, r)
}

// WriteThrough forces an immediate write-back of in, without waiting
// for LRU eviction.
func (c *Cache) WriteThrough(in *Inode) error {
	return c.writeBack(in)
}

// Get obtains a reference to the inode (dev, num), loading it from
// the store if not already cached (iget).
func (c *Cache) Get(dev block.DeviceID, num uint32) (*Inode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{dev, num}
	if v, ok := c.lru.Get(k); ok {
		in := v.(*Inode)
		in.addRef()
		return in, nil
	}

	r, ok, err := c.store.ReadInode(dev, num)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrNoSuchInode
	}
	in := &Inode{
		Dev: dev, Num: num,
		mode: r.Mode, uid: r.Uid, gid: r.Gid, size: r.Size,
		nlinks: r.Nlinks, zone: r.Zone,
		atime: fromUnix(r.Atime), mtime: fromUnix(r.Mtime), ctime: fromUnix(r.Ctime),
		refs: 1, cache: c,
	}
	in.mu = syncutil.NewInvariantMutex(in.checkInvariants)
	c.lru.Add(k, in)
	return in, nil
}

// New allocates a fresh inode on dev (new_inode) with refcount 1,
// owned by the caller.
func (c *Cache) New(dev block.DeviceID, mode Mode) (*Inode, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	num, err := c.store.AllocInode(dev)
	if err != nil {
		return nil, err
	}
	now := c.clock.Now()
	in := &Inode{
		Dev: dev, Num: num,
		mode: mode, nlinks: 0,
		atime: now, mtime: now, ctime: now,
		refs: 1, cache: c, dirty: true,
	}
	in.mu = syncutil.NewInvariantMutex(in.checkInvariants)
	c.lru.Add(key{dev, num}, in)
	return in, nil
}

// Put releases one reference on in (iput). When the refcount reaches
// zero and Nlinks is also zero, the inode record is deleted and its
// number returned to the free list immediately rather than waiting
// for LRU eviction: a deleted-but-open object disappears as soon as
// the last handle goes away. Its data blocks are not released to the
// block store.
func (c *Cache) Put(in *Inode) {
	in.mu.Lock()
	if in.refs > 0 {
		in.refs--
	}
	refs := in.refs
	nlinks := in.nlinks
	dirty := in.dirty
	in.mu.Unlock()

	if refs > 0 {
		return
	}
	if nlinks == 0 {
		c.mu.Lock()
		c.lru.Remove(key{in.Dev, in.Num})
		c.mu.Unlock()
		if err := c.store.FreeInode(in.Dev, in.Num); err != nil {
			c.log.WithFields(logrus.Fields{
				"device": in.Dev,
				"inode":  in.Num,
			}).WithError(err).Warn("inode: free failed")
		}
		return
	}
	if dirty {
		if err := c.writeBack(in); err != nil {
			c.log.WithFields(logrus.Fields{
				"device": in.Dev,
				"inode":  in.Num,
			}).WithError(err).Warn("inode: write-back on put failed")
		}
	}
}
