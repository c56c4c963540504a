package block

import (
	"sync"

	lru "github.com/hashicorp/golang-lru"
	"github.com/sirupsen/logrus"
)

type key struct {
	dev DeviceID
	no  Num
}

// Cache is the in-memory, reference-counted front for a Store,
// modeling bread/brelse/b_dirt. It is bounded by an LRU so buffers
// with a zero refcount are eventually evicted (writing back first if
// dirty); buffers with a nonzero refcount are pinned and never
// evicted out from under a caller.
type Cache struct {
	store Store
	log   logrus.FieldLogger

	mu  sync.Mutex
	lru *lru.Cache // key -> *Buffer
}

// NewCache wraps store with an LRU-bounded refcounted cache of at
// most size buffers.
func NewCache(store Store, size int, log logrus.FieldLogger) (*Cache, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	c := &Cache{store: store, log: log}
	l, err := lru.NewWithEvict(size, c.onEvict)
	if err != nil {
		return nil, err
	}
	c.lru = l
	return c, nil
}

func (c *Cache) onEvict(k interface{}, v interface{}) {
	buf := v.(*Buffer)
	buf.mu.Lock()
	dirty := buf.dirty
	refs := buf.refs
	data := buf.data
	buf.mu.Unlock()

	if refs > 0 {
		// Should not happen: a pinned buffer must not be evicted.
		// Re-insert it rather than silently dropping a live handle.
		c.lru.Add(k, buf)
		return
	}
	if dirty {
		if err := c.store.WriteBlock(buf.dev, buf.no, data[:]); err != nil {
			c.log.WithFields(logrus.Fields{
				"device": buf.dev,
				"block":  buf.no,
			}).WithError(err).Warn("block: write-back on eviction failed")
		}
	}
}

// Bread reads a block by (dev, no), returning a handle the caller
// owns one reference to. A hole (never-written block) is returned as
// a zeroed buffer with Hole() == true, not an error, so callers
// scanning a sparse directory can skip it.
func (c *Cache) Bread(dev DeviceID, no Num) (*Buffer, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	k := key{dev, no}
	if v, ok := c.lru.Get(k); ok {
		buf := v.(*Buffer)
		buf.addRef()
		return buf, nil
	}

	data, ok, err := c.store.ReadBlock(dev, no)
	if err != nil {
		return nil, err
	}
	buf := &Buffer{dev: dev, no: no, hole: !ok, refs: 1}
	if ok {
		copy(buf.data[:], data)
	}
	c.lru.Add(k, buf)
	return buf, nil
}

// Brelse releases one reference on buf. Once the refcount reaches
// zero a dirty buffer is written back to the store, and the buffer
// stays cached (subject to LRU eviction) rather than being torn down
// immediately, matching the block cache's role as a shared resource
// across callers.
func (c *Cache) Brelse(buf *Buffer) {
	if buf == nil {
		return
	}
	buf.mu.Lock()
	if buf.refs > 0 {
		buf.refs--
	}
	writeBack := buf.refs == 0 && buf.dirty
	var data [BlockSize]byte
	if writeBack {
		data = buf.data
		buf.dirty = false
	}
	buf.mu.Unlock()
	if writeBack {
		if err := c.store.WriteBlock(buf.dev, buf.no, data[:]); err != nil {
			c.log.WithFields(logrus.Fields{
				"device": buf.dev,
				"block":  buf.no,
			}).WithError(err).Warn("block: write-back on release failed")
		}
	}
}

// WriteThrough forces an immediate write-back of buf if dirty,
// without waiting for the last reference to be released or for LRU
// eviction.
func (c *Cache) WriteThrough(buf *Buffer) error {
	buf.mu.Lock()
	dirty := buf.dirty
	data := buf.data
	buf.mu.Unlock()
	if !dirty {
		return nil
	}
	return c.store.WriteBlock(buf.dev, buf.no, data[:])
}
