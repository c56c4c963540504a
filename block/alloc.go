package block

import "github.com/jacobsa/minixfs/ondisk"

// Allocator models new_block/create_block/bmap: it maps a logical
// block index within an inode's zone array to a physical block
// number, allocating on demand.
type Allocator struct {
	store Store
	cache *Cache
}

// NewAllocator builds an Allocator over store/cache. cache is used so
// a freshly allocated, zeroed block is immediately visible to
// subsequent Bread calls without a round trip through the store.
func NewAllocator(store Store, cache *Cache) *Allocator {
	return &Allocator{store: store, cache: cache}
}

// NewBlock allocates a fresh, zeroed data block on dev and returns its
// number. It does not associate the block with any inode; callers
// must record it in a zone slot themselves.
func (a *Allocator) NewBlock(dev DeviceID) (Num, error) {
	no, err := a.store.AllocBlock(dev)
	if err != nil {
		return 0, err
	}
	var zero [BlockSize]byte
	if err := a.store.WriteBlock(dev, no, zero[:]); err != nil {
		return 0, err
	}
	return no, nil
}

// CreateBlock allocates a fresh block and returns a pinned, owned
// Buffer over it, ready for the caller to fill and mark dirty. Used
// by add_entry when a directory's current last block is full and a
// new one must be appended.
func (a *Allocator) CreateBlock(dev DeviceID) (*Buffer, error) {
	no, err := a.NewBlock(dev)
	if err != nil {
		return nil, err
	}
	return a.cache.Bread(dev, no)
}

// Bmap maps logical block index idx within zones to a physical block
// number. If create is true and the slot is empty, a fresh block is
// allocated and recorded into zones[idx]. Only direct zones are
// resolved (ondisk.NumZones of them); indirect zones are a carried,
// unimplemented seam — idx beyond the direct range reports ok=false
// rather than silently truncating data.
func (a *Allocator) Bmap(dev DeviceID, zones *[ondisk.NumZones]uint32, idx int, create bool) (no Num, ok bool, err error) {
	if idx < 0 || idx >= ondisk.NumZones {
		return 0, false, nil
	}
	if zones[idx] != 0 {
		return Num(zones[idx]), true, nil
	}
	if !create {
		return 0, false, nil
	}
	n, err := a.NewBlock(dev)
	if err != nil {
		return 0, false, err
	}
	zones[idx] = uint32(n)
	return n, true, nil
}
