package main

import (
	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/namei"
	"github.com/jacobsa/minixfs/ondisk"
)

// listDirEntries walks dir's slots the way namei.EmptyDir does, but
// collects every occupied name instead of rejecting non-"."/".."
// ones. There is no on-disk readdir cursor to resume from: ls reads
// the whole directory in one pass, same as the image is small enough
// for a CLI to hold in memory.
func listDirEntries(r *namei.Resolver, dir *inode.Inode) ([]ondisk.DirEntry, error) {
	zones := dir.ZonesSnapshot()
	n := int(dir.Size()) / ondisk.DirEntrySize

	var out []ondisk.DirEntry
	for i := 0; i < n; i++ {
		no, ok, err := r.Alloc.Bmap(dir.Dev, &zones, ondisk.BlockIndex(i), false)
		if err != nil {
			return nil, err
		}
		if !ok {
			i = (ondisk.BlockIndex(i)+1)*ondisk.DirEntriesPerBlock - 1
			continue
		}

		buf, err := r.Blocks.Bread(dir.Dev, no)
		if err != nil {
			return nil, err
		}
		off := ondisk.SlotOffset(i % ondisk.DirEntriesPerBlock)
		entry := ondisk.Unmarshal(buf.Data()[off : off+ondisk.DirEntrySize])
		r.Blocks.Brelse(buf)

		if entry.Ino != 0 {
			out = append(out, entry)
		}
	}
	return out, nil
}

// readFileContents reads in's full contents across its zone array, up
// to in.Size() bytes, the same block-at-a-time traversal add_entry
// and empty_dir use for directory slots.
func readFileContents(r *namei.Resolver, in *inode.Inode) ([]byte, error) {
	zones := in.ZonesSnapshot()
	size := int(in.Size())
	out := make([]byte, 0, size)

	for off := 0; off < size; off += block.BlockSize {
		idx := off / block.BlockSize
		no, ok, err := r.Alloc.Bmap(in.Dev, &zones, idx, false)
		if err != nil {
			return nil, err
		}
		want := size - off
		if want > block.BlockSize {
			want = block.BlockSize
		}
		if !ok {
			out = append(out, make([]byte, want)...)
			continue
		}
		buf, err := r.Blocks.Bread(in.Dev, no)
		if err != nil {
			return nil, err
		}
		out = append(out, buf.Data()[:want]...)
		r.Blocks.Brelse(buf)
	}
	return out, nil
}

// writeFileContents overwrites in's contents with data, allocating
// zone blocks on demand via Alloc.Bmap(create=true) the way
// ops.Symlink fills a freshly allocated target block. Only the direct
// zones are addressable (ondisk.NumZones blocks), matching Bmap's
// carried indirect-zone seam.
func writeFileContents(r *namei.Resolver, in *inode.Inode, data []byte) error {
	zones := in.ZonesSnapshot()

	for off := 0; off < len(data); off += block.BlockSize {
		idx := off / block.BlockSize
		no, ok, err := r.Alloc.Bmap(in.Dev, &zones, idx, true)
		if err != nil {
			return err
		}
		if !ok {
			return minixfs.ErrNoSpace
		}
		buf, err := r.Blocks.Bread(in.Dev, no)
		if err != nil {
			return err
		}
		n := copy(buf.Data(), data[off:])
		for i := n; i < block.BlockSize; i++ {
			buf.Data()[i] = 0
		}
		buf.MarkDirty()
		r.Blocks.Brelse(buf)
	}

	in.CommitZones(zones)
	in.SetSize(uint32(len(data)))
	in.MarkDirty()
	return nil
}
