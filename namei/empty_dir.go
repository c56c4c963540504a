package namei

import (
	"github.com/sirupsen/logrus"

	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/ondisk"
)

// EmptyDir validates that dir contains only "." and "..", tolerating
// holes left by a prior removal: slot 0 must be "." bound
// to dir itself, slot 1 must be ".." bound to some nonzero inode, and
// every later occupied slot fails the check.
func (r *Resolver) EmptyDir(dir *inode.Inode) (bool, error) {
	zones := dir.ZonesSnapshot()
	n := int(dir.Size()) / ondisk.DirEntrySize

	for i := 0; i < n; i++ {
		no, ok, err := r.Alloc.Bmap(dir.Dev, &zones, ondisk.BlockIndex(i), false)
		if err != nil {
			return false, err
		}
		if !ok {
			// Hole: skip the whole block's worth of slots.
			i = (ondisk.BlockIndex(i)+1)*ondisk.DirEntriesPerBlock - 1
			continue
		}

		buf, err := r.Blocks.Bread(dir.Dev, no)
		if err != nil {
			return false, err
		}
		off := ondisk.SlotOffset(i % ondisk.DirEntriesPerBlock)
		entry := ondisk.Unmarshal(buf.Data()[off : off+ondisk.DirEntrySize])
		r.Blocks.Brelse(buf)

		switch i {
		case 0:
			if entry.Ino != dir.Num || entry.Name != "." {
				r.Log.WithFields(logrus.Fields{
					"device": dir.Dev,
					"inode":  dir.Num,
					"block":  no,
				}).Warn("namei: malformed \".\" slot in directory")
				return false, minixfs.ErrIO
			}
		case 1:
			if entry.Ino == 0 || entry.Name != ".." {
				r.Log.WithFields(logrus.Fields{
					"device": dir.Dev,
					"inode":  dir.Num,
					"block":  no,
				}).Warn("namei: malformed \"..\" slot in directory")
				return false, minixfs.ErrIO
			}
		default:
			if entry.Ino != 0 {
				return false, nil
			}
		}
	}
	return true, nil
}
