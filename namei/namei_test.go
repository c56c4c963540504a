package namei_test

import (
	"path/filepath"
	"testing"

	"github.com/jacobsa/timeutil"
	"github.com/stretchr/testify/require"

	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/namei"
	"github.com/jacobsa/minixfs/super"
	"github.com/jacobsa/minixfs/task"
)

const testDev = block.DeviceID(1)

// fixture wires a Resolver over an in-memory-sized bbolt file, with a
// root directory already containing "." and "..".
type fixture struct {
	r    *namei.Resolver
	root *inode.Inode
	t    *task.Task
}

func newFixture(tt *testing.T) (*fixture, func()) {
	tt.Helper()
	path := filepath.Join(tt.TempDir(), "disk.bolt")
	dev, err := block.OpenBoltDevice(path)
	require.NoError(tt, err)

	blocks, err := block.NewCache(dev, 64, nil)
	require.NoError(tt, err)
	alloc := block.NewAllocator(dev, blocks)

	istore := inode.NewBoltStore(dev)
	inodes, err := inode.NewCache(istore, 64, timeutil.RealClock(), nil)
	require.NoError(tt, err)

	mounts := super.NewTable()
	r := namei.New(blocks, alloc, inodes, mounts, timeutil.RealClock(), nil)

	root, err := inodes.New(testDev, inode.ModeDir|0755)
	require.NoError(tt, err)
	root.AddNlinks(2) // "." plus the entry some parent would hold
	mounts.AddSuper(testDev, root.Num)

	selfCur, err := r.AddEntry(root, ".")
	require.NoError(tt, err)
	selfCur.SetIno(root.Num)
	selfCur.Release(blocks)

	parentCur, err := r.AddEntry(root, "..")
	require.NoError(tt, err)
	parentCur.SetIno(root.Num)
	parentCur.Release(blocks)

	tsk := &task.Task{Root: root, Cwd: root, Uid: 0, Gid: 0, Umask: 022}
	root.AddRef() // Cwd's own reference, since Root and Cwd alias in this fixture

	f := &fixture{r: r, root: root, t: tsk}
	return f, func() { dev.Close() }
}

func (f *fixture) mkfile(tt *testing.T, name string, mode inode.Mode) *inode.Inode {
	tt.Helper()
	in, err := f.r.Inodes.New(testDev, mode)
	require.NoError(tt, err)
	in.AddNlinks(1)
	cur, err := f.r.AddEntry(f.root, name)
	require.NoError(tt, err)
	cur.SetIno(in.Num)
	cur.Release(f.r.Blocks)
	return in
}

func TestFindEntryFindsSelf(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	dirp := f.root
	dirp.AddRef()
	cur, err := f.r.FindEntry(&dirp, ".", f.t)
	require.NoError(t, err)
	require.Equal(t, f.root.Num, cur.Entry().Ino)
	cur.Release(f.r.Blocks)
	dirp.Put()
}

func TestFindEntryNoSuchName(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	dirp := f.root
	dirp.AddRef()
	_, err := f.r.FindEntry(&dirp, "nope", f.t)
	require.ErrorIs(t, err, minixfs.ErrNoEnt)
	dirp.Put()
}

func TestDotDotFoldsAtPseudoRoot(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	dirp := f.root
	dirp.AddRef()
	cur, err := f.r.FindEntry(&dirp, "..", f.t)
	require.NoError(t, err)
	require.Equal(t, f.root.Num, cur.Entry().Ino)
	cur.Release(f.r.Blocks)
	dirp.Put()
}

func TestNameiResolvesCreatedFile(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	in := f.mkfile(t, "hello", inode.ModeRegular|0644)

	got, err := f.r.Namei("/hello", nil, f.t)
	require.NoError(t, err)
	require.Equal(t, in.Num, got.Num)
	got.Put()
	in.Put()
}

func TestNameiNoSuchEntry(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	_, err := f.r.Namei("/missing", nil, f.t)
	require.ErrorIs(t, err, minixfs.ErrNoEnt)
}

func TestOpenNameiCreatesWhenMissing(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	in, err := f.r.OpenNamei("/new", namei.OCreat|namei.OWrOnly, 0644, f.t)
	require.NoError(t, err)
	require.True(t, in.Mode().IsRegular())
	in.Put()

	got, err := f.r.Namei("/new", nil, f.t)
	require.NoError(t, err)
	got.Put()
}

func TestOpenNameiExclFailsWhenExists(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	in := f.mkfile(t, "dup", inode.ModeRegular|0644)
	defer in.Put()

	_, err := f.r.OpenNamei("/dup", namei.OCreat|namei.OExcl|namei.OWrOnly, 0644, f.t)
	require.ErrorIs(t, err, minixfs.ErrExist)
}

func TestOpenNameiDeniesWriteOnDirectory(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	_, err := f.r.OpenNamei("/", namei.OWrOnly, 0, f.t)
	require.Error(t, err)
}

func TestOpenNameiTrunc(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	in := f.mkfile(t, "big", inode.ModeRegular|0644)
	in.SetSize(100)
	defer in.Put()

	got, err := f.r.OpenNamei("/big", namei.OWrOnly|namei.OTrunc, 0, f.t)
	require.NoError(t, err)
	require.Zero(t, got.Size())
	got.Put()
}

func TestEmptyDirTrueForFreshDirectory(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	ok, err := f.r.EmptyDir(f.root)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestEmptyDirFalseOnceOccupied(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	in := f.mkfile(t, "child", inode.ModeRegular|0644)
	defer in.Put()

	ok, err := f.r.EmptyDir(f.root)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestReadLinkRoundTrips(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	link, err := f.r.Inodes.New(testDev, inode.ModeSymlink|0777)
	require.NoError(t, err)
	link.AddNlinks(1)

	target := "hello"
	buf, err := f.r.Alloc.CreateBlock(testDev)
	require.NoError(t, err)
	copy(buf.Data(), target)
	buf.MarkDirty()
	zones := link.ZonesSnapshot()
	zones[0] = uint32(buf.Num())
	link.CommitZones(zones)
	link.SetSize(uint32(len(target)))
	f.r.Blocks.Brelse(buf)

	cur, err := f.r.AddEntry(f.root, "link")
	require.NoError(t, err)
	cur.SetIno(link.Num)
	cur.Release(f.r.Blocks)

	got, err := f.r.ReadLink("/link", nil, f.t)
	require.NoError(t, err)
	require.Equal(t, target, got)

	link.Put()
}

func TestPermissionOwnerGroupOther(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	in, err := f.r.Inodes.New(testDev, inode.ModeRegular|0640)
	require.NoError(t, err)
	in.AddNlinks(1) // linked, so not deleted-but-open
	in.SetUid(42)
	in.SetGid(7)
	defer in.Put()

	owner := &task.Task{Uid: 42, Gid: 7}
	require.True(t, namei.Permission(in, namei.Read|namei.Write, owner))

	group := &task.Task{Uid: 99, Gid: 7}
	require.True(t, namei.Permission(in, namei.Read, group))
	require.False(t, namei.Permission(in, namei.Write, group))

	other := &task.Task{Uid: 99, Gid: 99}
	require.False(t, namei.Permission(in, namei.Read, other))

	root := &task.Task{Uid: 0, Gid: 0}
	require.True(t, namei.Permission(in, namei.Write, root))
}
