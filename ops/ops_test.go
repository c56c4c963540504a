package ops_test

import (
	"path/filepath"
	"testing"

	"github.com/jacobsa/timeutil"
	"github.com/stretchr/testify/require"

	"github.com/jacobsa/minixfs"
	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/namei"
	"github.com/jacobsa/minixfs/ops"
	"github.com/jacobsa/minixfs/super"
	"github.com/jacobsa/minixfs/task"
)

const testDev = block.DeviceID(1)

type fixture struct {
	o    *ops.Ops
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
	mounts.AddSuper(testDev, root.Num)

	selfCur, err := r.AddEntry(root, ".")
	require.NoError(tt, err)
	selfCur.SetIno(root.Num)
	selfCur.Release(blocks)
	parentCur, err := r.AddEntry(root, "..")
	require.NoError(tt, err)
	parentCur.SetIno(root.Num)
	parentCur.Release(blocks)
	root.AddNlinks(2)

	tsk := &task.Task{Root: root, Cwd: root, Uid: 0, Gid: 0, Umask: 022}
	root.AddRef()

	f := &fixture{o: ops.New(r), r: r, root: root, t: tsk}
	return f, func() { dev.Close() }
}

func TestMkdirSetsNlinksAndDotDot(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	a, err := f.o.Mkdir("/a", 0755, f.t)
	require.NoError(t, err)
	require.Equal(t, uint16(2), a.Nlinks())
	require.Equal(t, uint16(3), f.root.Nlinks()) // 2 initial + 1 for /a's ".."

	dot, err := f.r.Namei("/a/.", nil, f.t)
	require.NoError(t, err)
	require.Equal(t, a.Num, dot.Num)
	dot.Put()

	dotdot, err := f.r.Namei("/a/..", nil, f.t)
	require.NoError(t, err)
	require.Equal(t, f.root.Num, dotdot.Num)
	dotdot.Put()

	a.Put()
}

func TestMkdirExistingFails(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	a, err := f.o.Mkdir("/a", 0755, f.t)
	require.NoError(t, err)
	a.Put()

	_, err = f.o.Mkdir("/a", 0755, f.t)
	require.ErrorIs(t, err, minixfs.ErrExist)
}

func TestMkdirThenRmdirRestoresNlinks(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	before := f.root.Nlinks()
	a, err := f.o.Mkdir("/a", 0755, f.t)
	require.NoError(t, err)
	a.Put()

	require.NoError(t, f.o.Rmdir("/a", f.t))
	require.Equal(t, before, f.root.Nlinks())

	_, err = f.r.Namei("/a", nil, f.t)
	require.ErrorIs(t, err, minixfs.ErrNoEnt)
}

func TestRmdirRejectsNonEmpty(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	a, err := f.o.Mkdir("/a", 0755, f.t)
	require.NoError(t, err)
	a.Put()

	in, err := f.o.Mknod("/a/x", inode.ModeRegular|0644, 0, f.t)
	require.NoError(t, err)
	in.Put()

	err = f.o.Rmdir("/a", f.t)
	require.ErrorIs(t, err, minixfs.ErrNotEmpty)
}

func TestRmdirRejectsCurrentDirectory(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	a, err := f.o.Mkdir("/a", 0755, f.t)
	require.NoError(t, err)

	// Alias the task's cwd onto /a itself: removing a process's own
	// current directory must be rejected.
	a.AddRef()
	cwdTask := &task.Task{Root: f.root, Cwd: a, Uid: f.t.Uid, Gid: f.t.Gid}

	err = f.o.Rmdir("/a", cwdTask)
	require.ErrorIs(t, err, minixfs.ErrBusy)

	cwdTask.Cwd.Put()
	a.Put()
}

func TestRmdirRejectsStickyParent(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	// World-writable, so only the sticky bit stands in the way.
	f.root.SetMode(f.root.Mode() | inode.ModePerm | inode.ModeSticky)

	a, err := f.o.Mkdir("/a", 0755, f.t)
	require.NoError(t, err)
	a.Put()

	other := &task.Task{Root: f.root, Cwd: f.root, Uid: 99, Gid: 99}
	err = f.o.Rmdir("/a", other)
	require.ErrorIs(t, err, minixfs.ErrPermission)

	require.NoError(t, f.o.Rmdir("/a", f.t))
}

func TestLinkThenUnlinkKeepsSecondName(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	in, err := f.o.Mknod("/a", inode.ModeRegular|0644, 0, f.t)
	require.NoError(t, err)
	in.Put()

	require.NoError(t, f.o.Link("/a", "/b", f.t))
	require.NoError(t, f.o.Unlink("/a", f.t))

	got, err := f.r.Namei("/b", nil, f.t)
	require.NoError(t, err)
	require.Equal(t, uint16(1), got.Nlinks())
	got.Put()

	_, err = f.r.Namei("/a", nil, f.t)
	require.ErrorIs(t, err, minixfs.ErrNoEnt)
}

func TestSymlinkResolvesThroughNameiNotLNamei(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	target, err := f.o.Mknod("/real", inode.ModeRegular|0644, 0, f.t)
	require.NoError(t, err)

	link, err := f.o.Symlink("/real", "/link", f.t)
	require.NoError(t, err)

	followed, err := f.r.Namei("/link", nil, f.t)
	require.NoError(t, err)
	require.Equal(t, target.Num, followed.Num)
	followed.Put()

	unfollowed, err := f.r.LNamei("/link", nil, f.t)
	require.NoError(t, err)
	require.Equal(t, link.Num, unfollowed.Num)
	unfollowed.Put()

	text, err := f.r.ReadLink("/link", nil, f.t)
	require.NoError(t, err)
	require.Equal(t, "/real", text)

	link.Put()
	target.Put()
}

func TestRenameExistingDestinationFails(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	x, err := f.o.Mknod("/x", inode.ModeRegular|0644, 0, f.t)
	require.NoError(t, err)
	x.Put()
	y, err := f.o.Mknod("/y", inode.ModeRegular|0644, 0, f.t)
	require.NoError(t, err)
	y.Put()

	err = f.o.Rename("/x", "/y", f.t)
	require.ErrorIs(t, err, minixfs.ErrExist)

	require.NoError(t, f.o.Unlink("/y", f.t))
	require.NoError(t, f.o.Rename("/x", "/y", f.t))

	_, err = f.r.Namei("/x", nil, f.t)
	require.ErrorIs(t, err, minixfs.ErrNoEnt)
}

func TestRenameDirectoryUpdatesDotDot(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	a, err := f.o.Mkdir("/a", 0755, f.t)
	require.NoError(t, err)
	a.Put()
	b, err := f.o.Mkdir("/b", 0755, f.t)
	require.NoError(t, err)
	b.Put()

	require.NoError(t, f.o.Rename("/a", "/b/a", f.t))

	dotdot, err := f.r.Namei("/b/a/..", nil, f.t)
	require.NoError(t, err)
	bIn, err := f.r.Namei("/b", nil, f.t)
	require.NoError(t, err)
	require.Equal(t, bIn.Num, dotdot.Num)
	dotdot.Put()
	bIn.Put()
}

func TestRenameRejectsMovingIntoOwnSubtree(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	a, err := f.o.Mkdir("/a", 0755, f.t)
	require.NoError(t, err)
	a.Put()
	b, err := f.o.Mkdir("/a/b", 0755, f.t)
	require.NoError(t, err)
	b.Put()

	err = f.o.Rename("/a", "/a/b/c", f.t)
	require.Error(t, err)
}

func TestChmodRequiresOwnership(t *testing.T) {
	f, cleanup := newFixture(t)
	defer cleanup()

	in, err := f.o.Mknod("/a", inode.ModeRegular|0644, 0, f.t)
	require.NoError(t, err)
	in.Put()

	other := &task.Task{Root: f.root, Cwd: f.root, Uid: 99, Gid: 99}
	err = f.o.Chmod("/a", 0600, other)
	require.ErrorIs(t, err, minixfs.ErrPermission)

	require.NoError(t, f.o.Chmod("/a", 0600, f.t))
	attr, err := f.o.Stat("/a", f.t)
	require.NoError(t, err)
	require.Equal(t, inode.Mode(0600), attr.Mode.Perm())
}
