package main

import (
	"github.com/jacobsa/timeutil"
	"github.com/spf13/pflag"

	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/config"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/namei"
	"github.com/jacobsa/minixfs/ops"
	"github.com/jacobsa/minixfs/super"
	"github.com/jacobsa/minixfs/task"
)

// rootDev is the single device this CLI operates against; a real
// multi-device tool would take this from a mount table, but one
// bbolt file per invocation of minixfsctl is all the command surface
// needs to exercise the library end to end.
const rootDev = block.DeviceID(1)

// rootInodeNum relies on inode.BoltStore.AllocInode's "next" counter
// starting at 1 on a fresh bucket: mkfs's very first allocation is
// always inode 1, so every other subcommand can assume the root lives
// there without needing to persist a superblock pointer of its own.
const rootInodeNum = 1

func bindConfigFlags(fs *pflag.FlagSet) error {
	return config.BindFlags(fs)
}

// fsHandle bundles everything a subcommand needs: the resolver, the
// mutators, and the task context to run as (always superuser from the
// CLI, mirroring a root-owned fsck-style tool).
type fsHandle struct {
	dev  *block.BoltDevice
	r    *namei.Resolver
	ops  *ops.Ops
	task *task.Task
}

func openFS() (*fsHandle, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	dev, err := block.OpenBoltDevice(cfg.DiskPath)
	if err != nil {
		return nil, nil, err
	}

	blocks, err := block.NewCache(dev, cfg.BlockCacheSize, nil)
	if err != nil {
		dev.Close()
		return nil, nil, err
	}
	alloc := block.NewAllocator(dev, blocks)

	istore := inode.NewBoltStore(dev)
	inodes, err := inode.NewCache(istore, cfg.InodeCacheSize, timeutil.RealClock(), nil)
	if err != nil {
		dev.Close()
		return nil, nil, err
	}

	mounts := super.NewTable()
	mounts.AddSuper(rootDev, rootInodeNum)

	r := namei.New(blocks, alloc, inodes, mounts, timeutil.RealClock(), nil)

	root, err := inodes.Get(rootDev, rootInodeNum)
	if err != nil {
		dev.Close()
		return nil, nil, err
	}

	h := &fsHandle{
		dev: dev,
		r:   r,
		ops: ops.New(r),
		task: &task.Task{
			Root:  root,
			Cwd:   root,
			Uid:   0,
			Gid:   0,
			Umask: uint16(cfg.DefaultUmask),
		},
	}
	root.AddRef() // Cwd's own handle, distinct from Root's

	cleanup := func() {
		h.task.Root.Put()
		h.task.Cwd.Put()
		h.dev.Close()
	}
	return h, cleanup, nil
}
