package main

import (
	"fmt"
	"os"

	"github.com/jacobsa/timeutil"
	"github.com/spf13/cobra"

	"github.com/jacobsa/minixfs/block"
	"github.com/jacobsa/minixfs/config"
	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/namei"
	"github.com/jacobsa/minixfs/super"
)

// mkfsCmd initializes a fresh bbolt-backed disk image with a root
// directory. It relies on rootInodeNum: inode.BoltStore.AllocInode's
// free-list-then-counter allocation always hands out inode 1 first on
// an empty device, so the root directory created here is guaranteed
// to land at the number every other subcommand assumes.
var mkfsCmd = &cobra.Command{
	Use:   "mkfs",
	Short: "Initialize a new minixfs disk image",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		if _, err := os.Stat(cfg.DiskPath); err == nil {
			return fmt.Errorf("mkfs: %s already exists", cfg.DiskPath)
		}

		dev, err := block.OpenBoltDevice(cfg.DiskPath)
		if err != nil {
			return err
		}
		defer dev.Close()

		blocks, err := block.NewCache(dev, cfg.BlockCacheSize, nil)
		if err != nil {
			return err
		}
		alloc := block.NewAllocator(dev, blocks)

		istore := inode.NewBoltStore(dev)
		inodes, err := inode.NewCache(istore, cfg.InodeCacheSize, timeutil.RealClock(), nil)
		if err != nil {
			return err
		}

		root, err := inodes.New(rootDev, inode.ModeDir|0755)
		if err != nil {
			return err
		}
		if root.Num != rootInodeNum {
			return fmt.Errorf("mkfs: first inode allocated was %d, not %d", root.Num, rootInodeNum)
		}
		defer root.Put()

		mounts := super.NewTable()
		mounts.AddSuper(rootDev, root.Num)
		r := namei.New(blocks, alloc, inodes, mounts, timeutil.RealClock(), nil)

		selfCur, err := r.AddEntry(root, ".")
		if err != nil {
			return err
		}
		selfCur.SetIno(root.Num)
		selfCur.Release(blocks)

		parentCur, err := r.AddEntry(root, "..")
		if err != nil {
			return err
		}
		parentCur.SetIno(root.Num)
		parentCur.Release(blocks)

		now := timeutil.RealClock().Now()
		root.AddNlinks(2)
		root.Touch(now, true, true, true)

		fmt.Fprintf(cmd.OutOrStdout(), "initialized %s, root inode %d\n", cfg.DiskPath, root.Num)
		return nil
	},
}
