// Package config loads the tunables a minixfs instance needs but
// treats as externally supplied collaborator sizing: block-cache and
// inode-cache capacity, the default creation umask, and the path to
// the bbolt-backed disk image. Layered with github.com/spf13/viper
// over github.com/spf13/pflag, the way GoogleCloudPlatform-gcsfuse's
// cfg package binds flags then unmarshals into a struct.
package config

import (
	"fmt"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Config holds every tunable a minixfs instance reads at startup.
type Config struct {
	// DiskPath is where the bbolt-backed block device lives.
	DiskPath string `mapstructure:"disk-path"`

	// BlockCacheSize and InodeCacheSize bound the LRU fronts over the
	// bolt-backed block and inode stores (block.NewCache, inode.NewCache).
	BlockCacheSize int `mapstructure:"block-cache-size"`
	InodeCacheSize int `mapstructure:"inode-cache-size"`

	// DefaultUmask is applied to task.Task.Umask when a caller doesn't
	// specify one of their own (open_namei / mknod / mkdir).
	DefaultUmask uint32 `mapstructure:"default-umask"`
}

const (
	defaultBlockCacheSize = 256
	defaultInodeCacheSize = 256
	defaultUmask          = 022
)

// BindFlags registers this package's flags onto fs, mirroring
// gcsfuse's cfg.BindFlags(rootCmd.PersistentFlags()) pattern.
func BindFlags(fs *pflag.FlagSet) error {
	fs.String("disk-path", "minixfs.bolt", "path to the backing disk image")
	fs.Int("block-cache-size", defaultBlockCacheSize, "number of blocks held in the in-memory cache")
	fs.Int("inode-cache-size", defaultInodeCacheSize, "number of inodes held in the in-memory cache")
	fs.Uint32("default-umask", defaultUmask, "default creation umask, octal")

	for _, name := range []string{"disk-path", "block-cache-size", "inode-cache-size", "default-umask"} {
		if err := viper.BindPFlag(name, fs.Lookup(name)); err != nil {
			return fmt.Errorf("binding flag %q: %w", name, err)
		}
	}
	return nil
}

// Load reads viper's current bound state (flags plus any config file
// already read via viper.ReadInConfig) into a Config.
func Load() (Config, error) {
	var c Config
	if err := viper.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshaling config: %w", err)
	}
	if c.BlockCacheSize <= 0 {
		c.BlockCacheSize = defaultBlockCacheSize
	}
	if c.InodeCacheSize <= 0 {
		c.InodeCacheSize = defaultInodeCacheSize
	}
	return c, nil
}
