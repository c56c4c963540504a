package config_test

import (
	"testing"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"

	"github.com/jacobsa/minixfs/config"
)

func TestLoadAppliesFlagDefaults(t *testing.T) {
	defer viper.Reset()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, config.BindFlags(fs))
	require.NoError(t, fs.Parse(nil))

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "minixfs.bolt", c.DiskPath)
	require.Equal(t, 256, c.BlockCacheSize)
	require.Equal(t, 256, c.InodeCacheSize)
	require.Equal(t, uint32(022), c.DefaultUmask)
}

func TestLoadHonorsOverriddenFlag(t *testing.T) {
	defer viper.Reset()

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	require.NoError(t, config.BindFlags(fs))
	require.NoError(t, fs.Parse([]string{"--disk-path=/tmp/other.bolt", "--block-cache-size=8"}))

	c, err := config.Load()
	require.NoError(t, err)
	require.Equal(t, "/tmp/other.bolt", c.DiskPath)
	require.Equal(t, 8, c.BlockCacheSize)
}
