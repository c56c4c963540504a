package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "minixfsctl",
	Short: "Inspect and mutate a minixfs disk image",
	Long: `minixfsctl drives the minixfs namei core against a bbolt-backed
disk image, the way a shell drives a real filesystem: mkfs to
initialize one, then mkdir/ln/rm/mv/ls/cat/symlink against it.`,
}

func init() {
	cobra.OnInitialize(func() {
		viper.AutomaticEnv()
	})
	if err := bindConfigFlags(rootCmd.PersistentFlags()); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	rootCmd.AddCommand(mkfsCmd, mkdirCmd, lnCmd, rmCmd, mvCmd, lsCmd, catCmd, symlinkCmd, writeCmd)
}

// Execute runs the root command, the same shape as gcsfuse's
// cmd.Execute().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
