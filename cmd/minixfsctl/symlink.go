package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var symlinkCmd = &cobra.Command{
	Use:   "symlink TARGET LINKPATH",
	Short: "Create a symbolic link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := openFS()
		if err != nil {
			return err
		}
		defer cleanup()

		in, err := h.ops.Symlink(args[0], args[1], h.task)
		if err != nil {
			return err
		}
		in.Put()
		fmt.Fprintf(cmd.OutOrStdout(), "symlinked %s -> %s\n", args[1], args[0])
		return nil
	},
}
