package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var rmDir bool

var rmCmd = &cobra.Command{
	Use:   "rm PATH",
	Short: "Remove a file, or (with -d) an empty directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := openFS()
		if err != nil {
			return err
		}
		defer cleanup()

		if rmDir {
			if err := h.ops.Rmdir(args[0], h.task); err != nil {
				return err
			}
		} else {
			if err := h.ops.Unlink(args[0], h.task); err != nil {
				return err
			}
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %s\n", args[0])
		return nil
	},
}

func init() {
	rmCmd.Flags().BoolVarP(&rmDir, "dir", "d", false, "remove an empty directory instead of a file (rmdir, not a recursive tree delete)")
}
