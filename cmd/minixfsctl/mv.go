package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var mvCmd = &cobra.Command{
	Use:   "mv OLD NEW",
	Short: "Rename or move a file or directory",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := openFS()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := h.ops.Rename(args[0], args[1], h.task); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "moved %s -> %s\n", args[0], args[1])
		return nil
	},
}
