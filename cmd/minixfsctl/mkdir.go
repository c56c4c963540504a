package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobsa/minixfs/inode"
)

var mkdirCmd = &cobra.Command{
	Use:   "mkdir PATH",
	Short: "Create a directory",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := openFS()
		if err != nil {
			return err
		}
		defer cleanup()

		in, err := h.ops.Mkdir(args[0], inode.ModePerm&0755, h.task)
		if err != nil {
			return err
		}
		in.Put()
		fmt.Fprintf(cmd.OutOrStdout(), "created %s\n", args[0])
		return nil
	},
}
