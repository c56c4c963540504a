package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lnCmd = &cobra.Command{
	Use:   "ln OLD NEW",
	Short: "Create a hard link",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := openFS()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := h.ops.Link(args[0], args[1], h.task); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "linked %s -> %s\n", args[1], args[0])
		return nil
	},
}
