package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var lsCmd = &cobra.Command{
	Use:   "ls PATH",
	Short: "List a directory's entries",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := openFS()
		if err != nil {
			return err
		}
		defer cleanup()

		dir, err := h.r.Namei(args[0], nil, h.task)
		if err != nil {
			return err
		}
		defer dir.Put()
		if !dir.Mode().IsDir() {
			return fmt.Errorf("ls: %s is not a directory", args[0])
		}

		entries, err := listDirEntries(h.r, dir)
		if err != nil {
			return err
		}
		for _, e := range entries {
			fmt.Fprintf(cmd.OutOrStdout(), "%8d %s\n", e.Ino, e.Name)
		}
		return nil
	},
}
