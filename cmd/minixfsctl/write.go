package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jacobsa/minixfs/inode"
	"github.com/jacobsa/minixfs/namei"
)

var writeCmd = &cobra.Command{
	Use:   "write PATH TEXT",
	Short: "Create (or truncate) a regular file with the given contents",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := openFS()
		if err != nil {
			return err
		}
		defer cleanup()

		in, err := h.r.OpenNamei(args[0], namei.OCreat|namei.OWrOnly|namei.OTrunc, inode.ModePerm&0644, h.task)
		if err != nil {
			return err
		}
		defer in.Put()

		if err := writeFileContents(h.r, in, []byte(args[1])); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d bytes to %s\n", len(args[1]), args[0])
		return nil
	},
}
