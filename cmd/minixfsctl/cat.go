package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var catCmd = &cobra.Command{
	Use:   "cat PATH",
	Short: "Print a regular file's contents",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		h, cleanup, err := openFS()
		if err != nil {
			return err
		}
		defer cleanup()

		in, err := h.r.Namei(args[0], nil, h.task)
		if err != nil {
			return err
		}
		defer in.Put()
		if !in.Mode().IsRegular() {
			return fmt.Errorf("cat: %s is not a regular file", args[0])
		}

		data, err := readFileContents(h.r, in)
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	},
}
