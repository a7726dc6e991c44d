package main

import (
	"github.com/dhamidi/octio/format"
	"github.com/dhamidi/octio/textscan"
	"github.com/spf13/cobra"
)

func newFscanfCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "fscanf <file|-> <format>",
		Short: "Scan a file with a C style format",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStream(args[0], "r")
			if err != nil {
				return err
			}
			res, err := textscan.Scanf(s, args[1], limit)
			if err != nil {
				return err
			}
			return encode(cmd, format.FromScanf(res))
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", -1, "maximum number of values, -1 for all")

	return cmd
}
