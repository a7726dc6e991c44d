package main

import (
	"errors"
	"io"

	"github.com/dhamidi/octio/format"
	"github.com/spf13/cobra"
)

func newGetlCmd() *cobra.Command {
	var (
		keepEOL bool
		skip    int
		limit   int
	)

	cmd := &cobra.Command{
		Use:   "getl <file|->",
		Short: "Read lines from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openStream(args[0], "r")
			if err != nil {
				return err
			}
			if skip > 0 {
				if _, err := s.SkipLines(skip); err != nil {
					return err
				}
			}
			lines := format.Series{Name: "line", Type: "string"}
			for limit < 0 || len(lines.Values) < limit {
				line, err := s.GetLine(keepEOL)
				if errors.Is(err, io.EOF) {
					break
				}
				if err != nil {
					return err
				}
				lines.Values = append(lines.Values, line)
			}
			return encode(cmd, &format.Table{
				Series:   []format.Series{lines},
				Count:    len(lines.Values),
				Position: s.Tell(),
			})
		},
	}

	cmd.Flags().BoolVarP(&keepEOL, "keep-eol", "k", false, "keep line terminators (fgets)")
	cmd.Flags().IntVar(&skip, "skip", 0, "lines to skip first")
	cmd.Flags().IntVarP(&limit, "limit", "n", -1, "maximum number of lines, -1 for all")

	return cmd
}
