package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dhamidi/octio/binio"
	"github.com/dhamidi/octio/format"
	"github.com/dhamidi/octio/precision"
	"github.com/spf13/cobra"
)

func newFwriteCmd() *cobra.Command {
	var (
		spec   string
		skip   int64
		appnd  bool
		asText bool
	)

	cmd := &cobra.Command{
		Use:   "fwrite <file|-> <value>...",
		Short: "Write numbers as typed binary data",
		Long: `Write numbers as typed binary data.

Values are converted to the precision's input type with saturation. With
--text the values are joined and written as characters.`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := precision.ParseWrite(spec)
			if err != nil {
				return err
			}
			values, err := writeValues(args[1:], asText)
			if err != nil {
				return err
			}
			mode := "wb"
			if appnd {
				mode = "ab"
			}
			s, err := openStream(args[0], mode)
			if err != nil {
				return err
			}
			n, err := binio.Write(s, values, p, skip, precision.Native)
			if err != nil {
				return err
			}
			if err := s.Flush(); err != nil {
				return err
			}
			return encode(cmd, &format.Table{
				Series: []format.Series{{Name: "count", Type: "double", Values: []any{float64(n)}}},
				Count:  n,
			})
		},
	}

	cmd.Flags().StringVarP(&spec, "precision", "p", "uint8", "precision string")
	cmd.Flags().Int64Var(&skip, "skip", 0, "bytes to skip before each block")
	cmd.Flags().BoolVarP(&appnd, "append", "a", false, "append instead of truncating")
	cmd.Flags().BoolVarP(&asText, "text", "t", false, "write the arguments as characters")

	return cmd
}

func writeValues(args []string, asText bool) (any, error) {
	if asText {
		return strings.Join(args, " "), nil
	}
	values := make([]float64, len(args))
	for i, a := range args {
		f, err := strconv.ParseFloat(a, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid value %q: %w", a, err)
		}
		values[i] = f
	}
	return values, nil
}
