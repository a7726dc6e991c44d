package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/dhamidi/octio/binio"
	"github.com/dhamidi/octio/format"
	"github.com/dhamidi/octio/precision"
	"github.com/spf13/cobra"
)

func newFreadCmd() *cobra.Command {
	var (
		size   string
		spec   string
		skip   int64
		offset int64
	)

	cmd := &cobra.Command{
		Use:   "fread <file|->",
		Short: "Read typed binary data",
		Long: `Read typed binary data.

The size is Inf, a count N, or RxC where C may be Inf. The precision has
the form [count*]type[=>outtype], e.g. uint8=>double or 4*int16=>int16.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sz, err := parseSize(size)
			if err != nil {
				return err
			}
			p, err := precision.Parse(spec)
			if err != nil {
				return err
			}
			s, err := openStream(args[0], "rb")
			if err != nil {
				return err
			}
			if offset > 0 {
				if _, err := s.Seek(offset, io.SeekStart); err != nil {
					return fmt.Errorf("seek %s: %w", args[0], err)
				}
			}
			a, err := binio.Read(s, sz, p, skip, precision.Native)
			if err != nil {
				return err
			}
			return encode(cmd, format.FromArray(a))
		},
	}

	cmd.Flags().StringVarP(&size, "size", "s", "Inf", "number of elements: Inf, N, or RxC")
	cmd.Flags().StringVarP(&spec, "precision", "p", "uint8=>double", "precision string")
	cmd.Flags().Int64Var(&skip, "skip", 0, "bytes to skip after each block")
	cmd.Flags().Int64Var(&offset, "offset", 0, "byte offset to start reading at")

	return cmd
}

// parseSize parses Inf, N or RxC.
func parseSize(s string) (binio.Size, error) {
	dim := func(d string) (int, error) {
		if strings.EqualFold(d, "inf") {
			return binio.Inf, nil
		}
		n, err := strconv.Atoi(d)
		if err != nil || n < 0 {
			return 0, fmt.Errorf("invalid size %q", s)
		}
		return n, nil
	}

	r, c, ok := strings.Cut(strings.ToLower(s), "x")
	rows, err := dim(r)
	if err != nil {
		return binio.Size{}, err
	}
	if !ok {
		return binio.Size{Rows: rows, Cols: 1}, nil
	}
	cols, err := dim(c)
	if err != nil {
		return binio.Size{}, err
	}
	return binio.Size{Rows: rows, Cols: cols}, nil
}
