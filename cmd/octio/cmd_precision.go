package main

import (
	"github.com/dhamidi/octio/format"
	"github.com/dhamidi/octio/precision"
	"github.com/spf13/cobra"
)

func newPrecisionCmd() *cobra.Command {
	var write bool

	cmd := &cobra.Command{
		Use:   "precision <spec>...",
		Short: "Parse precision strings and show their element types",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parse := precision.Parse
			if write {
				parse = precision.ParseWrite
			}
			t := &format.Table{Series: []format.Series{
				{Name: "precision", Type: "string"},
				{Name: "count", Type: "double"},
				{Name: "in", Type: "string"},
				{Name: "out", Type: "string"},
				{Name: "bytes", Type: "double"},
			}}
			for _, arg := range args {
				spec, err := parse(arg)
				if err != nil {
					return err
				}
				row := []any{arg, float64(max(spec.Count, 1)), spec.In.String(), spec.Out.String(), float64(spec.In.Size())}
				for i, v := range row {
					t.Series[i].Values = append(t.Series[i].Values, v)
				}
				t.Count++
			}
			return encode(cmd, t)
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, "parse as fwrite precisions")

	return cmd
}
