package main

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dhamidi/octio/format"
	"github.com/dhamidi/octio/textscan"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func newTextscanCmd() *cobra.Command {
	var (
		delimiter    string
		commentStyle []string
		headerLines  int
		repeat       int
		options      []string
	)

	cmd := &cobra.Command{
		Use:   "textscan <file|-> [format]",
		Short: "Scan delimited text into typed columns",
		Long: `Scan delimited text into typed columns.

An empty or missing format infers one %f column per field of the first
line. Further options are given as name=value pairs, e.g.
-o EmptyValue=-1 -o MultipleDelimsAsOne=true. Defaults for these pairs
can also come from the [textscan] table of the config file.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := textscanConfig(options)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("delimiter") {
				if err := cfg.Set("Delimiter", delimiter); err != nil {
					return err
				}
			}
			if len(commentStyle) > 0 {
				if err := cfg.Set("CommentStyle", commentStyle); err != nil {
					return err
				}
			}
			if headerLines > 0 {
				if err := cfg.Set("HeaderLines", headerLines); err != nil {
					return err
				}
			}
			if err := textscan.WithRepeat(repeat)(&cfg); err != nil {
				return err
			}

			var f string
			if len(args) == 2 {
				f = args[1]
			}
			s, err := openStream(args[0], "r")
			if err != nil {
				return err
			}
			res, err := textscan.ScanWith(s, f, cfg)
			if err != nil {
				return err
			}
			return encode(cmd, format.FromResult(res))
		},
	}

	cmd.Flags().StringVarP(&delimiter, "delimiter", "d", "", "delimiter characters, escapes like \\t allowed")
	cmd.Flags().StringSliceVarP(&commentStyle, "comment-style", "c", nil, "comment marker, or start and end markers")
	cmd.Flags().IntVar(&headerLines, "header-lines", 0, "lines to skip before scanning")
	cmd.Flags().IntVarP(&repeat, "repeat", "n", -1, "number of times to apply the format, -1 for all")
	cmd.Flags().StringArrayVarP(&options, "option", "o", nil, "textscan option as name=value")

	return cmd
}

// textscanConfig applies the config file's textscan table and then the
// name=value pairs given on the command line.
func textscanConfig(pairs []string) (textscan.Config, error) {
	cfg := textscan.DefaultConfig()

	defaults := viper.GetStringMapString("textscan")
	names := make([]string, 0, len(defaults))
	for name := range defaults {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := cfg.Set(name, defaults[name]); err != nil {
			return cfg, err
		}
	}

	for _, pair := range pairs {
		name, value, ok := strings.Cut(pair, "=")
		if !ok {
			return cfg, fmt.Errorf("invalid option %q: expected name=value", pair)
		}
		if err := cfg.Set(name, value); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}
