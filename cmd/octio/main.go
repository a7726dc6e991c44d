package main

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dhamidi/octio/format"
	"github.com/dhamidi/octio/precision"
	"github.com/dhamidi/octio/stream"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"
)

var (
	cfgFile   string
	verbosity int
	streams   = stream.NewRegistry()
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "octio",
		Short:         "Scan text and read typed binary data from files and pipes",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			commonlog.Configure(verbosity, nil)
		},
	}
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/octio/config.toml)")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity")
	rootCmd.PersistentFlags().StringP("format", "f", "line", "output format: json, line, or csv")
	rootCmd.PersistentFlags().String("arch", "native", "byte order: native, ieee-le, or ieee-be")
	rootCmd.PersistentFlags().String("compression", "none", "file codec: none, gzip, or zstd")
	viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))
	viper.BindPFlag("arch", rootCmd.PersistentFlags().Lookup("arch"))
	viper.BindPFlag("compression", rootCmd.PersistentFlags().Lookup("compression"))

	rootCmd.AddCommand(newTextscanCmd())
	rootCmd.AddCommand(newSscanfCmd())
	rootCmd.AddCommand(newFscanfCmd())
	rootCmd.AddCommand(newFreadCmd())
	rootCmd.AddCommand(newFwriteCmd())
	rootCmd.AddCommand(newPrecisionCmd())
	rootCmd.AddCommand(newGetlCmd())

	err := rootCmd.Execute()
	if cerr := streams.CloseAll(); err == nil {
		err = cerr
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(home + "/.config/octio")
		}
		viper.AddConfigPath(".")
		viper.SetConfigName("octio")
		viper.SetConfigType("toml")
	}

	viper.SetEnvPrefix("OCTIO")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			fmt.Fprintf(os.Stderr, "Error reading config file: %s\n", err)
		}
	}
}

func byteOrder() (precision.ByteOrder, error) {
	arch := viper.GetString("arch")
	if !precision.KnownArch(arch) {
		return precision.Native, fmt.Errorf("invalid machine format %q", arch)
	}
	return precision.ParseArch(arch), nil
}

// openStream opens path in mode and registers it. "-" names standard input
// or output.
func openStream(path, mode string) (*stream.Stream, error) {
	if path == "-" {
		id := stream.Stdin
		if mode[0] != 'r' {
			id = stream.Stdout
		}
		return streams.Lookup(id)
	}
	order, err := byteOrder()
	if err != nil {
		return nil, err
	}
	c, err := stream.ParseCompression(viper.GetString("compression"))
	if err != nil {
		return nil, err
	}
	s, err := stream.Open(path, mode, order, stream.WithCompression(c))
	if err != nil {
		return nil, err
	}
	streams.Insert(s)
	return s, nil
}

func encode(cmd *cobra.Command, t *format.Table) error {
	enc, err := format.NewEncoder(viper.GetString("format"), cmd.OutOrStdout())
	if err != nil {
		return err
	}
	return enc.Encode(t)
}
