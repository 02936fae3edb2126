package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/tliron/commonlog"

	_ "github.com/tliron/commonlog/simple"

	"github.com/dhamidi/fidl/config"
)

const version = "0.1.0"

var log = commonlog.GetLogger("fidl")

func main() {
	if err := newRootCmd(afero.NewOsFs()).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, color.RedString("error: %v", err))
		os.Exit(1)
	}
}

// env carries what every command shares: the filesystem and the
// configuration read from the environment.
type env struct {
	fs   afero.Fs
	conf config.Config
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	e := &env{fs: fs}
	var verbose int

	rootCmd := &cobra.Command{
		Use:           "fidl",
		Short:         "Format, check and generate code from FIDL files",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			conf, err := config.Load()
			if err != nil {
				return err
			}
			e.conf = conf
			if verbose > 0 {
				e.conf.Verbosity = verbose
			}
			commonlog.Configure(e.conf.Verbosity, e.conf.LogPath())
			return nil
		},
	}

	rootCmd.PersistentFlags().CountVarP(&verbose, "verbose", "v", "log more, repeat for more detail")

	rootCmd.AddCommand(newFmtCmd(e))
	rootCmd.AddCommand(newParseCmd(e))
	rootCmd.AddCommand(newCheckCmd(e))
	rootCmd.AddCommand(newGenCmd(e))
	rootCmd.AddCommand(newLSPCmd())
	rootCmd.AddCommand(newGrammarCmd(e))

	return rootCmd
}
