package main

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	svg "github.com/vasalvit/svgroi"
	"github.com/vasalvit/svgroi/internal/config"
)

// globalOptions are the flags shared by every subcommand.
type globalOptions struct {
	configFile string
	verbose    bool
}

func newRootCmd() *cobra.Command {
	opts := &globalOptions{}
	rootCmd := &cobra.Command{
		Use:   "svgroi",
		Short: "Convert SVG path elements into region archives",
		Long: `svgroi reads the <path> elements of SVG documents and turns each one
into a region: the outline traced by its move, line and cubic curve
commands plus its stroke color. The regions of a document are written
to one archive per document.

Examples:
  svgroi convert ./drawings          Write ./drawings/ROI Sets/<name>.zip
  svgroi convert --dry-run ./drawings
  svgroi inspect cell.svg            Show what each path converts to`,
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default is $XDG_CONFIG_HOME/svgroi/config.*)")
	rootCmd.PersistentFlags().String("log-level", "info", "log level: debug, info, warn or error")
	rootCmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "also log every path data problem")

	rootCmd.AddCommand(newConvertCmd(opts))
	rootCmd.AddCommand(newInspectCmd(opts))
	return rootCmd
}

// setup loads the configuration and installs the logger.
func setup(cmd *cobra.Command, opts *globalOptions) (*config.Config, *slog.Logger, error) {
	cfg, err := config.Load(opts.configFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}
	logger, err := newLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	if opts.verbose {
		svg.SetLogger(logger)
	}
	return cfg, logger, nil
}

func newLogger(w io.Writer, level string) (*slog.Logger, error) {
	lvl, err := log.ParseLevel(level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	handler := log.NewWithOptions(w, log.Options{
		Level:           lvl,
		ReportTimestamp: true,
		Prefix:          config.AppName,
	})
	return slog.New(handler), nil
}
