package main

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vasalvit/svgroi/internal/batch"
	"github.com/vasalvit/svgroi/internal/roiset"
)

func newConvertCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "convert <dir>",
		Short: "Convert every SVG document in a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := setup(cmd, opts)
			if err != nil {
				return err
			}

			dir := args[0]
			store := roiset.NewStore(cfg.ResolveOutputDir(dir))
			c := batch.NewConverter(batch.Options{
				Dir:     dir,
				Workers: cfg.Workers,
				Scale:   cfg.Scale,
				DryRun:  cfg.DryRun,
			}, store, logger)

			report, err := c.Run(cmd.Context())
			if report != nil {
				printReport(cmd.OutOrStdout(), report)
			}
			if err != nil {
				return err
			}
			if err := report.Err(); err != nil {
				return fmt.Errorf("some documents were not converted: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().String("output-dir", roiset.DefaultDir, "archive directory, relative to <dir> unless absolute")
	cmd.Flags().Int("workers", 0, "documents converted at once (default: number of CPUs)")
	cmd.Flags().Float64("scale", 0, "scale coordinates: > 0 multiplies, < 0 divides by -scale")
	cmd.Flags().Bool("dry-run", false, "convert without writing archives")
	return cmd
}

func printReport(w io.Writer, report *batch.Report) {
	for _, d := range report.Documents {
		name := filepath.Base(d.Document)
		switch {
		case !d.OK():
			fmt.Fprintf(w, "FAIL %s: %v\n", name, d.Err)
			continue
		case d.Archive != "":
			fmt.Fprintf(w, "ok   %s: %d of %d regions -> %s\n", name, d.Regions, d.Paths, d.Archive)
		default:
			fmt.Fprintf(w, "ok   %s: %d of %d regions\n", name, d.Regions, d.Paths)
		}
		for _, f := range d.Failures {
			fmt.Fprintf(w, "     skipped %v\n", &f)
		}
	}

	t := report.Totals()
	fmt.Fprintf(w, "\n%d documents (%d failed), %d regions (%d skipped), %d warnings\n",
		t.Documents, t.FailedDocuments, t.Regions, t.FailedRegions, t.Diagnostics)
}
