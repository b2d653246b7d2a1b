package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	svg "github.com/vasalvit/svgroi"
	"github.com/vasalvit/svgroi/internal/roiset"
)

func newInspectCmd(opts *globalOptions) *cobra.Command {
	var archive bool
	cmd := &cobra.Command{
		Use:   "inspect <file>",
		Short: "Show what the paths of one SVG document convert to",
		Long: `inspect parses one SVG document and prints, for every path element,
the commands and numbers found in its path data, the instructions they
convert to and any problem met on the way. Nothing is written.

With --archive the file is read as a region archive written by convert.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, _, err := setup(cmd, opts)
			if err != nil {
				return err
			}
			if archive {
				return inspectArchive(cmd.OutOrStdout(), args[0])
			}
			return inspectDocument(cmd.OutOrStdout(), args[0], cfg.Scale)
		},
	}
	cmd.Flags().BoolVar(&archive, "archive", false, "read a region archive instead of an SVG document")
	return cmd
}

func inspectDocument(w io.Writer, path string, scale float64) error {
	f, err := os.Open(path)
	if err != nil {
		return err
	}
	defer f.Close()

	doc, err := svg.ParseSvgFromReader(f, filepath.Base(path), scale)
	if err != nil {
		return err
	}

	for i, p := range doc.Paths {
		tc := svg.Census(p.D)
		fmt.Fprintf(w, "path #%d %q: M=%d L=%d C=%d other=%d numbers=%d\n", i, p.ID,
			tc.Count("M"), tc.Count("L"), tc.Count("C"),
			len(tc.Letters)-tc.Count("M")-tc.Count("L")-tc.Count("C"), tc.Numbers)

		r, diags, err := svg.BuildRegion(p.Attrs)
		if err != nil {
			fmt.Fprintf(w, "  error: %v\n", err)
			continue
		}
		if scale != 0 {
			r = r.Transform(*doc.Transform)
		}
		printRegion(w, r)
		for _, d := range diags {
			fmt.Fprintf(w, "  warning: %v\n", d)
		}
	}
	return nil
}

func inspectArchive(w io.Writer, path string) error {
	entries, err := roiset.Load(path)
	if err != nil {
		return err
	}
	for i, e := range entries {
		r, err := e.Region()
		if err != nil {
			return fmt.Errorf("entry %d: %w", i, err)
		}
		fmt.Fprintf(w, "region #%d %q\n", i, e.Name)
		printRegion(w, r)
	}
	return nil
}

func printRegion(w io.Writer, r svg.Region) {
	color := "none"
	if c, ok := r.Color(); ok {
		color = c.Hex()
	}
	fmt.Fprintf(w, "  %d instructions, closed=%t, color=%s\n", r.Len(), r.Closed(), color)
	for _, di := range r.Outline() {
		fmt.Fprintf(w, "    %v\n", di)
	}
}
