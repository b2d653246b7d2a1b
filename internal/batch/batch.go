// Package batch converts every SVG document of a folder into a region
// archive.
package batch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"golang.org/x/sync/errgroup"

	svg "github.com/vasalvit/svgroi"
)

// Store persists the regions of one document and returns where they
// went.
type Store interface {
	Save(ctx context.Context, document string, rc *svg.RegionCollection) (string, error)
}

// Options controls a conversion run.
type Options struct {
	Dir     string
	Workers int
	Scale   float64
	DryRun  bool
}

// Converter runs a batch conversion.
type Converter struct {
	opts  Options
	store Store
	log   *slog.Logger
}

// NewConverter returns a converter writing through store. A nil logger
// discards log output.
func NewConverter(opts Options, store Store, log *slog.Logger) *Converter {
	if opts.Workers < 1 {
		opts.Workers = 1
	}
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Converter{opts: opts, store: store, log: log}
}

// Discover lists the SVG documents directly inside dir, sorted by name.
func Discover(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", dir, err)
	}
	var docs []string
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(strings.ToLower(e.Name()), ".svg") {
			continue
		}
		docs = append(docs, filepath.Join(dir, e.Name()))
	}
	sort.Strings(docs)
	return docs, nil
}

// Run converts every document in the folder. Documents are independent:
// one that fails is recorded in the report and the others carry on. The
// returned error is only set when the folder cannot be listed or ctx is
// done.
func (c *Converter) Run(ctx context.Context) (*Report, error) {
	docs, err := Discover(c.opts.Dir)
	if err != nil {
		return nil, err
	}
	c.log.Info("converting documents", "dir", c.opts.Dir, "documents", len(docs), "workers", c.opts.Workers)

	results := make([]DocumentResult, len(docs))
	var g errgroup.Group
	g.SetLimit(c.opts.Workers)
	for i, doc := range docs {
		if ctx.Err() != nil {
			break
		}
		g.Go(func() error {
			results[i] = c.convert(ctx, doc)
			return nil
		})
	}
	_ = g.Wait()

	report := &Report{Documents: results}
	if err := ctx.Err(); err != nil {
		for i := range report.Documents {
			if report.Documents[i].Document == "" {
				report.Documents[i] = DocumentResult{Document: docs[i], Err: err}
			}
		}
		return report, err
	}
	return report, nil
}

func (c *Converter) convert(ctx context.Context, doc string) DocumentResult {
	res := DocumentResult{Document: doc}
	log := c.log.With("document", filepath.Base(doc))

	if err := ctx.Err(); err != nil {
		res.Err = err
		return res
	}

	f, err := os.Open(doc)
	if err != nil {
		res.Err = err
		log.Error("failed to open document", "err", err)
		return res
	}
	defer f.Close()

	parsed, err := svg.ParseSvgFromReader(f, filepath.Base(doc), c.opts.Scale)
	if err != nil {
		res.Err = err
		log.Error("failed to parse document", "err", err)
		return res
	}

	rc, pathErrs := parsed.Regions()
	res.Paths = len(parsed.Paths)
	res.Regions = rc.Len()
	res.Diagnostics = len(rc.Diagnostics())
	for _, pe := range pathErrs {
		res.Failures = append(res.Failures, *pe)
		log.Warn("path skipped", "index", pe.Index, "id", pe.ID, "err", pe.Err)
	}

	if c.opts.DryRun {
		log.Info("converted", "regions", res.Regions, "failed", len(res.Failures))
		return res
	}
	res.Archive, err = c.store.Save(ctx, doc, rc)
	if err != nil {
		res.Err = err
		log.Error("failed to save regions", "err", err)
		return res
	}
	log.Info("saved", "archive", res.Archive, "regions", res.Regions, "failed", len(res.Failures))
	return res
}

// DocumentResult is the outcome of converting one document.
type DocumentResult struct {
	Document    string
	Archive     string
	Paths       int
	Regions     int
	Diagnostics int
	Failures    []svg.PathError
	Err         error
}

// OK reports whether the document was converted and stored.
func (r DocumentResult) OK() bool {
	return r.Err == nil
}

// Report summarizes a run. Documents are in discovery order.
type Report struct {
	Documents []DocumentResult
}

// Totals of a report.
type Totals struct {
	Documents       int
	FailedDocuments int
	Regions         int
	FailedRegions   int
	Diagnostics     int
}

// Totals adds up the per-document results.
func (r *Report) Totals() Totals {
	var t Totals
	for _, d := range r.Documents {
		t.Documents++
		if !d.OK() {
			t.FailedDocuments++
		}
		t.Regions += d.Regions
		t.FailedRegions += len(d.Failures)
		t.Diagnostics += d.Diagnostics
	}
	return t
}

// Err returns the document failures joined together, or nil.
func (r *Report) Err() error {
	var errs []error
	for _, d := range r.Documents {
		if d.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", filepath.Base(d.Document), d.Err))
		}
	}
	return errors.Join(errs...)
}
