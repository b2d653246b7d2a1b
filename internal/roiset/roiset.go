// Package roiset stores the regions of a document as a zip archive with
// one JSON entry per region.
package roiset

import (
	"archive/zip"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasb-eyer/go-colorful"

	svg "github.com/vasalvit/svgroi"
)

// DefaultDir is the subdirectory of the input folder archives are written
// to.
const DefaultDir = "ROI Sets"

// Entry is the stored form of one region.
type Entry struct {
	Name         string        `json:"name"`
	Color        string        `json:"color,omitempty"`
	Closed       bool          `json:"closed"`
	Instructions []Instruction `json:"instructions"`
}

// Instruction is the stored form of a drawing instruction.
type Instruction struct {
	Op     string      `json:"op"`
	Points []svg.Tuple `json:"points,omitempty"`
	Error  string      `json:"error,omitempty"`
}

var (
	ops        = map[string]svg.InstructionType{}
	pointCount = map[svg.InstructionType]int{
		svg.MoveInstruction:  1,
		svg.LineInstruction:  1,
		svg.CurveInstruction: 3,
	}
)

func init() {
	for _, k := range []svg.InstructionType{
		svg.InvalidInstruction,
		svg.MoveInstruction,
		svg.LineInstruction,
		svg.CurveInstruction,
		svg.CloseInstruction,
	} {
		ops[k.String()] = k
	}
}

// NewEntry returns the stored form of r.
func NewEntry(r svg.Region) Entry {
	e := Entry{Name: r.ID(), Closed: r.Closed()}
	if c, ok := r.Color(); ok {
		e.Color = c.Hex()
	}
	for _, di := range r.Outline() {
		in := Instruction{Op: di.Kind.String(), Points: di.Points()}
		if di.Err != nil {
			in.Error = di.Err.Error()
		}
		e.Instructions = append(e.Instructions, in)
	}
	return e
}

// Region rebuilds the region e was made from. Invalid instructions get
// back an error carrying the stored message.
func (e Entry) Region() (svg.Region, error) {
	o := make(svg.Outline, 0, len(e.Instructions))
	for i, in := range e.Instructions {
		kind, ok := ops[in.Op]
		if !ok {
			return svg.Region{}, fmt.Errorf("instruction %d: unknown op %q", i, in.Op)
		}
		if want := pointCount[kind]; len(in.Points) != want {
			return svg.Region{}, fmt.Errorf("instruction %d: %s has %d points, want %d", i, in.Op, len(in.Points), want)
		}
		switch kind {
		case svg.MoveInstruction:
			o = append(o, svg.MoveTo(in.Points[0]))
		case svg.LineInstruction:
			o = append(o, svg.LineTo(in.Points[0]))
		case svg.CurveInstruction:
			o = append(o, svg.CurveTo(in.Points[0], in.Points[1], in.Points[2]))
		case svg.CloseInstruction:
			o = append(o, svg.ClosePath())
		case svg.InvalidInstruction:
			o = append(o, svg.Invalid(errors.New(in.Error)))
		}
	}

	if e.Color == "" {
		return svg.NewRegion(e.Name, o, nil), nil
	}
	c, err := colorful.Hex(e.Color)
	if err != nil {
		return svg.Region{}, fmt.Errorf("color: %w", err)
	}
	return svg.NewRegion(e.Name, o, &c), nil
}

// ArchivePath returns where the archive for document is written: its
// base name with the extension replaced by .zip, inside outDir.
func ArchivePath(outDir, document string) string {
	base := filepath.Base(document)
	return filepath.Join(outDir, strings.TrimSuffix(base, filepath.Ext(base))+".zip")
}

func entryName(i int, r svg.Region) string {
	name := r.ID()
	if name == "" {
		name = "region"
	}
	name = strings.NewReplacer("/", "_", "\\", "_").Replace(name)
	return fmt.Sprintf("%04d-%s.json", i+1, name)
}

// Store writes region archives into a directory.
type Store struct {
	Dir string
}

// NewStore returns a store writing into dir. The directory is created on
// first use.
func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Save writes the collection of document and returns the archive path.
// The archive is written to a temporary file first, an existing archive
// is only replaced once the new one is complete.
func (s *Store) Save(ctx context.Context, document string, rc *svg.RegionCollection) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", s.Dir, err)
	}

	path := ArchivePath(s.Dir, document)
	f, err := os.CreateTemp(s.Dir, ".roiset-*")
	if err != nil {
		return "", fmt.Errorf("failed to create archive: %w", err)
	}
	defer os.Remove(f.Name())

	if err := write(ctx, f, rc); err != nil {
		f.Close()
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := os.Rename(f.Name(), path); err != nil {
		return "", fmt.Errorf("failed to move archive into place: %w", err)
	}
	return path, nil
}

func write(ctx context.Context, w io.Writer, rc *svg.RegionCollection) error {
	zw := zip.NewWriter(w)
	for i, r := range rc.Regions() {
		if err := ctx.Err(); err != nil {
			return err
		}
		ew, err := zw.Create(entryName(i, r))
		if err != nil {
			return err
		}
		enc := json.NewEncoder(ew)
		enc.SetIndent("", "  ")
		if err := enc.Encode(NewEntry(r)); err != nil {
			return err
		}
	}
	return zw.Close()
}

// Load reads every entry of an archive, in archive order.
func Load(path string) ([]Entry, error) {
	zr, err := zip.OpenReader(path)
	if err != nil {
		return nil, err
	}
	defer zr.Close()

	entries := make([]Entry, 0, len(zr.File))
	for _, f := range zr.File {
		e, err := readEntry(f)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func readEntry(f *zip.File) (Entry, error) {
	rc, err := f.Open()
	if err != nil {
		return Entry{}, err
	}
	defer rc.Close()

	var e Entry
	if err := json.NewDecoder(rc).Decode(&e); err != nil {
		return Entry{}, err
	}
	return e, nil
}
