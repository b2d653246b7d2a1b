package svg

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	mt "github.com/rustyoz/Mtransform"
)

// Attributes holds the attributes of one path element, keyed by local
// name.
type Attributes map[string]string

// Lookup returns the value of a presentation property. A declaration in
// the style attribute wins over the attribute of the same name.
func (a Attributes) Lookup(name string) (string, bool) {
	if v, ok := splitStyle(a["style"])[name]; ok {
		return v, true
	}
	v, ok := a[name]
	return strings.TrimSpace(v), ok
}

// splitStyle parses "key: value; key: value" declarations.
func splitStyle(style string) map[string]string {
	props := make(map[string]string)
	for _, decl := range strings.Split(style, ";") {
		k, v, ok := strings.Cut(decl, ":")
		if !ok {
			continue
		}
		props[strings.TrimSpace(k)] = strings.TrimSpace(v)
	}
	return props
}

// Region is one converted path element: its outline and the color it is
// displayed with. Regions are immutable.
type Region struct {
	id       string
	outline  Outline
	color    colorful.Color
	hasColor bool
}

// NewRegion returns a region for o. A nil color leaves the region
// without one.
func NewRegion(id string, o Outline, color *colorful.Color) Region {
	r := Region{id: id, outline: o.clone()}
	if color != nil {
		r.color = *color
		r.hasColor = true
	}
	return r
}

// BuildRegion converts the attributes of a path element into a Region.
// The path data comes from "d", the color from "stroke" or, failing that,
// "fill". Missing either is an error wrapping ErrMissingAttribute. A
// color that is present but cannot be decoded leaves the region without
// a color and is reported as a diagnostic.
func BuildRegion(attrs Attributes) (Region, []Diagnostic, error) {
	d, ok := attrs["d"]
	if !ok {
		return Region{}, nil, fmt.Errorf("%w: d", ErrMissingAttribute)
	}
	paint, ok := attrs.Lookup("stroke")
	if !ok {
		if paint, ok = attrs.Lookup("fill"); !ok {
			return Region{}, nil, fmt.Errorf("%w: stroke or fill", ErrMissingAttribute)
		}
	}

	outline, diags := ParseOutline(d, false)
	r := Region{id: attrs["id"], outline: outline}

	c, err := parseColor(paint)
	if err != nil {
		diags = append(diags, Diagnostic{Err: err})
		Logger().Warn("svg: region has no color", "id", r.id, "err", err)
		return r, diags, nil
	}
	r.color, r.hasColor = c, true
	return r, diags, nil
}

func parseColor(s string) (colorful.Color, error) {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s = "#" + s[2:]
	}
	if len(s) != 4 && len(s) != 7 {
		return colorful.Color{}, fmt.Errorf("%w: %q", ErrMalformedColor, s)
	}
	c, err := colorful.Hex(s)
	if err != nil {
		return colorful.Color{}, fmt.Errorf("%w: %q: %v", ErrMalformedColor, s, err)
	}
	return c, nil
}

// ID returns the id attribute of the source element, if it had one.
func (r Region) ID() string {
	return r.id
}

// Outline returns a copy of the region's instructions.
func (r Region) Outline() Outline {
	return r.outline.clone()
}

// Len returns the number of instructions in the region.
func (r Region) Len() int {
	return len(r.outline)
}

// Closed reports whether the outline is closed.
func (r Region) Closed() bool {
	return r.outline.Closed()
}

// Color returns the display color and whether the region has one.
func (r Region) Color() (colorful.Color, bool) {
	return r.color, r.hasColor
}

// Transform returns a copy of the region with its outline mapped by t.
func (r Region) Transform(t mt.Transform) Region {
	r.outline = r.outline.Transform(t)
	return r
}

// RegionCollection holds the regions of one document in document order.
type RegionCollection struct {
	Name        string
	regions     []Region
	diagnostics []Diagnostic
}

// NewRegionCollection returns an empty collection for the named document.
func NewRegionCollection(name string) *RegionCollection {
	return &RegionCollection{Name: name}
}

// Add appends a region and the diagnostics produced while building it.
func (rc *RegionCollection) Add(r Region, diags ...Diagnostic) {
	rc.regions = append(rc.regions, r)
	rc.diagnostics = append(rc.diagnostics, diags...)
}

// Regions returns the regions in document order.
func (rc *RegionCollection) Regions() []Region {
	return append([]Region(nil), rc.regions...)
}

// Diagnostics returns every diagnostic recorded for the collection.
func (rc *RegionCollection) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), rc.diagnostics...)
}

// Len returns the number of regions.
func (rc *RegionCollection) Len() int {
	return len(rc.regions)
}
