package svg

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	mt "github.com/rustyoz/Mtransform"
)

// inherited are the presentation attributes a path picks up from its
// enclosing groups when it does not set them itself.
var inherited = []string{"stroke", "fill"}

// Svg represents an SVG file and the path elements found in it, in
// document order.
type Svg struct {
	Name      string
	Paths     []Path
	Transform *mt.Transform
	scale     float64
}

// Group represents an SVG group (usually located in a 'g' XML element)
type Group struct {
	ID     string
	Attrs  Attributes
	Parent *Group
}

// Path is an SVG XML path element. Attrs holds its own attributes plus
// the stroke and fill it inherits.
type Path struct {
	ID    string
	D     string
	Attrs Attributes
	group *Group
}

func attributes(attrs []xml.Attr) Attributes {
	a := make(Attributes, len(attrs))
	for _, attr := range attrs {
		if attr.Name.Space != "" && attr.Name.Space != "http://www.w3.org/2000/svg" {
			continue
		}
		a[attr.Name.Local] = attr.Value
	}
	return a
}

func newPath(start xml.StartElement, g *Group) Path {
	attrs := attributes(start.Attr)
	for _, name := range inherited {
		if _, ok := attrs.Lookup(name); ok {
			continue
		}
		for p := g; p != nil; p = p.Parent {
			if v, ok := p.Attrs.Lookup(name); ok {
				attrs[name] = v
				break
			}
		}
	}
	return Path{ID: attrs["id"], D: attrs["d"], Attrs: attrs, group: g}
}

// UnmarshalXML implements the encoding.xml.Unmarshaler interface
//
// Path elements are collected at any depth. Groups are tracked so paths
// can inherit their presentation attributes; every other element is
// walked through.
func (s *Svg) UnmarshalXML(decoder *xml.Decoder, start xml.StartElement) error {
	if start.Name.Local != "svg" {
		return fmt.Errorf("root element is %q, not svg", start.Name.Local)
	}

	// groups[i] is the innermost group enclosing depth i.
	groups := []*Group{nil}
	for {
		token, err := decoder.Token()
		if err != nil {
			return err
		}

		switch tok := token.(type) {
		case xml.StartElement:
			g := groups[len(groups)-1]
			switch tok.Name.Local {
			case "g":
				attrs := attributes(tok.Attr)
				g = &Group{ID: attrs["id"], Attrs: attrs, Parent: g}
			case "path":
				s.Paths = append(s.Paths, newPath(tok, g))
			}
			groups = append(groups, g)

		case xml.EndElement:
			if len(groups) == 1 {
				return nil
			}
			groups = groups[:len(groups)-1]
		}
	}
}

func newSvg(name string, scale float64) *Svg {
	svg := &Svg{Name: name, Transform: mt.NewTransform()}
	if scale > 0 {
		svg.Transform.Scale(scale, scale)
		svg.scale = scale
	}
	if scale < 0 {
		svg.Transform.Scale(1.0/-scale, 1.0/-scale)
		svg.scale = 1.0 / -scale
	}
	return svg
}

// ParseSvg parses an SVG string into an SVG struct. A positive scale
// multiplies every coordinate, a negative one divides by -scale and zero
// leaves coordinates untouched.
func ParseSvg(str string, name string, scale float64) (*Svg, error) {
	return ParseSvgFromReader(strings.NewReader(str), name, scale)
}

// ParseSvgFromReader parses an SVG struct from an io.Reader
func ParseSvgFromReader(r io.Reader, name string, scale float64) (*Svg, error) {
	svg := newSvg(name, scale)
	if err := xml.NewDecoder(r).Decode(svg); err != nil {
		return nil, fmt.Errorf("ParseSvg Error: %v", err)
	}
	return svg, nil
}

// Regions converts every path element into a Region. A path that cannot
// be converted is reported and skipped; its siblings are still
// converted.
func (s *Svg) Regions() (*RegionCollection, []*PathError) {
	rc := NewRegionCollection(s.Name)
	var errs []*PathError
	for i, p := range s.Paths {
		r, diags, err := BuildRegion(p.Attrs)
		if err != nil {
			pe := &PathError{Index: i, ID: p.ID, Err: err}
			Logger().Warn("svg: skipping path", "document", s.Name, "index", i, "id", p.ID, "err", err)
			errs = append(errs, pe)
			continue
		}
		if s.scale != 0 {
			r = r.Transform(*s.Transform)
		}
		rc.Add(r, diags...)
	}
	return rc, errs
}
