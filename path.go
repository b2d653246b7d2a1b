package svg

import (
	"strings"

	mt "github.com/rustyoz/Mtransform"
)

// Outline is the ordered instruction stream traced by one path element.
type Outline []DrawingInstruction

// ParseOutline converts path data into an outline. A trailing Z marks
// the path closed, as does closed. The outline is always returned;
// commands that could not be converted are reported as diagnostics and
// leave either nothing or invalid instructions behind.
//
// Only the final Z is honored. A move in the middle of the data starts a
// new subpath but the earlier subpath is not closed.
func ParseOutline(d string, closed bool) (Outline, []Diagnostic) {
	d = strings.TrimSpace(d)
	if strings.HasSuffix(d, "Z") || strings.HasSuffix(d, "z") {
		d = d[:len(d)-1]
		closed = true
	}

	var (
		o     Outline
		diags []Diagnostic
	)
	for _, c := range SplitCommands(d) {
		instrs, ds := TranslateCommand(c)
		o = append(o, instrs...)
		diags = append(diags, ds...)
	}
	if closed {
		o = append(o, ClosePath())
	}

	for _, diag := range diags {
		Logger().Warn("svg: path data degraded", "command", string(diag.Command), "err", diag.Err)
	}
	return o, diags
}

// Closed reports whether the outline ends with a close instruction.
func (o Outline) Closed() bool {
	return len(o) > 0 && o[len(o)-1].Kind == CloseInstruction
}

// Valid reports whether the outline has no invalid instructions.
func (o Outline) Valid() bool {
	for _, di := range o {
		if di.Kind == InvalidInstruction {
			return false
		}
	}
	return true
}

// Transform returns a copy of the outline with every point mapped by t.
// Close and invalid instructions are kept as they are.
func (o Outline) Transform(t mt.Transform) Outline {
	apply := func(p *Tuple) *Tuple {
		x, y := t.Apply(p[0], p[1])
		return &Tuple{x, y}
	}

	out := make(Outline, len(o))
	for i, di := range o {
		switch di.Kind {
		case MoveInstruction, LineInstruction:
			di.M = apply(di.M)
		case CurveInstruction:
			di.C1 = apply(di.C1)
			di.C2 = apply(di.C2)
			di.T = apply(di.T)
		}
		out[i] = di
	}
	return out
}

func (o Outline) clone() Outline {
	if o == nil {
		return nil
	}
	out := make(Outline, len(o))
	copy(out, o)
	return out
}
