package svg

import "fmt"

// InstructionType tells our path drawing library which function it has
// to call
type InstructionType int

// These are instruction types that we use with our path drawing library
const (
	InvalidInstruction InstructionType = iota
	MoveInstruction
	LineInstruction
	CurveInstruction
	CloseInstruction
)

func (k InstructionType) String() string {
	switch k {
	case InvalidInstruction:
		return "invalid"
	case MoveInstruction:
		return "moveto"
	case LineInstruction:
		return "lineto"
	case CurveInstruction:
		return "cubicto"
	case CloseInstruction:
		return "close"
	}
	return fmt.Sprintf("InstructionType(%d)", int(k))
}

// DrawingInstruction contains enough information that a simple drawing
// library can draw the shapes contained in an SVG file.
//
// M is set for move and line instructions, C1, C2 and T for curves.
// Err is set for invalid instructions and holds the decode failure that
// produced them.
type DrawingInstruction struct {
	Kind InstructionType
	M    *Tuple
	C1   *Tuple
	C2   *Tuple
	T    *Tuple
	Err  error
}

// MoveTo returns a move instruction to t.
func MoveTo(t Tuple) DrawingInstruction {
	return DrawingInstruction{Kind: MoveInstruction, M: &t}
}

// LineTo returns a line instruction to t.
func LineTo(t Tuple) DrawingInstruction {
	return DrawingInstruction{Kind: LineInstruction, M: &t}
}

// CurveTo returns a cubic bezier instruction with control points c1, c2
// ending at t.
func CurveTo(c1, c2, t Tuple) DrawingInstruction {
	return DrawingInstruction{Kind: CurveInstruction, C1: &c1, C2: &c2, T: &t}
}

// ClosePath returns a close instruction.
func ClosePath() DrawingInstruction {
	return DrawingInstruction{Kind: CloseInstruction}
}

// Invalid returns a marker for a point that could not be decoded.
func Invalid(err error) DrawingInstruction {
	return DrawingInstruction{Kind: InvalidInstruction, Err: err}
}

// Points returns the points carried by the instruction in replay order.
func (di DrawingInstruction) Points() []Tuple {
	switch di.Kind {
	case MoveInstruction, LineInstruction:
		return []Tuple{*di.M}
	case CurveInstruction:
		return []Tuple{*di.C1, *di.C2, *di.T}
	}
	return nil
}

func (di DrawingInstruction) String() string {
	switch di.Kind {
	case MoveInstruction, LineInstruction:
		return fmt.Sprintf("%s(%g,%g)", di.Kind, di.M[0], di.M[1])
	case CurveInstruction:
		return fmt.Sprintf("%s((%g,%g),(%g,%g),(%g,%g))", di.Kind,
			di.C1[0], di.C1[1], di.C2[0], di.C2[1], di.T[0], di.T[1])
	case InvalidInstruction:
		return fmt.Sprintf("invalid(%v)", di.Err)
	}
	return di.Kind.String()
}
