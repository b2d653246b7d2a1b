package svg

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// CommandKind is the closed set of path commands we understand.
type CommandKind int

const (
	UnknownCommand CommandKind = iota
	MoveCommand
	LineCommand
	CurveCommand
)

// commandLetters are the letters the path data is split at.
const commandLetters = "MLC"

// Command is a single command letter and its raw operand text.
type Command struct {
	Letter   rune
	Operands string
}

// Kind returns the kind of command c is.
func (c Command) Kind() CommandKind {
	switch c.Letter {
	case 'M':
		return MoveCommand
	case 'L':
		return LineCommand
	case 'C':
		return CurveCommand
	}
	return UnknownCommand
}

// SplitCommands splits path data right before every command letter, so
// that each chunk starts with its letter. Chunks keep source order.
// Anything in front of the first command letter becomes a chunk of its
// own.
func SplitCommands(d string) []Command {
	var cmds []Command
	start := 0
	for i, r := range d {
		if i > start && strings.ContainsRune(commandLetters, r) {
			cmds = appendCommand(cmds, d[start:i])
			start = i
		}
	}
	return appendCommand(cmds, d[start:])
}

func appendCommand(cmds []Command, chunk string) []Command {
	chunk = strings.TrimSpace(chunk)
	if chunk == "" {
		return cmds
	}
	letter, size := utf8.DecodeRuneInString(chunk)
	return append(cmds, Command{Letter: letter, Operands: chunk[size:]})
}

// TranslateCommand turns one command into drawing instructions. It never
// fails: problems are reported as diagnostics and the output degrades.
// A point that cannot be decoded is replaced by an invalid instruction, a
// curve whose operands are not whole segments produces nothing.
func TranslateCommand(c Command) ([]DrawingInstruction, []Diagnostic) {
	switch c.Kind() {
	case MoveCommand:
		// M takes "x y"; "x,y" is accepted as well.
		return translatePoint(c, whitespace+",", MoveTo)
	case LineCommand:
		return translatePoint(c, ",", LineTo)
	case CurveCommand:
		return translateCurve(c)
	}
	return nil, []Diagnostic{{
		Command:  c.Letter,
		Operands: c.Operands,
		Err:      fmt.Errorf("%w %q", ErrUnknownCommand, c.Letter),
	}}
}

func translatePoint(c Command, delims string, instr func(Tuple) DrawingInstruction) ([]DrawingInstruction, []Diagnostic) {
	t, err := ParseTuple(c.Operands, delims)
	if err != nil {
		d := invalidCoordinate(c, err)
		return []DrawingInstruction{Invalid(d.Err)}, []Diagnostic{d}
	}
	return []DrawingInstruction{instr(t)}, nil
}

func translateCurve(c Command) ([]DrawingInstruction, []Diagnostic) {
	groups := strings.Fields(c.Operands)
	if len(groups) == 0 || len(groups)%3 != 0 {
		return nil, []Diagnostic{{
			Command:  c.Letter,
			Operands: c.Operands,
			Err:      fmt.Errorf("%w: %d coordinate pairs is not a whole number of curve segments", ErrWrongArity, len(groups)),
		}}
	}

	var (
		instrs = make([]DrawingInstruction, 0, len(groups)/3)
		diags  []Diagnostic
	)
	for j := 0; j < len(groups)/3; j++ {
		var pts [3]Tuple
		var err error
		for i, g := range groups[j*3 : (j+1)*3] {
			if pts[i], err = ParseTuple(g, ","); err != nil {
				break
			}
		}
		if err != nil {
			d := invalidCoordinate(c, err)
			diags = append(diags, d)
			instrs = append(instrs, Invalid(d.Err))
			continue
		}
		instrs = append(instrs, CurveTo(pts[0], pts[1], pts[2]))
	}
	return instrs, diags
}

func invalidCoordinate(c Command, err error) Diagnostic {
	return Diagnostic{
		Command:  c.Letter,
		Operands: c.Operands,
		Err:      fmt.Errorf("%w: %w", ErrInvalidCoordinate, err),
	}
}
