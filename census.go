package svg

import (
	gl "github.com/rustyoz/genericlexer"
)

// TokenCensus counts what the raw path data is made of, independent of
// how it is converted.
type TokenCensus struct {
	Letters []string
	Numbers int
	// Truncated is set when the lexer stopped on input it could not
	// tokenize.
	Truncated bool
}

// Count returns how often letter occurs.
func (tc TokenCensus) Count(letter string) int {
	n := 0
	for _, l := range tc.Letters {
		if l == letter {
			n++
		}
	}
	return n
}

// Census lexes path data and counts its command letters and numbers.
func Census(d string) TokenCensus {
	var tc TokenCensus
	l, _ := gl.Lex("census", d)
	for {
		i := l.NextItem()
		switch {
		case i.Type == gl.ItemError:
			tc.Truncated = true
			return tc
		case i.Type == gl.ItemEOS:
			return tc
		case i.Type == gl.ItemLetter:
			tc.Letters = append(tc.Letters, i.Value)
		case i.Type == gl.ItemNumber:
			tc.Numbers++
		default:
		}
	}
}
