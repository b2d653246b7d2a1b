package svg

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Tuple is an X,Y coordinate
type Tuple [2]float64

const whitespace = " \t\r\n"

// ParseTuple decodes exactly two numbers from text. The numbers are
// separated by any of the runes in delims.
func ParseTuple(text, delims string) (Tuple, error) {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return strings.ContainsRune(delims, r)
	})
	if len(fields) != 2 {
		return Tuple{}, fmt.Errorf("%w: %q has %d, want 2", ErrWrongArity, text, len(fields))
	}

	var t Tuple
	for i, f := range fields {
		n, err := parseNumber(strings.TrimSpace(f))
		if err != nil {
			return Tuple{}, err
		}
		t[i] = n
	}
	return t, nil
}

func parseNumber(s string) (float64, error) {
	n, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedNumber, s)
	}
	return n, nil
}
