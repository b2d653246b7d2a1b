package svg

import (
	"errors"
	"testing"

	"github.com/cheekybits/is"
)

func TestParseTuple(t *testing.T) {
	is := is.New(t)

	tup, err := ParseTuple("1.5 -2", whitespace)
	is.NoErr(err)
	is.Equal(tup, Tuple{1.5, -2})

	tup, err = ParseTuple("10, 20", ",")
	is.NoErr(err)
	is.Equal(tup, Tuple{10, 20})

	tup, err = ParseTuple("  3e2\t.5 ", whitespace)
	is.NoErr(err)
	is.Equal(tup, Tuple{300, 0.5})
}

func TestParseTupleErrors(t *testing.T) {
	is := is.New(t)

	for _, text := range []string{"", "1", "1 2 3", "1,2"} {
		_, err := ParseTuple(text, whitespace)
		is.True(errors.Is(err, ErrWrongArity))
	}

	for _, text := range []string{"x,1", "1,2px", "NaN,1", "1,Inf", "1,1e999"} {
		_, err := ParseTuple(text, ",")
		is.True(errors.Is(err, ErrMalformedNumber))
	}
}
