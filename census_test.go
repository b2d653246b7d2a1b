package svg

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCensus(t *testing.T) {
	tc := Census("M 10 20 L 30 40")
	require.False(t, tc.Truncated)
	require.Equal(t, 1, tc.Count("M"))
	require.Equal(t, 1, tc.Count("L"))
	require.Equal(t, 0, tc.Count("C"))
	require.Equal(t, 4, tc.Numbers)
}

func TestCensusEmpty(t *testing.T) {
	tc := Census("")
	require.Empty(t, tc.Letters)
	require.Zero(t, tc.Numbers)
}
