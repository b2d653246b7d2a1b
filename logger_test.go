package svg

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	ParseOutline("M0 0L1,1", false)
	require.Empty(t, buf.String())

	ParseOutline("Q1 1M0 0", false)
	require.Contains(t, buf.String(), "level=WARN")
	require.Contains(t, buf.String(), "unknown command")

	SetLogger(nil)
	buf.Reset()
	ParseOutline("Q1 1M0 0", false)
	require.Empty(t, buf.String())
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
