package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	svg "github.com/vasalvit/svgroi"
	"github.com/vasalvit/svgroi/internal/roiset"
)

var documents = map[string]string{
	"a-good.svg":   `<svg><path id="one" d="M0 0L1,1Z" stroke="#ff0000"/><path id="two" d="M2 2C3,3 4,4 5,5" stroke="#00ff00"/></svg>`,
	"b-broken.svg": `<svg><path d="M0 0"`,
	"c-mixed.SVG":  `<svg><g><path id="kept" d="M0 0L1,x" stroke="#000"/><path id="dropped" d="M0 0L1,1"/></g></svg>`,
	"notes.txt":    `not a drawing`,
}

func folder(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range documents {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "nested.svg"), 0o755))
	return dir
}

func TestDiscover(t *testing.T) {
	dir := folder(t)
	docs, err := Discover(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a-good.svg"),
		filepath.Join(dir, "b-broken.svg"),
		filepath.Join(dir, "c-mixed.SVG"),
	}, docs)

	_, err = Discover(filepath.Join(dir, "missing"))
	require.Error(t, err)
}

func TestRun(t *testing.T) {
	dir := folder(t)
	out := filepath.Join(dir, roiset.DefaultDir)

	c := NewConverter(Options{Dir: dir, Workers: 2}, roiset.NewStore(out), nil)
	report, err := c.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Documents, 3)

	good := report.Documents[0]
	require.True(t, good.OK())
	require.Equal(t, 2, good.Regions)
	require.Equal(t, filepath.Join(out, "a-good.zip"), good.Archive)
	entries, err := roiset.Load(good.Archive)
	require.NoError(t, err)
	require.Len(t, entries, 2)
	require.Equal(t, "one", entries[0].Name)

	broken := report.Documents[1]
	require.False(t, broken.OK())
	require.Empty(t, broken.Archive)

	mixed := report.Documents[2]
	require.True(t, mixed.OK())
	require.Equal(t, 2, mixed.Paths)
	require.Equal(t, 1, mixed.Regions)
	require.Equal(t, 1, mixed.Diagnostics)
	require.Len(t, mixed.Failures, 1)
	require.Equal(t, "dropped", mixed.Failures[0].ID)
	require.ErrorIs(t, &mixed.Failures[0], svg.ErrMissingAttribute)
	require.FileExists(t, filepath.Join(out, "c-mixed.zip"))

	require.Equal(t, Totals{
		Documents:       3,
		FailedDocuments: 1,
		Regions:         3,
		FailedRegions:   1,
		Diagnostics:     1,
	}, report.Totals())
	require.ErrorContains(t, report.Err(), "b-broken.svg")
}

type recordingStore struct {
	mu    sync.Mutex
	saved []string
	fail  string
}

func (s *recordingStore) Save(_ context.Context, document string, rc *svg.RegionCollection) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if filepath.Base(document) == s.fail {
		return "", errors.New("disk full")
	}
	s.saved = append(s.saved, rc.Name)
	return document + ".zip", nil
}

func TestRunStoreFailure(t *testing.T) {
	dir := folder(t)
	store := &recordingStore{fail: "a-good.svg"}

	report, err := NewConverter(Options{Dir: dir, Workers: 4}, store, nil).Run(context.Background())
	require.NoError(t, err)
	require.ErrorContains(t, report.Documents[0].Err, "disk full")
	require.Equal(t, []string{"c-mixed.SVG"}, store.saved)
	require.Equal(t, 2, report.Totals().FailedDocuments)
}

func TestRunDryRun(t *testing.T) {
	dir := folder(t)
	store := &recordingStore{}

	report, err := NewConverter(Options{Dir: dir, DryRun: true}, store, nil).Run(context.Background())
	require.NoError(t, err)
	require.Empty(t, store.saved)
	require.Equal(t, 3, report.Totals().Regions)
	require.Empty(t, report.Documents[0].Archive)
}

func TestRunCanceled(t *testing.T) {
	dir := folder(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report, err := NewConverter(Options{Dir: dir}, &recordingStore{}, nil).Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Len(t, report.Documents, 3)
	for _, d := range report.Documents {
		require.ErrorIs(t, d.Err, context.Canceled)
		require.NotEmpty(t, d.Document)
	}
}
