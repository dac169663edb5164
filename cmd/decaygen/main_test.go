package main

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/decaygen/rootio"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var buf bytes.Buffer
	app := newApp()
	app.Writer = &buf
	err := app.Run(append([]string{"decaygen", "--verbosity", "error"}, args...))
	return buf.String(), err
}

func TestPathsCommand(t *testing.T) {
	out, err := run(t, "paths", "--mode", "DsstPi", "--events", "1000")
	require.NoError(t, err)
	assert.Contains(t, out, "events=950")
	assert.Contains(t, out, "events=50")
	assert.Contains(t, out, "total bf=1")
}

func TestPrintCommand(t *testing.T) {
	out, err := run(t, "print", "--mode", "DsK")
	require.NoError(t, err)
	assert.Contains(t, out, "node 0: 5.36630 -> 1.96849 + 0.49368")
}

func TestGenerateAndKFactor(t *testing.T) {
	dir := t.TempDir()
	events := filepath.Join(dir, "eventtree.root")
	metrics := filepath.Join(dir, "decaygen.prom")

	_, err := run(t, "generate", "--mode", "DsstPi", "--events", "200", "--momentum", "80",
		"--eta-min", "2", "--eta-max", "5", "--workers", "2", "--seed", "5",
		"--output", events, "--metrics-file", metrics)
	require.NoError(t, err)

	rows, err := rootio.ReadRows(events)
	require.NoError(t, err)
	assert.Len(t, rows, 200)

	raw, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(raw), `decaygen_events_generated_total{path="0"} 190`)

	hist := filepath.Join(dir, "hdump.root")
	_, err = run(t, "kfactor", "--input", events, "--output", hist)
	require.NoError(t, err)
	_, err = os.Stat(hist)
	assert.NoError(t, err)
}

func TestGenerateWithConfig(t *testing.T) {
	dir := t.TempDir()
	job := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(job, []byte("masses: [5.367, 1.969, 0.494]\nevents: 100\nmomentum: {fixed: 50}\n"), 0o600))
	events := filepath.Join(dir, "out.root")

	_, err := run(t, "generate", "--config", job, "--output", events)
	require.NoError(t, err)
	rows, err := rootio.ReadRows(events)
	require.NoError(t, err)
	require.Len(t, rows, 100)
	assert.Len(t, rows[0].Momenta, 3)
	assert.Equal(t, 50.0, rows[0].Momenta[0].Pz())
	assert.Equal(t, 1.0, rows[0].Weight)
}

func TestConfigWithoutMomentum(t *testing.T) {
	dir := t.TempDir()
	job := filepath.Join(dir, "job.yaml")
	require.NoError(t, os.WriteFile(job, []byte("mode: DsK\nevents: 10\n"), 0o600))

	out, err := run(t, "paths", "--config", job)
	require.NoError(t, err)
	assert.Contains(t, out, "events=10")

	out, err = run(t, "print", "--config", job)
	require.NoError(t, err)
	assert.Contains(t, out, "node 0: 5.36630 -> 1.96849 + 0.49368")

	events := filepath.Join(dir, "out.root")
	_, err = run(t, "generate", "--config", job, "--output", events)
	require.NoError(t, err)
	rows, err := rootio.ReadRows(events)
	require.NoError(t, err)
	require.Len(t, rows, 10)
	assert.Equal(t, 4.0, rows[0].Momenta[0].Pz())
}

func TestRecordMomentaReplay(t *testing.T) {
	dir := t.TempDir()
	momenta := filepath.Join(dir, "momenta.root")
	_, err := run(t, "generate", "--mode", "DsPi", "--events", "20", "--momentum", "30",
		"--record-momenta", momenta)
	require.NoError(t, err)

	job := filepath.Join(dir, "replay.yaml")
	raw := fmt.Sprintf("mode: DsK\nevents: 5\nmomentum:\n  root: {file: %q, tree: tmomp, branch: momentum}\n", momenta)
	require.NoError(t, os.WriteFile(job, []byte(raw), 0o600))

	events := filepath.Join(dir, "out.root")
	_, err = run(t, "generate", "--config", job, "--output", events)
	require.NoError(t, err)
	rows, err := rootio.ReadRows(events)
	require.NoError(t, err)
	require.Len(t, rows, 5)
	for _, r := range rows {
		assert.InDelta(t, 30.0, r.Momenta[0].Pz(), 1e-9)
	}
}

type failingCloser struct{ err error }

func (c failingCloser) Close() error { return c.err }

func TestCloseIntoReportsCloseError(t *testing.T) {
	flush := errors.New("flush failed")

	var err error
	closeInto(&err, failingCloser{err: flush}, "eventtree.root")
	assert.ErrorIs(t, err, flush)
	assert.Contains(t, err.Error(), "eventtree.root")

	first := errors.New("fill failed")
	err = first
	closeInto(&err, failingCloser{err: flush}, "eventtree.root")
	assert.Equal(t, first, err)

	err = nil
	closeInto(&err, failingCloser{}, "eventtree.root")
	assert.NoError(t, err)
}

func TestUnknownMode(t *testing.T) {
	_, err := run(t, "print", "--mode", "nope")
	assert.Error(t, err)
}
