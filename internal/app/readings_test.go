package app_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest"
	"go.uber.org/zap/zaptest/observer"

	"tabstat/internal/app"
	"tabstat/internal/domain"
	"tabstat/internal/infrastructure"
)

func TestResolveArgs(t *testing.T) {
	tests := []struct {
		name string
		args []string
		want app.Invocation
	}{
		{"no arguments", nil, app.Invocation{Help: true}},
		{"help", []string{"--help", "a.csv"}, app.Invocation{Help: true}},
		{"short help", []string{"-h"}, app.Invocation{Help: true}},
		{"max with files", []string{"--max", "a.csv", "b.csv"},
			app.Invocation{Action: domain.ActionMax, Sources: []string{"a.csv", "b.csv"}}},
		{"min from stdin", []string{"--min"},
			app.Invocation{Action: domain.ActionMin, Sources: []string{}}},
		{"short mean", []string{"-m", "a.csv"},
			app.Invocation{Action: domain.ActionMean, Sources: []string{"a.csv"}}},
		{"default shifts files", []string{"a.csv", "b.csv"},
			app.Invocation{Action: domain.ActionMean, Sources: []string{"a.csv", "b.csv"}, Defaulted: true}},
		{"dash is stdin", []string{"-"},
			app.Invocation{Action: domain.ActionMean, Sources: []string{"-"}, Defaulted: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := app.ResolveArgs(tt.args)
			require.NoError(t, err)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ResolveArgs(%q) mismatch (-want +got):\n%s", tt.args, diff)
			}
		})
	}
}

func TestResolveArgsUnknownAction(t *testing.T) {
	_, err := app.ResolveArgs([]string{"--median", "a.csv"})
	require.ErrorIs(t, err, domain.ErrUnknownAction)
	assert.Contains(t, err.Error(), "--median")
}

type harness struct {
	readings *app.Readings
	out      bytes.Buffer
	errOut   bytes.Buffer
}

func newHarness(t *testing.T, stdin string, logger *zap.Logger) *harness {
	t.Helper()
	if logger == nil {
		logger = zaptest.NewLogger(t)
	}

	h := &harness{}
	h.readings = app.NewReadings(logger,
		infrastructure.NewCSVTableReader(logger, ','),
		infrastructure.NewCSVTableWriter(logger, ','),
		infrastructure.FormatShortest,
		app.Streams{In: strings.NewReader(stdin), Out: &h.out, Err: &h.errOut})
	return h
}

func (h *harness) run(t *testing.T, args ...string) int {
	t.Helper()
	inv, err := app.ResolveArgs(args)
	require.NoError(t, err)
	return h.readings.Run("readings", inv)
}

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestReadingsActions(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "a.csv", "1,2,3\n4,5,6\n")

	tests := []struct {
		action string
		want   string
	}{
		{"--mean", "2.0\n5.0\n"},
		{"--min", "1.0\n4.0\n"},
		{"--max", "3.0\n6.0\n"},
	}

	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			h := newHarness(t, "", nil)
			assert.Equal(t, 0, h.run(t, tt.action, path))
			assert.Equal(t, tt.want, h.out.String())
			assert.Empty(t, h.errOut.String())
		})
	}
}

func TestReadingsStdin(t *testing.T) {
	h := newHarness(t, "1,2,3\n4,5,6\n", nil)

	assert.Equal(t, 0, h.run(t, "--max"))
	assert.Equal(t, "3.0\n6.0\n", h.out.String())
}

func TestReadingsStdinTwice(t *testing.T) {
	h := newHarness(t, "1,3\n", nil)

	assert.Equal(t, 0, h.run(t, "--mean", "-", "-"))
	assert.Equal(t, "2.0\n", h.out.String())
}

func TestReadingsDefaultAction(t *testing.T) {
	dir := t.TempDir()
	a := writeCSV(t, dir, "a.csv", "1,2,3\n")
	b := writeCSV(t, dir, "b.csv", "10,20\n0,1\n")

	core, logs := observer.New(zap.InfoLevel)
	h := newHarness(t, "", zap.New(core))

	assert.Equal(t, 0, h.run(t, a, b))
	assert.Equal(t, "2.0\n15.0\n0.5\n", h.out.String())
	assert.Equal(t, 1, logs.FilterMessage("No action has been provided, using default").Len())
}

func TestReadingsContinuesAfterFailure(t *testing.T) {
	dir := t.TempDir()
	bad := writeCSV(t, dir, "bad.csv", "1,2,x\n")
	jagged := writeCSV(t, dir, "jagged.csv", "1,2\n3\n")
	good := writeCSV(t, dir, "good.csv", "4,6\n")
	missing := filepath.Join(dir, "missing.csv")

	h := newHarness(t, "", nil)
	assert.Equal(t, 1, h.run(t, "--mean", bad, jagged, missing, good))

	assert.Equal(t, "5.0\n", h.out.String())
	errLines := strings.Split(strings.TrimSpace(h.errOut.String()), "\n")
	require.Len(t, errLines, 3)
	assert.Contains(t, errLines[0], "bad.csv: ParseError")
	assert.Contains(t, errLines[1], "jagged.csv: ShapeMismatch")
	assert.Contains(t, errLines[2], "missing.csv: IOError")
}

func TestReadingsHelp(t *testing.T) {
	h := newHarness(t, "1,2\n", nil)

	assert.Equal(t, 0, h.run(t))
	assert.Equal(t, app.Usage("readings"), h.out.String())
	assert.Contains(t, h.out.String(), "--min --mean --max")
	assert.Contains(t, h.out.String(), "stdin")
	assert.Empty(t, h.errOut.String())
}

func TestReadingsEmptyInput(t *testing.T) {
	h := newHarness(t, "", nil)

	assert.Equal(t, 0, h.run(t, "--min"))
	assert.Empty(t, h.out.String())
}

func TestReadingsIdempotent(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "a.csv", "0.1,0.2,0.7\n1e-5,3,9\n")

	first := newHarness(t, "", nil)
	second := newHarness(t, "", nil)
	first.run(t, "--mean", path)
	second.run(t, "--mean", path)

	assert.Equal(t, first.out.Bytes(), second.out.Bytes())
}

func TestSources(t *testing.T) {
	stdin := strings.NewReader("")

	sources := app.Sources(nil, stdin)
	require.Len(t, sources, 1)
	assert.Equal(t, domain.StdinName, sources[0].Name)

	sources = app.Sources([]string{"a.csv", "-"}, stdin)
	require.Len(t, sources, 2)
	assert.Equal(t, "a.csv", sources[0].Name)
	assert.Equal(t, domain.StdinName, sources[1].Name)
}
