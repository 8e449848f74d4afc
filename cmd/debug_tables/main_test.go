package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pdftables "github.com/pyhub-apps/pdftables-golang"
	"github.com/pyhub-apps/pdftables-golang/pkg/geometry"
	"github.com/pyhub-apps/pdftables-golang/pkg/table"
)

func TestBuildSettingsLayers(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("strategy: text\nsnap_tolerance: 2\nmin_words_vertical: 2\n"), 0o644))

	s, err := buildSettings(options{configPath: path})
	require.NoError(t, err)
	assert.Equal(t, pdftables.Text, s.Strategy)
	assert.Equal(t, 2.0, s.SnapTolerance)
	assert.Equal(t, 2, s.MinWordsVertical)
	assert.Equal(t, 3.0, s.JoinTolerance)

	s, err = buildSettings(options{configPath: path, strategy: "lines-strict", fallback: true, maxEdges: 50})
	require.NoError(t, err)
	assert.Equal(t, pdftables.LinesStrict, s.Strategy)
	assert.True(t, s.TextFallback)
	assert.Equal(t, 50, s.MaxEdges)
}

func TestBuildSettingsExplicit(t *testing.T) {
	s, err := buildSettings(options{columns: "0, 100,200", rows: "10,40"})
	require.NoError(t, err)
	assert.Equal(t, pdftables.Explicit, s.Strategy)
	assert.Equal(t, []float64{0, 100, 200}, s.ExplicitVerticalLines)
	assert.Equal(t, []float64{10, 40}, s.ExplicitHorizontalLines)

	_, err = buildSettings(options{columns: "0,x"})
	assert.Error(t, err)
}

func TestBuildSettingsRejectsBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("snap_tolerence: 2\n"), 0o644))

	_, err := buildSettings(options{configPath: path})
	assert.Error(t, err, "unknown keys are rejected")

	_, err = buildSettings(options{strategy: "stream"})
	assert.ErrorIs(t, err, table.ErrUnknownStrategy)

	_, err = buildSettings(options{configPath: filepath.Join(t.TempDir(), "missing.yaml")})
	assert.Error(t, err)
}

func TestPrintTable(t *testing.T) {
	tbl := table.NewTable(1, geometry.BBox{}, [][]string{{"Name", "Qty"}, {"Apple\nPie", "3"}})

	var buf bytes.Buffer
	printTable(&buf, tbl)

	assert.Equal(t, ""+
		"    +-----------+-----+\n"+
		"    | Name      | Qty |\n"+
		"    +-----------+-----+\n"+
		"    | Apple Pie | 3   |\n"+
		"    +-----------+-----+\n", buf.String())
}

func TestRunUsage(t *testing.T) {
	var stdout, stderr bytes.Buffer

	err := run(context.Background(), nil, &stdout, &stderr)
	assert.Error(t, err)
	assert.Contains(t, stderr.String(), "Usage: debug_tables")

	err = run(context.Background(), []string{"missing.pdf"}, &stdout, &stderr)
	assert.Error(t, err)
}

func TestParseCrop(t *testing.T) {
	box, err := parseCrop("")
	require.NoError(t, err)
	assert.Nil(t, box)

	box, err = parseCrop("10, 20,300,400")
	require.NoError(t, err)
	assert.Equal(t, &pdftables.BoundingBox{X0: 10, Top: 20, X1: 300, Bottom: 400}, box)

	_, err = parseCrop("1,2,3")
	assert.ErrorContains(t, err, "expected 4 coordinates")

	_, err = parseCrop("a,b,c,d")
	assert.Error(t, err)
}
