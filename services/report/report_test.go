package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
	"github.com/rifqyarifani/klasterisasi-bumn/feed"
)

const testDoc = `[
  {"NAMA_PERUSAHAAN": "PT Alpha", "PC1": 1.5, "PC2": -0.5, "CLUSTER": 1,
   "OPM": 0.2, "NPM": 0.1, "ROE": 0.15, "ROA": 0.05, "DAR": 0.6, "DER": 1.2, "TATO": 0.8, "CR": 1.1},
  {"NAMA_PERUSAHAAN": "PT Beta", "PC1": -2, "PC2": 0.25, "CLUSTER": 1,
   "OPM": 0.4, "NPM": 0.02, "ROE": 0.01, "ROA": 0.0, "DAR": 0.4, "DER": 0.7, "TATO": 0.3, "CR": 2.5},
  {"NAMA_PERUSAHAAN": "PT Gamma", "PC1": 0.5, "PC2": 1.0, "CLUSTER": 3,
   "OPM": 0.1, "NPM": 0.3, "ROE": 0.2, "ROA": 0.1, "DAR": 0.5, "DER": 1.0, "TATO": 0.9, "CR": 1.5}
]`

func testLoader(t *testing.T) *feed.Loader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "data.json")
	require.NoError(t, os.WriteFile(path, []byte(testDoc), 0o644))

	schema, err := cluster.Lookup("bumn")
	require.NoError(t, err)
	return &feed.Loader{Schema: schema, Source: feed.FileSource{Path: path}}
}

func testContext() context.Context {
	logger := zerolog.New(nil).Level(zerolog.Disabled)
	return logger.WithContext(context.Background())
}

func TestReport_Table(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, report(testContext(), testLoader(t), &out, "table", true))

	lines := strings.Split(out.String(), "\n")
	assert.Contains(t, lines[0], "CLUSTER")
	assert.Contains(t, lines[0], "AVG OPM")
	assert.Equal(t, "3", strings.Fields(lines[1])[0])
	assert.Equal(t, "1", strings.Fields(lines[2])[0])
	assert.Equal(t, "2", strings.Fields(lines[2])[1])
	assert.Equal(t, "30.0%", strings.Fields(lines[2])[2])
	assert.Contains(t, out.String(), "Cluster 1\n  PT Alpha\n  PT Beta\n")
}

func TestReport_CSV(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, report(testContext(), testLoader(t), &out, "csv", false))

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "cluster,count,opm,npm,roe,roa,dar,der,tato,cr", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], "3,1,0.1,"))
	assert.True(t, strings.HasPrefix(lines[2], "1,2,"))
}

func TestReport_JSON(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, report(testContext(), testLoader(t), &out, "json", false))

	var summaries []cluster.Summary
	require.NoError(t, json.Unmarshal(out.Bytes(), &summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, 3, summaries[0].Cluster)
	assert.Equal(t, []cluster.Member{{ID: "PT Alpha", Name: "PT Alpha"}, {ID: "PT Beta", Name: "PT Beta"}}, summaries[1].Members)
}

func TestReport_Errors(t *testing.T) {
	var out bytes.Buffer
	err := report(testContext(), testLoader(t), &out, "xml", false)
	assert.ErrorContains(t, err, "unknown format")

	loader := testLoader(t)
	loader.Source = feed.FileSource{Path: filepath.Join(t.TempDir(), "missing.json")}
	err = report(testContext(), loader, &out, "table", false)
	assert.ErrorIs(t, err, feed.ErrFetchFailed)
}
