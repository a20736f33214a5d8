package feed

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
)

const bumnDoc = `[
  {"NAMA_PERUSAHAAN": "PT Alpha", "PC1": 1.5, "PC2": -0.5, "CLUSTER": 1,
   "OPM": 0.2, "NPM": 0.1, "ROE": 0.15, "ROA": 0.05, "DAR": 0.6, "DER": 1.2, "TATO": 0.8, "CR": 1.1},
  {"NAMA_PERUSAHAAN": "PT Beta", "PC1": -2, "PC2": 0.25, "CLUSTER": 2,
   "OPM": -0.1, "NPM": 0.02, "ROE": 0.01, "ROA": 0.0, "DAR": 0.4, "DER": 0.7, "TATO": 0.3, "CR": 2.5,
   "KETERANGAN": "ignored"}
]`

func bumnSchema(t *testing.T) *cluster.Schema {
	t.Helper()
	s, err := cluster.Lookup("bumn")
	require.NoError(t, err)
	return s
}

// staticSource serves a fixed document and counts fetches.
type staticSource struct {
	data  []byte
	err   error
	calls int
}

func (s *staticSource) Fetch(_ context.Context) ([]byte, error) {
	s.calls++
	return s.data, s.err
}

func (s *staticSource) String() string { return "static" }
