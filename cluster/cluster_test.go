package cluster

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// testSchema is a trimmed two-ratio schema so fixtures stay short.
func testSchema(t *testing.T) *Schema {
	t.Helper()
	s := &Schema{
		Name:          "test",
		Clusters:      3,
		DefaultMetric: "roe",
		Ratios: []Ratio{
			{Key: "roe", Field: "ROE", Label: "ROE", Group: "profitability", Format: Percent, Precision: 2},
			{Key: "der", Field: "DER", Label: "DER", Group: "leverage", Format: Decimal, Precision: 2},
		},
		Groups:  []Group{groupProfitability, groupLeverage},
		Palette: DefaultPalette,
	}
	require.NoError(t, s.Validate())
	return s
}

func rec(id string, label int, roe, der float64) Record {
	return Record{
		ID:      id,
		Name:    "PT " + id,
		PC1:     float64(len(id)),
		PC2:     -float64(label),
		Cluster: label,
		Ratios:  map[string]float64{"roe": roe, "der": der},
	}
}
