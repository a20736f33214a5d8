package cluster

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatRatio(t *testing.T) {
	tests := []struct {
		ratio Ratio
		value float64
		want  string
	}{
		{Ratio{Format: Percent, Precision: 1}, 0.1234, "12.3%"},
		{Ratio{Format: Percent, Precision: 2}, 0.1234, "12.34%"},
		{Ratio{Format: Percent, Precision: 2}, -0.05, "-5.00%"},
		{Ratio{Format: Decimal, Precision: 2}, 1.5, "1.50"},
		{Ratio{Format: Decimal, Precision: 2}, 12, "12.00"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatRatio(tt.ratio, tt.value))
	}
}

func TestFormatMean(t *testing.T) {
	assert.Equal(t, "20.0%", FormatMean(0.2))
	assert.Equal(t, "150.0%", FormatMean(1.5))
}

func TestHoverText_BUMN(t *testing.T) {
	schema, err := Lookup("bumn")
	require.NoError(t, err)

	r := Record{
		ID: "PT Telkom", Name: "PT Telkom", Cluster: 2,
		Ratios: map[string]float64{
			"opm": 0.25, "npm": 0.1234, "roe": 0.2, "roa": 0.05,
			"dar": 0.45, "der": 0.82, "tato": 0.6, "cr": 1.1,
		},
	}
	want := "<b>PT Telkom</b><br><b>Cluster 2</b><br><br>" +
		"📈 <b>Profitability / Return:</b><br>" +
		"• OPM: 25.0%<br>" +
		"• NPM: 12.34%<br>" +
		"• ROE: 20.00%<br>" +
		"• ROA: 5.00%<br>" +
		"📊 <b>Financial Strength / Leverage:</b><br>" +
		"• DAR: 45.0%<br>" +
		"• DER: 0.82<br>" +
		"📊 <b>Dupont / Earning Power:</b><br>" +
		"• TATO: 60.0%<br>" +
		"📊 <b>Liquidity:</b><br>" +
		"• CR: 1.10<br>"
	assert.Equal(t, want, schema.HoverText(r))
}

func TestHoverText_EscapesName(t *testing.T) {
	schema := testSchema(t)
	r := rec("A", 1, 0.1, 1)
	r.Name = `<script>alert(1)</script>Bumi & Co`
	text := schema.HoverText(r)
	assert.NotContains(t, text, "<script>")
	assert.Contains(t, text, "Bumi &amp; Co")
}

func TestHoverText_SkipsEmptyGroups(t *testing.T) {
	schema := testSchema(t)
	schema.Groups = append(schema.Groups, groupDividend)
	text := schema.HoverText(rec("A", 1, 0.1, 1))
	assert.NotContains(t, text, "Dividend")
}
