package main

import (
	"fmt"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gorilla/sessions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
	"github.com/rifqyarifani/klasterisasi-bumn/feed"
)

func TestStatsPanel(t *testing.T) {
	deps := testDeps(t, stubSource{data: testDoc})
	records, err := feed.Decode(deps.schema, []byte(testDoc))
	require.NoError(t, err)
	summaries, err := cluster.Aggregate(deps.schema, records)
	require.NoError(t, err)

	panel := statsPanel(deps.schema, summaries)
	require.Len(t, panel, 3)
	assert.Equal(t, []int{4, 2, 1}, []int{panel[0].Label, panel[1].Label, panel[2].Label})
	assert.Equal(t, template.CSS("rgb(128, 0, 128)"), panel[2].Color)
	assert.Equal(t, 1, panel[2].Count)
	require.Len(t, panel[2].Means, 8)
	assert.Equal(t, "OPM", panel[2].Means[0].Label)
	assert.Equal(t, 0.2, panel[2].Means[0].Value)
	assert.Equal(t, "CR", panel[2].Means[7].Label)
}

func TestVisualPieces(t *testing.T) {
	schema, err := cluster.Lookup("bumn")
	require.NoError(t, err)
	series, err := cluster.BuildSeries(schema, nil, "opm")
	require.NoError(t, err)

	pieces := visualPieces(series)
	require.Len(t, pieces, 4)
	for i, p := range pieces {
		label := float32(i + 1)
		assert.InDelta(t, label-0.5, p.Min, 1e-6)
		assert.InDelta(t, label+0.5, p.Max, 1e-6)
		assert.Equal(t, schema.Palette[i], p.Color)
	}
}

func TestSizeMetric(t *testing.T) {
	deps := testDeps(t, stubSource{data: testDoc})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	metric, err := sizeMetric(req, deps)
	require.NoError(t, err)
	assert.Equal(t, "opm", metric)

	deps.session = sessions.NewSession(deps.cookieStore, sessionName)
	deps.session.Values[sessionSizeKey] = "der"
	metric, err = sizeMetric(req, deps)
	require.NoError(t, err)
	assert.Equal(t, "der", metric)

	// a stale remembered metric falls back to the default
	deps.session.Values[sessionSizeKey] = "gpm"
	metric, err = sizeMetric(req, deps)
	require.NoError(t, err)
	assert.Equal(t, "opm", metric)

	metric, err = sizeMetric(httptest.NewRequest(http.MethodGet, "/?size=npm", nil), deps)
	require.NoError(t, err)
	assert.Equal(t, "npm", metric)

	_, err = sizeMetric(httptest.NewRequest(http.MethodGet, "/?size=", nil), deps)
	assert.ErrorIs(t, err, cluster.ErrUnknownMetric)
}

func TestStatusForError(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{cluster.ErrUnknownMetric, http.StatusBadRequest},
		{fmt.Errorf("record 1: %w", cluster.ErrInvalidRecord), http.StatusUnprocessableEntity},
		{cluster.ErrSchemaMismatch, http.StatusUnprocessableEntity},
		{errChartNeedsSpread, http.StatusUnprocessableEntity},
		{fmt.Errorf("s3: %w", feed.ErrFetchFailed), http.StatusBadGateway},
		{feed.ErrEmptyDocument, http.StatusBadGateway},
		{errUnknownEndpoint, http.StatusNotFound},
		{fmt.Errorf("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusForError(tt.err), tt.err.Error())
	}
}

func TestTemplateFuncs(t *testing.T) {
	funcs := templateFuncs("en")
	pct := funcs["pct"].(func(float64) string)
	assert.Equal(t, "12.3%", pct(0.123))
	assert.Equal(t, "-5.0%", pct(-0.05))

	html := markdownToHTML("**PCA** <script>alert(1)</script>")
	assert.Contains(t, string(html), "<strong>PCA</strong>")
	assert.NotContains(t, string(html), "<script>")
}

func TestContentSecurityPolicy(t *testing.T) {
	csp := contentSecurityPolicy("abc")
	assert.Contains(t, csp, "script-src 'self' 'nonce-abc' https://go-echarts.github.io;")
	assert.Contains(t, csp, "report-uri /internal/cspviolations")
}
