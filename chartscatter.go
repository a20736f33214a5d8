package main

import (
	"html/template"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
)

const scatterChartID = "klaster_scatter"

// chartScatter draws the PC1/PC2 scatter. Each point carries [PC1, PC2, size, label]; the
// symbol size is read from value[2] and the piecewise visual map colours on the last value.
func chartScatter(deps *Dependencies, schema *cluster.Schema, series cluster.Series) (template.HTML, []string) {
	points := make([]opts.ScatterData, len(series.X))
	for i := range series.X {
		points[i] = opts.ScatterData{
			Name:  series.Text[i],
			Value: []float64{series.X[i], series.Y[i], series.Size[i], series.Color[i]},
		}
	}

	ratio, _ := schema.Ratio(series.Metric)

	scatter := charts.NewScatter()
	scatter.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:      "100%",
			Height:     "640px",
			ChartID:    scatterChartID,
			AssetsHost: echartsAssetsHost,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Principal Component Analysis",
			Subtitle: "Ukuran titik: " + ratio.Title,
		}),
		charts.WithTooltipOpts(opts.Tooltip{
			Show:      opts.Bool(true),
			Trigger:   "item",
			Formatter: opts.FuncOpts("function (p) { return p.name; }"),
		}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Type:   "piecewise",
			Min:    float32(series.CMin),
			Max:    float32(series.CMax),
			Pieces: visualPieces(series),
			Show:   opts.Bool(true),
		}),
		charts.WithXAxisOpts(opts.XAxis{Name: "PC1", Type: "value", Scale: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Name: "PC2", Type: "value", Scale: opts.Bool(true)}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(false)}),
	)
	scatter.AddSeries(series.Metric, points,
		charts.WithScatterChartOpts(opts.ScatterChart{
			SymbolSize: opts.FuncOpts("function (val) { return val[2]; }"),
		}),
	)

	return renderToHtml(deps, scatter, func() []string { return scatter.JSAssets.Values })
}

// visualPieces maps each colourscale band back onto label values: one piece per cluster.
func visualPieces(series cluster.Series) []opts.Piece {
	span := series.CMax - series.CMin
	pieces := make([]opts.Piece, 0, len(series.Colorscale)/2)
	for i := 0; i+1 < len(series.Colorscale); i += 2 {
		lo, hi := series.Colorscale[i], series.Colorscale[i+1]
		pieces = append(pieces, opts.Piece{
			Min:   float32(series.CMin + lo.Offset*span),
			Max:   float32(series.CMin + hi.Offset*span),
			Color: lo.Color,
		})
	}
	return pieces
}
