package main

import (
	"fmt"
	"io"
	"net/http"

	"github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
)

// chartPNG draws the same scatter as the dashboard as a static 800x600 image.
func chartPNG(w io.Writer, schema *cluster.Schema, series cluster.Series) error {
	if distinct(series.X) < 2 {
		return errChartNeedsSpread
	}

	colors := make([]drawing.Color, len(series.Color))
	for i, label := range series.Color {
		colors[i] = drawing.ParseColor(schema.Color(int(label)))
	}

	ratio, _ := schema.Ratio(series.Metric)
	graph := chart.Chart{
		Title:  fmt.Sprintf("%s (%s)", schema.Title, ratio.Label),
		Width:  pngWidth,
		Height: pngHeight,
		Background: chart.Style{
			Padding: chart.Box{Top: 50, Left: 20, Right: 20, Bottom: 20},
		},
		XAxis: chart.XAxis{Name: "PC1"},
		YAxis: chart.YAxis{Name: "PC2"},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: series.Metric,
				Style: chart.Style{
					StrokeWidth: chart.Disabled,
					DotWidthProvider: func(_, _ chart.Range, index int, _, _ float64) float64 {
						// marker sizes are diameters
						return series.Size[index] / 2
					},
					DotColorProvider: func(_, _ chart.Range, index int, _, _ float64) drawing.Color {
						return colors[index]
					},
				},
				XValues: series.X,
				YValues: series.Y,
			},
		},
	}

	return graph.Render(chart.PNG, w)
}

func distinct(values []float64) int {
	seen := make(map[float64]struct{}, len(values))
	for _, v := range values {
		seen[v] = struct{}{}
	}
	return len(seen)
}

// chartPNGHandler exports the scatter as an image, sized by the same metric the page would use.
func chartPNGHandler(deps *Dependencies) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		newdeps := requestDeps(w, r, deps)
		sublog := newdeps.logger

		metric, err := sizeMetric(r, newdeps)
		if err != nil {
			http.Error(w, err.Error(), statusForError(err))
			return
		}

		dataset, err := newdeps.loader.Load(r.Context())
		if err != nil {
			http.Error(w, loadErrorMessage, statusForError(err))
			return
		}
		series, err := cluster.BuildSeries(newdeps.schema, dataset.Records, metric)
		if err != nil {
			http.Error(w, err.Error(), statusForError(err))
			return
		}

		buf := newdeps.bufpool.Get()
		defer newdeps.bufpool.Put(buf)

		if err := chartPNG(buf, newdeps.schema, series); err != nil {
			sublog.Error().Err(err).Str("metric", metric).Msg("failed to render png")
			http.Error(w, err.Error(), statusForError(err))
			return
		}

		w.Header().Set("Content-Type", chart.ContentTypePNG)
		w.Header().Set("Content-Disposition", `inline; filename="klaster-`+newdeps.schema.Name+`-`+metric+`.png"`)
		buf.WriteTo(w)
	})
}
