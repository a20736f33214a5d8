package cluster

import (
	"fmt"
	"math"
)

const (
	MinMarkerSize = 8
	SizeScale     = 25
)

// Series holds the parallel arrays a scatter renderer needs, index-aligned with the input records.
type Series struct {
	Metric     string    `json:"metric"`
	X          []float64 `json:"x"`
	Y          []float64 `json:"y"`
	Size       []float64 `json:"size"`
	Color      []float64 `json:"color"`
	Text       []string  `json:"text"`
	CMin       float64   `json:"cmin"`
	CMax       float64   `json:"cmax"`
	Colorscale []Stop    `json:"colorscale"`
}

// MarkerSize maps a ratio value to a marker size with a visible floor.
func MarkerSize(v float64) float64 {
	return math.Max(MinMarkerSize, v*SizeScale)
}

// BuildSeries projects records onto plot coordinates, sized by sizeMetric and coloured by label.
// An unknown sizeMetric fails with ErrUnknownMetric; callers wanting a default pass
// schema.DefaultMetric.
func BuildSeries(schema *Schema, records []Record, sizeMetric string) (Series, error) {
	if !schema.HasRatio(sizeMetric) {
		return Series{}, fmt.Errorf("%q not in schema %q: %w", sizeMetric, schema.Name, ErrUnknownMetric)
	}
	if err := schema.checkRecords(records); err != nil {
		return Series{}, err
	}

	n := len(records)
	s := Series{
		Metric:     sizeMetric,
		X:          make([]float64, n),
		Y:          make([]float64, n),
		Size:       make([]float64, n),
		Color:      make([]float64, n),
		Text:       make([]string, n),
		Colorscale: Colorscale(schema.Clusters, schema.Palette),
	}
	s.CMin, s.CMax = ColorRange(schema.Clusters)

	for i, r := range records {
		s.X[i] = r.PC1
		s.Y[i] = r.PC2
		s.Size[i] = MarkerSize(r.Ratios[sizeMetric])
		s.Color[i] = float64(r.Cluster)
		s.Text[i] = schema.HoverText(r)
	}
	return s, nil
}
