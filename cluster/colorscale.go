package cluster

// Stop is one (breakpoint, colour) pair of a colourscale normalised to [0, 1].
type Stop struct {
	Offset float64 `json:"offset"`
	Color  string  `json:"color"`
}

// Colorscale builds a stepped colourscale of k flat bands: band i covers [i/k, (i+1)/k] and is
// drawn in palette[i]. Used with ColorRange it maps label i onto band i.
func Colorscale(k int, palette []string) []Stop {
	if k > len(palette) {
		k = len(palette)
	}
	stops := make([]Stop, 0, 2*k)
	for i := 0; i < k; i++ {
		stops = append(stops,
			Stop{Offset: float64(i) / float64(k), Color: palette[i]},
			Stop{Offset: float64(i+1) / float64(k), Color: palette[i]},
		)
	}
	return stops
}

// ColorRange is the continuous colour axis [0.5, k+0.5] that centres each label in its band.
func ColorRange(k int) (cmin, cmax float64) {
	return 0.5, float64(k) + 0.5
}
