package cluster

import (
	"strconv"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// names are plain text; anything that looks like markup is stripped and the rest escaped
var namePolicy = bluemonday.StrictPolicy()

// FormatRatio renders a ratio value according to the schema formatting table.
func FormatRatio(r Ratio, v float64) string {
	if r.Format == Percent {
		return strconv.FormatFloat(v*100, 'f', r.Precision, 64) + "%"
	}
	return strconv.FormatFloat(v, 'f', r.Precision, 64)
}

// FormatMean renders a cluster average the way the statistics panel shows every ratio.
func FormatMean(v float64) string {
	return strconv.FormatFloat(v*100, 'f', 1, 64) + "%"
}

// SanitizeName makes an entity name safe to embed in hover HTML.
func SanitizeName(name string) string {
	return namePolicy.Sanitize(name)
}

// HoverText builds the multi-line tooltip of one record: name, cluster, then every ratio
// listed under its group heading in schema order.
func (s *Schema) HoverText(r Record) string {
	var b strings.Builder
	b.WriteString("<b>")
	b.WriteString(SanitizeName(r.Name))
	b.WriteString("</b><br><b>Cluster ")
	b.WriteString(strconv.Itoa(r.Cluster))
	b.WriteString("</b><br><br>")

	for _, g := range s.Groups {
		heading := false
		for _, ratio := range s.Ratios {
			if ratio.Group != g.Key {
				continue
			}
			if !heading {
				b.WriteString(g.Icon)
				b.WriteString(" <b>")
				b.WriteString(g.Title)
				b.WriteString(":</b><br>")
				heading = true
			}
			b.WriteString("• ")
			b.WriteString(ratio.Label)
			b.WriteString(": ")
			b.WriteString(FormatRatio(ratio, r.Ratios[ratio.Key]))
			b.WriteString("<br>")
		}
	}
	return b.String()
}
