package main

import (
	"html/template"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
)

type panelMean struct {
	Label string
	Title string
	Value float64
}

type panelCluster struct {
	Label   int
	Color   template.CSS
	Count   int
	Means   []panelMean
	Members []cluster.Member
}

// statsPanel lays out the summaries for the statistics panel: highest label first, ratios in
// schema order.
func statsPanel(schema *cluster.Schema, summaries cluster.Summaries) []panelCluster {
	labels := summaries.Labels()
	panel := make([]panelCluster, 0, len(labels))
	for _, label := range labels {
		summary := summaries[label]
		pc := panelCluster{
			Label:   label,
			Color:   template.CSS(schema.Color(label)),
			Count:   summary.Count,
			Means:   make([]panelMean, len(schema.Ratios)),
			Members: summary.Members,
		}
		for i, ratio := range schema.Ratios {
			pc.Means[i] = panelMean{Label: ratio.Label, Title: ratio.Title, Value: summary.Means[ratio.Key]}
		}
		panel = append(panel, pc)
	}
	return panel
}
