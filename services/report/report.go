package main

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/rs/zerolog"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
	"github.com/rifqyarifani/klasterisasi-bumn/feed"
)

// report loads the dataset and writes one row per cluster, highest label first.
func report(ctx context.Context, loader *feed.Loader, w io.Writer, format string, members bool) error {
	dataset, err := loader.Load(ctx)
	if err != nil {
		return err
	}
	summaries, err := cluster.Aggregate(loader.Schema, dataset.Records)
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Info().Int("records", summaries.Total()).Int("clusters", len(summaries)).Msg("dataset summarised")

	switch format {
	case "table":
		return writeTable(w, loader.Schema, summaries, members)
	case "csv":
		return writeCSV(w, loader.Schema, summaries)
	case "json":
		ordered := make([]cluster.Summary, 0, len(summaries))
		for _, label := range summaries.Labels() {
			ordered = append(ordered, summaries[label])
		}
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(ordered)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func writeTable(w io.Writer, schema *cluster.Schema, summaries cluster.Summaries, members bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', tabwriter.AlignRight)

	header := []string{"CLUSTER", "COUNT"}
	for _, r := range schema.Ratios {
		header = append(header, "AVG "+r.Label)
	}
	fmt.Fprintln(tw, strings.Join(header, "\t")+"\t")

	for _, label := range summaries.Labels() {
		summary := summaries[label]
		row := []string{strconv.Itoa(label), strconv.Itoa(summary.Count)}
		for _, r := range schema.Ratios {
			row = append(row, cluster.FormatMean(summary.Means[r.Key]))
		}
		fmt.Fprintln(tw, strings.Join(row, "\t")+"\t")
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	if members {
		for _, label := range summaries.Labels() {
			fmt.Fprintf(w, "\nCluster %d\n", label)
			for _, m := range summaries[label].Members {
				fmt.Fprintf(w, "  %s\n", m.Name)
			}
		}
	}
	return nil
}

// writeCSV writes raw means, not percentages, so the file can be re-analysed.
func writeCSV(w io.Writer, schema *cluster.Schema, summaries cluster.Summaries) error {
	cw := csv.NewWriter(w)

	header := []string{"cluster", "count"}
	header = append(header, schema.RatioKeys()...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, label := range summaries.Labels() {
		summary := summaries[label]
		row := []string{strconv.Itoa(label), strconv.Itoa(summary.Count)}
		for _, key := range schema.RatioKeys() {
			row = append(row, strconv.FormatFloat(summary.Means[key], 'g', -1, 64))
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
