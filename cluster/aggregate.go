package cluster

import (
	"sort"

	"gonum.org/v1/gonum/stat"
)

// Summary holds the statistics of one cluster.
type Summary struct {
	Cluster int                `json:"cluster"`
	Count   int                `json:"count"`
	Members []Member           `json:"members"`
	Means   map[string]float64 `json:"means"`
}

// Summaries maps a cluster label to its summary. Labels without members are absent.
type Summaries map[int]Summary

// Labels returns the labels present, highest first, which is the order the statistics panel lists them.
func (s Summaries) Labels() []int {
	labels := make([]int, 0, len(s))
	for label := range s {
		labels = append(labels, label)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(labels)))
	return labels
}

// Total is the number of records over all clusters.
func (s Summaries) Total() int {
	total := 0
	for _, summary := range s {
		total += summary.Count
	}
	return total
}

// Aggregate partitions records by cluster label and computes, per cluster, the member count,
// the members in input order and the mean of every schema ratio. Sums follow input order.
func Aggregate(schema *Schema, records []Record) (Summaries, error) {
	if err := schema.checkRecords(records); err != nil {
		return nil, err
	}

	partitions := make(map[int][]int)
	for i, r := range records {
		partitions[r.Cluster] = append(partitions[r.Cluster], i)
	}

	summaries := make(Summaries, len(partitions))
	for label, idx := range partitions {
		summary := Summary{
			Cluster: label,
			Count:   len(idx),
			Members: make([]Member, len(idx)),
			Means:   make(map[string]float64, len(schema.Ratios)),
		}
		for j, i := range idx {
			summary.Members[j] = Member{ID: records[i].ID, Name: records[i].Name}
		}

		values := make([]float64, len(idx))
		for _, ratio := range schema.Ratios {
			for j, i := range idx {
				values[j] = records[i].Ratios[ratio.Key]
			}
			summary.Means[ratio.Key] = stat.Mean(values, nil)
		}
		summaries[label] = summary
	}

	return summaries, nil
}
