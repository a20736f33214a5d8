package cluster

import "fmt"

// Record is one company as produced by the upstream PCA/clustering pipeline.
type Record struct {
	ID      string             `json:"id"`
	Name    string             `json:"name"`
	PC1     float64            `json:"pc1"`
	PC2     float64            `json:"pc2"`
	Cluster int                `json:"cluster"`
	Ratios  map[string]float64 `json:"ratios"`
}

// Member identifies a record inside a cluster summary.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// checkRecords validates the minimal invariants both Aggregate and BuildSeries rely on:
// a non-empty id, a label within 1..K and a ratio set equal to the schema's.
func (s *Schema) checkRecords(records []Record) error {
	for i, r := range records {
		if r.ID == "" {
			return fmt.Errorf("record %d: missing id: %w", i, ErrInvalidRecord)
		}
		if r.Cluster < 1 || r.Cluster > s.Clusters {
			return fmt.Errorf("record %d (%s): cluster label %d outside 1..%d: %w", i, r.ID, r.Cluster, s.Clusters, ErrInvalidRecord)
		}
		if len(r.Ratios) != len(s.Ratios) {
			return fmt.Errorf("record %d (%s): has %d ratios, schema %q has %d: %w", i, r.ID, len(r.Ratios), s.Name, len(s.Ratios), ErrSchemaMismatch)
		}
		for _, ratio := range s.Ratios {
			if _, ok := r.Ratios[ratio.Key]; !ok {
				return fmt.Errorf("record %d (%s): missing ratio %q: %w", i, r.ID, ratio.Key, ErrSchemaMismatch)
			}
		}
	}
	return nil
}
