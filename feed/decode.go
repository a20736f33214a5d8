package feed

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
)

// both dataset variants carry the projected coordinates under the same names
const (
	PC1Field = "PC1"
	PC2Field = "PC2"
)

// Decode parses a flat JSON array of objects into records using the schema's field names.
// A missing or mistyped id, name, coordinate or cluster field is ErrInvalidRecord; a missing
// ratio field is ErrSchemaMismatch. Keys the schema does not know are ignored.
func Decode(schema *cluster.Schema, data []byte) ([]cluster.Record, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, ErrEmptyDocument
	}

	var docs []map[string]json.RawMessage
	if err := json.Unmarshal(data, &docs); err != nil {
		return nil, fmt.Errorf("dataset is not a JSON array of objects: %v: %w", err, cluster.ErrInvalidRecord)
	}

	records := make([]cluster.Record, len(docs))
	for i, doc := range docs {
		r, err := decodeRecord(schema, doc)
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records[i] = r
	}
	return records, nil
}

func decodeRecord(schema *cluster.Schema, doc map[string]json.RawMessage) (cluster.Record, error) {
	var r cluster.Record
	var err error

	if r.ID, err = stringField(doc, schema.IDField); err != nil {
		return r, err
	}
	if r.Name, err = stringField(doc, schema.NameField); err != nil {
		return r, err
	}
	if r.PC1, err = numberField(doc, PC1Field); err != nil {
		return r, err
	}
	if r.PC2, err = numberField(doc, PC2Field); err != nil {
		return r, err
	}

	label, err := numberField(doc, schema.ClusterField)
	if err != nil {
		return r, err
	}
	if label != math.Trunc(label) || label < 1 {
		return r, fmt.Errorf("%s (%s): cluster label %v is not a positive integer: %w", schema.ClusterField, r.ID, label, cluster.ErrInvalidRecord)
	}
	r.Cluster = int(label)

	r.Ratios = make(map[string]float64, len(schema.Ratios))
	for _, ratio := range schema.Ratios {
		if _, ok := doc[ratio.Field]; !ok {
			return r, fmt.Errorf("%s: missing ratio field %s: %w", r.ID, ratio.Field, cluster.ErrSchemaMismatch)
		}
		if r.Ratios[ratio.Key], err = numberField(doc, ratio.Field); err != nil {
			return r, err
		}
	}
	return r, nil
}

func stringField(doc map[string]json.RawMessage, field string) (string, error) {
	raw, ok := doc[field]
	if !ok || isNull(raw) {
		return "", fmt.Errorf("missing field %s: %w", field, cluster.ErrInvalidRecord)
	}
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", fmt.Errorf("field %s is not a string: %w", field, cluster.ErrInvalidRecord)
	}
	return s, nil
}

func numberField(doc map[string]json.RawMessage, field string) (float64, error) {
	raw, ok := doc[field]
	if !ok || isNull(raw) {
		return 0, fmt.Errorf("missing field %s: %w", field, cluster.ErrInvalidRecord)
	}
	var f float64
	if err := json.Unmarshal(raw, &f); err != nil {
		return 0, fmt.Errorf("field %s is not a number: %w", field, cluster.ErrInvalidRecord)
	}
	return f, nil
}

// json.Unmarshal leaves the target untouched on null
func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}
