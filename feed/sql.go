package feed

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
)

var identRx = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// SQLSource reads the records from a table whose columns carry the schema's field names and
// re-encodes them as the same JSON document the static artifact would be.
type SQLSource struct {
	DB     *sqlx.DB
	Table  string
	Schema *cluster.Schema
}

func NewSQLSource(db *sqlx.DB, table string, schema *cluster.Schema) (*SQLSource, error) {
	if !identRx.MatchString(table) {
		return nil, fmt.Errorf("invalid table name %q", table)
	}
	return &SQLSource{DB: db, Table: table, Schema: schema}, nil
}

// columns lists the selected columns; the string-valued ones come first.
func (s *SQLSource) columns() (text []string, numeric []string) {
	text = []string{s.Schema.IDField}
	if s.Schema.NameField != s.Schema.IDField {
		text = append(text, s.Schema.NameField)
	}
	numeric = []string{PC1Field, PC2Field, s.Schema.ClusterField}
	for _, r := range s.Schema.Ratios {
		numeric = append(numeric, r.Field)
	}
	return text, numeric
}

func (s *SQLSource) Fetch(ctx context.Context) ([]byte, error) {
	text, numeric := s.columns()
	isNumeric := make(map[string]bool, len(numeric))
	for _, c := range numeric {
		isNumeric[c] = true
	}
	query := fmt.Sprintf("SELECT %s FROM %s", strings.Join(append(append([]string{}, text...), numeric...), ", "), s.Table)

	rows, err := s.DB.QueryxContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %v: %w", s, err, ErrFetchFailed)
	}
	defer rows.Close()

	docs := make([]map[string]interface{}, 0)
	for rows.Next() {
		row := make(map[string]interface{})
		if err := rows.MapScan(row); err != nil {
			return nil, fmt.Errorf("%s: scanning row: %v: %w", s, err, ErrFetchFailed)
		}
		for col, v := range row {
			// mysql hands back []byte for every column type
			if b, ok := v.([]byte); ok {
				v = string(b)
			}
			if str, ok := v.(string); ok && isNumeric[col] {
				f, err := strconv.ParseFloat(str, 64)
				if err != nil {
					zerolog.Ctx(ctx).Error().Err(err).Str("column", col).Str("value", str).Msg("non-numeric value in numeric column")
					return nil, fmt.Errorf("%s: column %s: %v: %w", s, col, err, cluster.ErrInvalidRecord)
				}
				v = f
			}
			row[col] = v
		}
		docs = append(docs, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %v: %w", s, err, ErrFetchFailed)
	}

	return json.Marshal(docs)
}

func (s *SQLSource) String() string { return "sql:" + s.Table }
