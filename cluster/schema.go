package cluster

import (
	"fmt"
	"sort"
)

// Format selects how a ratio is rendered in hover text.
type Format int

const (
	Percent Format = iota // value * 100 followed by "%"
	Decimal               // plain value
)

func (f Format) String() string {
	switch f {
	case Percent:
		return "percent"
	case Decimal:
		return "decimal"
	default:
		return fmt.Sprintf("format(%d)", int(f))
	}
}

func (f Format) MarshalText() ([]byte, error) {
	return []byte(f.String()), nil
}

func (f *Format) UnmarshalText(text []byte) error {
	switch string(text) {
	case "percent":
		*f = Percent
	case "decimal":
		*f = Decimal
	default:
		return fmt.Errorf("unknown ratio format %q", text)
	}
	return nil
}

// Ratio describes one tracked financial ratio of a dataset variant.
type Ratio struct {
	Key       string `json:"key"`   // metric name, e.g. "roe"
	Field     string `json:"field"` // JSON field in the dataset document
	Label     string `json:"label"` // short label shown in hover text, e.g. "ROE"
	Title     string `json:"title"` // long name shown in the size selector
	Group     string `json:"group"`
	Format    Format `json:"format"`
	Precision int    `json:"precision"`
}

// Group is a hover-text heading under which ratios are listed.
type Group struct {
	Key   string `json:"key"`
	Icon  string `json:"icon"`
	Title string `json:"title"`
}

// Schema is the injected configuration of one dataset variant.
type Schema struct {
	Name          string   `json:"name"`
	Title         string   `json:"title"`
	Description   string   `json:"description"` // markdown
	IDField       string   `json:"id_field"`
	NameField     string   `json:"name_field"`
	ClusterField  string   `json:"cluster_field"`
	Clusters      int      `json:"clusters"`
	DefaultMetric string   `json:"default_metric"`
	Ratios        []Ratio  `json:"ratios"`
	Groups        []Group  `json:"groups"`
	Palette       []string `json:"palette"`
}

// DefaultPalette holds the band colours for clusters 1..4.
var DefaultPalette = []string{
	"rgb(128, 0, 128)",  // purple
	"rgb(0, 150, 136)",  // teal
	"rgb(255, 193, 7)",  // amber
	"rgb(52, 152, 219)", // blue
}

var (
	groupProfitability = Group{Key: "profitability", Icon: "📈", Title: "Profitability / Return"}
	groupLeverage      = Group{Key: "leverage", Icon: "📊", Title: "Financial Strength / Leverage"}
	groupDividend      = Group{Key: "dividend", Icon: "💰", Title: "Dividend"}
	groupDupont        = Group{Key: "dupont", Icon: "📊", Title: "Dupont / Earning Power"}
	groupLiquidity     = Group{Key: "liquidity", Icon: "📊", Title: "Liquidity"}
)

var registry = map[string]Schema{
	"bumn": {
		Name:  "bumn",
		Title: "Dashboard Visualisasi Klaster 2D",
		Description: "Analisis klaster hasil **Principal Component Analysis (PCA)** " +
			"atas rasio keuangan Badan Usaha Milik Negara.",
		IDField:       "NAMA_PERUSAHAAN",
		NameField:     "NAMA_PERUSAHAAN",
		ClusterField:  "CLUSTER",
		Clusters:      4,
		DefaultMetric: "opm",
		Ratios: []Ratio{
			{Key: "opm", Field: "OPM", Label: "OPM", Title: "Operating Profit Margin", Group: "profitability", Format: Percent, Precision: 1},
			{Key: "npm", Field: "NPM", Label: "NPM", Title: "Net Profit Margin", Group: "profitability", Format: Percent, Precision: 2},
			{Key: "roe", Field: "ROE", Label: "ROE", Title: "Return on Equity", Group: "profitability", Format: Percent, Precision: 2},
			{Key: "roa", Field: "ROA", Label: "ROA", Title: "Return on Assets", Group: "profitability", Format: Percent, Precision: 2},
			{Key: "dar", Field: "DAR", Label: "DAR", Title: "Debt to Asset Ratio", Group: "leverage", Format: Percent, Precision: 1},
			{Key: "der", Field: "DER", Label: "DER", Title: "Debt to Equity Ratio", Group: "leverage", Format: Decimal, Precision: 2},
			{Key: "tato", Field: "TATO", Label: "TATO", Title: "Total Asset Turnover", Group: "dupont", Format: Percent, Precision: 1},
			{Key: "cr", Field: "CR", Label: "CR", Title: "Current Ratio", Group: "liquidity", Format: Decimal, Precision: 2},
		},
		Groups:  []Group{groupProfitability, groupLeverage, groupDupont, groupLiquidity},
		Palette: DefaultPalette,
	},
	"kodesaham": {
		Name:  "kodesaham",
		Title: "Dashboard Visualisasi Klaster 2D",
		Description: "Analisis klaster hasil **Principal Component Analysis (PCA)** " +
			"atas rasio keuangan emiten, dikelompokkan per kode saham.",
		IDField:       "kode_saham",
		NameField:     "nama_perusahaan",
		ClusterField:  "cluster",
		Clusters:      3,
		DefaultMetric: "dpr",
		Ratios: []Ratio{
			{Key: "gpm", Field: "gpm", Label: "GPM", Title: "Gross Profit Margin", Group: "profitability", Format: Percent, Precision: 2},
			{Key: "ebitda", Field: "ebitda", Label: "EBITDA", Title: "EBITDA Margin", Group: "profitability", Format: Percent, Precision: 2},
			{Key: "opm", Field: "opm", Label: "OPM", Title: "Operating Profit Margin", Group: "profitability", Format: Percent, Precision: 1},
			{Key: "npm", Field: "npm", Label: "NPM", Title: "Net Profit Margin", Group: "profitability", Format: Percent, Precision: 2},
			{Key: "roe", Field: "roe", Label: "ROE", Title: "Return on Equity", Group: "profitability", Format: Percent, Precision: 2},
			{Key: "roa", Field: "roa", Label: "ROA", Title: "Return on Assets", Group: "profitability", Format: Percent, Precision: 2},
			{Key: "roic", Field: "roic", Label: "ROIC", Title: "Return on Invested Capital", Group: "profitability", Format: Percent, Precision: 2},
			{Key: "dar", Field: "dar", Label: "DAR", Title: "Debt to Asset Ratio", Group: "leverage", Format: Percent, Precision: 1},
			{Key: "der", Field: "der", Label: "DER", Title: "Debt to Equity Ratio", Group: "leverage", Format: Decimal, Precision: 2},
			{Key: "icr", Field: "icr", Label: "ICR", Title: "Interest Coverage Ratio", Group: "leverage", Format: Decimal, Precision: 2},
			{Key: "dpr", Field: "dpr", Label: "DPR", Title: "Dividend Payout Ratio", Group: "dividend", Format: Percent, Precision: 1},
			{Key: "at", Field: "at", Label: "AT", Title: "Asset Turnover", Group: "dupont", Format: Percent, Precision: 1},
			{Key: "cr", Field: "cr", Label: "CR", Title: "Current Ratio", Group: "liquidity", Format: Decimal, Precision: 2},
			{Key: "qr", Field: "qr", Label: "QR", Title: "Quick Ratio", Group: "liquidity", Format: Decimal, Precision: 2},
			{Key: "wcta", Field: "wcta", Label: "WCTA", Title: "Working Capital to Total Assets", Group: "liquidity", Format: Percent, Precision: 2},
		},
		Groups:  []Group{groupProfitability, groupLeverage, groupDividend, groupDupont, groupLiquidity},
		Palette: DefaultPalette,
	},
}

// Lookup returns a copy of a built-in schema by name.
func Lookup(name string) (*Schema, error) {
	s, ok := registry[name]
	if !ok {
		return nil, fmt.Errorf("%q: %w", name, ErrUnknownSchema)
	}
	return s.clone(), nil
}

// Names lists the built-in schema names in sorted order.
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (s Schema) clone() *Schema {
	s.Ratios = append([]Ratio(nil), s.Ratios...)
	s.Groups = append([]Group(nil), s.Groups...)
	s.Palette = append([]string(nil), s.Palette...)
	return &s
}

// WithClusters returns a copy of the schema with K overridden. k <= 0 keeps the schema's own K.
func (s *Schema) WithClusters(k int) *Schema {
	c := s.clone()
	if k > 0 {
		c.Clusters = k
	}
	return c
}

// Ratio returns the ratio definition for a metric key.
func (s *Schema) Ratio(key string) (Ratio, bool) {
	for _, r := range s.Ratios {
		if r.Key == key {
			return r, true
		}
	}
	return Ratio{}, false
}

func (s *Schema) HasRatio(key string) bool {
	_, ok := s.Ratio(key)
	return ok
}

// RatioKeys returns the metric keys in schema order.
func (s *Schema) RatioKeys() []string {
	keys := make([]string, len(s.Ratios))
	for i, r := range s.Ratios {
		keys[i] = r.Key
	}
	return keys
}

// Color returns the palette colour of a cluster label, or "" if out of range.
func (s *Schema) Color(label int) string {
	if label < 1 || label > len(s.Palette) {
		return ""
	}
	return s.Palette[label-1]
}

// Validate checks the schema tables are consistent with each other.
func (s *Schema) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("schema has no name: %w", ErrInvalidSchema)
	}
	if len(s.Ratios) == 0 {
		return fmt.Errorf("schema %q has no ratios: %w", s.Name, ErrInvalidSchema)
	}
	if s.Clusters < 1 || s.Clusters > len(s.Palette) {
		return fmt.Errorf("schema %q: %d clusters but %d palette colours: %w", s.Name, s.Clusters, len(s.Palette), ErrInvalidSchema)
	}

	groups := make(map[string]bool, len(s.Groups))
	for _, g := range s.Groups {
		groups[g.Key] = true
	}
	seen := make(map[string]bool, len(s.Ratios))
	for _, r := range s.Ratios {
		if r.Key == "" || r.Field == "" {
			return fmt.Errorf("schema %q: ratio without key or field: %w", s.Name, ErrInvalidSchema)
		}
		if seen[r.Key] {
			return fmt.Errorf("schema %q: duplicate ratio %q: %w", s.Name, r.Key, ErrInvalidSchema)
		}
		seen[r.Key] = true
		if !groups[r.Group] {
			return fmt.Errorf("schema %q: ratio %q in unknown group %q: %w", s.Name, r.Key, r.Group, ErrInvalidSchema)
		}
		if r.Precision < 0 || r.Precision > 4 {
			return fmt.Errorf("schema %q: ratio %q precision %d: %w", s.Name, r.Key, r.Precision, ErrInvalidSchema)
		}
	}
	if !seen[s.DefaultMetric] {
		return fmt.Errorf("schema %q: default metric %q: %w", s.Name, s.DefaultMetric, ErrUnknownMetric)
	}
	return nil
}
