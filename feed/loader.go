package feed

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
)

// Dataset is one fully materialised load of the artifact.
type Dataset struct {
	Schema   *cluster.Schema
	Records  []cluster.Record
	Raw      []byte
	Source   string
	LoadedAt time.Time
}

// Loader fetches and decodes the dataset for one schema.
type Loader struct {
	Schema *cluster.Schema
	Source Source
}

func (l *Loader) Load(ctx context.Context) (*Dataset, error) {
	sublog := zerolog.Ctx(ctx).With().Str("source", l.Source.String()).Str("schema", l.Schema.Name).Logger()
	t := time.Now()

	raw, err := l.Source.Fetch(ctx)
	if err != nil {
		loadsTotal.WithLabelValues("fetch_error").Inc()
		sublog.Error().Err(err).Msg("failed to fetch dataset")
		return nil, err
	}

	records, err := Decode(l.Schema, raw)
	if err != nil {
		loadsTotal.WithLabelValues("decode_error").Inc()
		sublog.Error().Err(err).Msg("failed to decode dataset")
		return nil, err
	}

	loadDuration.Observe(time.Since(t).Seconds())
	loadsTotal.WithLabelValues("ok").Inc()
	sublog.Debug().Int("records", len(records)).Dur("elapsed", time.Since(t)).Msg("dataset loaded")

	return &Dataset{
		Schema:   l.Schema,
		Records:  records,
		Raw:      raw,
		Source:   l.Source.String(),
		LoadedAt: time.Now(),
	}, nil
}
