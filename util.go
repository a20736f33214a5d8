package main

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
	"github.com/rifqyarifani/klasterisasi-bumn/feed"
)

// metricParam reads the size param. present is false when the request has none; an empty or
// unknown value is ErrUnknownMetric.
func metricParam(r *http.Request, schema *cluster.Schema) (metric string, present bool, err error) {
	values, ok := r.URL.Query()["size"]
	if !ok {
		return "", false, nil
	}
	if len(values) > 0 {
		metric = values[0]
	}
	if !schema.HasRatio(metric) {
		return "", true, fmt.Errorf("size %q: %w", metric, cluster.ErrUnknownMetric)
	}
	return metric, true, nil
}

// sizeMetric picks the marker size metric for a page: the size param when present, then the
// one remembered in the session, then the schema default.
func sizeMetric(r *http.Request, deps *Dependencies) (string, error) {
	schema := deps.schema

	metric, present, err := metricParam(r, schema)
	if present {
		return metric, err
	}

	if deps.session != nil {
		if metric, ok := deps.session.Values[sessionSizeKey].(string); ok && schema.HasRatio(metric) {
			return metric, nil
		}
	}
	return schema.DefaultMetric, nil
}

// rememberMetric stores the chosen metric in the session cookie; must run before the body is written.
func rememberMetric(w http.ResponseWriter, r *http.Request, deps *Dependencies, metric string) {
	if deps.session == nil {
		return
	}
	deps.session.Values[sessionSizeKey] = metric
	if err := deps.session.Save(r, w); err != nil {
		deps.logger.Error().Err(err).Msg("failed to save session")
	}
}

// statusForError maps load and build failures onto HTTP statuses.
func statusForError(err error) int {
	switch {
	case errors.Is(err, cluster.ErrUnknownMetric):
		return http.StatusBadRequest
	case errors.Is(err, cluster.ErrInvalidRecord), errors.Is(err, cluster.ErrSchemaMismatch),
		errors.Is(err, errChartNeedsSpread):
		return http.StatusUnprocessableEntity
	case errors.Is(err, feed.ErrFetchFailed), errors.Is(err, feed.ErrEmptyDocument):
		return http.StatusBadGateway
	case errors.Is(err, errUnknownEndpoint):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
