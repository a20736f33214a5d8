package main

import (
	"errors"
	"net/http"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
)

const loadErrorMessage = "Error loading data. Please try again."

func dashboardHandler(deps *Dependencies) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		newdeps := requestDeps(w, r, deps)
		sublog := newdeps.logger
		ctx := r.Context()
		webdata := newdeps.webdata
		schema := newdeps.schema

		metric, err := sizeMetric(r, newdeps)
		if err != nil {
			sublog.Warn().Str("size", r.URL.Query().Get("size")).Msg("unknown size metric requested")
			errorHandler(w, r, newdeps, http.StatusBadRequest, "Unknown size metric: "+r.URL.Query().Get("size"))
			return
		}

		dataset, err := newdeps.loader.Load(ctx)
		if err != nil {
			status := statusForError(err)
			msg := loadErrorMessage
			if errors.Is(err, cluster.ErrInvalidRecord) || errors.Is(err, cluster.ErrSchemaMismatch) {
				msg = "The dataset does not match the " + schema.Name + " schema: " + err.Error()
			}
			errorHandler(w, r, newdeps, status, msg)
			return
		}

		summaries, err := cluster.Aggregate(schema, dataset.Records)
		if err != nil {
			sublog.Error().Err(err).Msg("failed to aggregate clusters")
			errorHandler(w, r, newdeps, statusForError(err), err.Error())
			return
		}
		series, err := cluster.BuildSeries(schema, dataset.Records, metric)
		if err != nil {
			sublog.Error().Err(err).Msg("failed to build series")
			errorHandler(w, r, newdeps, statusForError(err), err.Error())
			return
		}

		rememberMetric(w, r, newdeps, metric)

		webdata["schema"] = schema
		webdata["metric"] = metric
		webdata["chart"], webdata["chartAssets"] = chartScatter(newdeps, schema, series)
		webdata["panel"] = statsPanel(schema, summaries)
		webdata["total"] = summaries.Total()
		webdata["loadedAt"] = dataset.LoadedAt

		renderTemplate(w, newdeps, "dashboard", http.StatusOK)
	})
}
