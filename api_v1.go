package main

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
)

type jsonResponseData struct {
	ApiVersion string                 `json:"api_version"`
	Endpoint   string                 `json:"endpoint"`
	Success    bool                   `json:"success"`
	Message    string                 `json:"message"`
	Data       map[string]interface{} `json:"data"`
}

func apiV1Handler(deps *Dependencies) http.HandlerFunc {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		newdeps := requestDeps(w, r, deps)

		w.Header().Add("Content-Type", "application/json")

		params := mux.Vars(r)
		endpoint := params["endpoint"]

		jsonResponse := jsonResponseData{ApiVersion: apiVersion, Endpoint: endpoint, Success: false, Data: make(map[string]interface{})}
		sublog := newdeps.logger.With().Str("api_version", jsonResponse.ApiVersion).Str("endpoint", endpoint).Logger()
		newdeps.logger = &sublog

		var err error
		switch endpoint {
		case "version":
			jsonResponse.Data["schema"] = newdeps.schema.Name
			jsonResponse.Data["schemas"] = cluster.Names()

		case "schema":
			apiSchema(newdeps, &jsonResponse)

		case "series":
			err = apiSeries(r, newdeps, &jsonResponse)

		case "stats":
			err = apiStats(r, newdeps, &jsonResponse)

		default:
			err = errUnknownEndpoint
		}

		status := http.StatusOK
		if err != nil {
			sublog.Error().Err(err).Msg("api call failed")
			status = statusForError(err)
			jsonResponse.Message = "Failure: " + err.Error()
		} else {
			jsonResponse.Success = true
			jsonResponse.Message = "ok"
		}

		w.WriteHeader(status)
		json.NewEncoder(w).Encode(jsonResponse)
	})
}

func apiSchema(deps *Dependencies, jsonResponse *jsonResponseData) {
	jsonResponse.Data["schema"] = deps.schema
	jsonResponse.Data["description_html"] = markdownToHTML(deps.schema.Description)
}

// apiSeries answers with the scatter arrays; without a size param the schema default is used.
func apiSeries(r *http.Request, deps *Dependencies, jsonResponse *jsonResponseData) error {
	metric, present, err := metricParam(r, deps.schema)
	if err != nil {
		return err
	}
	if !present {
		metric = deps.schema.DefaultMetric
	}

	dataset, err := deps.loader.Load(r.Context())
	if err != nil {
		return err
	}
	series, err := cluster.BuildSeries(deps.schema, dataset.Records, metric)
	if err != nil {
		return err
	}

	jsonResponse.Data["series"] = series
	jsonResponse.Data["count"] = len(dataset.Records)
	return nil
}

// apiStats answers with the per-cluster summaries, highest label first.
func apiStats(r *http.Request, deps *Dependencies, jsonResponse *jsonResponseData) error {
	dataset, err := deps.loader.Load(r.Context())
	if err != nil {
		return err
	}
	summaries, err := cluster.Aggregate(deps.schema, dataset.Records)
	if err != nil {
		return err
	}

	clusters := make([]cluster.Summary, 0, len(summaries))
	for _, label := range summaries.Labels() {
		clusters = append(clusters, summaries[label])
	}
	jsonResponse.Data["clusters"] = clusters
	jsonResponse.Data["total"] = summaries.Total()
	return nil
}
