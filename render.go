package main

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var pageRenders = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "klaster_page_renders_total",
	Help: "Rendered HTML pages by template and outcome.",
}, []string{"template", "outcome"})

// renderTemplate is a wrapper around template.ExecuteTemplate.
// It writes into a pooled buffer before writing to the http.ResponseWriter to catch
// any errors resulting from populating the template.
func renderTemplate(w http.ResponseWriter, deps *Dependencies, tmplname string, status int) error {
	tmpl := deps.templates
	config := deps.config
	webdata := deps.webdata
	sublog := deps.logger

	config["template_name"] = tmplname
	webdata["config"] = config
	webdata["nonce"] = deps.nonce

	// Create a buffer to temporarily write to and check if any errors were encountered.
	buf := deps.bufpool.Get()
	defer deps.bufpool.Put(buf)

	err := tmpl.ExecuteTemplate(buf, tmplname, webdata)
	if err != nil {
		pageRenders.WithLabelValues(tmplname, "error").Inc()
		sublog.Error().Err(err).Str("template", tmplname).Msg("failed to execute template")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return err
	}
	pageRenders.WithLabelValues(tmplname, "ok").Inc()

	// Set the header and write the buffer to the http.ResponseWriter
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	buf.WriteTo(w)
	return nil
}
