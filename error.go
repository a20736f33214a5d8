package main

import (
	"net/http"
)

// errorHandler renders the error page. Failures to load the dataset get a retry link back to
// the page that failed.
func errorHandler(w http.ResponseWriter, r *http.Request, deps *Dependencies, status int, errorMsg string) {
	webdata := deps.webdata
	webdata["schema"] = deps.schema
	webdata["message"] = errorMsg
	webdata["status"] = status
	if status >= http.StatusInternalServerError {
		webdata["retry"] = r.URL.RequestURI()
	}
	renderTemplate(w, deps, "error", status)
}
