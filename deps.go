package main

import (
	"html/template"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/oxtoacart/bpool"
	"github.com/rs/zerolog"

	"github.com/rifqyarifani/klasterisasi-bumn/cluster"
	"github.com/rifqyarifani/klasterisasi-bumn/feed"
)

// Dependencies is built once at startup; requestDeps copies it for each request.
type Dependencies struct {
	schema      *cluster.Schema
	loader      *feed.Loader
	templates   *template.Template
	bufpool     *bpool.BufferPool
	cookieStore *sessions.CookieStore
	reports     reportStore // nil when CSP reports are only logged

	// per request
	session    *sessions.Session
	request_id string
	nonce      string
	logger     *zerolog.Logger
	config     map[string]interface{}
	webdata    map[string]interface{}
}

func newBufferPool() *bpool.BufferPool {
	return bpool.NewBufferPool(64)
}

// requestDeps makes a copy of the permanent deps with new versions of what changes during THIS
// request (request id, nonce, logger, config, webdata) so concurrent requests do not share them.
func requestDeps(w http.ResponseWriter, r *http.Request, deps *Dependencies) *Dependencies {
	resHeader := w.Header()
	newnonce := resHeader.Get("X-Nonce")
	newrequestid := resHeader.Get("X-Request-ID")
	newlog := zerolog.Ctx(r.Context()).With().Logger()

	newdeps := *deps
	newdeps.request_id = newrequestid
	newdeps.nonce = newnonce
	newdeps.logger = &newlog
	newdeps.session = getSession(r)
	newdeps.config = map[string]interface{}{
		"schema":   deps.schema.Name,
		"clusters": deps.schema.Clusters,
	}
	newdeps.webdata = map[string]interface{}{
		"nonce":      newnonce,
		"request-id": newrequestid,
	}

	return &newdeps
}
