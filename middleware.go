package main

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/rs/zerolog"
)

type ContextKey string

var requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "klaster_http_requests_total",
	Help: "HTTP requests by route and status code.",
}, []string{"path", "code"})

// Logging middleware ---------------------------------------------------------

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

type Logger struct {
	handler http.Handler
	logger  *zerolog.Logger
}

func (l *Logger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	t := time.Now()
	rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
	l.handler.ServeHTTP(rec, r)

	requestsTotal.WithLabelValues(metricPath(r.URL.Path), strconv.Itoa(rec.status)).Inc()
	l.logger.Info().
		Str("request-id", w.Header().Get("X-Request-ID")).
		Stringer("url", r.URL).
		Int("status_code", rec.status).
		Int64("response_time", time.Since(t).Nanoseconds()).
		Msg("")
}
func withLogging(h http.Handler, logger *zerolog.Logger) *Logger {
	return &Logger{h, logger}
}

// keep label cardinality bounded
func metricPath(path string) string {
	if strings.HasPrefix(path, "/api/v1/") {
		return "/api/v1"
	}
	if strings.HasPrefix(path, "/static/") {
		return "/static"
	}
	return path
}

// Header middleware ----------------------------------------------------------

type AddHeader struct {
	handler http.Handler
	deps    *Dependencies
}

func (ah *AddHeader) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	requestID := uuid.New().String()
	nonce := newNonce()

	w.Header().Set("X-Request-ID", requestID)
	w.Header().Set("X-Nonce", nonce)
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.Header().Set("X-Frame-Options", "DENY")
	w.Header().Set("Content-Security-Policy", contentSecurityPolicy(nonce))

	logger := ah.deps.logger.With().Str("request-id", requestID).Logger()
	r = r.WithContext(logger.WithContext(r.Context()))

	ah.handler.ServeHTTP(w, r)
}
func withAddHeader(h http.Handler, deps *Dependencies) *AddHeader {
	return &AddHeader{h, deps}
}

var assetsOrigin = strings.Join(strings.SplitN(echartsAssetsHost, "/", 4)[:3], "/")

func contentSecurityPolicy(nonce string) string {
	return strings.Join([]string{
		"default-src 'self'",
		"script-src 'self' 'nonce-" + nonce + "' " + assetsOrigin,
		"style-src 'self' 'unsafe-inline'",
		"img-src 'self' data:",
		"report-uri /internal/cspviolations",
	}, "; ")
}

func newNonce() string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return uuid.New().String()
	}
	return base64.RawURLEncoding.EncodeToString(b)
}

// Session management middleware ----------------------------------------------

type Session struct {
	store   sessions.Store
	handler http.Handler
}

func (s *Session) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	session, err := s.store.Get(r, sessionName)
	if err != nil {
		// a cookie signed with an old key; carry on with the fresh session
		zerolog.Ctx(r.Context()).Warn().Err(err).Msg("failed to decode session cookie")
	}
	r = r.WithContext(context.WithValue(r.Context(), ContextKey("session"), session))

	s.handler.ServeHTTP(w, r)
}
func withSession(store sessions.Store, h http.Handler) *Session {
	return &Session{store, h}
}

func getSession(r *http.Request) *sessions.Session {
	session, _ := r.Context().Value(ContextKey("session")).(*sessions.Session)
	if session == nil {
		zerolog.Ctx(r.Context()).Error().Err(errFailedToGetSessionFromContext).Msg("")
	}
	return session
}
