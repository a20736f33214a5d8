package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/gorilla/securecookie"
	"github.com/gorilla/sessions"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func setupLogging(debugging bool) context.Context {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	// alter the caller() return to only include the last directory
	zerolog.CallerMarshalFunc = func(pc uintptr, file string, line int) string {
		parts := strings.Split(file, "/")
		if len(parts) > 1 {
			return strings.Join(parts[len(parts)-2:], "/") + ":" + strconv.Itoa(line)
		}
		return file + ":" + strconv.Itoa(line)
	}
	pgmPath := strings.Split(os.Args[0], `/`)
	logTag := "klaster"
	if len(pgmPath) > 1 {
		logTag = pgmPath[len(pgmPath)-1]
	}
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	if debugging {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	}
	log := log.With().Str("@tag", logTag).Caller().Logger()
	ctx := log.WithContext(context.Background())

	return ctx
}

// setupSessionsStore builds the cookie store that remembers the chosen size metric. Without a
// configured key a random one is generated, so sessions do not survive a restart.
func setupSessionsStore(ctx context.Context, sessionKey string) *sessions.CookieStore {
	hashKey := []byte(sessionKey)
	if len(hashKey) == 0 {
		zerolog.Ctx(ctx).Warn().Msg("KLASTER_SESSION_KEY not set, using a random session key")
		hashKey = securecookie.GenerateRandomKey(32)
	}

	store := sessions.NewCookieStore(hashKey)
	store.Options = &sessions.Options{
		Path:     "/",
		MaxAge:   30 * 24 * 60 * 60,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	return store
}

func newRouter(deps *Dependencies) http.Handler {
	router := mux.NewRouter()

	router.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("static/"))))

	router.HandleFunc("/ping", pingHandler()).Methods("GET")
	router.HandleFunc("/internal/cspviolations", cspReportHandler(deps)).Methods("POST")
	router.HandleFunc("/api/v1/{endpoint}", apiV1Handler(deps)).Methods("GET")
	router.Handle("/metrics", promhttp.Handler())

	router.HandleFunc("/data.json", dataHandler(deps)).Methods("GET")
	router.HandleFunc("/chart.png", chartPNGHandler(deps)).Methods("GET")
	router.HandleFunc("/", dashboardHandler(deps)).Methods("GET")

	// middleware chain
	chainedMux1 := withSession(deps.cookieStore, router) // deepest level, last to run
	chainedMux2 := withAddHeader(chainedMux1, deps)
	chainedMux3 := withLogging(chainedMux2, deps.logger) // outer level, first to run

	return chainedMux3
}

func startHTTPServer(ctx context.Context, deps *Dependencies, httpPort int) {
	// starting up web service ---------------------------------------------------
	zerolog.Ctx(ctx).Info().Int("port", httpPort).Str("schema", deps.schema.Name).Msg("started serving requests")

	// starup or die
	server := &http.Server{
		Handler:      newRouter(deps),
		Addr:         ":" + strconv.Itoa(httpPort),
		WriteTimeout: 30 * time.Second,
		ReadTimeout:  10 * time.Second,
	}

	if err := server.ListenAndServe(); err != nil {
		zerolog.Ctx(ctx).Fatal().Err(err).Msg("ended abnormally")
	} else {
		zerolog.Ctx(ctx).Info().Msg("stopped serving requests")
	}
}
