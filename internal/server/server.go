package server

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"osirishq/internal/events"
	"osirishq/internal/game"
	"osirishq/internal/httpmw"
	"osirishq/internal/terminal"
	staticfiles "osirishq/static"
	"osirishq/ui/page"

	"github.com/a-h/templ"
)

type Options struct {
	Engine         *game.Engine
	Terminal       *terminal.Router
	Bus            *events.Bus
	StaticDir      string
	UseDiskStatic  bool
	OriginPatterns []string
	Logger         *slog.Logger
}

func NewHandler(opts Options) (http.Handler, error) {
	if opts.Engine == nil {
		return nil, errors.New("engine is required")
	}
	if opts.Bus == nil {
		return nil, errors.New("event bus is required")
	}
	if strings.TrimSpace(opts.StaticDir) == "" {
		opts.StaticDir = "static"
	}
	if opts.Logger == nil {
		opts.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	mux := http.NewServeMux()
	rr := &RouteRegistry{}

	staticHandler := http.FileServer(http.FS(staticfiles.EmbeddedFS()))
	if opts.UseDiskStatic {
		staticHandler = http.FileServer(http.Dir(opts.StaticDir))
	}
	mux.Handle("/static/", http.StripPrefix("/static/", staticHandler))

	Handle(mux, rr, "GET /healthz", "Liveness check", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "osiris-hq",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}))

	Handle(mux, rr, "GET /readyz", "Readiness check", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := opts.Engine.Snapshot(r.Context()); err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]any{
				"ok":    false,
				"error": "engine unavailable",
			})
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":      true,
			"service": "osiris-hq",
			"time":    time.Now().UTC().Format(time.RFC3339),
		})
	}))

	api := &API{Engine: opts.Engine, Terminal: opts.Terminal, Logger: opts.Logger}
	api.Register(mux, rr)

	Handle(mux, rr, "GET /ws", "Live snapshot stream", "", &Stream{
		Engine:         opts.Engine,
		Bus:            opts.Bus,
		Logger:         opts.Logger,
		OriginPatterns: opts.OriginPatterns,
	})

	Handle(mux, rr, "GET /partials/hq", "Dashboard panel fragment", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap, err := api.Snapshot(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		templ.Handler(page.Panel(snap)).ServeHTTP(w, r)
	}))

	Handle(mux, rr, "GET /{$}", "Dashboard", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap, err := api.Snapshot(r)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		templ.Handler(page.Dashboard(snap)).ServeHTTP(w, r)
	}))

	Handle(mux, rr, "GET /_/routes", "This list", "", rr)

	return httpmw.Chain(
		mux,
		httpmw.WithRequestID,
		httpmw.WithAccessLog(opts.Logger),
		httpmw.WithRecover(opts.Logger),
	), nil
}

func UseDiskStaticByEnv() bool {
	switch strings.ToLower(strings.TrimSpace(os.Getenv("OSIRIS_DEV_STATIC"))) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
