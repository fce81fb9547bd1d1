package server

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"osirishq/internal/activity"
	"osirishq/internal/game"
	"osirishq/internal/terminal"

	"golang.org/x/sync/singleflight"
)

const maxBodyBytes = 1 << 16

// API exposes engine operations as JSON endpoints.
type API struct {
	Engine   *game.Engine
	Terminal *terminal.Router
	Logger   *slog.Logger

	snapshots singleflight.Group
}

type errorBody struct {
	Error string `json:"error"`
	Kind  string `json:"kind"`
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps engine failures to 404 for unknown ids and 409 for rule
// violations.
func writeError(w http.ResponseWriter, err error) {
	kind := game.Kind(err)
	code := http.StatusConflict
	switch {
	case game.IsNotFound(err):
		code = http.StatusNotFound
	case errors.Is(err, terminal.ErrEmptyQuery):
		code, kind = http.StatusBadRequest, "empty_query"
	case kind == "internal":
		code = http.StatusInternalServerError
	}
	writeJSON(w, code, errorBody{Error: err.Error(), Kind: kind})
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(v); err != nil && !errors.Is(err, io.EOF) {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid json: " + err.Error(), Kind: "bad_request"})
		return false
	}
	return true
}

// Snapshot coalesces concurrent reads into one engine call.
func (a *API) Snapshot(r *http.Request) (game.Snapshot, error) {
	v, err, _ := a.snapshots.Do("state", func() (any, error) {
		return a.Engine.Snapshot(r.Context())
	})
	if err != nil {
		return game.Snapshot{}, err
	}
	return v.(game.Snapshot), nil
}

func (a *API) Register(mux *http.ServeMux, rr *RouteRegistry) {
	Handle(mux, rr, "GET /api/state", "Full game snapshot", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		snap, err := a.Snapshot(r)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, snap)
	}))

	Handle(mux, rr, "POST /api/agents/{id}/assign", "Assign a task to an idle agent", `{"task_id":"cold_outreach"}`, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			TaskID string `json:"task_id"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		res, err := a.Engine.AssignTask(r.Context(), r.PathValue("id"), body.TaskID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}))

	Handle(mux, rr, "POST /api/quests/{id}/claim", "Claim a completed quest", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := a.Engine.ClaimQuest(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}))

	Handle(mux, rr, "POST /api/quests/{id}/reset", "Reopen a daily or weekly quest", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q, err := a.Engine.ResetQuest(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, q)
	}))

	Handle(mux, rr, "POST /api/upgrades/{id}/purchase", "Buy an upgrade", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := a.Engine.PurchaseUpgrade(r.Context(), r.PathValue("id"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}))

	Handle(mux, rr, "POST /api/click", "Earn click power in currency", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		res, err := a.Engine.ManualEarn(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}))

	Handle(mux, rr, "GET /api/activity", "Recent activity, oldest first; ?since=RFC3339&type=...", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		var since time.Time
		if raw := q.Get("since"); raw != "" {
			t, err := time.Parse(time.RFC3339, raw)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid since: " + err.Error(), Kind: "bad_request"})
				return
			}
			since = t
		}
		var types []activity.EventType
		for _, typ := range q["type"] {
			types = append(types, activity.EventType(typ))
		}
		entries, err := a.Engine.ActivitySince(r.Context(), since, types...)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, entries)
	}))

	Handle(mux, rr, "GET /api/activity/stats", "Counts over retained activity", "", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		stats, err := a.Engine.ActivityStats(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, stats)
	}))

	Handle(mux, rr, "POST /api/terminal", "Ask the HQ a question", `{"query":"how are sales?"}`, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.Terminal == nil {
			writeJSON(w, http.StatusServiceUnavailable, errorBody{Error: "terminal disabled", Kind: "unavailable"})
			return
		}
		var body struct {
			Query string `json:"query"`
		}
		if !decodeBody(w, r, &body) {
			return
		}
		reply, err := a.Terminal.Respond(r.Context(), body.Query)
		if err != nil {
			if r.Context().Err() != nil {
				return
			}
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, reply)
	}))
}
