// Package server exposes the session manager as a JSON HTTP API.
package server

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"

	"github.com/stridex/stridex/internal/constants"
	"github.com/stridex/stridex/internal/errors"
	"github.com/stridex/stridex/internal/leaderboard"
	"github.com/stridex/stridex/internal/predictor"
	"github.com/stridex/stridex/internal/server/httpmw"
	"github.com/stridex/stridex/internal/session"
)

const maxBodyBytes = 1 << 20

type Options struct {
	Manager *session.Manager
	Logger  *log.Logger
}

type API struct {
	manager *session.Manager
	logger  *log.Logger
	routes  *RouteRegistry
}

// NewHandler builds the mux with every route and the standard middleware chain
func NewHandler(opts Options) (http.Handler, error) {
	if opts.Manager == nil {
		return nil, errors.New("session manager is required")
	}

	api := &API{manager: opts.Manager, logger: opts.Logger, routes: &RouteRegistry{}}
	mux := http.NewServeMux()
	rr := api.routes

	Handle(mux, rr, "GET /healthz", "Liveness probe", "", api.health)
	Handle(mux, rr, "GET /api/routes", "List routes", "", api.listRoutes)
	Handle(mux, rr, "POST /api/accounts", "Create an account with starting habits", `{"username":"Nova","habits":["Run","Read"]}`, api.createAccount)
	Handle(mux, rr, "GET /api/accounts/{id}", "Account snapshot", "", api.getAccount)
	Handle(mux, rr, "POST /api/accounts/{id}/habits", "Add a habit", `{"name":"Stretch"}`, api.addHabit)
	Handle(mux, rr, "POST /api/accounts/{id}/habits/{habitID}/toggle", "Toggle today's completion", "", api.toggleHabit)
	Handle(mux, rr, "POST /api/accounts/{id}/journal", "Write a journal entry", `{"text":"Felt productive"}`, api.appendJournal)
	Handle(mux, rr, "POST /api/accounts/{id}/predictions", "Success probability for one day", `{"day_of_week":2,"mood":7,"motivation":7,"habits_completed":2}`, api.predict)
	Handle(mux, rr, "GET /api/accounts/{id}/forecast", "Seven-day success forecast", "", api.forecast)
	Handle(mux, rr, "GET /api/accounts/{id}/analytics", "Analytics report", "", api.analytics)
	Handle(mux, rr, "GET /api/accounts/{id}/motivation", "Coach motivation line", "", api.motivation)
	Handle(mux, rr, "POST /api/accounts/{id}/chat", "Ask the coach", `{"prompt":"How am I doing?"}`, api.chat)
	Handle(mux, rr, "GET /api/leaderboard", "XP leaderboard (?viewer=id&limit=n)", "", api.leaderboard)

	return httpmw.Chain(mux,
		httpmw.WithRequestID,
		httpmw.WithRecover(opts.Logger),
		httpmw.WithAccessLog(opts.Logger),
	), nil
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

type errorBody struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

// writeError maps domain errors onto status codes
func (api *API) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *errors.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: verr.Error(), Field: verr.Field})
	case errors.Is(err, errors.ErrValidation):
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
	case errors.Is(err, errors.ErrNotFound):
		writeJSON(w, http.StatusNotFound, errorBody{Error: err.Error()})
	case errors.Is(err, errors.ErrInsufficientData):
		writeJSON(w, http.StatusUnprocessableEntity, errorBody{Error: err.Error()})
	default:
		if api.logger != nil {
			api.logger.Error("request failed", "request_id", httpmw.RequestIDFromContext(r.Context()), "error", err)
		}
		writeJSON(w, http.StatusInternalServerError, errorBody{Error: "internal server error"})
	}
}

func decode(w http.ResponseWriter, r *http.Request, dst any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return errors.Validation("body", "%v", err)
	}
	return nil
}

func (api *API) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"ok":      true,
		"service": constants.AppName,
		"version": constants.Version,
		"time":    time.Now().UTC().Format(time.RFC3339),
	})
}

func (api *API) listRoutes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.routes.List())
}

type createAccountRequest struct {
	Username string   `json:"username"`
	Habits   []string `json:"habits"`
}

func (api *API) createAccount(w http.ResponseWriter, r *http.Request) {
	var req createAccountRequest
	if err := decode(w, r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}
	snap, err := api.manager.CreateAccount(r.Context(), req.Username, req.Habits)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	w.Header().Set("Location", "/api/accounts/"+snap.Account.User.ID)
	writeJSON(w, http.StatusCreated, snap)
}

func (api *API) getAccount(w http.ResponseWriter, r *http.Request) {
	snap, err := api.manager.Account(r.Context(), r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, snap)
}

func (api *API) addHabit(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := decode(w, r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}
	h, unlocked, err := api.manager.AddHabit(r.Context(), r.PathValue("id"), req.Name)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"habit": h, "unlocked": unlocked})
}

func (api *API) toggleHabit(w http.ResponseWriter, r *http.Request) {
	out, err := api.manager.Toggle(r.Context(), r.PathValue("id"), r.PathValue("habitID"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

func (api *API) appendJournal(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Text string `json:"text"`
	}
	if err := decode(w, r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}
	entry, unlocked, err := api.manager.AppendJournal(r.Context(), r.PathValue("id"), req.Text)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"entry": entry, "unlocked": unlocked})
}

func (api *API) predict(w http.ResponseWriter, r *http.Request) {
	var f predictor.Features
	if err := decode(w, r, &f); err != nil {
		api.writeError(w, r, err)
		return
	}
	p, err := api.manager.Predict(r.Context(), r.PathValue("id"), f)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (api *API) forecast(w http.ResponseWriter, r *http.Request) {
	points, err := api.manager.Forecast(r.Context(), r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, points)
}

func (api *API) analytics(w http.ResponseWriter, r *http.Request) {
	report, err := api.manager.Analytics(r.Context(), r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (api *API) motivation(w http.ResponseWriter, r *http.Request) {
	msg, err := api.manager.Motivation(r.Context(), r.PathValue("id"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": msg})
}

func (api *API) chat(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Prompt string `json:"prompt"`
	}
	if err := decode(w, r, &req); err != nil {
		api.writeError(w, r, err)
		return
	}
	reply, err := api.manager.Chat(r.Context(), r.PathValue("id"), req.Prompt)
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, reply)
}

func (api *API) leaderboard(w http.ResponseWriter, r *http.Request) {
	limit := -1
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			api.writeError(w, r, errors.Validation("limit", "must be a non-negative integer, got %q", raw))
			return
		}
		limit = n
	}
	entries, err := api.manager.Leaderboard(r.Context(), r.URL.Query().Get("viewer"))
	if err != nil {
		api.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, leaderboard.Top(entries, limit))
}

