// internal/httpserver/routes_game.go
//
// HTTP routes for playing a session.
//   - POST   /session/new     → start a session, set the session cookie
//   - GET    /session         → current view
//   - DELETE /session         → forget the session, clear the cookie
//   - POST   /session/mode    → {mode, seq}
//   - POST   /session/reset   → {seq}
//   - POST   /price/guess     → {amount, seq}
//   - POST   /price/next      → {seq}
//   - POST   /compare/choose  → {side, seq}
//   - POST   /quiz/check      → {label, seq}
//   - POST   /quiz/advance    → {seq}
//
// Every action body may carry "seq", the client's click counter. A seq the
// session has already seen is answered with 409 stale_action and the current
// view, so a redelivered click never applies twice. /quiz/advance requires it.

package httpserver

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/rs/zerolog/log"

	"github.com/robalobadob/rigaguess/internal/game"
	"github.com/robalobadob/rigaguess/internal/store"
)

var errAmountRequired = errors.New("amount is required")

// actionReq is the union of all action payloads.
type actionReq struct {
	Seq    uint64   `json:"seq"`
	Mode   string   `json:"mode"`
	Amount *float64 `json:"amount"`
	Side   string   `json:"side"`
	Label  string   `json:"label"`
}

// actionRes is returned by every session endpoint.
type actionRes struct {
	View    *sessionView `json:"view,omitempty"`
	Error   string       `json:"error,omitempty"`
	Message string       `json:"message,omitempty"`
}

type newSessionRes struct {
	Token string      `json:"token"`
	View  sessionView `json:"view"`
}

// mountGame registers session and gameplay routes.
func (s *Server) mountGame(r chi.Router) {
	r.Post("/session/new", s.handleNewSession)

	r.Group(func(r chi.Router) {
		r.Use(s.requireSession)
		r.Get("/session", s.handleGetSession)
		r.Delete("/session", s.handleEndSession)
		r.Post("/session/mode", s.actionHandler(game.ActSetMode))
		r.Post("/session/reset", s.actionHandler(game.ActReset))
		r.Post("/price/guess", s.actionHandler(game.ActGuess))
		r.Post("/price/next", s.actionHandler(game.ActNextListing))
		r.Post("/compare/choose", s.actionHandler(game.ActChoose))
		r.Post("/quiz/check", s.actionHandler(game.ActCheckAnswer))
		r.Post("/quiz/advance", s.actionHandler(game.ActAdvance))
	})
}

// handleNewSession starts a session in price-guess mode. A session named by
// an existing token is discarded first.
func (s *Server) handleNewSession(w http.ResponseWriter, r *http.Request) {
	if old, err := s.parseSession(s.bearerOrCookie(r)); err == nil {
		_ = s.store.Delete(r.Context(), old)
	}

	g := game.New(s.data, s.newRNG())
	v := s.buildView(g) // not shared until Create
	if err := s.store.Create(r.Context(), g); err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", err.Error())
		return
	}
	tok, exp, err := s.signSession(g.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "server_error", "sign session")
		return
	}
	s.setSessionCookie(w, tok, exp)
	log.Debug().Str("session", g.ID).Msg("session started")

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, newSessionRes{Token: tok, View: v})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	var v sessionView
	err := s.store.Update(r.Context(), sessionID(r), func(g *game.Session) error {
		g.Touch()
		v = s.buildView(g)
		return nil
	})
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}
	render.JSON(w, r, actionRes{View: &v})
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	_ = s.store.Delete(r.Context(), sessionID(r))
	s.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

// actionHandler decodes the body into an action of the given kind and
// dispatches it against the caller's session.
func (s *Server) actionHandler(kind game.ActionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var p actionReq
		if err := json.NewDecoder(r.Body).Decode(&p); err != nil && !errors.Is(err, io.EOF) {
			writeError(w, http.StatusBadRequest, "bad_request", "invalid JSON body")
			return
		}
		a, err := toAction(kind, p)
		if err != nil {
			writeError(w, http.StatusUnprocessableEntity, "invalid_action", err.Error())
			return
		}
		s.dispatch(w, r, a)
	}
}

func toAction(kind game.ActionKind, p actionReq) (game.Action, error) {
	a := game.Action{Seq: p.Seq, Kind: kind}
	switch kind {
	case game.ActSetMode:
		a.Mode = game.Mode(strings.TrimSpace(p.Mode))
	case game.ActGuess:
		if p.Amount == nil {
			return a, errAmountRequired
		}
		a.Amount = *p.Amount
	case game.ActChoose:
		a.Side = game.Side(strings.ToUpper(strings.TrimSpace(p.Side)))
	case game.ActCheckAnswer:
		a.Label = p.Label
	}
	return a, nil
}

// dispatch applies a and renders the resulting view. The view is built
// inside the store's critical section.
func (s *Server) dispatch(w http.ResponseWriter, r *http.Request, a game.Action) {
	var (
		v      sessionView
		actErr error
	)
	err := s.store.Update(r.Context(), sessionID(r), func(g *game.Session) error {
		var out game.Outcome
		out, actErr = g.Dispatch(a)
		// A scored pick whose follow-up draw failed is still a success.
		if actErr != nil && out.Comparison != nil {
			g.Notice = actErr.Error()
			actErr = nil
		}
		v = s.buildView(g)
		return nil
	})
	if err != nil {
		s.respond(w, r, nil, err)
		return
	}
	if actErr != nil {
		s.respond(w, r, &v, actErr)
		return
	}
	render.JSON(w, r, actionRes{View: &v})
}

// respond writes an error response, attaching the view when there is one.
func (s *Server) respond(w http.ResponseWriter, r *http.Request, v *sessionView, err error) {
	status, code := classify(err)
	log.Debug().Err(err).Str("session", sessionID(r)).Str("code", code).Msg("action rejected")
	if errors.Is(err, store.ErrNotFound) {
		s.clearSessionCookie(w)
	}
	render.Status(r, status)
	render.JSON(w, r, actionRes{View: v, Error: code, Message: err.Error()})
}

// classify maps domain errors to an HTTP status and a stable error code.
func classify(err error) (int, string) {
	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, game.ErrStaleAction):
		return http.StatusConflict, "stale_action"
	case errors.Is(err, game.ErrWrongMode):
		return http.StatusConflict, "wrong_mode"
	case errors.Is(err, game.ErrInsufficientData):
		return http.StatusConflict, "insufficient_data"
	case errors.Is(err, game.ErrQuizUnavailable):
		return http.StatusConflict, "quiz_unavailable"
	case errors.Is(err, game.ErrQuizFinished):
		return http.StatusConflict, "quiz_finished"
	case errors.Is(err, game.ErrNoActivePair):
		return http.StatusConflict, "no_active_pair"
	case errors.Is(err, game.ErrNoSelection):
		return http.StatusUnprocessableEntity, "no_selection"
	case errors.Is(err, game.ErrSeqRequired):
		return http.StatusUnprocessableEntity, "seq_required"
	case errors.Is(err, game.ErrInvalidLabel),
		errors.Is(err, game.ErrInvalidSide),
		errors.Is(err, game.ErrNegativeGuess),
		errors.Is(err, game.ErrInvalidGuess),
		errors.Is(err, game.ErrUnknownMode):
		return http.StatusUnprocessableEntity, "invalid_action"
	}
	return http.StatusBadRequest, "bad_request"
}

// writeError writes a bare JSON error.
func writeError(w http.ResponseWriter, status int, code, msg string) {
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": code, "message": msg})
}
