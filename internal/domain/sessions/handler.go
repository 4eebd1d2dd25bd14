package sessions

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"car-collection/internal/platform/logger"

	"github.com/go-chi/chi/v5"
)

// La sesión viaja explícita en este header; el callback OAuth la recibe
// como parámetro state.
const sessionHeader = "X-Session-ID"

func RegisterRoutes(r chi.Router, mgr *Manager, log logger.Logger) {
	h := &handler{mgr: mgr, log: log}

	r.Route("/auth", func(ar chi.Router) {
		ar.Get("/signin", h.signIn)
		ar.Get("/callback", h.callback)
		ar.Get("/session", h.session)
		ar.Post("/signout", h.signOut)
	})
}

type handler struct {
	mgr *Manager
	log logger.Logger
}

type signInResponse struct {
	SessionID   string `json:"session_id"`
	RedirectURL string `json:"redirect_url"`
}

type sessionResponse struct {
	SessionID string       `json:"session_id"`
	State     State        `json:"state"`
	User      *sessionUser `json:"user,omitempty"`
	ExpiresAt *time.Time   `json:"expires_at,omitempty"`
}

type sessionUser struct {
	ID    string `json:"id"`
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
}

// signIn godoc
// @Summary  Inicia el flujo OAuth: sesión Pending + URL de redirect
// @Tags     auth
// @Produce  json
// @Success  200 {object} signInResponse
// @Router   /auth/signin [get]
func (h *handler) signIn(w http.ResponseWriter, r *http.Request) {
	sid, url, err := h.mgr.BeginSignIn()
	if err != nil {
		h.log.Error("begin sign-in failed", map[string]any{"error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, signInResponse{SessionID: sid, RedirectURL: url})
}

// callback godoc
// @Summary  Callback OAuth: canjea code y autentica la sesión
// @Tags     auth
// @Produce  json
// @Param    state query string true "id de sesión"
// @Param    code  query string true "código del proveedor"
// @Success  200 {object} sessionResponse
// @Router   /auth/callback [get]
func (h *handler) callback(w http.ResponseWriter, r *http.Request) {
	sid := strings.TrimSpace(r.URL.Query().Get("state"))
	code := strings.TrimSpace(r.URL.Query().Get("code"))
	if sid == "" || code == "" {
		http.Error(w, "state and code are required", http.StatusBadRequest)
		return
	}

	s, err := h.mgr.CompleteSignIn(r.Context(), sid, code)
	if err != nil {
		switch {
		case errors.Is(err, ErrNoSession):
			http.Error(w, "unknown session", http.StatusNotFound)
		case errors.Is(err, ErrInvalidTransition):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			h.log.Error("sign-in exchange failed", map[string]any{"error": err.Error()})
			http.Error(w, "identity provider unavailable", http.StatusBadGateway)
		}
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// session godoc
// @Summary  Sesión actual (observación no bloqueante)
// @Tags     auth
// @Produce  json
// @Success  200 {object} sessionResponse
// @Router   /auth/session [get]
func (h *handler) session(w http.ResponseWriter, r *http.Request) {
	sid := strings.TrimSpace(r.Header.Get(sessionHeader))
	if sid == "" {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	s, err := h.mgr.Get(sid)
	if err != nil {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, toSessionResponse(s))
}

// signOut godoc
// @Summary  Cierra la sesión y revoca el token en el proveedor
// @Tags     auth
// @Success  204
// @Router   /auth/signout [post]
func (h *handler) signOut(w http.ResponseWriter, r *http.Request) {
	sid := strings.TrimSpace(r.Header.Get(sessionHeader))
	if sid == "" {
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	}

	err := h.mgr.SignOut(r.Context(), sid)
	switch {
	case err == nil:
	case errors.Is(err, ErrNoSession):
		http.Error(w, "no session", http.StatusUnauthorized)
		return
	case errors.Is(err, ErrRevoke):
		// La sesión local ya terminó; la revocación remota queda sin
		// reintentar (single attempt).
		h.log.Warn("sign-out revoke failed", map[string]any{"error": err.Error()})
	default:
		h.log.Error("sign-out failed", map[string]any{"error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func toSessionResponse(s Session) sessionResponse {
	out := sessionResponse{SessionID: s.ID, State: s.State}
	if s.State == StateAuthenticated {
		out.User = &sessionUser{ID: s.UserID, Email: s.Email, Name: s.Name}
		if !s.ExpiresAt.IsZero() {
			t := s.ExpiresAt
			out.ExpiresAt = &t
		}
	}
	return out
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
