package cars

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"car-collection/internal/middleware"
	"car-collection/internal/platform/logger"
	"car-collection/internal/ports/auth"
	"car-collection/internal/ports/export"

	"github.com/go-chi/chi/v5"
)

const dashboardRecentLimit = 5

func RegisterRoutes(r chi.Router, svc *Service, pub export.Publisher, log logger.Logger) {
	h := &handler{svc: svc, pub: pub, log: log}

	r.Route("/cars", func(cr chi.Router) {
		cr.Post("/", h.create)
		cr.Get("/", h.list)
		cr.Get("/makes", h.makes)

		cr.Get("/{carID}", h.get)
		cr.Put("/{carID}", h.update)
		cr.Delete("/{carID}", h.delete)

		cr.Post("/{carID}/export", h.export)
	})

	r.Get("/dashboard", h.dashboard)
}

type handler struct {
	svc *Service
	pub export.Publisher
	log logger.Logger
}

type carRequest struct {
	ExternalCode string `json:"external_code"`
	Make         string `json:"make"`
	Model        string `json:"model"`
	Year         int    `json:"year"`
	ImageURL     string `json:"image_url"`
}

type carResponse struct {
	ID           string    `json:"id"`
	ExternalCode string    `json:"external_code"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	ImageURL     string    `json:"image_url,omitempty"`
	OwnerUserID  string    `json:"owner_user_id"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type dashboardResponse struct {
	TotalCars  int           `json:"total_cars"`
	Makes      []string      `json:"makes"`
	RecentCars []carResponse `json:"recent_cars"`
}

// exportDoc es el documento que sale del sistema. No incluye el owner:
// es un detalle de scoping interno y el archivo termina en un repo externo.
type exportDoc struct {
	ID           string    `json:"id"`
	ExternalCode string    `json:"external_code"`
	Make         string    `json:"make"`
	Model        string    `json:"model"`
	Year         int       `json:"year"`
	ImageURL     string    `json:"image_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

type exportResponse struct {
	Exported bool   `json:"exported"`
	Path     string `json:"path"`
}

// create godoc
// @Summary  Crea un car
// @Tags     cars
// @Accept   json
// @Produce  json
// @Param    car body carRequest true "campos del car"
// @Success  201 {object} carResponse
// @Router   /cars [post]
func (h *handler) create(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), claims.UserID, toInput(req))
	if err != nil {
		h.writeError(w, r, "create car", err)
		return
	}

	writeJSON(w, http.StatusCreated, toCarResponse(c))
}

// list godoc
// @Summary  Lista cars del caller con búsqueda y filtro
// @Tags     cars
// @Produce  json
// @Param    q     query string false "substring sobre external_code/make/model"
// @Param    make  query string false "match exacto de marca"
// @Param    limit query int    false "máximo de resultados"
// @Success  200 {array} carResponse
// @Router   /cars [get]
func (h *handler) list(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	f := Filter{
		Text: r.URL.Query().Get("q"),
		Make: r.URL.Query().Get("make"),
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			http.Error(w, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		f.Limit = n
	}

	items, err := h.svc.List(r.Context(), claims.UserID, f)
	if err != nil {
		h.writeError(w, r, "list cars", err)
		return
	}

	out := make([]carResponse, 0, len(items))
	for _, c := range items {
		out = append(out, toCarResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

// makes godoc
// @Summary  Marcas distintas del caller, orden ascendente
// @Tags     cars
// @Produce  json
// @Success  200 {array} string
// @Router   /cars/makes [get]
func (h *handler) makes(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	makes, err := h.svc.DistinctMakes(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, r, "list makes", err)
		return
	}
	writeJSON(w, http.StatusOK, makes)
}

// get godoc
// @Summary  Detalle de un car
// @Tags     cars
// @Produce  json
// @Param    carID path string true "id del car"
// @Success  200 {object} carResponse
// @Router   /cars/{carID} [get]
func (h *handler) get(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "carID"))
	if err != nil {
		h.writeError(w, r, "get car", err)
		return
	}
	writeJSON(w, http.StatusOK, toCarResponse(c))
}

// update godoc
// @Summary  Reemplaza los campos mutables de un car
// @Tags     cars
// @Accept   json
// @Produce  json
// @Param    carID path string true "id del car"
// @Param    car body carRequest true "campos del car"
// @Success  200 {object} carResponse
// @Router   /cars/{carID} [put]
func (h *handler) update(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	var req carRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Update(r.Context(), claims.UserID, chi.URLParam(r, "carID"), toInput(req))
	if err != nil {
		h.writeError(w, r, "update car", err)
		return
	}
	writeJSON(w, http.StatusOK, toCarResponse(c))
}

// delete godoc
// @Summary  Borra un car (hard delete, no idempotente)
// @Tags     cars
// @Param    carID path string true "id del car"
// @Success  204
// @Router   /cars/{carID} [delete]
func (h *handler) delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	if err := h.svc.Delete(r.Context(), claims.UserID, chi.URLParam(r, "carID")); err != nil {
		h.writeError(w, r, "delete car", err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// export godoc
// @Summary  Exporta el JSON del car al target remoto configurado
// @Tags     cars
// @Produce  json
// @Param    carID path string true "id del car"
// @Success  200 {object} exportResponse
// @Router   /cars/{carID}/export [post]
func (h *handler) export(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	c, err := h.svc.Get(r.Context(), claims.UserID, chi.URLParam(r, "carID"))
	if err != nil {
		h.writeError(w, r, "export car", err)
		return
	}

	payload, err := json.MarshalIndent(toExportDoc(c), "", "  ")
	if err != nil {
		h.writeError(w, r, "export car", err)
		return
	}

	// Sin publisher configurado, el export degrada a descarga directa.
	if h.pub == nil {
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.json", c.ExternalCode))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
		return
	}

	msg := "export " + c.ExternalCode
	if err := h.pub.Publish(r.Context(), c.ExternalCode, payload, msg); err != nil {
		h.writeError(w, r, "export car", err)
		return
	}

	writeJSON(w, http.StatusOK, exportResponse{
		Exported: true,
		Path:     "cars/" + c.ExternalCode + ".json",
	})
}

// dashboard godoc
// @Summary  Totales, marcas y últimos cars del caller
// @Tags     cars
// @Produce  json
// @Success  200 {object} dashboardResponse
// @Router   /dashboard [get]
func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	claims, ok := requireClaims(w, r)
	if !ok {
		return
	}

	total, err := h.svc.Count(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, r, "dashboard count", err)
		return
	}

	makes, err := h.svc.DistinctMakes(r.Context(), claims.UserID)
	if err != nil {
		h.writeError(w, r, "dashboard makes", err)
		return
	}

	recent, err := h.svc.List(r.Context(), claims.UserID, Filter{Limit: dashboardRecentLimit})
	if err != nil {
		h.writeError(w, r, "dashboard recent", err)
		return
	}

	out := dashboardResponse{
		TotalCars:  total,
		Makes:      makes,
		RecentCars: make([]carResponse, 0, len(recent)),
	}
	for _, c := range recent {
		out.RecentCars = append(out.RecentCars, toCarResponse(c))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *handler) writeError(w http.ResponseWriter, r *http.Request, op string, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrConflict):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrNotFound):
		http.Error(w, "car not found", http.StatusNotFound)
	case errors.Is(err, export.ErrUpstream):
		h.log.Error(op+" failed", map[string]any{"error": err.Error()})
		http.Error(w, "export target unavailable", http.StatusBadGateway)
	default:
		h.log.Error(op+" failed", map[string]any{"error": err.Error()})
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func requireClaims(w http.ResponseWriter, r *http.Request) (auth.Claims, bool) {
	claims, found := middleware.GetClaims(r.Context())
	if !found || strings.TrimSpace(claims.UserID) == "" {
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return auth.Claims{}, false
	}
	return claims, true
}

func toInput(req carRequest) Input {
	return Input{
		ExternalCode: req.ExternalCode,
		Make:         req.Make,
		Model:        req.Model,
		Year:         req.Year,
		ImageURL:     req.ImageURL,
	}
}

func toCarResponse(c Car) carResponse {
	return carResponse{
		ID:           c.ID,
		ExternalCode: c.ExternalCode,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		ImageURL:     c.ImageURL,
		OwnerUserID:  c.OwnerUserID,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

func toExportDoc(c Car) exportDoc {
	return exportDoc{
		ID:           c.ID,
		ExternalCode: c.ExternalCode,
		Make:         c.Make,
		Model:        c.Model,
		Year:         c.Year,
		ImageURL:     c.ImageURL,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo
// (cars/images/sessions) para no crear helpers compartidos antes de tiempo.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
