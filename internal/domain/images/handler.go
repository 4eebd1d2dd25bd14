package images

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"car-collection/internal/middleware"
	"car-collection/internal/platform/logger"
	"car-collection/internal/ports/blob"

	"github.com/go-chi/chi/v5"
)

// El form multipart puede ser algo más grande que la imagen en sí.
const maxRequestBytes = MaxSize + 1024*1024

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/cars/images", uploadHandler(svc, log))
}

type uploadResponse struct {
	URL string `json:"url"`
}

// uploadHandler godoc
// @Summary  Sube una imagen de car (multipart, campo "image")
// @Tags     images
// @Accept   multipart/form-data
// @Produce  json
// @Success  201 {object} uploadResponse
// @Router   /cars/images [post]
func uploadHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, maxRequestBytes)
		if err := r.ParseMultipartForm(maxRequestBytes); err != nil {
			http.Error(w, "invalid multipart body", http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("image")
		if err != nil {
			http.Error(w, `multipart field "image" is required`, http.StatusBadRequest)
			return
		}
		defer file.Close()

		url, err := svc.Upload(
			r.Context(),
			claims.UserID,
			file,
			header.Size,
			header.Header.Get("Content-Type"),
			header.Filename,
		)
		if err != nil {
			switch {
			case errors.Is(err, ErrTooLarge), errors.Is(err, ErrInvalidType):
				http.Error(w, err.Error(), http.StatusBadRequest)
			case errors.Is(err, blob.ErrStorage):
				log.Error("image upload failed", map[string]any{"error": err.Error()})
				http.Error(w, "storage unavailable", http.StatusBadGateway)
			default:
				log.Error("image upload failed", map[string]any{"error": err.Error()})
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusCreated, uploadResponse{URL: url})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
