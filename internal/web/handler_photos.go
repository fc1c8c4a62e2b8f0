package web

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/wijvancees/fotobestel/internal/domain"
	"github.com/wijvancees/fotobestel/internal/service"
)

func (s *Server) handleListPhotos(w http.ResponseWriter, r *http.Request) {
	limit := queryInt(r, "limit", 20)
	offset := queryInt(r, "offset", 0)
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	if offset < 0 {
		offset = 0
	}

	photos, total, err := s.catalog.ListAvailable(r.Context(), limit, offset)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if photos == nil {
		photos = []*domain.Photo{}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"photos":  photos,
		"total":   total,
		"limit":   limit,
		"offset":  offset,
		"hasMore": offset+len(photos) < total,
	})
}

func (s *Server) handleGetPhoto(w http.ResponseWriter, r *http.Request) {
	s.servePhoto(w, r, service.VariantOriginal)
}

func (s *Server) handleGetThumbnail(w http.ResponseWriter, r *http.Request) {
	s.servePhoto(w, r, service.VariantThumbnail)
}

// servePhoto writes raw image bytes. These endpoints use plain text error
// bodies, not the JSON envelope, since callers are <img> tags.
func (s *Server) servePhoto(w http.ResponseWriter, r *http.Request, variant service.Variant) {
	id := strings.TrimSpace(r.PathValue("id"))
	if id == "" {
		http.Error(w, "photo id required", http.StatusBadRequest)
		return
	}

	data, contentType, err := s.catalog.PhotoContent(r.Context(), id, variant)
	if errors.Is(err, domain.ErrPhotoNotFound) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.logger.Error("failed to serve photo", "photo_id", id, "error", err)
		http.Error(w, "failed to load photo", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=31536000")
	if _, err := w.Write(data); err != nil {
		s.logger.Error("failed to write photo", "photo_id", id, "error", err)
	}
}

func queryInt(r *http.Request, key string, fallback int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return n
}
