package api

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"buxdao-core/internal/domain"
	"buxdao-core/internal/marketplace"
)

// CollectionStatsHandler ... Handles GET /api/collections/{symbol}/stats.
// The marketplace response is passed through unchanged.
func (h *Routes) CollectionStatsHandler(w http.ResponseWriter, r *http.Request) {
	symbol := chi.URLParam(r, "symbol")

	raw, err := h.stats.CollectionStats(r.Context(), symbol)
	if err != nil {
		if errors.Is(err, marketplace.ErrInvalidSymbol) {
			writeJSON(w, h.logger, errorBody{Error: "Invalid collection symbol"}, http.StatusBadRequest)
			return
		}
		h.logger.WithError(err).WithField("symbol", symbol).Error("error fetching collection stats")
		writeJSON(w, h.logger, errorBody{Error: "Failed to fetch stats"}, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(raw); err != nil {
		h.logger.WithError(err).Error("error writing response")
	}
}

// CelebCatzImagesHandler ... Handles GET /api/celebcatz/images.
func (h *Routes) CelebCatzImagesHandler(w http.ResponseWriter, r *http.Request) {
	celeb, err := h.collections.ByKey("celeb")
	if err != nil {
		h.logger.WithError(err).Error("celebrity catz collection not configured")
		writeJSON(w, h.logger, errorBody{Error: "Failed to fetch images", Details: err.Error()}, http.StatusInternalServerError)
		return
	}

	images, err := h.gallery.ListGallery(r.Context(), celeb.Symbol, celeb.Name+" #", celebCatzGalleryMax)
	if err != nil {
		h.logger.WithError(err).Error("unable to read gallery images")
		writeJSON(w, h.logger, errorBody{Error: "Failed to fetch images", Details: err.Error()}, http.StatusInternalServerError)
		return
	}

	if images == nil {
		images = []*domain.GalleryImage{}
	}
	writeJSON(w, h.logger, images, http.StatusOK)
}
