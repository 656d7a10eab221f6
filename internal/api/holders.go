package api

import (
	"errors"
	"net/http"

	"buxdao-core/internal/holders"
)

type topHoldersResponse struct {
	Holders []holders.Holder `json:"holders"`
}

// TopHoldersHandler ... Handles GET /api/top-holders?type=&collection=
func (h *Routes) TopHoldersHandler(w http.ResponseWriter, r *http.Request) {
	q := holders.Query{
		Type:       r.URL.Query().Get("type"),
		Collection: r.URL.Query().Get("collection"),
	}

	list, err := h.holders.TopHolders(r.Context(), q)
	if err != nil {
		var verr *holders.ValidationError
		if errors.As(err, &verr) {
			writeJSON(w, h.logger, errorBody{Error: verr.Title, Message: verr.Message}, http.StatusBadRequest)
			return
		}
		h.logger.WithError(err).WithField("type", q.Type).Error("unable to build leaderboard")
		writeJSON(w, h.logger, errorBody{Error: "Internal server error", Message: err.Error()}, http.StatusInternalServerError)
		return
	}

	if list == nil {
		list = []holders.Holder{}
	}
	w.Header().Set("Cache-Control", "public, s-maxage=60")
	writeJSON(w, h.logger, topHoldersResponse{Holders: list}, http.StatusOK)
}
