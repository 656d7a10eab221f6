package api

import (
	"net/http"

	"buxdao-core/internal/discord"
	"buxdao-core/internal/nftlookup"
)

// writeLookup maps a lookup outcome to a status and chat-message payload.
// Not found is content (200); validation errors are 400; anything else is 500.
func (h *Routes) writeLookup(w http.ResponseWriter, res *nftlookup.Result, err error) {
	switch {
	case err == nil:
		writeJSON(w, h.logger, h.lookup.Render(res), http.StatusOK)
	case nftlookup.IsValidationError(err):
		writeJSON(w, h.logger, nftlookup.RenderError(err), http.StatusBadRequest)
	default:
		h.logger.WithError(err).Error("nft lookup failed")
		writeJSON(w, h.logger, discord.ErrorResponse("Database Error", err.Error()), http.StatusInternalServerError)
	}
}

func (h *Routes) methodNotAllowed(w http.ResponseWriter, allowed string, message string) {
	w.Header().Set("Allow", allowed)
	writeJSON(w, h.logger, discord.ErrorResponse("Error", message), http.StatusMethodNotAllowed)
}

// NftLookupHandler ... Handles /api/nft-lookup requests.
// POST takes {"command": "mm.42"}; GET takes ?command=mm.42.
func (h *Routes) NftLookupHandler(w http.ResponseWriter, r *http.Request) {
	var req nftlookup.CommandRequest

	switch r.Method {
	case http.MethodPost:
		if err := decodeBody(w, r, &req); err != nil {
			writeJSON(w, h.logger, discord.ErrorResponse("Error", "Invalid request body"), http.StatusBadRequest)
			return
		}
	case http.MethodGet:
		req.Command = r.URL.Query().Get("command")
	default:
		h.methodNotAllowed(w, "GET, POST", "Only GET and POST requests are allowed")
		return
	}

	res, err := h.lookup.ByCommand(r.Context(), req.Command)
	h.writeLookup(w, res, err)
}

// NftRankLookupHandler ... Handles POST /api/nft-lookup/rank requests.
func (h *Routes) NftRankLookupHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.methodNotAllowed(w, "POST", "Only POST requests are allowed")
		return
	}

	var req nftlookup.RankRequest
	if err := decodeBody(w, r, &req); err != nil {
		writeJSON(w, h.logger, discord.ErrorResponse("Error", "Invalid request body"), http.StatusBadRequest)
		return
	}

	res, err := h.lookup.ByRank(r.Context(), req)
	h.writeLookup(w, res, err)
}
