package api

import (
	"io"
	"net/http"

	"github.com/bwmarrin/discordgo"

	"buxdao-core/internal/discord"
	"buxdao-core/internal/nftlookup"
)

// Slash command names and options.
const (
	commandNft         = "nft"
	commandRank        = "rank"
	optionQuery        = "query"
	optionCollection   = "collection"
	optionRank         = "rank"
	interactionFailure = "Something went wrong looking up that NFT. Please try again."
)

// DiscordInteractionsHandler ... Handles POST /api/discord/interactions.
// Every command reply is sent with status 200; Discord drops non-2xx bodies,
// so errors are delivered as ephemeral error embeds.
func (h *Routes) DiscordInteractionsHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxRequestBodyBytes)

	if h.discordKey != nil && !discord.VerifyRequest(r, h.discordKey) {
		http.Error(w, "invalid request signature", http.StatusUnauthorized)
		return
	}

	body, err := io.ReadAll(r.Body)
	if err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	interaction, err := discord.ParseInteraction(body)
	if err != nil {
		http.Error(w, "invalid interaction payload", http.StatusBadRequest)
		h.logger.WithError(err).Warn("error decoding interaction")
		return
	}

	if interaction.Type == discordgo.InteractionPing {
		writeJSON(w, h.logger, discord.Pong(), http.StatusOK)
		return
	}

	cmd, ok := discord.CommandOf(interaction)
	if !ok {
		http.Error(w, "unsupported interaction type", http.StatusBadRequest)
		return
	}

	var (
		res       *nftlookup.Result
		lookupErr error
	)
	switch cmd.Name {
	case commandNft:
		query, _ := cmd.StringOption(optionQuery)
		res, lookupErr = h.lookup.ByCommand(r.Context(), query)
	case commandRank:
		key, _ := cmd.StringOption(optionCollection)
		rank, _ := cmd.IntOption(optionRank)
		res, lookupErr = h.lookup.ByRank(r.Context(), h.lookup.RankRequestFor(key, int(rank)))
	default:
		writeJSON(w, h.logger, discord.Ephemeral(discord.ErrorResponse("Error", "Unknown command: "+cmd.Name)), http.StatusOK)
		return
	}

	switch {
	case lookupErr == nil:
		writeJSON(w, h.logger, h.lookup.Render(res), http.StatusOK)
	case nftlookup.IsValidationError(lookupErr):
		writeJSON(w, h.logger, discord.Ephemeral(nftlookup.RenderError(lookupErr)), http.StatusOK)
	default:
		h.logger.WithError(lookupErr).WithField("command", cmd.Name).Error("interaction lookup failed")
		writeJSON(w, h.logger, discord.Ephemeral(discord.ErrorResponse("Error", interactionFailure)), http.StatusOK)
	}
}
