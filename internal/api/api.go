// Package api exposes the leaderboard and NFT lookup services over HTTP.
package api

import (
	"context"
	"crypto/ed25519"
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/sirupsen/logrus"

	"buxdao-core/internal/collection"
	"buxdao-core/internal/holders"
	"buxdao-core/internal/nftlookup"
	"buxdao-core/internal/observability"
	"buxdao-core/internal/storage"
)

// Route paths.
const (
	HealthPath          = "/health"
	MetricsPath         = "/metrics"
	TopHoldersPath      = "/api/top-holders"
	NftLookupPath       = "/api/nft-lookup"
	NftRankLookupPath   = "/api/nft-lookup/rank"
	DiscordInteractPath = "/api/discord/interactions"
	CollectionStatsPath = "/api/collections/{symbol}/stats"
	CelebCatzImagesPath = "/api/celebcatz/images"
)

const (
	celebCatzGalleryMax  = 79
	maxRequestBodyBytes  = 1 << 20
	defaultRouteDeadline = 30 * time.Second
)

// StatsFetcher returns raw marketplace statistics for a collection.
type StatsFetcher interface {
	CollectionStats(ctx context.Context, symbol string) (json.RawMessage, error)
}

// Options wires the HTTP layer to its services.
type Options struct {
	Holders     *holders.Service
	Lookup      *nftlookup.Service
	Gallery     storage.NftStore
	Stats       StatsFetcher
	Collections *collection.Registry
	// DiscordPublicKey enables interaction signature checks when set.
	DiscordPublicKey ed25519.PublicKey
	CORSOrigins      []string
	Logger           logrus.FieldLogger
}

// Routes holds the request handlers.
type Routes struct {
	holders     *holders.Service
	lookup      *nftlookup.Service
	gallery     storage.NftStore
	stats       StatsFetcher
	collections *collection.Registry
	discordKey  ed25519.PublicKey
	logger      logrus.FieldLogger
}

// NewRouter builds the chi router with middleware and every route.
func NewRouter(opts Options) http.Handler {
	logger := opts.Logger.WithField("component", "api")

	h := &Routes{
		holders:     opts.Holders,
		lookup:      opts.Lookup,
		gallery:     opts.Gallery,
		stats:       opts.Stats,
		collections: opts.Collections,
		discordKey:  opts.DiscordPublicKey,
		logger:      logger,
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(middleware.Timeout(defaultRouteDeadline))
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: opts.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Accept", "Content-Type", "X-Requested-With"},
		MaxAge:         300,
	}))
	r.Use(middleware.Heartbeat(HealthPath))

	r.Handle(MetricsPath, observability.Handler())

	r.Get(TopHoldersPath, h.TopHoldersHandler)
	r.HandleFunc(NftLookupPath, h.NftLookupHandler)
	r.HandleFunc(NftRankLookupPath, h.NftRankLookupHandler)
	r.Post(DiscordInteractPath, h.DiscordInteractionsHandler)
	r.Get(CollectionStatsPath, h.CollectionStatsHandler)
	r.Get(CelebCatzImagesPath, h.CelebCatzImagesHandler)

	return r
}
