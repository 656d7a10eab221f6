// Package main runs the BUXDAO API server: holder leaderboards, NFT lookups,
// Discord interactions and collection pass-through endpoints.
package main

import (
	"context"
	"crypto/ed25519"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"buxdao-core/internal/api"
	"buxdao-core/internal/collection"
	"buxdao-core/internal/config"
	"buxdao-core/internal/discord"
	"buxdao-core/internal/holders"
	"buxdao-core/internal/logging"
	"buxdao-core/internal/marketplace"
	"buxdao-core/internal/nftlookup"
	"buxdao-core/internal/oracle"
	"buxdao-core/internal/solana"
	"buxdao-core/internal/storage"
	"buxdao-core/internal/storage/memory"
	pgstore "buxdao-core/internal/storage/postgres"
	"buxdao-core/internal/valuation"
)

const shutdownTimeout = 30 * time.Second

// stores holds the storage implementations used by the services.
type stores struct {
	holdings storage.HoldingsReader
	nfts     storage.NftStore
}

func main() {
	cfg, err := config.Load(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(2)
	}

	logger := logging.New(cfg.LogLevel, cfg.LogFormat)

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("invalid configuration")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	st, cleanup, err := createStores(ctx, cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to create stores")
	}
	defer cleanup()

	handler, err := buildHandler(cfg, st, logger)
	if err != nil {
		logger.WithError(err).Fatal("failed to build handler")
	}

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	done := make(chan error, 1)
	go func() {
		logger.WithField("addr", cfg.HTTPAddr).Info("HTTP server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			done <- err
			return
		}
		done <- nil
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		logger.WithField("signal", sig.String()).Info("initiating graceful shutdown")
	case err := <-done:
		if err != nil {
			logger.WithError(err).Fatal("HTTP server error")
		}
		return
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer shutdownCancel()

	go func() {
		// Second signal forces exit.
		sig := <-sigCh
		logger.WithField("signal", sig.String()).Warn("forcing immediate shutdown")
		os.Exit(1)
	}()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.WithError(err).Error("graceful shutdown failed")
	}
	cancel()

	logger.Info("shutdown complete")
}

// buildHandler wires the services into the HTTP router.
func buildHandler(cfg *config.Config, st *stores, logger *logrus.Logger) (http.Handler, error) {
	registry := collection.Default()

	rpc := solana.NewHTTPClient(cfg.SolanaRPCEndpoint, solana.WithTimeout(oracle.DefaultTimeout))
	priceOracle := oracle.New(rpc, cfg.PoolWallet, logger, oracle.WithCoinGeckoURL(cfg.CoinGeckoURL))

	holderService := holders.NewService(holders.Options{
		Reader:          st.holdings,
		Oracle:          priceOracle,
		Engine:          valuation.NewEngine(registry.FloorPrices(), logger),
		Collections:     registry,
		ExcludedWallets: cfg.ExcludedWallets(),
		Logger:          logger,
	})

	var key ed25519.PublicKey
	if cfg.DiscordPublicKey != "" {
		var err error
		key, err = discord.ParsePublicKey(cfg.DiscordPublicKey)
		if err != nil {
			return nil, fmt.Errorf("discord public key: %w", err)
		}
	} else {
		logger.Warn("DISCORD_PUBLIC_KEY not set, interaction signatures are not verified")
	}

	return api.NewRouter(api.Options{
		Holders:          holderService,
		Lookup:           nftlookup.NewService(st.nfts, registry, cfg.SiteURL, logger),
		Gallery:          st.nfts,
		Stats:            marketplace.NewClient(marketplace.WithBaseURL(cfg.MagicEdenURL)),
		Collections:      registry,
		DiscordPublicKey: key,
		CORSOrigins:      cfg.CORSOrigins,
		Logger:           logger,
	}), nil
}

// createStores creates the stores for the configured backend.
func createStores(ctx context.Context, cfg *config.Config, logger logrus.FieldLogger) (*stores, func(), error) {
	if cfg.UseMemory {
		logger.Warn("using in-memory storage, leaderboards and lookups start empty")
		nfts := memory.NewNftStore()
		return &stores{
			holdings: memory.NewHoldingsStore(nfts),
			nfts:     nfts,
		}, func() {}, nil
	}

	pool, err := pgstore.NewPool(ctx, cfg.PostgresDSN)
	if err != nil {
		return nil, nil, fmt.Errorf("connect to postgres: %w", err)
	}

	return &stores{
		holdings: pgstore.NewHoldingsStore(pool),
		nfts:     pgstore.NewNftStore(pool),
	}, pool.Close, nil
}
