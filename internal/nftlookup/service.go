// Package nftlookup resolves a single NFT by collection index or rarity rank
// and renders it as a Discord embed.
package nftlookup

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"buxdao-core/internal/collection"
	"buxdao-core/internal/domain"
	"buxdao-core/internal/observability"
	"buxdao-core/internal/storage"
)

// Lookup modes, used in results and metrics.
const (
	ModeIndex = "index"
	ModeRank  = "rank"
)

// Result is the outcome of a lookup. Found is false when the request was
// valid but no record matched.
type Result struct {
	Collection collection.Collection
	Mode       string
	Index      int
	Rank       int
	Record     *domain.NftRecord
	Found      bool
}

// Service performs NFT lookups against storage.
type Service struct {
	store       storage.NftStore
	collections *collection.Registry
	siteURL     string
	logger      logrus.FieldLogger
}

// NewService creates a lookup service. siteURL prefixes relative logo and image paths.
func NewService(store storage.NftStore, collections *collection.Registry, siteURL string, logger logrus.FieldLogger) *Service {
	return &Service{
		store:       store,
		collections: collections,
		siteURL:     strings.TrimRight(siteURL, "/"),
		logger:      logger.WithField("component", "nftlookup"),
	}
}

// ByCommand parses "<collectionKey>.<index>" and looks the NFT up by index.
func (s *Service) ByCommand(ctx context.Context, command string) (*Result, error) {
	key, index, err := ParseCommand(command, s.collections.Keys())
	if err != nil {
		observability.RecordLookup(ModeIndex, "invalid")
		return nil, err
	}
	return s.ByIndex(ctx, key, index)
}

// ByIndex finds the NFT named "<collection name> #<index>".
func (s *Service) ByIndex(ctx context.Context, key string, index int) (*Result, error) {
	c, err := s.collections.ByKey(key)
	if err != nil {
		observability.RecordLookup(ModeIndex, "invalid")
		return nil, invalidf("Invalid collection %q. Available collections: %s", key, strings.Join(s.collections.Keys(), ", "))
	}
	if index < 1 {
		observability.RecordLookup(ModeIndex, "invalid")
		return nil, invalidf("Invalid token ID \"%d\". Please provide a valid number.", index)
	}

	res := &Result{Collection: c, Mode: ModeIndex, Index: index}
	rec, err := s.store.GetByName(ctx, c.Symbol, c.ItemName(index))
	return s.finish(res, rec, err)
}

// ByRank finds the NFT with the given rarity rank. Collections without
// rarity ranks are rejected as invalid input, never reported as not found.
func (s *Service) ByRank(ctx context.Context, req RankRequest) (*Result, error) {
	// A named collection is checked first so an unknown or unranked key gets
	// its own message even when other fields are missing.
	var c collection.Collection
	if req.Collection != "" {
		var err error
		c, err = s.collections.ByKey(req.Collection)
		if err != nil {
			observability.RecordLookup(ModeRank, "invalid")
			return nil, invalidf("Collection %q not found. Available collections: %s", req.Collection, strings.Join(s.collections.Keys(), ", "))
		}
		if !c.HasRarity {
			observability.RecordLookup(ModeRank, "invalid")
			return nil, invalidf("Collection %q does not support rarity ranking", c.Name)
		}
	}

	if err := validate.Struct(req); err != nil {
		observability.RecordLookup(ModeRank, "invalid")
		return nil, &ValidationError{Message: validationMessage(err, "Collection, symbol, and rank are required")}
	}
	if req.Symbol != c.Symbol {
		observability.RecordLookup(ModeRank, "invalid")
		return nil, invalidf("Symbol %q does not match collection %q (%s)", req.Symbol, c.Name, c.Symbol)
	}

	res := &Result{Collection: c, Mode: ModeRank, Rank: req.Rank}
	rec, err := s.store.GetByRank(ctx, c.Symbol, req.Rank)
	return s.finish(res, rec, err)
}

// RankRequestFor builds a rank request for a collection key, filling the
// symbol from the collection table when the key is known.
func (s *Service) RankRequestFor(key string, rank int) RankRequest {
	req := RankRequest{Collection: key, Rank: rank}
	if c, err := s.collections.ByKey(key); err == nil {
		req.Symbol = c.Symbol
	}
	return req
}

func (s *Service) finish(res *Result, rec *domain.NftRecord, err error) (*Result, error) {
	log := s.logger.WithFields(logrus.Fields{
		"collection": res.Collection.Key,
		"mode":       res.Mode,
		"index":      res.Index,
		"rank":       res.Rank,
	})

	if errors.Is(err, storage.ErrNotFound) {
		observability.RecordLookup(res.Mode, "not_found")
		log.Debug("nft not found")
		return res, nil
	}
	if err != nil {
		observability.RecordLookup(res.Mode, "error")
		log.WithError(err).Error("nft lookup failed")
		return nil, fmt.Errorf("lookup %s %s: %w", res.Collection.Key, res.Mode, err)
	}

	observability.RecordLookup(res.Mode, "found")
	res.Record = rec
	res.Found = true
	return res, nil
}
