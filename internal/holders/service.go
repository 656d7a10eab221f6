// Package holders builds the top-holders leaderboard served to the website.
package holders

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"

	"buxdao-core/internal/collection"
	"buxdao-core/internal/domain"
	"buxdao-core/internal/observability"
	"buxdao-core/internal/storage"
	"buxdao-core/internal/valuation"
)

// Leaderboard types accepted by TopHolders.
const (
	TypeTokens   = "bux"
	TypeNfts     = "nfts"
	TypeCombined = "bux,nfts"

	// AllCollections disables the collection filter.
	AllCollections = "all"
)

// ValidationError is returned for bad query parameters, before any storage
// or oracle call is made.
type ValidationError struct {
	Title   string // short error, e.g. "Invalid type parameter"
	Message string // optional detail listing valid options
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return e.Title
	}
	return e.Title + ": " + e.Message
}

// PriceOracle provides best-effort market inputs. Implementations never fail;
// they fall back to static values instead.
type PriceOracle interface {
	SolPriceUSD(ctx context.Context) float64
	LiquidityPoolLamports(ctx context.Context) uint64
}

// Query selects a leaderboard.
type Query struct {
	Type       string // bux, nfts or "bux,nfts"; empty means bux
	Collection string // slug, key or "all"; empty means all
}

// Holder is one formatted leaderboard row. Fields not used by a type are omitted.
type Holder struct {
	Address    string `json:"address"`
	Amount     string `json:"amount,omitempty"`
	Bux        string `json:"bux,omitempty"`
	Nfts       string `json:"nfts,omitempty"`
	Percentage string `json:"percentage,omitempty"`
	Value      string `json:"value"`
}

// Service computes leaderboards from storage and the price oracle.
type Service struct {
	reader      storage.HoldingsReader
	oracle      PriceOracle
	engine      *valuation.Engine
	collections *collection.Registry
	excluded    []string
	logger      logrus.FieldLogger
}

// Options configures a Service.
type Options struct {
	Reader      storage.HoldingsReader
	Oracle      PriceOracle
	Engine      *valuation.Engine
	Collections *collection.Registry
	// ExcludedWallets are never listed (project treasury, marketplace escrow).
	ExcludedWallets []string
	Logger          logrus.FieldLogger
}

// NewService creates a leaderboard service.
func NewService(opts Options) *Service {
	excluded := make([]string, 0, len(opts.ExcludedWallets))
	for _, w := range opts.ExcludedWallets {
		if w != "" {
			excluded = append(excluded, w)
		}
	}
	return &Service{
		reader:      opts.Reader,
		oracle:      opts.Oracle,
		engine:      opts.Engine,
		collections: opts.Collections,
		excluded:    excluded,
		logger:      opts.Logger.WithField("component", "holders"),
	}
}

// TopHolders returns the full leaderboard snapshot for q.
func (s *Service) TopHolders(ctx context.Context, q Query) ([]Holder, error) {
	kind, symbol, err := s.validate(q)
	if err != nil {
		return nil, err
	}

	var holders []Holder
	switch kind {
	case TypeTokens:
		holders, err = s.tokenLeaderboard(ctx)
	case TypeNfts:
		holders, err = s.nftLeaderboard(ctx, symbol)
	case TypeCombined:
		holders, err = s.combinedLeaderboard(ctx)
	}
	if err != nil {
		return nil, err
	}

	observability.UpdateLeaderboardSize(kind, len(holders))
	return holders, nil
}

// validate resolves the type and collection filter. The returned symbol is
// empty when every collection is selected.
func (s *Service) validate(q Query) (kind, symbol string, err error) {
	kind = q.Type
	if kind == "" {
		kind = TypeTokens
	}
	if kind != TypeTokens && kind != TypeNfts && kind != TypeCombined {
		return "", "", &ValidationError{Title: "Invalid type parameter"}
	}

	filter := q.Collection
	if filter == "" || filter == AllCollections {
		return kind, "", nil
	}
	c, err := s.collections.Resolve(filter)
	if err != nil {
		return "", "", &ValidationError{
			Title:   "Invalid collection parameter",
			Message: "Collection must be one of: " + strings.Join(append([]string{AllCollections}, s.collections.Slugs()...), ", "),
		}
	}
	return kind, c.Symbol, nil
}

func (s *Service) isExcluded(wallet string) bool {
	for _, w := range s.excluded {
		if w == wallet {
			return true
		}
	}
	return false
}

// publicTokens loads non-exempt, non-excluded token holders and the unit value.
func (s *Service) publicTokens(ctx context.Context) ([]*domain.TokenHolding, *domain.TokenSupply, error) {
	all, err := s.reader.TokenBalances(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load token balances: %w", err)
	}
	supply, err := s.reader.TokenSupply(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load token supply: %w", err)
	}

	public := make([]*domain.TokenHolding, 0, len(all))
	for _, h := range all {
		if h.IsExempt || s.isExcluded(h.Wallet) {
			continue
		}
		public = append(public, h)
	}
	return public, supply, nil
}

func (s *Service) tokenLeaderboard(ctx context.Context) ([]Holder, error) {
	tokens, supply, err := s.publicTokens(ctx)
	if err != nil {
		return nil, err
	}

	unit := s.engine.UnitValue(s.oracle.LiquidityPoolLamports(ctx), supply.Public)
	solPrice := s.oracle.SolPriceUSD(ctx)
	denominator, _ := valuation.GuardPublicSupply(supply.Public)

	entries := BuildLeaderboard(tokens, nil, unit, s.engine.FloorPrices(), solPrice)

	holders := make([]Holder, 0, len(entries))
	for _, e := range entries {
		holders = append(holders, Holder{
			Address:    e.DisplayAddress,
			Amount:     FormatAmount(e.TokenAmount),
			Percentage: FormatPercentage(e.TokenAmount * 100 / denominator),
			Value:      FormatSOLValue(e.TotalValueSOL, e.TotalValueUSD),
		})
	}
	return holders, nil
}

func (s *Service) nftLeaderboard(ctx context.Context, symbol string) ([]Holder, error) {
	nfts, err := s.reader.NftCounts(ctx, symbol, s.excluded)
	if err != nil {
		return nil, fmt.Errorf("load nft counts: %w", err)
	}
	names, err := s.displayNames(ctx)
	if err != nil {
		return nil, err
	}

	solPrice := s.oracle.SolPriceUSD(ctx)

	merged := valuation.Aggregate(nil, nfts, 0, s.engine.FloorPrices())
	for _, h := range merged {
		if name, ok := names[h.Wallet]; ok {
			h.DisplayName = &name
		}
	}
	entries := rank(merged, solPrice)

	holders := make([]Holder, 0, len(entries))
	for _, e := range entries {
		if e.NftCount <= 0 {
			continue
		}
		holders = append(holders, Holder{
			Address: e.DisplayAddress,
			Amount:  e.NftSummary,
			Value:   FormatSOLValue(e.TotalValueSOL, e.TotalValueUSD),
		})
	}
	return holders, nil
}

func (s *Service) combinedLeaderboard(ctx context.Context) ([]Holder, error) {
	tokens, supply, err := s.publicTokens(ctx)
	if err != nil {
		return nil, err
	}
	nfts, err := s.reader.NftCounts(ctx, "", s.excluded)
	if err != nil {
		return nil, fmt.Errorf("load nft counts: %w", err)
	}

	unit := s.engine.UnitValue(s.oracle.LiquidityPoolLamports(ctx), supply.Public)
	solPrice := s.oracle.SolPriceUSD(ctx)

	entries := BuildLeaderboard(tokens, nfts, unit, s.engine.FloorPrices(), solPrice)

	holders := make([]Holder, 0, len(entries))
	for _, e := range entries {
		holders = append(holders, Holder{
			Address: e.DisplayAddress,
			Bux:     FormatAmount(e.TokenAmount),
			Nfts:    e.NftSummary,
			Value:   FormatSOLValue(e.TotalValueSOL, e.TotalValueUSD),
		})
	}
	return holders, nil
}

// displayNames maps wallets to their known Discord display names.
func (s *Service) displayNames(ctx context.Context) (map[string]string, error) {
	tokens, err := s.reader.TokenBalances(ctx)
	if err != nil {
		return nil, fmt.Errorf("load display names: %w", err)
	}
	names := make(map[string]string, len(tokens))
	for _, t := range tokens {
		if t.DisplayName != nil && *t.DisplayName != "" {
			names[t.Wallet] = *t.DisplayName
		}
	}
	return names, nil
}
