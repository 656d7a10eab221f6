// Package valuation converts token balances and NFT counts into SOL values.
//
// Token unit value = (pool SOL + manual adjustment) / public supply.
// NFT value = sum over collections of count * static floor price.
// All arithmetic is float64; rounding happens only at presentation.
package valuation

import (
	"math"

	"github.com/sirupsen/logrus"

	"buxdao-core/internal/domain"
	"buxdao-core/internal/observability"
	"buxdao-core/internal/solana"
)

// ManualAdjustmentSOL is added to the pool balance to account for
// liquidity held outside the tracked pool account.
const ManualAdjustmentSOL = 20.2

// GuardPublicSupply substitutes 1 for a public supply that cannot be used
// as a divisor (zero, negative, NaN or infinite). The second return value
// reports whether the substitution happened.
func GuardPublicSupply(publicSupply float64) (float64, bool) {
	if publicSupply <= 0 || math.IsNaN(publicSupply) || math.IsInf(publicSupply, 0) {
		return 1, true
	}
	return publicSupply, false
}

// ComputeTokenUnitValue returns the SOL value of one token.
// A public supply of 0 yields the same result as a public supply of 1.
func ComputeTokenUnitValue(poolLamports uint64, publicSupply float64) float64 {
	supply, _ := GuardPublicSupply(publicSupply)
	poolSOL := float64(poolLamports)/float64(solana.LamportsPerSOL) + ManualAdjustmentSOL
	return poolSOL / supply
}

// TokenValue returns balance * unit value in SOL.
func TokenValue(balance, unitValue float64) float64 {
	return balance * unitValue
}

// NftValue returns the SOL value of per-symbol NFT counts.
// Symbols without a floor price contribute zero.
func NftValue(counts map[string]int64, floors map[string]float64) float64 {
	var total float64
	for symbol, n := range counts {
		total += float64(n) * floors[symbol]
	}
	return total
}

// Engine wraps the pure valuation functions with logging and metrics.
type Engine struct {
	floors map[string]float64
	logger logrus.FieldLogger
}

// NewEngine creates a valuation engine using the given static floor prices.
func NewEngine(floors map[string]float64, logger logrus.FieldLogger) *Engine {
	copied := make(map[string]float64, len(floors))
	for k, v := range floors {
		copied[k] = v
	}
	return &Engine{
		floors: copied,
		logger: logger.WithField("component", "valuation"),
	}
}

// FloorPrices returns a copy of the floor price table.
func (e *Engine) FloorPrices() map[string]float64 {
	out := make(map[string]float64, len(e.floors))
	for k, v := range e.floors {
		out[k] = v
	}
	return out
}

// UnitValue computes the token unit value, logging and counting every
// empty-supply substitution so operators can see it.
func (e *Engine) UnitValue(poolLamports uint64, publicSupply float64) float64 {
	if _, substituted := GuardPublicSupply(publicSupply); substituted {
		e.logger.WithField("public_supply", publicSupply).Warn("public supply unusable, substituting 1")
		observability.RecordPublicSupplySubstitution()
	}
	return ComputeTokenUnitValue(poolLamports, publicSupply)
}

// Aggregate merges token and NFT holdings into valued wallet positions.
// Order is first-seen: token rows in input order, then NFT-only wallets in
// input order. A wallet missing on either side gets zero for that side.
func (e *Engine) Aggregate(tokens []*domain.TokenHolding, nfts []*domain.NftHolding, unitValue float64) []*domain.WalletHolding {
	return Aggregate(tokens, nfts, unitValue, e.floors)
}

// Aggregate is the stateless form of Engine.Aggregate.
func Aggregate(tokens []*domain.TokenHolding, nfts []*domain.NftHolding, unitValue float64, floors map[string]float64) []*domain.WalletHolding {
	index := make(map[string]*domain.WalletHolding, len(tokens)+len(nfts))
	out := make([]*domain.WalletHolding, 0, len(tokens)+len(nfts))

	get := func(wallet string) *domain.WalletHolding {
		if h, ok := index[wallet]; ok {
			return h
		}
		h := &domain.WalletHolding{
			Wallet:    wallet,
			NftCounts: make(map[string]int64),
		}
		index[wallet] = h
		out = append(out, h)
		return h
	}

	for _, t := range tokens {
		if t == nil || t.Wallet == "" {
			continue
		}
		h := get(t.Wallet)
		h.TokenBalance += t.Balance
		if h.DisplayName == nil && t.DisplayName != nil && *t.DisplayName != "" {
			name := *t.DisplayName
			h.DisplayName = &name
		}
	}

	for _, n := range nfts {
		if n == nil || n.Wallet == "" || n.Count <= 0 {
			continue
		}
		h := get(n.Wallet)
		h.NftCounts[n.Symbol] += n.Count
	}

	for _, h := range out {
		h.TokenValue = TokenValue(h.TokenBalance, unitValue)
		h.NftValue = NftValue(h.NftCounts, floors)
	}
	return out
}
