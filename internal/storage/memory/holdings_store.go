package memory

import (
	"context"
	"sort"
	"sync"

	"buxdao-core/internal/domain"
	"buxdao-core/internal/storage"
)

// HoldingsStore is an in-memory implementation of storage.HoldingsReader.
// NFT ownership is derived from an NftStore when one is attached.
type HoldingsStore struct {
	mu      sync.RWMutex
	holders map[string]*domain.TokenHolding // keyed by wallet
	nfts    *NftStore
}

// NewHoldingsStore creates a new in-memory holdings store reading NFT ownership from nfts.
func NewHoldingsStore(nfts *NftStore) *HoldingsStore {
	return &HoldingsStore{
		holders: make(map[string]*domain.TokenHolding),
		nfts:    nfts,
	}
}

// PutHolder inserts or replaces a token holder.
func (s *HoldingsStore) PutHolder(h *domain.TokenHolding) error {
	if h == nil {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	hCopy := *h
	s.holders[h.Wallet] = &hCopy
	return nil
}

// TokenBalances retrieves every token holder ordered by balance DESC, wallet ASC.
func (s *HoldingsStore) TokenBalances(_ context.Context) ([]*domain.TokenHolding, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	result := make([]*domain.TokenHolding, 0, len(s.holders))
	for _, h := range s.holders {
		if h.Wallet == "" {
			continue
		}
		hCopy := *h
		result = append(result, &hCopy)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Balance != result[j].Balance {
			return result[i].Balance > result[j].Balance
		}
		return result[i].Wallet < result[j].Wallet
	})

	return result, nil
}

// TokenSupply retrieves total and public (non-exempt) supply.
func (s *HoldingsStore) TokenSupply(_ context.Context) (*domain.TokenSupply, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var supply domain.TokenSupply
	for _, h := range s.holders {
		supply.Total += h.Balance
		if !h.IsExempt {
			supply.Public += h.Balance
		}
	}
	return &supply, nil
}

// NftCounts retrieves per-wallet, per-symbol NFT counts ordered by symbol, wallet.
func (s *HoldingsStore) NftCounts(_ context.Context, symbol string, excluded []string) ([]*domain.NftHolding, error) {
	if s.nfts == nil {
		return nil, nil
	}

	skip := make(map[string]bool, len(excluded))
	for _, w := range excluded {
		skip[w] = true
	}

	type key struct{ wallet, symbol string }
	counts := make(map[key]int64)

	s.nfts.mu.RLock()
	for _, r := range s.nfts.records {
		if r.OwnerWallet == nil || *r.OwnerWallet == "" || skip[*r.OwnerWallet] {
			continue
		}
		if symbol != "" && r.Symbol != symbol {
			continue
		}
		counts[key{*r.OwnerWallet, r.Symbol}]++
	}
	s.nfts.mu.RUnlock()

	result := make([]*domain.NftHolding, 0, len(counts))
	for k, n := range counts {
		result = append(result, &domain.NftHolding{Wallet: k.wallet, Symbol: k.symbol, Count: n})
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].Symbol != result[j].Symbol {
			return result[i].Symbol < result[j].Symbol
		}
		return result[i].Wallet < result[j].Wallet
	})

	return result, nil
}

var _ storage.HoldingsReader = (*HoldingsStore)(nil)
