package domain

// TokenHolding is one row of the bux_holders table.
type TokenHolding struct {
	Wallet      string  // wallet address (identity)
	DisplayName *string // Discord display name (nullable)
	Balance     float64 // token balance, non-negative
	IsExempt    bool    // excluded from circulating supply
}

// TokenSupply is the aggregate token supply.
// Public excludes exempt wallets and is the valuation denominator.
type TokenSupply struct {
	Total  float64
	Public float64
}

// NftHolding is the number of NFTs a wallet holds in one collection.
type NftHolding struct {
	Wallet string
	Symbol string
	Count  int64
}

// WalletHolding is the merged, valued position of a single wallet.
// Derived per request, never persisted.
type WalletHolding struct {
	Wallet       string
	DisplayName  *string
	TokenBalance float64
	NftCounts    map[string]int64 // keyed by collection symbol
	TokenValue   float64          // SOL
	NftValue     float64          // SOL
}

// TotalValue returns token value plus NFT value in SOL.
func (h *WalletHolding) TotalValue() float64 {
	return h.TokenValue + h.NftValue
}

// NftCount returns the number of NFTs across all collections.
func (h *WalletHolding) NftCount() int64 {
	var n int64
	for _, c := range h.NftCounts {
		n += c
	}
	return n
}
