package holders

import (
	"sort"

	"buxdao-core/internal/domain"
	"buxdao-core/internal/solana"
	"buxdao-core/internal/valuation"
)

// Entry is one ranked leaderboard row before string formatting.
type Entry struct {
	Wallet         string
	DisplayAddress string
	TokenAmount    float64
	NftCount       int64
	NftSummary     string
	TotalValueSOL  float64
	TotalValueUSD  float64
}

// DisplayAddress returns the Discord display name when known, otherwise the
// masked wallet address.
func DisplayAddress(wallet string, displayName *string) string {
	if displayName != nil && *displayName != "" {
		return *displayName
	}
	return solana.MaskAddress(wallet)
}

// BuildLeaderboard merges token and NFT holdings into a ranked snapshot.
// Every wallet seen on either side appears once. Entries are ordered by
// total SOL value descending; equal totals keep merge order.
func BuildLeaderboard(tokens []*domain.TokenHolding, nfts []*domain.NftHolding, unitValue float64, floors map[string]float64, solPriceUSD float64) []Entry {
	merged := valuation.Aggregate(tokens, nfts, unitValue, floors)
	return rank(merged, solPriceUSD)
}

func rank(merged []*domain.WalletHolding, solPriceUSD float64) []Entry {
	entries := make([]Entry, 0, len(merged))
	for _, h := range merged {
		total := finite(h.TotalValue())
		count := h.NftCount()
		entries = append(entries, Entry{
			Wallet:         h.Wallet,
			DisplayAddress: DisplayAddress(h.Wallet, h.DisplayName),
			TokenAmount:    h.TokenBalance,
			NftCount:       count,
			NftSummary:     FormatNftSummary(count),
			TotalValueSOL:  total,
			TotalValueUSD:  finite(total * solPriceUSD),
		})
	}
	SortStable(entries)
	return entries
}

// SortStable orders entries by total SOL value descending, keeping the
// relative order of equal values.
func SortStable(entries []Entry) {
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].TotalValueSOL > entries[j].TotalValueSOL
	})
}
