package storage

import (
	"context"

	"buxdao-core/internal/domain"
)

// HoldingsReader provides read access to token balances and NFT ownership.
type HoldingsReader interface {
	// TokenBalances retrieves every token holder ordered by balance DESC, wallet ASC.
	// Rows with a null or empty wallet are never returned.
	TokenBalances(ctx context.Context) ([]*domain.TokenHolding, error)

	// TokenSupply retrieves total and public (non-exempt) supply.
	// Public is 0 when no non-exempt balance exists.
	TokenSupply(ctx context.Context) (*domain.TokenSupply, error)

	// NftCounts retrieves per-wallet, per-symbol NFT counts.
	// An empty symbol means all collections. Wallets in excluded are skipped,
	// as are rows with a null or empty owner.
	NftCounts(ctx context.Context, symbol string, excluded []string) ([]*domain.NftHolding, error)
}

// NftStore provides read access to indexed NFT records.
type NftStore interface {
	// GetByName retrieves an NFT by exact name within a collection. Returns ErrNotFound if not exists.
	GetByName(ctx context.Context, symbol, name string) (*domain.NftRecord, error)

	// GetByRank retrieves an NFT by rarity rank within a collection. Returns ErrNotFound if not exists.
	GetByRank(ctx context.Context, symbol string, rank int) (*domain.NftRecord, error)

	// ListGallery retrieves images named "<namePrefix><n>" with n <= maxIndex, ordered by n.
	// namePrefix includes the "#", e.g. "Celebrity Catz #".
	ListGallery(ctx context.Context, symbol, namePrefix string, maxIndex int) ([]*domain.GalleryImage, error)
}
