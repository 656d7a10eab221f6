package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"buxdao-core/internal/domain"
	"buxdao-core/internal/storage"
)

// NftStore implements storage.NftStore using PostgreSQL.
type NftStore struct {
	pool *Pool
}

// NewNftStore creates a new NftStore.
func NewNftStore(pool *Pool) *NftStore {
	return &NftStore{pool: pool}
}

// Compile-time interface check.
var _ storage.NftStore = (*NftStore)(nil)

// nftSelect resolves owner and lister Discord identities through user_roles.
// Identity columns stored on nft_metadata take precedence over user_roles.
const nftSelect = `
	SELECT
		n.name,
		n.symbol,
		n.mint_address,
		n.owner_wallet,
		COALESCE(n.owner_discord_id, ow.discord_id),
		COALESCE(n.owner_name, ow.discord_name),
		n.original_lister,
		li.discord_id,
		li.discord_name,
		COALESCE(n.is_listed, FALSE),
		n.list_price::float8,
		n.last_sale_price::float8,
		n.rarity_rank,
		n.image_url
	FROM nft_metadata n
	LEFT JOIN user_roles ow ON ow.wallet_address = n.owner_wallet
	LEFT JOIN user_roles li ON li.wallet_address = n.original_lister
`

// GetByName retrieves an NFT by exact name within a collection. Returns ErrNotFound if not exists.
func (s *NftStore) GetByName(ctx context.Context, symbol, name string) (rec *domain.NftRecord, err error) {
	start := time.Now()
	defer func() { observe("nft_by_name", start, err) }()

	query := nftSelect + `
		WHERE n.symbol = $1 AND n.name = $2
		LIMIT 1
	`

	rec, err = scanNftRecord(s.pool.QueryRow(ctx, query, symbol, name))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get nft by name: %w", err)
	}
	return rec, nil
}

// GetByRank retrieves an NFT by rarity rank within a collection. Returns ErrNotFound if not exists.
func (s *NftStore) GetByRank(ctx context.Context, symbol string, rank int) (rec *domain.NftRecord, err error) {
	start := time.Now()
	defer func() { observe("nft_by_rank", start, err) }()

	query := nftSelect + `
		WHERE n.symbol = $1 AND n.rarity_rank = $2
		LIMIT 1
	`

	rec, err = scanNftRecord(s.pool.QueryRow(ctx, query, symbol, rank))
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get nft by rank: %w", err)
	}
	return rec, nil
}

// ListGallery retrieves images named "<namePrefix><n>" with n <= maxIndex, ordered by n.
func (s *NftStore) ListGallery(ctx context.Context, symbol, namePrefix string, maxIndex int) (images []*domain.GalleryImage, err error) {
	start := time.Now()
	defer func() { observe("nft_gallery", start, err) }()

	query := `
		SELECT name, image_url
		FROM nft_metadata
		WHERE symbol = $1
		  AND name LIKE $2
		  AND image_url IS NOT NULL
		  AND CAST(substring(name from '#([0-9]+)$') AS INTEGER) <= $3
		ORDER BY CAST(substring(name from '#([0-9]+)$') AS INTEGER), name
	`

	rows, err := s.pool.Query(ctx, query, symbol, namePrefix+"%", maxIndex)
	if err != nil {
		return nil, fmt.Errorf("query gallery: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var img domain.GalleryImage
		if err := rows.Scan(&img.Name, &img.ImageURL); err != nil {
			return nil, fmt.Errorf("scan gallery image: %w", err)
		}
		images = append(images, &img)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate gallery: %w", err)
	}
	return images, nil
}

// scanNftRecord scans a single row into NftRecord.
func scanNftRecord(row pgx.Row) (*domain.NftRecord, error) {
	var r domain.NftRecord

	err := row.Scan(
		&r.Name,
		&r.Symbol,
		&r.Mint,
		&r.OwnerWallet,
		&r.OwnerDiscordID,
		&r.OwnerName,
		&r.OriginalLister,
		&r.ListerDiscordID,
		&r.ListerName,
		&r.IsListed,
		&r.ListPrice,
		&r.LastSalePrice,
		&r.RarityRank,
		&r.ImageURL,
	)
	if err != nil {
		return nil, err
	}

	return &r, nil
}
