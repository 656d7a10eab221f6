package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"buxdao-core/internal/domain"
	"buxdao-core/internal/storage"
)

// HoldingsStore implements storage.HoldingsReader using PostgreSQL.
type HoldingsStore struct {
	pool *Pool
}

// NewHoldingsStore creates a new HoldingsStore.
func NewHoldingsStore(pool *Pool) *HoldingsStore {
	return &HoldingsStore{pool: pool}
}

// Compile-time interface check.
var _ storage.HoldingsReader = (*HoldingsStore)(nil)

// TokenBalances retrieves every token holder ordered by balance DESC, wallet ASC.
func (s *HoldingsStore) TokenBalances(ctx context.Context) (holdings []*domain.TokenHolding, err error) {
	start := time.Now()
	defer func() { observe("token_balances", start, err) }()

	query := `
		SELECT wallet_address, owner_name, balance::float8, is_exempt
		FROM bux_holders
		WHERE wallet_address IS NOT NULL AND wallet_address <> ''
		ORDER BY balance DESC, wallet_address ASC
	`

	rows, err := s.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query token balances: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		h, err := scanTokenHolding(rows)
		if err != nil {
			return nil, fmt.Errorf("scan token holding: %w", err)
		}
		holdings = append(holdings, h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate token balances: %w", err)
	}
	return holdings, nil
}

// TokenSupply retrieves total and public (non-exempt) supply.
func (s *HoldingsStore) TokenSupply(ctx context.Context) (supply *domain.TokenSupply, err error) {
	start := time.Now()
	defer func() { observe("token_supply", start, err) }()

	query := `
		SELECT
			COALESCE(SUM(balance), 0)::float8,
			COALESCE(SUM(CASE WHEN is_exempt = FALSE THEN balance ELSE 0 END), 0)::float8
		FROM bux_holders
	`

	var ts domain.TokenSupply
	if err := s.pool.QueryRow(ctx, query).Scan(&ts.Total, &ts.Public); err != nil {
		return nil, fmt.Errorf("query token supply: %w", err)
	}
	return &ts, nil
}

// NftCounts retrieves per-wallet, per-symbol NFT counts.
func (s *HoldingsStore) NftCounts(ctx context.Context, symbol string, excluded []string) (holdings []*domain.NftHolding, err error) {
	start := time.Now()
	defer func() { observe("nft_counts", start, err) }()

	// NOT (x = ANY(NULL)) is NULL, which would drop every row.
	if excluded == nil {
		excluded = []string{}
	}

	query := `
		SELECT owner_wallet, symbol, COUNT(*)
		FROM nft_metadata
		WHERE owner_wallet IS NOT NULL
		  AND owner_wallet <> ''
		  AND NOT (owner_wallet = ANY($1::text[]))
		  AND ($2::text = '' OR symbol = $2::text)
		GROUP BY owner_wallet, symbol
		HAVING COUNT(*) > 0
		ORDER BY symbol ASC, owner_wallet ASC
	`

	rows, err := s.pool.Query(ctx, query, excluded, symbol)
	if err != nil {
		return nil, fmt.Errorf("query nft counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var h domain.NftHolding
		if err := rows.Scan(&h.Wallet, &h.Symbol, &h.Count); err != nil {
			return nil, fmt.Errorf("scan nft holding: %w", err)
		}
		holdings = append(holdings, &h)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate nft counts: %w", err)
	}
	return holdings, nil
}

// scanTokenHolding scans a single row into TokenHolding.
func scanTokenHolding(row pgx.Row) (*domain.TokenHolding, error) {
	var h domain.TokenHolding

	err := row.Scan(
		&h.Wallet,
		&h.DisplayName,
		&h.Balance,
		&h.IsExempt,
	)
	if err != nil {
		return nil, err
	}

	return &h, nil
}
