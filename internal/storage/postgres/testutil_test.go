package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"buxdao-core/internal/storage/migrations"
)

// setupTestDB creates a PostgreSQL container for testing and applies migrations.
// Returns a cleanup function that must be called after tests complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := postgres.Run(ctx, "postgres:15-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	require.NoError(t, migrations.RunPostgresMigrations(ctx, pool), "failed to apply migrations")

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// ptr is a helper to create pointers to values.
func ptr[T any](v T) *T {
	return &v
}

// insertHolder seeds a bux_holders row.
func insertHolder(t *testing.T, ctx context.Context, pool *Pool, wallet string, name *string, balance float64, exempt bool) {
	t.Helper()
	_, err := pool.Exec(ctx,
		`INSERT INTO bux_holders (wallet_address, owner_name, balance, is_exempt) VALUES ($1, $2, $3, $4)`,
		wallet, name, balance, exempt)
	require.NoError(t, err, "failed to insert holder %s", wallet)
}

// testNft describes an nft_metadata row to seed.
type testNft struct {
	Mint           string
	Name           string
	Symbol         string
	Owner          *string
	OriginalLister *string
	IsListed       bool
	ListPrice      *float64
	LastSale       *float64
	Rank           *int
	ImageURL       *string
}

// insertNft seeds an nft_metadata row.
func insertNft(t *testing.T, ctx context.Context, pool *Pool, n testNft) {
	t.Helper()
	_, err := pool.Exec(ctx, `
		INSERT INTO nft_metadata (
			mint_address, name, symbol, owner_wallet, original_lister,
			is_listed, list_price, last_sale_price, rarity_rank, image_url
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		n.Mint, n.Name, n.Symbol, n.Owner, n.OriginalLister,
		n.IsListed, n.ListPrice, n.LastSale, n.Rank, n.ImageURL)
	require.NoError(t, err, "failed to insert nft %s", n.Name)
}

// insertUserRole links a wallet to a Discord identity.
func insertUserRole(t *testing.T, ctx context.Context, pool *Pool, discordID, discordName, wallet string) {
	t.Helper()
	_, err := pool.Exec(ctx,
		`INSERT INTO user_roles (discord_id, discord_name, wallet_address) VALUES ($1, $2, $3)`,
		discordID, discordName, wallet)
	require.NoError(t, err, "failed to insert user role %s", discordID)
}
