package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHoldingsStore_TokenBalancesOrdered(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertHolder(t, ctx, pool, "WalletSmall1111111111111111111111111111111", nil, 10, false)
	insertHolder(t, ctx, pool, "WalletBig22222222222222222222222222222222222", ptr("whale"), 5000, false)
	insertHolder(t, ctx, pool, "TreasuryExempt333333333333333333333333333333", nil, 90000, true)
	insertHolder(t, ctx, pool, "", nil, 77, false)

	store := NewHoldingsStore(pool)

	holdings, err := store.TokenBalances(ctx)
	require.NoError(t, err)
	require.Len(t, holdings, 3, "empty wallet must be excluded")

	assert.Equal(t, "TreasuryExempt333333333333333333333333333333", holdings[0].Wallet)
	assert.True(t, holdings[0].IsExempt)
	assert.Equal(t, "WalletBig22222222222222222222222222222222222", holdings[1].Wallet)
	require.NotNil(t, holdings[1].DisplayName)
	assert.Equal(t, "whale", *holdings[1].DisplayName)
	assert.InDelta(t, 5000.0, holdings[1].Balance, 0.0001)
	assert.Nil(t, holdings[2].DisplayName)
}

func TestHoldingsStore_TokenSupply(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertHolder(t, ctx, pool, "PublicA", nil, 100.5, false)
	insertHolder(t, ctx, pool, "PublicB", nil, 200, false)
	insertHolder(t, ctx, pool, "Exempt", nil, 1000, true)

	store := NewHoldingsStore(pool)

	supply, err := store.TokenSupply(ctx)
	require.NoError(t, err)
	assert.InDelta(t, 1300.5, supply.Total, 0.0001)
	assert.InDelta(t, 300.5, supply.Public, 0.0001)
}

func TestHoldingsStore_TokenSupplyEmpty(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewHoldingsStore(pool)

	supply, err := store.TokenSupply(context.Background())
	require.NoError(t, err)
	assert.Zero(t, supply.Total)
	assert.Zero(t, supply.Public)
}

func TestHoldingsStore_NftCounts(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertNft(t, ctx, pool, testNft{Mint: "m1", Name: "Money Monsters #1", Symbol: "MM", Owner: ptr("Alice")})
	insertNft(t, ctx, pool, testNft{Mint: "m2", Name: "Money Monsters #2", Symbol: "MM", Owner: ptr("Alice")})
	insertNft(t, ctx, pool, testNft{Mint: "m3", Name: "AI Bitbot #1", Symbol: "AIBB", Owner: ptr("Alice")})
	insertNft(t, ctx, pool, testNft{Mint: "m4", Name: "Money Monsters #3", Symbol: "MM", Owner: ptr("Bob")})
	insertNft(t, ctx, pool, testNft{Mint: "m5", Name: "Money Monsters #4", Symbol: "MM", Owner: ptr("Escrow")})
	insertNft(t, ctx, pool, testNft{Mint: "m6", Name: "Money Monsters #5", Symbol: "MM", Owner: nil})
	insertNft(t, ctx, pool, testNft{Mint: "m7", Name: "Money Monsters #6", Symbol: "MM", Owner: ptr("")})

	store := NewHoldingsStore(pool)

	t.Run("all collections", func(t *testing.T) {
		counts, err := store.NftCounts(ctx, "", []string{"Escrow"})
		require.NoError(t, err)
		require.Len(t, counts, 3)

		// Ordered by symbol, then wallet
		assert.Equal(t, "AIBB", counts[0].Symbol)
		assert.Equal(t, "Alice", counts[0].Wallet)
		assert.Equal(t, int64(1), counts[0].Count)
		assert.Equal(t, "MM", counts[1].Symbol)
		assert.Equal(t, "Alice", counts[1].Wallet)
		assert.Equal(t, int64(2), counts[1].Count)
		assert.Equal(t, "Bob", counts[2].Wallet)
	})

	t.Run("single collection", func(t *testing.T) {
		counts, err := store.NftCounts(ctx, "AIBB", []string{"Escrow"})
		require.NoError(t, err)
		require.Len(t, counts, 1)
		assert.Equal(t, "Alice", counts[0].Wallet)
	})

	t.Run("nil exclusion list keeps rows", func(t *testing.T) {
		counts, err := store.NftCounts(ctx, "MM", nil)
		require.NoError(t, err)
		require.Len(t, counts, 3)
		assert.Equal(t, "Escrow", counts[2].Wallet)
	})
}
