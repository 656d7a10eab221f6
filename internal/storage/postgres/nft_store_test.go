package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"buxdao-core/internal/storage"
)

func TestNftStore_GetByName(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertNft(t, ctx, pool, testNft{
		Mint:      "MintMM42",
		Name:      "Money Monsters #42",
		Symbol:    "MM",
		Owner:     ptr("OwnerWallet42"),
		IsListed:  true,
		ListPrice: ptr(1.5),
		LastSale:  ptr(0.9),
		Rank:      ptr(17),
		ImageURL:  ptr("https://img.example/42.png"),
	})
	insertUserRole(t, ctx, pool, "123456789", "monster_fan", "OwnerWallet42")

	store := NewNftStore(pool)

	rec, err := store.GetByName(ctx, "MM", "Money Monsters #42")
	require.NoError(t, err)

	assert.Equal(t, "Money Monsters #42", rec.Name)
	assert.Equal(t, "MintMM42", rec.Mint)
	require.NotNil(t, rec.OwnerWallet)
	assert.Equal(t, "OwnerWallet42", *rec.OwnerWallet)
	require.NotNil(t, rec.OwnerDiscordID)
	assert.Equal(t, "123456789", *rec.OwnerDiscordID)
	require.NotNil(t, rec.OwnerName)
	assert.Equal(t, "monster_fan", *rec.OwnerName)
	assert.True(t, rec.IsListed)
	require.NotNil(t, rec.ListPrice)
	assert.InDelta(t, 1.5, *rec.ListPrice, 0.0001)
	require.NotNil(t, rec.LastSalePrice)
	assert.InDelta(t, 0.9, *rec.LastSalePrice, 0.0001)
	require.NotNil(t, rec.RarityRank)
	assert.Equal(t, 17, *rec.RarityRank)
	assert.Nil(t, rec.OriginalLister)
	assert.Nil(t, rec.ListerDiscordID)
}

func TestNftStore_GetByNameNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewNftStore(pool)

	_, err := store.GetByName(context.Background(), "MM", "Money Monsters #99999")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNftStore_GetByRankWithLister(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertNft(t, ctx, pool, testNft{
		Mint:           "MintCat7",
		Name:           "Fcked Cat #7",
		Symbol:         "FCKEDCATZ",
		Owner:          ptr("EscrowWallet"),
		OriginalLister: ptr("ListerWallet"),
		IsListed:       true,
		ListPrice:      ptr(2.0),
		Rank:           ptr(3),
	})
	insertUserRole(t, ctx, pool, "555", "cat_seller", "ListerWallet")

	store := NewNftStore(pool)

	rec, err := store.GetByRank(ctx, "FCKEDCATZ", 3)
	require.NoError(t, err)
	assert.Equal(t, "Fcked Cat #7", rec.Name)
	require.NotNil(t, rec.ListerName)
	assert.Equal(t, "cat_seller", *rec.ListerName)
	require.NotNil(t, rec.ListerDiscordID)
	assert.Equal(t, "555", *rec.ListerDiscordID)
	assert.Nil(t, rec.OwnerDiscordID)
	assert.Nil(t, rec.ImageURL)
	assert.Nil(t, rec.LastSalePrice)
}

func TestNftStore_GetByRankNotFound(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	store := NewNftStore(pool)

	_, err := store.GetByRank(context.Background(), "MM", 99999)
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestNftStore_ListGallery(t *testing.T) {
	pool, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	insertNft(t, ctx, pool, testNft{Mint: "c1", Name: "Celebrity Catz #1", Symbol: "CelebCatz", ImageURL: ptr("/img/1.png")})
	insertNft(t, ctx, pool, testNft{Mint: "c2", Name: "Celebrity Catz #79", Symbol: "CelebCatz", ImageURL: ptr("/img/79.png")})
	insertNft(t, ctx, pool, testNft{Mint: "c3", Name: "Celebrity Catz #80", Symbol: "CelebCatz", ImageURL: ptr("/img/80.png")})
	insertNft(t, ctx, pool, testNft{Mint: "c4", Name: "Celebrity Catz #5", Symbol: "CelebCatz"})
	insertNft(t, ctx, pool, testNft{Mint: "c6", Name: "Celebrity Catz #9", Symbol: "CelebCatz", ImageURL: ptr("/img/9.png")})
	insertNft(t, ctx, pool, testNft{Mint: "c5", Name: "Celebrity Catz Special", Symbol: "CelebCatz", ImageURL: ptr("/img/s.png")})

	store := NewNftStore(pool)

	images, err := store.ListGallery(ctx, "CelebCatz", "Celebrity Catz #", 79)
	require.NoError(t, err)
	require.Len(t, images, 3)
	assert.Equal(t, "Celebrity Catz #1", images[0].Name)
	assert.Equal(t, "/img/1.png", images[0].ImageURL)
	assert.Equal(t, "Celebrity Catz #9", images[1].Name)
	assert.Equal(t, "Celebrity Catz #79", images[2].Name)
}
