package memory

import (
	"context"
	"testing"

	"buxdao-core/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestHoldingsStore_TokenBalancesOrder(t *testing.T) {
	store := NewHoldingsStore(nil)
	ctx := context.Background()

	for _, h := range []*domain.TokenHolding{
		{Wallet: "b-wallet", Balance: 100},
		{Wallet: "a-wallet", Balance: 100},
		{Wallet: "c-wallet", Balance: 500},
		{Wallet: "", Balance: 900},
	} {
		if err := store.PutHolder(h); err != nil {
			t.Fatalf("PutHolder failed: %v", err)
		}
	}

	holdings, err := store.TokenBalances(ctx)
	if err != nil {
		t.Fatalf("TokenBalances failed: %v", err)
	}

	want := []string{"c-wallet", "a-wallet", "b-wallet"}
	if len(holdings) != len(want) {
		t.Fatalf("expected %d holdings, got %d", len(want), len(holdings))
	}
	for i, w := range want {
		if holdings[i].Wallet != w {
			t.Errorf("position %d: expected %s, got %s", i, w, holdings[i].Wallet)
		}
	}
}

func TestHoldingsStore_TokenSupply(t *testing.T) {
	store := NewHoldingsStore(nil)

	_ = store.PutHolder(&domain.TokenHolding{Wallet: "w1", Balance: 40})
	_ = store.PutHolder(&domain.TokenHolding{Wallet: "w2", Balance: 60})
	_ = store.PutHolder(&domain.TokenHolding{Wallet: "treasury", Balance: 900, IsExempt: true})

	supply, err := store.TokenSupply(context.Background())
	if err != nil {
		t.Fatalf("TokenSupply failed: %v", err)
	}
	if supply.Total != 1000 {
		t.Errorf("expected total 1000, got %f", supply.Total)
	}
	if supply.Public != 100 {
		t.Errorf("expected public 100, got %f", supply.Public)
	}
}

func TestHoldingsStore_NftCounts(t *testing.T) {
	nfts := NewNftStore()
	store := NewHoldingsStore(nfts)
	ctx := context.Background()

	records := []*domain.NftRecord{
		{Mint: "m1", Name: "Money Monsters #1", Symbol: "MM", OwnerWallet: strPtr("alice")},
		{Mint: "m2", Name: "Money Monsters #2", Symbol: "MM", OwnerWallet: strPtr("alice")},
		{Mint: "m3", Name: "AI Bitbot #1", Symbol: "AIBB", OwnerWallet: strPtr("bob")},
		{Mint: "m4", Name: "AI Bitbot #2", Symbol: "AIBB", OwnerWallet: strPtr("escrow")},
		{Mint: "m5", Name: "AI Bitbot #3", Symbol: "AIBB", OwnerWallet: nil},
		{Mint: "m6", Name: "AI Bitbot #4", Symbol: "AIBB", OwnerWallet: strPtr("")},
	}
	for _, r := range records {
		if err := nfts.Put(r); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	counts, err := store.NftCounts(ctx, "", []string{"escrow"})
	if err != nil {
		t.Fatalf("NftCounts failed: %v", err)
	}
	if len(counts) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(counts))
	}
	if counts[0].Symbol != "AIBB" || counts[0].Wallet != "bob" || counts[0].Count != 1 {
		t.Errorf("unexpected first row: %+v", counts[0])
	}
	if counts[1].Symbol != "MM" || counts[1].Wallet != "alice" || counts[1].Count != 2 {
		t.Errorf("unexpected second row: %+v", counts[1])
	}

	filtered, err := store.NftCounts(ctx, "MM", nil)
	if err != nil {
		t.Fatalf("NftCounts failed: %v", err)
	}
	if len(filtered) != 1 || filtered[0].Wallet != "alice" {
		t.Errorf("expected only alice for MM, got %+v", filtered)
	}
}
