package collection

import (
	"errors"
	"testing"
)

func TestDefault_Lookups(t *testing.T) {
	reg := Default()

	c, err := reg.ByKey("mm")
	if err != nil {
		t.Fatalf("ByKey(mm): %v", err)
	}
	if c.Name != "Money Monsters" || c.Symbol != "MM" || !c.HasRarity {
		t.Errorf("unexpected collection: %+v", c)
	}

	if _, err := reg.ByKey("MM"); !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("expected ErrUnknownCollection for key match with wrong case, got %v", err)
	}

	c, err = reg.BySlug("MoneyMonsters3D")
	if err != nil {
		t.Fatalf("BySlug: %v", err)
	}
	if c.Key != "mm3d" {
		t.Errorf("expected mm3d, got %s", c.Key)
	}

	c, err = reg.Resolve("celeb")
	if err != nil {
		t.Fatalf("Resolve(celeb): %v", err)
	}
	if c.HasRarity {
		t.Error("expected celeb to have no rarity")
	}

	c, err = reg.BySymbol("AIBB")
	if err != nil {
		t.Fatalf("BySymbol(AIBB): %v", err)
	}
	if c.Key != "bot" {
		t.Errorf("expected bot, got %s", c.Key)
	}

	if _, err := reg.Resolve("nope"); !errors.Is(err, ErrUnknownCollection) {
		t.Errorf("expected ErrUnknownCollection, got %v", err)
	}
}

func TestCollection_ItemName(t *testing.T) {
	c, _ := Default().ByKey("mm")
	if got := c.ItemName(42); got != "Money Monsters #42" {
		t.Errorf("expected Money Monsters #42, got %s", got)
	}
}

func TestRegistry_FloorPricesIsCopy(t *testing.T) {
	reg := Default()

	floors := reg.FloorPrices()
	if floors["MM"] != 0.069 {
		t.Errorf("expected MM floor 0.069, got %v", floors["MM"])
	}
	floors["MM"] = 100

	if reg.FloorPrices()["MM"] != 0.069 {
		t.Error("mutating the returned map changed the registry")
	}
}

func TestRegistry_KeysOrder(t *testing.T) {
	keys := Default().Keys()
	want := []string{"cat", "mm", "bot", "mm3d", "celeb"}

	if len(keys) != len(want) {
		t.Fatalf("expected %d keys, got %d", len(want), len(keys))
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %s, want %s", i, keys[i], want[i])
		}
	}
}

func TestNewRegistry_Duplicates(t *testing.T) {
	_, err := NewRegistry(
		Collection{Key: "a", Slug: "one", Symbol: "A"},
		Collection{Key: "a", Slug: "two", Symbol: "B"},
	)
	if err == nil {
		t.Error("expected duplicate key error")
	}

	_, err = NewRegistry(
		Collection{Key: "a", Slug: "one", Symbol: "A"},
		Collection{Key: "b", Slug: "ONE", Symbol: "B"},
	)
	if err == nil {
		t.Error("expected duplicate slug error")
	}

	_, err = NewRegistry(Collection{Key: "", Symbol: "A"})
	if err == nil {
		t.Error("expected missing key error")
	}
}

func TestRegistry_Slugs(t *testing.T) {
	slugs := Default().Slugs()
	want := []string{"fckedcatz", "moneymonsters", "aibitbots", "moneymonsters3d", "celebcatz"}

	if len(slugs) != len(want) {
		t.Fatalf("expected %d slugs, got %d", len(want), len(slugs))
	}
	for i := range want {
		if slugs[i] != want[i] {
			t.Errorf("slugs[%d] = %s, want %s", i, slugs[i], want[i])
		}
	}
}
