// Package collection holds the static NFT collection table shared by the
// leaderboard and the lookup commands.
package collection

import (
	"errors"
	"strconv"
	"strings"
)

// ErrUnknownCollection is returned when a key, slug or symbol is not registered.
var ErrUnknownCollection = errors.New("unknown collection")

// Collection describes one NFT collection of the project.
type Collection struct {
	Key        string  // short key used by chat commands (e.g. "mm")
	Slug       string  // long name used by the website (e.g. "moneymonsters")
	Name       string  // display name, also the prefix of every NFT name
	Symbol     string  // on-chain / indexer symbol (e.g. "MM")
	HasRarity  bool    // rarity ranks exist for this collection
	Logo       string  // site-relative logo path
	Color      int     // embed accent color
	FloorPrice float64 // static floor price fallback in SOL
}

// ItemName returns the indexed NFT name for a token index, e.g. "Money Monsters #42".
func (c Collection) ItemName(index int) string {
	return c.Name + " #" + strconv.Itoa(index)
}

// Registry is an immutable collection table. Lookups return copies.
type Registry struct {
	ordered  []Collection
	byKey    map[string]int
	bySlug   map[string]int
	bySymbol map[string]int
}

// NewRegistry builds a registry from the given collections, preserving order.
// Duplicate keys, slugs or symbols are rejected.
func NewRegistry(collections ...Collection) (*Registry, error) {
	r := &Registry{
		ordered:  make([]Collection, 0, len(collections)),
		byKey:    make(map[string]int, len(collections)),
		bySlug:   make(map[string]int, len(collections)),
		bySymbol: make(map[string]int, len(collections)),
	}
	for _, c := range collections {
		if c.Key == "" || c.Symbol == "" {
			return nil, errors.New("collection key and symbol are required")
		}
		slug := strings.ToLower(c.Slug)
		if _, dup := r.byKey[c.Key]; dup {
			return nil, errors.New("duplicate collection key: " + c.Key)
		}
		if _, dup := r.bySymbol[c.Symbol]; dup {
			return nil, errors.New("duplicate collection symbol: " + c.Symbol)
		}
		if _, dup := r.bySlug[slug]; dup && slug != "" {
			return nil, errors.New("duplicate collection slug: " + c.Slug)
		}
		idx := len(r.ordered)
		r.ordered = append(r.ordered, c)
		r.byKey[c.Key] = idx
		r.bySymbol[c.Symbol] = idx
		if slug != "" {
			r.bySlug[slug] = idx
		}
	}
	return r, nil
}

var defaultRegistry = mustRegistry(
	Collection{Key: "cat", Slug: "fckedcatz", Name: "Fcked Cat", Symbol: "FCKEDCATZ", HasRarity: true, Logo: "/logos/cat.PNG", Color: 0xFFF44D, FloorPrice: 0.045},
	Collection{Key: "mm", Slug: "moneymonsters", Name: "Money Monsters", Symbol: "MM", HasRarity: true, Logo: "/logos/monster.PNG", Color: 0x4DFFFF, FloorPrice: 0.069},
	Collection{Key: "bot", Slug: "aibitbots", Name: "AI Bitbot", Symbol: "AIBB", HasRarity: false, Logo: "/logos/bot.PNG", Color: 0xFF4DFF, FloorPrice: 0.35},
	Collection{Key: "mm3d", Slug: "moneymonsters3d", Name: "Money Monsters 3D", Symbol: "MM3D", HasRarity: true, Logo: "/logos/monster.PNG", Color: 0x4DFF4D, FloorPrice: 0.04},
	Collection{Key: "celeb", Slug: "celebcatz", Name: "Celebrity Catz", Symbol: "CelebCatz", HasRarity: false, Logo: "/logos/celeb.PNG", Color: 0xFF4D4D, FloorPrice: 0.489},
)

// Default returns the project's collection table.
func Default() *Registry {
	return defaultRegistry
}

func mustRegistry(collections ...Collection) *Registry {
	r, err := NewRegistry(collections...)
	if err != nil {
		panic(err)
	}
	return r
}

// ByKey finds a collection by its short key (exact match).
func (r *Registry) ByKey(key string) (Collection, error) {
	if idx, ok := r.byKey[key]; ok {
		return r.ordered[idx], nil
	}
	return Collection{}, ErrUnknownCollection
}

// BySlug finds a collection by its website slug (case-insensitive).
func (r *Registry) BySlug(slug string) (Collection, error) {
	if idx, ok := r.bySlug[strings.ToLower(slug)]; ok {
		return r.ordered[idx], nil
	}
	return Collection{}, ErrUnknownCollection
}

// BySymbol finds a collection by its on-chain symbol.
func (r *Registry) BySymbol(symbol string) (Collection, error) {
	if idx, ok := r.bySymbol[symbol]; ok {
		return r.ordered[idx], nil
	}
	return Collection{}, ErrUnknownCollection
}

// Resolve accepts either a slug or a short key.
func (r *Registry) Resolve(keyOrSlug string) (Collection, error) {
	if c, err := r.BySlug(keyOrSlug); err == nil {
		return c, nil
	}
	return r.ByKey(keyOrSlug)
}

// All returns every collection in table order.
func (r *Registry) All() []Collection {
	out := make([]Collection, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// Keys returns the short keys in table order.
func (r *Registry) Keys() []string {
	keys := make([]string, len(r.ordered))
	for i, c := range r.ordered {
		keys[i] = c.Key
	}
	return keys
}

// Slugs returns the website slugs in the order the leaderboard lists them.
func (r *Registry) Slugs() []string {
	slugs := make([]string, 0, len(r.ordered))
	for _, c := range r.ordered {
		if c.Slug != "" {
			slugs = append(slugs, c.Slug)
		}
	}
	return slugs
}

// FloorPrices returns a fresh symbol -> floor price map.
func (r *Registry) FloorPrices() map[string]float64 {
	floors := make(map[string]float64, len(r.ordered))
	for _, c := range r.ordered {
		floors[c.Symbol] = c.FloorPrice
	}
	return floors
}
