package memory

import (
	"context"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"sync"

	"buxdao-core/internal/domain"
	"buxdao-core/internal/storage"
)

var itemIndexPattern = regexp.MustCompile(`#([0-9]+)$`)

// NftStore is an in-memory implementation of storage.NftStore.
type NftStore struct {
	mu      sync.RWMutex
	records map[string]*domain.NftRecord // keyed by mint
}

// NewNftStore creates a new in-memory NFT store.
func NewNftStore() *NftStore {
	return &NftStore{
		records: make(map[string]*domain.NftRecord),
	}
}

// Put inserts or replaces a record keyed by mint.
func (s *NftStore) Put(r *domain.NftRecord) error {
	if r == nil || r.Mint == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	rCopy := *r
	s.records[r.Mint] = &rCopy
	return nil
}

// GetByName retrieves an NFT by exact name within a collection. Returns ErrNotFound if not exists.
func (s *NftStore) GetByName(_ context.Context, symbol, name string) (*domain.NftRecord, error) {
	return s.find(func(r *domain.NftRecord) bool {
		return r.Symbol == symbol && r.Name == name
	})
}

// GetByRank retrieves an NFT by rarity rank within a collection. Returns ErrNotFound if not exists.
func (s *NftStore) GetByRank(_ context.Context, symbol string, rank int) (*domain.NftRecord, error) {
	return s.find(func(r *domain.NftRecord) bool {
		return r.Symbol == symbol && r.RarityRank != nil && *r.RarityRank == rank
	})
}

// ListGallery retrieves images named "<namePrefix><n>" with n <= maxIndex, ordered by n.
func (s *NftStore) ListGallery(_ context.Context, symbol, namePrefix string, maxIndex int) ([]*domain.GalleryImage, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	type indexed struct {
		n   int
		img *domain.GalleryImage
	}
	var matches []indexed
	for _, r := range s.records {
		if r.Symbol != symbol || !strings.HasPrefix(r.Name, namePrefix) || r.ImageURL == nil {
			continue
		}
		m := itemIndexPattern.FindStringSubmatch(r.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil || n > maxIndex {
			continue
		}
		matches = append(matches, indexed{n: n, img: &domain.GalleryImage{Name: r.Name, ImageURL: *r.ImageURL}})
	}

	sort.Slice(matches, func(i, j int) bool {
		if matches[i].n != matches[j].n {
			return matches[i].n < matches[j].n
		}
		return matches[i].img.Name < matches[j].img.Name
	})

	result := make([]*domain.GalleryImage, 0, len(matches))
	for _, m := range matches {
		result = append(result, m.img)
	}
	return result, nil
}

// find returns a copy of the first match in mint order.
func (s *NftStore) find(match func(*domain.NftRecord) bool) (*domain.NftRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	mints := make([]string, 0, len(s.records))
	for mint := range s.records {
		mints = append(mints, mint)
	}
	sort.Strings(mints)

	for _, mint := range mints {
		r := s.records[mint]
		if match(r) {
			rCopy := *r
			return &rCopy, nil
		}
	}
	return nil, storage.ErrNotFound
}

var _ storage.NftStore = (*NftStore)(nil)
