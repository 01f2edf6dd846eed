package memstore

import (
	"context"
	"sort"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/infra"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type ItemRepository struct {
	store *Store
	tx    *memTx
}

// items are mutable aggregates, so the store only hands out copies
func cloneItem(item *catalog.Item) *catalog.Item {
	c := *item
	return &c
}

func (r *ItemRepository) Create(_ context.Context, item *catalog.Item) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.items[item.ID()]; exists {
		return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "item already exists", nil)
	}
	s.items[item.ID()] = cloneItem(item)
	r.tx.record(func() { delete(s.items, item.ID()) })
	return nil
}

func (r *ItemRepository) FindByID(_ context.Context, id uuid.UUID) (*catalog.Item, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	item, ok := s.items[id]
	if !ok || item.IsRemoved() {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "item not found", nil)
	}
	return cloneItem(item), nil
}

func (r *ItemRepository) Update(_ context.Context, item *catalog.Item) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.items[item.ID()]
	if !ok || prev.IsRemoved() {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "item not found", nil)
	}
	s.items[item.ID()] = cloneItem(item)
	r.tx.record(func() { s.items[prev.ID()] = prev })
	return nil
}

func (r *ItemRepository) List(_ context.Context, f shared.ItemFilter) ([]*catalog.Item, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*catalog.Item
	for _, item := range s.items {
		if !visible(item, f) {
			continue
		}
		out = append(out, cloneItem(item))
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out, nil
}

func visible(item *catalog.Item, f shared.ItemFilter) bool {
	if item.IsRemoved() {
		return false
	}
	if !item.IsListed() && !f.IncludeUnlisted {
		return false
	}
	if f.OwnerID != nil && item.OwnerID() != *f.OwnerID {
		return false
	}
	return f.Category == "" || item.Details().Category == f.Category
}
