package memstore

import (
	"bytes"
	"context"
	"sort"
	"time"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/infra"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type RentalRepository struct {
	store *Store
	tx    *memTx
}

func (r *RentalRepository) Create(_ context.Context, rent *rental.Rental) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.rentals[rent.ID()]; exists {
		return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "rental already exists", nil)
	}
	s.rentals[rent.ID()] = rent
	r.tx.record(func() { delete(s.rentals, rent.ID()) })
	return nil
}

func (r *RentalRepository) FindByID(_ context.Context, id uuid.UUID) (*rental.Rental, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	rent, ok := s.rentals[id]
	if !ok {
		return nil, infra.WrapRepoErr(s.logger, infra.KindNotFound, "rental not found", nil)
	}
	return rent, nil
}

func (r *RentalRepository) Update(_ context.Context, rent *rental.Rental, expectedVersion int) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, ok := s.rentals[rent.ID()]
	if !ok {
		return infra.WrapRepoErr(s.logger, infra.KindNotFound, "rental not found", nil)
	}
	if prev.Version() != expectedVersion {
		return infra.WrapRepoErr(s.logger, infra.KindVersionConflict, "rental version mismatch", nil)
	}
	s.rentals[rent.ID()] = rent
	r.tx.record(func() { s.rentals[prev.ID()] = prev })
	return nil
}

func (r *RentalRepository) HasOpenForItem(_ context.Context, itemID uuid.UUID) (bool, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, rent := range s.rentals {
		if rent.ItemID() == itemID && !rent.Status().IsTerminal() {
			return true, nil
		}
	}
	return false, nil
}

func (r *RentalRepository) LockedRanges(_ context.Context, itemID uuid.UUID) ([]rental.DateRange, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []rental.DateRange
	for _, rent := range s.rentals {
		if rent.ItemID() == itemID && rent.Status().HoldsLock() {
			out = append(out, rent.Period())
		}
	}
	return rental.UnionRanges(out), nil
}

func (r *RentalRepository) List(_ context.Context, f shared.RentalFilter) ([]*rental.Rental, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*rental.Rental
	for _, rent := range s.rentals {
		if matches(rent, f) {
			out = append(out, rent)
		}
	}
	sortNewestFirst(out)

	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *RentalRepository) ListHoldingLocks(_ context.Context) ([]*rental.Rental, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*rental.Rental
	for _, rent := range s.rentals {
		if rent.Status().HoldsLock() {
			out = append(out, rent)
		}
	}
	return out, nil
}

func (r *RentalRepository) ListDue(_ context.Context, today time.Time) ([]*rental.Rental, error) {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*rental.Rental
	for _, rent := range s.rentals {
		if rent.IsDueForActivation(today) || rent.IsDueForCompletion(today) {
			out = append(out, rent)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Period().Start().Before(out[j].Period().Start())
	})
	return out, nil
}

func matches(rent *rental.Rental, f shared.RentalFilter) bool {
	if f.PartyID != uuid.Nil {
		switch f.Role {
		case rental.RoleRenter:
			if rent.RenterID() != f.PartyID {
				return false
			}
		case rental.RoleLender:
			if rent.LenderID() != f.PartyID {
				return false
			}
		default:
			if !rent.IsParty(f.PartyID) {
				return false
			}
		}
	}
	if f.Status != nil && rent.Status() != *f.Status {
		return false
	}
	if f.ItemID != nil && rent.ItemID() != *f.ItemID {
		return false
	}
	if !f.AfterCreatedAt.IsZero() && !olderThan(rent, f.AfterCreatedAt, f.AfterID) {
		return false
	}
	return true
}

// olderThan orders like the SQL keyset (created_at, id) DESC at microsecond precision.
func olderThan(rent *rental.Rental, createdAt time.Time, id uuid.UUID) bool {
	a, b := rent.CreatedAt().UnixMicro(), createdAt.UnixMicro()
	if a != b {
		return a < b
	}
	rid := rent.ID()
	return bytes.Compare(rid[:], id[:]) < 0
}

func sortNewestFirst(rs []*rental.Rental) {
	sort.Slice(rs, func(i, j int) bool {
		a, b := rs[i].CreatedAt().UnixMicro(), rs[j].CreatedAt().UnixMicro()
		if a != b {
			return a > b
		}
		ai, bi := rs[i].ID(), rs[j].ID()
		return bytes.Compare(ai[:], bi[:]) > 0
	})
}
