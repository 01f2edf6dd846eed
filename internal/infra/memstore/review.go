package memstore

import (
	"context"
	"sort"

	"closet-rental/internal/domain/review"
	"closet-rental/internal/infra"

	"github.com/google/uuid"
)

type ReviewRepository struct {
	store *Store
	tx    *memTx
}

func (r *ReviewRepository) Create(_ context.Context, rev *review.Review) error {
	s := r.store
	s.mu.Lock()
	defer s.mu.Unlock()

	key := reviewKey{rentalID: rev.RentalID(), authorID: rev.AuthorID()}
	if _, exists := s.reviewByAuthor[key]; exists {
		return infra.WrapRepoErr(s.logger, infra.KindDuplicateKey, "review already exists for rental and author", nil)
	}
	s.reviews[rev.ID()] = rev
	s.reviewByAuthor[key] = rev.ID()
	r.tx.record(func() {
		delete(s.reviews, rev.ID())
		delete(s.reviewByAuthor, key)
	})
	return nil
}

func (r *ReviewRepository) ListByRental(_ context.Context, rentalID uuid.UUID) ([]*review.Review, error) {
	return r.filter(func(rev *review.Review) bool { return rev.RentalID() == rentalID }), nil
}

func (r *ReviewRepository) ListBySubject(_ context.Context, subjectID uuid.UUID) ([]*review.Review, error) {
	return r.filter(func(rev *review.Review) bool { return rev.SubjectID() == subjectID }), nil
}

func (r *ReviewRepository) filter(keep func(*review.Review) bool) []*review.Review {
	s := r.store
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []*review.Review
	for _, rev := range s.reviews {
		if keep(rev) {
			out = append(out, rev)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt().After(out[j].CreatedAt())
	})
	return out
}
