package memstore

import (
	"context"
	"log/slog"
	"sync"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/domain/rental"
	"closet-rental/internal/domain/review"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

// Store keeps every aggregate in process memory. Transactions are serialized
// and undone in reverse order when the unit of work fails.
type Store struct {
	txMu sync.Mutex   // serializes units of work
	mu   sync.RWMutex // guards the maps below

	rentals        map[uuid.UUID]*rental.Rental
	items          map[uuid.UUID]*catalog.Item
	reviews        map[uuid.UUID]*review.Review
	reviewByAuthor map[reviewKey]uuid.UUID

	logger *slog.Logger
}

type reviewKey struct {
	rentalID uuid.UUID
	authorID uuid.UUID
}

func NewStore(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{
		rentals:        make(map[uuid.UUID]*rental.Rental),
		items:          make(map[uuid.UUID]*catalog.Item),
		reviews:        make(map[uuid.UUID]*review.Review),
		reviewByAuthor: make(map[reviewKey]uuid.UUID),
		logger:         logger,
	}
}

func (s *Store) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}

	tx := &memTx{store: s}
	if err := fn(ctx, tx); err != nil {
		tx.rollback()
		return err
	}
	return nil
}

func (s *Store) Rentals() *RentalRepository { return &RentalRepository{store: s} }
func (s *Store) Items() *ItemRepository     { return &ItemRepository{store: s} }
func (s *Store) Reviews() *ReviewRepository { return &ReviewRepository{store: s} }

type memTx struct {
	store *Store
	undo  []func()
}

func (t *memTx) Rentals() shared.RentalRepository {
	return &RentalRepository{store: t.store, tx: t}
}

func (t *memTx) Items() shared.ItemRepository {
	return &ItemRepository{store: t.store, tx: t}
}

func (t *memTx) Reviews() shared.ReviewRepository {
	return &ReviewRepository{store: t.store, tx: t}
}

// record must be called with store.mu held.
func (t *memTx) record(undo func()) {
	if t == nil {
		return
	}
	t.undo = append(t.undo, undo)
}

func (t *memTx) rollback() {
	if len(t.undo) == 0 {
		return
	}
	t.store.mu.Lock()
	defer t.store.mu.Unlock()
	for i := len(t.undo) - 1; i >= 0; i-- {
		t.undo[i]()
	}
	t.undo = nil
}
