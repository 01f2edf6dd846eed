package commands

//go:generate mockgen -source=$GOFILE -destination=../../testutil/mock/commands/$GOFILE -package=commandsmock

import (
	"context"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/infra"
	"closet-rental/internal/pkg/clock"
	"closet-rental/internal/pkg/errs"
	"closet-rental/internal/usecase/queries"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrNotItemOwner       = errs.New("only the owner can change this item")
	ErrItemHasOpenRentals = errs.New("item has pending or ongoing rentals")
)

type CreateItemInput struct {
	OwnerID     uuid.UUID
	Title       string
	PricePerDay string
	ImageURL    string
	Description string
	Size        string
	Category    string
	Condition   string
}

// UpdateItemInput changes only the fields that are set.
type UpdateItemInput struct {
	Title       *string
	ImageURL    *string
	Description *string
	Size        *string
	Category    *string
	Condition   *string
	Listed      *bool
}

type CatalogCommands interface {
	CreateItem(ctx context.Context, in CreateItemInput) (*queries.ItemView, error)
	ChangePrice(ctx context.Context, itemID, actorID uuid.UUID, pricePerDay string) (*queries.ItemView, error)
	UpdateItem(ctx context.Context, itemID, actorID uuid.UUID, in UpdateItemInput) (*queries.ItemView, error)
	// DeleteItem retires the listing. It is refused while any rental of the item is still open.
	DeleteItem(ctx context.Context, itemID, actorID uuid.UUID) error
}

type catalogUseCaseImpl struct {
	uow   shared.UnitOfWork
	index shared.AvailabilityIndex
	clock clock.Clock
}

func NewCatalogUseCase(uow shared.UnitOfWork, index shared.AvailabilityIndex, clk clock.Clock) CatalogCommands {
	return &catalogUseCaseImpl{uow: uow, index: index, clock: clk}
}

func (uc *catalogUseCaseImpl) CreateItem(ctx context.Context, in CreateItemInput) (*queries.ItemView, error) {
	price, err := catalog.ParseDailyPrice(in.PricePerDay)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	details, err := catalog.NewDetails(in.Description, in.Size, in.Category, in.Condition)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}
	item, err := catalog.NewItem(in.OwnerID, in.Title, price, in.ImageURL, details, uc.clock.Now())
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	err = uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		if err := tx.Items().Create(ctx, item); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return queries.NewItemView(item, nil, clock.Today(uc.clock)), nil
}

func (uc *catalogUseCaseImpl) ChangePrice(ctx context.Context, itemID, actorID uuid.UUID, pricePerDay string) (*queries.ItemView, error) {
	price, err := catalog.ParseDailyPrice(pricePerDay)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrDomainValidation)
	}

	return uc.modify(ctx, itemID, actorID, func(item *catalog.Item) error {
		item.ChangePrice(price, uc.clock.Now())
		return nil
	})
}

func (uc *catalogUseCaseImpl) UpdateItem(ctx context.Context, itemID, actorID uuid.UUID, in UpdateItemInput) (*queries.ItemView, error) {
	return uc.modify(ctx, itemID, actorID, func(item *catalog.Item) error {
		now := uc.clock.Now()
		if in.Title != nil {
			if err := item.Rename(*in.Title, now); err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
		}
		if in.ImageURL != nil {
			if err := item.ChangeImage(*in.ImageURL, now); err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
		}
		if in.touchesDetails() {
			current := item.Details()
			details, err := catalog.NewDetails(
				valueOr(in.Description, current.Description),
				valueOr(in.Size, current.Size),
				valueOr(in.Category, current.Category),
				valueOr(in.Condition, string(current.Condition)),
			)
			if err != nil {
				return errs.Mark(err, errs.ErrDomainValidation)
			}
			item.Describe(details, now)
		}
		if in.Listed != nil {
			item.SetListed(*in.Listed, now)
		}
		return nil
	})
}

func (uc *catalogUseCaseImpl) DeleteItem(ctx context.Context, itemID, actorID uuid.UUID) error {
	return uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := uc.loadOwned(ctx, tx, itemID, actorID)
		if err != nil {
			return err
		}

		open, err := tx.Rentals().HasOpenForItem(ctx, itemID)
		if err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		if open {
			return ErrItemHasOpenRentals
		}

		if err := item.Remove(uc.clock.Now()); err != nil {
			return errs.ErrItemNotFound
		}
		if err := tx.Items().Update(ctx, item); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		return nil
	})
}

// modify loads the item for its owner, applies change and saves it in one unit of work.
func (uc *catalogUseCaseImpl) modify(ctx context.Context, itemID, actorID uuid.UUID, change func(*catalog.Item) error) (*queries.ItemView, error) {
	var updated *catalog.Item
	err := uc.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		item, err := uc.loadOwned(ctx, tx, itemID, actorID)
		if err != nil {
			return err
		}
		if err := change(item); err != nil {
			return err
		}
		if err := tx.Items().Update(ctx, item); err != nil {
			return errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		updated = item
		return nil
	})
	if err != nil {
		return nil, err
	}

	return queries.NewItemView(updated, uc.index.LocksFor(itemID), clock.Today(uc.clock)), nil
}

func (uc *catalogUseCaseImpl) loadOwned(ctx context.Context, tx shared.Tx, itemID, actorID uuid.UUID) (*catalog.Item, error) {
	item, err := tx.Items().FindByID(ctx, itemID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, errs.ErrItemNotFound
		}
		return nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !item.IsOwnedBy(actorID) {
		return nil, ErrNotItemOwner
	}
	return item, nil
}

func (in UpdateItemInput) touchesDetails() bool {
	return in.Description != nil || in.Size != nil || in.Category != nil || in.Condition != nil
}

func valueOr(p *string, fallback string) string {
	if p == nil {
		return fallback
	}
	return *p
}
