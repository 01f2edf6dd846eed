package rental

import (
	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/pkg/clock"

	"github.com/google/uuid"
)

type Factory struct {
	Clock           clock.Clock
	PriceCalculator PriceCalculator
}

func NewFactory(clock clock.Clock, priceCalculator PriceCalculator) *Factory {
	return &Factory{
		Clock:           clock,
		PriceCalculator: priceCalculator,
	}
}

// CreateRequest builds a pending rental for item. locks are the item's current
// availability locks; the factory only reads them.
func (f *Factory) CreateRequest(
	item catalog.Snapshot,
	renterID uuid.UUID,
	period DateRange,
	notes string,
	locks []DateRange,
) (*Rental, error) {
	if renterID == item.OwnerID {
		return nil, ErrSelfRental
	}
	if _, err := normalizeNotes(notes); err != nil {
		return nil, err
	}

	now := f.Clock.Now()
	if err := ValidateRange(period, clock.DateOf(now), locks); err != nil {
		if ce, ok := AsConflict(err); ok {
			ce.ItemID = item.ID
		}
		return nil, err
	}

	total := f.PriceCalculator.Price(period, item.PricePerDay)
	return NewRental(item, renterID, period, total, notes, now)
}
