//go:build unit || integration

package builder

import (
	"time"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/domain/rental"
	reqdto "closet-rental/internal/handler/dto/request"
	"closet-rental/internal/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Today is the fixed calendar date used by builders and the mock clocks they return.
var Today = time.Date(2024, 5, 20, 0, 0, 0, 0, time.UTC)

type RentalBuilder struct {
	Item     catalog.Snapshot
	RenterID uuid.UUID
	Start    time.Time
	End      time.Time
	Notes    string
	Now      time.Time
	Locks    []rental.DateRange
}

func NewRentalBuilder() *RentalBuilder {
	return &RentalBuilder{
		Item: catalog.Snapshot{
			ID:          uuid.New(),
			OwnerID:     uuid.New(),
			Title:       "Banarasi silk saree",
			PricePerDay: decimal.NewFromInt(50),
			ImageURL:    "https://images.example.com/saree.jpg",
		},
		RenterID: uuid.New(),
		Start:    Today.AddDate(0, 0, 12),
		End:      Today.AddDate(0, 0, 14),
		Notes:    "Need it for a wedding",
		Now:      Today.Add(10 * time.Hour),
	}
}

func (b *RentalBuilder) With(mutate func(*RentalBuilder)) *RentalBuilder {
	mutate(b)
	return b
}

func (b *RentalBuilder) Clock() *clock.MockClock {
	return clock.NewMockClock(b.Now)
}

func (b *RentalBuilder) Period() rental.DateRange {
	return rental.NewDateRange(b.Start, b.End)
}

// Build methods
func (b *RentalBuilder) BuildDomain() (*rental.Rental, error) {
	factory := rental.NewFactory(b.Clock(), rental.NewDailyRateCalculator())
	return factory.CreateRequest(b.Item, b.RenterID, b.Period(), b.Notes, b.Locks)
}

type lifecycleStep struct {
	event  rental.Event
	lender bool
}

var pathTo = map[rental.Status][]lifecycleStep{
	rental.StatusPending:   nil,
	rental.StatusAccepted:  {{rental.EventAccept, true}},
	rental.StatusActive:    {{rental.EventAccept, true}, {rental.EventActivate, false}},
	rental.StatusCompleted: {{rental.EventAccept, true}, {rental.EventActivate, false}, {rental.EventComplete, true}},
	rental.StatusDeclined:  {{rental.EventDecline, true}},
}

// BuildInStatus walks a fresh request through the lifecycle until it reaches status.
func (b *RentalBuilder) BuildInStatus(status rental.Status) *rental.Rental {
	r, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	for _, s := range pathTo[status] {
		actor := r.RenterID()
		if s.lender {
			actor = r.LenderID()
		}
		r, _, err = r.Apply(s.event, actor, b.Now)
		if err != nil {
			panic(err)
		}
	}
	return r
}

func (b *RentalBuilder) BuildCreateRequestDTO() reqdto.CreateRentalRequest {
	return reqdto.CreateRentalRequest{
		ItemID:    b.Item.ID,
		StartDate: b.Start.Format(rental.DateLayout),
		EndDate:   b.End.Format(rental.DateLayout),
		Notes:     b.Notes,
	}
}

// Fluent builder methods
func (b *RentalBuilder) WithItem(item catalog.Snapshot) *RentalBuilder {
	b.Item = item
	return b
}

func (b *RentalBuilder) WithRenterID(id uuid.UUID) *RentalBuilder {
	b.RenterID = id
	return b
}

func (b *RentalBuilder) WithRange(start, end time.Time) *RentalBuilder {
	b.Start = start
	b.End = end
	return b
}

// WithDays sets the range relative to Today, both offsets inclusive.
func (b *RentalBuilder) WithDays(startOffset, endOffset int) *RentalBuilder {
	b.Start = Today.AddDate(0, 0, startOffset)
	b.End = Today.AddDate(0, 0, endOffset)
	return b
}

func (b *RentalBuilder) WithPricePerDay(price string) *RentalBuilder {
	b.Item.PricePerDay = decimal.RequireFromString(price)
	return b
}

func (b *RentalBuilder) WithNotes(notes string) *RentalBuilder {
	b.Notes = notes
	return b
}

func (b *RentalBuilder) WithLocks(locks ...rental.DateRange) *RentalBuilder {
	b.Locks = locks
	return b
}

func (b *RentalBuilder) WithNow(now time.Time) *RentalBuilder {
	b.Now = now
	return b
}

func (b *RentalBuilder) AsSelfRental() *RentalBuilder {
	b.RenterID = b.Item.OwnerID
	return b
}

// Range is shorthand for a DateRange relative to Today.
func Range(startOffset, endOffset int) rental.DateRange {
	return rental.NewDateRange(Today.AddDate(0, 0, startOffset), Today.AddDate(0, 0, endOffset))
}
