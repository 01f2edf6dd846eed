package request

import (
	"closet-rental/internal/domain/rental"
	"closet-rental/internal/usecase/commands"
	"closet-rental/internal/usecase/queries"

	"github.com/google/uuid"
)

type CreateRentalRequest struct {
	ItemID    uuid.UUID `json:"item_id" binding:"required"`
	StartDate string    `json:"start_date" binding:"required"`
	EndDate   string    `json:"end_date" binding:"required"`
	Notes     string    `json:"notes" binding:"max=500"`
}

// ToInput parses the YYYY-MM-DD dates; ordering and past-date checks happen in the domain.
func (r *CreateRentalRequest) ToInput(renterID uuid.UUID) (commands.CreateRequestInput, error) {
	period, err := rental.ParseDateRange(r.StartDate, r.EndDate)
	if err != nil {
		return commands.CreateRequestInput{}, err
	}
	return commands.CreateRequestInput{
		ItemID:   r.ItemID,
		RenterID: renterID,
		Period:   period,
		Notes:    r.Notes,
	}, nil
}

type TransitionRequest struct {
	Event string `json:"event" binding:"required"`
}

func (r *TransitionRequest) ToEvent() (rental.Event, error) {
	return rental.ParseEvent(r.Event)
}

type ListRentalsQuery struct {
	Role   string `form:"role" binding:"omitempty,oneof=renter lender"`
	Status string `form:"status"`
	ItemID string `form:"item_id" binding:"omitempty,uuid"`
	Cursor string `form:"cursor"`
	Limit  int    `form:"limit" binding:"omitempty,min=1,max=200"`
}

func (q *ListRentalsQuery) ToFilter() (queries.RentalListFilter, *queries.Cursor) {
	f := queries.RentalListFilter{Role: q.Role, Status: q.Status}
	if id, err := uuid.Parse(q.ItemID); err == nil {
		f.ItemID = &id
	}
	var cursor *queries.Cursor
	if q.Cursor != "" {
		cursor = &queries.Cursor{After: q.Cursor}
	}
	return f, cursor
}
