package response

import (
	"closet-rental/internal/usecase/commands"
	"closet-rental/internal/usecase/queries"
)

type RentalResponse struct {
	ID                string   `json:"id"`
	ItemID            string   `json:"item_id"`
	ItemTitle         string   `json:"item_title"`
	ItemImageURL      string   `json:"item_image_url,omitempty"`
	RenterID          string   `json:"renter_id"`
	LenderID          string   `json:"lender_id"`
	ViewerRole        string   `json:"viewer_role,omitempty"`
	CounterpartyID    string   `json:"counterparty_id,omitempty"`
	StartDate         string   `json:"start_date"`
	EndDate           string   `json:"end_date"`
	TotalDays         int64    `json:"total_days"`
	DailyRate         string   `json:"daily_rate"`
	TotalPrice        string   `json:"total_price"`
	Status            string   `json:"status"`
	Notes             string   `json:"notes,omitempty"`
	CancelRequestedBy string   `json:"cancel_requested_by,omitempty"`
	AvailableEvents   []string `json:"available_events"`
	Version           int      `json:"version"`
	CreatedAt         int64    `json:"created_at"`
	UpdatedAt         int64    `json:"updated_at"`
}

func FromRentalView(v *queries.RentalView) *RentalResponse {
	res := &RentalResponse{
		ID:              v.ID.String(),
		ItemID:          v.ItemID.String(),
		ItemTitle:       v.ItemTitle,
		ItemImageURL:    v.ItemImageURL,
		RenterID:        v.RenterID.String(),
		LenderID:        v.LenderID.String(),
		ViewerRole:      v.ViewerRole,
		StartDate:       v.StartDate,
		EndDate:         v.EndDate,
		TotalDays:       v.TotalDays,
		DailyRate:       v.DailyRate,
		TotalPrice:      v.TotalPrice,
		Status:          v.Status,
		Notes:           v.Notes,
		AvailableEvents: v.AvailableEvents,
		Version:         v.Version,
		CreatedAt:       v.CreatedAt.Unix(),
		UpdatedAt:       v.UpdatedAt.Unix(),
	}
	if v.CounterpartyID != nil {
		res.CounterpartyID = v.CounterpartyID.String()
	}
	if v.CancelRequestedBy != nil {
		res.CancelRequestedBy = v.CancelRequestedBy.String()
	}
	if res.AvailableEvents == nil {
		res.AvailableEvents = []string{}
	}
	return res
}

type TransitionResponse struct {
	Rental *RentalResponse `json:"rental"`
	// Changed is false when the event only recorded one party's cancel consent.
	Changed         bool `json:"changed"`
	ConsentRecorded bool `json:"consent_recorded"`
}

func FromTransitionResult(r *commands.TransitionResult) *TransitionResponse {
	return &TransitionResponse{
		Rental:          FromRentalView(r.Rental),
		Changed:         r.Outcome.Changed,
		ConsentRecorded: r.Outcome.ConsentRecorded,
	}
}

type RentalListResponse struct {
	Rentals    []*RentalResponse `json:"rentals"`
	NextCursor string            `json:"next_cursor,omitempty"`
}

func FromRentalViews(vs []*queries.RentalView, next *queries.Cursor) *RentalListResponse {
	res := &RentalListResponse{Rentals: make([]*RentalResponse, 0, len(vs))}
	for _, v := range vs {
		res.Rentals = append(res.Rentals, FromRentalView(v))
	}
	if next != nil {
		res.NextCursor = next.After
	}
	return res
}
