package queries

import (
	"time"

	"closet-rental/internal/domain/catalog"
	"closet-rental/internal/domain/rental"
	"closet-rental/internal/domain/review"
	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

// RentalView is a rental as seen by one of its parties.
type RentalView struct {
	ID                uuid.UUID  `json:"id"`
	ItemID            uuid.UUID  `json:"item_id"`
	ItemTitle         string     `json:"item_title"`
	ItemImageURL      string     `json:"item_image_url,omitempty"`
	DailyRate         string     `json:"daily_rate"`
	RenterID          uuid.UUID  `json:"renter_id"`
	LenderID          uuid.UUID  `json:"lender_id"`
	ViewerRole        string     `json:"viewer_role,omitempty"`
	CounterpartyID    *uuid.UUID `json:"counterparty_id,omitempty"`
	StartDate         string     `json:"start_date"`
	EndDate           string     `json:"end_date"`
	TotalDays         int64      `json:"total_days"`
	TotalPrice        string     `json:"total_price"`
	Status            string     `json:"status"`
	Notes             string     `json:"notes,omitempty"`
	CancelRequestedBy *uuid.UUID `json:"cancel_requested_by,omitempty"`
	AvailableEvents   []string   `json:"available_events"`
	Version           int        `json:"version"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

func NewRentalView(r *rental.Rental, viewerID uuid.UUID) *RentalView {
	v := &RentalView{
		ID:                r.ID(),
		ItemID:            r.ItemID(),
		ItemTitle:         r.Item().Title,
		ItemImageURL:      r.Item().ImageURL,
		DailyRate:         r.Item().PricePerDay.StringFixed(catalog.MinorUnitDigits),
		RenterID:          r.RenterID(),
		LenderID:          r.LenderID(),
		StartDate:         r.Period().Start().Format(rental.DateLayout),
		EndDate:           r.Period().End().Format(rental.DateLayout),
		TotalDays:         r.Period().Days(),
		TotalPrice:        r.TotalPrice().StringFixed(catalog.MinorUnitDigits),
		Status:            r.Status().String(),
		Notes:             r.Notes(),
		CancelRequestedBy: r.CancelRequestedBy(),
		AvailableEvents:   []string{},
		Version:           r.Version(),
		CreatedAt:         r.CreatedAt(),
		UpdatedAt:         r.UpdatedAt(),
	}

	role := r.RoleOf(viewerID)
	if role == rental.RoleRenter || role == rental.RoleLender {
		v.ViewerRole = role.String()
		cp := r.Counterparty(viewerID)
		v.CounterpartyID = &cp
		for _, e := range rental.AvailableEvents(r.Status(), role) {
			// a party that already asked to cancel waits for the other side
			if e == rental.EventCancel && r.CancelRequestedBy() != nil && *r.CancelRequestedBy() == viewerID {
				continue
			}
			v.AvailableEvents = append(v.AvailableEvents, e.String())
		}
	}
	return v
}

type DateRangeView struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int64  `json:"days"`
}

func NewDateRangeView(r rental.DateRange) DateRangeView {
	return DateRangeView{
		StartDate: r.Start().Format(rental.DateLayout),
		EndDate:   r.End().Format(rental.DateLayout),
		Days:      r.Days(),
	}
}

type ItemAvailability string

const (
	ItemAvailable   ItemAvailability = "available"
	ItemRented      ItemAvailability = "rented"
	ItemUnavailable ItemAvailability = "unavailable"
)

type ItemView struct {
	ID           uuid.UUID        `json:"id"`
	OwnerID      uuid.UUID        `json:"owner_id"`
	Title        string           `json:"title"`
	PricePerDay  string           `json:"price_per_day"`
	ImageURL     string           `json:"image_url,omitempty"`
	Description  string           `json:"description,omitempty"`
	Size         string           `json:"size,omitempty"`
	Category     string           `json:"category,omitempty"`
	Condition    string           `json:"condition,omitempty"`
	Listed       bool             `json:"listed"`
	Availability ItemAvailability `json:"availability"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// NewItemView derives the closet availability badge. An unlisted item is unavailable
// whatever its calendar says; otherwise a lock covering today makes it rented.
func NewItemView(item *catalog.Item, locks []rental.DateRange, today time.Time) *ItemView {
	availability := ItemAvailable
	for _, l := range locks {
		if l.Contains(today) {
			availability = ItemRented
			break
		}
	}
	if !item.IsListed() {
		availability = ItemUnavailable
	}

	d := item.Details()
	return &ItemView{
		ID:           item.ID(),
		OwnerID:      item.OwnerID(),
		Title:        item.Title(),
		PricePerDay:  item.PricePerDay().String(),
		ImageURL:     item.ImageURL(),
		Description:  d.Description,
		Size:         d.Size,
		Category:     d.Category,
		Condition:    string(d.Condition),
		Listed:       item.IsListed(),
		Availability: availability,
		CreatedAt:    item.CreatedAt(),
		UpdatedAt:    item.UpdatedAt(),
	}
}

type ReviewView struct {
	ID         uuid.UUID `json:"id"`
	RentalID   uuid.UUID `json:"rental_id"`
	ItemID     uuid.UUID `json:"item_id"`
	AuthorID   uuid.UUID `json:"author_id"`
	SubjectID  uuid.UUID `json:"subject_id"`
	AuthorRole string    `json:"author_role"`
	Rating     int       `json:"rating"`
	Comment    string    `json:"comment"`
	Tags       []string  `json:"tags"`
	CreatedAt  time.Time `json:"created_at"`
}

func NewReviewView(rv *review.Review) *ReviewView {
	return &ReviewView{
		ID:         rv.ID(),
		RentalID:   rv.RentalID(),
		ItemID:     rv.ItemID(),
		AuthorID:   rv.AuthorID(),
		SubjectID:  rv.SubjectID(),
		AuthorRole: rv.AuthorRole().String(),
		Rating:     rv.Rating().Value(),
		Comment:    rv.Comment().String(),
		Tags:       rv.Tags().Values(),
		CreatedAt:  rv.CreatedAt(),
	}
}

// RatingSummary aggregates the reviews a user received.
type RatingSummary struct {
	SubjectID     uuid.UUID `json:"subject_id"`
	TotalReviews  int       `json:"total_reviews"`
	AverageRating float64   `json:"average_rating"`
	RatingCounts  [5]int    `json:"rating_counts"`
}

type NoticeView struct {
	Kind       string    `json:"kind"`
	RentalID   uuid.UUID `json:"rental_id"`
	ItemID     uuid.UUID `json:"item_id"`
	Event      string    `json:"event,omitempty"`
	From       string    `json:"from,omitempty"`
	To         string    `json:"to"`
	ActorID    uuid.UUID `json:"actor_id"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewNoticeView(n shared.Notice) *NoticeView {
	return &NoticeView{
		Kind:       string(n.Kind),
		RentalID:   n.RentalID,
		ItemID:     n.ItemID,
		Event:      string(n.Event),
		From:       string(n.From),
		To:         string(n.To),
		ActorID:    n.ActorID,
		OccurredAt: n.OccurredAt,
	}
}
