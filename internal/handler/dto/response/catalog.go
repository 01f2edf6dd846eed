package response

import (
	"closet-rental/internal/usecase/queries"
)

type ItemResponse struct {
	ID           string `json:"id"`
	OwnerID      string `json:"owner_id"`
	Title        string `json:"title"`
	PricePerDay  string `json:"price_per_day"`
	ImageURL     string `json:"image_url,omitempty"`
	Description  string `json:"description,omitempty"`
	Size         string `json:"size,omitempty"`
	Category     string `json:"category,omitempty"`
	Condition    string `json:"condition,omitempty"`
	Listed       bool   `json:"listed"`
	Availability string `json:"availability"`
	CreatedAt    int64  `json:"created_at"`
	UpdatedAt    int64  `json:"updated_at"`
}

func FromItemView(v *queries.ItemView) (*ItemResponse, error) {
	res := &ItemResponse{}
	if err := copyInto(res, v); err != nil {
		return nil, err
	}
	res.Availability = string(v.Availability)
	return res, nil
}

type ItemListResponse struct {
	Items []*ItemResponse `json:"items"`
}

func FromItemViews(vs []*queries.ItemView) (*ItemListResponse, error) {
	items := make([]*ItemResponse, 0, len(vs))
	for _, v := range vs {
		item, err := FromItemView(v)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return &ItemListResponse{Items: items}, nil
}

type DateRangeResponse struct {
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
	Days      int64  `json:"days"`
}

type LocksResponse struct {
	ItemID string              `json:"item_id"`
	Locks  []DateRangeResponse `json:"locks"`
}

func FromLocks(itemID string, views []queries.DateRangeView) *LocksResponse {
	locks := make([]DateRangeResponse, 0, len(views))
	for _, v := range views {
		locks = append(locks, DateRangeResponse(v))
	}
	return &LocksResponse{ItemID: itemID, Locks: locks}
}
