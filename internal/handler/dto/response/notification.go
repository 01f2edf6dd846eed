package response

import (
	"closet-rental/internal/usecase/queries"
)

type NotificationResponse struct {
	Kind       string `json:"kind"`
	RentalID   string `json:"rental_id"`
	ItemID     string `json:"item_id"`
	Event      string `json:"event,omitempty"`
	From       string `json:"from,omitempty"`
	To         string `json:"to"`
	ActorID    string `json:"actor_id"`
	OccurredAt int64  `json:"occurred_at"`
}

type NotificationListResponse struct {
	Notifications []*NotificationResponse `json:"notifications"`
}

func FromNoticeViews(vs []*queries.NoticeView) (*NotificationListResponse, error) {
	res := &NotificationListResponse{Notifications: make([]*NotificationResponse, 0, len(vs))}
	for _, v := range vs {
		n := &NotificationResponse{}
		if err := copyInto(n, v); err != nil {
			return nil, err
		}
		res.Notifications = append(res.Notifications, n)
	}
	return res, nil
}
