package queries

//go:generate mockgen -source=$GOFILE -destination=../../testutil/mock/queries/$GOFILE -package=queriesmock

import (
	"context"

	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

type NotificationQueries interface {
	ForUser(ctx context.Context, userID uuid.UUID) ([]*NoticeView, error)
}

type notificationQueriesImpl struct {
	feed shared.NoticeFeed
}

func NewNotificationQueries(feed shared.NoticeFeed) NotificationQueries {
	return &notificationQueriesImpl{feed: feed}
}

func (q *notificationQueriesImpl) ForUser(ctx context.Context, userID uuid.UUID) ([]*NoticeView, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	notices := q.feed.For(userID)
	views := make([]*NoticeView, 0, len(notices))
	for _, n := range notices {
		views = append(views, NewNoticeView(n))
	}
	return views, nil
}
