package notify

import (
	"context"
	"log/slog"
	"sync"

	"closet-rental/internal/usecase/shared"

	"github.com/google/uuid"
)

const inboxCapacity = 50

// Inbox keeps the most recent notices per recipient. It is the bus's default
// subscriber; a push or e-mail channel would subscribe next to it.
type Inbox struct {
	mu      sync.RWMutex
	notices map[uuid.UUID][]shared.Notice
	log     *slog.Logger
}

func NewInbox(log *slog.Logger) *Inbox {
	return &Inbox{notices: make(map[uuid.UUID][]shared.Notice), log: log}
}

func (i *Inbox) Deliver(ctx context.Context, n shared.Notice) error {
	i.mu.Lock()
	list := append(i.notices[n.CounterpartyID], n)
	if len(list) > inboxCapacity {
		list = list[len(list)-inboxCapacity:]
	}
	i.notices[n.CounterpartyID] = list
	i.mu.Unlock()

	i.log.InfoContext(ctx, "rental notice delivered",
		"kind", string(n.Kind),
		"rental_id", n.RentalID.String(),
		"to", n.CounterpartyID.String(),
		"status", string(n.To))
	return nil
}

// For returns the recipient's notices, newest first.
func (i *Inbox) For(userID uuid.UUID) []shared.Notice {
	i.mu.RLock()
	defer i.mu.RUnlock()

	src := i.notices[userID]
	out := make([]shared.Notice, len(src))
	for k := range src {
		out[k] = src[len(src)-1-k]
	}
	return out
}
