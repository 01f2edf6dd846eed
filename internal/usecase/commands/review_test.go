//go:build unit

package commands_test

import (
	"context"
	"strings"
	"testing"

	"closet-rental/internal/domain/rental"
	domreview "closet-rental/internal/domain/review"
	"closet-rental/internal/pkg/errs"
	"closet-rental/internal/testutil/builder"
	"closet-rental/internal/usecase/commands"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReview_Submit(t *testing.T) {
	h := newHarness(t)
	lender, renter := uuid.New(), uuid.New()
	item := h.listItem(t, lender, "50")
	v := h.request(t, item.ID, renter, builder.Range(1, 2))

	comment := "Beautiful drape, arrived pressed and smelled fresh."
	submit := func(author uuid.UUID, tags ...string) error {
		_, err := h.reviews.Submit(context.Background(), commands.SubmitReviewInput{
			RentalID: v.ID, AuthorID: author, Rating: 5, Comment: comment, Tags: tags,
		})
		return err
	}

	t.Run("not before completion", func(t *testing.T) {
		assert.ErrorIs(t, submit(renter), domreview.ErrRentalNotEligible)
	})

	h.apply(t, v.ID, rental.EventAccept, lender)
	h.apply(t, v.ID, rental.EventActivate, renter)
	h.apply(t, v.ID, rental.EventComplete, renter)

	t.Run("renter reviews the lender", func(t *testing.T) {
		rv, err := h.reviews.Submit(context.Background(), commands.SubmitReviewInput{
			RentalID: v.ID, AuthorID: renter, Rating: 4, Comment: comment, Tags: []string{"Perfect fit"},
		})
		require.NoError(t, err)
		assert.Equal(t, lender, rv.SubjectID)
		assert.Equal(t, "renter", rv.AuthorRole)
		assert.Equal(t, []string{"Perfect fit"}, rv.Tags)
	})

	t.Run("one review per party", func(t *testing.T) {
		assert.ErrorIs(t, submit(renter), domreview.ErrAlreadyReviewed)
	})

	t.Run("lender tags only for the lender", func(t *testing.T) {
		assert.ErrorIs(t, submit(lender, "Perfect fit"), domreview.ErrUnknownTag)
		require.NoError(t, submit(lender, "On time"))
	})

	t.Run("outsiders are refused", func(t *testing.T) {
		assert.ErrorIs(t, submit(uuid.New()), domreview.ErrNotAParty)
	})

	t.Run("comment length is checked", func(t *testing.T) {
		other := h.request(t, item.ID, renter, builder.Range(5, 5))
		h.apply(t, other.ID, rental.EventAccept, lender)
		h.apply(t, other.ID, rental.EventActivate, lender)
		h.apply(t, other.ID, rental.EventComplete, lender)

		_, err := h.reviews.Submit(context.Background(), commands.SubmitReviewInput{
			RentalID: other.ID, AuthorID: renter, Rating: 5, Comment: strings.Repeat("a", 10),
		})
		assert.ErrorIs(t, err, domreview.ErrCommentTooShort)
	})

	t.Run("unknown rental", func(t *testing.T) {
		_, err := h.reviews.Submit(context.Background(), commands.SubmitReviewInput{
			RentalID: uuid.New(), AuthorID: renter, Rating: 5, Comment: comment,
		})
		assert.True(t, errs.Is(err, errs.ErrRentalNotFound))
	})
}
