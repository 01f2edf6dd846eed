//go:build unit

package review_test

import (
	"strings"
	"testing"

	"closet-rental/internal/domain/rental"
	"closet-rental/internal/domain/review"
	"closet-rental/internal/testutil/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.ReviewBuilder)
	errIs  error
}

func TestReview(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		b := builder.NewReviewBuilder()
		actual, err := b.BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, b.RentalID, actual.RentalID())
		assert.Equal(t, b.SubjectID, actual.SubjectID())
		assert.Equal(t, 5, actual.Rating().Value())
		assert.Equal(t, []string{"Great quality", "Perfect fit"}, actual.Tags().Values())
		assert.False(t, actual.CreatedAt().IsZero())
	})

	t.Run("rating validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "below minimum rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(0) },
				errIs:  review.ErrInvalidRating,
			},
			{
				name:   "minimum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(1) },
			},
			{
				name:   "maximum valid rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(5) },
			},
			{
				name:   "above maximum rating",
				mutate: func(b *builder.ReviewBuilder) { b.WithRating(6) },
				errIs:  review.ErrInvalidRating,
			},
		})
	})

	t.Run("comment validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "minimum length comment",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment(strings.Repeat("a", review.MinCommentLength)) },
			},
			{
				name:   "maximum length comment",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment(strings.Repeat("a", review.MaxCommentLength)) },
			},
			{
				name:   "one short of minimum",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment(strings.Repeat("a", review.MinCommentLength-1)) },
				errIs:  review.ErrCommentTooShort,
			},
			{
				name:   "padding does not count",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment("   short   " + strings.Repeat(" ", 40)) },
				errIs:  review.ErrCommentTooShort,
			},
			{
				name:   "empty comment",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment("") },
				errIs:  review.ErrCommentTooShort,
			},
			{
				name:   "comment exceeds maximum length",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment(strings.Repeat("a", review.MaxCommentLength+1)) },
				errIs:  review.ErrCommentTooLong,
			},
			{
				name:   "multibyte characters counted as runes",
				mutate: func(b *builder.ReviewBuilder) { b.WithComment(strings.Repeat("सु", 15)) },
			},
		})
	})

	t.Run("tag validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "no tags",
				mutate: func(b *builder.ReviewBuilder) { b.WithTags() },
			},
			{
				name:   "lender tag on renter review",
				mutate: func(b *builder.ReviewBuilder) { b.WithTags("On time") },
				errIs:  review.ErrUnknownTag,
			},
			{
				name:   "lender review with lender tags",
				mutate: func(b *builder.ReviewBuilder) { b.AsLenderReview() },
			},
			{
				name:   "free text tag",
				mutate: func(b *builder.ReviewBuilder) { b.WithTags("Smelled of mothballs") },
				errIs:  review.ErrUnknownTag,
			},
		})
	})

	t.Run("duplicate tags collapse", func(t *testing.T) {
		actual, err := builder.NewReviewBuilder().WithTags("Perfect fit", " Perfect fit", "Easy pickup").BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, []string{"Perfect fit", "Easy pickup"}, actual.Tags().Values())
	})

	t.Run("quick tags are copies", func(t *testing.T) {
		tags := review.QuickTags(review.AuthorLender)
		tags[0] = "mutated"
		assert.Equal(t, "Careful with items", review.QuickTags(review.AuthorLender)[0])
	})
}

func TestCheckEligibility(t *testing.T) {
	rb := builder.NewRentalBuilder()

	t.Run("renter reviews lender after completion", func(t *testing.T) {
		completed := rb.BuildInStatus(rental.StatusCompleted)

		e, err := review.CheckEligibility(completed, completed.RenterID())
		require.NoError(t, err)
		assert.Equal(t, review.AuthorRenter, e.AuthorRole)
		assert.Equal(t, completed.LenderID(), e.SubjectID)
		assert.Equal(t, completed.ItemID(), e.ItemID)
	})

	t.Run("lender reviews renter after completion", func(t *testing.T) {
		completed := rb.BuildInStatus(rental.StatusCompleted)

		e, err := review.CheckEligibility(completed, completed.LenderID())
		require.NoError(t, err)
		assert.Equal(t, review.AuthorLender, e.AuthorRole)
		assert.Equal(t, completed.RenterID(), e.SubjectID)
	})

	t.Run("not completed yet", func(t *testing.T) {
		for _, st := range []rental.Status{rental.StatusPending, rental.StatusAccepted, rental.StatusActive, rental.StatusDeclined} {
			r := rb.BuildInStatus(st)
			_, err := review.CheckEligibility(r, r.RenterID())
			assert.ErrorIs(t, err, review.ErrRentalNotEligible, st.String())
		}
	})

	t.Run("outsider", func(t *testing.T) {
		completed := rb.BuildInStatus(rental.StatusCompleted)
		_, err := review.CheckEligibility(completed, uuid.New())
		assert.ErrorIs(t, err, review.ErrNotAParty)
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewReviewBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
