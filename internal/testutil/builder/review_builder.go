//go:build unit || integration

package builder

import (
	"time"

	domreview "closet-rental/internal/domain/review"
	reqdto "closet-rental/internal/handler/dto/request"

	"github.com/google/uuid"
)

type ReviewBuilder struct {
	RentalID   uuid.UUID
	ItemID     uuid.UUID
	AuthorID   uuid.UUID
	SubjectID  uuid.UUID
	AuthorRole domreview.AuthorRole
	Rating     int
	Comment    string
	Tags       []string
	CreatedAt  time.Time
}

func NewReviewBuilder() *ReviewBuilder {
	return &ReviewBuilder{
		RentalID:   uuid.New(),
		ItemID:     uuid.New(),
		AuthorID:   uuid.New(),
		SubjectID:  uuid.New(),
		AuthorRole: domreview.AuthorRenter,
		Rating:     5,
		Comment:    "Fabric was spotless and the fit was exactly as described.",
		Tags:       []string{"Great quality", "Perfect fit"},
		CreatedAt:  Today,
	}
}

func (r *ReviewBuilder) With(mutate func(*ReviewBuilder)) *ReviewBuilder {
	mutate(r)
	return r
}

func (r *ReviewBuilder) Eligibility() domreview.Eligibility {
	return domreview.Eligibility{
		RentalID:   r.RentalID,
		ItemID:     r.ItemID,
		AuthorID:   r.AuthorID,
		SubjectID:  r.SubjectID,
		AuthorRole: r.AuthorRole,
	}
}

// Build methods
func (r *ReviewBuilder) BuildDomain() (*domreview.Review, error) {
	return domreview.NewReview(r.Eligibility(), r.Rating, r.Comment, r.Tags, r.CreatedAt)
}

func (r *ReviewBuilder) MustBuildDomain() *domreview.Review {
	rv, err := r.BuildDomain()
	if err != nil {
		panic(err)
	}
	return rv
}

func (r *ReviewBuilder) BuildCreateRequestDTO() reqdto.CreateReviewRequest {
	return reqdto.CreateReviewRequest{
		Rating:  r.Rating,
		Comment: r.Comment,
		Tags:    r.Tags,
	}
}

// Fluent builder methods
func (r *ReviewBuilder) WithRating(rating int) *ReviewBuilder {
	r.Rating = rating
	return r
}

func (r *ReviewBuilder) WithComment(comment string) *ReviewBuilder {
	r.Comment = comment
	return r
}

func (r *ReviewBuilder) WithTags(tags ...string) *ReviewBuilder {
	r.Tags = tags
	return r
}

func (r *ReviewBuilder) WithRentalID(id uuid.UUID) *ReviewBuilder {
	r.RentalID = id
	return r
}

func (r *ReviewBuilder) WithAuthor(id uuid.UUID, role domreview.AuthorRole) *ReviewBuilder {
	r.AuthorID = id
	r.AuthorRole = role
	return r
}

func (r *ReviewBuilder) WithSubjectID(id uuid.UUID) *ReviewBuilder {
	r.SubjectID = id
	return r
}

func (r *ReviewBuilder) AsLenderReview() *ReviewBuilder {
	r.AuthorRole = domreview.AuthorLender
	r.Tags = []string{"Careful with items", "On time"}
	r.Comment = "Returned the outfit on time and neatly folded, lovely renter."
	return r
}
