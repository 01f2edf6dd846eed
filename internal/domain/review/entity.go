package review

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	id         uuid.UUID
	rentalID   uuid.UUID
	itemID     uuid.UUID
	authorID   uuid.UUID
	subjectID  uuid.UUID
	authorRole AuthorRole
	rating     Rating
	comment    Comment
	tags       Tags
	createdAt  time.Time
}

func NewReview(eligibility Eligibility, ratingValue int, commentText string, tagValues []string, now time.Time) (*Review, error) {
	rating, err := NewRating(ratingValue)
	if err != nil {
		return nil, err
	}

	comment, err := NewComment(commentText)
	if err != nil {
		return nil, err
	}

	tags, err := NewTags(eligibility.AuthorRole, tagValues)
	if err != nil {
		return nil, err
	}

	return &Review{
		id:         uuid.New(),
		rentalID:   eligibility.RentalID,
		itemID:     eligibility.ItemID,
		authorID:   eligibility.AuthorID,
		subjectID:  eligibility.SubjectID,
		authorRole: eligibility.AuthorRole,
		rating:     rating,
		comment:    comment,
		tags:       tags,
		createdAt:  now,
	}, nil
}

func ReconstructReview(
	id, rentalID, itemID, authorID, subjectID uuid.UUID,
	authorRole AuthorRole,
	rating int,
	comment string,
	tags []string,
	createdAt time.Time,
) *Review {
	return &Review{
		id:         id,
		rentalID:   rentalID,
		itemID:     itemID,
		authorID:   authorID,
		subjectID:  subjectID,
		authorRole: authorRole,
		rating:     Rating{value: rating},
		comment:    Comment{text: comment},
		tags:       Tags{values: tags},
		createdAt:  createdAt,
	}
}

func (r *Review) ID() uuid.UUID          { return r.id }
func (r *Review) RentalID() uuid.UUID    { return r.rentalID }
func (r *Review) ItemID() uuid.UUID      { return r.itemID }
func (r *Review) AuthorID() uuid.UUID    { return r.authorID }
func (r *Review) SubjectID() uuid.UUID   { return r.subjectID }
func (r *Review) AuthorRole() AuthorRole { return r.authorRole }
func (r *Review) Rating() Rating         { return r.rating }
func (r *Review) Comment() Comment       { return r.comment }
func (r *Review) Tags() Tags             { return r.tags }
func (r *Review) CreatedAt() time.Time   { return r.createdAt }
