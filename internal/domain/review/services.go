package review

import (
	"closet-rental/internal/domain/rental"

	"github.com/google/uuid"
)

// Eligibility is the outcome of checking that an author may review a rental.
type Eligibility struct {
	RentalID   uuid.UUID
	ItemID     uuid.UUID
	AuthorID   uuid.UUID
	SubjectID  uuid.UUID
	AuthorRole AuthorRole
}

// CheckEligibility allows each party of a completed rental to review the other.
// Uniqueness per (rental, author) is enforced by the review store.
func CheckEligibility(r *rental.Rental, authorID uuid.UUID) (Eligibility, error) {
	if !r.IsParty(authorID) {
		return Eligibility{}, ErrNotAParty
	}
	if !r.ReviewableBy(authorID) {
		return Eligibility{}, ErrRentalNotEligible
	}

	role := AuthorRenter
	if authorID == r.LenderID() {
		role = AuthorLender
	}

	return Eligibility{
		RentalID:   r.ID(),
		ItemID:     r.ItemID(),
		AuthorID:   authorID,
		SubjectID:  r.Counterparty(authorID),
		AuthorRole: role,
	}, nil
}
