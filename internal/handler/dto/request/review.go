package request

import (
	"closet-rental/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateReviewRequest struct {
	Rating  int      `json:"rating" binding:"required,min=1,max=5"`
	Comment string   `json:"comment" binding:"required,max=1000"`
	Tags    []string `json:"tags" binding:"omitempty,max=6,dive,max=64"`
}

func (r *CreateReviewRequest) ToInput(rentalID, authorID uuid.UUID) commands.SubmitReviewInput {
	return commands.SubmitReviewInput{
		RentalID: rentalID,
		AuthorID: authorID,
		Rating:   r.Rating,
		Comment:  r.Comment,
		Tags:     r.Tags,
	}
}
