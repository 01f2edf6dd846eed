package request

import (
	"closet-rental/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateItemRequest struct {
	Title       string `json:"title" binding:"required,max=120"`
	PricePerDay string `json:"price_per_day" binding:"required"`
	ImageURL    string `json:"image_url" binding:"omitempty,url,max=2048"`
	Description string `json:"description" binding:"max=2000"`
	Size        string `json:"size" binding:"max=20"`
	Category    string `json:"category" binding:"max=40"`
	Condition   string `json:"condition" binding:"omitempty,oneof=new like_new excellent good fair"`
}

func (r *CreateItemRequest) ToInput(ownerID uuid.UUID) commands.CreateItemInput {
	return commands.CreateItemInput{
		OwnerID:     ownerID,
		Title:       r.Title,
		PricePerDay: r.PricePerDay,
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Size:        r.Size,
		Category:    r.Category,
		Condition:   r.Condition,
	}
}

type ChangePriceRequest struct {
	PricePerDay string `json:"price_per_day" binding:"required"`
}

// UpdateItemRequest is a partial update; omitted fields keep their value.
// An empty condition clears it.
type UpdateItemRequest struct {
	Title       *string `json:"title" binding:"omitempty,max=120"`
	ImageURL    *string `json:"image_url" binding:"omitempty,max=2048"`
	Description *string `json:"description" binding:"omitempty,max=2000"`
	Size        *string `json:"size" binding:"omitempty,max=20"`
	Category    *string `json:"category" binding:"omitempty,max=40"`
	Condition   *string `json:"condition" binding:"omitempty,oneof='' new like_new excellent good fair"`
	Listed      *bool   `json:"listed"`
}

func (r *UpdateItemRequest) IsEmpty() bool {
	return r.Title == nil && r.ImageURL == nil && r.Description == nil &&
		r.Size == nil && r.Category == nil && r.Condition == nil && r.Listed == nil
}

func (r *UpdateItemRequest) ToInput() commands.UpdateItemInput {
	return commands.UpdateItemInput{
		Title:       r.Title,
		ImageURL:    r.ImageURL,
		Description: r.Description,
		Size:        r.Size,
		Category:    r.Category,
		Condition:   r.Condition,
		Listed:      r.Listed,
	}
}
