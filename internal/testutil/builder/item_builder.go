//go:build unit || integration

package builder

import (
	"closet-rental/internal/domain/catalog"
	reqdto "closet-rental/internal/handler/dto/request"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type ItemBuilder struct {
	OwnerID     uuid.UUID
	Title       string
	PricePerDay string
	ImageURL    string
	Description string
	Size        string
	Category    string
	Condition   string
}

func NewItemBuilder() *ItemBuilder {
	return &ItemBuilder{
		OwnerID:     uuid.New(),
		Title:       "Embroidered lehenga",
		PricePerDay: "1200.00",
		ImageURL:    "https://images.example.com/lehenga.jpg",
		Description: "Hand embroidered, worn once. Dry clean only.",
		Size:        "M",
		Category:    "Ethnic",
		Condition:   "like_new",
	}
}

func (b *ItemBuilder) With(mutate func(*ItemBuilder)) *ItemBuilder {
	mutate(b)
	return b
}

// Build methods
func (b *ItemBuilder) BuildDomain() (*catalog.Item, error) {
	price, err := catalog.ParseDailyPrice(b.PricePerDay)
	if err != nil {
		return nil, err
	}
	details, err := catalog.NewDetails(b.Description, b.Size, b.Category, b.Condition)
	if err != nil {
		return nil, err
	}
	return catalog.NewItem(b.OwnerID, b.Title, price, b.ImageURL, details, Today)
}

func (b *ItemBuilder) MustBuildDomain() *catalog.Item {
	item, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return item
}

func (b *ItemBuilder) BuildCreateRequestDTO() reqdto.CreateItemRequest {
	return reqdto.CreateItemRequest{
		Title:       b.Title,
		PricePerDay: b.PricePerDay,
		ImageURL:    b.ImageURL,
		Description: b.Description,
		Size:        b.Size,
		Category:    b.Category,
		Condition:   b.Condition,
	}
}

// Fluent builder methods
func (b *ItemBuilder) WithOwnerID(id uuid.UUID) *ItemBuilder {
	b.OwnerID = id
	return b
}

func (b *ItemBuilder) WithTitle(title string) *ItemBuilder {
	b.Title = title
	return b
}

func (b *ItemBuilder) WithPricePerDay(price string) *ItemBuilder {
	b.PricePerDay = price
	return b
}

func (b *ItemBuilder) WithCategory(category string) *ItemBuilder {
	b.Category = category
	return b
}

func (b *ItemBuilder) WithCondition(condition string) *ItemBuilder {
	b.Condition = condition
	return b
}

func (b *ItemBuilder) WithDescription(description string) *ItemBuilder {
	b.Description = description
	return b
}

func (b *ItemBuilder) Snapshot() catalog.Snapshot {
	return catalog.Snapshot{
		ID:          uuid.New(),
		OwnerID:     b.OwnerID,
		Title:       b.Title,
		PricePerDay: decimal.RequireFromString(b.PricePerDay),
		ImageURL:    b.ImageURL,
	}
}
