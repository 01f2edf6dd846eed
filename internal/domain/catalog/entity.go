package catalog

import (
	"errors"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

var (
	ErrEmptyTitle      = errors.New("item title cannot be empty")
	ErrTitleTooLong    = errors.New("item title is too long (max 120 characters)")
	ErrImageURLTooLong = errors.New("image url is too long (max 2048 characters)")
	ErrMissingOwner    = errors.New("item owner is required")
	ErrItemUnavailable = errors.New("item is not accepting rental requests")
	ErrItemRemoved     = errors.New("item has been removed")
)

const (
	MaxTitleLength    = 120
	MaxImageURLLength = 2048
)

// Item is a garment listed by its owner for rent.
type Item struct {
	id          uuid.UUID
	ownerID     uuid.UUID
	title       string
	pricePerDay DailyPrice
	imageURL    string
	details     Details
	// listed is false while the owner has marked the item unavailable
	listed    bool
	deletedAt *time.Time
	createdAt time.Time
	updatedAt time.Time
}

func NewItem(ownerID uuid.UUID, title string, price DailyPrice, imageURL string, details Details, now time.Time) (*Item, error) {
	if ownerID == uuid.Nil {
		return nil, ErrMissingOwner
	}
	title, err := normalizeTitle(title)
	if err != nil {
		return nil, err
	}
	imageURL, err = normalizeImageURL(imageURL)
	if err != nil {
		return nil, err
	}

	return &Item{
		id:          uuid.New(),
		ownerID:     ownerID,
		title:       title,
		pricePerDay: price,
		imageURL:    imageURL,
		details:     details,
		listed:      true,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

func ReconstructItem(
	id, ownerID uuid.UUID,
	title string,
	pricePerDay decimal.Decimal,
	imageURL string,
	details Details,
	listed bool,
	deletedAt *time.Time,
	createdAt, updatedAt time.Time,
) *Item {
	return &Item{
		id:          id,
		ownerID:     ownerID,
		title:       title,
		pricePerDay: DailyPrice{amount: pricePerDay},
		imageURL:    imageURL,
		details:     details,
		listed:      listed,
		deletedAt:   deletedAt,
		createdAt:   createdAt,
		updatedAt:   updatedAt,
	}
}

// ChangePrice affects future requests only; rentals keep the snapshot taken when they were requested.
func (i *Item) ChangePrice(price DailyPrice, now time.Time) {
	i.pricePerDay = price
	i.updatedAt = now
}

func (i *Item) Rename(title string, now time.Time) error {
	title, err := normalizeTitle(title)
	if err != nil {
		return err
	}
	i.title = title
	i.updatedAt = now
	return nil
}

func (i *Item) ChangeImage(imageURL string, now time.Time) error {
	imageURL, err := normalizeImageURL(imageURL)
	if err != nil {
		return err
	}
	i.imageURL = imageURL
	i.updatedAt = now
	return nil
}

func (i *Item) Describe(details Details, now time.Time) {
	i.details = details
	i.updatedAt = now
}

// SetListed toggles whether new requests are accepted. Existing rentals are unaffected.
func (i *Item) SetListed(listed bool, now time.Time) {
	if i.listed == listed {
		return
	}
	i.listed = listed
	i.updatedAt = now
}

// Remove retires the listing. The row is kept so rentals can still point at it.
func (i *Item) Remove(now time.Time) error {
	if i.deletedAt != nil {
		return ErrItemRemoved
	}
	i.listed = false
	i.deletedAt = &now
	i.updatedAt = now
	return nil
}

func (i *Item) CheckRentable() error {
	switch {
	case i.deletedAt != nil:
		return ErrItemRemoved
	case !i.listed:
		return ErrItemUnavailable
	}
	return nil
}

func (i *Item) IsOwnedBy(userID uuid.UUID) bool {
	return i.ownerID == userID
}

func (i *Item) Snapshot() Snapshot {
	return Snapshot{
		ID:          i.id,
		OwnerID:     i.ownerID,
		Title:       i.title,
		PricePerDay: i.pricePerDay.Amount(),
		ImageURL:    i.imageURL,
	}
}

func normalizeTitle(title string) (string, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}
	if utf8.RuneCountInString(title) > MaxTitleLength {
		return "", ErrTitleTooLong
	}
	return title, nil
}

func normalizeImageURL(imageURL string) (string, error) {
	imageURL = strings.TrimSpace(imageURL)
	if len(imageURL) > MaxImageURLLength {
		return "", ErrImageURLTooLong
	}
	return imageURL, nil
}

func (i *Item) ID() uuid.UUID           { return i.id }
func (i *Item) OwnerID() uuid.UUID      { return i.ownerID }
func (i *Item) Title() string           { return i.title }
func (i *Item) PricePerDay() DailyPrice { return i.pricePerDay }
func (i *Item) ImageURL() string        { return i.imageURL }
func (i *Item) Details() Details        { return i.details }
func (i *Item) IsListed() bool          { return i.listed }
func (i *Item) DeletedAt() *time.Time   { return i.deletedAt }
func (i *Item) IsRemoved() bool         { return i.deletedAt != nil }
func (i *Item) CreatedAt() time.Time    { return i.createdAt }
func (i *Item) UpdatedAt() time.Time    { return i.updatedAt }

// Snapshot is the copy of an item's listing data captured by a rental at request time.
type Snapshot struct {
	ID          uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	PricePerDay decimal.Decimal
	ImageURL    string
}
