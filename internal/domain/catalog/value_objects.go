package catalog

import (
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
)

var (
	ErrNonPositivePrice = errors.New("daily price must be greater than zero")
	ErrPricePrecision   = errors.New("daily price cannot have more than 2 decimal places")
	ErrPriceTooLarge    = errors.New("daily price is too large")
	ErrUnparseablePrice = errors.New("daily price is not a valid decimal")
)

// MinorUnitDigits is the number of fractional digits of the listing currency (paise).
const MinorUnitDigits = 2

var maxPricePerDay = decimal.NewFromInt(1_000_000)

// DailyPrice is a per-day rental price expressed in the listing currency.
type DailyPrice struct {
	amount decimal.Decimal
}

func NewDailyPrice(amount decimal.Decimal) (DailyPrice, error) {
	if !amount.IsPositive() {
		return DailyPrice{}, ErrNonPositivePrice
	}
	if !amount.Equal(amount.Truncate(MinorUnitDigits)) {
		return DailyPrice{}, ErrPricePrecision
	}
	if amount.GreaterThan(maxPricePerDay) {
		return DailyPrice{}, ErrPriceTooLarge
	}
	return DailyPrice{amount: amount}, nil
}

func ParseDailyPrice(s string) (DailyPrice, error) {
	amount, err := decimal.NewFromString(s)
	if err != nil {
		return DailyPrice{}, ErrUnparseablePrice
	}
	return NewDailyPrice(amount)
}

func (p DailyPrice) Amount() decimal.Decimal {
	return p.amount
}

func (p DailyPrice) String() string {
	return p.amount.StringFixed(MinorUnitDigits)
}

var (
	ErrDescriptionTooLong = errors.New("description is too long (max 2000 characters)")
	ErrSizeTooLong        = errors.New("size is too long (max 20 characters)")
	ErrCategoryTooLong    = errors.New("category is too long (max 40 characters)")
	ErrUnknownCondition   = errors.New("unknown item condition")
)

const (
	MaxDescriptionLength = 2000
	MaxSizeLength        = 20
	MaxCategoryLength    = 40
)

type Condition string

// ConditionUnspecified is allowed; the closet shows no badge for it.
const (
	ConditionUnspecified Condition = ""
	ConditionNew         Condition = "new"
	ConditionLikeNew     Condition = "like_new"
	ConditionExcellent   Condition = "excellent"
	ConditionGood        Condition = "good"
	ConditionFair        Condition = "fair"
)

func ParseCondition(s string) (Condition, error) {
	c := Condition(strings.ToLower(strings.TrimSpace(s)))
	switch c {
	case ConditionUnspecified, ConditionNew, ConditionLikeNew, ConditionExcellent, ConditionGood, ConditionFair:
		return c, nil
	}
	return "", ErrUnknownCondition
}

// Details is the descriptive part of a listing shown on the item page.
type Details struct {
	Description string
	Size        string
	Category    string
	Condition   Condition
}

// NewDetails trims every field and lowercases the category so browse filters match.
func NewDetails(description, size, category, condition string) (Details, error) {
	d := Details{
		Description: strings.TrimSpace(description),
		Size:        strings.TrimSpace(size),
		Category:    strings.ToLower(strings.TrimSpace(category)),
	}
	if utf8.RuneCountInString(d.Description) > MaxDescriptionLength {
		return Details{}, ErrDescriptionTooLong
	}
	if utf8.RuneCountInString(d.Size) > MaxSizeLength {
		return Details{}, ErrSizeTooLong
	}
	if utf8.RuneCountInString(d.Category) > MaxCategoryLength {
		return Details{}, ErrCategoryTooLong
	}
	c, err := ParseCondition(condition)
	if err != nil {
		return Details{}, err
	}
	d.Condition = c
	return d, nil
}
