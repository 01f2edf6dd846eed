package rental

import "github.com/shopspring/decimal"

type PriceCalculator interface {
	Price(period DateRange, pricePerDay decimal.Decimal) decimal.Decimal
}

// DailyRateCalculator charges the per-day rate for every day in the range, endpoints included.
type DailyRateCalculator struct{}

func NewDailyRateCalculator() *DailyRateCalculator {
	return &DailyRateCalculator{}
}

func (DailyRateCalculator) Price(period DateRange, pricePerDay decimal.Decimal) decimal.Decimal {
	return pricePerDay.Mul(decimal.NewFromInt(period.Days()))
}
