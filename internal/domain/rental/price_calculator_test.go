//go:build unit

package rental_test

import (
	"testing"

	"closet-rental/internal/domain/rental"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDailyRateCalculator(t *testing.T) {
	calc := rental.NewDailyRateCalculator()

	cases := []struct {
		name   string
		period rental.DateRange
		perDay string
		want   string
	}{
		{name: "three days at 50", period: dr("2024-06-01", "2024-06-03"), perDay: "50", want: "150"},
		{name: "single day", period: dr("2024-06-01", "2024-06-01"), perDay: "799.99", want: "799.99"},
		{name: "minor units do not drift", period: dr("2024-01-01", "2024-12-31"), perDay: "0.10", want: "36.60"},
		{name: "paise precision", period: dr("2024-06-01", "2024-06-07"), perDay: "333.33", want: "2333.31"},
		{name: "ranges longer than a duration", period: dr("2026-10-16", "2400-01-01"), perDay: "10", want: "1363130"},
		{name: "largest range at the price ceiling", period: dr("0001-01-01", "9999-12-31"), perDay: "1000000", want: "3652059000000"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := calc.Price(c.period, decimal.RequireFromString(c.perDay))
			assert.True(t, decimal.RequireFromString(c.want).Equal(got), "want %s, got %s", c.want, got)
		})
	}
}
