//go:build unit

package rental_test

import (
	"testing"
	"time"

	"closet-rental/internal/domain/rental"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(s string) time.Time {
	t, err := time.Parse(rental.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return t
}

func dr(start, end string) rental.DateRange {
	return rental.NewDateRange(day(start), day(end))
}

func TestDateRange(t *testing.T) {
	t.Run("time of day is discarded", func(t *testing.T) {
		ist := time.FixedZone("IST", 5*3600+1800)
		r := rental.NewDateRange(
			time.Date(2024, 6, 1, 23, 30, 0, 0, ist),
			time.Date(2024, 6, 3, 0, 5, 0, 0, ist),
		)

		assert.Equal(t, day("2024-06-01"), r.Start())
		assert.Equal(t, day("2024-06-03"), r.End())
		assert.Equal(t, time.UTC, r.Start().Location())
	})

	t.Run("days are inclusive", func(t *testing.T) {
		cases := []struct {
			name string
			r    rental.DateRange
			days int64
		}{
			{name: "same day", r: dr("2024-06-01", "2024-06-01"), days: 1},
			{name: "three days", r: dr("2024-06-01", "2024-06-03"), days: 3},
			{name: "across month", r: dr("2024-06-29", "2024-07-02"), days: 4},
			{name: "across leap day", r: dr("2024-02-28", "2024-03-01"), days: 3},
			{name: "full year", r: dr("2024-01-01", "2024-12-31"), days: 366},
			{name: "several centuries", r: dr("2026-10-16", "2400-01-01"), days: 136313},
			{name: "whole calendar", r: dr("0001-01-01", "9999-12-31"), days: 3652059},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				assert.Equal(t, c.days, c.r.Days())
			})
		}
	})

	t.Run("overlap", func(t *testing.T) {
		base := dr("2024-06-10", "2024-06-12")
		cases := []struct {
			name     string
			other    rental.DateRange
			overlaps bool
		}{
			{name: "identical", other: base, overlaps: true},
			{name: "shares start day", other: dr("2024-06-08", "2024-06-10"), overlaps: true},
			{name: "shares end day", other: dr("2024-06-12", "2024-06-15"), overlaps: true},
			{name: "contained", other: dr("2024-06-11", "2024-06-11"), overlaps: true},
			{name: "containing", other: dr("2024-06-01", "2024-06-30"), overlaps: true},
			{name: "day before", other: dr("2024-06-05", "2024-06-09"), overlaps: false},
			{name: "day after", other: dr("2024-06-13", "2024-06-20"), overlaps: false},
		}
		for _, c := range cases {
			t.Run(c.name, func(t *testing.T) {
				assert.Equal(t, c.overlaps, base.Overlaps(c.other))
				assert.Equal(t, c.overlaps, c.other.Overlaps(base), "overlap must be symmetric")
			})
		}
	})

	t.Run("parse", func(t *testing.T) {
		r, err := rental.ParseDateRange("2024-06-01", "2024-06-03")
		require.NoError(t, err)
		assert.True(t, r.Equal(dr("2024-06-01", "2024-06-03")))
		assert.Equal(t, "[2024-06-01..2024-06-03]", r.String())

		_, err = rental.ParseDateRange("01/06/2024", "2024-06-03")
		assert.Error(t, err)
	})

	t.Run("well formed", func(t *testing.T) {
		assert.True(t, dr("2024-06-01", "2024-06-01").IsWellFormed())
		assert.False(t, dr("2024-06-02", "2024-06-01").IsWellFormed())
	})
}

func TestUnionRanges(t *testing.T) {
	index := []rental.DateRange{dr("2024-06-10", "2024-06-11"), dr("2024-06-01", "2024-06-03")}
	stored := []rental.DateRange{dr("2024-06-01", "2024-06-03"), dr("2024-06-05", "2024-06-06")}

	got := rental.UnionRanges(index, stored)
	require.Len(t, got, 3)
	assert.True(t, got[0].Equal(dr("2024-06-01", "2024-06-03")))
	assert.True(t, got[1].Equal(dr("2024-06-05", "2024-06-06")))
	assert.True(t, got[2].Equal(dr("2024-06-10", "2024-06-11")))

	assert.Empty(t, rental.UnionRanges(nil, nil))
}
