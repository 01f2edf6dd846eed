package rental

import (
	"fmt"
	"sort"
	"time"

	"closet-rental/internal/pkg/clock"
)

const DateLayout = "2006-01-02"

// DateRange is an inclusive span of calendar days. Both ends are held at 00:00 UTC.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange normalizes both ends to calendar dates. It does not check ordering;
// ValidateRange does that so that the past-date rule is reported first.
func NewDateRange(start, end time.Time) DateRange {
	return DateRange{
		start: clock.DateOf(start),
		end:   clock.DateOf(end),
	}
}

func ParseDateRange(start, end string) (DateRange, error) {
	s, err := time.Parse(DateLayout, start)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	e, err := time.Parse(DateLayout, end)
	if err != nil {
		return DateRange{}, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	return NewDateRange(s, e), nil
}

func (r DateRange) Start() time.Time { return r.start }
func (r DateRange) End() time.Time   { return r.end }

func (r DateRange) IsWellFormed() bool {
	return !r.end.Before(r.start)
}

const secondsPerDay = 24 * 60 * 60

// Days counts both endpoints; a single-day rental is 1. It works on Unix seconds
// because time.Duration stops at about 292 years.
func (r DateRange) Days() int64 {
	return (r.end.Unix()-r.start.Unix())/secondsPerDay + 1
}

func (r DateRange) Overlaps(other DateRange) bool {
	return !r.start.After(other.end) && !other.start.After(r.end)
}

func (r DateRange) Contains(day time.Time) bool {
	day = clock.DateOf(day)
	return !day.Before(r.start) && !day.After(r.end)
}

func (r DateRange) Equal(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

func (r DateRange) String() string {
	return fmt.Sprintf("[%s..%s]", r.start.Format(DateLayout), r.end.Format(DateLayout))
}

// UnionRanges merges lock sets from several sources, sorted by start. Equal ranges appear once.
func UnionRanges(sets ...[]DateRange) []DateRange {
	var out []DateRange
	for _, set := range sets {
	next:
		for _, r := range set {
			for _, seen := range out {
				if seen.Equal(r) {
					continue next
				}
			}
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].start.Before(out[j].start) })
	return out
}
