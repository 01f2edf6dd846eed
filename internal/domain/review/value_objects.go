package review

import (
	"strings"
	"unicode/utf8"
)

const (
	MinCommentLength = 30
	MaxCommentLength = 1000
	MaxTags          = 6
)

type Rating struct {
	value int
}

func NewRating(v int) (Rating, error) {
	if v < 1 || v > 5 {
		return Rating{}, ErrInvalidRating
	}
	return Rating{value: v}, nil
}

func (r Rating) Value() int { return r.value }

type Comment struct {
	text string
}

func NewComment(s string) (Comment, error) {
	t := strings.TrimSpace(s)
	n := utf8.RuneCountInString(t)
	if n < MinCommentLength {
		return Comment{}, ErrCommentTooShort
	}
	if n > MaxCommentLength {
		return Comment{}, ErrCommentTooLong
	}
	return Comment{text: t}, nil
}

func (c Comment) String() string { return c.text }

// Quick tags offered to each side. Renters describe the item and its lender,
// lenders describe how the renter treated the item.
var quickTags = map[AuthorRole][]string{
	AuthorRenter: {
		"Great quality",
		"Perfect fit",
		"Fast delivery",
		"Excellent condition",
		"Responsive host",
		"Easy pickup",
	},
	AuthorLender: {
		"Careful with items",
		"On time",
		"Great communication",
		"Returned in perfect condition",
		"Friendly",
		"Would rent again",
	},
}

func QuickTags(role AuthorRole) []string {
	return append([]string(nil), quickTags[role]...)
}

type Tags struct {
	values []string
}

// NewTags accepts a subset of the role's quick tags. Duplicates are collapsed, order is kept.
func NewTags(role AuthorRole, values []string) (Tags, error) {
	allowed := make(map[string]struct{}, len(quickTags[role]))
	for _, t := range quickTags[role] {
		allowed[t] = struct{}{}
	}

	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if _, ok := allowed[v]; !ok {
			return Tags{}, ErrUnknownTag
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	if len(out) > MaxTags {
		return Tags{}, ErrTooManyTags
	}
	return Tags{values: out}, nil
}

func (t Tags) Values() []string { return append([]string{}, t.values...) }
