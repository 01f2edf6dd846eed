package response

import (
	"closet-rental/internal/usecase/queries"
)

type ReviewResponse struct {
	ID         string   `json:"id"`
	RentalID   string   `json:"rental_id"`
	ItemID     string   `json:"item_id"`
	AuthorID   string   `json:"author_id"`
	SubjectID  string   `json:"subject_id"`
	AuthorRole string   `json:"author_role"`
	Rating     int      `json:"rating"`
	Comment    string   `json:"comment"`
	Tags       []string `json:"tags"`
	CreatedAt  int64    `json:"created_at"`
}

func FromReviewView(v *queries.ReviewView) (*ReviewResponse, error) {
	res := &ReviewResponse{}
	if err := copyInto(res, v); err != nil {
		return nil, err
	}
	if res.Tags == nil {
		res.Tags = []string{}
	}
	return res, nil
}

type RatingSummaryResponse struct {
	SubjectID     string  `json:"subject_id"`
	TotalReviews  int     `json:"total_reviews"`
	AverageRating float64 `json:"average_rating"`
	Rating1Count  int     `json:"rating_1_count"`
	Rating2Count  int     `json:"rating_2_count"`
	Rating3Count  int     `json:"rating_3_count"`
	Rating4Count  int     `json:"rating_4_count"`
	Rating5Count  int     `json:"rating_5_count"`
}

type ReviewListResponse struct {
	Reviews []*ReviewResponse      `json:"reviews"`
	Summary *RatingSummaryResponse `json:"summary,omitempty"`
}

func FromReviewViews(vs []*queries.ReviewView, summary *queries.RatingSummary) (*ReviewListResponse, error) {
	res := &ReviewListResponse{Reviews: make([]*ReviewResponse, 0, len(vs))}
	for _, v := range vs {
		r, err := FromReviewView(v)
		if err != nil {
			return nil, err
		}
		res.Reviews = append(res.Reviews, r)
	}
	if summary != nil {
		res.Summary = &RatingSummaryResponse{
			SubjectID:     summary.SubjectID.String(),
			TotalReviews:  summary.TotalReviews,
			AverageRating: summary.AverageRating,
			Rating1Count:  summary.RatingCounts[0],
			Rating2Count:  summary.RatingCounts[1],
			Rating3Count:  summary.RatingCounts[2],
			Rating4Count:  summary.RatingCounts[3],
			Rating5Count:  summary.RatingCounts[4],
		}
	}
	return res, nil
}

// QuickTagsResponse lists the tags each side may attach to a review.
type QuickTagsResponse struct {
	Renter []string `json:"renter"`
	Lender []string `json:"lender"`
}
