package converter

import (
	"encoding/json"
	"time"

	"closet-rental/internal/domain/review"

	"github.com/google/uuid"
)

const ReviewColumns = `id, rental_id, item_id, author_id, subject_id, author_role, rating, comment, tags, created_at`

func ScanReview(s Scanner) (*review.Review, error) {
	var (
		id, rentalID, itemID, authorID, subjectID uuid.UUID
		role, comment                             string
		rating                                    int
		rawTags                                   []byte
		createdAt                                 time.Time
	)
	err := s.Scan(&id, &rentalID, &itemID, &authorID, &subjectID, &role, &rating, &comment, &rawTags, &createdAt)
	if err != nil {
		return nil, err
	}

	var tags []string
	if len(rawTags) > 0 {
		if err := json.Unmarshal(rawTags, &tags); err != nil {
			return nil, err
		}
	}
	return review.ReconstructReview(id, rentalID, itemID, authorID, subjectID,
		review.AuthorRole(role), rating, comment, tags, createdAt), nil
}

// TagsJSON encodes tags for the jsonb column; an empty set is stored as [].
func TagsJSON(tags review.Tags) ([]byte, error) {
	return json.Marshal(tags.Values())
}
