package domain

import "time"

// Rating bounds, inclusive.
const (
	MinRating = 0
	MaxRating = 5
)

// ValidRating reports whether r lies within [MinRating, MaxRating].
func ValidRating(r float64) bool {
	return r >= MinRating && r <= MaxRating
}

// Article is the core aggregate: a titled piece of content owned by exactly
// one author and filed under exactly one category.
type Article struct {
	ID          string    `bson:"_id,omitempty"`
	Title       string    `bson:"title"`
	Description string    `bson:"description"`
	Rating      float64   `bson:"rating"`
	IsFavorite  bool      `bson:"is_favorite"`
	CategoryID  string    `bson:"category_id"`
	AuthorID    string    `bson:"author_id"`
	CreatedAt   time.Time `bson:"created_at"`
	UpdatedAt   time.Time `bson:"updated_at"`
}
