package course

import (
	"sort"
	"strings"
)

// SortKey values double as the "sort" URL query parameter.
type SortKey string

const (
	SortRatingDesc      SortKey = "rating_desc"
	SortRatingAsc       SortKey = "rating_asc"
	SortNameAsc         SortKey = "name_asc"
	SortNameDesc        SortKey = "name_desc"
	SortCreatedDesc     SortKey = "created_desc"
	SortReviewCountDesc SortKey = "review_count_desc"

	// SortRelevance is not user-selectable; it is the fallback ordering
	// when a search term is present and no explicit key was chosen.
	SortRelevance SortKey = "relevance"
)

// DefaultSortKey is the browse-mode fallback when no term and no explicit
// key are present.
const DefaultSortKey = SortRatingDesc

// ParseSortKey maps a query parameter to a SortKey. The second return is
// false for unknown or empty values.
func ParseSortKey(s string) (SortKey, bool) {
	switch SortKey(s) {
	case SortRatingDesc, SortRatingAsc, SortNameAsc, SortNameDesc,
		SortCreatedDesc, SortReviewCountDesc:
		return SortKey(s), true
	default:
		return DefaultSortKey, false
	}
}

// Sort orders results by key without mutating the input slice. Every key
// breaks ties by ascending name, which guarantees a total order and
// deterministic output regardless of input order.
func Sort(results []Result, key SortKey) []Result {
	ordered := make([]Result, len(results))
	copy(ordered, results)

	sort.SliceStable(ordered, func(i, j int) bool {
		a, b := ordered[i], ordered[j]
		switch key {
		case SortRatingAsc:
			if a.AverageRating != b.AverageRating {
				return a.AverageRating < b.AverageRating
			}
		case SortNameAsc:
			return lessName(a, b)
		case SortNameDesc:
			return !lessName(a, b) && !equalName(a, b)
		case SortCreatedDesc:
			// Missing timestamps are the zero time and naturally sort last.
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.After(b.CreatedAt)
			}
		case SortReviewCountDesc:
			if a.TotalReviews != b.TotalReviews {
				return a.TotalReviews > b.TotalReviews
			}
		case SortRelevance:
			if a.RelevanceScore != b.RelevanceScore {
				return a.RelevanceScore > b.RelevanceScore
			}
		default: // SortRatingDesc
			if a.AverageRating != b.AverageRating {
				return a.AverageRating > b.AverageRating
			}
		}
		return lessName(a, b)
	})

	return ordered
}

func lessName(a, b Result) bool {
	return strings.ToLower(a.Name) < strings.ToLower(b.Name)
}

func equalName(a, b Result) bool {
	return strings.EqualFold(a.Name, b.Name)
}
