package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
)

func TestSortOrderBy(t *testing.T) {
	cases := []struct {
		key  course.SortKey
		want []string
	}{
		{course.SortRatingDesc, []string{"average_rating DESC", "lower(c.name) ASC"}},
		{course.SortRatingAsc, []string{"average_rating ASC", "lower(c.name) ASC"}},
		{course.SortNameAsc, []string{"lower(c.name) ASC"}},
		{course.SortNameDesc, []string{"lower(c.name) DESC"}},
		{course.SortCreatedDesc, []string{"c.created_at DESC", "lower(c.name) ASC"}},
		{course.SortReviewCountDesc, []string{"total_reviews DESC", "lower(c.name) ASC"}},
		// Unknown keys fall back to the rating-descending default.
		{course.SortKey("bogus"), []string{"average_rating DESC", "lower(c.name) ASC"}},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, sortOrderBy(tc.key), "key %q", tc.key)
	}
}

func TestEscapeLike(t *testing.T) {
	assert.Equal(t, `100\%`, escapeLike("100%"))
	assert.Equal(t, `a\_b`, escapeLike("a_b"))
	assert.Equal(t, `c\\d`, escapeLike(`c\d`))
	assert.Equal(t, "fancourt", escapeLike("fancourt"))
}
