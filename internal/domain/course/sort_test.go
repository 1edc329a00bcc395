package course

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func fixtureResults() []Result {
	base := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	return []Result{
		{Course: Course{Name: "Durban Country Club", AverageRating: 4.5, TotalReviews: 12, CreatedAt: base.AddDate(0, 0, 2)}},
		{Course: Course{Name: "Arabella Golf Club", AverageRating: 4.5, TotalReviews: 7, CreatedAt: base}},
		{Course: Course{Name: "Fancourt Links", AverageRating: 4.9, TotalReviews: 30, CreatedAt: base.AddDate(0, 0, 1)}},
		{Course: Course{Name: "Humewood Golf Club", AverageRating: 3.8, TotalReviews: 4}},
	}
}

func names(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Name
	}
	return out
}

func TestSort_RatingDescWithNameTieBreak(t *testing.T) {
	ordered := Sort(fixtureResults(), SortRatingDesc)
	assert.Equal(t, []string{
		"Fancourt Links",
		"Arabella Golf Club", // 4.5 tie broken by name
		"Durban Country Club",
		"Humewood Golf Club",
	}, names(ordered))
}

func TestSort_RatingAsc(t *testing.T) {
	ordered := Sort(fixtureResults(), SortRatingAsc)
	assert.Equal(t, []string{
		"Humewood Golf Club",
		"Arabella Golf Club",
		"Durban Country Club",
		"Fancourt Links",
	}, names(ordered))
}

func TestSort_NameAscAndDesc(t *testing.T) {
	asc := Sort(fixtureResults(), SortNameAsc)
	assert.Equal(t, []string{
		"Arabella Golf Club",
		"Durban Country Club",
		"Fancourt Links",
		"Humewood Golf Club",
	}, names(asc))

	desc := Sort(fixtureResults(), SortNameDesc)
	assert.Equal(t, []string{
		"Humewood Golf Club",
		"Fancourt Links",
		"Durban Country Club",
		"Arabella Golf Club",
	}, names(desc))
}

func TestSort_CreatedDescZeroTimeLast(t *testing.T) {
	ordered := Sort(fixtureResults(), SortCreatedDesc)
	// Humewood has no CreatedAt and must sort last.
	assert.Equal(t, []string{
		"Durban Country Club",
		"Fancourt Links",
		"Arabella Golf Club",
		"Humewood Golf Club",
	}, names(ordered))
}

func TestSort_ReviewCountDesc(t *testing.T) {
	ordered := Sort(fixtureResults(), SortReviewCountDesc)
	assert.Equal(t, []string{
		"Fancourt Links",
		"Durban Country Club",
		"Arabella Golf Club",
		"Humewood Golf Club",
	}, names(ordered))
}

func TestSort_RelevanceDesc(t *testing.T) {
	results := []Result{
		{Course: Course{Name: "B"}, RelevanceScore: 10},
		{Course: Course{Name: "C"}, RelevanceScore: 120},
		{Course: Course{Name: "A"}, RelevanceScore: 10},
	}
	ordered := Sort(results, SortRelevance)
	assert.Equal(t, []string{"C", "A", "B"}, names(ordered))
}

func TestSort_DoesNotMutateInput(t *testing.T) {
	input := fixtureResults()
	before := names(input)

	Sort(input, SortNameDesc)

	assert.Equal(t, before, names(input))
}

func TestSort_DeterministicAcrossInputOrders(t *testing.T) {
	a := fixtureResults()
	b := []Result{a[3], a[1], a[0], a[2]}

	assert.Equal(t, names(Sort(a, SortRatingDesc)), names(Sort(b, SortRatingDesc)))
}

func TestParseSortKey(t *testing.T) {
	key, ok := ParseSortKey("name_asc")
	assert.True(t, ok)
	assert.Equal(t, SortNameAsc, key)

	key, ok = ParseSortKey("bogus")
	assert.False(t, ok)
	assert.Equal(t, DefaultSortKey, key)

	_, ok = ParseSortKey("")
	assert.False(t, ok)

	// Relevance ordering is internal, not a query parameter.
	_, ok = ParseSortKey(string(SortRelevance))
	assert.False(t, ok)
}
