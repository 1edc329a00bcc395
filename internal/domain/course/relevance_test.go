package course

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func makeCourse(name, location, province, description string) Course {
	return Course{
		Name:        name,
		Location:    location,
		Province:    province,
		Description: description,
	}
}

func TestScore_ExactMatchTiers(t *testing.T) {
	c := makeCourse("Fancourt Links", "George", "Western Cape", "Links layout in George")

	// Exact name also collects the contains-name bonus.
	assert.Equal(t, scoreExactName+scoreContainsName, Score(c, "Fancourt Links"))

	// Exact location: contains-location plus contains-description, since
	// "george" appears in the description too.
	assert.Equal(t, scoreExactLocation+scoreContainsLocation+scoreContainsDescription, Score(c, "George"))

	assert.Equal(t, scoreExactProvince+scoreContainsProvince, Score(c, "Western Cape"))
}

func TestScore_ExactTierAwardsAtMostOnce(t *testing.T) {
	// Name and location carry the same value; only the name bonus applies.
	c := makeCourse("George", "George", "Western Cape", "")
	assert.Equal(t, scoreExactName+scoreContainsName+scoreContainsLocation, Score(c, "george"))
}

func TestScore_PrefixExcludesExact(t *testing.T) {
	c := makeCourse("Fancourt Links", "George", "Western Cape", "")

	// Prefix of the name but not equal to it.
	assert.Equal(t, scorePrefixName+scoreContainsName, Score(c, "Fanc"))

	// Exact name must not also collect the prefix bonus.
	assert.Equal(t, scoreExactName+scoreContainsName, Score(c, "fancourt links"))
}

func TestScore_ContainsIsAdditiveAcrossFields(t *testing.T) {
	c := makeCourse("Cape Point Golf Club", "Cape Town", "Western Cape", "At the tip of the Cape Peninsula")

	// "cape" is a prefix of name and location, appears in all four fields.
	want := scorePrefixName +
		scoreContainsName + scoreContainsLocation + scoreContainsProvince + scoreContainsDescription
	assert.Equal(t, want, Score(c, "cape"))
}

func TestScore_DescriptionOnlyMatch(t *testing.T) {
	c := makeCourse("Leopard Creek", "Malelane", "Mpumalanga", "Bordering the Kruger National Park")
	assert.Equal(t, scoreContainsDescription, Score(c, "kruger"))
}

func TestScore_CaseInsensitive(t *testing.T) {
	c := makeCourse("Fancourt Links", "George", "Western Cape", "")
	assert.Equal(t, Score(c, "FANCOURT LINKS"), Score(c, "fancourt links"))
}

func TestScore_NoMatchScoresZero(t *testing.T) {
	c := makeCourse("Fancourt Links", "George", "Western Cape", "")
	assert.Zero(t, Score(c, "durban"))
}

func TestScore_EmptyTermScoresZero(t *testing.T) {
	c := makeCourse("Fancourt Links", "George", "Western Cape", "")
	assert.Zero(t, Score(c, ""))
	assert.Zero(t, Score(c, "   "))
}

func TestScoreAll_WrapsEveryCourse(t *testing.T) {
	courses := []Course{
		makeCourse("Fancourt Links", "George", "Western Cape", ""),
		makeCourse("Durban Country Club", "Durban", "KwaZulu-Natal", ""),
	}

	results := ScoreAll(courses, "fancourt")

	assert.Len(t, results, 2)
	assert.Greater(t, results[0].RelevanceScore, 0)
	assert.Zero(t, results[1].RelevanceScore)
	assert.Equal(t, "Durban Country Club", results[1].Name)
}
