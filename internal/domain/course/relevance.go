package course

import "strings"

// Relevance score tiers. Field priority is name > location > province >
// description, matching expected search intent.
const (
	scoreExactName     = 100
	scoreExactLocation = 90
	scoreExactProvince = 80

	scorePrefixName     = 50
	scorePrefixLocation = 40
	scorePrefixProvince = 30

	scoreContainsName        = 20
	scoreContainsLocation    = 15
	scoreContainsProvince    = 10
	scoreContainsDescription = 5
)

// Score computes the relevance of a course for a search term. Matching is
// case-insensitive. The exact and prefix tiers each award at most one bonus
// per invocation (first matching field wins); the contains tier is additive
// across fields, so multi-field matches outrank single-field ones.
//
// An empty or whitespace-only term scores 0 uniformly: filter-only queries
// carry no relevance signal.
func Score(c Course, term string) int {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return 0
	}

	name := strings.ToLower(c.Name)
	location := strings.ToLower(c.Location)
	province := strings.ToLower(c.Province)
	description := strings.ToLower(c.Description)

	score := 0

	if name == term {
		score += scoreExactName
	} else if location == term {
		score += scoreExactLocation
	} else if province == term {
		score += scoreExactProvince
	}

	if name != term && strings.HasPrefix(name, term) {
		score += scorePrefixName
	} else if location != term && strings.HasPrefix(location, term) {
		score += scorePrefixLocation
	} else if province != term && strings.HasPrefix(province, term) {
		score += scorePrefixProvince
	}

	if strings.Contains(name, term) {
		score += scoreContainsName
	}
	if strings.Contains(location, term) {
		score += scoreContainsLocation
	}
	if strings.Contains(province, term) {
		score += scoreContainsProvince
	}
	if strings.Contains(description, term) {
		score += scoreContainsDescription
	}

	return score
}

// ScoreAll wraps each course in a Result carrying its relevance score.
func ScoreAll(courses []Course, term string) []Result {
	results := make([]Result, len(courses))
	for i, c := range courses {
		results[i] = Result{Course: c, RelevanceScore: Score(c, term)}
	}
	return results
}
