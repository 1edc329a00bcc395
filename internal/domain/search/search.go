// Package search defines the unified search result model: a closed set of
// result variants discriminated by Kind, and the merged view assembled from
// the per-resource buckets.
package search

import (
	"github.com/google/uuid"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/list"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/user"
)

type Kind string

const (
	KindCourse Kind = "course"
	KindUser   Kind = "user"
	KindList   Kind = "list"
)

// Result is the sum of the three variants. The kind discriminant is fixed
// per variant and determines which concrete type backs it.
type Result interface {
	Kind() Kind
	ResultID() uuid.UUID
}

type CourseResult struct {
	course.Result
}

func (CourseResult) Kind() Kind { return KindCourse }
func (r CourseResult) ResultID() uuid.UUID { return r.ID }

type UserResult struct {
	user.Result
}

func (UserResult) Kind() Kind { return KindUser }
func (r UserResult) ResultID() uuid.UUID { return r.ID }

type ListResult struct {
	list.Result
}

func (ListResult) Kind() Kind { return KindList }
func (r ListResult) ResultID() uuid.UUID { return r.ID }

// maxPerKindInAll bounds each variant's contribution to the merged view.
const maxPerKindInAll = 3

// UnifiedResults is recomputed wholesale on every search cycle; it is never
// mutated in place.
type UnifiedResults struct {
	Courses []course.Result
	Users   []user.Result
	Lists   []list.Result
	All     []Result
}

// Empty returns the cleared result set used for the idle state.
func Empty() UnifiedResults {
	return UnifiedResults{
		Courses: []course.Result{},
		Users:   []user.Result{},
		Lists:   []list.Result{},
		All:     []Result{},
	}
}

// Merge assembles the combined view, taking at most three results of each
// kind and preserving each source's internal order.
func Merge(courses []course.Result, users []user.Result, lists []list.Result) UnifiedResults {
	if courses == nil {
		courses = []course.Result{}
	}
	if users == nil {
		users = []user.Result{}
	}
	if lists == nil {
		lists = []list.Result{}
	}

	all := make([]Result, 0, 3*maxPerKindInAll)
	for i, c := range courses {
		if i == maxPerKindInAll {
			break
		}
		all = append(all, CourseResult{c})
	}
	for i, u := range users {
		if i == maxPerKindInAll {
			break
		}
		all = append(all, UserResult{u})
	}
	for i, l := range lists {
		if i == maxPerKindInAll {
			break
		}
		all = append(all, ListResult{l})
	}

	return UnifiedResults{Courses: courses, Users: users, Lists: lists, All: all}
}
