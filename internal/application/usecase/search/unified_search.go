package search

import (
	"context"
	"strings"
	"unicode/utf8"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/list"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/search"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/user"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

const (
	// MinTermLength is the policy threshold below which no queries are
	// issued at all: terms shorter than this are treated as idle, not as
	// errors.
	MinTermLength = 2

	defaultCourseLimit = 20
	defaultUserLimit   = 5
	defaultListLimit   = 10
)

var tracer = otel.Tracer("search_usecase")

type UnifiedSearchUseCase struct {
	courseRepo course.Repository
	userRepo   user.Repository
	listRepo   list.Repository
	userLimit  int
	logger     logger.Logger
}

func NewUnifiedSearchUseCase(cr course.Repository, ur user.Repository, lr list.Repository, userLimit int, log logger.Logger) *UnifiedSearchUseCase {
	if userLimit <= 0 {
		userLimit = defaultUserLimit
	}
	return &UnifiedSearchUseCase{
		courseRepo: cr,
		userRepo:   ur,
		listRepo:   lr,
		userLimit:  userLimit,
		logger:     log,
	}
}

// Scope narrows a search to a single result kind. ScopeAll queries every
// source.
type Scope string

const (
	ScopeAll     Scope = "all"
	ScopeCourses Scope = "courses"
	ScopeUsers   Scope = "users"
	ScopeLists   Scope = "lists"
)

// ParseScope maps the "filter" query parameter to a Scope. The second return
// is false for unknown values; empty means ScopeAll.
func ParseScope(s string) (Scope, bool) {
	switch Scope(s) {
	case "":
		return ScopeAll, true
	case ScopeAll, ScopeCourses, ScopeUsers, ScopeLists:
		return Scope(s), true
	default:
		return ScopeAll, false
	}
}

type SearchInput struct {
	Term    string
	Scope   Scope
	Filters course.Filters

	// Sort overrides the relevance ordering when ExplicitSort is set.
	Sort         course.SortKey
	ExplicitSort bool
}

type SearchOutput struct {
	Results search.UnifiedResults
}

// Execute fans out to the queried repositories concurrently and waits for
// all of them to settle. A failed source contributes an empty bucket; the
// merged view is never computed from a partial subset. Only when every
// queried source fails is an error surfaced, and it is a single generic one.
func (uc *UnifiedSearchUseCase) Execute(ctx context.Context, input SearchInput) (*SearchOutput, error) {
	ctx, span := tracer.Start(ctx, "Execute")
	defer span.End()

	term := strings.TrimSpace(input.Term)
	if utf8.RuneCountInString(term) < MinTermLength {
		return &SearchOutput{Results: search.Empty()}, nil
	}
	span.SetAttributes(attribute.String("term", term))

	scope := input.Scope
	if scope == "" {
		scope = ScopeAll
	}
	wantCourses := scope == ScopeAll || scope == ScopeCourses
	wantUsers := scope == ScopeAll || scope == ScopeUsers
	wantLists := scope == ScopeAll || scope == ScopeLists

	var (
		courses []course.Course
		users   []user.Result
		lists   []list.Result

		courseErr, userErr, listErr error
	)

	// All-settled, never fail-fast: each goroutine swallows its own error
	// so one broken source cannot cancel or empty the others.
	g, gCtx := errgroup.WithContext(ctx)
	if wantCourses {
		g.Go(func() error {
			courses, courseErr = uc.courseRepo.Search(gCtx, term, input.Filters, defaultCourseLimit)
			return nil
		})
	}
	if wantUsers {
		g.Go(func() error {
			users, userErr = uc.userRepo.SearchByUsername(gCtx, term, uc.userLimit)
			return nil
		})
	}
	if wantLists {
		g.Go(func() error {
			lists, listErr = uc.listRepo.SearchPublic(gCtx, term, defaultListLimit)
			return nil
		})
	}
	g.Wait()

	if courseErr != nil {
		uc.logger.Warn("course search failed", zap.String("term", term), zap.Error(courseErr))
		courses = nil
	}
	if userErr != nil {
		uc.logger.Warn("user search failed", zap.String("term", term), zap.Error(userErr))
		users = nil
	}
	if listErr != nil {
		uc.logger.Warn("list search failed", zap.String("term", term), zap.Error(listErr))
		lists = nil
	}

	allFailed := (!wantCourses || courseErr != nil) &&
		(!wantUsers || userErr != nil) &&
		(!wantLists || listErr != nil)
	if allFailed {
		firstErr := courseErr
		if firstErr == nil {
			firstErr = userErr
		}
		if firstErr == nil {
			firstErr = listErr
		}
		uc.logger.Error("all search sources failed", firstErr, zap.String("term", term))
		span.RecordError(firstErr)
		return nil, apperror.NewInternal("all search sources failed", firstErr)
	}

	scored := course.ScoreAll(courses, term)
	sortKey := course.SortRelevance
	if input.ExplicitSort {
		sortKey = input.Sort
	}
	scored = course.Sort(scored, sortKey)

	return &SearchOutput{Results: search.Merge(scored, users, lists)}, nil
}
