package search

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/search"
)

const snapshotTimeout = 2 * time.Second

// waitFor drains snapshots until one satisfies pred or the timeout hits.
func waitFor(t *testing.T, snaps <-chan Snapshot, pred func(Snapshot) bool) Snapshot {
	t.Helper()
	deadline := time.After(snapshotTimeout)
	for {
		select {
		case snap := <-snaps:
			if pred(snap) {
				return snap
			}
		case <-deadline:
			t.Fatal("timed out waiting for snapshot")
			return Snapshot{}
		}
	}
}

func settled(s Snapshot) bool   { return s.State == StateSettled }
func searching(s Snapshot) bool { return s.State == StateSearching }
func idle(s Snapshot) bool      { return s.State == StateIdle }

func newTestSession(uc *UnifiedSearchUseCase, delay time.Duration) (*Session, chan Snapshot) {
	snaps := make(chan Snapshot, 64)
	sess := NewSession(uc, delay, func(s Snapshot) { snaps <- s })
	return sess, snaps
}

func TestSession_ShortTermSettlesIdle(t *testing.T) {
	uc := newUseCase(staticCourses(), staticUsers(), staticLists())
	sess, snaps := newTestSession(uc, time.Millisecond)
	defer sess.Close()

	sess.Update("f")

	snap := waitFor(t, snaps, idle)
	assert.Equal(t, search.Empty(), snap.Results)
	assert.Empty(t, snap.Error)
}

func TestSession_BurstTriggersSingleSearch(t *testing.T) {
	var calls atomic.Int32
	courseRepo := &fakeCourseRepo{searchFn: func(context.Context, string, course.Filters, int) ([]course.Course, error) {
		calls.Add(1)
		return []course.Course{namedCourse("Fancourt Links")}, nil
	}}
	uc := newUseCase(courseRepo, staticUsers(), staticLists())
	sess, snaps := newTestSession(uc, 20*time.Millisecond)
	defer sess.Close()

	sess.Update("fa")
	sess.Update("fan")
	sess.Update("fancourt")

	snap := waitFor(t, snaps, settled)
	assert.Len(t, snap.Results.Courses, 1)
	assert.Equal(t, int32(1), calls.Load())
}

func TestSession_StaleSettleIsDropped(t *testing.T) {
	release := make(chan struct{})
	courseRepo := &fakeCourseRepo{searchFn: func(_ context.Context, term string, _ course.Filters, _ int) ([]course.Course, error) {
		if term == "first" {
			<-release
			return []course.Course{namedCourse("Old Result")}, nil
		}
		return []course.Course{namedCourse("New Result")}, nil
	}}
	uc := newUseCase(courseRepo, staticUsers(), staticLists())
	sess, snaps := newTestSession(uc, time.Millisecond)
	defer sess.Close()

	sess.Update("first")
	waitFor(t, snaps, searching)

	sess.Update("second")
	snap := waitFor(t, snaps, settled)
	assert.Equal(t, "New Result", snap.Results.Courses[0].Name)

	// Let the superseded search finish; its settle must not overwrite.
	close(release)
	time.Sleep(50 * time.Millisecond)

	final := sess.Snapshot()
	assert.Equal(t, StateSettled, final.State)
	assert.Equal(t, "New Result", final.Results.Courses[0].Name)
}

func TestSession_ClearInvalidatesInFlightSearch(t *testing.T) {
	release := make(chan struct{})
	courseRepo := &fakeCourseRepo{searchFn: func(context.Context, string, course.Filters, int) ([]course.Course, error) {
		<-release
		return []course.Course{namedCourse("Late Result")}, nil
	}}
	uc := newUseCase(courseRepo, staticUsers(), staticLists())
	sess, snaps := newTestSession(uc, time.Millisecond)
	defer sess.Close()

	sess.Update("fancourt")
	waitFor(t, snaps, searching)

	sess.Clear()
	waitFor(t, snaps, idle)

	close(release)
	time.Sleep(50 * time.Millisecond)

	final := sess.Snapshot()
	assert.Equal(t, StateIdle, final.State)
	assert.Empty(t, final.Results.Courses)
}

func TestSession_AllSourcesFailingSurfacesFriendlyMessage(t *testing.T) {
	uc := newUseCase(
		failingCourses(errors.New("pg down")),
		failingUsers(errors.New("pg down")),
		failingLists(errors.New("pg down")),
	)
	sess, snaps := newTestSession(uc, time.Millisecond)
	defer sess.Close()

	sess.Update("fancourt")

	snap := waitFor(t, snaps, settled)
	assert.Equal(t, searchUnavailableMessage, snap.Error)
	assert.Equal(t, search.Empty(), snap.Results)
}

func TestSession_ErrorClearedOnNextSuccessfulCycle(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	courseRepo := &fakeCourseRepo{searchFn: func(context.Context, string, course.Filters, int) ([]course.Course, error) {
		if fail.Load() {
			return nil, errors.New("pg down")
		}
		return []course.Course{namedCourse("Fancourt Links")}, nil
	}}
	uc := newUseCase(courseRepo, failingUsers(errors.New("pg down")), failingLists(errors.New("pg down")))
	sess, snaps := newTestSession(uc, time.Millisecond)
	defer sess.Close()

	sess.Update("fancourt")
	snap := waitFor(t, snaps, settled)
	assert.NotEmpty(t, snap.Error)

	fail.Store(false)
	sess.Update("fancourt links")
	snap = waitFor(t, snaps, func(s Snapshot) bool { return settled(s) && s.Error == "" })
	assert.Len(t, snap.Results.Courses, 1)
}

func TestSession_SetFiltersReRunsCurrentTermImmediately(t *testing.T) {
	var gotFilters atomic.Value
	courseRepo := &fakeCourseRepo{searchFn: func(_ context.Context, _ string, filters course.Filters, _ int) ([]course.Course, error) {
		gotFilters.Store(filters)
		return []course.Course{namedCourse("Fancourt Links")}, nil
	}}
	uc := newUseCase(courseRepo, staticUsers(), staticLists())
	sess, snaps := newTestSession(uc, time.Millisecond)
	defer sess.Close()

	sess.Update("fancourt")
	waitFor(t, snaps, settled)

	sess.SetFilters(course.Filters{Province: "Western Cape"})
	waitFor(t, snaps, settled)

	assert.Equal(t, course.Filters{Province: "Western Cape"}, gotFilters.Load())
}

func TestSession_NoCallbacksAfterClose(t *testing.T) {
	uc := newUseCase(staticCourses(namedCourse("Fancourt Links")), staticUsers(), staticLists())
	sess, snaps := newTestSession(uc, 5*time.Millisecond)

	sess.Update("fancourt")
	sess.Close()

	time.Sleep(50 * time.Millisecond)
	assert.Empty(t, snaps)
}
