package favorite

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/favorite"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type fakeFavoriteRepo struct {
	mu      sync.Mutex
	entries []favorite.Entry

	addErr     error
	listErr    error
	updateErr  error
	updated    []uuid.UUID
	updateDone chan struct{}
}

func (f *fakeFavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]favorite.Entry, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]favorite.Entry(nil), f.entries...), nil
}

func (f *fakeFavoriteRepo) Add(ctx context.Context, userID, courseID uuid.UUID) (*favorite.Entry, error) {
	if f.addErr != nil {
		return nil, f.addErr
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	entry := favorite.Entry{ID: uuid.New(), CourseID: courseID, Position: len(f.entries) + 1}
	f.entries = append(f.entries, entry)
	return &entry, nil
}

func (f *fakeFavoriteRepo) Remove(ctx context.Context, userID, courseID uuid.UUID) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i, e := range f.entries {
		if e.CourseID == courseID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			return nil
		}
	}
	return favorite.ErrEntryNotFound
}

func (f *fakeFavoriteRepo) UpdatePositions(ctx context.Context, userID uuid.UUID, orderedCourseIDs []uuid.UUID) error {
	f.mu.Lock()
	f.updated = orderedCourseIDs
	done := f.updateDone
	err := f.updateErr
	f.mu.Unlock()
	if done != nil {
		close(done)
	}
	return err
}

func (f *fakeFavoriteRepo) updatedIDs() []uuid.UUID {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.updated
}

func seedEntries(n int) []favorite.Entry {
	entries := make([]favorite.Entry, n)
	for i := range entries {
		entries[i] = favorite.Entry{ID: uuid.New(), CourseID: uuid.New(), Position: i + 1}
	}
	return entries
}

func newUseCase(repo favorite.Repository) *FavoritesUseCase {
	// Event publishing is exercised against a live broker; nil skips it here.
	return NewFavoritesUseCase(repo, nil, logger.NewNop())
}

func TestAdd_LimitReachedMapsToLimitExceeded(t *testing.T) {
	repo := &fakeFavoriteRepo{addErr: favorite.ErrLimitReached}
	uc := newUseCase(repo)

	entry, err := uc.Add(context.Background(), uuid.New(), uuid.New())

	assert.Nil(t, entry)
	assert.ErrorIs(t, err, apperror.ErrLimitExceeded)
	var appErr *apperror.AppError
	assert.ErrorAs(t, err, &appErr)
	assert.Contains(t, appErr.Message, "4 favourite courses")
}

func TestAdd_DuplicateMapsToConflict(t *testing.T) {
	repo := &fakeFavoriteRepo{addErr: favorite.ErrAlreadyExists}
	uc := newUseCase(repo)

	_, err := uc.Add(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, apperror.ErrConflict)
}

func TestAdd_Succeeds(t *testing.T) {
	repo := &fakeFavoriteRepo{}
	uc := newUseCase(repo)

	courseID := uuid.New()
	entry, err := uc.Add(context.Background(), uuid.New(), courseID)

	assert.NoError(t, err)
	assert.Equal(t, courseID, entry.CourseID)
	assert.Equal(t, 1, entry.Position)
}

func TestRemove_UnknownEntryMapsToNotFound(t *testing.T) {
	repo := &fakeFavoriteRepo{}
	uc := newUseCase(repo)

	err := uc.Remove(context.Background(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, apperror.ErrNotFound)
}

func TestReorder_ReturnsNewOrderImmediately(t *testing.T) {
	entries := seedEntries(4)
	repo := &fakeFavoriteRepo{entries: entries, updateDone: make(chan struct{})}
	uc := newUseCase(repo)

	got, err := uc.Reorder(context.Background(), uuid.New(), entries[0].ID, entries[3].ID)

	assert.NoError(t, err)
	assert.Equal(t, entries[1].CourseID, got[0].CourseID)
	assert.Equal(t, entries[0].CourseID, got[3].CourseID)
	for i, e := range got {
		assert.Equal(t, i+1, e.Position)
	}
}

func TestReorder_PersistsOrderInBackground(t *testing.T) {
	entries := seedEntries(3)
	repo := &fakeFavoriteRepo{entries: entries, updateDone: make(chan struct{})}
	uc := newUseCase(repo)

	got, err := uc.Reorder(context.Background(), uuid.New(), entries[2].ID, entries[0].ID)
	assert.NoError(t, err)

	select {
	case <-repo.updateDone:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background position update")
	}

	assert.Equal(t, favorite.CourseIDs(got), repo.updatedIDs())
}

func TestReorder_PersistenceFailureDoesNotRollBackResponse(t *testing.T) {
	entries := seedEntries(3)
	repo := &fakeFavoriteRepo{
		entries:    entries,
		updateErr:  errors.New("pg down"),
		updateDone: make(chan struct{}),
	}
	uc := newUseCase(repo)

	got, err := uc.Reorder(context.Background(), uuid.New(), entries[0].ID, entries[1].ID)

	// The optimistic order is returned even though persistence will fail.
	assert.NoError(t, err)
	assert.Equal(t, entries[1].CourseID, got[0].CourseID)

	select {
	case <-repo.updateDone:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for background position update")
	}
}

func TestReorder_ListFailureSurfacesError(t *testing.T) {
	repo := &fakeFavoriteRepo{listErr: errors.New("pg down")}
	uc := newUseCase(repo)

	_, err := uc.Reorder(context.Background(), uuid.New(), uuid.New(), uuid.New())

	assert.ErrorIs(t, err, apperror.ErrInternal)
}
