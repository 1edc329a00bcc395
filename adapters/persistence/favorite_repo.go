package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/favorite"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type postgresFavoriteRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresFavoriteRepo(db *pgxpool.Pool, logger logger.Logger) favorite.Repository {
	return &postgresFavoriteRepo{db: db, logger: logger}
}

// isDuplicateCourseViolation reports whether err is the unique violation on
// (user_id, course_id). A violation on the (user_id, position) constraint is
// not a duplicate course and must not be reported as one.
func isDuplicateCourseViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505" &&
		strings.Contains(pgErr.ConstraintName, "course")
}

func (r *postgresFavoriteRepo) ListByUser(ctx context.Context, userID uuid.UUID) ([]favorite.Entry, error) {
	query := `
		SELECT f.id, f.course_id, f.position, c.name, c.location, c.image_url
		FROM favorite_courses f
		JOIN courses c ON c.id = f.course_id
		WHERE f.user_id = $1
		ORDER BY f.position ASC
	`
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, apperror.NewInternal("failed to query favorites", err)
	}
	defer rows.Close()

	entries := make([]favorite.Entry, 0, favorite.MaxEntries)
	for rows.Next() {
		var e favorite.Entry
		err := rows.Scan(
			&e.ID, &e.CourseID, &e.Position,
			&e.Course.Name, &e.Course.Location, &e.Course.ImageURL,
		)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan favorite row", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating favorite rows", err)
	}
	return entries, nil
}

// Add checks the cap and inserts inside one transaction. The user row is
// locked first: favorite rows alone cannot serialize concurrent adds, since
// a user with zero favorites has no rows to lock.
func (r *postgresFavoriteRepo) Add(ctx context.Context, userID, courseID uuid.UUID) (*favorite.Entry, error) {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return nil, apperror.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT id FROM users WHERE id = $1 FOR UPDATE`, userID); err != nil {
		return nil, apperror.NewInternal("failed to lock user", err)
	}

	var count int
	err = tx.QueryRow(ctx, `SELECT COUNT(*) FROM favorite_courses WHERE user_id = $1`, userID).Scan(&count)
	if err != nil {
		return nil, apperror.NewInternal("error counting favorites", err)
	}

	if count >= favorite.MaxEntries {
		return nil, favorite.ErrLimitReached
	}

	entry := &favorite.Entry{
		ID:       uuid.New(),
		CourseID: courseID,
		Position: count + 1,
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO favorite_courses (id, user_id, course_id, position) VALUES ($1, $2, $3, $4)`,
		entry.ID, userID, courseID, entry.Position,
	)
	if err != nil {
		if isDuplicateCourseViolation(err) {
			return nil, favorite.ErrAlreadyExists
		}
		return nil, apperror.NewInternal("failed to insert favorite", err)
	}

	err = tx.QueryRow(ctx, `SELECT name, location, image_url FROM courses WHERE id = $1`, courseID).
		Scan(&entry.Course.Name, &entry.Course.Location, &entry.Course.ImageURL)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewNotFound("course", courseID.String())
		}
		return nil, apperror.NewInternal("failed to load course summary", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, apperror.NewInternal("failed to commit favorite", err)
	}
	return entry, nil
}

// Remove deletes the entry and closes the position gap so the sequence
// stays dense.
func (r *postgresFavoriteRepo) Remove(ctx context.Context, userID, courseID uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	var removedPosition int
	err = tx.QueryRow(ctx,
		`DELETE FROM favorite_courses WHERE user_id = $1 AND course_id = $2 RETURNING position`,
		userID, courseID,
	).Scan(&removedPosition)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return favorite.ErrEntryNotFound
		}
		return apperror.NewInternal("failed to delete favorite", err)
	}

	_, err = tx.Exec(ctx,
		`UPDATE favorite_courses SET position = position - 1 WHERE user_id = $1 AND position > $2`,
		userID, removedPosition,
	)
	if err != nil {
		return apperror.NewInternal("failed to resequence favorites", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit favorite removal", err)
	}
	return nil
}

// UpdatePositions rewrites every position in one transaction: the bulk
// reposition is atomic, partial orders are never visible.
func (r *postgresFavoriteRepo) UpdatePositions(ctx context.Context, userID uuid.UUID, orderedCourseIDs []uuid.UUID) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return apperror.NewInternal("failed to begin transaction", err)
	}
	defer tx.Rollback(ctx)

	// Park positions out of the way first so the unique (user_id, position)
	// constraint cannot trip mid-rewrite.
	_, err = tx.Exec(ctx,
		`UPDATE favorite_courses SET position = position + $2 WHERE user_id = $1`,
		userID, favorite.MaxEntries,
	)
	if err != nil {
		return apperror.NewInternal("failed to stage favorite positions", err)
	}

	for i, courseID := range orderedCourseIDs {
		cmdTag, err := tx.Exec(ctx,
			`UPDATE favorite_courses SET position = $3 WHERE user_id = $1 AND course_id = $2`,
			userID, courseID, i+1,
		)
		if err != nil {
			return apperror.NewInternal("failed to update favorite position", err)
		}
		if cmdTag.RowsAffected() == 0 {
			return favorite.ErrEntryNotFound
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return apperror.NewInternal("failed to commit favorite positions", err)
	}
	return nil
}
