package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/list"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type postgresListRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresListRepo(db *pgxpool.Pool, logger logger.Logger) list.Repository {
	return &postgresListRepo{db: db, logger: logger}
}

var psqlList = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// listSelect joins the author and the course count so list rows render
// without follow-up queries.
func (r *postgresListRepo) listSelect() sq.SelectBuilder {
	return psqlList.Select(
		"l.id", "l.title", "l.description", "l.is_public", "l.user_id",
		"l.created_at",
		"(SELECT COUNT(*) FROM list_courses lc WHERE lc.list_id = l.id)::int AS course_count",
		"u.username AS author_name",
	).
		From("course_lists l").
		LeftJoin("users u ON u.id = l.user_id")
}

func scanLists(rows pgx.Rows) ([]list.CourseList, error) {
	defer rows.Close()
	lists := make([]list.CourseList, 0)
	for rows.Next() {
		var l list.CourseList
		err := rows.Scan(
			&l.ID, &l.Title, &l.Description, &l.IsPublic, &l.UserID,
			&l.CreatedAt, &l.CourseCount, &l.AuthorName,
		)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan list row", err)
		}
		lists = append(lists, l)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating list rows", err)
	}
	return lists, nil
}

func (r *postgresListRepo) Save(ctx context.Context, l *list.CourseList) error {
	query := `
		INSERT INTO course_lists (id, title, description, is_public, user_id, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, l.ID, l.Title, l.Description, l.IsPublic, l.UserID, l.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save list", err)
	}
	return nil
}

func (r *postgresListRepo) FindByID(ctx context.Context, id uuid.UUID) (*list.CourseList, error) {
	builder := r.listSelect().Where(sq.Eq{"l.id": id})
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find list query", err)
	}

	var l list.CourseList
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&l.ID, &l.Title, &l.Description, &l.IsPublic, &l.UserID,
		&l.CreatedAt, &l.CourseCount, &l.AuthorName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, list.ErrListNotFound
		}
		return nil, apperror.NewInternal("failed to scan list row", err)
	}
	return &l, nil
}

func (r *postgresListRepo) AddCourse(ctx context.Context, listID, courseID uuid.UUID) error {
	query := `INSERT INTO list_courses (list_id, course_id) VALUES ($1, $2)`
	_, err := r.db.Exec(ctx, query, listID, courseID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return list.ErrCourseAlreadyInList
		}
		return apperror.NewInternal("failed to add course to list", err)
	}
	return nil
}

func (r *postgresListRepo) ListPublic(ctx context.Context, limit, offset int) ([]list.CourseList, error) {
	builder := r.listSelect().
		Where(sq.Eq{"l.is_public": true}).
		OrderBy("l.created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build public lists query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query public lists", err)
	}
	return scanLists(rows)
}

func (r *postgresListRepo) SearchPublic(ctx context.Context, term string, limit int) ([]list.Result, error) {
	pattern := "%" + escapeLike(term) + "%"

	builder := r.listSelect().
		Where(sq.Eq{"l.is_public": true}).
		Where(sq.Or{
			sq.ILike{"l.title": pattern},
			sq.ILike{"l.description": pattern},
		}).
		OrderBy("l.title ASC").
		Limit(uint64(limit))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build list search query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to execute list search", err)
	}
	return scanLists(rows)
}
