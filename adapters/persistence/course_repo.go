package persistence

import (
	"context"
	"errors"
	"strings"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type postgresCourseRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresCourseRepo(db *pgxpool.Pool, logger logger.Logger) course.Repository {
	return &postgresCourseRepo{db: db, logger: logger}
}

var psqlCourse = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// escapeLike neutralizes LIKE wildcards in user input so a term like "100%"
// matches literally.
func escapeLike(term string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(term)
}

// courseSelect is the shared base: every course row comes pre-joined with
// its rating aggregates.
func (r *postgresCourseRepo) courseSelect() sq.SelectBuilder {
	return psqlCourse.Select(
		"c.id", "c.name", "c.location", "c.province", "c.description",
		"c.image_url", "c.created_at",
		"COALESCE(ROUND(AVG(rv.rating)::numeric, 1), 0)::float8 AS average_rating",
		"COUNT(rv.id)::int AS total_reviews",
	).
		From("courses c").
		LeftJoin("reviews rv ON rv.course_id = c.id").
		GroupBy("c.id")
}

func applyFilters(builder sq.SelectBuilder, filters course.Filters) sq.SelectBuilder {
	if filters.Province != "" {
		builder = builder.Where(sq.Eq{"c.province": filters.Province})
	}
	if filters.MinRating > 0 {
		builder = builder.Having("COALESCE(AVG(rv.rating), 0) >= ?", filters.MinRating)
	}
	return builder
}

func scanCourse(row pgx.Row) (*course.Course, error) {
	c := &course.Course{}
	err := row.Scan(
		&c.ID, &c.Name, &c.Location, &c.Province, &c.Description,
		&c.ImageURL, &c.CreatedAt, &c.AverageRating, &c.TotalReviews,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, course.ErrCourseNotFound
		}
		return nil, apperror.NewInternal("failed to scan course row", err)
	}
	return c, nil
}

func scanCourses(rows pgx.Rows) ([]course.Course, error) {
	defer rows.Close()
	courses := make([]course.Course, 0)
	for rows.Next() {
		c, err := scanCourse(rows)
		if err != nil {
			return nil, err
		}
		courses = append(courses, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating course rows", err)
	}
	return courses, nil
}

func (r *postgresCourseRepo) queryCourses(ctx context.Context, builder sq.SelectBuilder) ([]course.Course, error) {
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build course query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to execute course query", err)
	}
	return scanCourses(rows)
}

func (r *postgresCourseRepo) Save(ctx context.Context, c *course.Course) error {
	query := `
		INSERT INTO courses (id, name, location, province, description, image_url, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := r.db.Exec(ctx, query,
		c.ID, c.Name, c.Location, c.Province, c.Description, c.ImageURL, c.CreatedAt,
	)
	if err != nil {
		return apperror.NewInternal("failed to save course", err)
	}
	return nil
}

func (r *postgresCourseRepo) FindByID(ctx context.Context, id uuid.UUID) (*course.Course, error) {
	builder := r.courseSelect().Where(sq.Eq{"c.id": id})
	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build find course query", err)
	}
	return scanCourse(r.db.QueryRow(ctx, sql, args...))
}

func (r *postgresCourseRepo) SetImageURL(ctx context.Context, id uuid.UUID, imageURL string) error {
	cmdTag, err := r.db.Exec(ctx, `UPDATE courses SET image_url = $2 WHERE id = $1`, id, imageURL)
	if err != nil {
		return apperror.NewInternal("failed to update course image", err)
	}
	if cmdTag.RowsAffected() == 0 {
		return course.ErrCourseNotFound
	}
	return nil
}

func (r *postgresCourseRepo) Search(ctx context.Context, term string, filters course.Filters, limit int) ([]course.Course, error) {
	pattern := "%" + escapeLike(term) + "%"

	builder := r.courseSelect().
		Where(sq.Or{
			sq.ILike{"c.name": pattern},
			sq.ILike{"c.location": pattern},
			sq.ILike{"c.province": pattern},
			sq.ILike{"c.description": pattern},
		}).
		OrderBy("c.name ASC").
		Limit(uint64(limit))
	builder = applyFilters(builder, filters)

	return r.queryCourses(ctx, builder)
}

func (r *postgresCourseRepo) List(ctx context.Context, filters course.Filters, sort course.SortKey, limit, offset int) ([]course.Course, error) {
	builder := r.courseSelect().
		OrderBy(sortOrderBy(sort)...).
		Limit(uint64(limit)).
		Offset(uint64(offset))
	builder = applyFilters(builder, filters)

	return r.queryCourses(ctx, builder)
}

// sortOrderBy translates a sort key into ORDER BY clauses. Ties break by
// ascending name so pages stay deterministic, mirroring course.Sort.
func sortOrderBy(key course.SortKey) []string {
	const nameAsc = "lower(c.name) ASC"
	switch key {
	case course.SortRatingAsc:
		return []string{"average_rating ASC", nameAsc}
	case course.SortNameAsc:
		return []string{nameAsc}
	case course.SortNameDesc:
		return []string{"lower(c.name) DESC"}
	case course.SortCreatedDesc:
		return []string{"c.created_at DESC", nameAsc}
	case course.SortReviewCountDesc:
		return []string{"total_reviews DESC", nameAsc}
	default:
		return []string{"average_rating DESC", nameAsc}
	}
}

func (r *postgresCourseRepo) HighestRated(ctx context.Context, minReviews, limit int) ([]course.Course, error) {
	builder := r.courseSelect().
		Having("COUNT(rv.id) >= ?", minReviews).
		OrderBy("average_rating DESC", "c.name ASC").
		Limit(uint64(limit))

	return r.queryCourses(ctx, builder)
}

func (r *postgresCourseRepo) Trending(ctx context.Context, window time.Duration, limit int) ([]course.Course, error) {
	query := `
		SELECT
			c.id, c.name, c.location, c.province, c.description,
			c.image_url, c.created_at,
			COALESCE(ROUND(AVG(rv.rating)::numeric, 1), 0)::float8 AS average_rating,
			COUNT(rv.id)::int AS total_reviews,
			COUNT(rv.id) FILTER (WHERE rv.created_at >= NOW() - make_interval(secs => $1))::int AS recent_reviews
		FROM courses c
		LEFT JOIN reviews rv ON rv.course_id = c.id
		GROUP BY c.id
		HAVING COUNT(rv.id) FILTER (WHERE rv.created_at >= NOW() - make_interval(secs => $1)) > 0
		ORDER BY recent_reviews DESC, average_rating DESC, c.name ASC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, window.Seconds(), limit)
	if err != nil {
		return nil, apperror.NewInternal("failed to execute trending query", err)
	}
	defer rows.Close()

	courses := make([]course.Course, 0)
	for rows.Next() {
		var c course.Course
		var recent int
		err := rows.Scan(
			&c.ID, &c.Name, &c.Location, &c.Province, &c.Description,
			&c.ImageURL, &c.CreatedAt, &c.AverageRating, &c.TotalReviews, &recent,
		)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan trending course row", err)
		}
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating trending rows", err)
	}
	return courses, nil
}
