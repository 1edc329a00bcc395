package persistence

import (
	"context"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/review"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
)

type postgresReviewRepo struct {
	db *pgxpool.Pool
}

func NewPostgresReviewRepo(db *pgxpool.Pool) review.Repository {
	return &postgresReviewRepo{db: db}
}

var psqlReview = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresReviewRepo) Save(ctx context.Context, rv *review.Review) error {
	query := `
		INSERT INTO reviews (id, course_id, user_id, rating, comment, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query, rv.ID, rv.CourseID, rv.UserID, rv.Rating, rv.Comment, rv.CreatedAt)
	if err != nil {
		return apperror.NewInternal("failed to save review", err)
	}
	return nil
}

func (r *postgresReviewRepo) ListByCourse(ctx context.Context, courseID uuid.UUID, limit, offset int) ([]review.Review, error) {
	builder := psqlReview.Select("id", "course_id", "user_id", "rating", "comment", "created_at").
		From("reviews").
		Where(sq.Eq{"course_id": courseID}).
		OrderBy("created_at DESC").
		Limit(uint64(limit)).
		Offset(uint64(offset))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build review query", err)
	}
	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to query reviews", err)
	}
	defer rows.Close()

	reviews := make([]review.Review, 0)
	for rows.Next() {
		var rv review.Review
		err := rows.Scan(&rv.ID, &rv.CourseID, &rv.UserID, &rv.Rating, &rv.Comment, &rv.CreatedAt)
		if err != nil {
			return nil, apperror.NewInternal("failed to scan review row", err)
		}
		reviews = append(reviews, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating review rows", err)
	}
	return reviews, nil
}
