package persistence

import (
	"context"
	"errors"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/user"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
)

type postgresUserRepo struct {
	db *pgxpool.Pool
}

func NewPostgresUserRepo(db *pgxpool.Pool) user.Repository {
	return &postgresUserRepo{db: db}
}

var psqlUser = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresUserRepo) Save(ctx context.Context, u *user.User) error {
	query := `
		INSERT INTO users (id, email, username, avatar_url, password_hash)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := r.db.Exec(ctx, query, u.ID, u.Email, u.Username, u.AvatarURL, u.PasswordHash)
	if err != nil {
		var pgErr *pgconn.PgError
		// 23505: unique_violation on email or username
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return apperror.NewConflict("user", "email or username", u.Email)
		}
		return apperror.NewInternal("failed to save user", err)
	}
	return nil
}

func (r *postgresUserRepo) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	return r.findOne(ctx, sq.Eq{"email": email})
}

func (r *postgresUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	return r.findOne(ctx, sq.Eq{"id": id})
}

func (r *postgresUserRepo) findOne(ctx context.Context, pred interface{}) (*user.User, error) {
	builder := psqlUser.Select("id", "email", "username", "avatar_url", "password_hash").
		From("users").
		Where(pred)

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build user query", err)
	}

	u := &user.User{}
	err = r.db.QueryRow(ctx, sql, args...).Scan(
		&u.ID, &u.Email, &u.Username, &u.AvatarURL, &u.PasswordHash,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, user.ErrUserNotFound
		}
		return nil, apperror.NewInternal("error when query user", err)
	}
	return u, nil
}

func (r *postgresUserRepo) SearchByUsername(ctx context.Context, term string, limit int) ([]user.Result, error) {
	pattern := "%" + escapeLike(term) + "%"

	builder := psqlUser.Select("id", "username", "avatar_url").
		From("users").
		Where(sq.ILike{"username": pattern}).
		OrderBy("username ASC").
		Limit(uint64(limit))

	sql, args, err := builder.ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build user search query", err)
	}

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, apperror.NewInternal("failed to execute user search", err)
	}
	defer rows.Close()

	results := make([]user.Result, 0)
	for rows.Next() {
		var res user.Result
		if err := rows.Scan(&res.ID, &res.Username, &res.AvatarURL); err != nil {
			return nil, apperror.NewInternal("failed to scan user search row", err)
		}
		res.UserID = res.ID
		results = append(results, res)
	}
	if err := rows.Err(); err != nil {
		return nil, apperror.NewInternal("error iterating user search rows", err)
	}
	return results, nil
}
