package persistence

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestIsDuplicateCourseViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{
			"duplicate course",
			&pgconn.PgError{Code: "23505", ConstraintName: "favorite_courses_user_id_course_id_key"},
			true,
		},
		{
			"position collision is not a duplicate course",
			&pgconn.PgError{Code: "23505", ConstraintName: "favorite_courses_user_id_position_key"},
			false,
		},
		{
			"other constraint code",
			&pgconn.PgError{Code: "23503", ConstraintName: "favorite_courses_course_id_fkey"},
			false,
		},
		{
			"wrapped pg error",
			fmt.Errorf("insert: %w", &pgconn.PgError{Code: "23505", ConstraintName: "favorite_courses_user_id_course_id_key"}),
			true,
		},
		{
			"plain error",
			errors.New("connection reset"),
			false,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, isDuplicateCourseViolation(tc.err))
		})
	}
}
