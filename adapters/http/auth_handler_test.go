package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	authUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/auth"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/user"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/auth"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type memoryUserRepo struct {
	saved []*user.User
}

func (r *memoryUserRepo) Save(_ context.Context, u *user.User) error {
	r.saved = append(r.saved, u)
	return nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*user.User, error) {
	for _, u := range r.saved {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id uuid.UUID) (*user.User, error) {
	for _, u := range r.saved {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, user.ErrUserNotFound
}

func (r *memoryUserRepo) SearchByUsername(_ context.Context, _ string, _ int) ([]user.Result, error) {
	return nil, nil
}

func newAuthRouter(repo user.Repository) *gin.Engine {
	gin.SetMode(gin.TestMode)
	log := logger.NewNop()
	jwtSvc := auth.NewJWTService("test-secret", time.Hour)
	handler := NewAuthHandler(
		authUC.NewRegisterUseCase(repo, jwtSvc, log),
		authUC.NewLoginUseCase(repo, jwtSvc, log),
		log,
	)

	router := gin.New()
	router.Use(ErrorMiddleware(log))
	router.POST("/register", handler.Register)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	return rr
}

func TestAuthHandler_Register_MalformedBody(t *testing.T) {
	router := newAuthRouter(&memoryUserRepo{})

	rr := postJSON(router, "/register", `{"email": "truncated`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "invalid input")
}

func TestAuthHandler_Register_MissingFields(t *testing.T) {
	router := newAuthRouter(&memoryUserRepo{})

	rr := postJSON(router, "/register", `{"email": "not-an-email"}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestAuthHandler_Register_Success(t *testing.T) {
	repo := &memoryUserRepo{}
	router := newAuthRouter(repo)

	rr := postJSON(router, "/register", `{"email": "golfer@example.com", "username": "golfer", "password": "longenough"}`)

	assert.Equal(t, http.StatusCreated, rr.Code)
	assert.Contains(t, rr.Body.String(), "access_token")
	assert.Len(t, repo.saved, 1)
	assert.Equal(t, "golfer@example.com", repo.saved[0].Email)
}
