package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	authUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/auth"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type AuthHandler struct {
	registerUseCase *authUC.RegisterUseCase
	loginUseCase    *authUC.LoginUseCase
	logger          logger.Logger
}

func NewAuthHandler(register *authUC.RegisterUseCase, login *authUC.LoginUseCase, log logger.Logger) *AuthHandler {
	return &AuthHandler{
		registerUseCase: register,
		loginUseCase:    login,
		logger:          log,
	}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request body", err))
		return
	}

	output, err := h.registerUseCase.Execute(c.Request.Context(), authUC.RegisterInput{
		Email:    req.Email,
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusCreated, AuthResponse{
		AccessToken: output.AccessToken,
		UserID:      output.UserID.String(),
		Username:    req.Username,
	})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request body", err))
		return
	}

	output, err := h.loginUseCase.Execute(c.Request.Context(), authUC.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, AuthResponse{
		AccessToken: output.AccessToken,
		UserID:      output.UserID,
		Username:    output.Username,
	})
}
