package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	reviewUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/review"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type ReviewHandler struct {
	reviewsUseCase *reviewUC.ReviewsUseCase
	logger         logger.Logger
}

func NewReviewHandler(uc *reviewUC.ReviewsUseCase, log logger.Logger) *ReviewHandler {
	return &ReviewHandler{
		reviewsUseCase: uc,
		logger:         log,
	}
}

func (h *ReviewHandler) Create(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid course ID format", nil))
		return
	}

	var req CreateReviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request body", err))
		return
	}

	rev, err := h.reviewsUseCase.Create(c.Request.Context(), reviewUC.CreateReviewInput{
		CourseID: courseID,
		UserID:   userID,
		Rating:   req.Rating,
		Comment:  req.Comment,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToReviewDTO(*rev))
}

func (h *ReviewHandler) ListByCourse(c *gin.Context) {
	courseID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid course ID format", nil))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	reviews, err := h.reviewsUseCase.ListByCourse(c.Request.Context(), courseID, page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]ReviewDTO, len(reviews))
	for i, r := range reviews {
		dtos[i] = ToReviewDTO(r)
	}
	c.JSON(http.StatusOK, dtos)
}
