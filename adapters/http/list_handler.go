package http

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	listUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/list"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type ListHandler struct {
	listsUseCase *listUC.ListsUseCase
	logger       logger.Logger
}

func NewListHandler(uc *listUC.ListsUseCase, log logger.Logger) *ListHandler {
	return &ListHandler{
		listsUseCase: uc,
		logger:       log,
	}
}

func (h *ListHandler) Create(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req CreateListRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request body", err))
		return
	}

	l, err := h.listsUseCase.Create(c.Request.Context(), listUC.CreateListInput{
		UserID:      userID,
		Title:       req.Title,
		Description: req.Description,
		IsPublic:    req.IsPublic,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToListDTO(*l))
}

func (h *ListHandler) AddCourse(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	listID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid list ID format", nil))
		return
	}

	var req AddListCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request body", err))
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid course ID format", nil))
		return
	}

	if err := h.listsUseCase.AddCourse(c.Request.Context(), listID, courseID, userID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ListHandler) BrowsePublic(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	lists, err := h.listsUseCase.BrowsePublic(c.Request.Context(), page, limit)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]ListDTO, len(lists))
	for i, l := range lists {
		dtos[i] = ToListDTO(l)
	}
	c.JSON(http.StatusOK, dtos)
}
