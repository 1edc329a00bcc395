package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	favoriteUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/favorite"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type FavoriteHandler struct {
	favoritesUseCase *favoriteUC.FavoritesUseCase
	logger           logger.Logger
}

func NewFavoriteHandler(uc *favoriteUC.FavoritesUseCase, log logger.Logger) *FavoriteHandler {
	return &FavoriteHandler{
		favoritesUseCase: uc,
		logger:           log,
	}
}

func (h *FavoriteHandler) List(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	entries, err := h.favoritesUseCase.List(c.Request.Context(), userID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToFavoriteEntryDTOs(entries))
}

func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req AddFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request body", err))
		return
	}
	courseID, err := uuid.Parse(req.CourseID)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid course ID format", nil))
		return
	}

	entry, err := h.favoritesUseCase.Add(c.Request.Context(), userID, courseID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToFavoriteEntryDTO(*entry))
}

func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	courseID, err := uuid.Parse(c.Param("courseId"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid course ID format", nil))
		return
	}

	if err := h.favoritesUseCase.Remove(c.Request.Context(), userID, courseID); err != nil {
		c.Error(err)
		return
	}
	c.Status(http.StatusNoContent)
}

// Reorder handles PUT /api/favorites/order. The response carries the new
// ordering computed up front; persistence completes in the background.
func (h *FavoriteHandler) Reorder(c *gin.Context) {
	userID, ok := GetUserIDFromGinContext(c)
	if !ok {
		c.Error(apperror.NewPermissionDenied("userID not found in context"))
		return
	}

	var req ReorderFavoritesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request body", err))
		return
	}
	movedID, err := uuid.Parse(req.MovedID)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid moved_id format", nil))
		return
	}
	targetID, err := uuid.Parse(req.TargetID)
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid target_id format", nil))
		return
	}

	entries, err := h.favoritesUseCase.Reorder(c.Request.Context(), userID, movedID, targetID)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToFavoriteEntryDTOs(entries))
}
