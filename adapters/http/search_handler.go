package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	searchUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/search"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type SearchHandler struct {
	searchUseCase *searchUC.UnifiedSearchUseCase
	logger        logger.Logger
}

func NewSearchHandler(uc *searchUC.UnifiedSearchUseCase, log logger.Logger) *SearchHandler {
	return &SearchHandler{
		searchUseCase: uc,
		logger:        log,
	}
}

// Search handles GET /api/search?q=<term>&province=<p>&minRating=<r>&sort=<key>.
// A missing or too-short term yields an empty result set rather than an error.
func (h *SearchHandler) Search(c *gin.Context) {

	input := searchUC.SearchInput{
		Term: c.Query("q"),
	}

	scope, ok := searchUC.ParseScope(c.Query("filter"))
	if !ok {
		c.Error(apperror.NewInvalidInput("'filter' must be one of all, courses, users, lists", nil))
		return
	}
	input.Scope = scope

	if province := c.Query("province"); province != "" {
		if !course.IsValidProvince(province) {
			c.Error(apperror.NewInvalidInput("unknown province", fmt.Errorf("province %q is not recognized", province)))
			return
		}
		input.Filters.Province = province
	}

	if minRating := c.Query("minRating"); minRating != "" {
		rating, err := strconv.ParseFloat(minRating, 64)
		if err != nil || rating < 0 || rating > 5 {
			c.Error(apperror.NewInvalidInput("'minRating' must be a number between 0 and 5", nil))
			return
		}
		input.Filters.MinRating = rating
	}

	if sortParam := c.Query("sort"); sortParam != "" {
		key, ok := course.ParseSortKey(sortParam)
		if !ok {
			c.Error(apperror.NewInvalidInput("unknown sort key", fmt.Errorf("sort %q is not recognized", sortParam)))
			return
		}
		input.Sort = key
		input.ExplicitSort = true
	}

	output, err := h.searchUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	c.JSON(http.StatusOK, ToUnifiedSearchResponse(output.Results))
}
