package http

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	courseUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/course"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/apperror"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
)

type CourseHandler struct {
	browseUseCase *courseUC.BrowseCoursesUseCase
	getUseCase    *courseUC.GetCourseUseCase
	createUseCase *courseUC.CreateCourseUseCase
	topUseCase    *courseUC.TopCoursesUseCase
	uploadUseCase *courseUC.UploadCourseImageUseCase
	logger        logger.Logger
}

func NewCourseHandler(
	browse *courseUC.BrowseCoursesUseCase,
	get *courseUC.GetCourseUseCase,
	create *courseUC.CreateCourseUseCase,
	top *courseUC.TopCoursesUseCase,
	upload *courseUC.UploadCourseImageUseCase,
	log logger.Logger,
) *CourseHandler {
	return &CourseHandler{
		browseUseCase: browse,
		getUseCase:    get,
		createUseCase: create,
		topUseCase:    top,
		uploadUseCase: upload,
		logger:        log,
	}
}

// Browse handles GET /api/courses with optional province, minRating, sort,
// page and limit params.
func (h *CourseHandler) Browse(c *gin.Context) {

	input := courseUC.BrowseInput{}
	input.Page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	input.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))

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
	}

	results, err := h.browseUseCase.Execute(c.Request.Context(), input)
	if err != nil {
		c.Error(err)
		return
	}

	dtos := make([]CourseDTO, len(results))
	for i, r := range results {
		dtos[i] = ToCourseDTO(r.Course)
	}
	c.JSON(http.StatusOK, dtos)
}

func (h *CourseHandler) GetByID(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid course ID format", nil))
		return
	}

	crs, err := h.getUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, ToCourseDTO(*crs))
}

func (h *CourseHandler) Create(c *gin.Context) {
	var req CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.NewInvalidInput("invalid request body", err))
		return
	}

	crs, err := h.createUseCase.Execute(c.Request.Context(), courseUC.CreateCourseInput{
		Name:        req.Name,
		Location:    req.Location,
		Province:    req.Province,
		Description: req.Description,
	})
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusCreated, ToCourseDTO(*crs))
}

func (h *CourseHandler) HighestRated(c *gin.Context) {
	courses, err := h.topUseCase.HighestRated(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toCourseDTOs(courses))
}

func (h *CourseHandler) Trending(c *gin.Context) {
	courses, err := h.topUseCase.Trending(c.Request.Context())
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, toCourseDTOs(courses))
}

func (h *CourseHandler) UploadImage(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.Error(apperror.NewInvalidInput("invalid course ID format", nil))
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.NewInvalidInput("'file' form field is required", nil))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		c.Error(apperror.NewInternal("failed to open uploaded file", err))
		return
	}
	defer file.Close()

	url, err := h.uploadUseCase.Execute(c.Request.Context(), id, file)
	if err != nil {
		c.Error(err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"image_url": url})
}

func toCourseDTOs(courses []course.Course) []CourseDTO {
	dtos := make([]CourseDTO, len(courses))
	for i, crs := range courses {
		dtos[i] = ToCourseDTO(crs)
	}
	return dtos
}
