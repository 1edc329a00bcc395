package http

import (
	"time"

	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/course"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/favorite"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/list"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/review"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/search"
	"github.com/Shellybish/caddie-mvp-sub000/internal/domain/user"
)

// Auth DTOs

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Username string `json:"username" binding:"required,min=3,max=30"`
	Password string `json:"password" binding:"required,min=8"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	UserID      string `json:"user_id,omitempty"`
	Username    string `json:"username,omitempty"`
}

// Course DTOs

type CourseDTO struct {
	Type           string    `json:"type,omitempty"`
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Location       string    `json:"location"`
	Province       string    `json:"province"`
	Description    string    `json:"description,omitempty"`
	ImageURL       *string   `json:"image_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	AverageRating  float64   `json:"average_rating"`
	TotalReviews   int       `json:"total_reviews"`
	RelevanceScore int       `json:"relevance_score,omitempty"`
}

type CreateCourseRequest struct {
	Name        string `json:"name" binding:"required"`
	Location    string `json:"location" binding:"required"`
	Province    string `json:"province" binding:"required"`
	Description string `json:"description"`
}

func ToCourseDTO(c course.Course) CourseDTO {
	return CourseDTO{
		ID:            c.ID.String(),
		Name:          c.Name,
		Location:      c.Location,
		Province:      c.Province,
		Description:   c.Description,
		ImageURL:      c.ImageURL,
		CreatedAt:     c.CreatedAt,
		AverageRating: c.AverageRating,
		TotalReviews:  c.TotalReviews,
	}
}

func ToCourseResultDTO(r course.Result) CourseDTO {
	dto := ToCourseDTO(r.Course)
	dto.RelevanceScore = r.RelevanceScore
	return dto
}

// User DTOs

type UserResultDTO struct {
	Type      string  `json:"type,omitempty"`
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	Username  string  `json:"username"`
	AvatarURL *string `json:"avatar_url,omitempty"`
}

func ToUserResultDTO(r user.Result) UserResultDTO {
	return UserResultDTO{
		ID:        r.ID.String(),
		UserID:    r.UserID.String(),
		Username:  r.Username,
		AvatarURL: r.AvatarURL,
	}
}

// List DTOs

type ListDTO struct {
	Type        string    `json:"type,omitempty"`
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description *string   `json:"description,omitempty"`
	IsPublic    bool      `json:"is_public"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
	CourseCount int       `json:"course_count"`
	AuthorName  *string   `json:"author_name,omitempty"`
}

type CreateListRequest struct {
	Title       string  `json:"title" binding:"required"`
	Description *string `json:"description"`
	IsPublic    bool    `json:"is_public"`
}

type AddListCourseRequest struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
}

func ToListDTO(l list.CourseList) ListDTO {
	return ListDTO{
		ID:          l.ID.String(),
		Title:       l.Title,
		Description: l.Description,
		IsPublic:    l.IsPublic,
		UserID:      l.UserID.String(),
		CreatedAt:   l.CreatedAt,
		CourseCount: l.CourseCount,
		AuthorName:  l.AuthorName,
	}
}

// Unified search response. Entries in "all" carry a type discriminant so
// clients can switch on it.

type UnifiedSearchResponse struct {
	Courses []CourseDTO     `json:"courses"`
	Users   []UserResultDTO `json:"users"`
	Lists   []ListDTO       `json:"lists"`
	All     []any           `json:"all"`
}

func ToUnifiedSearchResponse(r search.UnifiedResults) UnifiedSearchResponse {
	resp := UnifiedSearchResponse{
		Courses: make([]CourseDTO, len(r.Courses)),
		Users:   make([]UserResultDTO, len(r.Users)),
		Lists:   make([]ListDTO, len(r.Lists)),
		All:     make([]any, len(r.All)),
	}
	for i, c := range r.Courses {
		resp.Courses[i] = ToCourseResultDTO(c)
	}
	for i, u := range r.Users {
		resp.Users[i] = ToUserResultDTO(u)
	}
	for i, l := range r.Lists {
		resp.Lists[i] = ToListDTO(l)
	}
	for i, res := range r.All {
		resp.All[i] = toTaggedResultDTO(res)
	}
	return resp
}

func toTaggedResultDTO(res search.Result) any {
	switch v := res.(type) {
	case search.CourseResult:
		dto := ToCourseResultDTO(v.Result)
		dto.Type = string(search.KindCourse)
		return dto
	case search.UserResult:
		dto := ToUserResultDTO(v.Result)
		dto.Type = string(search.KindUser)
		return dto
	case search.ListResult:
		dto := ToListDTO(v.Result)
		dto.Type = string(search.KindList)
		return dto
	default:
		return nil
	}
}

// Review DTOs

type ReviewDTO struct {
	ID        string    `json:"id"`
	CourseID  string    `json:"course_id"`
	UserID    string    `json:"user_id"`
	Rating    int       `json:"rating"`
	Comment   string    `json:"comment,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

type CreateReviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

func ToReviewDTO(r review.Review) ReviewDTO {
	return ReviewDTO{
		ID:        r.ID.String(),
		CourseID:  r.CourseID.String(),
		UserID:    r.UserID.String(),
		Rating:    r.Rating,
		Comment:   r.Comment,
		CreatedAt: r.CreatedAt,
	}
}

// Favorite DTOs

type FavoriteCourseDTO struct {
	Name     string  `json:"name"`
	Location string  `json:"location"`
	ImageURL *string `json:"image_url,omitempty"`
}

type FavoriteEntryDTO struct {
	ID       string            `json:"id"`
	CourseID string            `json:"course_id"`
	Position int               `json:"position"`
	Course   FavoriteCourseDTO `json:"course"`
}

type AddFavoriteRequest struct {
	CourseID string `json:"course_id" binding:"required,uuid"`
}

type ReorderFavoritesRequest struct {
	MovedID  string `json:"moved_id" binding:"required,uuid"`
	TargetID string `json:"target_id" binding:"required,uuid"`
}

func ToFavoriteEntryDTO(e favorite.Entry) FavoriteEntryDTO {
	return FavoriteEntryDTO{
		ID:       e.ID.String(),
		CourseID: e.CourseID.String(),
		Position: e.Position,
		Course: FavoriteCourseDTO{
			Name:     e.Course.Name,
			Location: e.Course.Location,
			ImageURL: e.Course.ImageURL,
		},
	}
}

func ToFavoriteEntryDTOs(entries []favorite.Entry) []FavoriteEntryDTO {
	dtos := make([]FavoriteEntryDTO, len(entries))
	for i, e := range entries {
		dtos[i] = ToFavoriteEntryDTO(e)
	}
	return dtos
}
