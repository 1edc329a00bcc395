package main

import (
	"context"
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Shellybish/caddie-mvp-sub000/adapters/event"
	httpAdapter "github.com/Shellybish/caddie-mvp-sub000/adapters/http"
	"github.com/Shellybish/caddie-mvp-sub000/adapters/media_storage"
	"github.com/Shellybish/caddie-mvp-sub000/adapters/persistence"
	authUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/auth"
	courseUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/course"
	favoriteUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/favorite"
	listUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/list"
	reviewUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/review"
	searchUC "github.com/Shellybish/caddie-mvp-sub000/internal/application/usecase/search"
	"github.com/Shellybish/caddie-mvp-sub000/internal/config"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/auth"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/logger"
	"github.com/Shellybish/caddie-mvp-sub000/pkg/tracing"
)

func main() {
	fmt.Println("Starting Caddie API Server...")

	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("FATAL: cannot load config: %v", err)
	}

	appLogger := logger.NewZapLogger(cfg.App.Env)

	// Tracing
	tracerProvider, err := tracing.NewTracerProvider(cfg, appLogger, "caddie-api")
	if err != nil {
		log.Fatalf("FATAL: cannot init tracing: %v", err)
	}
	defer tracerProvider.Shutdown(context.Background())

	// Initialize dependencies
	dbPool, err := persistence.NewPostgresPool(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Postgres: %v", err)
	}
	defer dbPool.Close()

	redisClient, err := persistence.NewRedisClient(cfg, appLogger)
	if err != nil {
		log.Fatalf("FATAL: cannot connect Redis: %v", err)
	}
	defer redisClient.Close()

	kafkaClient, err := event.NewKafkaProducerClient(cfg)
	if err != nil {
		log.Fatalf("FATAL: cannot init Kafka: %v", err)
	}
	defer kafkaClient.Close()

	// Repositories
	userRepo := persistence.NewPostgresUserRepo(dbPool)
	courseRepo := persistence.NewPostgresCourseRepo(dbPool, appLogger)
	listRepo := persistence.NewPostgresListRepo(dbPool, appLogger)
	favoriteRepo := persistence.NewPostgresFavoriteRepo(dbPool, appLogger)
	reviewRepo := persistence.NewPostgresReviewRepo(dbPool)

	// Services
	jwtSvc := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenLifespan)
	uploader, err := media_storage.NewCloudinaryAdapter(cfg)
	if err != nil {
		log.Fatalf("FATAL: Failed to initialize uploader: %v", err)
	}

	// Use Cases
	registerUseCase := authUC.NewRegisterUseCase(userRepo, jwtSvc, appLogger)
	loginUseCase := authUC.NewLoginUseCase(userRepo, jwtSvc, appLogger)
	unifiedSearchUseCase := searchUC.NewUnifiedSearchUseCase(courseRepo, userRepo, listRepo, cfg.Search.UserLimit, appLogger)
	browseCoursesUseCase := courseUC.NewBrowseCoursesUseCase(courseRepo, appLogger)
	getCourseUseCase := courseUC.NewGetCourseUseCase(courseRepo)
	createCourseUseCase := courseUC.NewCreateCourseUseCase(courseRepo)
	topCoursesUseCase := courseUC.NewTopCoursesUseCase(courseRepo, redisClient, cfg.Redis.CacheTTL, appLogger)
	uploadImageUseCase := courseUC.NewUploadCourseImageUseCase(courseRepo, uploader, appLogger)
	favoritesUseCase := favoriteUC.NewFavoritesUseCase(favoriteRepo, kafkaClient, appLogger)
	listsUseCase := listUC.NewListsUseCase(listRepo, appLogger)
	reviewsUseCase := reviewUC.NewReviewsUseCase(reviewRepo, kafkaClient, appLogger)

	// HTTP Handlers
	authHandler := httpAdapter.NewAuthHandler(registerUseCase, loginUseCase, appLogger)
	searchHandler := httpAdapter.NewSearchHandler(unifiedSearchUseCase, appLogger)
	liveSearchHandler := httpAdapter.NewLiveSearchHandler(unifiedSearchUseCase, cfg.Search.DebounceDelay, appLogger)
	courseHandler := httpAdapter.NewCourseHandler(
		browseCoursesUseCase,
		getCourseUseCase,
		createCourseUseCase,
		topCoursesUseCase,
		uploadImageUseCase,
		appLogger,
	)
	favoriteHandler := httpAdapter.NewFavoriteHandler(favoritesUseCase, appLogger)
	listHandler := httpAdapter.NewListHandler(listsUseCase, appLogger)
	reviewHandler := httpAdapter.NewReviewHandler(reviewsUseCase, appLogger)

	// Middleware
	authMiddleware := httpAdapter.AuthMiddleware(jwtSvc)

	// Setup Gin router
	router := gin.Default()
	router.Use(httpAdapter.ErrorMiddleware(appLogger))

	api := router.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

		authGroup := api.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		api.GET("/search", searchHandler.Search)
		api.GET("/search/live", liveSearchHandler.Stream)

		courses := api.Group("/courses")
		{
			courses.GET("", courseHandler.Browse)
			courses.GET("/top-rated", courseHandler.HighestRated)
			courses.GET("/trending", courseHandler.Trending)
			courses.GET("/:id", courseHandler.GetByID)
			courses.GET("/:id/reviews", reviewHandler.ListByCourse)

			courses.POST("", authMiddleware, courseHandler.Create)
			courses.POST("/:id/image", authMiddleware, courseHandler.UploadImage)
			courses.POST("/:id/reviews", authMiddleware, reviewHandler.Create)
		}

		lists := api.Group("/lists")
		{
			lists.GET("", listHandler.BrowsePublic)
			lists.POST("", authMiddleware, listHandler.Create)
			lists.POST("/:id/courses", authMiddleware, listHandler.AddCourse)
		}

		favorites := api.Group("/favorites")
		favorites.Use(authMiddleware)
		{
			favorites.GET("", favoriteHandler.List)
			favorites.POST("", favoriteHandler.Add)
			favorites.PUT("/order", favoriteHandler.Reorder)
			favorites.DELETE("/:courseId", favoriteHandler.Remove)
		}
	}

	log.Printf("Server running on port %s", cfg.App.Port)
	if err := router.Run(":" + cfg.App.Port); err != nil {
		log.Fatalf("Cannot run server: %v", err)
	}
}
