package api

import (
	"time"

	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.mongodb.org/mongo-driver/mongo"

	_ "github.com/pressify/articles-api/docs"
	"github.com/pressify/articles-api/internal/api/handler"
	"github.com/pressify/articles-api/internal/api/middleware"
	"github.com/pressify/articles-api/internal/core/service"
	mongorepo "github.com/pressify/articles-api/internal/infrastructure/db/mongo"
	redisinfra "github.com/pressify/articles-api/internal/infrastructure/db/redis"
	"github.com/pressify/articles-api/internal/infrastructure/http/handlers"
	"github.com/pressify/articles-api/internal/pkg/config"
	"github.com/pressify/articles-api/pkg/logger"
)

// NewRouter builds the Echo instance with all middleware, dependencies, and
// routes registered.
func NewRouter(db *mongo.Database, rdb *redis.Client, cfg *config.Config) *echo.Echo {
	log := logger.Get()

	e := echo.New()
	e.HideBanner = true
	e.HTTPErrorHandler = NewHTTPErrorHandler(log)

	v := handler.NewValidator()
	e.Validator = v

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echomiddleware.CORS())
	e.Use(echomiddleware.Logger())
	e.Use(echoprometheus.NewMiddleware("articles"))

	// --- Dependencies ---
	userRepo := mongorepo.NewUserRepository(db)
	categoryRepo := mongorepo.NewCategoryRepository(db)
	articleRepo := mongorepo.NewArticleRepository(db)
	throttle := redisinfra.NewLoginThrottle(rdb)

	articleService := service.NewArticleService(articleRepo, categoryRepo, userRepo, log)
	categoryService := service.NewCategoryService(categoryRepo, articleRepo, log)
	userService := service.NewUserService(userRepo, articleRepo, throttle, cfg.JWTSecret, 24*time.Hour, log)

	articleHandler := handler.NewArticleHandler(articleService)
	categoryHandler := handler.NewCategoryHandler(categoryService)
	userHandler := handler.NewUserHandler(userService, v)

	authRequired := middleware.Auth(cfg.JWTSecret)

	// --- Health probes and operational endpoints (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(db, rdb)

	e.GET("/health", healthHandler.Liveness)            // liveness  – is the process alive?
	e.GET("/health/ready", healthDepsHandler.Readiness) // readiness – are dependencies up?
	e.GET("/metrics", echoprometheus.NewHandler())
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	apiGroup := e.Group("/api")

	// --- User routes ---
	users := apiGroup.Group("/users")
	users.POST("/register", userHandler.Register)
	users.POST("/login", userHandler.Login)
	users.GET("/me", userHandler.Me, authRequired)

	// --- Article routes ---
	articles := apiGroup.Group("/articles", authRequired)
	articles.GET("", articleHandler.List)
	articles.POST("", articleHandler.Create)
	// Must register before /:id so "categories" is not captured as an id.
	articles.GET("/categories/:categoryId", articleHandler.ListByCategory)
	articles.GET("/:id", articleHandler.Get)
	articles.PUT("/:id", articleHandler.Update)
	articles.PATCH("/:id/rate", articleHandler.Rate)
	articles.PATCH("/:id/favorite", articleHandler.ToggleFavorite)
	articles.DELETE("/:id", articleHandler.Delete)

	// --- Category routes ---
	categories := apiGroup.Group("/categories", authRequired)
	categories.GET("", categoryHandler.List)
	categories.POST("", categoryHandler.Create)
	categories.GET("/:id", categoryHandler.Get)
	categories.PUT("/:id", categoryHandler.Update)
	categories.DELETE("/:id", categoryHandler.Delete)
	categories.GET("/:id/articles", categoryHandler.ListArticles)

	return e
}
