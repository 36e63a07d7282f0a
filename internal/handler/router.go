package handler

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/yourusername/quizgen-api/internal/middleware"
)

// RouterDeps - зависимости HTTP-роутера
type RouterDeps struct {
	QuizHandler *QuizHandler
	ItemHandler *ItemHandler
	// RateLimiter может быть nil, тогда генерация не ограничивается
	RateLimiter   *middleware.RateLimiter
	GenerateLimit middleware.RateLimitConfig
	CORSOrigins   []string
}

// NewRouter собирает gin.Engine со всеми маршрутами сервиса
func NewRouter(deps RouterDeps) *gin.Engine {
	router := gin.Default()
	router.Use(middleware.RequestID())

	if len(deps.CORSOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:  deps.CORSOrigins,
			AllowMethods:  []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:  []string{"Origin", "Content-Type", "Accept", middleware.RequestIDHeader},
			ExposeHeaders: []string{"Location", "Content-Disposition", middleware.RequestIDHeader},
			MaxAge:        12 * time.Hour,
		}))
	}

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	quizzes := router.Group("/quiz")
	{
		generate := []gin.HandlerFunc{deps.QuizHandler.GenerateQuiz}
		if deps.RateLimiter != nil {
			generate = append([]gin.HandlerFunc{deps.RateLimiter.Limit(deps.GenerateLimit)}, generate...)
		}
		quizzes.POST("/generate", generate...)
		quizzes.POST("/submit", deps.QuizHandler.SubmitQuiz)
		quizzes.GET("/list", deps.QuizHandler.ListQuizzes)
		quizzes.GET("/:id", middleware.ExtractUintParam("id", "quizID"), deps.QuizHandler.GetQuiz)

		results := quizzes.Group("/results/:quizId")
		results.Use(middleware.ExtractUintParam("quizId", "quizID"))
		{
			results.GET("", deps.QuizHandler.GetQuizResults)
			results.GET("/export", deps.QuizHandler.ExportQuizResults)
		}
	}

	items := router.Group("/backend")
	{
		items.GET("", deps.ItemHandler.ListItems)
		items.POST("", deps.ItemHandler.CreateItem)

		itemWithID := items.Group("/:id")
		itemWithID.Use(middleware.ExtractUintParam("id", "itemID"))
		{
			itemWithID.GET("", deps.ItemHandler.GetItem)
			itemWithID.PUT("", deps.ItemHandler.UpdateItem)
			itemWithID.DELETE("", deps.ItemHandler.DeleteItem)
		}
	}

	return router
}
