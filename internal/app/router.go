package app

import (
	"cosmic_quiz_backend/docs"
	"cosmic_quiz_backend/internal/config"
	"cosmic_quiz_backend/internal/middleware"
	"cosmic_quiz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)

		// Answer submission keeps its flat legacy wire shape.
		api.POST("/submit-answer", c.answer.SubmitAnswer)

		api.POST("/questions", c.question.CreateQuestion)
		api.GET("/questions/mine", c.question.ListMine)

		quiz := api.Group("/quiz")
		{
			quiz.POST("/start", c.quiz.Start)
			quiz.POST("/:sessionId/answer", c.quiz.Answer)
			quiz.POST("/:sessionId/next", c.quiz.Next)
			quiz.POST("/:sessionId/reset", c.quiz.Reset)
			quiz.GET("/:sessionId", c.quiz.Get)
		}

		api.GET("/categories", c.catalog.ListCategories)
		api.GET("/badges", c.catalog.ListBadges)

		api.GET("/users/:username/profile", c.user.GetProfile)
		api.GET("/leaderboard", c.user.GetLeaderboard)
		api.GET("/leaderboard/live", c.leaderboardWS.ServeWS)

		moderation := api.Group("/moderation")
		moderation.Use(middleware.ModeratorGuard(cfg))
		{
			moderation.GET("/queues", c.moderation.GetQueues)
			moderation.POST("/questions/:id/approve", c.moderation.Approve)
			moderation.POST("/questions/:id/reject", c.moderation.Reject)
		}

		admin := api.Group("/admin")
		admin.Use(middleware.ModeratorGuard(cfg))
		{
			admin.POST("/categories", c.catalog.CreateCategory)
			admin.POST("/categories/:id/icon", c.catalog.UploadCategoryIcon)
			admin.POST("/badges", c.catalog.CreateBadge)
			admin.POST("/badges/:id/icon", c.catalog.UploadBadgeIcon)
		}
	}
}
