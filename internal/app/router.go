package app

import (
	"quantum_edu_backend/internal/config"
	"quantum_edu_backend/internal/middleware"
	"quantum_edu_backend/internal/model"
	"quantum_edu_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	router.Use(middleware.RequestID())

	router.GET("/metrics", monitoring.PrometheusHandler())

	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
		public.GET("/lessons", c.lesson.ListLessons)
		public.GET("/lessons/:id", c.lesson.GetLesson)
	}

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/profile", c.user.GetProfile)
		authGroup.PUT("/user/profile", c.user.UpdateProfile)
		authGroup.GET("/user/badges", c.user.GetBadges)

		authGroup.GET("/lessons/:id/progress", c.lesson.GetProgress)
		authGroup.POST("/lessons/:id/progress", c.lesson.SubmitProgress)

		tutor := authGroup.Group("/tutor")
		{
			tutor.POST("/ask", c.tutor.Ask)
			tutor.GET("/history/:lessonId", c.tutor.GetHistory)
			tutor.POST("/exercises", c.tutor.GenerateExercises)
			tutor.POST("/explain", c.tutor.ExplainConcept)
			tutor.POST("/evaluate", c.tutor.EvaluateAnswer)
		}
	}

	admin := router.Group("/api/admin")
	admin.Use(middleware.AuthMiddleware(cfg), middleware.RoleMiddleware(model.Admin))
	{
		admin.GET("/users", c.admin.ListUsers)
		admin.POST("/lessons", c.admin.CreateLesson)
		admin.GET("/analytics", c.admin.GetAnalytics)
	}
}
