package http

import (
	"github.com/gin-gonic/gin"

	"taskboard/internal/adapter/http/handlers"
	"taskboard/internal/adapter/http/middleware"
	"taskboard/internal/core/ports"
)

type Handlers struct {
	Health *handlers.HealthHandler
	Auth   *handlers.AuthHandler
	Task   *handlers.TaskHandler
}

func RegisterRoutes(r *gin.Engine, h Handlers, authService ports.AuthService) {
	api := r.Group("/api")
	api.Use(middleware.LanguageMiddleware())
	{
		api.GET("/health", h.Health.CheckHealth)
		api.GET("/health/report", h.Health.CheckHealthReport)
		api.POST("/register", h.Auth.Register)
		api.POST("/login", h.Auth.Login)
	}

	protected := api.Group("")
	protected.Use(middleware.AuthMiddleware(authService))
	{
		protected.POST("/logout", h.Auth.Logout)
		protected.GET("/user", h.Auth.CurrentUser)

		protected.GET("/tasks/statistics", h.Task.Statistics)
		protected.GET("/tasks", h.Task.ListTasks)
		protected.POST("/tasks", h.Task.CreateTask)
		protected.GET("/tasks/:id", h.Task.GetTask)
		protected.PUT("/tasks/:id", h.Task.UpdateTask)
		protected.PATCH("/tasks/:id", h.Task.UpdateTask)
		protected.DELETE("/tasks/:id", h.Task.DeleteTask)
	}
}
