package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Mukund-Vijay/pennywise-todo/internal/controller"
	"github.com/Mukund-Vijay/pennywise-todo/internal/middleware"
)

func Router() *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	// Health for load balancers and K8s probes
	router.GET("/health", controller.Health)
	router.GET("/ready", controller.Ready)

	// Public: no auth
	auth := router.Group("/auth")
	{
		auth.POST("/register", controller.Register)
		auth.POST("/login", controller.Login)
		auth.POST("/reset-password", controller.ResetPassword)
	}

	// Protected: JWT required
	api := router.Group("")
	api.Use(middleware.AuthMiddleware())
	{
		api.DELETE("/auth/delete-account", controller.DeleteAccount)

		api.GET("/todos", controller.GetTodos)
		api.POST("/todos", controller.CreateTodo)
		api.PUT("/todos/:id", controller.UpdateTodo)
		api.DELETE("/todos/:id", controller.DeleteTodo)
		api.GET("/todos/summary/weekly", controller.WeeklySummary)

		api.GET("/notifications", controller.GetNotifications)
		api.GET("/notifications/history", controller.GetNotificationHistory)
		api.POST("/notifications/read/:id", controller.MarkNotificationRead)
	}

	return router
}
