// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"taskmanager/internal/delivery/api/middleware"
	"taskmanager/internal/delivery/api/router/handler"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AuthHandler         *handler.AuthHandler
	TaskHandler         *handler.TaskHandler
	HealthHandler       *handler.HealthHandler
	AuthMiddleware      *middleware.AuthMiddleware
	RateLimitMiddleware *middleware.RateLimitMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	authHandler         *handler.AuthHandler
	taskHandler         *handler.TaskHandler
	healthHandler       *handler.HealthHandler
	authMiddleware      *middleware.AuthMiddleware
	rateLimitMiddleware *middleware.RateLimitMiddleware
}

// NewRouter is the constructor for the Router.
// Fx will inject the required handlers here.
func NewRouter(params RouterParams) *router {
	return &router{
		authHandler:         params.AuthHandler,
		taskHandler:         params.TaskHandler,
		healthHandler:       params.HealthHandler,
		authMiddleware:      params.AuthMiddleware,
		rateLimitMiddleware: params.RateLimitMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api")

	api.GET("/health", r.healthHandler.Check)

	authGroup := api.Group("/auth")
	{
		authGroup.POST("/signup", r.authHandler.SignUp, r.rateLimitMiddleware.Limit)
		authGroup.POST("/signin", r.authHandler.SignIn, r.rateLimitMiddleware.Limit)
		authGroup.POST("/signout", r.authHandler.SignOut)
		authGroup.GET("/validate-session", r.authHandler.ValidateSession, r.authMiddleware.Authenticate)
	}

	// Every task route is scoped to the authenticated user.
	tasksGroup := api.Group("/tasks")
	tasksGroup.Use(r.authMiddleware.Authenticate)
	{
		tasksGroup.GET("", r.taskHandler.ListTasks)
		tasksGroup.POST("", r.taskHandler.CreateTask)
		tasksGroup.GET("/:id", r.taskHandler.GetTask)
		tasksGroup.PUT("/:id", r.taskHandler.UpdateTask)
		tasksGroup.DELETE("/:id", r.taskHandler.DeleteTask)
		tasksGroup.GET("/:id/activity", r.taskHandler.ListTaskActivity)
	}
}
