// Package router contains routing and server setup for the HTTP delivery.
package router

import (
	"finance/internal/delivery/http/middleware"
	"finance/internal/delivery/http/router/handler"
	"finance/internal/domain/entity"

	"github.com/labstack/echo/v4"
	"go.uber.org/fx"
)

type RouterParams struct {
	fx.In

	AccountHandler     *handler.AccountHandler
	TransactionHandler *handler.TransactionHandler
	AuthMiddleware     *middleware.AuthMiddleware
}

// router holds all the handlers that need to be registered.
type router struct {
	accountHandler     *handler.AccountHandler
	transactionHandler *handler.TransactionHandler
	authMiddleware     *middleware.AuthMiddleware
}

// NewRouter is the constructor for the Router.
func NewRouter(params RouterParams) *router {
	return &router{
		accountHandler:     params.AccountHandler,
		transactionHandler: params.TransactionHandler,
		authMiddleware:     params.AuthMiddleware,
	}
}

// RegisterRoutes sets up all the API routes for the application.
func (r *router) RegisterRoutes(e *echo.Echo) {
	e.GET("/health", handler.HealthCheck)

	requireAdmin := r.authMiddleware.RequireRole(entity.RoleAdmin)

	authGroup := e.Group("/api/auth")
	{
		authGroup.POST("/login", r.accountHandler.Login)
		authGroup.POST("/register", r.accountHandler.Register, r.authMiddleware.Authenticate, requireAdmin)
		authGroup.GET("", r.accountHandler.List, r.authMiddleware.Authenticate)
		authGroup.PUT("", r.accountHandler.Update, r.authMiddleware.Authenticate, requireAdmin)
		authGroup.DELETE("/:username", r.accountHandler.Delete, r.authMiddleware.Authenticate, requireAdmin)
	}

	txGroup := e.Group("/transactions")
	txGroup.Use(r.authMiddleware.Authenticate)
	{
		txGroup.GET("", r.transactionHandler.List)
		txGroup.POST("", r.transactionHandler.Create)
		txGroup.PUT("", r.transactionHandler.Update)
		txGroup.GET("/:id", r.transactionHandler.Get)
		txGroup.DELETE("/:id", r.transactionHandler.Delete)
	}
}
