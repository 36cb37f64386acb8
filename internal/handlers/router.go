package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/incogni100x/jltstones/internal/services"
)

// NewRouter wires every route. The create path is the only way an order is
// written, and it always runs behind authentication.
func NewRouter(
	authService services.AuthService,
	orderHandler *OrderHandler,
	authHandler *AuthHandler,
	uploadHandler *UploadHandler,
) *gin.Engine {
	router := gin.Default()
	router.Use(CORS())

	// Partner-facing tracking endpoints
	router.GET("/functions/v1/get-order", orderHandler.GetOrder)
	router.POST("/functions/v1/get-order", orderHandler.GetOrder)

	// Authoritative order intake
	router.POST("/functions/v1/create-order", RequireAuth(authService), orderHandler.CreateOrder)

	// Admin API
	router.POST("/api/auth/login", authHandler.Login)
	// Logout reads its own bearer token so that signing out an expired
	// session still succeeds.
	router.POST("/api/auth/logout", authHandler.Logout)
	api := router.Group("/api", RequireAuth(authService))
	{
		api.GET("/auth/session", authHandler.Session)
		api.GET("/orders", orderHandler.ListOrders)
		api.GET("/orders/:order_number", orderHandler.GetOrderByNumber)
		api.POST("/orders/image", uploadHandler.UploadImage)
	}

	return router
}
