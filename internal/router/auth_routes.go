package router

import (
	"github.com/amadeuszklimaszewski/imageboard/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerAuthRoutes(api *gin.RouterGroup, authLimiter gin.HandlerFunc) {
	api.POST("/register", authLimiter, handler.Register)
	api.POST("/login", authLimiter, handler.Login)
}
