package router

import (
	"github.com/amadeuszklimaszewski/imageboard/internal/handler"

	"github.com/gin-gonic/gin"
)

func registerPublicRoutes(api *gin.RouterGroup) {
	api.GET("/webinfo", handler.GetWebInfo)

	// 临时链接访问不要求登录，令牌本身就是凭证
	api.GET("/imgtmp/:token", handler.ResolveTemporaryLink)

	api.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})
}
