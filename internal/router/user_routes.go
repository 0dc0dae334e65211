package router

import (
	"github.com/amadeuszklimaszewski/imageboard/internal/consts"
	"github.com/amadeuszklimaszewski/imageboard/internal/handler"
	"github.com/amadeuszklimaszewski/imageboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerUserRoutes(api *gin.RouterGroup) {
	userGroup := api.Group("/user")
	userGroup.Use(middleware.JWTAuth())

	// 上传限流：读取配置
	uploadLimiter := middleware.RateLimitMiddleware(consts.ConfigRateLimitUploadRPS, consts.ConfigRateLimitUploadBurst)
	uploadBodyLimit := middleware.UploadBodyLimitMiddleware()

	userGroup.POST("/upload", uploadBodyLimit, uploadLimiter, handler.UploadImage)
	userGroup.GET("/images", handler.GetMyImages)
	userGroup.GET("/images/:id", handler.GetMyImage)
	userGroup.DELETE("/images/:id", handler.DeleteMyImage)
	userGroup.GET("/images/:id/file", handler.GetImageFile)
	userGroup.POST("/images/:id/temporary-link", handler.GenerateTemporaryLink)
}
