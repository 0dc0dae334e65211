package middleware

import (
	"github.com/amadeuszklimaszewski/imageboard/internal/consts"
	"github.com/amadeuszklimaszewski/imageboard/internal/service"

	"github.com/gin-gonic/gin"
)

// StaticCacheMiddleware 为静态资源添加 Cache-Control 头
// 缓存策略由 ConfigStaticCacheControl 配置决定
func StaticCacheMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		cc := service.GetString(consts.ConfigStaticCacheControl)
		if cc != "" {
			c.Header("Cache-Control", cc)
		}
		c.Next()
	}
}
