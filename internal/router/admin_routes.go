package router

import (
	"github.com/amadeuszklimaszewski/imageboard/internal/handler"
	"github.com/amadeuszklimaszewski/imageboard/internal/middleware"

	"github.com/gin-gonic/gin"
)

func registerAdminRoutes(api *gin.RouterGroup) {
	adminGroup := api.Group("/admin")
	adminGroup.Use(middleware.JWTAuth())
	adminGroup.Use(middleware.AdminCheck())

	adminGroup.GET("/memberships", handler.ListMemberships)
	adminGroup.POST("/memberships", handler.CreateMembership)
	adminGroup.PATCH("/memberships/:id", handler.UpdateMembership)
	adminGroup.DELETE("/memberships/:id", handler.DeleteMembership)

	adminGroup.GET("/thumbnail-sizes", handler.ListThumbnailSizes)
	adminGroup.POST("/thumbnail-sizes", handler.CreateThumbnailSize)
	adminGroup.DELETE("/thumbnail-sizes/:id", handler.DeleteThumbnailSize)

	adminGroup.PATCH("/users/:id/membership", handler.AssignUserMembership)
	adminGroup.GET("/images", handler.AdminListImages)
}
