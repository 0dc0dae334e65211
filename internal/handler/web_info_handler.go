package handler

import (
	"net/http"

	"github.com/amadeuszklimaszewski/imageboard/internal/consts"
	"github.com/amadeuszklimaszewski/imageboard/internal/service"

	"github.com/gin-gonic/gin"
)

// GetWebInfo 返回站点公开信息
func GetWebInfo(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"site_name":        service.GetString(consts.ConfigSiteName),
		"site_description": service.GetString(consts.ConfigSiteDescription),
		"allow_register":   service.GetBool(consts.ConfigAllowRegister),
		"max_upload_size":  service.GetInt64(consts.ConfigMaxUploadSize),
		"version":          consts.ApplicationVersion,
	})
}
