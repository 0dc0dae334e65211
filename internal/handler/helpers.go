package handler

import (
	"net/http"
	"strconv"

	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"
	"github.com/amadeuszklimaszewski/imageboard/internal/service"

	"github.com/gin-gonic/gin"
)

// currentUserID 从 JWT 中间件写入的上下文取用户ID。
func currentUserID(c *gin.Context) (uint, bool) {
	userID, exists := c.Get("id")
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "未获取到用户信息"})
		return 0, false
	}
	uid, ok := userID.(uint)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "无效的用户ID类型"})
		return 0, false
	}
	return uid, true
}

func isAdmin(c *gin.Context) bool {
	value, exists := c.Get("admin")
	admin, ok := value.(bool)
	return exists && ok && admin
}

// currentMembership 解析当前用户的会员等级；无账号视为鉴权失败。
func currentMembership(c *gin.Context, uid uint) (*model.User, *model.MembershipType, bool) {
	var user model.User
	if err := db.DB.First(&user, uid).Error; err != nil {
		c.JSON(http.StatusForbidden, gin.H{"error": "用户账号不存在"})
		return nil, nil, false
	}
	membership, err := service.GetMembershipForUser(&user)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "查询会员等级失败"})
		return nil, nil, false
	}
	return &user, membership, true
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	idParam := c.Param(name)
	id, err := strconv.ParseUint(idParam, 10, 64)
	if err != nil || id == 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id 参数错误"})
		return 0, false
	}
	return uint(id), true
}
