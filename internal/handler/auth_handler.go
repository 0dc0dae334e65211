package handler

import (
	"net/http"

	"github.com/amadeuszklimaszewski/imageboard/internal/common/httpx"
	"github.com/amadeuszklimaszewski/imageboard/internal/service"

	"github.com/gin-gonic/gin"
)

type registerRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register 注册新用户
func Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}

	user, err := service.RegisterUser(req.Username, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "注册失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "注册成功", "username": user.Username})
}

// Login 用户登录，签发 JWT
func Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}

	token, user, err := service.LoginUser(req.Username, req.Password)
	if err != nil {
		httpx.WriteServiceError(c, err, "登录失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "登录成功",
		"token":    token,
		"username": user.Username,
		"admin":    user.Admin,
	})
}
