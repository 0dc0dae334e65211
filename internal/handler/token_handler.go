package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/amadeuszklimaszewski/imageboard/internal/common/httpx"
	"github.com/amadeuszklimaszewski/imageboard/internal/dto"
	"github.com/amadeuszklimaszewski/imageboard/internal/service"

	"github.com/gin-gonic/gin"
)

// GenerateTemporaryLink 为图片签发限时访问令牌。
// 需要当前会员等级具备临时链接能力。
func GenerateTemporaryLink(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	_, membership, ok := currentMembership(c, uid)
	if !ok {
		return
	}
	if membership == nil || !membership.GeneratesExpiringLink {
		c.JSON(http.StatusForbidden, gin.H{"error": "当前会员等级不支持生成临时链接"})
		return
	}

	var req dto.TemporaryLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "有效期须在 300 到 30000 秒之间"})
		return
	}

	// 只有属主（或管理员）能为图片签发令牌
	image, err := service.GetUserOwnedImage(imageID, uid, isAdmin(c))
	if err != nil {
		httpx.WriteServiceError(c, err, "查询图片失败")
		return
	}

	token, err := service.CreateAccessToken(image.ID, req.Seconds)
	if err != nil {
		httpx.WriteServiceError(c, err, "生成临时链接失败")
		return
	}

	c.JSON(http.StatusOK, dto.TemporaryLinkResponse{
		Token:     token.ID,
		URL:       fmt.Sprintf("/api/imgtmp/%s", token.ID),
		ExpiresAt: token.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

// ResolveTemporaryLink 通过令牌访问原图，无需登录。
// 过期令牌在首次访问时被回收并返回 400。
func ResolveTemporaryLink(c *gin.Context) {
	tokenID := c.Param("token")
	if tokenID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少访问令牌"})
		return
	}

	image, err := service.ResolveAccessToken(tokenID)
	if err != nil {
		httpx.WriteServiceError(c, err, "访问令牌无效")
		return
	}

	path, err := service.OriginalFilePath(image)
	if err != nil {
		httpx.WriteServiceError(c, err, "读取图片文件失败")
		return
	}

	c.File(path)
}
