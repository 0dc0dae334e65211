package handler

import (
	"net/http"

	"github.com/amadeuszklimaszewski/imageboard/internal/common/httpx"
	"github.com/amadeuszklimaszewski/imageboard/internal/service"

	"github.com/gin-gonic/gin"
)

type membershipTypeRequest struct {
	Name                  string `json:"name" binding:"required"`
	ContainsOriginalLink  bool   `json:"contains_original_link"`
	GeneratesExpiringLink bool   `json:"generates_expiring_link"`
	ThumbnailSizeIDs      []uint `json:"thumbnail_size_ids"`
}

type thumbnailSizeRequest struct {
	Height int `json:"height" binding:"required,gt=0"`
}

type assignMembershipRequest struct {
	MembershipTypeID *uint `json:"membership_type_id"`
}

// ListMemberships 列出全部会员等级
func ListMemberships(c *gin.Context) {
	memberships, err := service.ListMembershipTypes()
	if err != nil {
		httpx.WriteServiceError(c, err, "查询会员等级失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"memberships": memberships})
}

// CreateMembership 新建会员等级
func CreateMembership(c *gin.Context) {
	var req membershipTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}

	membership, err := service.CreateMembershipType(req.Name, req.ContainsOriginalLink, req.GeneratesExpiringLink, req.ThumbnailSizeIDs)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建会员等级失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "创建成功", "membership": membership})
}

// UpdateMembership 更新会员等级。thumbnail_size_ids 缺省时保留原有尺寸关联。
func UpdateMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req membershipTypeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}

	membership, err := service.UpdateMembershipType(id, req.Name, req.ContainsOriginalLink, req.GeneratesExpiringLink, req.ThumbnailSizeIDs)
	if err != nil {
		httpx.WriteServiceError(c, err, "更新会员等级失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "更新成功", "membership": membership})
}

// DeleteMembership 删除会员等级，持有该等级的用户退回无等级
func DeleteMembership(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := service.DeleteMembershipType(id); err != nil {
		httpx.WriteServiceError(c, err, "删除会员等级失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// ListThumbnailSizes 列出全部缩略图尺寸
func ListThumbnailSizes(c *gin.Context) {
	sizes, err := service.ListThumbnailSizes()
	if err != nil {
		httpx.WriteServiceError(c, err, "查询缩略图尺寸失败")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sizes": sizes})
}

// CreateThumbnailSize 新建缩略图尺寸，允许与现有尺寸同高
func CreateThumbnailSize(c *gin.Context) {
	var req thumbnailSizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "高度参数错误"})
		return
	}

	size, err := service.CreateThumbnailSize(req.Height)
	if err != nil {
		httpx.WriteServiceError(c, err, "创建缩略图尺寸失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "创建成功", "size": size})
}

// DeleteThumbnailSize 删除缩略图尺寸并解除等级关联
func DeleteThumbnailSize(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := service.DeleteThumbnailSize(id); err != nil {
		httpx.WriteServiceError(c, err, "删除缩略图尺寸失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// AssignUserMembership 调整用户会员等级，membership_type_id 为 null 时清除等级
func AssignUserMembership(c *gin.Context) {
	userID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req assignMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "请求参数错误"})
		return
	}

	if err := service.AssignMembership(userID, req.MembershipTypeID); err != nil {
		httpx.WriteServiceError(c, err, "调整会员等级失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "调整成功"})
}

// AdminListImages 管理员分页查看全站图片
func AdminListImages(c *gin.Context) {
	req := parsePagination(c)
	images, total, page, pageSize, err := service.AdminListImages(req)
	if err != nil {
		httpx.WriteServiceError(c, err, "查询图片列表失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"images":    service.BuildImageResponses(images, service.ShapeOriginalWithLink),
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}
