package handler

import (
	"net/http"
	"strconv"

	"github.com/amadeuszklimaszewski/imageboard/internal/common/httpx"
	"github.com/amadeuszklimaszewski/imageboard/internal/dto"
	"github.com/amadeuszklimaszewski/imageboard/internal/service"

	"github.com/gin-gonic/gin"
)

// UploadImage 上传图片并生成当前等级对应的缩略图
func UploadImage(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	var req dto.UploadImageRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "缺少图片标题"})
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "未获取到上传文件"})
		return
	}

	_, membership, ok := currentMembership(c, uid)
	if !ok {
		return
	}

	image, err := service.ProcessImageUpload(req.Title, file, uid)
	if err != nil {
		httpx.WriteServiceError(c, err, "图片上传失败")
		return
	}

	shape := service.ShapeForMembership(membership)
	c.JSON(http.StatusOK, gin.H{
		"message": "上传成功",
		"image":   service.BuildImageResponse(image, shape),
	})
}

// GetMyImages 分页列出当前用户的图片
func GetMyImages(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}

	req := parsePagination(c)
	images, total, page, pageSize, err := service.ListUserImages(uid, req)
	if err != nil {
		httpx.WriteServiceError(c, err, "查询图片列表失败")
		return
	}

	_, membership, ok := currentMembership(c, uid)
	if !ok {
		return
	}
	shape := service.ShapeForMembership(membership)

	c.JSON(http.StatusOK, gin.H{
		"images":    service.BuildImageResponses(images, shape),
		"total":     total,
		"page":      page,
		"page_size": pageSize,
	})
}

// GetMyImage 查询单张图片详情
func GetMyImage(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	image, err := service.GetUserOwnedImage(imageID, uid, isAdmin(c))
	if err != nil {
		httpx.WriteServiceError(c, err, "查询图片失败")
		return
	}

	_, membership, ok := currentMembership(c, uid)
	if !ok {
		return
	}
	shape := service.ShapeForMembership(membership)

	c.JSON(http.StatusOK, gin.H{"image": service.BuildImageResponse(image, shape)})
}

// DeleteMyImage 删除图片及其缩略图、临时令牌
func DeleteMyImage(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	image, err := service.GetUserOwnedImage(imageID, uid, isAdmin(c))
	if err != nil {
		httpx.WriteServiceError(c, err, "查询图片失败")
		return
	}

	if err := service.DeleteImage(image); err != nil {
		httpx.WriteServiceError(c, err, "删除图片失败")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "删除成功"})
}

// GetImageFile 下载原图。仅图片属主和管理员可访问。
func GetImageFile(c *gin.Context) {
	uid, ok := currentUserID(c)
	if !ok {
		return
	}
	imageID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	image, err := service.GetUserOwnedImage(imageID, uid, isAdmin(c))
	if err != nil {
		httpx.WriteServiceError(c, err, "查询图片失败")
		return
	}

	path, err := service.OriginalFilePath(image)
	if err != nil {
		httpx.WriteServiceError(c, err, "读取图片文件失败")
		return
	}

	c.File(path)
}

func parsePagination(c *gin.Context) dto.PaginationRequest {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	return dto.PaginationRequest{Page: page, PageSize: pageSize}
}
