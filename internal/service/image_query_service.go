package service

import (
	"errors"

	"github.com/amadeuszklimaszewski/imageboard/internal/common"
	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/dto"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"

	"gorm.io/gorm"
)

// ListUserImages 分页列出用户自己的图片（含缩略图）。
func ListUserImages(userID uint, req dto.PaginationRequest) ([]model.Image, int64, int, int, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var total int64
	query := db.DB.Model(&model.Image{}).Where("user_id = ?", userID)
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, page, pageSize, err
	}

	var images []model.Image
	err := db.DB.Preload("Thumbnails").
		Where("user_id = ?", userID).
		Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&images).Error
	if err != nil {
		return nil, 0, page, pageSize, err
	}

	return images, total, page, pageSize, nil
}

// AdminListImages 管理员分页查看全部图片。
func AdminListImages(req dto.PaginationRequest) ([]model.Image, int64, int, int, error) {
	page := req.Page
	pageSize := req.PageSize
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 10
	}
	if pageSize > 100 {
		pageSize = 100
	}

	var total int64
	if err := db.DB.Model(&model.Image{}).Count(&total).Error; err != nil {
		return nil, 0, page, pageSize, err
	}

	var images []model.Image
	err := db.DB.Preload("Thumbnails").
		Order("id desc").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&images).Error
	if err != nil {
		return nil, 0, page, pageSize, err
	}

	return images, total, page, pageSize, nil
}

// GetUserOwnedImage 获取指定图片，非管理员只能访问自己的上传。
func GetUserOwnedImage(imageID uint, userID uint, isAdmin bool) (*model.Image, error) {
	var img model.Image
	query := db.DB.Preload("Thumbnails")
	if !isAdmin {
		query = query.Where("user_id = ?", userID)
	}
	if err := query.First(&img, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("图片不存在或无权访问")
		}
		return nil, err
	}
	return &img, nil
}
