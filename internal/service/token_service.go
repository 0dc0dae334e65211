package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/amadeuszklimaszewski/imageboard/internal/common"
	"github.com/amadeuszklimaszewski/imageboard/internal/consts"
	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 令牌生命周期：有效（过期时间未到）→ 已过期（未被访问）→ 已回收（删除）。
// 过期到回收的转换只在过期后首次被访问时发生一次，没有后台清扫；
// 过期但从未被再次访问的令牌会一直占用存储。

// CreateAccessToken 为图片签发限时访问令牌。
func CreateAccessToken(imageID uint, seconds int) (*model.ImageAccessToken, error) {
	if seconds < consts.MinTempLinkSeconds || seconds > consts.MaxTempLinkSeconds {
		return nil, common.NewValidationError(
			fmt.Sprintf("有效期须在 %d 到 %d 秒之间", consts.MinTempLinkSeconds, consts.MaxTempLinkSeconds))
	}

	var img model.Image
	if err := db.DB.First(&img, imageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("图片不存在")
		}
		log.Printf("Find image error: %v\n", err)
		return nil, common.NewInternalError("查询图片失败")
	}

	token := model.ImageAccessToken{
		ID:        uuid.New().String(),
		ImageID:   img.ID,
		ExpiresAt: time.Now().Add(time.Duration(seconds) * time.Second),
	}
	if err := db.DB.Create(&token).Error; err != nil {
		log.Printf("Create access token error: %v\n", err)
		return nil, common.NewInternalError("创建访问令牌失败")
	}

	return &token, nil
}

// ResolveAccessToken 用令牌换取原图记录。
// 过期令牌在检测到的那一刻被删除（惰性回收），随后返回失效错误；
// 并发访问同一过期令牌时删除对空行是无操作，双方都观察到失效。
func ResolveAccessToken(tokenID string) (*model.Image, error) {
	var token model.ImageAccessToken
	if err := db.DB.First(&token, "id = ?", tokenID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("访问令牌不存在")
		}
		log.Printf("Find access token error: %v\n", err)
		return nil, common.NewInternalError("查询访问令牌失败")
	}

	if token.ExpiresAt.Before(time.Now()) {
		// 行已被并发删除时 RowsAffected 为 0，按无操作处理
		if err := db.DB.Delete(&model.ImageAccessToken{}, "id = ?", token.ID).Error; err != nil {
			log.Printf("Reap access token error: %v\n", err)
		}
		return nil, common.NewValidationError("访问令牌已失效")
	}

	var img model.Image
	if err := db.DB.Preload("Thumbnails").First(&img, token.ImageID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("图片不存在")
		}
		log.Printf("Find image error: %v\n", err)
		return nil, common.NewInternalError("查询图片失败")
	}

	return &img, nil
}
