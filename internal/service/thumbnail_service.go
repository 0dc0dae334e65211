package service

import (
	"bytes"
	"image"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/amadeuszklimaszewski/imageboard/internal/common"
	"github.com/amadeuszklimaszewski/imageboard/internal/config"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"
	"github.com/amadeuszklimaszewski/imageboard/internal/utils"

	"github.com/disintegration/imaging"
	"gorm.io/gorm"
)

// createThumbnail 从已解码的原图派生指定高度的缩略图。
// 编码格式严格由源文件扩展名推导，jpg/jpeg/png 之外直接失败。
// 流程：计算尺寸 → Lanczos 缩放 → 编码到内存 → 落盘 → 在调用方事务内写入记录。
// 单个尺寸内全有或全无：落盘后写库失败时由调用方回滚并删除文件。
func createThumbnail(tx *gorm.DB, img *model.Image, decoded image.Image, ext string, targetHeight int) (*model.Thumbnail, string, error) {
	format, err := utils.GetFormat(ext)
	if err != nil {
		return nil, "", common.NewValidationError(err.Error())
	}

	width, height := utils.GetThumbnailDimensions(img.Height, img.Width, targetHeight)

	// Lanczos 高质量重采样；imaging 内部统一转换为 NRGBA，
	// 非 {灰度, RGB, RGBA} 色彩模式在此一并被归一，色彩配置不保留
	resized := imaging.Resize(decoded, width, height, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, format); err != nil {
		log.Printf("Encode thumbnail error: %v\n", err)
		return nil, "", common.NewInternalError("缩略图编码失败")
	}

	baseName := strings.TrimSuffix(img.Filename, filepath.Ext(img.Filename))
	thumbFilename := utils.GetThumbnailFilename(baseName, ext, width, height)

	cfg := config.Get()
	thumbRoot := cfg.Upload.ThumbnailPath
	if thumbRoot == "" {
		thumbRoot = "uploads/thumbs"
	}

	datePath := filepath.Dir(filepath.FromSlash(img.Path))
	fullDir := filepath.Join(thumbRoot, datePath)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		log.Printf("MkdirAll error: %v\n", err)
		return nil, "", common.NewInternalError("系统错误: 无法创建缩略图目录")
	}

	dst := filepath.Join(fullDir, thumbFilename)
	if err := os.WriteFile(dst, buf.Bytes(), 0644); err != nil {
		log.Printf("Write thumbnail error: %v\n", err)
		return nil, "", common.NewInternalError("缩略图保存失败")
	}

	thumb := model.Thumbnail{
		ImageID:  img.ID,
		Filename: thumbFilename,
		Path:     filepath.ToSlash(filepath.Join(datePath, thumbFilename)),
		Size:     int64(buf.Len()),
		Width:    width,
		Height:   height,
	}
	if err := tx.Create(&thumb).Error; err != nil {
		// 数据库失败时由调用方统一回滚，这里先把文件路径交还以便清理
		return nil, dst, err
	}

	return &thumb, dst, nil
}
