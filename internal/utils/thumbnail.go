package utils

import (
	"fmt"
	"math"
	"strings"

	"github.com/disintegration/imaging"
)

// GetThumbnailDimensions 按源图宽高比计算缩略图尺寸，返回 (宽, 高)。
// 宽度向上取整：向下取整会导致缩放库为保持比例而偷偷调整高度，
// 破坏“缩略图高度严格等于目标高度”的约定。
// 调用方必须保证 imageHeight > 0（图片已成功解码）。
func GetThumbnailDimensions(imageHeight, imageWidth, thumbnailHeight int) (int, int) {
	scale := float64(imageHeight) / float64(thumbnailHeight)
	thumbnailWidth := float64(imageWidth) / scale
	return int(math.Ceil(thumbnailWidth)), thumbnailHeight
}

// GetFormat 严格按源文件扩展名推导编码格式，仅支持 jpg/jpeg/png。
func GetFormat(extension string) (imaging.Format, error) {
	switch strings.ToLower(strings.TrimPrefix(extension, ".")) {
	case "jpg", "jpeg":
		return imaging.JPEG, nil
	case "png":
		return imaging.PNG, nil
	}
	return -1, fmt.Errorf("不支持的文件扩展名: %s", extension)
}

// GetThumbnailFilename 生成确定性的缩略图文件名。
func GetThumbnailFilename(name string, extension string, width, height int) string {
	return fmt.Sprintf("%s-thumbnail-%dx%dpx.%s", name, width, height, strings.TrimPrefix(extension, "."))
}
