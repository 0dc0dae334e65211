package service

import (
	"errors"
	"fmt"
	"io"
	"log"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/amadeuszklimaszewski/imageboard/internal/common"
	"github.com/amadeuszklimaszewski/imageboard/internal/config"
	"github.com/amadeuszklimaszewski/imageboard/internal/consts"
	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"
	"github.com/amadeuszklimaszewski/imageboard/internal/utils"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"
	"gorm.io/gorm"

	// 注册 jpeg/png 之外的解码器，保证宽高测量覆盖全部允许的上传格式
	_ "image/gif"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ValidateImageFile 验证上传的图片文件（大小、后缀、内容）
// 返回:
//   - bool: 是否合法
//   - string: 文件扩展名 (小写, 如 .jpg)
//   - error: 错误信息或原因
func ValidateImageFile(file *multipart.FileHeader) (bool, string, error) {
	// 检查文件大小
	maxSizeMB := GetInt(consts.ConfigMaxUploadSize) // 默认 10MB
	if file.Size > int64(maxSizeMB*1024*1024) {
		return false, "", fmt.Errorf("文件大小不能超过 %dMB", maxSizeMB)
	}

	// 检查文件扩展名
	allowExtsStr := GetString(consts.ConfigAllowFileExtensions)
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext == "" {
		return false, "", errors.New("无法识别文件类型")
	}

	allowed := false
	for _, allowExt := range strings.Split(allowExtsStr, ",") {
		if strings.TrimSpace(strings.ToLower(allowExt)) == ext {
			allowed = true
			break
		}
	}
	if !allowed {
		return false, ext, fmt.Errorf("不支持的文件类型: %s", ext)
	}

	// 检查文件内容 (Magic Bytes)
	src, err := file.Open()
	if err != nil {
		return false, ext, errors.New("无法打开上传的文件")
	}
	defer func() { _ = src.Close() }()

	if valid, msg := utils.ValidateImageContent(src, ext); !valid {
		return false, ext, errors.New(msg)
	}

	return true, ext, nil
}

// ProcessImageUpload 处理图片上传核心业务
// 流程：校验标题与文件 → 解码测量宽高 → 落盘原图 → 单事务写入
// Image 记录并按上传者等级逐一派生缩略图。任何一步失败则整体回滚，
// 数据库不留任何行，磁盘不留任何本次写入的文件。
func ProcessImageUpload(title string, file *multipart.FileHeader, uid uint) (*model.Image, error) {
	// 1. 校验标题
	title = strings.TrimSpace(title)
	maxTitleLen := GetInt(consts.ConfigMaxTitleLength)
	if maxTitleLen <= 0 {
		maxTitleLen = 200
	}
	if title == "" {
		return nil, common.NewValidationError("请填写图片标题")
	}
	if len([]rune(title)) > maxTitleLen {
		return nil, common.NewValidationError(fmt.Sprintf("标题长度不能超过 %d", maxTitleLen))
	}

	// 2. 校验文件
	valid, ext, err := ValidateImageFile(file)
	if !valid {
		return nil, common.NewValidationError(err.Error())
	}

	// 3. 解码并测量宽高（任何持久化之前）
	// 宽高只信任解码结果，绝不接受调用方声明的值
	src, err := file.Open()
	if err != nil {
		return nil, common.NewValidationError("无法读取上传文件")
	}
	decoded, err := imaging.Decode(src)
	_ = src.Close()
	if err != nil {
		return nil, common.NewValidationError("图片内容无法解码")
	}
	bounds := decoded.Bounds()
	imgWidth, imgHeight := bounds.Dx(), bounds.Dy()

	// 4. 解析上传者及其会员等级（nil 等级 = 不派生缩略图，不是错误）
	var user model.User
	if err := db.DB.First(&user, uid).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewUnauthorizedError("用户不存在")
		}
		log.Printf("Get user error: %v\n", err)
		return nil, common.NewInternalError("查询用户信息失败")
	}
	membership, err := GetMembershipForUser(&user)
	if err != nil {
		log.Printf("Get membership error: %v\n", err)
		return nil, common.NewInternalError("查询会员等级失败")
	}
	var sizes []model.ThumbnailSize
	if membership != nil {
		sizes = membership.ThumbnailSizes
	}

	// 5. 准备路径
	now := time.Now()
	datePath := filepath.Join(now.Format("2006"), now.Format("01"), now.Format("02"))

	cfg := config.Get()
	uploadRoot := cfg.Upload.Path
	if uploadRoot == "" {
		uploadRoot = "uploads/imgs"
	}
	fullDir := filepath.Join(uploadRoot, datePath)
	if err := os.MkdirAll(fullDir, 0755); err != nil {
		log.Printf("MkdirAll error: %v\n", err)
		return nil, common.NewInternalError("系统错误: 无法创建存储目录")
	}

	// 生成唯一文件名
	newFilename := uuid.New().String() + ext
	dst := filepath.Join(fullDir, newFilename)

	// 6. 保存原图 (IO 操作放在事务前，如果后续失败则删除文件)
	if err := saveUploadedFile(file, dst); err != nil {
		return nil, err
	}

	relativePath := filepath.ToSlash(filepath.Join(datePath, newFilename))
	imageRecord := model.Image{
		Title:    title,
		Filename: newFilename,
		Path:     relativePath,
		Size:     file.Size,
		Width:    imgWidth,
		Height:   imgHeight,
		UserID:   &user.ID,
	}

	// 7. 单事务：Image 记录 + 全部缩略图。任一尺寸派生失败，整体回滚，
	// 不允许留下孤儿原图或部分缩略图集合
	var thumbFiles []string
	err = db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&imageRecord).Error; err != nil {
			return err
		}
		for _, size := range sizes {
			thumb, thumbPath, derr := createThumbnail(tx, &imageRecord, decoded, ext, size.Height)
			if thumbPath != "" {
				thumbFiles = append(thumbFiles, thumbPath)
			}
			if derr != nil {
				return derr
			}
			imageRecord.Thumbnails = append(imageRecord.Thumbnails, *thumb)
		}
		return nil
	})

	if err != nil {
		// 回滚磁盘文件
		_ = os.Remove(dst)
		for _, p := range thumbFiles {
			_ = os.Remove(p)
		}
		if _, ok := common.AsServiceError(err); ok {
			return nil, err
		}
		log.Printf("Process upload DB error: %v\n", err)
		return nil, common.NewInternalError("系统错误: 数据库记录失败")
	}

	return &imageRecord, nil
}

func saveUploadedFile(file *multipart.FileHeader, dst string) error {
	src, err := file.Open()
	if err != nil {
		return common.NewValidationError("无法读取上传文件")
	}
	defer func() { _ = src.Close() }()

	out, err := os.Create(dst)
	if err != nil {
		return common.NewInternalError("系统错误: 无法创建文件")
	}
	defer func() { _ = out.Close() }()

	if _, err = io.Copy(out, src); err != nil {
		return common.NewInternalError("文件保存失败")
	}
	return nil
}

// DeleteImage 删除图片及其全部缩略图的文件与数据库记录
func DeleteImage(img *model.Image) error {
	cfg := config.Get()
	uploadRoot := cfg.Upload.Path
	if uploadRoot == "" {
		uploadRoot = "uploads/imgs"
	}
	thumbRoot := cfg.Upload.ThumbnailPath
	if thumbRoot == "" {
		thumbRoot = "uploads/thumbs"
	}

	var thumbs []model.Thumbnail
	if err := db.DB.Where("image_id = ?", img.ID).Find(&thumbs).Error; err != nil {
		return err
	}

	// 使用事务确保数据库操作原子性；访问令牌与缩略图随图片一并删除
	err := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("image_id = ?", img.ID).Delete(&model.ImageAccessToken{}).Error; err != nil {
			return err
		}
		if err := tx.Where("image_id = ?", img.ID).Delete(&model.Thumbnail{}).Error; err != nil {
			return err
		}
		return tx.Delete(img).Error
	})
	if err != nil {
		return err
	}

	// 事务提交后，删除物理文件
	removeStoredFile(uploadRoot, img.Path)
	for _, thumb := range thumbs {
		removeStoredFile(thumbRoot, thumb.Path)
	}

	return nil
}

// removeStoredFile 删除存储目录下的相对路径文件，路径先做防穿透校验。
func removeStoredFile(root, relativePath string) {
	full, err := utils.SecureJoin(root, filepath.FromSlash(relativePath))
	if err != nil {
		log.Printf("Resolve file path error: %v, path: %s\n", err, relativePath)
		return
	}
	if err := os.Remove(full); err != nil && !os.IsNotExist(err) {
		log.Printf("Delete file error: %v, path: %s\n", err, full)
	}
}

// OriginalFilePath 解析图片原图的磁盘绝对路径。
func OriginalFilePath(img *model.Image) (string, error) {
	cfg := config.Get()
	uploadRoot := cfg.Upload.Path
	if uploadRoot == "" {
		uploadRoot = "uploads/imgs"
	}
	full, err := utils.SecureJoin(uploadRoot, filepath.FromSlash(img.Path))
	if err != nil {
		return "", common.NewInternalError("文件路径解析失败")
	}
	if _, err := os.Stat(full); err != nil {
		if os.IsNotExist(err) {
			return "", common.NewNotFoundError("图片文件不存在")
		}
		return "", common.NewInternalError("文件访问失败")
	}
	return full, nil
}
