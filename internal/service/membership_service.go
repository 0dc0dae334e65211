package service

import (
	"errors"
	"log"

	"github.com/amadeuszklimaszewski/imageboard/internal/common"
	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"

	"gorm.io/gorm"
)

// 内置会员等级。首次启动时写入，管理员可随意增删改。
var defaultMembershipTypes = []struct {
	Name                  string
	ContainsOriginalLink  bool
	GeneratesExpiringLink bool
	Heights               []int
}{
	{Name: "Basic", Heights: []int{200}},
	{Name: "Premium", ContainsOriginalLink: true, Heights: []int{200, 400}},
	{Name: "Enterprise", ContainsOriginalLink: true, GeneratesExpiringLink: true, Heights: []int{200, 400}},
}

// InitializeMemberships 初始化内置会员等级及其缩略图高度。
func InitializeMemberships() {
	var count int64
	db.DB.Model(&model.MembershipType{}).Count(&count)
	if count > 0 {
		return
	}

	for _, def := range defaultMembershipTypes {
		var sizes []model.ThumbnailSize
		for _, h := range def.Heights {
			var size model.ThumbnailSize
			if err := db.DB.Where("height = ?", h).First(&size).Error; err != nil {
				size = model.ThumbnailSize{Height: h}
				if err := db.DB.Create(&size).Error; err != nil {
					log.Printf("Create thumbnail size error: %v\n", err)
					continue
				}
			}
			sizes = append(sizes, size)
		}

		membership := model.MembershipType{
			Name:                  def.Name,
			ContainsOriginalLink:  def.ContainsOriginalLink,
			GeneratesExpiringLink: def.GeneratesExpiringLink,
			ThumbnailSizes:        sizes,
		}
		if err := db.DB.Create(&membership).Error; err != nil {
			log.Printf("Create membership type error: %v\n", err)
		}
	}
	log.Println("✅ 内置会员等级已初始化")
}

// GetMembershipForUser 解析用户的会员等级（含缩略图高度，按存储顺序）。
// 用户无等级时返回 nil，不视为错误。
func GetMembershipForUser(user *model.User) (*model.MembershipType, error) {
	if user.MembershipTypeID == nil {
		return nil, nil
	}

	var membership model.MembershipType
	err := db.DB.Preload("ThumbnailSizes", func(tx *gorm.DB) *gorm.DB {
		return tx.Order("thumbnail_sizes.id")
	}).First(&membership, *user.MembershipTypeID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// 等级已被删除但外键残留，按无等级处理
			return nil, nil
		}
		return nil, err
	}
	return &membership, nil
}

// ListMembershipTypes 列出全部会员等级。
func ListMembershipTypes() ([]model.MembershipType, error) {
	var memberships []model.MembershipType
	if err := db.DB.Preload("ThumbnailSizes").Order("id").Find(&memberships).Error; err != nil {
		return nil, err
	}
	return memberships, nil
}

// CreateMembershipType 管理员创建会员等级并关联缩略图高度。
func CreateMembershipType(name string, containsOriginalLink, generatesExpiringLink bool, sizeIDs []uint) (*model.MembershipType, error) {
	if name == "" || len(name) > 50 {
		return nil, common.NewValidationError("等级名称长度需在 1-50 之间")
	}

	var sizes []model.ThumbnailSize
	if len(sizeIDs) > 0 {
		if err := db.DB.Where("id IN ?", sizeIDs).Find(&sizes).Error; err != nil {
			return nil, err
		}
		if len(sizes) != len(sizeIDs) {
			return nil, common.NewNotFoundError("部分缩略图尺寸不存在")
		}
	}

	membership := model.MembershipType{
		Name:                  name,
		ContainsOriginalLink:  containsOriginalLink,
		GeneratesExpiringLink: generatesExpiringLink,
		ThumbnailSizes:        sizes,
	}
	if err := db.DB.Create(&membership).Error; err != nil {
		return nil, err
	}
	return &membership, nil
}

// UpdateMembershipType 管理员更新会员等级；sizeIDs 为 nil 时不变更关联。
func UpdateMembershipType(id uint, name string, containsOriginalLink, generatesExpiringLink bool, sizeIDs []uint) (*model.MembershipType, error) {
	var membership model.MembershipType
	if err := db.DB.First(&membership, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, common.NewNotFoundError("会员等级不存在")
		}
		return nil, err
	}

	if name == "" || len(name) > 50 {
		return nil, common.NewValidationError("等级名称长度需在 1-50 之间")
	}

	err := db.DB.Transaction(func(tx *gorm.DB) error {
		membership.Name = name
		membership.ContainsOriginalLink = containsOriginalLink
		membership.GeneratesExpiringLink = generatesExpiringLink
		if err := tx.Save(&membership).Error; err != nil {
			return err
		}

		if sizeIDs != nil {
			var sizes []model.ThumbnailSize
			if len(sizeIDs) > 0 {
				if err := tx.Where("id IN ?", sizeIDs).Find(&sizes).Error; err != nil {
					return err
				}
				if len(sizes) != len(sizeIDs) {
					return common.NewNotFoundError("部分缩略图尺寸不存在")
				}
			}
			if err := tx.Model(&membership).Association("ThumbnailSizes").Replace(sizes); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &membership, nil
}

// DeleteMembershipType 删除会员等级；持有该等级的用户退回无等级状态。
func DeleteMembershipType(id uint) error {
	result := db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&model.User{}).Where("membership_type_id = ?", id).
			Update("membership_type_id", nil).Error; err != nil {
			return err
		}
		res := tx.Delete(&model.MembershipType{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return common.NewNotFoundError("会员等级不存在")
		}
		return nil
	})
	return result
}

// ListThumbnailSizes 列出全部缩略图高度配置。
func ListThumbnailSizes() ([]model.ThumbnailSize, error) {
	var sizes []model.ThumbnailSize
	if err := db.DB.Order("id").Find(&sizes).Error; err != nil {
		return nil, err
	}
	return sizes, nil
}

// CreateThumbnailSize 管理员新增缩略图高度。高度无唯一约束，允许重复行。
func CreateThumbnailSize(height int) (*model.ThumbnailSize, error) {
	if height <= 0 {
		return nil, common.NewValidationError("缩略图高度必须为正整数")
	}
	size := model.ThumbnailSize{Height: height}
	if err := db.DB.Create(&size).Error; err != nil {
		return nil, err
	}
	return &size, nil
}

// DeleteThumbnailSize 删除缩略图高度，并解除与各等级的关联。
func DeleteThumbnailSize(id uint) error {
	var size model.ThumbnailSize
	if err := db.DB.First(&size, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("缩略图尺寸不存在")
		}
		return err
	}

	return db.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Exec("DELETE FROM membership_thumbnail_sizes WHERE thumbnail_size_id = ?", size.ID).Error; err != nil {
			return err
		}
		return tx.Delete(&size).Error
	})
}

// AssignMembership 管理员为用户指派（或清除）会员等级。
func AssignMembership(userID uint, membershipID *uint) error {
	var user model.User
	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return common.NewNotFoundError("用户不存在")
		}
		return err
	}

	if membershipID != nil {
		var membership model.MembershipType
		if err := db.DB.First(&membership, *membershipID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return common.NewNotFoundError("会员等级不存在")
			}
			return err
		}
	}

	return db.DB.Model(&user).Update("membership_type_id", membershipID).Error
}
