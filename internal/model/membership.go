package model

import "time"

// MembershipType 会员等级定义。两个能力开关决定响应形态与临时链接权限，
// ThumbnailSizes 决定上传时派生哪些缩略图。
type MembershipType struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Name      string `json:"name" gorm:"size:50;not null"`

	ContainsOriginalLink  bool `json:"contains_original_link" gorm:"not null;default:false"`
	GeneratesExpiringLink bool `json:"generates_expiring_link" gorm:"not null;default:false"`

	// 无唯一约束：同一高度可重复关联，派生时会按行各执行一次
	ThumbnailSizes []ThumbnailSize `json:"thumbnail_sizes" gorm:"many2many:membership_thumbnail_sizes;"`
}

// ThumbnailSize 缩略图目标高度，仅由管理员维护。
type ThumbnailSize struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	Height int  `json:"height" gorm:"not null"`
}
