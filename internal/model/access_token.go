package model

import "time"

// ImageAccessToken 限时访问令牌。ID 本身即不可猜测的凭证（UUID），
// 过期后在首次访问时被惰性删除。
type ImageAccessToken struct {
	ID        string `json:"id" gorm:"primaryKey;size:36"`
	CreatedAt time.Time
	ImageID   uint      `json:"image_id" gorm:"not null;index"`
	Image     Image     `gorm:"foreignKey:ImageID;references:ID;constraint:OnDelete:CASCADE;" json:"-"`
	ExpiresAt time.Time `json:"expires_at" gorm:"not null"`
}
