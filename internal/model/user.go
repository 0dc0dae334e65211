package model

import (
	"time"

	"gorm.io/gorm"
)

type User struct {
	ID               uint `json:"id" gorm:"primaryKey"`
	CreatedAt        time.Time
	UpdatedAt        time.Time
	DeletedAt        gorm.DeletedAt  `gorm:"index"`
	Username         string          `json:"username" gorm:"unique;not null"`
	Password         string          `json:"-" gorm:"not null"`
	Admin            bool            `json:"admin" gorm:"not null"`
	MembershipTypeID *uint           `json:"membership_type_id"` // 可为空：无会员等级的账号上传时不生成缩略图
	MembershipType   *MembershipType `json:"membership_type,omitempty" gorm:"foreignKey:MembershipTypeID;constraint:OnDelete:SET NULL;"`
	Images           []Image         `json:"-"`
}
