package model

import "time"

type Image struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	Title     string `json:"title" gorm:"size:200;not null"`
	Filename  string `json:"filename" gorm:"not null;unique"`
	Path      string `json:"path" gorm:"not null;unique"`
	Size      int64  `json:"size" gorm:"not null"`
	// 宽高在写入时由解码后的字节内容测量得出，绝不接受调用方提供的值
	Width      int         `json:"width" gorm:"not null"`
	Height     int         `json:"height" gorm:"not null"`
	UserID     *uint       `json:"user_id" gorm:"index"` // 可为空：上传者被删除后图片保留
	User       *User       `gorm:"foreignKey:UserID;references:ID;constraint:OnDelete:SET NULL;" json:"-"`
	Thumbnails []Thumbnail `json:"thumbnails" gorm:"constraint:OnDelete:CASCADE;"`
}

type Thumbnail struct {
	ID        uint `json:"id" gorm:"primaryKey"`
	CreatedAt time.Time
	UpdatedAt time.Time
	ImageID   uint   `json:"image_id" gorm:"not null;index"`
	Filename  string `json:"filename" gorm:"not null"`
	Path      string `json:"path" gorm:"not null"`
	Size      int64  `json:"size" gorm:"not null"`
	Width     int    `json:"width" gorm:"not null"`
	Height    int    `json:"height" gorm:"not null"`
}
