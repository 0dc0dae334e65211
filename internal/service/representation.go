package service

import (
	"fmt"

	"github.com/amadeuszklimaszewski/imageboard/internal/config"
	"github.com/amadeuszklimaszewski/imageboard/internal/dto"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"
)

// ResponseShape 响应形态。由会员等级的两个能力开关组合得出，
// 只决定序列化哪些字段，不参与任何操作权限判断。
type ResponseShape int

const (
	// ShapeBasic 仅缩略图
	ShapeBasic ResponseShape = iota
	// ShapeOriginal 缩略图 + 原图地址
	ShapeOriginal
	// ShapeWithLink 缩略图 + 临时链接入口
	ShapeWithLink
	// ShapeOriginalWithLink 缩略图 + 原图地址 + 临时链接入口
	ShapeOriginalWithLink
)

const timeLayout = "2006-01-02 15:04:05"

// ShapeForMembership 由能力开关组合解析响应形态。nil 等级退回基础形态。
func ShapeForMembership(membership *model.MembershipType) ResponseShape {
	if membership == nil {
		return ShapeBasic
	}
	switch {
	case membership.ContainsOriginalLink && membership.GeneratesExpiringLink:
		return ShapeOriginalWithLink
	case membership.ContainsOriginalLink:
		return ShapeOriginal
	case membership.GeneratesExpiringLink:
		return ShapeWithLink
	default:
		return ShapeBasic
	}
}

// BuildImageResponse 按形态组装图片响应。
func BuildImageResponse(image *model.Image, shape ResponseShape) dto.ImageResponse {
	cfg := config.Get()

	thumbnails := make([]dto.ThumbnailResponse, 0, len(image.Thumbnails))
	for _, thumb := range image.Thumbnails {
		thumbnails = append(thumbnails, dto.ThumbnailResponse{
			Height:    thumb.Height,
			Width:     thumb.Width,
			URL:       cfg.Upload.ThumbnailURLPrefix + thumb.Path,
			CreatedAt: thumb.CreatedAt.Format(timeLayout),
			UpdatedAt: thumb.UpdatedAt.Format(timeLayout),
		})
	}

	resp := dto.ImageResponse{
		ID:         image.ID,
		Title:      image.Title,
		Thumbnails: thumbnails,
		CreatedAt:  image.CreatedAt.Format(timeLayout),
		UpdatedAt:  image.UpdatedAt.Format(timeLayout),
	}

	if shape == ShapeOriginal || shape == ShapeOriginalWithLink {
		url := fmt.Sprintf("/api/user/images/%d/file", image.ID)
		resp.URL = &url
	}
	if shape == ShapeWithLink || shape == ShapeOriginalWithLink {
		endpoint := fmt.Sprintf("/api/user/images/%d/temporary-link", image.ID)
		resp.TemporaryLinkEndpoint = &endpoint
	}

	return resp
}

// BuildImageResponses 批量组装，同一请求内形态只解析一次。
func BuildImageResponses(images []model.Image, shape ResponseShape) []dto.ImageResponse {
	responses := make([]dto.ImageResponse, 0, len(images))
	for i := range images {
		responses = append(responses, BuildImageResponse(&images[i], shape))
	}
	return responses
}
