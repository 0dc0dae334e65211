package dto

type UploadImageRequest struct {
	Title string `form:"title" binding:"required"`
}

type TemporaryLinkRequest struct {
	Seconds int `json:"seconds" binding:"required,gte=300,lte=30000"`
}

type ThumbnailResponse struct {
	Height    int    `json:"height"`
	Width     int    `json:"width"`
	URL       string `json:"thumbnail"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// ImageResponse 按会员等级裁剪字段：URL 与 TemporaryLinkEndpoint
// 仅在等级具备对应能力时序列化。
type ImageResponse struct {
	ID                    uint                `json:"id"`
	Title                 string              `json:"title"`
	Thumbnails            []ThumbnailResponse `json:"thumbnails"`
	URL                   *string             `json:"image,omitempty"`
	TemporaryLinkEndpoint *string             `json:"temporary_link_generator,omitempty"`
	CreatedAt             string              `json:"created_at"`
	UpdatedAt             string              `json:"updated_at"`
}

type TemporaryLinkResponse struct {
	Token     string `json:"token"`
	URL       string `json:"url"`
	ExpiresAt string `json:"expires_at"`
}

type PaginationRequest struct {
	Page     int
	PageSize int
}
