package consts

const (
	ApplicationName    = "Imageboard"
	ApplicationVersion = "v1.2.0"
)

const (
	// MinTempLinkSeconds 临时访问令牌最短有效期（秒）
	MinTempLinkSeconds = 300

	// MaxTempLinkSeconds 临时访问令牌最长有效期（秒）
	MaxTempLinkSeconds = 30000
)
