package service

import (
	"strconv"
	"sync"

	"github.com/amadeuszklimaszewski/imageboard/internal/consts"
	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"
)

var (
	// 内存缓存
	settingsCache sync.Map
)

const DefaultValueNotFound = "||__NOT_FOUND__||"

var DefaultSettings = []model.Setting{
	{Key: consts.ConfigSiteName, Value: "Imageboard", Desc: "网站名称"},
	{Key: consts.ConfigSiteDescription, Value: "Membership-gated image hosting", Desc: "网站描述"},
	{Key: consts.ConfigAllowRegister, Value: "true", Desc: "是否开放注册 (true/false)"},
	{Key: consts.ConfigMaxUploadSize, Value: "10", Desc: "单个文件最大大小 (MB)"},
	{Key: consts.ConfigAllowFileExtensions, Value: ".jpg,.jpeg,.png,.gif,.webp", Desc: "允许上传的文件扩展名"},
	{Key: consts.ConfigMaxTitleLength, Value: "200", Desc: "图片标题最大长度"},
	{Key: consts.ConfigRateLimitEnabled, Value: "true", Desc: "是否开启接口限流"},
	{Key: consts.ConfigRateLimitAuthRPS, Value: "0.5", Desc: "认证接口每秒请求限制 (RPS)"},
	{Key: consts.ConfigRateLimitAuthBurst, Value: "2", Desc: "认证接口突发请求限制"},
	{Key: consts.ConfigRateLimitUploadRPS, Value: "1.0", Desc: "上传接口每秒请求限制 (RPS)"},
	{Key: consts.ConfigRateLimitUploadBurst, Value: "5", Desc: "上传接口突发请求限制"},
	{Key: consts.ConfigMaxRequestBodySize, Value: "2", Desc: "非文件上传接口最大请求体限制 (MB)"},
	{Key: consts.ConfigStaticCacheControl, Value: "public, max-age=31536000", Desc: "静态资源缓存设置 (Cache-Control)"},
}

func ClearCache() {
	settingsCache.Range(func(key, value interface{}) bool {
		settingsCache.Delete(key)
		return true
	})
}

func InitializeSettings() {
	for _, def := range DefaultSettings {
		var count int64
		db.DB.Model(&model.Setting{}).Where("key = ?", def.Key).Count(&count)
		if count == 0 {
			db.DB.Create(&def)
		}
	}
}

func GetString(key string) string {
	if val, ok := settingsCache.Load(key); ok {
		strVal, ok := val.(string)
		if !ok {
			settingsCache.Delete(key)
		} else {
			if strVal == DefaultValueNotFound {
				return ""
			}
			return strVal
		}
	}

	var setting model.Setting
	if err := db.DB.Where("key = ?", key).First(&setting).Error; err != nil {
		// 数据库没查到，尝试查找默认配置
		for _, def := range DefaultSettings {
			if def.Key == key {
				// 查到了默认值，写入数据库并写入缓存
				newSetting := def
				// 尝试写入数据库 (忽略错误，防止并发写入导致的主键冲突)
				db.DB.Create(&newSetting)

				settingsCache.Store(key, newSetting.Value)
				return newSetting.Value
			}
		}

		// 没查到，往缓存里存 DefaultValueNotFound 标记
		settingsCache.Store(key, DefaultValueNotFound)
		return ""
	}
	// 数据库查到，写入缓存
	settingsCache.Store(key, setting.Value)

	return setting.Value
}

func GetInt(key string) int {
	valStr := GetString(key)
	if valStr == "" {
		return 0
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0
	}
	return val
}

func GetInt64(key string) int64 {
	valStr := GetString(key)
	if valStr == "" {
		return 0
	}

	val, err := strconv.ParseInt(valStr, 10, 64)
	if err != nil {
		return 0
	}
	return val
}

func GetFloat64(key string) float64 {
	valStr := GetString(key)
	if valStr == "" {
		return 0
	}

	val, err := strconv.ParseFloat(valStr, 64)
	if err != nil {
		return 0
	}
	return val
}

func GetBool(key string) bool {
	valStr := GetString(key)
	if valStr == "" {
		return false
	}

	// ParseBool 支持 "1", "t", "T", "true", "TRUE", "True"
	val, err := strconv.ParseBool(valStr)
	if err != nil {
		return false
	}
	return val
}
