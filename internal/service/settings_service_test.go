package service

import (
	"testing"

	"github.com/amadeuszklimaszewski/imageboard/internal/consts"
	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"
)

// 测试内容：验证读取字符串设置时会插入默认值并与数据库一致。
func TestGetString_DefaultSettingInserted(t *testing.T) {
	setupTestDB(t)

	ClearCache()
	val := GetString(consts.ConfigSiteName)
	if val == "" {
		t.Fatalf("期望默认 site_name 非空")
	}

	var s model.Setting
	if err := db.DB.Where("key = ?", consts.ConfigSiteName).First(&s).Error; err != nil {
		t.Fatalf("期望默认设置行已创建: %v", err)
	}
	if s.Value != val {
		t.Fatalf("db value mismatch: got=%q 期望=%q", s.Value, val)
	}
}

// 测试内容：验证未知 key 返回空值且缓存未找到标记。
func TestGetString_UnknownKeyReturnsEmpty(t *testing.T) {
	setupTestDB(t)

	ClearCache()
	if val := GetString("unknown_key_not_exists"); val != "" {
		t.Fatalf("期望未知 key 返回空，实际为 %q", val)
	}
	// 第二次调用仍应返回空值（缓存了未找到标记）。
	if val := GetString("unknown_key_not_exists"); val != "" {
		t.Fatalf("期望未知 key 返回空，实际为 %q", val)
	}
}

// 测试内容：验证数值与布尔设置的类型转换及解析失败时的零值回退。
func TestGetTypedSettings(t *testing.T) {
	setupTestDB(t)
	ClearCache()

	if got := GetInt(consts.ConfigMaxUploadSize); got != 10 {
		t.Fatalf("期望 10，实际为 %d", got)
	}
	if got := GetFloat64(consts.ConfigRateLimitAuthRPS); got != 0.5 {
		t.Fatalf("期望 0.5，实际为 %v", got)
	}
	if !GetBool(consts.ConfigAllowRegister) {
		t.Fatalf("期望 allow_register 默认为 true")
	}

	if err := db.DB.Create(&model.Setting{Key: "bad_int", Value: "not-a-number"}).Error; err != nil {
		t.Fatalf("写入设置失败: %v", err)
	}
	if got := GetInt("bad_int"); got != 0 {
		t.Fatalf("期望解析失败回退 0，实际为 %d", got)
	}
}

// 测试内容：验证修改数据库值后清空缓存能读到新值。
func TestClearCache_PicksUpNewValue(t *testing.T) {
	setupTestDB(t)
	ClearCache()

	_ = GetString(consts.ConfigSiteName) // 入缓存

	if err := db.DB.Model(&model.Setting{}).
		Where("key = ?", consts.ConfigSiteName).
		Update("value", "新站点").Error; err != nil {
		t.Fatalf("更新设置失败: %v", err)
	}

	// 未清缓存：仍是旧值。
	if got := GetString(consts.ConfigSiteName); got == "新站点" {
		t.Fatalf("期望缓存命中旧值")
	}

	ClearCache()
	if got := GetString(consts.ConfigSiteName); got != "新站点" {
		t.Fatalf("期望清缓存后读到新值，实际为 %q", got)
	}
}
