package service

import (
	"fmt"
	"testing"

	"github.com/amadeuszklimaszewski/imageboard/internal/common"
	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/dto"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"
)

func seedImages(t *testing.T, userID uint, n int) []model.Image {
	t.Helper()
	images := make([]model.Image, 0, n)
	for i := 0; i < n; i++ {
		img := model.Image{
			Title:    fmt.Sprintf("图片 %d", i),
			Filename: fmt.Sprintf("u%d-%d.png", userID, i),
			Path:     fmt.Sprintf("2026/08/31/u%d-%d.png", userID, i),
			Size:     10,
			Width:    4,
			Height:   4,
			UserID:   &userID,
		}
		if err := db.DB.Create(&img).Error; err != nil {
			t.Fatalf("创建图片记录失败: %v", err)
		}
		images = append(images, img)
	}
	return images
}

// 测试内容：验证分页列表只含本人图片且按 ID 倒序。
func TestListUserImages(t *testing.T) {
	setupTestDB(t)

	alice := seedUser(t, "alice", nil)
	bob := seedUser(t, "bob", nil)
	seedImages(t, alice.ID, 3)
	seedImages(t, bob.ID, 2)

	images, total, page, pageSize, err := ListUserImages(alice.ID, dto.PaginationRequest{Page: 1, PageSize: 2})
	if err != nil {
		t.Fatalf("ListUserImages 错误: %v", err)
	}
	if total != 3 || page != 1 || pageSize != 2 || len(images) != 2 {
		t.Fatalf("非预期分页结果: total=%d page=%d size=%d len=%d", total, page, pageSize, len(images))
	}
	if images[0].ID < images[1].ID {
		t.Fatalf("期望按 ID 倒序")
	}
	for _, img := range images {
		if img.UserID == nil || *img.UserID != alice.ID {
			t.Fatalf("期望只返回本人图片")
		}
	}

	// 非法分页参数回退默认值。
	_, _, page, pageSize, err = ListUserImages(alice.ID, dto.PaginationRequest{Page: -1, PageSize: 0})
	if err != nil || page != 1 || pageSize != 10 {
		t.Fatalf("期望分页参数回退默认，实际为 page=%d size=%d err=%v", page, pageSize, err)
	}
}

// 测试内容：验证管理员全站列表跨用户返回。
func TestAdminListImages(t *testing.T) {
	setupTestDB(t)

	alice := seedUser(t, "alice", nil)
	bob := seedUser(t, "bob", nil)
	seedImages(t, alice.ID, 2)
	seedImages(t, bob.ID, 1)

	images, total, _, _, err := AdminListImages(dto.PaginationRequest{Page: 1, PageSize: 10})
	if err != nil {
		t.Fatalf("AdminListImages 错误: %v", err)
	}
	if total != 3 || len(images) != 3 {
		t.Fatalf("期望全站 3 张，实际为 total=%d len=%d", total, len(images))
	}
}

// 测试内容：验证属主校验——他人图片按不存在处理，管理员不受限。
func TestGetUserOwnedImage(t *testing.T) {
	setupTestDB(t)

	alice := seedUser(t, "alice", nil)
	bob := seedUser(t, "bob", nil)
	imgs := seedImages(t, alice.ID, 1)

	got, err := GetUserOwnedImage(imgs[0].ID, alice.ID, false)
	if err != nil || got.ID != imgs[0].ID {
		t.Fatalf("期望属主可访问: got=%v err=%v", got, err)
	}

	_, err = GetUserOwnedImage(imgs[0].ID, bob.ID, false)
	assertServiceErrorCode(t, err, common.ErrorCodeNotFound)

	got, err = GetUserOwnedImage(imgs[0].ID, bob.ID, true)
	if err != nil || got.ID != imgs[0].ID {
		t.Fatalf("期望管理员可访问: got=%v err=%v", got, err)
	}
}
