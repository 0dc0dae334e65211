package service

import (
	"bytes"
	"mime/multipart"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/amadeuszklimaszewski/imageboard/internal/common"
	"github.com/amadeuszklimaszewski/imageboard/internal/config"
	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"
	"github.com/amadeuszklimaszewski/imageboard/internal/testutils"

	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	config.InitConfig("")

	gdb := testutils.SetupDB(t)
	ClearCache()
	t.Cleanup(ClearCache)
	InitializeSettings()
	return gdb
}

// chdirTemp 将工作目录切到临时目录，让相对的 uploads/ 路径落在其中。
func chdirTemp(t *testing.T) {
	t.Helper()
	tmp := t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("切换工作目录失败: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldwd) })
}

func assertServiceErrorCode(t *testing.T, err error, code common.ErrorCode) *common.ServiceError {
	t.Helper()
	serviceErr, ok := common.AsServiceError(err)
	if !ok {
		t.Fatalf("期望 ServiceError，实际为: %v", err)
	}
	if serviceErr.Code != code {
		t.Fatalf("期望错误码 %q，实际为 %q", code, serviceErr.Code)
	}
	return serviceErr
}

// seedMembership 建立一个带指定缩略图高度的会员等级。
func seedMembership(t *testing.T, name string, containsOriginal, generatesLink bool, heights ...int) *model.MembershipType {
	t.Helper()

	var sizes []model.ThumbnailSize
	for _, h := range heights {
		size := model.ThumbnailSize{Height: h}
		if err := db.DB.Create(&size).Error; err != nil {
			t.Fatalf("创建缩略图尺寸失败: %v", err)
		}
		sizes = append(sizes, size)
	}

	membership := model.MembershipType{
		Name:                  name,
		ContainsOriginalLink:  containsOriginal,
		GeneratesExpiringLink: generatesLink,
		ThumbnailSizes:        sizes,
	}
	if err := db.DB.Create(&membership).Error; err != nil {
		t.Fatalf("创建会员等级失败: %v", err)
	}
	return &membership
}

// seedUser 建立一个用户，membership 为 nil 时不指派等级。
func seedUser(t *testing.T, username string, membership *model.MembershipType) *model.User {
	t.Helper()

	user := model.User{Username: username, Password: "x"}
	if membership != nil {
		user.MembershipTypeID = &membership.ID
	}
	if err := db.DB.Create(&user).Error; err != nil {
		t.Fatalf("创建用户失败: %v", err)
	}
	return &user
}

func mustFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("写入分段失败: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("关闭 writer 失败: %v", err)
	}

	req := httptest.NewRequest("POST", "http://example/upload", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(int64(len(content)) + 1024); err != nil {
		t.Fatalf("ParseMultipartForm: %v", err)
	}

	fhs := req.MultipartForm.File["file"]
	if len(fhs) != 1 {
		t.Fatalf("期望 1 file header，实际为 %d", len(fhs))
	}
	return fhs[0]
}
