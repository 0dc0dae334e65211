package router

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/amadeuszklimaszewski/imageboard/internal/config"
	"github.com/amadeuszklimaszewski/imageboard/internal/consts"
	"github.com/amadeuszklimaszewski/imageboard/internal/db"
	"github.com/amadeuszklimaszewski/imageboard/internal/model"
	"github.com/amadeuszklimaszewski/imageboard/internal/service"
	"github.com/amadeuszklimaszewski/imageboard/internal/testutils"

	"github.com/gin-gonic/gin"
)

func setupTestDB(t *testing.T) {
	t.Helper()
	config.InitConfig("")
	testutils.SetupDB(t)
	service.ClearCache()
	t.Cleanup(service.ClearCache)
	service.InitializeSettings()
}

// 测试内容：验证核心 API 路由被正确注册。
func TestInit_RegistersCoreRoutes(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupTestDB(t)

	r := gin.New()
	Init(r)

	type wantRoute struct {
		method string
		path   string
	}
	wants := []wantRoute{
		{method: "GET", path: "/api/ping"},
		{method: "GET", path: "/api/webinfo"},
		{method: "POST", path: "/api/login"},
		{method: "POST", path: "/api/register"},
		{method: "GET", path: "/api/imgtmp/:token"},
		{method: "POST", path: "/api/user/upload"},
		{method: "GET", path: "/api/user/images"},
		{method: "GET", path: "/api/user/images/:id"},
		{method: "DELETE", path: "/api/user/images/:id"},
		{method: "GET", path: "/api/user/images/:id/file"},
		{method: "POST", path: "/api/user/images/:id/temporary-link"},
		{method: "GET", path: "/api/admin/memberships"},
		{method: "POST", path: "/api/admin/thumbnail-sizes"},
		{method: "PATCH", path: "/api/admin/users/:id/membership"},
		{method: "GET", path: "/api/admin/images"},
	}

	have := make(map[string]bool)
	for _, rt := range r.Routes() {
		have[rt.Method+" "+rt.Path] = true
	}

	for _, w := range wants {
		if !have[w.method+" "+w.path] {
			t.Fatalf("缺少路由: %s %s", w.method, w.path)
		}
	}
}

// 测试内容：验证未认证访问用户与管理员路由被拦截。
func TestInit_AuthGuards(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupTestDB(t)

	r := gin.New()
	Init(r)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/user/images", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", rec.Code)
	}

	rec2 := httptest.NewRecorder()
	r.ServeHTTP(rec2, httptest.NewRequest(http.MethodGet, "/api/admin/memberships", nil))
	if rec2.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", rec2.Code)
	}
}

// 测试内容：经过完整路由栈的注册、登录、上传、临时链接端到端流程。
func TestFullFlowThroughRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	setupTestDB(t)

	// 关闭限流，避免连续请求被拦截。
	if err := db.DB.Model(&model.Setting{}).
		Where("key = ?", consts.ConfigRateLimitEnabled).
		Update("value", "false").Error; err != nil {
		t.Fatalf("更新设置失败: %v", err)
	}
	service.ClearCache()

	tmp := t.TempDir()
	oldwd, _ := os.Getwd()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("切换工作目录失败: %v", err)
	}
	defer func() { _ = os.Chdir(oldwd) }()

	service.InitializeMemberships()

	r := gin.New()
	Init(r)

	postJSON := func(path, token string, payload any) *httptest.ResponseRecorder {
		var body bytes.Buffer
		_ = json.NewEncoder(&body).Encode(payload)
		req := httptest.NewRequest(http.MethodPost, path, &body)
		req.Header.Set("Content-Type", "application/json")
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, req)
		return rec
	}

	// 注册并登录。
	if rec := postJSON("/api/register", "", gin.H{"username": "alice", "password": "abc12345"}); rec.Code != http.StatusOK {
		t.Fatalf("register 期望 200，实际为 %d body=%s", rec.Code, rec.Body.String())
	}
	recLogin := postJSON("/api/login", "", gin.H{"username": "alice", "password": "abc12345"})
	if recLogin.Code != http.StatusOK {
		t.Fatalf("login 期望 200，实际为 %d body=%s", recLogin.Code, recLogin.Body.String())
	}
	var loginResp struct {
		Token string `json:"token"`
	}
	_ = json.Unmarshal(recLogin.Body.Bytes(), &loginResp)

	// 指派 Enterprise 等级。
	var enterprise model.MembershipType
	if err := db.DB.Where("name = ?", "Enterprise").First(&enterprise).Error; err != nil {
		t.Fatalf("加载 Enterprise 等级失败: %v", err)
	}
	var u model.User
	_ = db.DB.Where("username = ?", "alice").First(&u).Error
	if err := service.AssignMembership(u.ID, &enterprise.ID); err != nil {
		t.Fatalf("指派等级失败: %v", err)
	}

	// 上传图片。
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	_ = w.WriteField("title", "端到端")
	part, _ := w.CreateFormFile("file", "a.png")
	_, _ = part.Write(testutils.PNGBytes(t, 600, 300))
	_ = w.Close()

	reqUpload := httptest.NewRequest(http.MethodPost, "/api/user/upload", &body)
	reqUpload.Header.Set("Content-Type", w.FormDataContentType())
	reqUpload.Header.Set("Authorization", "Bearer "+loginResp.Token)
	recUpload := httptest.NewRecorder()
	r.ServeHTTP(recUpload, reqUpload)
	if recUpload.Code != http.StatusOK {
		t.Fatalf("upload 期望 200，实际为 %d body=%s", recUpload.Code, recUpload.Body.String())
	}
	var uploadResp struct {
		Image struct {
			ID                    uint    `json:"id"`
			URL                   *string `json:"image"`
			TemporaryLinkEndpoint *string `json:"temporary_link_generator"`
			Thumbnails            []struct {
				Height int `json:"height"`
			} `json:"thumbnails"`
		} `json:"image"`
	}
	_ = json.Unmarshal(recUpload.Body.Bytes(), &uploadResp)
	if uploadResp.Image.TemporaryLinkEndpoint == nil || len(uploadResp.Image.Thumbnails) != 2 {
		t.Fatalf("非预期 upload resp: %s", recUpload.Body.String())
	}

	// 走响应中给出的入口签发临时链接。
	recLink := postJSON(*uploadResp.Image.TemporaryLinkEndpoint, loginResp.Token, gin.H{"seconds": 4000})
	if recLink.Code != http.StatusOK {
		t.Fatalf("temporary-link 期望 200，实际为 %d body=%s", recLink.Code, recLink.Body.String())
	}
	var linkResp struct {
		URL string `json:"url"`
	}
	_ = json.Unmarshal(recLink.Body.Bytes(), &linkResp)

	// 匿名兑换。
	recGet := httptest.NewRecorder()
	r.ServeHTTP(recGet, httptest.NewRequest(http.MethodGet, linkResp.URL, nil))
	if recGet.Code != http.StatusOK || recGet.Body.Len() == 0 {
		t.Fatalf("imgtmp 期望 200 且有内容，实际为 %d len=%d", recGet.Code, recGet.Body.Len())
	}
}
