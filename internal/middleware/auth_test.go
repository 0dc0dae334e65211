package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/amadeuszklimaszewski/imageboard/internal/config"
	"github.com/amadeuszklimaszewski/imageboard/internal/utils"

	"github.com/gin-gonic/gin"
)

// 测试内容：验证缺少 Authorization 头时返回 401。
func TestJWTAuth_MissingHeaderUnauthorized(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.InitConfig("")

	r := gin.New()
	r.GET("/x", JWTAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/x", nil))

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}
}

// 测试内容：验证有效登录令牌会在上下文中设置用户信息。
func TestJWTAuth_ValidTokenSetsContext(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.InitConfig("")

	r := gin.New()
	r.GET("/x", JWTAuth(), func(c *gin.Context) {
		id, _ := c.Get("id")
		username, _ := c.Get("username")
		admin, _ := c.Get("admin")
		if id != uint(1) || username != "alice" || admin != true {
			c.JSON(500, gin.H{"bad": true})
			return
		}
		c.Status(http.StatusOK)
	})

	token, err := utils.GenerateLoginToken(1, "alice", true, time.Hour)
	if err != nil {
		t.Fatalf("GenerateLoginToken: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w.Code)
	}
}

// 测试内容：验证格式错误的 Authorization 头返回 401。
func TestJWTAuth_MalformedHeader(t *testing.T) {
	gin.SetMode(gin.TestMode)
	config.InitConfig("")

	r := gin.New()
	r.GET("/x", JWTAuth(), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Token abcdef")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Fatalf("期望 401，实际为 %d", w.Code)
	}
}

// 测试内容：验证非管理员被 AdminCheck 拦截，管理员放行。
func TestAdminCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/admin",
		func(c *gin.Context) { c.Set("admin", false); c.Next() },
		AdminCheck(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)
	r.GET("/admin-ok",
		func(c *gin.Context) { c.Set("admin", true); c.Next() },
		AdminCheck(),
		func(c *gin.Context) { c.Status(http.StatusOK) },
	)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/admin", nil))
	if w.Code != http.StatusForbidden {
		t.Fatalf("期望 403，实际为 %d", w.Code)
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/admin-ok", nil))
	if w2.Code != http.StatusOK {
		t.Fatalf("期望 200，实际为 %d", w2.Code)
	}
}
