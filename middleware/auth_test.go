package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hotel-ops-backend/utils"

	"github.com/gin-gonic/gin"
)

const testSecret = "middleware-test-secret"

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	protected := r.Group("/", RequireAuth(testSecret))
	protected.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"username": c.GetString("username"),
			"role":     c.GetString("role"),
		})
	})
	protected.GET("/admin", RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return r
}

func doRequest(t *testing.T, r *gin.Engine, path, authHeader string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuthMissingHeader(t *testing.T) {
	rec := doRequest(t, newTestRouter(), "/me", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthBadScheme(t *testing.T) {
	rec := doRequest(t, newTestRouter(), "/me", "Token abc123")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthInvalidToken(t *testing.T) {
	rec := doRequest(t, newTestRouter(), "/me", "Bearer not.a.token")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthExpiredToken(t *testing.T) {
	token, err := utils.NewAccessToken(testSecret, "frontdesk", "staff", -time.Minute)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec := doRequest(t, newTestRouter(), "/me", "Bearer "+token)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", rec.Code)
	}
}

func TestRequireAuthValidToken(t *testing.T) {
	token, err := utils.NewAccessToken(testSecret, "frontdesk", "staff", time.Hour)
	if err != nil {
		t.Fatalf("NewAccessToken: %v", err)
	}
	rec := doRequest(t, newTestRouter(), "/me", "Bearer "+token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (%s)", rec.Code, rec.Body.String())
	}
	body := rec.Body.String()
	if !strings.Contains(body, "frontdesk") || !strings.Contains(body, "staff") {
		t.Errorf("identity not propagated, body: %s", body)
	}
}

func TestRequireRole(t *testing.T) {
	staffToken, _ := utils.NewAccessToken(testSecret, "frontdesk", "staff", time.Hour)
	adminToken, _ := utils.NewAccessToken(testSecret, "boss", "admin", time.Hour)

	r := newTestRouter()
	if rec := doRequest(t, r, "/admin", "Bearer "+staffToken); rec.Code != http.StatusForbidden {
		t.Errorf("staff on admin route: expected 403, got %d", rec.Code)
	}
	if rec := doRequest(t, r, "/admin", "Bearer "+adminToken); rec.Code != http.StatusOK {
		t.Errorf("admin on admin route: expected 200, got %d", rec.Code)
	}
}
