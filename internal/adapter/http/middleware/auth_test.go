package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"projectease/internal/domain/entities"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, sub, role string, exp time.Time) string {
	t.Helper()
	claims := TokenClaims{
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   sub,
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	s, err := jwt.NewWithClaims(method, claims).SignedString(key)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return s
}

func newAuthRouter(required bool, extra ...gin.HandlerFunc) *gin.Engine {
	auth := NewJWTAuth(testSecret, zap.NewNop())
	r := gin.New()
	handlers := append([]gin.HandlerFunc{auth.Authenticate(required)}, extra...)
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, ActorFromContext(c))
	})
	r.GET("/x", handlers...)
	return r
}

func TestJWTAuth_Authenticate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	future := time.Now().Add(time.Hour)

	cases := []struct {
		name     string
		required bool
		header   string
		want     int
		wantID   string
		wantRole entities.Role
	}{
		{name: "required without header", required: true, want: http.StatusUnauthorized},
		{name: "optional without header", required: false, want: http.StatusOK},
		{name: "missing bearer prefix", required: false, header: "token", want: http.StatusUnauthorized},
		{name: "valid user token", required: true, header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "user-1", "user", future), want: http.StatusOK, wantID: "user-1", wantRole: entities.RoleUser},
		{name: "valid admin token", required: true, header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "admin-1", "admin", future), want: http.StatusOK, wantID: "admin-1", wantRole: entities.RoleAdmin},
		{name: "unknown role is a user", required: true, header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "u", "root", future), want: http.StatusOK, wantID: "u", wantRole: entities.RoleUser},
		{name: "wrong secret", required: false, header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), "user-1", "user", future), want: http.StatusUnauthorized},
		{name: "expired", required: true, header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "user-1", "user", time.Now().Add(-time.Hour)), want: http.StatusUnauthorized},
		{name: "wrong algorithm", required: true, header: "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), "user-1", "user", future), want: http.StatusUnauthorized},
		{name: "missing subject", required: true, header: "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "", "user", future), want: http.StatusUnauthorized},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			newAuthRouter(tc.required).ServeHTTP(w, req)

			if w.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, w.Code, w.Body.String())
			}
			if tc.want != http.StatusOK {
				return
			}
			var actor entities.Actor
			_ = json.Unmarshal(w.Body.Bytes(), &actor)
			if actor.ID != tc.wantID || actor.Role != tc.wantRole {
				t.Fatalf("unexpected actor: %+v", actor)
			}
		})
	}
}

func TestJWTAuth_EmptySecretFailsClosed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	auth := NewJWTAuth("", zap.NewNop())
	r := gin.New()
	r.GET("/x", auth.Authenticate(true), func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "user-1", "admin", time.Now().Add(time.Hour)))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
}

func TestRequireAdmin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	future := time.Now().Add(time.Hour)

	t.Run("user forbidden", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "user-1", "user", future))
		w := httptest.NewRecorder()
		newAuthRouter(true, RequireAdmin()).ServeHTTP(w, req)
		if w.Code != http.StatusForbidden {
			t.Fatalf("expected 403, got %d", w.Code)
		}
	})

	t.Run("admin allowed", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, []byte(testSecret), "admin-1", "admin", future))
		w := httptest.NewRecorder()
		newAuthRouter(true, RequireAdmin()).ServeHTTP(w, req)
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
	})
}

func TestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)
	core, logs := observer.New(zap.InfoLevel)

	r := gin.New()
	r.Use(Logger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	r.GET("/boom", func(c *gin.Context) { c.Status(http.StatusInternalServerError) })

	for _, p := range []string{"/ok", "/missing", "/boom"} {
		r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, p, nil))
	}

	entries := logs.All()
	if len(entries) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(entries))
	}
	want := []string{"info", "warn", "error"}
	for i, e := range entries {
		if e.Level.String() != want[i] {
			t.Fatalf("entry %d: expected %s, got %s", i, want[i], e.Level)
		}
	}
	if entries[1].ContextMap()["path"] != "/missing" {
		t.Fatalf("unexpected fields: %v", entries[1].ContextMap())
	}
}
