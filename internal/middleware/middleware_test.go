package middleware

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/requestctx"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type stubValidator map[string]models.UserContext

func (s stubValidator) ValidateToken(token string) (models.UserContext, error) {
	if u, ok := s[token]; ok {
		return u, nil
	}
	return models.UserContext{}, errors.New("bad token")
}

func newRouter(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(mw...)
	r.GET("/whoami", func(c *gin.Context) {
		uid := requestctx.UserID(c.Request.Context())
		if uid == nil {
			c.JSON(http.StatusOK, gin.H{"user": nil})
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": *uid})
	})
	return r
}

func serve(r http.Handler, method, path string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddleware(t *testing.T) {
	tokens := stubValidator{"good": {UserID: 7, Email: "a@example.com"}}

	tests := []struct {
		name     string
		required bool
		header   string
		status   int
		body     string
	}{
		{"anonymous allowed", false, "", http.StatusOK, `{"user":null}`},
		{"anonymous rejected", true, "", http.StatusUnauthorized, ""},
		{"valid token", true, "Bearer good", http.StatusOK, `{"user":7}`},
		{"valid token optional", false, "Bearer good", http.StatusOK, `{"user":7}`},
		{"invalid token", false, "Bearer nope", http.StatusUnauthorized, ""},
		{"wrong scheme", false, "Basic good", http.StatusUnauthorized, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRouter(AuthMiddleware(tokens, tt.required))
			headers := map[string]string{}
			if tt.header != "" {
				headers["Authorization"] = tt.header
			}
			w := serve(r, http.MethodGet, "/whoami", headers)
			if w.Code != tt.status {
				t.Fatalf("status = %d, want %d (%s)", w.Code, tt.status, w.Body.String())
			}
			if tt.body != "" && w.Body.String() != tt.body {
				t.Fatalf("body = %s, want %s", w.Body.String(), tt.body)
			}
		})
	}
}

func TestRequestID(t *testing.T) {
	r := newRouter(RequestID())

	w := serve(r, http.MethodGet, "/whoami", map[string]string{"X-Request-ID": "req-123"})
	if got := w.Header().Get("X-Request-ID"); got != "req-123" {
		t.Fatalf("request id = %q, want req-123", got)
	}

	w = serve(r, http.MethodGet, "/whoami", nil)
	if got := w.Header().Get("X-Request-ID"); len(got) != 36 {
		t.Fatalf("generated request id = %q, want uuid", got)
	}
}

func TestCORSPreflight(t *testing.T) {
	r := newRouter(CORS("http://localhost:3000"))
	w := serve(r, http.MethodOptions, "/whoami", nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", w.Code)
	}
	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:3000" {
		t.Fatalf("origin = %q", got)
	}
}

func TestLoggerPassesThrough(t *testing.T) {
	r := newRouter(RequestID(), Logger(zap.NewNop()))
	if w := serve(r, http.MethodGet, "/whoami", nil); w.Code != http.StatusOK {
		t.Fatalf("status = %d", w.Code)
	}
}
