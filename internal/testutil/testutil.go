package testutil

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/01moynul/binner-golang/internal/auth"
	"github.com/01moynul/binner-golang/internal/config"
	"github.com/01moynul/binner-golang/internal/handlers"
	"github.com/01moynul/binner-golang/internal/labels"
	"github.com/01moynul/binner-golang/internal/models"
	"github.com/01moynul/binner-golang/internal/routes"
	"github.com/01moynul/binner-golang/internal/storage/sqlstore"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const JWTSecret = "binner-test-jwt-secret"

// TestEnv holds test environment resources
type TestEnv struct {
	Store    *sqlstore.Store
	Handlers *handlers.Handlers
	Router   *gin.Engine
	LabelDir string
	T        *testing.T
}

// SetupTestStore opens a fresh SQLite database in a temp directory.
func SetupTestStore(t *testing.T) *sqlstore.Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "binner.db")
	store, err := sqlstore.Open(config.DatabaseConfig{Provider: "sqlite", Path: path}, zap.NewNop())
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })
	return store
}

// TestConfig is the config the test router is built from.
func TestConfig(required bool) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Mode: gin.TestMode, CORSOrigin: "http://localhost:3000"},
		Auth:   config.AuthConfig{Secret: JWTSecret, TokenExpire: time.Hour, Required: required},
	}
}

// Setup wires a store, label printer and router. When authRequired is set,
// inventory routes reject anonymous requests.
func Setup(t *testing.T, authRequired bool) *TestEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := TestConfig(authRequired)
	tokens, err := auth.New(cfg.Auth.Secret, cfg.Auth.TokenExpire)
	if err != nil {
		t.Fatalf("Failed to build token issuer: %v", err)
	}

	store := SetupTestStore(t)
	labelDir := t.TempDir()
	printer := &labels.Printer{Sink: labels.DirSink{Dir: labelDir}}
	h := handlers.New(store, printer, tokens, zap.NewNop())

	return &TestEnv{
		Store:    store,
		Handlers: h,
		Router:   routes.SetupRouter(h, cfg, zap.NewNop()),
		LabelDir: labelDir,
		T:        t,
	}
}

// GenerateTestToken creates a valid JWT token for testing
func GenerateTestToken(userID int64, email string) string {
	tokens, _ := auth.New(JWTSecret, time.Hour)
	token, _ := tokens.GenerateToken(models.UserContext{UserID: userID, Email: email})
	return token
}

// DoRequest executes an HTTP request against the test router
func DoRequest(r *gin.Engine, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	var reqBody *bytes.Buffer
	if body != nil {
		jsonBytes, _ := json.Marshal(body)
		reqBody = bytes.NewBuffer(jsonBytes)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, _ := http.NewRequest(method, path, reqBody)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// DoUpload posts data as the multipart field "file".
func DoUpload(r *gin.Engine, path, filename string, data []byte, token string) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, _ := mw.CreateFormFile("file", filename)
	fw.Write(data)
	mw.Close()

	req, _ := http.NewRequest(http.MethodPost, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

// ParseResponse parses a JSON object response.
func ParseResponse(w *httptest.ResponseRecorder) map[string]interface{} {
	var result map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}

// ParseList parses a JSON array response.
func ParseList(w *httptest.ResponseRecorder) []map[string]interface{} {
	var result []map[string]interface{}
	json.Unmarshal(w.Body.Bytes(), &result)
	return result
}
