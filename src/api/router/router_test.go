package router

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stake-plus/nameguard/src/config"
	"github.com/stake-plus/nameguard/src/data"
	"github.com/stake-plus/nameguard/src/logging"
	"github.com/stake-plus/nameguard/src/records"
)

const secret = "test-secret"

type downDB struct{}

func (downDB) PingContext(context.Context) error { return errors.New("connection refused") }

func newTestServer(t *testing.T) (*gin.Engine, *records.GormStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := data.Connect("sqlite://"+filepath.Join(t.TempDir(), "api.db"), data.Options{})
	require.NoError(t, err)
	require.NoError(t, records.Migrate(db))
	sqlDB, err := db.DB()
	require.NoError(t, err)

	store := records.NewGormStore(db, nil)
	cfg := config.APIConfig{JWTSecret: secret, AllowedOrigins: []string{"https://admin.example"}}
	return New(cfg, store, sqlDB, logging.NewNop()), store
}

func token(t *testing.T, method jwt.SigningMethod, key interface{}) string {
	t.Helper()
	tok := jwt.NewWithClaims(method, jwt.RegisteredClaims{
		Subject:   "admin",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	})
	s, err := tok.SignedString(key)
	require.NoError(t, err)
	return s
}

func do(r http.Handler, method, path, body, bearer string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestHealthz(t *testing.T) {
	r, _ := newTestServer(t)
	w := do(r, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"ok"}`, w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Trace-Id"))

	gin.SetMode(gin.TestMode)
	down := New(config.APIConfig{JWTSecret: secret}, nil, downDB{}, logging.NewNop())
	w = do(down, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRecordsRequireToken(t *testing.T) {
	r, _ := newTestServer(t)

	w := do(r, http.MethodGet, "/v1/servers/G/records/protected_role", "", "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/v1/servers/G/records/protected_role", "", token(t, jwt.SigningMethodHS256, []byte("wrong")))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = do(r, http.MethodGet, "/v1/servers/G/records/protected_role", "", token(t, jwt.SigningMethodHS384, []byte(secret)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRecordsLifecycle(t *testing.T) {
	r, store := newTestServer(t)
	bearer := token(t, jwt.SigningMethodHS256, []byte(secret))

	body := `{"records":[
		{"object_type":"HighRankingRole","object_id":"R","object_name":"Mods","server_name":"Polkadot"},
		{"object_type":"protected_role","object_id":"R"},
		{"object_type":"allowlist_user","object_id":"U"}
	]}`
	w := do(r, http.MethodPost, "/v1/servers/G/records", body, bearer)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.JSONEq(t, `{"added":2}`, w.Body.String())

	w = do(r, http.MethodGet, "/v1/servers/G/records/PROTECTED_ROLE", "", bearer)
	require.Equal(t, http.StatusOK, w.Code)
	var list struct {
		Records []records.ConfigRecord `json:"records"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	require.Len(t, list.Records, 1)
	assert.Equal(t, records.ProtectedRole, list.Records[0].ObjectType)
	assert.Equal(t, "Polkadot", list.Records[0].DiscordServerName)

	w = do(r, http.MethodDelete, "/v1/servers/G/records/allowlist_user/U", "", bearer)
	assert.Equal(t, http.StatusNoContent, w.Code)

	users, err := store.ListByTypeAndServer(context.Background(), records.AllowlistUser, "G")
	require.NoError(t, err)
	assert.Empty(t, users)

	w = do(r, http.MethodGet, "/v1/servers/G/records/allowlist_user", "", bearer)
	assert.JSONEq(t, `{"records":[]}`, w.Body.String())
}

func TestRecordsBadInput(t *testing.T) {
	r, _ := newTestServer(t)
	bearer := token(t, jwt.SigningMethodHS256, []byte(secret))

	w := do(r, http.MethodGet, "/v1/servers/G/records/banned_role", "", bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/v1/servers/G/records", `{"records":[]}`, bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodPost, "/v1/servers/G/records", `{"records":[{"object_type":"mystery","object_id":"X"}]}`, bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = do(r, http.MethodDelete, "/v1/servers/G/records/mystery/X", "", bearer)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCORSPreflight(t *testing.T) {
	r, _ := newTestServer(t)
	req := httptest.NewRequest(http.MethodOptions, "/v1/servers/G/records", nil)
	req.Header.Set("Origin", "https://admin.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "https://admin.example", w.Header().Get("Access-Control-Allow-Origin"))
}
