package app_test

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"microsvc/internal/app"
	"microsvc/internal/config"

	"github.com/alicebob/miniredis/v2"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func baseConfig() *config.Config {
	return &config.Config{
		Port:       5000,
		DBDriver:   "sqlite",
		DBDSN:      ":memory:",
		BcryptCost: 4,
		LinkStore:  config.LinkStoreMemory,
		CodeLength: 6,
	}
}

func TestNewShortener_Memory(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := baseConfig()
	cfg.BaseURL = "https://sho.rt"

	svc, err := app.NewShortener(cfg, log)
	require.NoError(t, err)
	defer svc.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(`{"url": "https://example.com"}`))
	rec := httptest.NewRecorder()
	svc.Server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), `"short_url":"https://sho.rt/`)
}

func TestNewShortener_RedisUnavailable(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := baseConfig()
	cfg.LinkStore = config.LinkStoreRedis
	cfg.RedisAddr = "127.0.0.1:1"

	_, err := app.NewShortener(cfg, log)
	assert.ErrorContains(t, err, "connect to redis")
}

func TestNewShortener_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	log, _ := test.NewNullLogger()
	cfg := baseConfig()
	cfg.LinkStore = config.LinkStoreRedis
	cfg.RedisAddr = mr.Addr()
	cfg.RedisKeyPrefix = "shortener:"

	svc, err := app.NewShortener(cfg, log)
	require.NoError(t, err)
	defer svc.Close()

	req := httptest.NewRequest(http.MethodPost, "/api/shorten", strings.NewReader(`{"url": "https://example.com"}`))
	rec := httptest.NewRecorder()
	svc.Server.Handler().ServeHTTP(rec, req)
	require.Equal(t, http.StatusCreated, rec.Code)

	keys := mr.Keys()
	require.Len(t, keys, 1)
	assert.True(t, strings.HasPrefix(keys[0], "shortener:link:"))
	assert.Equal(t, "https://example.com", mr.HGet(keys[0], "url"))
}

func TestNewUserService_SQLite(t *testing.T) {
	log, _ := test.NewNullLogger()

	svc, err := app.NewUserService(baseConfig(), log)
	require.NoError(t, err)
	defer svc.Close()

	rec := httptest.NewRecorder()
	svc.Server.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/users", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())
}

func TestNewUserService_BadDriver(t *testing.T) {
	log, _ := test.NewNullLogger()
	cfg := baseConfig()
	cfg.DBDriver = "oracle"

	_, err := app.NewUserService(cfg, log)
	assert.Error(t, err)
}

func TestMigrateUsers_CreatesDatabaseFile(t *testing.T) {
	cfg := baseConfig()
	cfg.DBDSN = filepath.Join(t.TempDir(), "users.db")

	require.NoError(t, app.MigrateUsers(cfg))
	require.NoError(t, app.MigrateUsers(cfg), "migrating twice is a no-op")

	assert.FileExists(t, cfg.DBDSN)
}
