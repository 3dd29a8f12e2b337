package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	pkgAuth "github.com/oakhallsupply/stockroom-backend/pkg/auth"
	"github.com/oakhallsupply/stockroom-backend/pkg/config"
	"github.com/oakhallsupply/stockroom-backend/pkg/logger"
)

func authTestConfig() config.JWTConfig {
	return config.JWTConfig{
		Secret:            "test-secret",
		Issuer:            "stockroom-test",
		ExpirationMinutes: 60,
	}
}

func authTestLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Output: io.Discard})
}

func TestAuthSeedsContextForDownstreamHandlers(t *testing.T) {
	cfg := authTestConfig()
	userID := uuid.New()

	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: userID,
		Scope:  pkgAuth.ScopeAdmin,
	})
	require.NoError(t, err)

	var gotUserID, gotScope string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = UserIDFromContext(r.Context())
		gotScope = ScopeFromContext(r.Context())
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()
	Auth(cfg, authTestLogger())(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, userID.String(), gotUserID)
	assert.Equal(t, pkgAuth.ScopeAdmin, gotScope)
}

func TestAuthAcceptsRawTokenWithoutBearerPrefix(t *testing.T) {
	cfg := authTestConfig()
	token, err := pkgAuth.MintAccessToken(cfg, time.Now(), pkgAuth.AccessTokenPayload{
		UserID: uuid.New(),
		Scope:  pkgAuth.ScopeAdmin,
	})
	require.NoError(t, err)

	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest(http.MethodPost, "/api/v1/inventory", nil)
	req.Header.Set("Authorization", token)
	rec := httptest.NewRecorder()
	Auth(cfg, authTestLogger())(next).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestAuthAccessorsDefaultToEmpty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, UserIDFromContext(req.Context()))
	assert.Empty(t, ScopeFromContext(req.Context()))
}
