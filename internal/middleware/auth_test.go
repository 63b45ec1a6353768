// AngelaMos | 2026
// auth_test.go

package middleware_test

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelamos/repairdesk/internal/core"
	"github.com/angelamos/repairdesk/internal/middleware"
)

type fakeVerifier struct {
	claims map[string]*middleware.AccessTokenClaims
}

func (f *fakeVerifier) VerifyAccessToken(
	_ context.Context,
	token string,
) (*middleware.AccessTokenClaims, error) {
	claims, ok := f.claims[token]
	if !ok {
		return nil, fmt.Errorf("verify token: %w", core.ErrTokenInvalid)
	}
	return claims, nil
}

func newVerifier() *fakeVerifier {
	return &fakeVerifier{
		claims: map[string]*middleware.AccessTokenClaims{
			"good-token": {
				UserID:   "owner",
				TenantID: "tenant-a",
				Role:     "user",
				Tier:     "free",
			},
		},
	}
}

func TestAuthenticator_PlantsIdentity(t *testing.T) {
	var gotUserID, gotRole, gotTenant string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUserID = middleware.GetUserID(r.Context())
		gotRole = middleware.GetUserRole(r.Context())
		if claims := middleware.GetClaims(r.Context()); claims != nil {
			gotTenant = claims.TenantID
		}
		w.WriteHeader(http.StatusOK)
	})

	handler := middleware.Authenticator(newVerifier())(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer good-token")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "owner", gotUserID)
	assert.Equal(t, "user", gotRole)

	// The tenant id travels inside the claims, not as its own key. The
	// guard re-derives tenant from storage regardless.
	assert.Equal(t, "tenant-a", gotTenant)
}

func TestAuthenticator_MissingToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without a token")
	})

	handler := middleware.Authenticator(newVerifier())(next)

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthenticator_BadToken(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run with a bad token")
	})

	handler := middleware.Authenticator(newVerifier())(next)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer forged")

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRequireAdmin(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	handler := middleware.RequireAdmin(next)

	adminCtx := context.WithValue(
		context.Background(),
		middleware.UserRoleKey,
		"admin",
	)
	req := httptest.NewRequest(http.MethodGet, "/", nil).WithContext(adminCtx)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	userCtx := context.WithValue(
		context.Background(),
		middleware.UserRoleKey,
		"user",
	)
	req = httptest.NewRequest(http.MethodGet, "/", nil).WithContext(userCtx)
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestExtractToken(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Empty(t, middleware.ExtractToken(req))

	req.Header.Set("Authorization", "Bearer abc123")
	assert.Equal(t, "abc123", middleware.ExtractToken(req))

	req.Header.Set("Authorization", "Basic abc123")
	assert.Empty(t, middleware.ExtractToken(req))

	require.NotPanics(t, func() {
		req.Header.Set("Authorization", "Bearer")
		assert.Empty(t, middleware.ExtractToken(req))
	})
}
