package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() *Service {
	return NewService("test-secret", "admin@store.co", "hunter2", time.Hour)
}

func TestSignInIssuesValidToken(t *testing.T) {
	svc := newTestService()

	token, err := svc.SignIn("admin@store.co", "hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	assert.NoError(t, svc.Validate(token))
}

func TestSignInTrimsEmail(t *testing.T) {
	svc := newTestService()

	_, err := svc.SignIn("  admin@store.co  ", "hunter2")
	assert.NoError(t, err)
}

func TestSignInRejectsBadCredentials(t *testing.T) {
	svc := newTestService()

	_, err := svc.SignIn("admin@store.co", "wrong")
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.SignIn("intruder@store.co", "hunter2")
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestSignOutRevokesSession(t *testing.T) {
	svc := newTestService()

	token, err := svc.SignIn("admin@store.co", "hunter2")
	require.NoError(t, err)

	svc.SignOut(token)
	assert.ErrorIs(t, svc.Validate(token), ErrInvalidToken)
}

func TestValidateRejectsGarbageAndForeignTokens(t *testing.T) {
	svc := newTestService()

	assert.Error(t, svc.Validate("not-a-jwt"))

	other := NewService("other-secret", "admin@store.co", "hunter2", time.Hour)
	token, err := other.SignIn("admin@store.co", "hunter2")
	require.NoError(t, err)
	assert.Error(t, svc.Validate(token))
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	svc := NewService("test-secret", "admin@store.co", "hunter2", -2*time.Minute)

	token, err := svc.SignIn("admin@store.co", "hunter2")
	require.NoError(t, err)
	assert.Error(t, svc.Validate(token))
}

func TestRequireSessionMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService()

	router := gin.New()
	router.GET("/secured", RequireSession(svc), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})

	t.Run("no token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secured", nil)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secured", nil)
		req.Header.Set("Authorization", "Bearer bogus")
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := svc.SignIn("admin@store.co", "hunter2")
		require.NoError(t, err)

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/secured", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
