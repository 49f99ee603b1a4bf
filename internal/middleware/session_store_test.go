package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/saas-starter-api/internal/config"
	"github.com/yukikurage/saas-starter-api/internal/constants"
)

func sessionCookie(t *testing.T, cfg *config.Config) *http.Cookie {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := NewSessionStore(cfg)
	require.NoError(t, err)

	r := gin.New()
	r.Use(sessions.Sessions(constants.SessionCookieName, store))
	r.POST("/login", func(c *gin.Context) {
		require.NoError(t, SetSessionUser(c, 42))
		c.Status(http.StatusNoContent)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/login", nil))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, constants.SessionCookieName, cookies[0].Name)
	return cookies[0]
}

func TestNewSessionStore_Development(t *testing.T) {
	cookie := sessionCookie(t, &config.Config{Env: "development", SessionSecret: "secret"})

	assert.False(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, http.SameSiteLaxMode, cookie.SameSite)
	assert.Equal(t, "/", cookie.Path)
}

func TestNewSessionStore_Production(t *testing.T) {
	cookie := sessionCookie(t, &config.Config{Env: "production", SessionSecret: "secret"})

	assert.True(t, cookie.Secure)
	assert.True(t, cookie.HttpOnly)
	assert.Equal(t, 86400*7, cookie.MaxAge)
}
