package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/yukikurage/saas-starter-api/internal/config"
)

const sessionMaxAge = 86400 * 7 // 7 days

// NewSessionStore keeps sessions in Redis when it is configured and in
// signed cookies otherwise.
func NewSessionStore(cfg *config.Config) (sessions.Store, error) {
	secret := []byte(cfg.SessionSecret)

	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		rs, err := redisStore.NewStore(cfg.Redis.PoolSize, "tcp", addr, cfg.Redis.Password, secret)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis session store: %w", err)
		}
		store = rs
	} else {
		store = cookie.NewStore(secret)
	}

	store.Options(SessionOptions(cfg))
	return store, nil
}

// SessionOptions only marks the cookie Secure in production, where the
// app is served over HTTPS.
func SessionOptions(cfg *config.Config) sessions.Options {
	return sessions.Options{
		Path:     "/",
		MaxAge:   sessionMaxAge,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	}
}
