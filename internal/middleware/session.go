package middleware

import (
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/saas-starter-api/internal/constants"
)

// SetSessionUser signs the user in on the current session.
func SetSessionUser(c *gin.Context, userID int64) error {
	session := sessions.Default(c)
	session.Set(constants.ContextKeyUserID, userID)
	return session.Save()
}

// ClearSession signs the user out.
func ClearSession(c *gin.Context) error {
	session := sessions.Default(c)
	session.Clear()
	session.Options(sessions.Options{Path: "/", MaxAge: -1})
	return session.Save()
}

// AddFlash queues a notice for the next page load.
func AddFlash(c *gin.Context, notice string) error {
	session := sessions.Default(c)
	session.AddFlash(notice)
	return session.Save()
}

// Flashes pops the queued notices.
func Flashes(c *gin.Context) ([]string, error) {
	session := sessions.Default(c)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil, nil
	}

	notices := make([]string, 0, len(raw))
	for _, f := range raw {
		if s, ok := f.(string); ok {
			notices = append(notices, s)
		}
	}
	return notices, session.Save()
}

func sessionUserID(c *gin.Context) (int64, bool) {
	switch v := sessions.Default(c).Get(constants.ContextKeyUserID).(type) {
	case int64:
		return v, v > 0
	case int:
		return int64(v), v > 0
	default:
		return 0, false
	}
}
