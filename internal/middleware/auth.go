package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/saas-starter-api/internal/constants"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/services"
)

// RequireUserIsAuthenticated redirects to the login page, carrying the
// requested path, unless the session belongs to an existing user.
func RequireUserIsAuthenticated(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := loadSessionUser(c, authService)
		if err != nil {
			_ = c.Error(err)
			apierrors.Abort(c, apierrors.InternalError)
			return
		}
		if user == nil {
			apierrors.Abort(c, apierrors.RedirectToLogin(constants.LoginPath, c.Request.URL.RequestURI()))
			return
		}

		setUser(c, user)
		c.Next()
	}
}

// OptionalUser attaches the signed-in user when there is one and never aborts.
func OptionalUser(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if user, err := loadSessionUser(c, authService); err == nil && user != nil {
			setUser(c, user)
		}
		c.Next()
	}
}

// RequireAnonymous keeps signed-in users away from the login and
// registration pages.
func RequireAnonymous(authService *services.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, err := loadSessionUser(c, authService)
		if err != nil {
			_ = c.Error(err)
			apierrors.Abort(c, apierrors.InternalError)
			return
		}
		if user != nil {
			apierrors.Abort(c, apierrors.RedirectTo(constants.OrganizationsPath))
			return
		}
		c.Next()
	}
}

// loadSessionUser returns nil when the session is empty or points at a
// user that no longer exists. Stale sessions are cleared.
func loadSessionUser(c *gin.Context, authService *services.AuthService) (*models.User, error) {
	userID, ok := sessionUserID(c)
	if !ok {
		return nil, nil
	}

	user, err := authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, services.ErrUserNotFound) {
			_ = ClearSession(c)
			return nil, nil
		}
		return nil, err
	}
	return user, nil
}

func setUser(c *gin.Context, user *models.User) {
	c.Set(constants.ContextKeyUserID, user.ID)
	c.Set(constants.ContextKeyUser, user)
}

// GetUserID retrieves the current user ID from context
func GetUserID(c *gin.Context) (int64, bool) {
	userID, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return 0, false
	}
	id, ok := userID.(int64)
	return id, ok
}

// GetUser retrieves the current user from context
func GetUser(c *gin.Context) *models.User {
	user, _ := c.Get(constants.ContextKeyUser)
	u, _ := user.(*models.User)
	return u
}
