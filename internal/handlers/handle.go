package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/services"
	"github.com/yukikurage/saas-starter-api/internal/validation"
	"go.uber.org/zap"
)

// HandlerFunc is a page loader or action. Responses other than success are
// returned as *apierrors.APIError or *apierrors.Redirect.
type HandlerFunc func(c *gin.Context) error

// Handle adapts fn to gin. Errors that are neither an APIError nor a
// Redirect are logged and answered with the generic 500 body.
func Handle(logger *zap.Logger, fn HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		err := fn(c)
		if err == nil || apierrors.Abort(c, err) {
			return
		}

		_ = c.Error(err)
		logger.Error("unhandled error",
			zap.Error(err),
			zap.String("method", c.Request.Method),
			zap.String("route", c.FullPath()),
		)
		apierrors.Abort(c, apierrors.InternalError)
	}
}

// readIntent returns the submitted intent when the page accepts it.
func readIntent(c *gin.Context, allowed ...models.Intent) (models.Intent, error) {
	intent, err := validation.Intent(c)
	if err != nil {
		return "", err
	}
	for _, a := range allowed {
		if intent == a {
			return intent, nil
		}
	}
	return "", apierrors.BadRequest("Invalid intent", nil)
}

func fieldError(field, message string) *apierrors.APIError {
	return apierrors.BadRequest(validation.MessageValidationFailed, map[string]string{field: message})
}

// serviceError maps service sentinels to responses. Unknown errors pass
// through to the error boundary.
func serviceError(err error) error {
	switch {
	case errors.Is(err, services.ErrNotOwner):
		return apierrors.Forbidden(apierrors.ReasonMustBeOwner)
	case errors.Is(err, services.ErrNotOwnerOrAdmin):
		return apierrors.Forbidden(apierrors.ReasonMustBeOwnerOrAdmin)
	case errors.Is(err, services.ErrCannotChangeOwnRole):
		return apierrors.Forbidden(apierrors.ReasonCannotChangeOwnRole)
	case errors.Is(err, services.ErrSoleOwner):
		return apierrors.BadRequest("You are the only owner of an organization with other members",
			map[string]string{"form": apierrors.ReasonSoleOwner})
	case errors.Is(err, services.ErrInvalidRole):
		return fieldError("role", "Invalid role")
	case errors.Is(err, services.ErrInvalidOrganizationName), errors.Is(err, services.ErrInvalidUserName):
		return fieldError("name", "Required")
	case errors.Is(err, services.ErrEmailTaken):
		return fieldError("email", "Email already registered")
	case errors.Is(err, services.ErrPasswordTooShort):
		return fieldError("password", "Password too short")
	case errors.Is(err, services.ErrInvalidCredentials):
		return apierrors.BadRequest("Invalid email or password", map[string]string{"form": "invalid-credentials"})
	case errors.Is(err, services.ErrInvalidToken):
		return apierrors.BadRequest("Invalid token", nil)
	case errors.Is(err, services.ErrMemberNotFound):
		return apierrors.NotFound("Member not found")
	case errors.Is(err, services.ErrOrganizationNotFound):
		return apierrors.NotFound("Organization not found")
	case errors.Is(err, services.ErrUserNotFound):
		return apierrors.NotFound("User not found")
	default:
		return err
	}
}
