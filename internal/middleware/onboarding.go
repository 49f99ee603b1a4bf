package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/yukikurage/saas-starter-api/internal/constants"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/services"
)

// RequireOnboardedUser sends users who have not set their name, or who
// belong to no organization yet, through the onboarding pages. It must run
// after RequireUserIsAuthenticated.
func RequireOnboardedUser(orgService *services.OrganizationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := GetUser(c)
		if user == nil {
			apierrors.Abort(c, apierrors.RedirectToLogin(constants.LoginPath, c.Request.URL.RequestURI()))
			return
		}

		if !user.HasCompletedProfile() {
			apierrors.Abort(c, apierrors.RedirectTo(constants.OnboardingUserAccountPath))
			return
		}

		memberships, err := orgService.ListOrganizationsForUser(c.Request.Context(), user.ID)
		if err != nil {
			_ = c.Error(err)
			apierrors.Abort(c, apierrors.InternalError)
			return
		}
		if len(memberships) == 0 {
			apierrors.Abort(c, apierrors.RedirectTo(constants.OnboardingOrganizationPath))
			return
		}

		c.Next()
	}
}
