package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/saas-starter-api/internal/constants"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/services"
)

// RequireOrganizationMembership resolves the :slug parameter to an
// organization the user is an active member of.
func RequireOrganizationMembership(orgService *services.OrganizationService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := GetUserID(c)
		if !exists {
			apierrors.Abort(c, apierrors.RedirectToLogin(constants.LoginPath, c.Request.URL.RequestURI()))
			return
		}

		org, membership, err := orgService.GetMembershipBySlug(c.Request.Context(), c.Param("slug"), userID)
		if err != nil {
			// Non-members get a 404 so organization existence does not leak
			if errors.Is(err, services.ErrOrganizationNotFound) {
				apierrors.Abort(c, apierrors.NotFound("Organization not found"))
				return
			}
			_ = c.Error(err)
			apierrors.Abort(c, apierrors.InternalError)
			return
		}

		c.Set(constants.ContextKeyOrganization, org)
		c.Set(constants.ContextKeyMembership, membership)
		c.Next()
	}
}

// GetOrganization returns the organization loaded by RequireOrganizationMembership
func GetOrganization(c *gin.Context) *models.Organization {
	org, _ := c.Get(constants.ContextKeyOrganization)
	o, _ := org.(*models.Organization)
	return o
}

// GetMembership returns the caller's membership loaded by RequireOrganizationMembership
func GetMembership(c *gin.Context) *models.OrganizationMembership {
	membership, _ := c.Get(constants.ContextKeyMembership)
	m, _ := membership.(*models.OrganizationMembership)
	return m
}
