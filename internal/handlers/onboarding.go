package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/saas-starter-api/internal/constants"
	"github.com/yukikurage/saas-starter-api/internal/dto"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/middleware"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/services"
	"github.com/yukikurage/saas-starter-api/internal/validation"
)

// OnboardingHandler walks new users through naming themselves and
// creating their first organization.
type OnboardingHandler struct {
	userService         *services.UserService
	organizationService *services.OrganizationService
}

// NewOnboardingHandler creates a new OnboardingHandler.
func NewOnboardingHandler(userService *services.UserService, organizationService *services.OrganizationService) *OnboardingHandler {
	return &OnboardingHandler{
		userService:         userService,
		organizationService: organizationService,
	}
}

// UserAccountPage returns the profile being completed.
func (h *OnboardingHandler) UserAccountPage(c *gin.Context) error {
	c.JSON(http.StatusOK, gin.H{
		"user": dto.ToUserDTO(*middleware.GetUser(c)),
	})
	return nil
}

// UserAccount saves the user's name and moves on to the next step.
func (h *OnboardingHandler) UserAccount(c *gin.Context) error {
	if _, err := readIntent(c, models.IntentUpdate); err != nil {
		return err
	}

	var form dto.UserNameForm
	if err := validation.Bind(c, &form); err != nil {
		return err
	}

	ctx := c.Request.Context()
	user, err := h.userService.UpdateAccount(ctx, services.UpdateAccountInput{
		UserID: middleware.GetUser(c).ID,
		Name:   form.Name,
	})
	if err != nil {
		return serviceError(err)
	}

	memberships, err := h.organizationService.ListOrganizationsForUser(ctx, user.ID)
	if err != nil {
		return err
	}
	if len(memberships) == 0 {
		return apierrors.RedirectTo(constants.OnboardingOrganizationPath)
	}
	return apierrors.RedirectTo(constants.OrganizationsPath)
}

// OrganizationPage returns the user creating their first organization.
func (h *OnboardingHandler) OrganizationPage(c *gin.Context) error {
	c.JSON(http.StatusOK, gin.H{
		"user": dto.ToUserDTO(*middleware.GetUser(c)),
	})
	return nil
}

// CreateOrganization creates an organization owned by the caller and opens
// its dashboard. Shared by onboarding and /organizations/new.
func (h *OnboardingHandler) CreateOrganization(c *gin.Context) error {
	if _, err := readIntent(c, models.IntentCreate); err != nil {
		return err
	}

	var form dto.OrganizationForm
	if err := validation.Bind(c, &form); err != nil {
		return err
	}

	var logoURL string
	if form.LogoURL != nil {
		logoURL = *form.LogoURL
	}

	org, err := h.organizationService.CreateOrganization(c.Request.Context(), services.CreateOrganizationInput{
		Name:    form.Name,
		LogoURL: logoURL,
		OwnerID: middleware.GetUser(c).ID,
	})
	if err != nil {
		return serviceError(err)
	}

	if err := middleware.AddFlash(c, constants.FlashOrganizationCreated); err != nil {
		return err
	}
	return apierrors.RedirectTo(services.DashboardPath(org.Slug))
}
