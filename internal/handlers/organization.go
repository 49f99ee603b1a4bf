package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/saas-starter-api/internal/constants"
	"github.com/yukikurage/saas-starter-api/internal/dto"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/middleware"
	"github.com/yukikurage/saas-starter-api/internal/models"
	"github.com/yukikurage/saas-starter-api/internal/services"
	"github.com/yukikurage/saas-starter-api/internal/validation"
)

// OrganizationHandler serves the pages under /organizations/:slug.
type OrganizationHandler struct {
	organizationService *services.OrganizationService
	membershipService   *services.MembershipService
	inviteLinkService   *services.InviteLinkService
	billingService      *services.BillingService
	baseURL             string
}

// NewOrganizationHandler creates a new OrganizationHandler.
func NewOrganizationHandler(
	organizationService *services.OrganizationService,
	membershipService *services.MembershipService,
	inviteLinkService *services.InviteLinkService,
	billingService *services.BillingService,
	baseURL string,
) *OrganizationHandler {
	return &OrganizationHandler{
		organizationService: organizationService,
		membershipService:   membershipService,
		inviteLinkService:   inviteLinkService,
		billingService:      billingService,
		baseURL:             baseURL,
	}
}

func generalSettingsPath(slug string) string {
	return constants.OrganizationsPath + "/" + slug + "/settings/general"
}

// ListOrganizations opens the first organization the user belongs to.
func (h *OrganizationHandler) ListOrganizations(c *gin.Context) error {
	memberships, err := h.organizationService.ListOrganizationsForUser(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		return err
	}
	if len(memberships) == 0 {
		return apierrors.RedirectTo(constants.OnboardingOrganizationPath)
	}
	return apierrors.RedirectTo(services.DashboardPath(memberships[0].Organization.Slug))
}

// NewOrganizationPage lists the user's organizations next to the create form.
func (h *OrganizationHandler) NewOrganizationPage(c *gin.Context) error {
	memberships, err := h.organizationService.ListOrganizationsForUser(c.Request.Context(), middleware.GetUser(c).ID)
	if err != nil {
		return err
	}

	orgs := make([]dto.OrganizationWithRoleDTO, len(memberships))
	for i, m := range memberships {
		orgs[i] = dto.ToOrganizationWithRoleDTO(m)
	}
	c.JSON(http.StatusOK, gin.H{
		"organizations": orgs,
	})
	return nil
}

// Dashboard returns the organization, the caller's role and pending notices.
func (h *OrganizationHandler) Dashboard(c *gin.Context) error {
	notices, err := middleware.Flashes(c)
	if err != nil {
		return err
	}

	c.JSON(http.StatusOK, dto.DashboardDTO{
		Organization: dto.ToOrganizationDTO(*middleware.GetOrganization(c)),
		YourRole:     middleware.GetMembership(c).Role,
		Notices:      notices,
	})
	return nil
}

// GeneralSettingsPage returns the organization's editable settings.
func (h *OrganizationHandler) GeneralSettingsPage(c *gin.Context) error {
	c.JSON(http.StatusOK, gin.H{
		"organization": dto.ToOrganizationDTO(*middleware.GetOrganization(c)),
		"your_role":    middleware.GetMembership(c).Role,
	})
	return nil
}

// GeneralSettings renames or deletes the organization.
func (h *OrganizationHandler) GeneralSettings(c *gin.Context) error {
	intent, err := readIntent(c, models.IntentUpdate, models.IntentDelete)
	if err != nil {
		return err
	}

	org := middleware.GetOrganization(c)
	membership := middleware.GetMembership(c)
	ctx := c.Request.Context()

	switch intent {
	case models.IntentUpdate:
		if membership.Role != models.RoleOwner && membership.Role != models.RoleAdmin {
			return apierrors.Forbidden(apierrors.ReasonMustBeOwnerOrAdmin)
		}

		var form dto.OrganizationForm
		if err := validation.Bind(c, &form); err != nil {
			return err
		}

		updated, err := h.organizationService.UpdateOrganization(ctx, services.UpdateOrganizationInput{
			OrganizationID: org.ID,
			CallerID:       membership.UserID,
			Name:           form.Name,
			LogoURL:        form.LogoURL,
		})
		if err != nil {
			return serviceError(err)
		}
		return apierrors.RedirectTo(generalSettingsPath(updated.Slug))

	default:
		next, err := h.organizationService.DeleteOrganization(ctx, services.DeleteOrganizationInput{
			OrganizationID: org.ID,
			CallerID:       membership.UserID,
		})
		if err != nil {
			return serviceError(err)
		}

		if err := middleware.AddFlash(c, constants.FlashOrganizationDeleted); err != nil {
			return err
		}
		return apierrors.RedirectTo(next)
	}
}

// TeamMembersPage lists members. Owners also see the active invite link.
func (h *OrganizationHandler) TeamMembersPage(c *gin.Context) error {
	org := middleware.GetOrganization(c)
	membership := middleware.GetMembership(c)
	ctx := c.Request.Context()

	members, err := h.membershipService.ListMembers(ctx, org.ID)
	if err != nil {
		return err
	}

	page := dto.TeamMembersDTO{
		Organization: dto.ToOrganizationDTO(*org),
		YourRole:     membership.Role,
		Members:      dto.ToOrganizationMemberDTOs(members),
	}

	if membership.IsOwner() {
		link, err := h.inviteLinkService.GetActiveInviteLink(ctx, org.ID)
		switch {
		case err == nil:
			linkDTO := dto.ToInviteLinkDTO(*link, h.baseURL)
			page.InviteLink = &linkDTO
		case !errors.Is(err, services.ErrNoActiveInviteLink):
			return err
		}
	}

	c.JSON(http.StatusOK, page)
	return nil
}

// TeamMembers manages invite links and member roles. Every intent here is
// reserved to owners.
func (h *OrganizationHandler) TeamMembers(c *gin.Context) error {
	intent, err := readIntent(c,
		models.IntentCreateNewInviteLink,
		models.IntentDeactivateInviteLink,
		models.IntentChangeRole,
	)
	if err != nil {
		return err
	}

	org := middleware.GetOrganization(c)
	membership := middleware.GetMembership(c)
	if !membership.IsOwner() {
		return apierrors.Forbidden(apierrors.ReasonMustBeOwner)
	}
	ctx := c.Request.Context()

	switch intent {
	case models.IntentCreateNewInviteLink:
		link, err := h.inviteLinkService.CreateInviteLink(ctx, services.CreateInviteLinkInput{
			OrganizationID: org.ID,
			CreatorID:      membership.UserID,
		})
		if err != nil {
			return serviceError(err)
		}
		c.JSON(http.StatusCreated, dto.ToInviteLinkDTO(*link, h.baseURL))
		return nil

	case models.IntentDeactivateInviteLink:
		err := h.inviteLinkService.DeactivateInviteLink(ctx, services.DeactivateInviteLinkInput{
			OrganizationID: org.ID,
			CallerID:       membership.UserID,
		})
		if err != nil {
			return serviceError(err)
		}
		c.JSON(http.StatusOK, gin.H{"message": "Invite link deactivated"})
		return nil

	default:
		var target dto.ChangeRoleTargetForm
		if err := validation.Bind(c, &target); err != nil {
			return err
		}
		if target.UserID == membership.UserID {
			return apierrors.Forbidden(apierrors.ReasonCannotChangeOwnRole)
		}

		var form dto.ChangeRoleForm
		if err := validation.Bind(c, &form); err != nil {
			return err
		}

		updated, err := h.membershipService.ChangeRole(ctx, services.ChangeRoleInput{
			OrganizationID: org.ID,
			UserID:         membership.UserID,
			TargetUserID:   form.UserID,
			NewRole:        form.Role,
		})
		if err != nil {
			return serviceError(err)
		}
		c.JSON(http.StatusOK, gin.H{
			"user_id": strconv.FormatInt(updated.UserID, 10),
			"role":    updated.EffectiveRole(),
		})
		return nil
	}
}

// BillingPage returns the cached subscription, or null.
func (h *OrganizationHandler) BillingPage(c *gin.Context) error {
	org := middleware.GetOrganization(c)

	sub, err := h.billingService.GetSubscription(c.Request.Context(), org.ID)
	if err != nil {
		return err
	}

	page := dto.BillingDTO{Organization: dto.ToOrganizationDTO(*org)}
	if sub != nil {
		subDTO := dto.ToSubscriptionDTO(*sub)
		page.Subscription = &subDTO
	}
	c.JSON(http.StatusOK, page)
	return nil
}
