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

// InviteLinkHandler serves the public invite link page.
type InviteLinkHandler struct {
	inviteLinkService *services.InviteLinkService
}

// NewInviteLinkHandler creates a new InviteLinkHandler.
func NewInviteLinkHandler(inviteLinkService *services.InviteLinkService) *InviteLinkHandler {
	return &InviteLinkHandler{
		inviteLinkService: inviteLinkService,
	}
}

// InvitationPage describes the organization behind ?token=.
func (h *InviteLinkHandler) InvitationPage(c *gin.Context) error {
	link, err := h.inviteLinkService.ValidateToken(c.Request.Context(), c.Query("token"))
	if err != nil {
		return serviceError(err)
	}

	c.JSON(http.StatusOK, gin.H{
		"invitation": dto.ToInvitationDTO(*link),
	})
	return nil
}

// AcceptInvite redeems a token. Anonymous visitors are sent to register
// first; existing members land on the dashboard without changes.
func (h *InviteLinkHandler) AcceptInvite(c *gin.Context) error {
	if _, err := readIntent(c, models.IntentAcceptInvite); err != nil {
		return err
	}

	var form dto.AcceptInviteForm
	if err := validation.Bind(c, &form); err != nil {
		return err
	}
	if form.Token == "" {
		form.Token = c.Query("token")
	}

	ctx := c.Request.Context()
	if _, err := h.inviteLinkService.ValidateToken(ctx, form.Token); err != nil {
		return serviceError(err)
	}

	userID, ok := middleware.GetUserID(c)
	if !ok {
		return apierrors.RedirectTo(registerPath(form.Token))
	}

	result, err := h.inviteLinkService.AcceptInvite(ctx, services.AcceptInviteInput{
		Token:  form.Token,
		UserID: userID,
	})
	if err != nil {
		return serviceError(err)
	}

	notice := constants.FlashJoinedOrganization
	if result.AlreadyMember {
		notice = constants.FlashAlreadyMember
	}
	if err := middleware.AddFlash(c, notice); err != nil {
		return err
	}
	return apierrors.RedirectTo(services.DashboardPath(result.Organization.Slug))
}
