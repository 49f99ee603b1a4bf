package handlers

import (
	"errors"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/saas-starter-api/internal/constants"
	"github.com/yukikurage/saas-starter-api/internal/dto"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/middleware"
	"github.com/yukikurage/saas-starter-api/internal/services"
	"github.com/yukikurage/saas-starter-api/internal/utils"
	"github.com/yukikurage/saas-starter-api/internal/validation"
)

// AuthHandler coordinates authentication-related HTTP handlers.
type AuthHandler struct {
	authService       *services.AuthService
	inviteLinkService *services.InviteLinkService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, inviteLinkService *services.InviteLinkService) *AuthHandler {
	return &AuthHandler{
		authService:       authService,
		inviteLinkService: inviteLinkService,
	}
}

// Root sends visitors to their organizations or to the login page.
func (h *AuthHandler) Root(c *gin.Context) error {
	if _, ok := middleware.GetUserID(c); ok {
		return apierrors.RedirectTo(constants.OrganizationsPath)
	}
	return apierrors.RedirectTo(constants.LoginPath)
}

// LoginPage echoes where the user goes after signing in.
func (h *AuthHandler) LoginPage(c *gin.Context) error {
	c.JSON(http.StatusOK, gin.H{
		"redirectTo": utils.SafeRedirect(c.Query(constants.RedirectToParam), constants.OrganizationsPath),
	})
	return nil
}

// Login authenticates a user and initializes the session.
func (h *AuthHandler) Login(c *gin.Context) error {
	var form dto.LoginForm
	if err := validation.Bind(c, &form); err != nil {
		return err
	}
	if form.RedirectTo == "" {
		form.RedirectTo = c.Query(constants.RedirectToParam)
	}

	user, err := h.authService.Login(c.Request.Context(), services.LoginInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return serviceError(err)
	}

	if err := middleware.SetSessionUser(c, user.ID); err != nil {
		return err
	}
	return apierrors.RedirectTo(utils.SafeRedirect(form.RedirectTo, constants.OrganizationsPath))
}

// RegisterPage shows the invitation being accepted, if any.
func (h *AuthHandler) RegisterPage(c *gin.Context) error {
	token := c.Query("token")
	if token == "" {
		c.JSON(http.StatusOK, gin.H{})
		return nil
	}

	link, err := h.inviteLinkService.ValidateToken(c.Request.Context(), token)
	if err != nil {
		if errors.Is(err, services.ErrInvalidToken) {
			c.JSON(http.StatusOK, gin.H{})
			return nil
		}
		return err
	}

	c.JSON(http.StatusOK, gin.H{
		"invitation": dto.ToInvitationDTO(*link),
	})
	return nil
}

// Register creates an account, signs it in and accepts the invite link
// the user arrived with.
func (h *AuthHandler) Register(c *gin.Context) error {
	var form dto.RegisterForm
	if err := validation.Bind(c, &form); err != nil {
		return err
	}
	if form.Token == "" {
		form.Token = c.Query("token")
	}

	ctx := c.Request.Context()
	user, err := h.authService.Register(ctx, services.RegisterInput{
		Email:    form.Email,
		Password: form.Password,
	})
	if err != nil {
		return serviceError(err)
	}

	if err := middleware.SetSessionUser(c, user.ID); err != nil {
		return err
	}

	if form.Token != "" {
		_, err := h.inviteLinkService.AcceptInvite(ctx, services.AcceptInviteInput{
			Token:  form.Token,
			UserID: user.ID,
		})
		switch {
		case err == nil:
			if err := middleware.AddFlash(c, constants.FlashJoinedOrganization); err != nil {
				return err
			}
		case !errors.Is(err, services.ErrInvalidToken):
			return err
		}
	}

	return apierrors.RedirectTo(constants.OnboardingUserAccountPath)
}

// Logout removes the authentication session.
func (h *AuthHandler) Logout(c *gin.Context) error {
	if err := middleware.ClearSession(c); err != nil {
		return err
	}
	return apierrors.RedirectTo(constants.LoginPath)
}

func registerPath(token string) string {
	q := url.Values{}
	q.Set("token", token)
	return constants.RegisterPath + "?" + q.Encode()
}
