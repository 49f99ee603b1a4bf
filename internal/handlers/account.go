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

// AccountHandler serves /settings/account.
type AccountHandler struct {
	userService *services.UserService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(userService *services.UserService) *AccountHandler {
	return &AccountHandler{
		userService: userService,
	}
}

// AccountPage returns the signed-in user.
func (h *AccountHandler) AccountPage(c *gin.Context) error {
	c.JSON(http.StatusOK, dto.ToUserDTO(*middleware.GetUser(c)))
	return nil
}

// Account updates or deletes the signed-in user's account.
func (h *AccountHandler) Account(c *gin.Context) error {
	intent, err := readIntent(c, models.IntentUpdate, models.IntentDelete)
	if err != nil {
		return err
	}

	user := middleware.GetUser(c)
	ctx := c.Request.Context()

	if intent == models.IntentDelete {
		if err := h.userService.DeleteAccount(ctx, user.ID); err != nil {
			return serviceError(err)
		}
		if err := middleware.ClearSession(c); err != nil {
			return err
		}
		return apierrors.RedirectTo(constants.LoginPath)
	}

	var form dto.AccountForm
	if err := validation.Bind(c, &form); err != nil {
		return err
	}

	updated, err := h.userService.UpdateAccount(ctx, services.UpdateAccountInput{
		UserID: user.ID,
		Name:   form.Name,
		Email:  form.Email,
	})
	if err != nil {
		return serviceError(err)
	}

	c.JSON(http.StatusOK, dto.ToUserDTO(*updated))
	return nil
}
