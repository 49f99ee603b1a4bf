package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	apierrors "github.com/yukikurage/saas-starter-api/internal/errors"
	"github.com/yukikurage/saas-starter-api/internal/services"
	"go.uber.org/zap"
)

// maxWebhookBodyBytes bounds the billing webhook payload.
const maxWebhookBodyBytes = 65536

// BillingWebhookHandler receives billing provider events.
type BillingWebhookHandler struct {
	billingService *services.BillingService
	logger         *zap.Logger
}

// NewBillingWebhookHandler creates a new BillingWebhookHandler.
func NewBillingWebhookHandler(billingService *services.BillingService, logger *zap.Logger) *BillingWebhookHandler {
	return &BillingWebhookHandler{
		billingService: billingService,
		logger:         logger,
	}
}

// Webhook verifies and applies a billing event.
func (h *BillingWebhookHandler) Webhook(c *gin.Context) error {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBodyBytes)
	payload, err := c.GetRawData()
	if err != nil {
		return apierrors.BadRequest("Failed to read request body", nil)
	}

	event, err := h.billingService.ConstructEvent(payload, c.GetHeader("Stripe-Signature"))
	if err != nil {
		return apierrors.BadRequest(err.Error(), nil)
	}

	if err := h.billingService.HandleEvent(c.Request.Context(), event); err != nil {
		if !errors.Is(err, services.ErrBillingOrganizationNotFound) {
			return err
		}
		h.logger.Warn("billing event for unknown organization",
			zap.String("event_id", event.ID),
			zap.String("type", string(event.Type)),
		)
	}

	c.JSON(http.StatusOK, gin.H{"received": true})
	return nil
}
