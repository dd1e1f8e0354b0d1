package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"diplomakids/internal/services"
	"diplomakids/pkg/utils"
)

const stripeSignatureHeader = "Stripe-Signature"

type WebhookController struct {
	webhookService services.WebhookServiceInterface
}

func NewWebhookController(webhookService services.WebhookServiceInterface) *WebhookController {
	return &WebhookController{webhookService: webhookService}
}

// HandleStripe godoc
// @Summary Stripe webhook receiver
// @Description Settles contributions on payment_intent.succeeded. Other events are acknowledged.
// @Tags Webhooks
// @Accept json
// @Produce json
// @Param Stripe-Signature header string false "Stripe signature"
// @Success 200 {object} utils.APIResponse
// @Failure 400 {object} utils.APIResponse
// @Router /webhooks/stripe [post]
func (w *WebhookController) HandleStripe(c *gin.Context) {
	payload, err := c.GetRawData()
	if err != nil {
		utils.RespondError(c, http.StatusBadRequest, "Unable to read request body")
		return
	}

	result, err := w.webhookService.HandleStripeEvent(c.Request.Context(), payload, c.GetHeader(stripeSignatureHeader))
	if err != nil {
		utils.HandleServiceError(c, err)
		return
	}
	utils.RespondSuccess(c, result, "")
}
