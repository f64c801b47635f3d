package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"zapbridge/internal/app/bridge"
	"zapbridge/internal/app/common"
	"zapbridge/internal/domain/message"
	"zapbridge/platform/logger"
)

type WebhookHandler struct {
	logger   *logger.Logger
	inbound  bridge.InboundUseCase
	outbound bridge.OutboundUseCase
}

func NewWebhookHandler(appLogger *logger.Logger, inbound bridge.InboundUseCase, outbound bridge.OutboundUseCase) *WebhookHandler {
	return &WebhookHandler{
		logger:   appLogger.WithModule("webhook-handler"),
		inbound:  inbound,
		outbound: outbound,
	}
}

// ReceiveGatewayEvent trata o webhook do gateway WhatsApp. Eventos
// descartáveis respondem 200 com status ignored: o gateway não deve ver
// erro para tráfego rotineiro.
func (h *WebhookHandler) ReceiveGatewayEvent(c *fiber.Ctx) error {
	result, err := h.inbound.Process(c.Context(), c.Body())
	if err != nil {
		if errors.Is(err, message.ErrMalformedPayload) {
			return c.Status(fiber.StatusBadRequest).JSON(common.NewErrorResponse(err.Error()))
		}

		h.logger.ErrorWithFields("Failed to process gateway event", map[string]interface{}{
			"error": err.Error(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(common.NewErrorResponse("failed to process gateway event"))
	}

	if result.Ignored() {
		return c.Status(fiber.StatusOK).JSON(common.NewIgnoredResponse(result.Reason))
	}

	return c.Status(fiber.StatusOK).JSON(common.NewSuccessResponse())
}

// ReceiveChatwootEvent trata o webhook do Chatwoot com respostas de agente.
func (h *WebhookHandler) ReceiveChatwootEvent(c *fiber.Ctx) error {
	var event bridge.OutboundEvent
	if err := c.BodyParser(&event); err != nil {
		h.logger.Error("Failed to parse Chatwoot webhook: " + err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(common.NewErrorResponse("invalid request body"))
	}

	result, err := h.outbound.Process(c.Context(), &event)
	if err != nil {
		h.logger.ErrorWithFields("Failed to process Chatwoot event", map[string]interface{}{
			"error": err.Error(),
		})
		return c.Status(fiber.StatusInternalServerError).JSON(common.NewErrorResponse("failed to process chatwoot event"))
	}

	if result.Ignored() {
		return c.Status(fiber.StatusOK).JSON(common.NewIgnoredResponse(result.Reason))
	}

	return c.Status(fiber.StatusOK).JSON(common.NewSuccessResponse())
}
