package routers

import (
	"github.com/gofiber/fiber/v2"

	"zapbridge/internal/app/bridge"
	"zapbridge/internal/infra/http/handlers"
	"zapbridge/internal/infra/http/middleware"
	"zapbridge/platform/logger"
)

func SetupRoutes(app *fiber.App, appLogger *logger.Logger, inbound bridge.InboundUseCase, outbound bridge.OutboundUseCase) {
	app.Use(middleware.RequestID())
	app.Use(middleware.HTTPLogger(appLogger))

	healthHandler := handlers.NewHealthHandler(appLogger)
	app.Get("/", healthHandler.GetRoot)
	app.Get("/health", healthHandler.GetHealth)

	webhookHandler := handlers.NewWebhookHandler(appLogger, inbound, outbound)

	app.Post("/webhook/wuzapi", webhookHandler.ReceiveGatewayEvent)
	app.Post("/webhook/wu-zapi", webhookHandler.ReceiveGatewayEvent) // alias de compatibilidade

	app.Post("/webhook/chatwoot", webhookHandler.ReceiveChatwootEvent)
	app.Post("/webhook/chat-woot", webhookHandler.ReceiveChatwootEvent) // alias de compatibilidade
}
