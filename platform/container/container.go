package container

import (
	"github.com/gofiber/fiber/v2"

	"zapbridge/internal/app/bridge"
	"zapbridge/internal/infra/http/routers"
	"zapbridge/internal/infra/integrations/chatwoot"
	"zapbridge/internal/infra/integrations/wuzapi"
	"zapbridge/platform/config"
	"zapbridge/platform/logger"
)

// Container é o container de Dependency Injection da ponte. Tudo aqui é
// imutável após a construção; nenhum componente guarda estado entre
// requisições.
type Container struct {
	config *config.Config
	logger *logger.Logger
	app    *fiber.App

	chatwootClient *chatwoot.Client
	gatewayClient  *wuzapi.Client
	inbound        *bridge.InboundRelay
	outbound       *bridge.OutboundRelay
}

// New cria uma nova instância do container
func New(cfg *config.Config, appLogger *logger.Logger) *Container {
	chatwootClient := chatwoot.NewClient(cfg.Chatwoot, appLogger)
	gatewayClient := wuzapi.NewClient(cfg.Wuzapi, appLogger)

	contacts := chatwoot.NewContactSync(appLogger, chatwootClient)
	conversations := chatwoot.NewConversationManager(appLogger, chatwootClient)

	inbound := bridge.NewInboundRelay(appLogger, chatwootClient, gatewayClient, contacts, conversations)
	outbound := bridge.NewOutboundRelay(appLogger, chatwootClient, gatewayClient)

	app := fiber.New(fiber.Config{
		AppName:               "zapbridge",
		DisableStartupMessage: true,
	})

	routers.SetupRoutes(app, appLogger, inbound, outbound)

	appLogger.Info("Dependency injection container initialized successfully")

	return &Container{
		config:         cfg,
		logger:         appLogger,
		app:            app,
		chatwootClient: chatwootClient,
		gatewayClient:  gatewayClient,
		inbound:        inbound,
		outbound:       outbound,
	}
}

// App retorna a aplicação fiber com as rotas montadas
func (c *Container) App() *fiber.App {
	return c.app
}
