package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"zapbridge/platform/config"
	"zapbridge/platform/container"
	"zapbridge/platform/logger"
)

const (
	appName    = "zapbridge"
	appVersion = "1.0.0"
)

func main() {
	printBanner()

	// Carregar configuração; falha rápido se algo obrigatório faltar
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Inicializar logger
	log := logger.NewFromAppConfig(cfg)
	log.InfoWithFields("Starting zapbridge application", map[string]interface{}{
		"version": appVersion,
		"port":    cfg.Port,
	})

	// Inicializar container de DI
	diContainer := container.New(cfg, log)
	app := diContainer.App()

	// Canal para capturar sinais do sistema
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	// Canal para erros da aplicação
	errChan := make(chan error, 1)

	// Iniciar servidor HTTP em goroutine
	go func() {
		log.InfoWithFields("Starting HTTP server", map[string]interface{}{
			"address": cfg.GetServerAddress(),
		})

		if err := app.Listen(cfg.GetServerAddress()); err != nil {
			errChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Aguardar sinal de parada ou erro
	select {
	case sig := <-sigChan:
		log.InfoWithFields("Received shutdown signal", map[string]interface{}{
			"signal": sig.String(),
		})
	case err := <-errChan:
		log.ErrorWithFields("Application error", map[string]interface{}{
			"error": err.Error(),
		})
	}

	// Graceful shutdown
	log.Info("Initiating graceful shutdown...")
	if err := app.ShutdownWithTimeout(30 * time.Second); err != nil {
		log.ErrorWithFields("Error shutting down HTTP server", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Application shutdown completed successfully")
}

// printBanner exibe o banner da aplicação
func printBanner() {
	banner := `
 ███████╗ █████╗ ██████╗ ██████╗ ██████╗ ██╗██████╗  ██████╗ ███████╗
 ╚══███╔╝██╔══██╗██╔══██╗██╔══██╗██╔══██╗██║██╔══██╗██╔════╝ ██╔════╝
   ███╔╝ ███████║██████╔╝██████╔╝██████╔╝██║██║  ██║██║  ███╗█████╗
  ███╔╝  ██╔══██║██╔═══╝ ██╔══██╗██╔══██╗██║██║  ██║██║   ██║██╔══╝
 ███████╗██║  ██║██║     ██████╔╝██║  ██║██║██████╔╝╚██████╔╝███████╗
 ╚══════╝╚═╝  ╚═╝╚═╝     ╚═════╝ ╚═╝  ╚═╝╚═╝╚═════╝  ╚═════╝ ╚══════╝

 WhatsApp <-> Chatwoot Webhook Bridge
 Version: %s`

	fmt.Printf(banner+"\n", appVersion)
}
