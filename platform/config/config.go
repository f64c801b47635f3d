package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// Config agrupa toda a configuração do processo, carregada uma única vez
// no startup e passada explicitamente para os componentes.
type Config struct {
	Port       string
	ServerHost string

	Log LogConfig

	Chatwoot ChatwootConfig
	Wuzapi   WuzapiConfig
}

type LogConfig struct {
	Level  string
	Format string
	Output string
	Caller bool
}

// ChatwootConfig aponta para a conta/inbox do Chatwoot que recebe as conversas.
type ChatwootConfig struct {
	URL       string `validate:"required,url"`
	AccountID string `validate:"required"`
	InboxID   int    `validate:"required,gt=0"`
	Token     string `validate:"required"`
}

// WuzapiConfig aponta para o gateway WhatsApp (wuzapi) usado para envio e avatares.
type WuzapiConfig struct {
	URL      string `validate:"required,url"`
	Token    string `validate:"required"`
	Instance string `validate:"required"`
}

// Load lê as variáveis de ambiente (com .env opcional) e valida as
// configurações obrigatórias. Falha rápido: qualquer campo ausente
// derruba o startup.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		_ = err
	}

	inboxID, err := strconv.Atoi(getEnv("CHATWOOT_INBOX_ID", "0"))
	if err != nil {
		return nil, fmt.Errorf("CHATWOOT_INBOX_ID must be numeric: %w", err)
	}

	cfg := &Config{
		Port:       getEnv("PORT", "8080"),
		ServerHost: getEnv("SERVER_HOST", "http://localhost:8080"),

		Log: LogConfig{
			Level:  getEnv("LOG_LEVEL", "info"),
			Format: getEnv("LOG_FORMAT", "console"),
			Output: getEnv("LOG_OUTPUT", "stdout"),
			Caller: getEnv("LOG_CALLER", "false") == "true",
		},

		Chatwoot: ChatwootConfig{
			URL:       strings.TrimSuffix(getEnv("CHATWOOT_URL", ""), "/"),
			AccountID: getEnv("CHATWOOT_ACCOUNT_ID", ""),
			InboxID:   inboxID,
			Token:     getEnv("CHATWOOT_API_TOKEN", ""),
		},

		Wuzapi: WuzapiConfig{
			URL:      strings.TrimSuffix(getEnv("WUZAPI_URL", ""), "/"),
			Token:    getEnv("WUZAPI_API_TOKEN", ""),
			Instance: getEnv("WUZAPI_INSTANCE", ""),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	v := validator.New()

	if err := v.Struct(c.Chatwoot); err != nil {
		return fmt.Errorf("chatwoot configuration: %w", describeValidationError(err))
	}
	if err := v.Struct(c.Wuzapi); err != nil {
		return fmt.Errorf("wuzapi configuration: %w", describeValidationError(err))
	}

	return nil
}

// describeValidationError converte os erros do validator em uma mensagem
// que nomeia os campos faltantes.
func describeValidationError(err error) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	fields := make([]string, 0, len(validationErrors))
	for _, fieldErr := range validationErrors {
		fields = append(fields, fieldErr.Field())
	}

	return fmt.Errorf("missing or invalid fields: %s", strings.Join(fields, ", "))
}

func (c *Config) GetServerAddress() string {
	return ":" + c.Port
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
