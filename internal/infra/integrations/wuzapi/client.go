package wuzapi

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"

	"zapbridge/platform/config"
	"zapbridge/platform/logger"
)

const requestTimeout = 15 * time.Second

// Endpoints de avatar tentados em sequência: o caminho atual e o mount
// antigo sob /api usado por versões anteriores do gateway.
var avatarEndpoints = []string{"/user/avatar", "/api/user/avatar"}

// Client implements the ports.GatewayClient interface against a
// wuzapi-style WhatsApp gateway.
type Client struct {
	http     *resty.Client
	logger   *logger.Logger
	instance string
}

// NewClient creates a new gateway API client
func NewClient(cfg config.WuzapiConfig, appLogger *logger.Logger) *Client {
	httpClient := resty.New().
		SetBaseURL(cfg.URL).
		SetHeader("token", cfg.Token).
		SetHeader("User-Agent", "zapbridge/"+cfg.Instance).
		SetTimeout(requestTimeout)

	return &Client{
		http:     httpClient,
		logger:   appLogger.WithModule("wuzapi").WithField("instance", cfg.Instance),
		instance: cfg.Instance,
	}
}

type sendTextRequest struct {
	Phone string `json:"Phone"`
	Body  string `json:"Body"`
}

type avatarRequest struct {
	Phone   string `json:"Phone"`
	Preview bool   `json:"Preview"`
}

type avatarResponse struct {
	Data struct {
		URL string `json:"URL"`
	} `json:"data"`
	URL string `json:"URL"`
}

// SendText delivers an agent reply to the given digits-only phone number
func (c *Client) SendText(ctx context.Context, phone, body string) error {
	resp, err := c.http.R().
		SetContext(ctx).
		SetBody(sendTextRequest{Phone: phone, Body: body}).
		Post("/chat/send/text")
	if err != nil {
		return fmt.Errorf("failed to send text: %w", err)
	}

	if resp.IsError() {
		return fmt.Errorf("gateway send failed with status %d: %s", resp.StatusCode(), resp.String())
	}

	c.logger.DebugWithFields("Sent text through gateway", map[string]interface{}{
		"phone": phone,
	})

	return nil
}

// FetchAvatarURL looks up the sender's profile picture URL. Best effort:
// every failure is logged and reported as an empty URL, never an error.
func (c *Client) FetchAvatarURL(ctx context.Context, jid string) string {
	for _, endpoint := range avatarEndpoints {
		var result avatarResponse

		resp, err := c.http.R().
			SetContext(ctx).
			SetBody(avatarRequest{Phone: jid, Preview: false}).
			SetResult(&result).
			Post(endpoint)
		if err != nil {
			c.logger.DebugWithFields("Avatar lookup failed", map[string]interface{}{
				"endpoint": endpoint,
				"error":    err.Error(),
			})
			continue
		}
		if resp.IsError() {
			c.logger.DebugWithFields("Avatar lookup rejected", map[string]interface{}{
				"endpoint": endpoint,
				"status":   resp.StatusCode(),
			})
			continue
		}

		if result.Data.URL != "" {
			return result.Data.URL
		}
		if result.URL != "" {
			return result.URL
		}
	}

	return ""
}
