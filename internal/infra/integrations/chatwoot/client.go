package chatwoot

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"zapbridge/internal/ports"
	"zapbridge/platform/config"
	"zapbridge/platform/logger"
)

const requestTimeout = 15 * time.Second

// Client implements the ports.ChatwootClient interface
type Client struct {
	httpClient *http.Client
	logger     *logger.Logger
	baseURL    string
	token      string
	accountID  string
	inboxID    int
}

// NewClient creates a new Chatwoot API client
func NewClient(cfg config.ChatwootConfig, appLogger *logger.Logger) *Client {
	return &Client{
		baseURL:   cfg.URL,
		token:     cfg.Token,
		accountID: cfg.AccountID,
		inboxID:   cfg.InboxID,
		httpClient: &http.Client{
			Timeout: requestTimeout,
		},
		logger: appLogger.WithModule("chatwoot"),
	}
}

// SearchContacts searches the contact directory by free-text query
func (c *Client) SearchContacts(ctx context.Context, query string) ([]ports.ChatwootContact, error) {
	var response struct {
		Payload []ports.ChatwootContact `json:"payload"`
	}

	endpoint := fmt.Sprintf("/contacts/search?q=%s", url.QueryEscape(query))
	if err := c.makeRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to search contacts: %w", err)
	}

	return response.Payload, nil
}

// CreateContact creates a new contact bound to the configured inbox
func (c *Client) CreateContact(ctx context.Context, name, phone, avatarURL string) (*ports.ChatwootContact, error) {
	payload := map[string]interface{}{
		"name":         name,
		"phone_number": phone,
		"inbox_id":     c.inboxID,
	}
	if avatarURL != "" {
		payload["avatar_url"] = avatarURL
	}

	var response struct {
		Payload struct {
			Contact ports.ChatwootContact `json:"contact"`
		} `json:"payload"`
		ID int `json:"id"`
	}
	if err := c.makeRequest(ctx, "POST", "/contacts", payload, &response); err != nil {
		return nil, fmt.Errorf("failed to create contact: %w", err)
	}

	// Chatwoot versions differ on the create response envelope
	if response.Payload.Contact.ID != 0 {
		return &response.Payload.Contact, nil
	}
	return &ports.ChatwootContact{ID: response.ID, Name: name, PhoneNumber: phone, AvatarURL: avatarURL}, nil
}

// UpdateContactAvatar updates the contact's avatar URL
func (c *Client) UpdateContactAvatar(ctx context.Context, contactID int, avatarURL string) error {
	payload := map[string]interface{}{
		"avatar_url": avatarURL,
	}

	endpoint := fmt.Sprintf("/contacts/%d", contactID)
	if err := c.makeRequest(ctx, "PUT", endpoint, payload, nil); err != nil {
		return fmt.Errorf("failed to update contact avatar: %w", err)
	}

	return nil
}

// ListContactConversations lists all conversations for a contact
func (c *Client) ListContactConversations(ctx context.Context, contactID int) ([]ports.ChatwootConversation, error) {
	var response struct {
		Payload []ports.ChatwootConversation `json:"payload"`
	}

	endpoint := fmt.Sprintf("/contacts/%d/conversations", contactID)
	if err := c.makeRequest(ctx, "GET", endpoint, nil, &response); err != nil {
		return nil, fmt.Errorf("failed to list contact conversations: %w", err)
	}

	return response.Payload, nil
}

// CreateConversation creates a new conversation on the configured inbox
func (c *Client) CreateConversation(ctx context.Context, contactID int) (*ports.ChatwootConversation, error) {
	payload := map[string]interface{}{
		"contact_id": contactID,
		"inbox_id":   c.inboxID,
	}

	var conversation ports.ChatwootConversation
	if err := c.makeRequest(ctx, "POST", "/conversations", payload, &conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return &conversation, nil
}

// GetConversation fetches the conversation detail, including the contact
// sub-objects the outbound relay reads the destination phone from
func (c *Client) GetConversation(ctx context.Context, conversationID int) (*ports.ChatwootConversationDetail, error) {
	var detail ports.ChatwootConversationDetail

	endpoint := fmt.Sprintf("/conversations/%d", conversationID)
	if err := c.makeRequest(ctx, "GET", endpoint, nil, &detail); err != nil {
		return nil, fmt.Errorf("failed to get conversation: %w", err)
	}

	return &detail, nil
}

// CreateMessage posts a message to a conversation. messageType is
// "incoming" (from the WhatsApp user) or "outgoing" (from an agent).
func (c *Client) CreateMessage(ctx context.Context, conversationID int, content, messageType string) (*ports.ChatwootMessage, error) {
	payload := map[string]interface{}{
		"content":      content,
		"message_type": messageType,
	}

	var message ports.ChatwootMessage
	endpoint := fmt.Sprintf("/conversations/%d/messages", conversationID)
	if err := c.makeRequest(ctx, "POST", endpoint, payload, &message); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}

	return &message, nil
}

// makeRequest makes an HTTP request to the Chatwoot API
func (c *Client) makeRequest(ctx context.Context, method, endpoint string, payload interface{}, result interface{}) error {
	requestURL := fmt.Sprintf("%s/api/v1/accounts/%s%s", c.baseURL, c.accountID, endpoint)

	var body io.Reader
	if payload != nil {
		jsonData, err := json.Marshal(payload)
		if err != nil {
			return fmt.Errorf("failed to marshal payload: %w", err)
		}
		body = bytes.NewBuffer(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, requestURL, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("api_access_token", c.token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to make request: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		bodyBytes, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("API request failed with status %d (failed to read response body: %w)", resp.StatusCode, err)
		}
		return fmt.Errorf("API request failed with status %d: %s", resp.StatusCode, string(bodyBytes))
	}

	if result != nil {
		if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
