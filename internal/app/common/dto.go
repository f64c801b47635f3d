package common

const (
	StatusSuccess = "success"
	StatusIgnored = "ignored"
	StatusError   = "error"
)

// WebhookResponse é o corpo devolvido a todo remetente de webhook:
// {"status": "success"|"ignored"|"error", ...}
type WebhookResponse struct {
	Status string `json:"status"`
	Reason string `json:"reason,omitempty"`
	Error  string `json:"error,omitempty"`
}

type HealthResponse struct {
	Message string `json:"message"`
}

func NewSuccessResponse() *WebhookResponse {
	return &WebhookResponse{Status: StatusSuccess}
}

func NewIgnoredResponse(reason string) *WebhookResponse {
	return &WebhookResponse{Status: StatusIgnored, Reason: reason}
}

func NewErrorResponse(message string) *WebhookResponse {
	return &WebhookResponse{Status: StatusError, Error: message}
}
