package bridge

import (
	"context"
	"fmt"
	"strings"

	"zapbridge/internal/ports"
	"zapbridge/platform/logger"
)

const eventMessageCreated = "message_created"

// Tipos de remetente que representam um agente respondendo. Mensagens
// "incoming" injetadas pela própria ponte voltam com outro sender.type;
// filtrá-las evita o loop de eco.
var agentSenderTypes = map[string]bool{
	"agent_bot": true,
	"user":      true,
}

// OutboundRelay orquestra o caminho Chatwoot -> gateway: filtra o evento,
// resolve o telefone de destino e repassa o texto.
type OutboundRelay struct {
	logger   *logger.Logger
	chatwoot ports.ChatwootClient
	gateway  ports.GatewayClient
}

func NewOutboundRelay(appLogger *logger.Logger, chatwootClient ports.ChatwootClient, gatewayClient ports.GatewayClient) *OutboundRelay {
	return &OutboundRelay{
		logger:   appLogger.WithModule("outbound-relay"),
		chatwoot: chatwootClient,
		gateway:  gatewayClient,
	}
}

// Process trata um evento do Chatwoot. Os filtros são aplicados em ordem;
// o primeiro que casar descarta o evento com seu motivo.
func (r *OutboundRelay) Process(ctx context.Context, event *OutboundEvent) (*RelayResult, error) {
	if event.Event != "" && event.Event != eventMessageCreated {
		return ignored("event is not message_created"), nil
	}

	if event.Private || event.MessageType != "outgoing" {
		return ignored("private or not outgoing message"), nil
	}

	if !agentSenderTypes[event.Sender.Type] {
		return ignored("sender is not an agent"), nil
	}

	phone := r.destinationPhone(ctx, event)
	if phone == "" {
		return ignored("destination phone undetermined"), nil
	}
	if strings.Contains(phone, "@g.us") || strings.Contains(phone, "@broadcast") {
		return ignored("destination is a group"), nil
	}

	digits := digitsOf(phone)
	if digits == "" {
		return ignored("destination phone undetermined"), nil
	}

	if err := r.gateway.SendText(ctx, digits, event.Content); err != nil {
		return nil, fmt.Errorf("outbound relay: %w", err)
	}

	r.logger.InfoWithFields("Outbound message delivered", map[string]interface{}{
		"phone":           digits,
		"conversation_id": event.Conversation.ID,
	})

	return delivered(), nil
}

// destinationPhone lê o telefone do payload na ordem documentada e, em
// último caso, busca o detalhe da conversa no Chatwoot.
func (r *OutboundRelay) destinationPhone(ctx context.Context, event *OutboundEvent) string {
	if phone := event.Conversation.Meta.Sender.PhoneNumber; phone != "" {
		return phone
	}
	if phone := event.Conversation.Contact.PhoneNumber; phone != "" {
		return phone
	}
	if phone := event.Sender.PhoneNumber; phone != "" {
		return phone
	}

	if event.Conversation.ID == 0 {
		return ""
	}

	detail, err := r.chatwoot.GetConversation(ctx, event.Conversation.ID)
	if err != nil {
		r.logger.WarnWithFields("Conversation lookup for destination phone failed", map[string]interface{}{
			"conversation_id": event.Conversation.ID,
			"error":           err.Error(),
		})
		return ""
	}

	if phone := detail.Meta.Sender.PhoneNumber; phone != "" {
		return phone
	}
	if phone := detail.Meta.Contact.PhoneNumber; phone != "" {
		return phone
	}
	return detail.Contact.PhoneNumber
}

func digitsOf(value string) string {
	var digits strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}
