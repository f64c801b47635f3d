package bridge

import (
	"context"
	"fmt"

	"zapbridge/internal/domain/message"
	"zapbridge/internal/ports"
	"zapbridge/platform/logger"
)

// InboundRelay orquestra o caminho gateway -> Chatwoot: extração de
// identidade, resolução de contato e conversa, e postagem da mensagem.
type InboundRelay struct {
	logger        *logger.Logger
	chatwoot      ports.ChatwootClient
	gateway       ports.GatewayClient
	contacts      ContactResolver
	conversations ConversationResolver
}

func NewInboundRelay(
	appLogger *logger.Logger,
	chatwootClient ports.ChatwootClient,
	gatewayClient ports.GatewayClient,
	contacts ContactResolver,
	conversations ConversationResolver,
) *InboundRelay {
	return &InboundRelay{
		logger:        appLogger.WithModule("inbound-relay"),
		chatwoot:      chatwootClient,
		gateway:       gatewayClient,
		contacts:      contacts,
		conversations: conversations,
	}
}

// Process trata um evento bruto do gateway. Eventos não entregáveis são
// descartes (nunca erro); message.ErrMalformedPayload sinaliza requisição
// inválida; qualquer outro erro é falha de dependência do Chatwoot.
func (r *InboundRelay) Process(ctx context.Context, raw []byte) (*RelayResult, error) {
	extraction, err := message.Extract(raw)
	if err != nil {
		return nil, err
	}

	if extraction.Ignored() {
		r.logger.DebugWithFields("Inbound event ignored", map[string]interface{}{
			"reason": extraction.Reason,
		})
		return ignored(extraction.Reason), nil
	}

	msg := extraction.Message

	// Melhor esforço: avatar ausente nunca bloqueia a entrega.
	avatarURL := r.gateway.FetchAvatarURL(ctx, msg.SenderJID)

	contactID, err := r.contacts.ResolveOrCreate(ctx, msg.SenderName, msg.SenderPhone, avatarURL)
	if err != nil {
		return nil, fmt.Errorf("inbound relay: %w", err)
	}

	conversationID, err := r.conversations.ResolveOrCreate(ctx, contactID)
	if err != nil {
		return nil, fmt.Errorf("inbound relay: %w", err)
	}

	content := msg.Text
	if msg.IsGroup {
		content = msg.SenderName + ": " + content
	}

	if _, err := r.chatwoot.CreateMessage(ctx, conversationID, content, "incoming"); err != nil {
		return nil, fmt.Errorf("inbound relay: message delivery failed: %w", err)
	}

	r.logger.InfoWithFields("Inbound message delivered", map[string]interface{}{
		"phone":           msg.SenderPhone,
		"contact_id":      contactID,
		"conversation_id": conversationID,
		"is_group":        msg.IsGroup,
	})

	return delivered(), nil
}
