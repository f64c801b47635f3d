package chatwoot

import (
	"context"
	"fmt"

	"zapbridge/internal/ports"
	"zapbridge/platform/logger"
)

// ConversationManager resolve a conversa aberta de um contato. Sem cache:
// a lista é consultada a cada chamada, e a primeira conversa retornada
// pelo Chatwoot vence.
type ConversationManager struct {
	logger *logger.Logger
	client ports.ChatwootClient
}

func NewConversationManager(appLogger *logger.Logger, client ports.ChatwootClient) *ConversationManager {
	return &ConversationManager{
		logger: appLogger.WithModule("conversation-manager"),
		client: client,
	}
}

// ResolveOrCreate retorna o ID da primeira conversa listada para o contato
// ou cria uma nova no inbox configurado.
func (cm *ConversationManager) ResolveOrCreate(ctx context.Context, contactID int) (int, error) {
	conversations, err := cm.client.ListContactConversations(ctx, contactID)
	if err != nil {
		return 0, fmt.Errorf("conversation resolution failed: %w", err)
	}

	if len(conversations) > 0 {
		return conversations[0].ID, nil
	}

	conversation, err := cm.client.CreateConversation(ctx, contactID)
	if err != nil {
		return 0, fmt.Errorf("conversation resolution failed: %w", err)
	}

	cm.logger.InfoWithFields("Created Chatwoot conversation", map[string]interface{}{
		"contact_id":      contactID,
		"conversation_id": conversation.ID,
	})

	return conversation.ID, nil
}
