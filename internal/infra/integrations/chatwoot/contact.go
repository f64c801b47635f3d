package chatwoot

import (
	"context"
	"fmt"
	"strings"

	"zapbridge/internal/ports"
	"zapbridge/platform/logger"
)

// ContactSync resolve a identidade de um remetente para um contato do
// Chatwoot. A operação é idempotente: busca antes de criar, então chamadas
// repetidas com o mesmo telefone convergem para o mesmo contato.
type ContactSync struct {
	logger *logger.Logger
	client ports.ChatwootClient
}

func NewContactSync(appLogger *logger.Logger, client ports.ChatwootClient) *ContactSync {
	return &ContactSync{
		logger: appLogger.WithModule("contact-sync"),
		client: client,
	}
}

// ResolveOrCreate retorna o ID de um contato existente para o telefone ou
// cria um novo. Quando avatarURL difere do avatar armazenado, o contato é
// atualizado em melhor esforço: falha no avatar nunca derruba o fluxo.
func (cs *ContactSync) ResolveOrCreate(ctx context.Context, name, phone, avatarURL string) (int, error) {
	query := digitsOf(phone)

	contacts, err := cs.client.SearchContacts(ctx, query)
	if err != nil {
		cs.logger.WarnWithFields("Contact search failed, falling back to create", map[string]interface{}{
			"phone": query,
			"error": err.Error(),
		})
	}

	// A busca do Chatwoot casa por substring; exigir sufixo evita adotar
	// um contato de outro número que apenas contém os mesmos dígitos.
	for _, contact := range contacts {
		if !strings.HasSuffix(digitsOf(contact.PhoneNumber), query) {
			continue
		}

		if avatarURL != "" && avatarURL != contact.AvatarURL {
			if err := cs.client.UpdateContactAvatar(ctx, contact.ID, avatarURL); err != nil {
				cs.logger.WarnWithFields("Failed to refresh contact avatar", map[string]interface{}{
					"contact_id": contact.ID,
					"error":      err.Error(),
				})
			}
		}

		return contact.ID, nil
	}

	createPhone := phone
	if !strings.Contains(phone, "@") {
		createPhone = "+" + query
	}

	contact, err := cs.client.CreateContact(ctx, name, createPhone, avatarURL)
	if err != nil {
		return 0, fmt.Errorf("contact resolution failed: %w", err)
	}

	cs.logger.InfoWithFields("Created Chatwoot contact", map[string]interface{}{
		"contact_id": contact.ID,
		"phone":      createPhone,
	})

	return contact.ID, nil
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
