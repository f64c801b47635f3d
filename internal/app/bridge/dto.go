package bridge

import (
	"context"

	"zapbridge/internal/app/common"
)

// RelayResult é o desfecho de um evento aceito pelo pipeline: entregue ou
// descartado com motivo. Falhas de dependência viram erro, nunca resultado.
type RelayResult struct {
	Status string
	Reason string
}

func delivered() *RelayResult {
	return &RelayResult{Status: common.StatusSuccess}
}

func ignored(reason string) *RelayResult {
	return &RelayResult{Status: common.StatusIgnored, Reason: reason}
}

// Ignored informa se o evento foi descartado.
func (r *RelayResult) Ignored() bool {
	return r.Status == common.StatusIgnored
}

// InboundUseCase processa eventos vindos do gateway WhatsApp.
type InboundUseCase interface {
	Process(ctx context.Context, raw []byte) (*RelayResult, error)
}

// OutboundUseCase processa eventos vindos do Chatwoot.
type OutboundUseCase interface {
	Process(ctx context.Context, event *OutboundEvent) (*RelayResult, error)
}

// OutboundEvent é o payload do webhook message_created do Chatwoot. Os
// sub-objetos cobrem os lugares onde o telefone de destino pode estar.
type OutboundEvent struct {
	Event       string `json:"event"`
	Content     string `json:"content"`
	MessageType string `json:"message_type"`
	Private     bool   `json:"private"`

	Conversation struct {
		ID   int `json:"id"`
		Meta struct {
			Sender struct {
				PhoneNumber string `json:"phone_number"`
				Identifier  string `json:"identifier"`
			} `json:"sender"`
		} `json:"meta"`
		Contact struct {
			PhoneNumber string `json:"phone_number"`
		} `json:"contact"`
	} `json:"conversation"`

	Sender struct {
		Type        string `json:"type"`
		PhoneNumber string `json:"phone_number"`
	} `json:"sender"`
}

// ContactResolver resolve uma identidade de remetente para um contato.
type ContactResolver interface {
	ResolveOrCreate(ctx context.Context, name, phone, avatarURL string) (int, error)
}

// ConversationResolver resolve a conversa aberta de um contato.
type ConversationResolver interface {
	ResolveOrCreate(ctx context.Context, contactID int) (int, error)
}
