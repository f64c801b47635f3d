package ports

import "context"

// ChatwootClient cobre as operações da API do Chatwoot usadas pela ponte.
// O Chatwoot é dono de todo o estado; a ponte nunca guarda cópia local.
type ChatwootClient interface {
	SearchContacts(ctx context.Context, query string) ([]ChatwootContact, error)
	CreateContact(ctx context.Context, name, phone, avatarURL string) (*ChatwootContact, error)
	UpdateContactAvatar(ctx context.Context, contactID int, avatarURL string) error

	ListContactConversations(ctx context.Context, contactID int) ([]ChatwootConversation, error)
	CreateConversation(ctx context.Context, contactID int) (*ChatwootConversation, error)
	GetConversation(ctx context.Context, conversationID int) (*ChatwootConversationDetail, error)

	CreateMessage(ctx context.Context, conversationID int, content, messageType string) (*ChatwootMessage, error)
}

type ChatwootContact struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phone_number"`
	Identifier  string `json:"identifier,omitempty"`
	AvatarURL   string `json:"avatar_url,omitempty"`
}

type ChatwootConversation struct {
	ID      int    `json:"id"`
	InboxID int    `json:"inbox_id"`
	Status  string `json:"status"`
}

// ChatwootConversationDetail carrega os sub-objetos de onde o telefone de
// destino pode ser extraído quando o webhook não o traz.
type ChatwootConversationDetail struct {
	ID   int `json:"id"`
	Meta struct {
		Sender struct {
			PhoneNumber string `json:"phone_number"`
			Identifier  string `json:"identifier"`
		} `json:"sender"`
		Contact struct {
			PhoneNumber string `json:"phone_number"`
		} `json:"contact"`
	} `json:"meta"`
	Contact struct {
		PhoneNumber string `json:"phone_number"`
	} `json:"contact"`
}

type ChatwootMessage struct {
	ID          int    `json:"id"`
	Content     string `json:"content"`
	MessageType int    `json:"message_type"`
}
