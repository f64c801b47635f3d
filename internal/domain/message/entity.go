package message

import "errors"

// ErrMalformedPayload marca um jsonData aninhado que não pôde ser
// interpretado como JSON. É o único caso tratado como requisição inválida.
var ErrMalformedPayload = errors.New("malformed nested payload")

// InboundMessage é o resultado normalizado de um evento do gateway, já
// classificado como mensagem de chat entregável.
type InboundMessage struct {
	// SenderPhone é a identidade canônica do remetente, somente dígitos.
	SenderPhone string
	// SenderName é o nome de exibição; cai para SenderPhone quando ausente.
	SenderName string
	// Text é o corpo da mensagem ou um placeholder "[<Kind> received]".
	Text string
	// IsGroup indica chat de grupo ou canal de broadcast.
	IsGroup bool
	// SenderJID é o identificador nativo do gateway (com sufixos de
	// dispositivo e domínio), usado na busca de avatar.
	SenderJID string
}

// Extraction é o resultado variante da extração: ou uma mensagem
// normalizada, ou um motivo de descarte. Todo chamador trata os dois casos.
type Extraction struct {
	Message *InboundMessage
	Reason  string
}

// Ignored informa se o evento deve ser descartado silenciosamente.
func (e *Extraction) Ignored() bool {
	return e.Message == nil
}

func ignored(reason string) *Extraction {
	return &Extraction{Reason: reason}
}
