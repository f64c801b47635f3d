package ports

import "context"

// GatewayClient cobre as chamadas emitidas pela ponte contra o gateway
// WhatsApp (wuzapi).
type GatewayClient interface {
	// SendText entrega o texto de uma resposta de agente ao número informado
	// (somente dígitos).
	SendText(ctx context.Context, phone, body string) error

	// FetchAvatarURL busca a URL da foto de perfil do remetente. Melhor
	// esforço: retorna "" em qualquer falha, nunca um erro.
	FetchAvatarURL(ctx context.Context, jid string) string
}
