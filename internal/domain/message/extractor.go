package message

import (
	"strings"

	"github.com/tidwall/gjson"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	eventTypeMessage = "Message"

	groupDomainSuffix     = "@g.us"
	broadcastDomainSuffix = "@broadcast"
	statusBroadcastJID    = "status@broadcast"
)

// Caminhos candidatos por atributo lógico, avaliados em ordem de
// prioridade. O gateway mudou o formato do webhook entre versões; em vez
// de exigir um esquema, a extração tenta cada caminho conhecido.
var (
	senderPaths = []string{
		"event.Info.SenderAlt",
		"event.Info.Sender",
		"event.Sender",
		"sender",
	}
	textPaths = []string{
		"event.Message.conversation",
		"event.Message.body",
	}
)

// Extract classifica um evento bruto do gateway e produz uma
// InboundMessage ou um motivo de descarte. Só retorna erro para o payload
// aninhado malformado; formatos desconhecidos são descartes, nunca erros,
// porque remetentes de webhook não fazem retry em códigos de erro.
func Extract(raw []byte) (*Extraction, error) {
	doc := string(raw)
	if !gjson.Valid(doc) {
		return ignored("unrecognized format"), nil
	}

	if nested := gjson.Get(doc, "jsonData"); nested.Exists() && nested.Type == gjson.String {
		inner := nested.String()
		if !gjson.Valid(inner) {
			return nil, ErrMalformedPayload
		}
		doc = inner
	} else if !gjson.Get(doc, "type").Exists() || !gjson.Get(doc, "event").Exists() {
		return ignored("unrecognized format"), nil
	}

	if gjson.Get(doc, "type").String() != eventTypeMessage {
		return ignored("event type is not Message"), nil
	}

	sender := firstNonEmpty(doc, senderPaths)
	if sender == "" {
		return ignored("sender undetermined"), nil
	}

	chat := gjson.Get(doc, "event.Info.Chat").String()
	if chat == statusBroadcastJID || sender == statusBroadcastJID {
		return ignored("status broadcast"), nil
	}

	isGroup := isGroupIdentifier(sender) ||
		isGroupIdentifier(chat) ||
		gjson.Get(doc, "event.Info.IsGroup").Bool()

	phone := phoneFromIdentifier(sender)
	if phone == "" {
		return ignored("phone undetermined"), nil
	}

	name := gjson.Get(doc, "event.Info.PushName").String()
	if name == "" {
		name = phone
	}

	text := firstNonEmpty(doc, textPaths)
	if text == "" {
		if kind := gjson.Get(doc, "event.Info.Type").String(); kind != "" && kind != "text" {
			text = "[" + cases.Title(language.Und).String(kind) + " received]"
		}
	}
	if text == "" {
		return ignored("empty content"), nil
	}

	return &Extraction{Message: &InboundMessage{
		SenderPhone: phone,
		SenderName:  name,
		Text:        text,
		IsGroup:     isGroup,
		SenderJID:   sender,
	}}, nil
}

func firstNonEmpty(doc string, paths []string) string {
	for _, path := range paths {
		if value := gjson.Get(doc, path).String(); value != "" {
			return value
		}
	}
	return ""
}

func isGroupIdentifier(identifier string) bool {
	return strings.Contains(identifier, groupDomainSuffix) ||
		strings.Contains(identifier, broadcastDomainSuffix)
}

// phoneFromIdentifier deriva o telefone canônico de um JID: a parte antes
// do domínio (@...) e do sufixo de dispositivo (:...), somente dígitos.
func phoneFromIdentifier(identifier string) string {
	user := identifier
	if at := strings.Index(user, "@"); at >= 0 {
		user = user[:at]
	}
	if colon := strings.Index(user, ":"); colon >= 0 {
		user = user[:colon]
	}

	var digits strings.Builder
	for _, r := range user {
		if r >= '0' && r <= '9' {
			digits.WriteRune(r)
		}
	}
	return digits.String()
}
