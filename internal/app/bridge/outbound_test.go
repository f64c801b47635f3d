package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"zapbridge/internal/ports"
)

func agentReplyEvent() *OutboundEvent {
	event := &OutboundEvent{
		Event:       "message_created",
		Content:     "Olá! Como posso ajudar?",
		MessageType: "outgoing",
	}
	event.Sender.Type = "user"
	event.Conversation.ID = 31
	event.Conversation.Meta.Sender.PhoneNumber = "+5581999990000"
	return event
}

func TestOutboundProcessDeliversAgentReply(t *testing.T) {
	gateway := &fakeGateway{}
	relay := NewOutboundRelay(testLogger(), &fakeChatwoot{}, gateway)

	result, err := relay.Process(context.Background(), agentReplyEvent())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Ignored() {
		t.Fatalf("reply was ignored: %s", result.Reason)
	}

	if gateway.sentPhone != "5581999990000" {
		t.Errorf("sent to %q, want digits only", gateway.sentPhone)
	}
	if gateway.sentBody != "Olá! Como posso ajudar?" {
		t.Errorf("sent body %q", gateway.sentBody)
	}
}

func TestOutboundProcessFilters(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*OutboundEvent)
		wantReason string
	}{
		{
			name:       "other event type",
			mutate:     func(e *OutboundEvent) { e.Event = "conversation_updated" },
			wantReason: "event is not message_created",
		},
		{
			name:       "private note",
			mutate:     func(e *OutboundEvent) { e.Private = true },
			wantReason: "private or not outgoing message",
		},
		{
			name:       "incoming echo",
			mutate:     func(e *OutboundEvent) { e.MessageType = "incoming" },
			wantReason: "private or not outgoing message",
		},
		{
			name:       "contact sender",
			mutate:     func(e *OutboundEvent) { e.Sender.Type = "contact" },
			wantReason: "sender is not an agent",
		},
		{
			name: "group destination",
			mutate: func(e *OutboundEvent) {
				e.Conversation.Meta.Sender.PhoneNumber = "12036304@g.us"
			},
			wantReason: "destination is a group",
		},
		{
			name: "no phone anywhere",
			mutate: func(e *OutboundEvent) {
				e.Conversation.Meta.Sender.PhoneNumber = ""
				e.Conversation.ID = 0
			},
			wantReason: "destination phone undetermined",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gateway := &fakeGateway{}
			relay := NewOutboundRelay(testLogger(), &fakeChatwoot{}, gateway)

			event := agentReplyEvent()
			tc.mutate(event)

			result, err := relay.Process(context.Background(), event)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !result.Ignored() {
				t.Fatal("expected the event to be ignored")
			}
			if result.Reason != tc.wantReason {
				t.Errorf("got reason %q, want %q", result.Reason, tc.wantReason)
			}
			if gateway.sends != 0 {
				t.Error("filtered event must not reach the gateway")
			}
		})
	}
}

func TestOutboundProcessAcceptsAgentBots(t *testing.T) {
	gateway := &fakeGateway{}
	relay := NewOutboundRelay(testLogger(), &fakeChatwoot{}, gateway)

	event := agentReplyEvent()
	event.Sender.Type = "agent_bot"

	result, err := relay.Process(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Ignored() {
		t.Fatalf("bot reply was ignored: %s", result.Reason)
	}
}

func TestOutboundProcessAcceptsEventlessPayload(t *testing.T) {
	gateway := &fakeGateway{}
	relay := NewOutboundRelay(testLogger(), &fakeChatwoot{}, gateway)

	event := agentReplyEvent()
	event.Event = ""

	result, err := relay.Process(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Ignored() {
		t.Fatalf("reply was ignored: %s", result.Reason)
	}
}

func TestOutboundProcessPhoneFallbackOrder(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*OutboundEvent)
		wantPhone string
	}{
		{
			name:      "meta sender wins",
			mutate:    func(e *OutboundEvent) {},
			wantPhone: "5581999990000",
		},
		{
			name: "conversation contact",
			mutate: func(e *OutboundEvent) {
				e.Conversation.Meta.Sender.PhoneNumber = ""
				e.Conversation.Contact.PhoneNumber = "+5581888880000"
			},
			wantPhone: "5581888880000",
		},
		{
			name: "top-level sender",
			mutate: func(e *OutboundEvent) {
				e.Conversation.Meta.Sender.PhoneNumber = ""
				e.Sender.PhoneNumber = "+5581777770000"
			},
			wantPhone: "5581777770000",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			gateway := &fakeGateway{}
			relay := NewOutboundRelay(testLogger(), &fakeChatwoot{}, gateway)

			event := agentReplyEvent()
			tc.mutate(event)

			result, err := relay.Process(context.Background(), event)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if result.Ignored() {
				t.Fatalf("reply was ignored: %s", result.Reason)
			}
			if gateway.sentPhone != tc.wantPhone {
				t.Errorf("sent to %q, want %q", gateway.sentPhone, tc.wantPhone)
			}
		})
	}
}

func TestOutboundProcessFetchesConversationDetailAsLastResort(t *testing.T) {
	detail := &ports.ChatwootConversationDetail{ID: 31}
	detail.Meta.Contact.PhoneNumber = "+5581666660000"

	chatwoot := &fakeChatwoot{detail: detail}
	gateway := &fakeGateway{}
	relay := NewOutboundRelay(testLogger(), chatwoot, gateway)

	event := agentReplyEvent()
	event.Conversation.Meta.Sender.PhoneNumber = ""

	result, err := relay.Process(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Ignored() {
		t.Fatalf("reply was ignored: %s", result.Reason)
	}
	if chatwoot.detailRequests != 1 {
		t.Errorf("got %d detail lookups, want 1", chatwoot.detailRequests)
	}
	if gateway.sentPhone != "5581666660000" {
		t.Errorf("sent to %q", gateway.sentPhone)
	}
}

func TestOutboundProcessDetailLookupFailureIgnores(t *testing.T) {
	chatwoot := &fakeChatwoot{detailErr: errors.New("conversation gone")}
	gateway := &fakeGateway{}
	relay := NewOutboundRelay(testLogger(), chatwoot, gateway)

	event := agentReplyEvent()
	event.Conversation.Meta.Sender.PhoneNumber = ""

	result, err := relay.Process(context.Background(), event)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !result.Ignored() || result.Reason != "destination phone undetermined" {
		t.Errorf("got result %+v", result)
	}
	if gateway.sends != 0 {
		t.Error("must not send without a destination phone")
	}
}

func TestOutboundProcessGatewayFailureIsAnError(t *testing.T) {
	gateway := &fakeGateway{sendErr: errors.New("no session")}
	relay := NewOutboundRelay(testLogger(), &fakeChatwoot{}, gateway)

	if _, err := relay.Process(context.Background(), agentReplyEvent()); err == nil {
		t.Fatal("expected a gateway error")
	}
}

func TestOutboundEventDecoding(t *testing.T) {
	raw := `{
		"event": "message_created",
		"content": "Olá",
		"message_type": "outgoing",
		"private": false,
		"sender": {"type": "user", "phone_number": ""},
		"conversation": {
			"id": 31,
			"meta": {"sender": {"phone_number": "+5581999990000", "identifier": "5581999990000@s.whatsapp.net"}},
			"contact": {"phone_number": "+5581999990000"}
		}
	}`

	var event OutboundEvent
	if err := json.Unmarshal([]byte(raw), &event); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if event.Conversation.Meta.Sender.PhoneNumber != "+5581999990000" {
		t.Errorf("got meta phone %q", event.Conversation.Meta.Sender.PhoneNumber)
	}
	if event.Sender.Type != "user" {
		t.Errorf("got sender type %q", event.Sender.Type)
	}
}
