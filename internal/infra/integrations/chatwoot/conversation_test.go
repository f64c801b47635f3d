package chatwoot

import (
	"context"
	"errors"
	"testing"

	"zapbridge/internal/ports"
)

func TestResolveOrCreateReusesFirstListedConversation(t *testing.T) {
	client := newFakeClient()
	client.conversations = []ports.ChatwootConversation{
		{ID: 31, Status: "open"},
		{ID: 44, Status: "open"},
	}

	manager := NewConversationManager(testLogger(), client)

	conversationID, err := manager.ResolveOrCreate(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conversationID != 31 {
		t.Errorf("got conversation %d, want first listed (31)", conversationID)
	}
	if client.createdConvs != 0 {
		t.Errorf("expected no creation, got %d", client.createdConvs)
	}
}

func TestResolveOrCreateCreatesWhenListIsEmpty(t *testing.T) {
	client := newFakeClient()
	manager := NewConversationManager(testLogger(), client)

	conversationID, err := manager.ResolveOrCreate(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if conversationID == 0 {
		t.Error("expected a created conversation ID")
	}
	if client.createdConvs != 1 {
		t.Errorf("got %d creations, want 1", client.createdConvs)
	}
}

func TestResolveOrCreateListFailureAborts(t *testing.T) {
	client := newFakeClient()
	client.listErr = errors.New("listing unavailable")

	manager := NewConversationManager(testLogger(), client)

	if _, err := manager.ResolveOrCreate(context.Background(), 7); err == nil {
		t.Fatal("expected conversation resolution error")
	}
	if client.createdConvs != 0 {
		t.Error("must not create blindly when the listing fails")
	}
}

func TestResolveOrCreateCreationFailureAborts(t *testing.T) {
	client := newFakeClient()
	client.createConvErr = errors.New("inbox gone")

	manager := NewConversationManager(testLogger(), client)

	if _, err := manager.ResolveOrCreate(context.Background(), 7); err == nil {
		t.Fatal("expected conversation resolution error")
	}
}
