package config

import (
	"strings"
	"testing"
)

func setCompleteEnv(t *testing.T) {
	t.Helper()
	t.Setenv("CHATWOOT_URL", "https://chatwoot.example.com")
	t.Setenv("CHATWOOT_ACCOUNT_ID", "1")
	t.Setenv("CHATWOOT_INBOX_ID", "5")
	t.Setenv("CHATWOOT_API_TOKEN", "cw-token")
	t.Setenv("WUZAPI_URL", "https://wuzapi.example.com")
	t.Setenv("WUZAPI_API_TOKEN", "wz-token")
	t.Setenv("WUZAPI_INSTANCE", "suporte")
}

func TestLoadCompleteConfiguration(t *testing.T) {
	setCompleteEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Chatwoot.InboxID != 5 {
		t.Errorf("got inbox ID %d, want 5", cfg.Chatwoot.InboxID)
	}
	if cfg.Port != "8080" {
		t.Errorf("got default port %q, want 8080", cfg.Port)
	}
	if cfg.GetServerAddress() != ":8080" {
		t.Errorf("got server address %q", cfg.GetServerAddress())
	}
}

func TestLoadTrimsTrailingSlashes(t *testing.T) {
	setCompleteEnv(t)
	t.Setenv("CHATWOOT_URL", "https://chatwoot.example.com/")
	t.Setenv("WUZAPI_URL", "https://wuzapi.example.com/")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if strings.HasSuffix(cfg.Chatwoot.URL, "/") {
		t.Errorf("chatwoot URL keeps trailing slash: %q", cfg.Chatwoot.URL)
	}
	if strings.HasSuffix(cfg.Wuzapi.URL, "/") {
		t.Errorf("wuzapi URL keeps trailing slash: %q", cfg.Wuzapi.URL)
	}
}

func TestLoadFailsFastOnMissingFields(t *testing.T) {
	tests := []struct {
		name  string
		unset string
	}{
		{"missing chatwoot url", "CHATWOOT_URL"},
		{"missing chatwoot account", "CHATWOOT_ACCOUNT_ID"},
		{"missing chatwoot token", "CHATWOOT_API_TOKEN"},
		{"missing wuzapi url", "WUZAPI_URL"},
		{"missing wuzapi token", "WUZAPI_API_TOKEN"},
		{"missing wuzapi instance", "WUZAPI_INSTANCE"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			setCompleteEnv(t)
			t.Setenv(tc.unset, "")

			if _, err := Load(); err == nil {
				t.Fatalf("expected error with %s unset", tc.unset)
			}
		})
	}
}

func TestLoadRejectsNonNumericInboxID(t *testing.T) {
	setCompleteEnv(t)
	t.Setenv("CHATWOOT_INBOX_ID", "five")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for non-numeric inbox ID")
	}
}

func TestLoadRejectsZeroInboxID(t *testing.T) {
	setCompleteEnv(t)
	t.Setenv("CHATWOOT_INBOX_ID", "0")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for inbox ID 0")
	}
}
