package slack

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"chatbridge/pkg/config"
)

func TestNewRequiresValidTokens(t *testing.T) {
	_, err := New(config.SlackConfig{BotToken: "not-a-token"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err == nil {
		t.Fatal("expected error for malformed bot token")
	}

	b, err := New(config.SlackConfig{BotToken: "xoxb-test", AppToken: "xapp-test"}, slog.New(slog.NewTextHandler(io.Discard, nil)))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if b.Name() != "slack" {
		t.Fatalf("name = %q, want slack", b.Name())
	}
}

func TestConnectCachesBotIdentity(t *testing.T) {
	api := newFakeAPI()
	b := newTestBackend(api)
	b.connected = false
	b.botUserID = ""
	b.botUserName = ""

	if err := b.Connect(context.Background()); err != nil {
		t.Fatalf("Connect: %v", err)
	}

	id, name := b.botIdentity()
	if id != "UBOT" || name != "bridgebot" {
		t.Fatalf("identity = %q/%q, want UBOT/bridgebot", id, name)
	}
	if err := b.ensureConnected(); err != nil {
		t.Fatalf("ensureConnected: %v", err)
	}
}

func TestConnectFailsOnBadAuth(t *testing.T) {
	api := newFakeAPI()
	api.authErr = errors.New("invalid_auth")
	b := newTestBackend(api)
	b.connected = false

	if err := b.Connect(context.Background()); err == nil {
		t.Fatal("expected auth error")
	}
	if err := b.ensureConnected(); err != ErrNotConnected {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
}

func TestDisconnect(t *testing.T) {
	b := newTestBackend(newFakeAPI())

	if err := b.Disconnect(); err != nil {
		t.Fatalf("Disconnect: %v", err)
	}
	if err := b.ensureConnected(); err != ErrNotConnected {
		t.Fatalf("err = %v, want ErrNotConnected", err)
	}
}

func TestStoreMemo(t *testing.T) {
	s := newStore[int]()

	if _, ok := s.get("a"); ok {
		t.Fatal("unexpected hit on empty store")
	}

	one := 1
	s.put("a", &one)
	if got, ok := s.get("a"); !ok || *got != 1 {
		t.Fatalf("got %v, %v", got, ok)
	}

	// Empty keys and nil values are ignored.
	s.put("", &one)
	s.put("b", nil)
	if s.size() != 1 {
		t.Fatalf("size = %d, want 1", s.size())
	}
}
