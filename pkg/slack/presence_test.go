package slack

import (
	"context"
	"testing"

	slackapi "github.com/slack-go/slack"

	"chatbridge/pkg/chat"
)

func TestGetPresence(t *testing.T) {
	api := newFakeAPI()
	api.presenceResp = &slackapi.UserPresence{
		Presence:        "active",
		Online:          true,
		ConnectionCount: 2,
	}
	b := newTestBackend(api)

	presence, err := b.GetPresence(context.Background(), "U1")
	if err != nil {
		t.Fatalf("GetPresence: %v", err)
	}
	if presence.Status != chat.PresenceOnline {
		t.Fatalf("status = %q, want online", presence.Status)
	}
	if presence.ConnectionCount != 2 {
		t.Fatalf("connections = %d, want 2", presence.ConnectionCount)
	}

	api.presenceResp = &slackapi.UserPresence{Presence: "away", AutoAway: true}
	presence, err = b.GetPresence(context.Background(), "U1")
	if err != nil {
		t.Fatalf("GetPresence: %v", err)
	}
	if presence.Status != chat.PresenceIdle {
		t.Fatalf("status = %q, want idle", presence.Status)
	}
	if !presence.AutoAway {
		t.Fatal("auto_away not carried over")
	}
}

func TestSetPresence(t *testing.T) {
	api := newFakeAPI()
	b := newTestBackend(api)

	if err := b.SetPresence(context.Background(), "away", ""); err != nil {
		t.Fatalf("SetPresence: %v", err)
	}
	if len(api.presenceSet) != 1 || api.presenceSet[0] != "away" {
		t.Fatalf("presence set = %v", api.presenceSet)
	}
	if len(api.statusSet) != 0 {
		t.Fatalf("status set = %v, want empty", api.statusSet)
	}

	if err := b.SetPresence(context.Background(), "auto", "shipping"); err != nil {
		t.Fatalf("SetPresence: %v", err)
	}
	if len(api.statusSet) != 1 || api.statusSet[0] != "shipping" {
		t.Fatalf("status set = %v", api.statusSet)
	}
}
