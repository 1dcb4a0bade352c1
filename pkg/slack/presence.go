package slack

import (
	"context"
	"fmt"

	"chatbridge/pkg/chat"
)

const presenceActive = "active"

// GetPresence reads a user's presence via users.getPresence.
func (b *Backend) GetPresence(ctx context.Context, userID string) (*chat.Presence, error) {
	if err := b.ensureConnected(); err != nil {
		return nil, err
	}

	resp, err := b.api.GetUserPresenceContext(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("get presence: %w", err)
	}

	status := chat.PresenceIdle
	if resp.Presence == presenceActive {
		status = chat.PresenceOnline
	}

	return &chat.Presence{
		Status:          status,
		AutoAway:        resp.AutoAway,
		ManualAway:      resp.ManualAway,
		ConnectionCount: resp.ConnectionCount,
		LastActivity:    int64(resp.LastActivity),
	}, nil
}

// SetPresence sets the bot's presence ("auto" or "away") and,
// optionally, a custom status text.
func (b *Backend) SetPresence(ctx context.Context, status, statusText string) error {
	if err := b.ensureConnected(); err != nil {
		return err
	}

	if err := b.api.SetUserPresenceContext(ctx, status); err != nil {
		return fmt.Errorf("set presence: %w", err)
	}

	if statusText != "" {
		if err := b.api.SetUserCustomStatusContext(ctx, statusText, "", 0); err != nil {
			return fmt.Errorf("set status: %w", err)
		}
	}

	return nil
}
