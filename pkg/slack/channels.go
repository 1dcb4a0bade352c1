package slack

import (
	"context"
	"fmt"
	"strings"

	slackapi "github.com/slack-go/slack"

	"chatbridge/pkg/chat"
)

const listPageSize = 200

// FetchChannel resolves a channel by ID or by name. Lookups are
// best-effort: a missing or unresolvable channel is reported as
// (nil, nil).
func (b *Backend) FetchChannel(ctx context.Context, query chat.ChannelQuery) (*chat.Channel, error) {
	if err := b.ensureConnected(); err != nil {
		return nil, err
	}

	if query.ID != "" {
		channel, err := b.resolveChannel(ctx, query.ID)
		if err != nil {
			b.log.Debug("Channel lookup failed", "channel_id", query.ID, "error", err)
			return nil, nil
		}
		return channel, nil
	}

	if query.Name != "" {
		return b.searchChannel(ctx, query.Name)
	}

	return nil, nil
}

// searchChannel pages conversations.list by cursor until the name
// matches or the cursor runs out.
func (b *Backend) searchChannel(ctx context.Context, name string) (*chat.Channel, error) {
	want := strings.TrimPrefix(strings.ToLower(name), "#")

	cursor := ""
	for {
		page, next, err := b.api.GetConversationsContext(ctx, &slackapi.GetConversationsParameters{
			Types:  []string{"public_channel", "private_channel"},
			Limit:  listPageSize,
			Cursor: cursor,
		})
		if err != nil {
			b.log.Warn("Channel list failed", "error", err)
			return nil, nil
		}

		for i := range page {
			if strings.ToLower(page[i].Name) == want {
				return b.resolveChannel(ctx, page[i].ID)
			}
		}

		if next == "" {
			return nil, nil
		}
		cursor = next
	}
}

// resolveChannel fetches one channel by ID, memo-first.
func (b *Backend) resolveChannel(ctx context.Context, id string) (*chat.Channel, error) {
	if cached, ok := b.channels.get(id); ok {
		return cached, nil
	}

	found, err := b.api.GetConversationInfoContext(ctx, &slackapi.GetConversationInfoInput{
		ChannelID:         id,
		IncludeNumMembers: true,
	})
	if err != nil {
		return nil, err
	}

	channel := channelFromSlack(found)
	b.channels.put(channel.ID, channel)
	return channel, nil
}

// CreateDM opens a direct message with one user or a group DM with
// several, returning the conversation ID.
func (b *Backend) CreateDM(ctx context.Context, userIDs []string) (string, error) {
	if err := b.ensureConnected(); err != nil {
		return "", err
	}
	if len(userIDs) == 0 {
		return "", fmt.Errorf("create dm: at least one user is required")
	}

	channel, _, _, err := b.api.OpenConversationContext(ctx, &slackapi.OpenConversationParameters{
		Users: userIDs,
	})
	if err != nil {
		return "", fmt.Errorf("open conversation: %w", err)
	}

	return channel.ID, nil
}

// CreateChannel creates a public or private channel and sets its
// purpose when a description is given.
func (b *Backend) CreateChannel(ctx context.Context, name, description string, public bool) (string, error) {
	if err := b.ensureConnected(); err != nil {
		return "", err
	}

	// Slack requires lowercase names without spaces.
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")

	channel, err := b.api.CreateConversationContext(ctx, slackapi.CreateConversationParams{
		ChannelName: normalized,
		IsPrivate:   !public,
		TeamID:      b.cfg.TeamID,
	})
	if err != nil {
		return "", fmt.Errorf("create channel: %w", err)
	}

	if description != "" {
		if _, err := b.api.SetPurposeOfConversationContext(ctx, channel.ID, description); err != nil {
			b.log.Warn("Failed to set channel purpose", "channel_id", channel.ID, "error", err)
		}
	}

	return channel.ID, nil
}
