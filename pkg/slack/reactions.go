package slack

import (
	"context"
	"fmt"
	"strings"

	slackapi "github.com/slack-go/slack"
)

// AddReaction adds an emoji reaction to a message. Reacting twice with
// the same emoji is not an error.
func (b *Backend) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := b.ensureConnected(); err != nil {
		return err
	}

	name := strings.Trim(emoji, ":")
	err := b.api.AddReactionContext(ctx, name, slackapi.NewRefToMessage(channelID, messageID))
	if err != nil && err.Error() != "already_reacted" {
		return fmt.Errorf("add reaction: %w", err)
	}
	return nil
}

// RemoveReaction removes an emoji reaction from a message. Removing a
// reaction that is not present is not an error.
func (b *Backend) RemoveReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := b.ensureConnected(); err != nil {
		return err
	}

	name := strings.Trim(emoji, ":")
	err := b.api.RemoveReactionContext(ctx, name, slackapi.NewRefToMessage(channelID, messageID))
	if err != nil && err.Error() != "no_reaction" {
		return fmt.Errorf("remove reaction: %w", err)
	}
	return nil
}
