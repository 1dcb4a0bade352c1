package slack

import (
	"context"
	"fmt"

	slackapi "github.com/slack-go/slack"

	"chatbridge/pkg/chat"
)

const (
	defaultHistoryLimit = 100
	maxHistoryLimit     = 1000
	defaultSearchLimit  = 50
	maxSearchLimit      = 100
)

// FetchMessages reads channel history via conversations.history.
// Slack returns newest first; the result is reversed to oldest first.
func (b *Backend) FetchMessages(ctx context.Context, channelID string, opts chat.HistoryOptions) ([]chat.Message, error) {
	if err := b.ensureConnected(); err != nil {
		return nil, err
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	resp, err := b.api.GetConversationHistoryContext(ctx, &slackapi.GetConversationHistoryParameters{
		ChannelID: channelID,
		Limit:     limit,
		Latest:    opts.Before,
		Oldest:    opts.After,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch messages: %w", err)
	}

	messages := make([]chat.Message, 0, len(resp.Messages))
	for i := len(resp.Messages) - 1; i >= 0; i-- {
		messages = append(messages, messageFromSlack(&resp.Messages[i].Msg, channelID))
	}

	return messages, nil
}

// SearchMessages runs search.messages, optionally scoped to one
// channel with an in: modifier. Requires the search:read scope.
func (b *Backend) SearchMessages(ctx context.Context, query string, opts chat.SearchOptions) ([]chat.Message, error) {
	if err := b.ensureConnected(); err != nil {
		return nil, err
	}

	searchQuery := query
	if opts.Channel != "" {
		scope := opts.Channel
		if channel, err := b.resolveChannel(ctx, opts.Channel); err == nil && channel != nil && channel.Name != "" {
			scope = "#" + channel.Name
		}
		searchQuery = fmt.Sprintf("in:%s %s", scope, query)
	}

	limit := opts.Limit
	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	params := slackapi.NewSearchParameters()
	params.Count = limit
	if opts.Sort != "" {
		params.Sort = opts.Sort
	}
	if opts.SortDir != "" {
		params.SortDirection = opts.SortDir
	}

	resp, err := b.api.SearchMessagesContext(ctx, searchQuery, params)
	if err != nil {
		return nil, fmt.Errorf("search messages: %w", err)
	}

	messages := make([]chat.Message, 0, len(resp.Matches))
	for _, match := range resp.Matches {
		msg := chat.Message{
			ID:        match.Timestamp,
			Content:   match.Text,
			AuthorID:  match.User,
			ChannelID: match.Channel.ID,
			CreatedAt: tsToTime(match.Timestamp),
		}
		if match.User != "" {
			msg.Author = &chat.User{ID: match.User, Name: match.Username}
		}
		if match.Channel.Name != "" {
			msg.Channel = &chat.Channel{ID: match.Channel.ID, Name: match.Channel.Name}
		}
		messages = append(messages, msg)
	}

	return messages, nil
}

// SendMessage posts a message via chat.postMessage. A thread ID in
// opts makes the message a threaded reply.
func (b *Backend) SendMessage(ctx context.Context, channelID, content string, opts chat.SendOptions) (*chat.Message, error) {
	if err := b.ensureConnected(); err != nil {
		return nil, err
	}

	msgOpts := []slackapi.MsgOption{slackapi.MsgOptionText(content, false)}
	if opts.ThreadID != "" {
		msgOpts = append(msgOpts, slackapi.MsgOptionTS(opts.ThreadID))
	}

	postedChannel, ts, err := b.api.PostMessageContext(ctx, channelID, msgOpts...)
	if err != nil {
		return nil, fmt.Errorf("send message: %w", err)
	}

	botID, _ := b.botIdentity()
	sent := chat.Message{
		ID:        ts,
		Content:   content,
		AuthorID:  botID,
		ChannelID: postedChannel,
		CreatedAt: tsToTime(ts),
	}
	if opts.ThreadID != "" {
		sent.Thread = &chat.Thread{ID: opts.ThreadID}
	}

	return &sent, nil
}

// EditMessage rewrites a message's text via chat.update.
func (b *Backend) EditMessage(ctx context.Context, channelID, messageID, content string) (*chat.Message, error) {
	if err := b.ensureConnected(); err != nil {
		return nil, err
	}

	updatedChannel, ts, _, err := b.api.UpdateMessageContext(ctx, channelID, messageID, slackapi.MsgOptionText(content, false))
	if err != nil {
		return nil, fmt.Errorf("edit message: %w", err)
	}

	botID, _ := b.botIdentity()
	return &chat.Message{
		ID:        ts,
		Content:   content,
		AuthorID:  botID,
		ChannelID: updatedChannel,
		CreatedAt: tsToTime(ts),
	}, nil
}

// DeleteMessage removes a message via chat.delete.
func (b *Backend) DeleteMessage(ctx context.Context, channelID, messageID string) error {
	if err := b.ensureConnected(); err != nil {
		return err
	}

	if _, _, err := b.api.DeleteMessageContext(ctx, channelID, messageID); err != nil {
		return fmt.Errorf("delete message: %w", err)
	}
	return nil
}
