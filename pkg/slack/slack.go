// Package slack maps the generic chat backend contract onto the Slack
// Web API and the Socket Mode event stream.
package slack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	slackapi "github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"

	"chatbridge/pkg/chat"
	"chatbridge/pkg/config"
)

const backendName = "slack"

var (
	// ErrNotConnected is returned by operations invoked before Connect.
	ErrNotConnected = errors.New("not connected to slack: call Connect first")
	// ErrMissingAppToken is returned when streaming is requested
	// without an app-level token.
	ErrMissingAppToken = errors.New("socket mode requires an app-level token (xapp-...)")
)

// Backend is the Slack implementation of chat.Backend.
type Backend struct {
	cfg config.SlackConfig
	log *slog.Logger

	api    webAPI
	client *slackapi.Client

	users    *store[chat.User]
	channels *store[chat.Channel]

	mu          sync.Mutex
	connected   bool
	botUserID   string
	botUserName string

	// newListener is swapped out by tests to stream without a socket.
	newListener func() *listener
}

var _ chat.Backend = (*Backend)(nil)

// New validates Slack configuration and constructs a backend instance.
func New(cfg config.SlackConfig, log *slog.Logger) (*Backend, error) {
	botToken, err := cfg.ResolvedBotToken()
	if err != nil {
		return nil, fmt.Errorf("slack.bot_token: %w", err)
	}

	appToken, err := cfg.ResolvedAppToken()
	if err != nil {
		return nil, fmt.Errorf("slack.app_token: %w", err)
	}

	if log == nil {
		log = slog.Default()
	}

	opts := []slackapi.Option{}
	if appToken != "" {
		opts = append(opts, slackapi.OptionAppLevelToken(appToken))
	}
	client := slackapi.New(botToken, opts...)

	b := &Backend{
		cfg:      cfg,
		log:      log.With("component", "backend.slack"),
		api:      client,
		client:   client,
		users:    newStore[chat.User](),
		channels: newStore[chat.Channel](),
	}
	b.newListener = b.socketListener
	return b, nil
}

// Name returns the backend identifier used in logs and metadata.
func (b *Backend) Name() string {
	return backendName
}

// Connect verifies credentials with auth.test and caches the bot
// identity. Authentication failure is fatal, not retried.
func (b *Backend) Connect(ctx context.Context) error {
	resp, err := b.api.AuthTestContext(ctx)
	if err != nil {
		return fmt.Errorf("slack auth failed: %w", err)
	}

	b.mu.Lock()
	b.connected = true
	b.botUserID = resp.UserID
	b.botUserName = resp.User
	b.mu.Unlock()

	b.log.Info("Connected to Slack", "team", resp.Team, "bot_user_id", resp.UserID)
	return nil
}

// Disconnect drops the connected state. The underlying HTTP client has
// no persistent connection to tear down.
func (b *Backend) Disconnect() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.connected = false
	return nil
}

func (b *Backend) ensureConnected() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.connected {
		return ErrNotConnected
	}
	return nil
}

func (b *Backend) botIdentity() (id, name string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.botUserID, b.botUserName
}

// socketListener builds the production Socket Mode listener.
func (b *Backend) socketListener() *listener {
	sm := socketmode.New(b.client)
	return newListener(sm, sm.Events, b.log)
}
