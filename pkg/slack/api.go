package slack

import (
	"context"

	"github.com/slack-go/slack"
	"github.com/slack-go/slack/socketmode"
)

// webAPI is the slice of the Slack Web API the backend depends on.
// Narrowing the client to an interface keeps every REST wrapper
// testable against a recording fake.
type webAPI interface {
	AuthTestContext(ctx context.Context) (*slack.AuthTestResponse, error)

	GetUserInfoContext(ctx context.Context, user string) (*slack.User, error)
	GetUserByEmailContext(ctx context.Context, email string) (*slack.User, error)
	GetUsersContext(ctx context.Context, options ...slack.GetUsersOption) ([]slack.User, error)

	GetConversationInfoContext(ctx context.Context, input *slack.GetConversationInfoInput) (*slack.Channel, error)
	GetConversationsContext(ctx context.Context, params *slack.GetConversationsParameters) ([]slack.Channel, string, error)
	OpenConversationContext(ctx context.Context, params *slack.OpenConversationParameters) (*slack.Channel, bool, bool, error)
	CreateConversationContext(ctx context.Context, params slack.CreateConversationParams) (*slack.Channel, error)
	SetPurposeOfConversationContext(ctx context.Context, channelID, purpose string) (*slack.Channel, error)

	GetConversationHistoryContext(ctx context.Context, params *slack.GetConversationHistoryParameters) (*slack.GetConversationHistoryResponse, error)
	SearchMessagesContext(ctx context.Context, query string, params slack.SearchParameters) (*slack.SearchMessages, error)
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
	UpdateMessageContext(ctx context.Context, channelID, timestamp string, options ...slack.MsgOption) (string, string, string, error)
	DeleteMessageContext(ctx context.Context, channel, messageTimestamp string) (string, string, error)

	AddReactionContext(ctx context.Context, name string, item slack.ItemRef) error
	RemoveReactionContext(ctx context.Context, name string, item slack.ItemRef) error

	GetUserPresenceContext(ctx context.Context, user string) (*slack.UserPresence, error)
	SetUserPresenceContext(ctx context.Context, presence string) error
	SetUserCustomStatusContext(ctx context.Context, statusText, statusEmoji string, statusExpiration int64) error
}

var _ webAPI = (*slack.Client)(nil)

// socketRunner is the slice of the Socket Mode client the listener
// depends on. Events are consumed from a separate receive channel.
type socketRunner interface {
	RunContext(ctx context.Context) error
	Ack(req socketmode.Request, payload ...interface{})
}

var _ socketRunner = (*socketmode.Client)(nil)
