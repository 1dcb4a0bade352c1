package chat

import "context"

// UserQuery selects a user by one of several identifiers. Fields are
// checked in declaration order; the first non-empty one wins.
type UserQuery struct {
	ID     string
	Email  string
	Handle string
	Name   string
}

// ChannelQuery selects a channel by ID or by name.
type ChannelQuery struct {
	ID   string
	Name string
}

// HistoryOptions bounds a channel history fetch.
type HistoryOptions struct {
	Limit  int
	Before string
	After  string
}

// SearchOptions scopes and orders a message search.
type SearchOptions struct {
	Channel string
	Limit   int
	Sort    string
	SortDir string
}

// SendOptions carries optional message delivery settings.
type SendOptions struct {
	ThreadID string
}

// StreamOptions controls the real-time message stream.
type StreamOptions struct {
	// Channel restricts the stream to one channel ID when non-empty.
	Channel string
	// SkipOwn drops messages authored by the connected bot identity.
	SkipOwn bool
	// SkipHistory drops messages that predate the stream session start.
	SkipHistory bool
}

// DefaultStreamOptions returns stream options with self-origin and
// history suppression enabled.
func DefaultStreamOptions() StreamOptions {
	return StreamOptions{SkipOwn: true, SkipHistory: true}
}

// Mentioner formats platform-native mention strings.
type Mentioner interface {
	MentionUser(user *User) string
	MentionChannel(channel *Channel) string
	MentionHere() string
	MentionEveryone() string
	MentionChannelAll() string
}

// Backend is the generic contract one chat platform adapter implements.
//
// Lookup methods (FetchUser, FetchChannel) are best-effort: a missing
// record is reported as (nil, nil), not an error. StreamMessages is an
// infinite single-pass sequence; a new call opens a new session.
type Backend interface {
	Name() string

	Connect(ctx context.Context) error
	Disconnect() error

	FetchUser(ctx context.Context, query UserQuery) (*User, error)
	FetchChannel(ctx context.Context, query ChannelQuery) (*Channel, error)

	FetchMessages(ctx context.Context, channelID string, opts HistoryOptions) ([]Message, error)
	SearchMessages(ctx context.Context, query string, opts SearchOptions) ([]Message, error)
	SendMessage(ctx context.Context, channelID, content string, opts SendOptions) (*Message, error)
	EditMessage(ctx context.Context, channelID, messageID, content string) (*Message, error)
	DeleteMessage(ctx context.Context, channelID, messageID string) error

	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
	RemoveReaction(ctx context.Context, channelID, messageID, emoji string) error

	GetPresence(ctx context.Context, userID string) (*Presence, error)
	SetPresence(ctx context.Context, status, statusText string) error

	CreateDM(ctx context.Context, userIDs []string) (string, error)
	CreateChannel(ctx context.Context, name, description string, public bool) (string, error)

	BotInfo(ctx context.Context) (*User, error)
	StreamMessages(ctx context.Context, opts StreamOptions) (<-chan Message, error)

	Mentioner
}
