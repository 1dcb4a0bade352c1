package slack

import (
	"context"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"chatbridge/pkg/chat"
	"chatbridge/pkg/metrics"
)

// Recognized message-like event kinds.
const (
	kindMessage    = "message"
	kindAppMention = "app_mention"
)

// Metadata keys set on streamed messages.
const (
	metaIsIM        = "is_im"
	metaIsDM        = "is_dm"
	metaAuthorName  = "author_name"
	metaChannelName = "channel_name"
)

// rawEvent is the transport-agnostic view of one inbound event, taken
// after the envelope has been acknowledged.
type rawEvent struct {
	Kind        string
	User        string
	BotID       string
	Channel     string
	ChannelType string
	Text        string
	TS          string
	ThreadTS    string
	SubType     string
}

// identityResolver is the best-effort lookup dependency of a stream
// session. Failures map to absent records, never to aborted delivery.
type identityResolver interface {
	resolveUser(ctx context.Context, id string) (*chat.User, error)
	resolveChannel(ctx context.Context, id string) (*chat.Channel, error)
}

// session owns one stream invocation: the filter predicates, the
// translator, and the delivery queue. All collaborators are passed in
// explicitly rather than captured from an enclosing scope.
type session struct {
	resolver identityResolver
	selfID   string
	opts     chat.StreamOptions
	startTS  float64
	queue    *queue
	log      *slog.Logger
}

func newSession(resolver identityResolver, selfID string, opts chat.StreamOptions, start time.Time, log *slog.Logger) *session {
	return &session{
		resolver: resolver,
		selfID:   selfID,
		opts:     opts,
		startTS:  float64(start.UnixNano()) / float64(time.Second),
		queue:    newQueue(),
		log:      log.With("component", "slack.stream"),
	}
}

// process filters and translates one raw event, enqueuing at most one
// normalized message. A failure here never escapes to the listener.
func (s *session) process(ctx context.Context, ev rawEvent) {
	defer func() {
		if r := recover(); r != nil {
			metrics.IncTranslateError()
			s.log.Error("Failed to handle event", "kind", ev.Kind, "ts", ev.TS, "panic", r)
		}
	}()

	if reason, ok := s.accept(ev); !ok {
		metrics.IncDropped(reason)
		return
	}

	s.queue.Put(s.translate(ctx, ev))
	metrics.IncDelivered()
}

// accept applies the filter predicates in order, short-circuiting on
// the first failure. It is pure given the session state.
func (s *session) accept(ev rawEvent) (string, bool) {
	if ev.Kind != kindMessage && ev.Kind != kindAppMention {
		return metrics.DropKind, false
	}

	if s.opts.SkipOwn && s.selfID != "" && ev.User == s.selfID {
		return metrics.DropSelf, false
	}

	if s.opts.Channel != "" && ev.Channel != s.opts.Channel {
		return metrics.DropChannel, false
	}

	if s.opts.SkipHistory && ev.TS != "" {
		if ts, err := strconv.ParseFloat(ev.TS, 64); err == nil && ts < s.startTS {
			return metrics.DropHistory, false
		}
	}

	return "", true
}

// translate builds the normalized message. Author and channel
// resolution is best-effort; the raw identifiers are always kept.
func (s *session) translate(ctx context.Context, ev rawEvent) chat.Message {
	isDM := ev.ChannelType == "im" || strings.HasPrefix(ev.Channel, dmChannelPrefix)

	var author *chat.User
	authorName := ""
	if ev.User != "" {
		if user, err := s.resolver.resolveUser(ctx, ev.User); err == nil && user != nil {
			author = user
			authorName = user.Name
		}
	}

	var channel *chat.Channel
	channelName := ""
	if ev.Channel != "" {
		if found, err := s.resolver.resolveChannel(ctx, ev.Channel); err == nil && found != nil {
			channel = found
			channelName = found.Name
			// A resolved channel is authoritative over the ID-prefix guess.
			if found.Type == chat.ChannelDirect {
				isDM = true
			}
		}
	}

	var thread *chat.Thread
	if ev.ThreadTS != "" {
		thread = &chat.Thread{ID: ev.ThreadTS}
	}

	created := tsToTime(ev.TS)
	if created.IsZero() {
		created = time.Now()
	}

	return chat.Message{
		ID:        ev.TS,
		Content:   ev.Text,
		Author:    author,
		AuthorID:  ev.User,
		Channel:   channel,
		ChannelID: ev.Channel,
		Thread:    thread,
		CreatedAt: created,
		Metadata: map[string]string{
			metaIsIM:        strconv.FormatBool(isDM),
			metaIsDM:        strconv.FormatBool(isDM),
			metaAuthorName:  authorName,
			metaChannelName: channelName,
		},
	}
}

// close ends delivery; queued messages already handed off remain
// readable until drained.
func (s *session) close() {
	s.queue.Close()
}
