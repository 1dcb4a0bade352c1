package slack

import (
	"context"
	"fmt"
	"strings"
	"time"

	"chatbridge/pkg/chat"
)

// connectGrace bounds the wait for the transport to report readiness.
// If no Connected event arrives in time the stream proceeds anyway;
// some transports never signal readiness explicitly.
const connectGrace = 5 * time.Second

// StreamMessages opens a Socket Mode session and returns an infinite,
// single-pass sequence of normalized messages. It fails fast on a
// missing app token or a connection error; after that, per-event
// failures degrade or drop single messages but never end the stream.
// The returned channel closes when ctx is cancelled or the transport
// dies, after teardown has completed.
func (b *Backend) StreamMessages(ctx context.Context, opts chat.StreamOptions) (<-chan chat.Message, error) {
	if err := b.ensureConnected(); err != nil {
		return nil, err
	}

	appToken, err := b.cfg.ResolvedAppToken()
	if err != nil {
		return nil, fmt.Errorf("slack.app_token: %w", err)
	}
	if appToken == "" {
		return nil, ErrMissingAppToken
	}

	// Resolve the bot identity once for the session. Best-effort: with
	// an unknown identity, self-origin suppression simply never matches.
	selfID := ""
	if self, err := b.BotInfo(ctx); err == nil && self != nil {
		selfID = self.ID
	}

	// The channel filter accepts "#name" as well as an ID. An
	// unresolvable name is kept as-is and will match nothing.
	if name, ok := strings.CutPrefix(opts.Channel, "#"); ok {
		if channel, err := b.FetchChannel(ctx, chat.ChannelQuery{Name: name}); err == nil && channel != nil {
			opts.Channel = channel.ID
		}
	}

	sess := newSession(b, selfID, opts, time.Now(), b.log)
	lst := b.newListener()

	streamCtx, cancel := context.WithCancel(ctx)
	runErr := make(chan error, 1)
	go func() { runErr <- lst.run(streamCtx, sess) }()

	select {
	case <-lst.ready:
	case err := <-runErr:
		cancel()
		if err == nil {
			err = fmt.Errorf("socket mode listener exited before connecting")
		}
		return nil, fmt.Errorf("socket mode connect: %w", err)
	case <-time.After(connectGrace):
	case <-ctx.Done():
		cancel()
		<-runErr
		return nil, ctx.Err()
	}

	out := make(chan chat.Message)
	go func() {
		// Teardown runs on every exit path: stop the listener, await
		// it, then close the consumer channel.
		defer func() {
			cancel()
			if err := <-runErr; err != nil {
				b.log.Error("Socket mode listener failed", "error", err)
			}
			close(out)
		}()

		for {
			msg, ok := sess.queue.Get(streamCtx)
			if !ok {
				return
			}
			select {
			case out <- msg:
			case <-streamCtx.Done():
				return
			}
		}
	}()

	return out, nil
}
