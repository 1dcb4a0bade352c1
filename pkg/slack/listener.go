package slack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/slack-go/slack/slackevents"
	"github.com/slack-go/slack/socketmode"

	"chatbridge/pkg/metrics"
)

// listener owns the live Socket Mode connection. Every envelope that
// carries a request is acknowledged before any further processing, so
// the source never re-delivers an event because translation was slow
// or failed.
type listener struct {
	runner socketRunner
	events <-chan socketmode.Event
	log    *slog.Logger

	ready     chan struct{}
	readyOnce sync.Once
}

func newListener(runner socketRunner, events <-chan socketmode.Event, log *slog.Logger) *listener {
	return &listener{
		runner: runner,
		events: events,
		log:    log.With("component", "slack.listener"),
		ready:  make(chan struct{}),
	}
}

func (l *listener) signalReady() {
	l.readyOnce.Do(func() { close(l.ready) })
}

func (l *listener) isReady() bool {
	select {
	case <-l.ready:
		return true
	default:
		return false
	}
}

// run drives the connection until ctx ends or the transport fails.
// The session's queue is closed on exit so the consumer unblocks.
func (l *listener) run(ctx context.Context, sess *session) error {
	defer sess.close()

	runDone := make(chan error, 1)
	go func() { runDone <- l.runner.RunContext(ctx) }()

	for {
		select {
		case <-ctx.Done():
			// Expected cancellation during teardown is not an error.
			if err := <-runDone; err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case err := <-runDone:
			if err != nil && !errors.Is(err, context.Canceled) {
				return err
			}
			return nil
		case evt, ok := <-l.events:
			if !ok {
				l.events = nil
				continue
			}
			if err := l.handle(ctx, evt, sess); err != nil {
				return err
			}
		}
	}
}

func (l *listener) handle(ctx context.Context, evt socketmode.Event, sess *session) error {
	switch evt.Type {
	case socketmode.EventTypeConnecting:
		l.log.Debug("Connecting to Slack with Socket Mode")

	case socketmode.EventTypeConnected:
		l.log.Info("Connected to Slack with Socket Mode")
		l.signalReady()

	case socketmode.EventTypeHello:
		l.signalReady()

	case socketmode.EventTypeConnectionError:
		// Before the first successful connect this is a setup failure,
		// not a transient drop.
		if !l.isReady() {
			return fmt.Errorf("socket mode connection error: %v", evt.Data)
		}
		l.log.Warn("Socket Mode connection error", "data", evt.Data)

	case socketmode.EventTypeEventsAPI:
		// Acknowledge before translation, unconditionally.
		if evt.Request != nil {
			l.runner.Ack(*evt.Request)
		}
		metrics.IncEnvelope()

		apiEvent, ok := evt.Data.(slackevents.EventsAPIEvent)
		if !ok {
			l.log.Debug("Ignoring malformed events API envelope")
			return nil
		}
		sess.process(ctx, rawFromAPIEvent(apiEvent))

	case socketmode.EventTypeInteractive, socketmode.EventTypeSlashCommand:
		if evt.Request != nil {
			l.runner.Ack(*evt.Request)
		}

	default:
		l.log.Debug("Ignoring socket event", "type", string(evt.Type))
	}

	return nil
}

// rawFromAPIEvent flattens an Events API callback into the
// transport-agnostic event record. Unrecognized inner events keep only
// their kind so the filter can account for the drop.
func rawFromAPIEvent(apiEvent slackevents.EventsAPIEvent) rawEvent {
	if apiEvent.Type != slackevents.CallbackEvent {
		return rawEvent{Kind: apiEvent.Type}
	}

	switch ev := apiEvent.InnerEvent.Data.(type) {
	case *slackevents.MessageEvent:
		return rawEvent{
			Kind:        kindMessage,
			User:        ev.User,
			BotID:       ev.BotID,
			Channel:     ev.Channel,
			ChannelType: ev.ChannelType,
			Text:        ev.Text,
			TS:          ev.TimeStamp,
			ThreadTS:    ev.ThreadTimeStamp,
			SubType:     ev.SubType,
		}
	case *slackevents.AppMentionEvent:
		return rawEvent{
			Kind:     kindAppMention,
			User:     ev.User,
			Channel:  ev.Channel,
			Text:     ev.Text,
			TS:       ev.TimeStamp,
			ThreadTS: ev.ThreadTimeStamp,
		}
	default:
		return rawEvent{Kind: apiEvent.InnerEvent.Type}
	}
}
