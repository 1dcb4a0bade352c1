package metrics

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Drop reasons recorded on the events-dropped counter.
const (
	DropKind    = "kind"
	DropSelf    = "self"
	DropChannel = "channel"
	DropHistory = "history"
)

var (
	envelopes = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chatbridge_envelopes_total",
		Help: "Transport envelopes received",
	})
	dropped = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "chatbridge_events_dropped_total",
		Help: "Events dropped by stream filter predicates",
	}, []string{"reason"})
	delivered = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chatbridge_messages_delivered_total",
		Help: "Normalized messages handed to the consumer",
	})
	translateErrors = prometheus.NewCounter(prometheus.CounterOpts{
		Name: "chatbridge_translate_errors_total",
		Help: "Per-event translation failures",
	})
)

func init() {
	prometheus.MustRegister(envelopes, dropped, delivered, translateErrors)
}

// Start runs a Prometheus handler on the given listen addr. An empty
// addr disables the listener.
func Start(ctx context.Context, listen string, log *slog.Logger) error {
	if listen == "" {
		return nil
	}
	srv := &http.Server{Addr: listen, Handler: promhttp.Handler()}
	go func() {
		<-ctx.Done()
		_ = srv.Shutdown(context.Background())
	}()
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			if log != nil {
				log.Error("metrics server failed", "error", err)
			}
		}
	}()
	return nil
}

func IncEnvelope() { envelopes.Inc() }

func IncDropped(reason string) { dropped.WithLabelValues(reason).Inc() }

func IncDelivered() { delivered.Inc() }

func IncTranslateError() { translateErrors.Inc() }
