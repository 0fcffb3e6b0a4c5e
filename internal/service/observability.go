package service

import (
	"context"
	"io"
	"log/slog"
	"time"
)

// OpEvent is one completed service operation: what ran, for how long, and
// whether it succeeded.
type OpEvent struct {
	Name      string
	StartedAt time.Time
	Duration  time.Duration
	Err       error
	Fields    map[string]any
}

// OpObserver receives operation events. Implementations must be cheap;
// they run inline on every service call.
type OpObserver interface {
	ObserveOp(ctx context.Context, event OpEvent)
}

// NoopOpObserver discards every event.
type NoopOpObserver struct{}

func (NoopOpObserver) ObserveOp(context.Context, OpEvent) {}

type logOpObserver struct {
	logger *slog.Logger
}

// NewLogOpObserver emits operation events as structured log lines on w.
func NewLogOpObserver(w io.Writer) OpObserver {
	if w == nil {
		return NoopOpObserver{}
	}
	return &logOpObserver{
		logger: slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: slog.LevelInfo})),
	}
}

func (o *logOpObserver) ObserveOp(ctx context.Context, event OpEvent) {
	attrs := []any{
		slog.String("op", event.Name),
		slog.Int64("duration_ms", event.Duration.Milliseconds()),
	}
	for k, v := range event.Fields {
		attrs = append(attrs, slog.Any(k, v))
	}
	if event.Err != nil {
		attrs = append(attrs, slog.String("error", event.Err.Error()))
		o.logger.ErrorContext(ctx, "service_op", attrs...)
		return
	}
	o.logger.InfoContext(ctx, "service_op", attrs...)
}

func observerOrNoop(observers []OpObserver) OpObserver {
	for _, obs := range observers {
		if obs != nil {
			return obs
		}
	}
	return NoopOpObserver{}
}

// observe reports one finished operation, success or failure.
func observe(ctx context.Context, obs OpObserver, name string, started time.Time, err error, fields map[string]any) {
	obs.ObserveOp(ctx, OpEvent{
		Name:      name,
		StartedAt: started,
		Duration:  time.Since(started),
		Err:       err,
		Fields:    fields,
	})
}
