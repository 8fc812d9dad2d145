package stream

import (
	"context"
	"time"

	"github.com/c360/lexigraph/graph"
	"github.com/c360/lexigraph/metric"
)

// Emitter turns a pre-fetched result list into a lazy, ordered event
// sequence: processing, one result per row, complete. A fixed delay is
// inserted between successive result events as visual pacing for live
// consumers, not backpressure.
type Emitter struct {
	resultDelay time.Duration
	metrics     *metric.Metrics
}

// NewEmitter creates an emitter with the given pacing delay.
// metrics may be nil (used in tests).
func NewEmitter(resultDelay time.Duration, metrics *metric.Metrics) *Emitter {
	return &Emitter{
		resultDelay: resultDelay,
		metrics:     metrics,
	}
}

// Emit produces exactly len(rows)+2 events on the returned channel, in
// order, then closes it. Cancelling the context (client disconnect)
// terminates the sequence early; the channel is closed either way.
func (e *Emitter) Emit(ctx context.Context, topic string, rows []graph.Row) <-chan Event {
	ch := make(chan Event)

	go func() {
		defer close(ch)

		if e.metrics != nil {
			e.metrics.ActiveStreams.Inc()
			defer e.metrics.ActiveStreams.Dec()
		}

		if !e.send(ctx, ch, NewProcessing(topic)) {
			return
		}

		for i, row := range rows {
			if !e.send(ctx, ch, NewResult(i, row)) {
				return
			}
			if !e.pause(ctx) {
				return
			}
		}

		e.send(ctx, ch, NewComplete(len(rows)))
	}()

	return ch
}

// send delivers one event unless the context is done
func (e *Emitter) send(ctx context.Context, ch chan<- Event, ev Event) bool {
	select {
	case ch <- ev:
		if e.metrics != nil {
			e.metrics.EventsEmitted.WithLabelValues(string(ev.Status)).Inc()
		}
		return true
	case <-ctx.Done():
		return false
	}
}

// pause waits out the pacing delay unless the context is done
func (e *Emitter) pause(ctx context.Context) bool {
	if e.resultDelay <= 0 {
		return ctx.Err() == nil
	}

	timer := time.NewTimer(e.resultDelay)
	defer timer.Stop()

	select {
	case <-timer.C:
		return true
	case <-ctx.Done():
		return false
	}
}
