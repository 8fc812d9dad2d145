package stream

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/c360/lexigraph/metric"
	"github.com/c360/lexigraph/natsclient"
)

// Mirror republishes stream events onto NATS subjects
// (<prefix>.<status>) for platform-side observability. Publishing is best
// effort: a mirror failure never affects the client-facing stream.
type Mirror struct {
	client        *natsclient.Client
	subjectPrefix string
	logger        *slog.Logger
	metrics       *metric.Metrics
}

// NewMirror creates an event mirror. client may be nil, in which case
// Publish is a no-op and callers never need to branch on configuration.
func NewMirror(client *natsclient.Client, subjectPrefix string, logger *slog.Logger, metrics *metric.Metrics) *Mirror {
	if logger == nil {
		logger = slog.Default()
	}
	if subjectPrefix == "" {
		subjectPrefix = "lexigraph.events"
	}
	return &Mirror{
		client:        client,
		subjectPrefix: subjectPrefix,
		logger:        logger,
		metrics:       metrics,
	}
}

// Enabled reports whether events are actually being mirrored
func (m *Mirror) Enabled() bool {
	return m != nil && m.client != nil
}

// Publish mirrors one event, best effort
func (m *Mirror) Publish(ev Event) {
	if !m.Enabled() {
		return
	}

	data, err := json.Marshal(ev)
	if err != nil {
		m.logger.Error("failed to marshal event for mirroring", "error", err)
		if m.metrics != nil {
			m.metrics.MirrorFailures.Inc()
		}
		return
	}

	subject := fmt.Sprintf("%s.%s", m.subjectPrefix, ev.Status)
	if err := m.client.Publish(subject, data); err != nil {
		m.logger.Warn("failed to mirror event", "subject", subject, "error", err)
		if m.metrics != nil {
			m.metrics.MirrorFailures.Inc()
		}
		return
	}

	if m.metrics != nil {
		m.metrics.EventsMirrored.Inc()
	}
}
