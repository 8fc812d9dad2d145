package stream

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/c360/lexigraph/errors"
)

// SSEWriter frames stream events as text/event-stream messages and flushes
// each one to the client as it is produced.
type SSEWriter struct {
	w       http.ResponseWriter
	flusher http.Flusher
}

// NewSSEWriter prepares a response writer for SSE output. It sets the
// event-stream headers and fails if the underlying writer cannot flush.
func NewSSEWriter(w http.ResponseWriter) (*SSEWriter, error) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		return nil, errors.WrapFatal(errors.ErrInvalidData, "SSEWriter", "NewSSEWriter",
			"response writer does not support streaming")
	}

	h := w.Header()
	h.Set("Content-Type", "text/event-stream")
	h.Set("Cache-Control", "no-cache")
	h.Set("Connection", "keep-alive")
	h.Set("X-Accel-Buffering", "no")

	return &SSEWriter{w: w, flusher: flusher}, nil
}

// Write sends one event as a framed SSE message and flushes it
func (s *SSEWriter) Write(ev Event) error {
	data, err := json.Marshal(ev)
	if err != nil {
		return errors.WrapInvalid(err, "SSEWriter", "Write", "marshal event")
	}

	if _, err := fmt.Fprintf(s.w, "data: %s\n\n", data); err != nil {
		return errors.WrapTransient(err, "SSEWriter", "Write", "write frame")
	}

	s.flusher.Flush()
	return nil
}
