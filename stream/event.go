// Package stream implements the incremental response protocol: an ordered,
// finite sequence of events emitted for each query, transported over SSE or
// WebSocket and optionally mirrored to NATS.
package stream

import (
	"github.com/c360/lexigraph/graph"
)

// Status tags one unit of the server-to-client incremental response protocol
type Status string

// Event statuses, emitted in fixed order: one processing event, one result
// event per row, one complete event.
const (
	StatusProcessing Status = "processing"
	StatusResult     Status = "result"
	StatusComplete   Status = "complete"
)

// Event is one unit of the response stream. Status-specific fields use
// pointers so that zero values (empty query, index 0, total_results 0)
// still serialize.
type Event struct {
	Status       Status    `json:"status"`
	Query        *string   `json:"query,omitempty"`
	Data         graph.Row `json:"data,omitempty"`
	Index        *int      `json:"index,omitempty"`
	TotalResults *int      `json:"total_results,omitempty"`
}

// NewProcessing creates the leading event carrying the queried topic.
// The query key serializes even when the topic is empty.
func NewProcessing(topic string) Event {
	return Event{Status: StatusProcessing, Query: &topic}
}

// NewResult creates a result event carrying one row and its zero-based index
func NewResult(index int, row graph.Row) Event {
	return Event{Status: StatusResult, Data: row, Index: &index}
}

// NewComplete creates the terminating event carrying the total result count
func NewComplete(total int) Event {
	return Event{Status: StatusComplete, TotalResults: &total}
}
