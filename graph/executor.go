package graph

import (
	"context"
	"log/slog"
	"time"

	"github.com/c360/lexigraph/metric"
)

// Executor runs normalized query requests against the graph store and
// materializes the full result list. A nil runner puts the executor in mock
// mode: queries are never executed and a single synthetic diagnostic row is
// returned instead.
//
// Execution failures are not surfaced to callers: the executor logs the
// error, counts it, and returns an empty list. Callers cannot distinguish
// "zero matches" from "query failed" in the result; the distinction lives
// in logs and the query failure metric.
type Executor struct {
	runner  Runner
	logger  *slog.Logger
	metrics *metric.Metrics
}

// NewExecutor creates a query executor. runner may be nil (mock mode);
// metrics may be nil (metrics disabled, used in tests).
func NewExecutor(runner Runner, logger *slog.Logger, metrics *metric.Metrics) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{
		runner:  runner,
		logger:  logger,
		metrics: metrics,
	}
}

// MockMode reports whether the executor has no database behind it
func (e *Executor) MockMode() bool {
	return e.runner == nil
}

// Execute selects the template for the request, runs it with topic and
// difficulty bound by name, and returns every result row. Any execution
// error yields an empty list.
func (e *Executor) Execute(ctx context.Context, req QueryRequest) []Row {
	req.Normalize()

	if e.metrics != nil {
		e.metrics.QueriesTotal.WithLabelValues(string(req.QueryType)).Inc()
	}

	if e.runner == nil {
		e.logger.Debug("mock mode query",
			"query_type", req.QueryType,
			"topic", req.Topic)
		return []Row{{
			"message":    "graph database not connected",
			"topic":      req.Topic,
			"query_type": string(req.QueryType),
		}}
	}

	cypher := SelectTemplate(req.QueryType)
	params := map[string]any{
		"topic":      req.Topic,
		"difficulty": string(req.Difficulty),
	}

	start := time.Now()
	rows, err := e.runner.Run(ctx, cypher, params)
	elapsed := time.Since(start)

	if e.metrics != nil {
		e.metrics.QueryDuration.WithLabelValues(string(req.QueryType)).Observe(elapsed.Seconds())
	}

	if err != nil {
		e.logger.Error("query execution failed, returning empty results",
			"query_type", req.QueryType,
			"topic", req.Topic,
			"duration", elapsed,
			"error", err)
		if e.metrics != nil {
			e.metrics.QueryFailures.Inc()
		}
		return []Row{}
	}

	e.logger.Info("query executed",
		"query_type", req.QueryType,
		"topic", req.Topic,
		"results", len(rows),
		"duration", elapsed)

	if e.metrics != nil {
		e.metrics.QueryResultRows.Observe(float64(len(rows)))
	}

	if rows == nil {
		rows = []Row{}
	}
	return rows
}
