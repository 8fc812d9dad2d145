// Package http provides the HTTP gateway for the LexiGraph service: health
// and tool discovery endpoints plus the streaming query endpoint.
package http

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/c360/lexigraph/config"
	"github.com/c360/lexigraph/errors"
	"github.com/c360/lexigraph/gateway"
	"github.com/c360/lexigraph/graph"
	"github.com/c360/lexigraph/health"
	"github.com/c360/lexigraph/metric"
	"github.com/c360/lexigraph/stream"
)

// DatabaseStatus reports graph database connectivity for health checks.
// A nil DatabaseStatus means no database is configured (mock mode).
type DatabaseStatus interface {
	IsConnected() bool
}

// Dependencies holds the collaborators the gateway needs to serve requests
type Dependencies struct {
	Executor *graph.Executor
	Emitter  *stream.Emitter
	Mirror   *stream.Mirror
	Database DatabaseStatus
	Logger   *slog.Logger
	Metrics  *metric.Metrics
	Monitor  *health.Monitor
}

// getOrGenerateRequestID extracts the request ID from headers or generates
// a new one for tracing across the gateway
func getOrGenerateRequestID(r *http.Request) string {
	if reqID := r.Header.Get("X-Request-ID"); reqID != "" {
		return reqID
	}
	return uuid.NewString()
}

// Gateway serves the LexiGraph external HTTP interface
type Gateway struct {
	name     string
	config   config.ServerConfig
	executor *graph.Executor
	emitter  *stream.Emitter
	mirror   *stream.Mirror
	database DatabaseStatus
	logger   *slog.Logger
	metrics  *metric.Metrics
	monitor  *health.Monitor

	// Protects lastActivity for concurrent reads
	mu           sync.RWMutex
	startTime    time.Time
	lastActivity time.Time

	// Metrics (atomic operations)
	requestsTotal   atomic.Uint64
	requestsSuccess atomic.Uint64
	requestsFailed  atomic.Uint64
}

// NewGateway creates the HTTP gateway from configuration and dependencies
func NewGateway(cfg config.ServerConfig, deps Dependencies) (*Gateway, error) {
	if deps.Executor == nil {
		return nil, errors.WrapFatal(errors.ErrMissingConfig, "Gateway", "NewGateway",
			"executor is required")
	}
	if deps.Emitter == nil {
		return nil, errors.WrapFatal(errors.ErrMissingConfig, "Gateway", "NewGateway",
			"emitter is required")
	}

	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	monitor := deps.Monitor
	if monitor == nil {
		monitor = health.NewMonitor()
	}
	if cfg.MaxRequestSize <= 0 {
		cfg.MaxRequestSize = 1 << 20
	}

	return &Gateway{
		name:      "http-gateway",
		config:    cfg,
		executor:  deps.Executor,
		emitter:   deps.Emitter,
		mirror:    deps.Mirror,
		database:  deps.Database,
		logger:    logger,
		metrics:   deps.Metrics,
		monitor:   monitor,
		startTime: time.Now(),
	}, nil
}

// RegisterHandlers registers gateway routes with the HTTP mux
func (g *Gateway) RegisterHandlers(mux *http.ServeMux) {
	mux.HandleFunc("/health", g.withCommon(http.MethodGet, g.handleHealth))
	mux.HandleFunc("/tools", g.withCommon(http.MethodGet, g.handleTools))
	mux.HandleFunc("/query", g.withCommon(http.MethodPost, g.handleQuery))
	mux.HandleFunc("/query/ws", g.withCommon(http.MethodGet, g.handleQueryWS))
}

// withCommon wraps a handler with request ID, method filtering, CORS, and
// request accounting
func (g *Gateway) withCommon(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		requestID := getOrGenerateRequestID(r)
		w.Header().Set("X-Request-ID", requestID)

		g.requestsTotal.Add(1)
		g.mu.Lock()
		g.lastActivity = time.Now()
		g.mu.Unlock()

		if g.config.EnableCORS {
			g.applyCORS(w, r)
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
		}

		if r.Method != method {
			g.writeError(w, http.StatusMethodNotAllowed,
				fmt.Sprintf("method %s not allowed", r.Method))
			g.requestsFailed.Add(1)
			return
		}

		next(w, r)
	}
}

// handleHealth reports service status with a per-component roll-up from the
// monitor. Mock mode is a degraded component, never an unhealthy response:
// the service answers queries either way.
func (g *Gateway) handleHealth(w http.ResponseWriter, _ *http.Request) {
	connected := g.database != nil && g.database.IsConnected()

	g.monitor.Update(g.name, g.Health())
	if connected {
		g.monitor.UpdateHealthy("graph", "database connected")
	} else {
		g.monitor.UpdateDegraded("graph", "database not configured, running in mock mode")
	}
	aggregate := g.monitor.AggregateHealth("lexigraph")

	if g.metrics != nil {
		dbStatus := float64(0)
		if connected {
			dbStatus = 1
		}
		g.metrics.DatabaseConnected.Set(dbStatus)
		g.metrics.HealthCheckStatus.WithLabelValues(g.name).Set(1)
	}

	g.writeJSON(w, http.StatusOK, gateway.HealthResponse{
		Status:            "healthy",
		Message:           "LexiGraph knowledge graph service is running",
		DatabaseConnected: connected,
		Components:        aggregate.SubStatuses,
	})
	g.requestsSuccess.Add(1)
}

// handleTools returns the tool descriptors available to agent platforms
func (g *Gateway) handleTools(w http.ResponseWriter, _ *http.Request) {
	g.writeJSON(w, http.StatusOK, gateway.ToolList{
		Tools: []gateway.ToolDescriptor{gateway.QueryTool()},
	})
	g.requestsSuccess.Add(1)
}

// handleQuery runs the query pipeline and streams events over SSE
func (g *Gateway) handleQuery(w http.ResponseWriter, r *http.Request) {
	req, ok := g.readQueryRequest(w, r)
	if !ok {
		return
	}

	g.logger.Info("query received",
		"query_type", req.QueryType,
		"topic", req.Topic,
		"difficulty", req.Difficulty,
		"request_id", w.Header().Get("X-Request-ID"))

	// Blocking fetch, then incremental emission of the materialized list
	results := g.executor.Execute(r.Context(), req)

	sse, err := stream.NewSSEWriter(w)
	if err != nil {
		g.writeError(w, http.StatusInternalServerError, "streaming not supported")
		g.requestsFailed.Add(1)
		return
	}

	for ev := range g.emitter.Emit(r.Context(), req.Topic, results) {
		if err := sse.Write(ev); err != nil {
			// Client gone; the context cancellation stops the emitter
			g.logger.Debug("stream write failed, client disconnected", "error", err)
			g.requestsFailed.Add(1)
			return
		}
		g.mirror.Publish(ev)
	}

	g.requestsSuccess.Add(1)
}

// readQueryRequest parses and normalizes the query body. Field content is
// never rejected; only a body that is not valid JSON yields an error.
func (g *Gateway) readQueryRequest(w http.ResponseWriter, r *http.Request) (graph.QueryRequest, bool) {
	defer r.Body.Close()

	bodyReader := io.LimitReader(r.Body, g.config.MaxRequestSize+1)
	body, err := io.ReadAll(bodyReader)
	if err != nil {
		g.writeError(w, http.StatusBadRequest, "failed to read request body")
		g.requestsFailed.Add(1)
		return graph.QueryRequest{}, false
	}

	if int64(len(body)) > g.config.MaxRequestSize {
		g.writeError(w, http.StatusRequestEntityTooLarge,
			fmt.Sprintf("request body exceeds maximum size of %d bytes", g.config.MaxRequestSize))
		g.requestsFailed.Add(1)
		return graph.QueryRequest{}, false
	}

	var req graph.QueryRequest
	if err := json.Unmarshal(body, &req); err != nil {
		g.writeError(w, http.StatusBadRequest, "invalid request")
		g.requestsFailed.Add(1)
		return graph.QueryRequest{}, false
	}

	req.Normalize()
	return req, true
}

// applyCORS applies CORS headers to the response
func (g *Gateway) applyCORS(w http.ResponseWriter, r *http.Request) {
	origin := r.Header.Get("Origin")

	allowed := false
	for _, allowedOrigin := range g.config.CORSOrigins {
		if allowedOrigin == "*" || allowedOrigin == origin {
			allowed = true
			break
		}
	}

	if allowed {
		if origin != "" {
			w.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			w.Header().Set("Access-Control-Allow-Origin", "*")
		}
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		w.Header().Set("Access-Control-Max-Age", "3600")
	}
}

// mapErrorToHTTPStatus maps classified errors to HTTP status codes
func mapErrorToHTTPStatus(err error) int {
	if err == nil {
		return http.StatusInternalServerError
	}

	if errors.IsInvalid(err) {
		return http.StatusBadRequest
	}
	if errors.IsTransient(err) {
		if strings.Contains(err.Error(), "timeout") {
			return http.StatusGatewayTimeout
		}
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// writeError writes a JSON error response
func (g *Gateway) writeError(w http.ResponseWriter, statusCode int, message string) {
	g.writeJSON(w, statusCode, map[string]any{
		"error":  message,
		"status": statusCode,
	})
}

// writeJSON writes a JSON response with the given status code
func (g *Gateway) writeJSON(w http.ResponseWriter, statusCode int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		g.logger.Debug("failed to write response", "error", err)
	}
}

// RegisterMetrics exposes the gateway's request accounting through the
// metrics registry as component-scoped collectors
func (g *Gateway) RegisterMetrics(registry *metric.MetricsRegistry) error {
	counters := []struct {
		name string
		help string
		load func() uint64
	}{
		{"requests_total", "Total number of HTTP requests received by the gateway", g.requestsTotal.Load},
		{"requests_success_total", "Total number of HTTP requests answered successfully", g.requestsSuccess.Load},
		{"requests_failed_total", "Total number of HTTP requests rejected or aborted", g.requestsFailed.Load},
	}

	for _, c := range counters {
		load := c.load
		collector := prometheus.NewCounterFunc(prometheus.CounterOpts{
			Namespace: "lexigraph",
			Subsystem: "gateway",
			Name:      c.name,
			Help:      c.help,
		}, func() float64 { return float64(load()) })

		if err := registry.Register(g.name, c.name, collector); err != nil {
			return err
		}
	}
	return nil
}

// Health returns the gateway's current health status
func (g *Gateway) Health() health.Status {
	g.mu.RLock()
	startTime := g.startTime
	lastActivity := g.lastActivity
	g.mu.RUnlock()

	status := health.NewHealthy(g.name, "serving")
	return status.WithMetrics(&health.Metrics{
		Uptime:         time.Since(startTime),
		ErrorCount:     int(g.requestsFailed.Load()),
		QueriesHandled: int64(g.requestsSuccess.Load()),
		LastActivity:   lastActivity,
	})
}
