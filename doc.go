// Package lexigraph provides an HTTP service that answers structured
// educational queries about the Afrikaans language from a Neo4j knowledge
// graph and streams results incrementally to clients.
//
// # Architecture
//
// LexiGraph is a thin pipeline with no intermediate processing stages:
//
//	┌─────────────────────────────────────┐
//	│          HTTP Gateway               │  /health, /tools,
//	│     (gateway, gateway/http)         │  /query (SSE), /query/ws
//	└─────────────────────────────────────┘
//	           ↓ dispatches to
//	┌─────────────────────────────────────┐
//	│          Query Pipeline             │  Template selection,
//	│            (graph)                  │  execution, mock mode
//	└─────────────────────────────────────┘
//	           ↓ materialized rows
//	┌─────────────────────────────────────┐
//	│          Event Stream               │  processing → result* →
//	│            (stream)                 │  complete, NATS mirror
//	└─────────────────────────────────────┘
//
// Every query resolves to one of five fixed Cypher templates keyed by
// query type (vocabulary, story, culture, grammar, general). Unknown
// query types fall back to general; requests are never rejected for
// field content. Results stream back as an ordered event sequence over
// Server-Sent Events or WebSocket.
//
// # Mock Mode
//
// When the graph database is not configured (NEO4J_URI, NEO4J_USERNAME,
// NEO4J_PASSWORD), the service stays fully operational and answers every
// query with a single diagnostic result row. Health checks report
// database_connected accordingly; the response never reports unhealthy
// for a missing database.
//
// # Packages
//
// Service packages:
//   - gateway, gateway/http: external interface (tools schema, SSE/WS handlers)
//   - graph: Cypher templates, Neo4j client, query executor
//   - stream: event protocol, SSE framing, NATS event mirror
//
// Infrastructure:
//   - config: JSON file + environment configuration
//   - natsclient: NATS connection management for the event mirror
//   - metric: Prometheus metrics and the metrics HTTP server
//   - errors: classified error handling
//   - health: component health monitoring
//
// # Binary
//
// Build and run LexiGraph:
//
//	go build -o bin/lexigraph ./cmd/lexigraph
//
//	# Mock mode (no database)
//	./bin/lexigraph
//
//	# Against a live graph database
//	export NEO4J_URI=bolt://localhost:7687
//	export NEO4J_USERNAME=neo4j
//	export NEO4J_PASSWORD=secret
//	./bin/lexigraph
package lexigraph
