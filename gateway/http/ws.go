package http

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/c360/lexigraph/graph"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsReadLimit    = 1 << 20
)

// handleQueryWS serves the same query pipeline over a WebSocket. The client
// sends one query request as a JSON text message; the server answers with
// the same event sequence SSE clients receive, then closes the connection.
func (g *Gateway) handleQueryWS(w http.ResponseWriter, r *http.Request) {
	upgrader := websocket.Upgrader{
		ReadBufferSize:  4096,
		WriteBufferSize: 4096,
		CheckOrigin:     g.checkWSOrigin,
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error response
		g.logger.Debug("websocket upgrade failed", "error", err)
		g.requestsFailed.Add(1)
		return
	}
	defer conn.Close()

	conn.SetReadLimit(wsReadLimit)

	var req graph.QueryRequest
	if err := conn.ReadJSON(&req); err != nil {
		g.wsClose(conn, websocket.CloseUnsupportedData, "invalid request")
		g.requestsFailed.Add(1)
		return
	}
	req.Normalize()

	g.logger.Info("websocket query received",
		"query_type", req.QueryType,
		"topic", req.Topic,
		"difficulty", req.Difficulty)

	results := g.executor.Execute(r.Context(), req)

	for ev := range g.emitter.Emit(r.Context(), req.Topic, results) {
		data, err := json.Marshal(ev)
		if err != nil {
			g.requestsFailed.Add(1)
			return
		}

		conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			g.logger.Debug("websocket write failed, client disconnected", "error", err)
			g.requestsFailed.Add(1)
			return
		}
		g.mirror.Publish(ev)
	}

	g.wsClose(conn, websocket.CloseNormalClosure, "")
	g.requestsSuccess.Add(1)
}

// checkWSOrigin mirrors the CORS policy for WebSocket upgrades. With CORS
// disabled only same-origin requests pass, which is gorilla's default rule.
func (g *Gateway) checkWSOrigin(r *http.Request) bool {
	if !g.config.EnableCORS {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		return origin == "http://"+r.Host || origin == "https://"+r.Host
	}

	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	for _, allowed := range g.config.CORSOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

// wsClose sends a close frame with the given code, best effort
func (g *Gateway) wsClose(conn *websocket.Conn, code int, reason string) {
	msg := websocket.FormatCloseMessage(code, reason)
	conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
	if err := conn.WriteMessage(websocket.CloseMessage, msg); err != nil {
		g.logger.Debug("websocket close failed", "error", err)
	}
}
