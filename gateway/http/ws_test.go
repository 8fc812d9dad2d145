package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/lexigraph/config"
	"github.com/c360/lexigraph/graph"
	"github.com/c360/lexigraph/stream"
)

func wsURL(serverURL string) string {
	return "ws" + strings.TrimPrefix(serverURL, "http") + "/query/ws"
}

func TestQueryWS_MockModeStreamsThreeEvents(t *testing.T) {
	gw := newTestGateway(t, config.ServerConfig{}, nil, nil)
	server := httptest.NewServer(newTestMux(t, gw))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server.URL), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(graph.QueryRequest{
		QueryType: graph.QueryVocabulary,
		Topic:     "hello",
	}))

	var events []stream.Event
	for i := 0; i < 3; i++ {
		var ev stream.Event
		require.NoError(t, conn.ReadJSON(&ev))
		events = append(events, ev)
	}

	assert.Equal(t, stream.StatusProcessing, events[0].Status)
	require.NotNil(t, events[0].Query)
	assert.Equal(t, "hello", *events[0].Query)
	assert.Equal(t, stream.StatusResult, events[1].Status)
	assert.Equal(t, "graph database not connected", events[1].Data["message"])
	assert.Equal(t, stream.StatusComplete, events[2].Status)
	require.NotNil(t, events[2].TotalResults)
	assert.Equal(t, 1, *events[2].TotalResults)

	// Server closes normally after the complete event
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure))
}

func TestQueryWS_StreamsResults(t *testing.T) {
	runner := &fakeRunner{rows: []graph.Row{
		{"title": "Die Leeu"},
		{"title": "Die Olifant"},
	}}
	gw := newTestGateway(t, config.ServerConfig{}, runner, &fakeDatabase{connected: true})
	server := httptest.NewServer(newTestMux(t, gw))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server.URL), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(graph.QueryRequest{
		QueryType: graph.QueryStory,
		Topic:     "animals",
	}))

	var events []stream.Event
	for i := 0; i < 4; i++ {
		var ev stream.Event
		require.NoError(t, conn.ReadJSON(&ev))
		events = append(events, ev)
	}

	assert.Equal(t, "Die Leeu", events[1].Data["title"])
	assert.Equal(t, "Die Olifant", events[2].Data["title"])
	assert.Equal(t, 2, *events[3].TotalResults)
}

func TestQueryWS_InvalidMessageCloses(t *testing.T) {
	gw := newTestGateway(t, config.ServerConfig{}, nil, nil)
	server := httptest.NewServer(newTestMux(t, gw))
	defer server.Close()

	conn, _, err := websocket.DefaultDialer.Dial(wsURL(server.URL), nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("{not json")))

	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseUnsupportedData))
}

func TestQueryWS_RejectsCrossOriginWithoutCORS(t *testing.T) {
	gw := newTestGateway(t, config.ServerConfig{}, nil, nil)
	server := httptest.NewServer(newTestMux(t, gw))
	defer server.Close()

	header := http.Header{}
	header.Set("Origin", "https://evil.example.com")

	_, resp, err := websocket.DefaultDialer.Dial(wsURL(server.URL), header)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCheckWSOrigin_AllowsConfiguredOrigins(t *testing.T) {
	cfg := config.ServerConfig{
		EnableCORS:  true,
		CORSOrigins: []string{"https://app.example.com"},
	}
	gw := newTestGateway(t, cfg, nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/query/ws", nil)
	req.Header.Set("Origin", "https://app.example.com")
	assert.True(t, gw.checkWSOrigin(req))

	req.Header.Set("Origin", "https://other.example.com")
	assert.False(t, gw.checkWSOrigin(req))
}
