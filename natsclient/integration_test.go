//go:build integration

package natsclient

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/nats-io/nats.go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// startNATSContainer starts a disposable NATS server and returns its URL
func startNATSContainer(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	req := testcontainers.ContainerRequest{
		Image:        "nats:latest",
		ExposedPorts: []string{"4222/tcp"},
		WaitingFor:   wait.ForListeningPort("4222/tcp"),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "4222")
	require.NoError(t, err)

	return container, fmt.Sprintf("nats://%s:%s", host, port.Port())
}

func TestIntegration_ConnectAndPublish(t *testing.T) {
	ctx := context.Background()

	container, url := startNATSContainer(ctx, t)
	defer container.Terminate(ctx)

	client, err := NewClient(url, WithClientName("lexigraph-test"))
	require.NoError(t, err)

	require.NoError(t, client.Connect(ctx))
	defer client.Close(ctx)

	assert.True(t, client.IsConnected())
	assert.Equal(t, StatusConnected, client.Status())

	// Raw subscriber to observe mirrored events
	sub, err := nats.Connect(url)
	require.NoError(t, err)
	defer sub.Close()

	received := make(chan *nats.Msg, 1)
	_, err = sub.ChanSubscribe("lexigraph.events.complete", received)
	require.NoError(t, err)
	require.NoError(t, sub.Flush())

	payload := []byte(`{"status":"complete","total_results":1}`)
	require.NoError(t, client.Publish("lexigraph.events.complete", payload))

	select {
	case msg := <-received:
		assert.Equal(t, payload, msg.Data)
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for mirrored event")
	}
}
