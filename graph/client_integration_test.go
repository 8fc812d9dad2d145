//go:build integration

package graph

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const neo4jTestPassword = "integration-test"

// startNeo4jContainer starts a disposable Neo4j instance and returns its bolt URI
func startNeo4jContainer(ctx context.Context, t *testing.T) (testcontainers.Container, string) {
	req := testcontainers.ContainerRequest{
		Image:        "neo4j:5",
		ExposedPorts: []string{"7687/tcp"},
		Env: map[string]string{
			"NEO4J_AUTH": "neo4j/" + neo4jTestPassword,
		},
		WaitingFor: wait.ForLog("Started.").WithStartupTimeout(2 * time.Minute),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "7687")
	require.NoError(t, err)

	return container, fmt.Sprintf("bolt://%s:%s", host, port.Port())
}

func TestIntegration_ConnectAndRun(t *testing.T) {
	ctx := context.Background()

	container, uri := startNeo4jContainer(ctx, t)
	defer container.Terminate(ctx)

	client, err := NewClient(uri, "neo4j", neo4jTestPassword,
		WithConnectTimeout(30*time.Second))
	require.NoError(t, err)

	require.NoError(t, client.Connect(ctx))
	defer client.Close(ctx)

	assert.True(t, client.IsConnected())
	assert.Equal(t, StatusConnected, client.Status())

	// Seed one vocabulary node
	_, err = client.Run(ctx,
		`CREATE (:Word {language: 'Afrikaans', afrikaans: 'hallo', english: 'hello', pronunciation: 'hah-loh'})`,
		nil)
	require.NoError(t, err)

	// Run the vocabulary template end to end
	rows, err := client.Run(ctx, SelectTemplate(QueryVocabulary), map[string]any{
		"topic":      "hello",
		"difficulty": "beginner",
	})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "hallo", rows[0]["afrikaans"])
	assert.Equal(t, "hello", rows[0]["english"])
	assert.Equal(t, "hah-loh", rows[0]["pronunciation"])
}

func TestIntegration_ExecutorAgainstRealDatabase(t *testing.T) {
	ctx := context.Background()

	container, uri := startNeo4jContainer(ctx, t)
	defer container.Terminate(ctx)

	client, err := NewClient(uri, "neo4j", neo4jTestPassword,
		WithConnectTimeout(30*time.Second))
	require.NoError(t, err)
	require.NoError(t, client.Connect(ctx))
	defer client.Close(ctx)

	_, err = client.Run(ctx,
		`CREATE (:Story {title: 'Die Leeu', content: 'n storie oor n leeu', difficulty: 'beginner'})`,
		nil)
	require.NoError(t, err)

	exec := NewExecutor(client, nil, nil)

	rows := exec.Execute(ctx, QueryRequest{QueryType: QueryStory, Topic: "leeu"})
	require.Len(t, rows, 1)
	assert.Equal(t, "Die Leeu", rows[0]["title"])

	// No-match query returns an empty, non-nil list
	rows = exec.Execute(ctx, QueryRequest{QueryType: QueryStory, Topic: "walvis"})
	require.NotNil(t, rows)
	assert.Empty(t, rows)
}

func TestIntegration_VerifyDetectsLostConnection(t *testing.T) {
	ctx := context.Background()

	container, uri := startNeo4jContainer(ctx, t)

	client, err := NewClient(uri, "neo4j", neo4jTestPassword,
		WithConnectTimeout(30*time.Second))
	require.NoError(t, err)
	require.NoError(t, client.Connect(ctx))
	defer client.Close(ctx)

	require.NoError(t, client.Verify(ctx))

	require.NoError(t, container.Terminate(ctx))

	assert.Error(t, client.Verify(ctx))
	assert.False(t, client.IsConnected())
}
