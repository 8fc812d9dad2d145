package graph

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/lexigraph/metric"
)

// fakeRunner records the last query and returns canned results
type fakeRunner struct {
	lastCypher string
	lastParams map[string]any
	rows       []Row
	err        error
}

func (f *fakeRunner) Run(_ context.Context, cypher string, params map[string]any) ([]Row, error) {
	f.lastCypher = cypher
	f.lastParams = params
	if f.err != nil {
		return nil, f.err
	}
	return f.rows, nil
}

func TestExecutor_Execute(t *testing.T) {
	runner := &fakeRunner{
		rows: []Row{
			{"afrikaans": "hallo", "english": "hello", "pronunciation": "hah-loh"},
			{"afrikaans": "goeiedag", "english": "good day", "pronunciation": "khoo-ye-dakh"},
		},
	}
	exec := NewExecutor(runner, nil, nil)

	results := exec.Execute(context.Background(), QueryRequest{
		QueryType: QueryVocabulary,
		Topic:     "hello",
	})

	require.Len(t, results, 2)
	assert.Equal(t, "hallo", results[0]["afrikaans"])

	// Template selected by type, parameters bound by name
	assert.Equal(t, SelectTemplate(QueryVocabulary), runner.lastCypher)
	assert.Equal(t, "hello", runner.lastParams["topic"])
	assert.Equal(t, "beginner", runner.lastParams["difficulty"])
}

func TestExecutor_Execute_UnknownTypeUsesGeneralTemplate(t *testing.T) {
	runner := &fakeRunner{}
	exec := NewExecutor(runner, nil, nil)

	exec.Execute(context.Background(), QueryRequest{QueryType: "riddles", Topic: "lion"})

	assert.Equal(t, SelectTemplate(QueryGeneral), runner.lastCypher)
}

func TestExecutor_Execute_FailureYieldsEmptyList(t *testing.T) {
	runner := &fakeRunner{err: fmt.Errorf("connection refused")}
	registry := metric.NewMetricsRegistry()
	exec := NewExecutor(runner, nil, registry.CoreMetrics())

	results := exec.Execute(context.Background(), QueryRequest{
		QueryType: QueryStory,
		Topic:     "lion",
	})

	// Failure is swallowed: empty, non-nil list, indistinguishable from no-match
	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestExecutor_Execute_NilRowsBecomeEmptyList(t *testing.T) {
	runner := &fakeRunner{rows: nil}
	exec := NewExecutor(runner, nil, nil)

	results := exec.Execute(context.Background(), QueryRequest{QueryType: QueryCulture, Topic: "braai"})

	require.NotNil(t, results)
	assert.Empty(t, results)
}

func TestExecutor_MockMode(t *testing.T) {
	exec := NewExecutor(nil, nil, nil)
	require.True(t, exec.MockMode())

	for _, qt := range []QueryType{QueryVocabulary, QueryGrammar, "anything"} {
		results := exec.Execute(context.Background(), QueryRequest{QueryType: qt, Topic: "hello"})

		// Always exactly one synthetic diagnostic row
		require.Len(t, results, 1)
		assert.Equal(t, "graph database not connected", results[0]["message"])
		assert.Equal(t, "hello", results[0]["topic"])
		assert.NotEmpty(t, results[0]["query_type"])
	}
}

func TestExecutor_MockMode_NormalizedTypeInDiagnosticRow(t *testing.T) {
	exec := NewExecutor(nil, nil, nil)

	results := exec.Execute(context.Background(), QueryRequest{QueryType: "bogus", Topic: "x"})

	require.Len(t, results, 1)
	assert.Equal(t, "general", results[0]["query_type"])
}
