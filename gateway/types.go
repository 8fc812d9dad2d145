// Package gateway defines the external interface types for the LexiGraph
// service: the tool descriptor published to agent platforms and the health
// response shape.
package gateway

import (
	"github.com/c360/lexigraph/graph"
	"github.com/c360/lexigraph/health"
)

// SchemaProperty describes one input field of a tool
type SchemaProperty struct {
	Type        string   `json:"type"`
	Enum        []string `json:"enum,omitempty"`
	Default     string   `json:"default,omitempty"`
	Description string   `json:"description,omitempty"`
}

// InputSchema is the JSON-schema shaped description of a tool's input
type InputSchema struct {
	Type       string                    `json:"type"`
	Properties map[string]SchemaProperty `json:"properties"`
	Required   []string                  `json:"required"`
}

// ToolDescriptor advertises one callable tool to agent platforms
type ToolDescriptor struct {
	Name        string      `json:"name"`
	Description string      `json:"description"`
	InputSchema InputSchema `json:"inputSchema"`
}

// ToolList is the /tools response body
type ToolList struct {
	Tools []ToolDescriptor `json:"tools"`
}

// HealthResponse is the /health response body. Components carries the
// per-component roll-up from the health monitor.
type HealthResponse struct {
	Status            string          `json:"status"`
	Message           string          `json:"message"`
	DatabaseConnected bool            `json:"database_connected"`
	Components        []health.Status `json:"components,omitempty"`
}

// QueryTool returns the descriptor for the knowledge graph query tool
func QueryTool() ToolDescriptor {
	queryTypes := make([]string, 0, len(graph.QueryTypes()))
	for _, qt := range graph.QueryTypes() {
		queryTypes = append(queryTypes, string(qt))
	}

	difficulties := make([]string, 0, len(graph.Difficulties()))
	for _, d := range graph.Difficulties() {
		difficulties = append(difficulties, string(d))
	}

	return ToolDescriptor{
		Name:        "query_afrikaans_knowledge_graph",
		Description: "Query the Afrikaans knowledge graph for educational content, stories, vocabulary, and cultural information",
		InputSchema: InputSchema{
			Type: "object",
			Properties: map[string]SchemaProperty{
				"query_type": {
					Type:        "string",
					Enum:        queryTypes,
					Description: "Type of Afrikaans content to search for",
				},
				"topic": {
					Type:        "string",
					Description: "Specific topic or question about Afrikaans",
				},
				"difficulty": {
					Type:    "string",
					Enum:    difficulties,
					Default: string(graph.DifficultyBeginner),
				},
			},
			Required: []string{"query_type", "topic"},
		},
	}
}
