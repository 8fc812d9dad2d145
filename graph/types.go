// Package graph provides the knowledge-graph query pipeline: fixed Cypher
// templates keyed by query type, a Neo4j client with process-scoped
// lifecycle, and an executor that materializes query results.
package graph

// QueryType tags the kind of educational content a query targets
type QueryType string

// Supported query types
const (
	QueryVocabulary QueryType = "vocabulary"
	QueryStory      QueryType = "story"
	QueryCulture    QueryType = "culture"
	QueryGrammar    QueryType = "grammar"
	QueryGeneral    QueryType = "general"
)

// Valid reports whether the query type is one of the five supported tags
func (q QueryType) Valid() bool {
	switch q {
	case QueryVocabulary, QueryStory, QueryCulture, QueryGrammar, QueryGeneral:
		return true
	default:
		return false
	}
}

// QueryTypes returns all supported query types in schema order
func QueryTypes() []QueryType {
	return []QueryType{QueryVocabulary, QueryStory, QueryCulture, QueryGrammar, QueryGeneral}
}

// Difficulty grades content for the learner
type Difficulty string

// Supported difficulty levels
const (
	DifficultyBeginner     Difficulty = "beginner"
	DifficultyIntermediate Difficulty = "intermediate"
	DifficultyAdvanced     Difficulty = "advanced"
)

// Valid reports whether the difficulty is a supported level
func (d Difficulty) Valid() bool {
	switch d {
	case DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced:
		return true
	default:
		return false
	}
}

// Difficulties returns all supported difficulty levels in schema order
func Difficulties() []Difficulty {
	return []Difficulty{DifficultyBeginner, DifficultyIntermediate, DifficultyAdvanced}
}

// QueryRequest is a structured query against the knowledge graph.
// Field content is never rejected: unknown tags are defaulted by Normalize.
type QueryRequest struct {
	QueryType  QueryType  `json:"query_type"`
	Topic      string     `json:"topic"`
	Difficulty Difficulty `json:"difficulty,omitempty"`
}

// Normalize applies the defaulting rules: unrecognized query types resolve
// to general, unrecognized or missing difficulty to beginner.
func (r *QueryRequest) Normalize() {
	if !r.QueryType.Valid() {
		r.QueryType = QueryGeneral
	}
	if !r.Difficulty.Valid() {
		r.Difficulty = DifficultyBeginner
	}
}

// Row is one record returned by executing a template against the graph
// database. Field names are determined by the template's RETURN clause;
// rows are opaque to the streaming layer.
type Row map[string]any
