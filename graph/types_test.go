package graph

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueryType_Valid(t *testing.T) {
	for _, qt := range QueryTypes() {
		assert.True(t, qt.Valid(), "expected %q to be valid", qt)
	}

	for _, invalid := range []QueryType{"", "unknown", "Vocabulary", "GENERAL"} {
		assert.False(t, invalid.Valid(), "expected %q to be invalid", invalid)
	}
}

func TestDifficulty_Valid(t *testing.T) {
	for _, d := range Difficulties() {
		assert.True(t, d.Valid(), "expected %q to be valid", d)
	}

	assert.False(t, Difficulty("").Valid())
	assert.False(t, Difficulty("expert").Valid())
}

func TestQueryRequest_Normalize(t *testing.T) {
	tests := []struct {
		name           string
		request        QueryRequest
		wantType       QueryType
		wantDifficulty Difficulty
	}{
		{
			name:           "valid request untouched",
			request:        QueryRequest{QueryType: QueryStory, Topic: "market", Difficulty: DifficultyAdvanced},
			wantType:       QueryStory,
			wantDifficulty: DifficultyAdvanced,
		},
		{
			name:           "unknown type falls back to general",
			request:        QueryRequest{QueryType: "poetry", Topic: "market"},
			wantType:       QueryGeneral,
			wantDifficulty: DifficultyBeginner,
		},
		{
			name:           "missing difficulty defaults to beginner",
			request:        QueryRequest{QueryType: QueryVocabulary, Topic: "hello"},
			wantType:       QueryVocabulary,
			wantDifficulty: DifficultyBeginner,
		},
		{
			name:           "unknown difficulty defaults to beginner",
			request:        QueryRequest{QueryType: QueryGrammar, Difficulty: "impossible"},
			wantType:       QueryGrammar,
			wantDifficulty: DifficultyBeginner,
		},
		{
			name:           "empty request resolves to general beginner",
			request:        QueryRequest{},
			wantType:       QueryGeneral,
			wantDifficulty: DifficultyBeginner,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.request.Normalize()
			assert.Equal(t, tt.wantType, tt.request.QueryType)
			assert.Equal(t, tt.wantDifficulty, tt.request.Difficulty)
		})
	}
}

func TestQueryRequest_JSONShape(t *testing.T) {
	var req QueryRequest
	body := `{"query_type":"vocabulary","topic":"hello","difficulty":"intermediate"}`
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	assert.Equal(t, QueryVocabulary, req.QueryType)
	assert.Equal(t, "hello", req.Topic)
	assert.Equal(t, DifficultyIntermediate, req.Difficulty)
}
