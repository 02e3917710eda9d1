package llm

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScreeningSchema(t *testing.T) {
	schema := screeningSchema()
	assert.ElementsMatch(t, []string{"should_be_analysed", "confidence_level", "summary"}, schema.Required)

	data, err := json.Marshal(schema)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"should_be_analysed"`)
}

func TestPolicySchema(t *testing.T) {
	schema := policySchema()
	assert.Equal(t, []string{"title", "implementation_performance"}, schema.Required)

	perf, ok := schema.Properties["implementation_performance"]
	require.True(t, ok)
	assert.Equal(t, []string{"Mixed Outcome", "Failure", "Success"}, perf.Enum)

	// Jede Kodierungsdimension hat ihr zugehöriges Textauszug-Feld.
	for _, dim := range []string{
		"Political_salience_or_prioritization_or_comittment_or_support",
		"cross_boundary_issue",
		"availability_of_theory_and_technology",
		"diversity_of_target_group_behaviour",
		"extent_of_behavioral_change_required",
	} {
		_, ok := schema.Properties[dim]
		assert.True(t, ok, dim)
	}
	_, ok = schema.Properties["text_excerpt_for_cross_boundary_issue"]
	assert.True(t, ok)
}

func TestPolicyAnalysisOmitsUnsetFields(t *testing.T) {
	analysis := PolicyAnalysis{
		Title:                     "Some Policy",
		ImplementationPerformance: "Mixed Outcome",
	}
	data, err := json.Marshal(analysis)
	require.NoError(t, err)

	var keys map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &keys))
	assert.Len(t, keys, 2)
	assert.Equal(t, "Mixed Outcome", keys["implementation_performance"])
}

func TestPolicyAnalysisFieldNames(t *testing.T) {
	salience := true
	excerpt := "the president backed the program"
	analysis := PolicyAnalysis{
		Title:                     "Some Policy",
		ImplementationPerformance: "Success",
		PoliticalSalience:         &salience,
		PoliticalSalienceExcerpt:  &excerpt,
	}
	data, err := json.Marshal(analysis)
	require.NoError(t, err)

	assert.Contains(t, string(data), `"Political_salience_or_prioritization_or_comittment_or_support":true`)
	assert.Contains(t, string(data), `"text_excerpt_for_political_salience_or_prioritization_or_comittment_or_support"`)
}
