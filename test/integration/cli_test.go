package integration

import (
	"testing"

	"gopkg.in/yaml.v3"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/succession-calculator/internal/calculation"
	"github.com/rpgo/succession-calculator/internal/config"
	"github.com/rpgo/succession-calculator/internal/domain"
)

// Mirrors what the "succession-cli example" subcommand prints, and that a
// round trip through YAML marshal/unmarshal preserves what Simulate needs.
func TestExampleInput_RoundTripsThroughYAML(t *testing.T) {
	parser := config.NewInputParser()
	example := parser.CreateExampleInput()

	data, err := yaml.Marshal(example)
	require.NoError(t, err)

	var roundTripped domain.SimulationInput
	require.NoError(t, yaml.Unmarshal(data, &roundTripped))

	assert.Equal(t, example.DeceasedName, roundTripped.DeceasedName)
	assert.Equal(t, example.MatrimonialRegime, roundTripped.MatrimonialRegime)
	assert.Len(t, roundTripped.Heirs, len(example.Heirs))
}

// The built-in example omits date_of_death (it is meant as a scaffold, not a
// ready-to-run input), so Validate should reject it until that field is set.
func TestExampleInput_RequiresDateOfDeathBeforeSimulating(t *testing.T) {
	parser := config.NewInputParser()
	example := parser.CreateExampleInput()

	err := parser.Validate(example)
	assert.Error(t, err)
}

// Loading the same input from a populated file runs clean end to end,
// exercising the same path "succession-cli simulate" takes.
func TestSimulateFromFile_DefaultLegalParameters(t *testing.T) {
	parser := config.NewInputParser()
	input, err := parser.LoadFromFile("testdata/simple_succession.yaml")
	require.NoError(t, err)

	result, err := calculation.Simulate(*input, domain.DefaultLegalParameters2025())
	require.NoError(t, err)
	assert.NotEmpty(t, result.CalculationSteps)
}
