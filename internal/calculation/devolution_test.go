package calculation

import (
	"testing"
	"time"

	sdecimal "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rpgo/succession-calculator/internal/domain"
)

func heir(id string, rel domain.Relationship) domain.Heir {
	return domain.Heir{ID: id, Relationship: rel, BirthDate: time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)}
}

func TestSolveDevolution_Order1_ThreeDescendantRootsReserveThreeQuarters(t *testing.T) {
	input := domain.SimulationInput{
		Heirs: []domain.Heir{heir("c1", domain.RelationChild), heir("c2", domain.RelationChild), heir("c3", domain.RelationChild)},
	}
	tracer := NewTracer()

	result := SolveDevolution(input, tracer)

	assert.Equal(t, 1, result.Order)
	assert.True(t, result.ReserveFraction.Equal(sdecimal.NewFromFloat(0.75)), "got %s", result.ReserveFraction)
	each := sdecimal.NewFromInt(1).Div(sdecimal.NewFromInt(3))
	for _, id := range []string{"c1", "c2", "c3"} {
		assert.True(t, result.DescendantShares[id].Equal(each), "heir %s got %s", id, result.DescendantShares[id])
	}
}

func TestSolveDevolution_Order2_SpouseAndTwoParents(t *testing.T) {
	input := domain.SimulationInput{
		Heirs: []domain.Heir{
			heir("spouse", domain.RelationSpouse),
			heir("mother", domain.RelationParent),
			heir("father", domain.RelationParent),
		},
	}
	tracer := NewTracer()

	result := SolveDevolution(input, tracer)

	assert.Equal(t, 2, result.Order)
	assert.True(t, result.ClassShares["spouse"].Equal(sdecimal.NewFromFloat(0.50)))
	assert.True(t, result.ClassShares["mother"].Equal(sdecimal.NewFromFloat(0.25)))
	assert.True(t, result.ClassShares["father"].Equal(sdecimal.NewFromFloat(0.25)))
}

func TestSolveDevolution_Order3_NoSpouseParentsAndSiblings(t *testing.T) {
	input := domain.SimulationInput{
		Heirs: []domain.Heir{
			heir("mother", domain.RelationParent),
			heir("sib1", domain.RelationSibling),
			heir("sib2", domain.RelationSibling),
		},
	}
	tracer := NewTracer()

	result := SolveDevolution(input, tracer)

	assert.Equal(t, 3, result.Order)
	assert.True(t, result.ClassShares["mother"].Equal(sdecimal.NewFromFloat(0.25)), "got %s", result.ClassShares["mother"])
	remainderEach := sdecimal.NewFromFloat(0.75).Div(sdecimal.NewFromInt(2))
	assert.True(t, result.ClassShares["sib1"].Equal(remainderEach), "got %s", result.ClassShares["sib1"])
}

func TestSolveDevolution_Order4_CleftSuccessionMissingPaternalLineWarns(t *testing.T) {
	input := domain.SimulationInput{
		Heirs: []domain.Heir{
			{ID: "cousin1", Relationship: domain.RelationOther},
			{ID: "cousin2", Relationship: domain.RelationOther},
		},
	}
	tracer := NewTracer()

	result := SolveDevolution(input, tracer)

	assert.Equal(t, 4, result.Order)
	assert.True(t, result.CleftApplied)
	found := false
	for _, w := range tracer.Warnings() {
		for _, k := range w.ExplanationKeys {
			if k == domain.KeyAlertEmptyPaternalLine {
				found = true
			}
		}
	}
	assert.True(t, found, "expected KeyAlertEmptyPaternalLine warning when paternal_line is unset")
}

func TestSolveDevolution_Order4_CleftSuccessionSplitsByLine(t *testing.T) {
	paternal := true
	maternal := false
	input := domain.SimulationInput{
		Heirs: []domain.Heir{
			{ID: "paternal-uncle", Relationship: domain.RelationOther, PaternalLine: &paternal},
			{ID: "maternal-aunt", Relationship: domain.RelationOther, PaternalLine: &maternal},
		},
	}
	tracer := NewTracer()

	result := SolveDevolution(input, tracer)

	assert.True(t, result.ClassShares["paternal-uncle"].Equal(sdecimal.NewFromFloat(0.5)))
	assert.True(t, result.ClassShares["maternal-aunt"].Equal(sdecimal.NewFromFloat(0.5)))
}

func TestSolveDevolution_RenouncedHeirWithoutRepresentationGetsNothing(t *testing.T) {
	input := domain.SimulationInput{
		Heirs: []domain.Heir{
			{ID: "c1", Relationship: domain.RelationChild, HasRenounced: true},
			{ID: "c2", Relationship: domain.RelationChild},
		},
	}
	tracer := NewTracer()

	result := SolveDevolution(input, tracer)

	_, present := result.DescendantShares["c1"]
	assert.False(t, present, "a renouncing heir with no representatives should not appear in the share map")
	assert.True(t, result.DescendantShares["c2"].Equal(sdecimal.NewFromInt(1)), "c2 should absorb the full share")
}
