package calculation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

func TestReconstituteEstate_FuneralCapOnlyAppliesWithoutProof(t *testing.T) {
	params := domain.DefaultLegalParameters2025()

	withProof := domain.SimulationInput{
		Debts: []domain.Debt{{ID: "d1", Amount: decimal.NewMoney(3000), Type: "FUNERAL", IsDeductible: true, ProofProvided: true}},
	}
	tracer := NewTracer()
	result := ReconstituteEstate(withProof, LiquidationResult{DeceasedNetAssets: decimal.NewMoney(100000)}, params, tracer)
	assert.True(t, result.DeductedDebts.Equal(decimal.NewMoney(3000)), "proven funeral expense should not be capped: got %s", result.DeductedDebts)

	withoutProof := domain.SimulationInput{
		Debts: []domain.Debt{{ID: "d1", Amount: decimal.NewMoney(3000), Type: "FUNERAL", IsDeductible: true}},
	}
	tracer2 := NewTracer()
	result2 := ReconstituteEstate(withoutProof, LiquidationResult{DeceasedNetAssets: decimal.NewMoney(100000)}, params, tracer2)
	assert.True(t, result2.DeductedDebts.Equal(params.FuneralExpenseCap), "unproven funeral expense should be capped: got %s", result2.DeductedDebts)
}

func TestReconstituteEstate_CommunityDebtHalved(t *testing.T) {
	params := domain.DefaultLegalParameters2025()
	input := domain.SimulationInput{
		Debts: []domain.Debt{{ID: "d1", Amount: decimal.NewMoney(20000), IsDeductible: true, AssetOrigin: domain.OriginCommunity, ProofProvided: true}},
	}
	tracer := NewTracer()

	result := ReconstituteEstate(input, LiquidationResult{DeceasedNetAssets: decimal.NewMoney(100000)}, params, tracer)

	assert.True(t, result.DeductedDebts.Equal(decimal.NewMoney(10000)), "got %s", result.DeductedDebts)
}

// Art. 769 CGI: a debt linked to a partially-exempt asset is only deductible
// in proportion to the taxable (non-exempt) portion of that asset.
func TestReconstituteEstate_LinkedAssetProratesDebtByExemptionRate(t *testing.T) {
	params := domain.DefaultLegalParameters2025()
	input := domain.SimulationInput{
		Assets: []domain.Asset{
			{ID: "biz", EstimatedValue: decimal.NewMoney(200000), IsDutreilPact: true},
		},
		Debts: []domain.Debt{
			{ID: "d1", Amount: decimal.NewMoney(40000), IsDeductible: true, LinkedAssetID: "biz", ProofProvided: true},
		},
	}
	tracer := NewTracer()

	result := ReconstituteEstate(input, LiquidationResult{DeceasedNetAssets: decimal.NewMoney(500000)}, params, tracer)

	// biz is 75% exempt (Dutreil), so only 25% of the linked debt is deductible
	assert.True(t, result.DeductedDebts.Equal(decimal.NewMoney(10000)), "got %s", result.DeductedDebts)

	found := false
	for _, k := range tracer.GlobalExplanationKeys() {
		if k == domain.KeyReconstitutionDebtProrated {
			found = true
		}
	}
	assert.True(t, found, "expected RECONSTITUTION_DEBT_PRORATED_ART_769 to be recorded")
}

func TestReconstituteEstate_UnlinkedDebtNotProrated(t *testing.T) {
	params := domain.DefaultLegalParameters2025()
	input := domain.SimulationInput{
		Assets: []domain.Asset{
			{ID: "biz", EstimatedValue: decimal.NewMoney(200000), IsDutreilPact: true},
		},
		Debts: []domain.Debt{
			{ID: "d1", Amount: decimal.NewMoney(40000), IsDeductible: true, ProofProvided: true},
		},
	}
	tracer := NewTracer()

	result := ReconstituteEstate(input, LiquidationResult{DeceasedNetAssets: decimal.NewMoney(500000)}, params, tracer)

	assert.True(t, result.DeductedDebts.Equal(decimal.NewMoney(40000)), "got %s", result.DeductedDebts)
}
