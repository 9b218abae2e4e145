package calculation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

func TestCalculateInheritanceTax_SpouseExempt(t *testing.T) {
	params := domain.DefaultLegalParameters2025()
	heir := domain.Heir{ID: "spouse", Relationship: domain.RelationSpouse}
	input := domain.SimulationInput{}
	tracer := NewTracer()

	result := CalculateInheritanceTax(heir, decimal.NewMoney(1000000), decimal.Zero(), input, params, tracer)

	assert.True(t, result.Tax.IsZero())
	assert.Contains(t, result.Keys, domain.KeyTaxSpouseExempt)
}

func TestCalculateInheritanceTax_ChildDirectLineBracket(t *testing.T) {
	params := domain.DefaultLegalParameters2025()
	heir := domain.Heir{ID: "child", Relationship: domain.RelationChild, IsFromCurrentUnion: true}
	input := domain.SimulationInput{
		DateOfDeath: time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		Assets:      []domain.Asset{{ID: "a1", EstimatedValue: decimal.NewMoney(500000), AssetOrigin: domain.OriginPersonal}},
	}
	tracer := NewTracer()

	result := CalculateInheritanceTax(heir, decimal.NewMoney(500000), decimal.Zero(), input, params, tracer)

	assert.True(t, result.Details.TaxableBase.Equal(decimal.NewMoney(400000)))
	assert.True(t, result.Tax.Equal(decimal.NewMoney(78194.35)), "got %s", result.Tax)
}

func TestCalculateInheritanceTax_AdoptionSimpleNoCareTreatedAsStranger(t *testing.T) {
	params := domain.DefaultLegalParameters2025()
	heir := domain.Heir{ID: "adopted", Relationship: domain.RelationChild, AdoptionType: domain.AdoptionSimple, HasReceivedContinuousCare: false}
	input := domain.SimulationInput{Assets: []domain.Asset{{ID: "a1", EstimatedValue: decimal.NewMoney(50000), AssetOrigin: domain.OriginPersonal}}}
	tracer := NewTracer()

	result := CalculateInheritanceTax(heir, decimal.NewMoney(50000), decimal.Zero(), input, params, tracer)

	assert.Contains(t, result.Keys, domain.KeyLegalFlagAdoptionSimpleNoCare)
	assert.Contains(t, result.Keys, domain.KeyTaxStrangerRate60)
	// allowance_other (1,594) leaves 48,406 taxed at 60%
	assert.True(t, result.Tax.Equal(decimal.NewMoney(48406).Mul(params.OtherRates.Strangers).Round()), "got %s", result.Tax)
}

func TestCalculateInheritanceTax_DisabledSupplementAddsToAllowance(t *testing.T) {
	params := domain.DefaultLegalParameters2025()
	heir := domain.Heir{ID: "child", Relationship: domain.RelationChild, IsFromCurrentUnion: true, IsDisabled: true}
	input := domain.SimulationInput{Assets: []domain.Asset{{ID: "a1", EstimatedValue: decimal.NewMoney(200000), AssetOrigin: domain.OriginPersonal}}}
	tracer := NewTracer()

	result := CalculateInheritanceTax(heir, decimal.NewMoney(200000), decimal.Zero(), input, params, tracer)

	assert.Contains(t, result.Keys, domain.KeyAbatementDisabled)
	assert.True(t, result.Tax.IsZero(), "allowance (100k+159,325) should cover the whole 200k base: got %s", result.Tax)
}

func TestConsumedAllowance_FifteenYearRecall(t *testing.T) {
	params := domain.DefaultLegalParameters2025()
	deathDate := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	input := domain.SimulationInput{
		DateOfDeath: deathDate,
		Donations: []domain.Donation{
			{ID: "d1", BeneficiaryID: "child", DonationDate: deathDate.AddDate(-10, 0, 0), OriginalValue: decimal.NewMoney(30000), Type: domain.DonationManuel},
			{ID: "d2", BeneficiaryID: "child", DonationDate: deathDate.AddDate(-20, 0, 0), OriginalValue: decimal.NewMoney(50000), Type: domain.DonationManuel},
			{ID: "d3", BeneficiaryID: "other", DonationDate: deathDate.AddDate(-5, 0, 0), OriginalValue: decimal.NewMoney(10000), Type: domain.DonationManuel},
		},
	}

	consumed := consumedAllowance("child", input, params)

	assert.True(t, consumed.Equal(decimal.NewMoney(30000)), "only the 10-year-old donation should count, got %s", consumed)
}

func TestApplyExemptions_DutreilAndRuralGoodsAndMainResidence(t *testing.T) {
	params := domain.DefaultLegalParameters2025()
	heir := domain.Heir{ID: "child", Relationship: domain.RelationChild}

	input := domain.SimulationInput{
		Assets: []domain.Asset{
			{ID: "business", EstimatedValue: decimal.NewMoney(200000), IsDutreilPact: true},
			{ID: "farmland", EstimatedValue: decimal.NewMoney(200000), IsRuralGoods: true},
			{ID: "home", EstimatedValue: decimal.NewMoney(200000), IsMainResidence: true, SpouseOccupiesProperty: true},
			{ID: "cash", EstimatedValue: decimal.NewMoney(400000)},
		},
	}

	base, keys := applyExemptions(heir, decimal.NewMoney(1000000), input, params)

	assert.Contains(t, keys, domain.KeyExemptionDutreil)
	assert.Contains(t, keys, domain.KeyExemptionRuralGoods)
	assert.Contains(t, keys, domain.KeyExemptionMainResidence)
	// total estate 1,000,000; exempt value = 200k*.75 + 200k*.75 + 200k*.20 = 340,000
	// exempt fraction = 0.34; reduction on a 1,000,000 share = 340,000
	assert.True(t, base.Equal(decimal.NewMoney(660000)), "got %s", base)
}
