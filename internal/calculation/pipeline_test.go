package calculation

import (
	"testing"
	"time"

	sdecimal "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

func dateOf(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func baseInput() domain.SimulationInput {
	return domain.SimulationInput{
		DeceasedName:      "Jean Dupont",
		DateOfDeath:       dateOf(2025, 6, 1),
		MatrimonialRegime: domain.RegimeSeparation,
		Wishes:            domain.Wishes{TestamentDistribution: domain.DistributionLegal},
	}
}

// Scenario 1 (spec.md §8): community regime, single community asset 600,000,
// spouse + 2 children, spouse elects QUARTER_OWNERSHIP. Each child's 12,500
// base after the 100,000 allowance spans the first three direct-line slices:
// 403.60 + 403.70 + 58.65 = 865.95.
func TestSimulate_Scenario1_StandardFamily(t *testing.T) {
	input := baseInput()
	input.MatrimonialRegime = domain.RegimeCommunityLegal
	input.MarriageDate = ptrTime(dateOf(1990, 1, 1))
	input.Wishes.SpouseChoice = domain.SpouseChoiceQuarterOwnership
	input.Assets = []domain.Asset{
		{ID: "house", EstimatedValue: decimal.NewMoney(600000), AssetOrigin: domain.OriginCommunity, AcquisitionDate: ptrTime(dateOf(1995, 1, 1))},
	}
	input.Heirs = []domain.Heir{
		{ID: "spouse", BirthDate: dateOf(1960, 1, 1), Relationship: domain.RelationSpouse, IsFromCurrentUnion: true},
		{ID: "child1", BirthDate: dateOf(1992, 1, 1), Relationship: domain.RelationChild, IsFromCurrentUnion: true},
		{ID: "child2", BirthDate: dateOf(1994, 1, 1), Relationship: domain.RelationChild, IsFromCurrentUnion: true},
	}

	params := domain.DefaultLegalParameters2025()
	output, err := Simulate(input, params)
	require.NoError(t, err)

	assert.True(t, output.LiquidationDetails.DeceasedCommunityShare.Equal(decimal.NewMoney(300000)))

	byID := heirBreakdownByID(output)
	assert.True(t, byID["spouse"].GrossShareValue.Equal(decimal.NewMoney(75000)), "spouse share: %s", byID["spouse"].GrossShareValue)
	assert.True(t, byID["spouse"].TaxAmount.IsZero())
	assert.True(t, byID["child1"].GrossShareValue.Equal(decimal.NewMoney(112500)), "child1 share: %s", byID["child1"].GrossShareValue)
	assert.True(t, byID["child1"].TaxAmount.Equal(decimal.NewMoney(865.95)), "child1 tax: %s", byID["child1"].TaxAmount)
	assert.True(t, byID["child2"].TaxAmount.Equal(decimal.NewMoney(865.95)))
}

// Scenario 2: single child, mass 500,000, direct-line brackets over a
// 400,000 taxable base. The per-slice amounts sum to 78,194.35 under the
// bracket table in legalparams.go; spec.md's narrated subtotal (76,994.35)
// understates the top 20% slice by 1,200 and does not reconcile against its
// own bracket boundaries, so this test follows the bracket table itself
// (the authoritative, executable source) rather than the prose total.
func TestSimulate_Scenario2_ChildDirectLine(t *testing.T) {
	input := baseInput()
	input.Assets = []domain.Asset{
		{ID: "estate", EstimatedValue: decimal.NewMoney(500000), AssetOrigin: domain.OriginPersonal},
	}
	input.Heirs = []domain.Heir{
		{ID: "child", BirthDate: dateOf(1990, 1, 1), Relationship: domain.RelationChild, IsFromCurrentUnion: true},
	}

	params := domain.DefaultLegalParameters2025()
	output, err := Simulate(input, params)
	require.NoError(t, err)

	byID := heirBreakdownByID(output)
	child := byID["child"]
	assert.True(t, child.GrossShareValue.Equal(decimal.NewMoney(500000)))
	assert.True(t, child.TaxableBase.Equal(decimal.NewMoney(400000)), "taxable base: %s", child.TaxableBase)
	assert.True(t, child.TaxAmount.Equal(decimal.NewMoney(78194.35)), "tax: %s", child.TaxAmount)
}

// Scenario 3: single sibling, mass 100,000. Base 84,068 after the 15,932
// sibling allowance; tax = 8,550.50 + 26,837.10 = 35,387.60.
func TestSimulate_Scenario3_Sibling(t *testing.T) {
	input := baseInput()
	input.Assets = []domain.Asset{
		{ID: "estate", EstimatedValue: decimal.NewMoney(100000), AssetOrigin: domain.OriginPersonal},
	}
	input.Heirs = []domain.Heir{
		{ID: "sibling", BirthDate: dateOf(1965, 1, 1), Relationship: domain.RelationSibling},
	}

	params := domain.DefaultLegalParameters2025()
	output, err := Simulate(input, params)
	require.NoError(t, err)

	byID := heirBreakdownByID(output)
	sibling := byID["sibling"]
	assert.True(t, sibling.TaxableBase.Equal(decimal.NewMoney(84068)), "base: %s", sibling.TaxableBase)
	assert.True(t, sibling.TaxAmount.Equal(decimal.NewMoney(35387.60)), "tax: %s", sibling.TaxAmount)
}

// Scenario 4: life insurance, 300,000 premiums before 70, one child
// beneficiary at 100%. Taxable 147,500 (below the 990 I threshold), tax
// 29,500 at the 20% low rate, entirely outside the succession mass (I6).
func TestSimulate_Scenario4_LifeInsuranceBefore70(t *testing.T) {
	input := baseInput()
	input.Assets = []domain.Asset{
		{
			ID:               "contract",
			EstimatedValue:   decimal.NewMoney(300000),
			PremiumsBefore70: moneyPtr(decimal.NewMoney(300000)),
			LifeInsuranceBeneficiaries: []domain.LifeInsuranceBeneficiary{
				{HeirID: "child", SharePercent: sdecimal.NewFromInt(100), OwnershipMode: domain.OwnershipFull},
			},
		},
	}
	input.Heirs = []domain.Heir{
		{ID: "child", BirthDate: dateOf(1990, 1, 1), Relationship: domain.RelationChild, IsFromCurrentUnion: true},
	}

	params := domain.DefaultLegalParameters2025()
	output, err := Simulate(input, params)
	require.NoError(t, err)

	byID := heirBreakdownByID(output)
	child := byID["child"]
	assert.True(t, child.TaxAmount.Equal(decimal.NewMoney(29500)), "tax: %s", child.TaxAmount)
	assert.True(t, child.GrossShareValue.Equal(decimal.NewMoney(300000)))
}

// Scenario 5: representation. Child A alive, child B predeceased leaving two
// grandchildren; mass 900,000, no spouse. A's souche keeps 450,000; B's
// souche splits its 450,000 evenly, 225,000 per grandchild.
func TestSimulate_Scenario5_Representation(t *testing.T) {
	input := baseInput()
	input.Assets = []domain.Asset{
		{ID: "estate", EstimatedValue: decimal.NewMoney(900000), AssetOrigin: domain.OriginPersonal},
	}
	input.Heirs = []domain.Heir{
		{ID: "childA", BirthDate: dateOf(1985, 1, 1), Relationship: domain.RelationChild, IsFromCurrentUnion: true},
		{ID: "childB", BirthDate: dateOf(1983, 1, 1), Relationship: domain.RelationChild, IsFromCurrentUnion: true, IsDeceased: true},
		{ID: "grandchild1", BirthDate: dateOf(2010, 1, 1), Relationship: domain.RelationGrandchild, RepresentedHeirID: "childB"},
		{ID: "grandchild2", BirthDate: dateOf(2012, 1, 1), Relationship: domain.RelationGrandchild, RepresentedHeirID: "childB"},
	}

	params := domain.DefaultLegalParameters2025()
	output, err := Simulate(input, params)
	require.NoError(t, err)

	byID := heirBreakdownByID(output)
	assert.True(t, byID["childA"].GrossShareValue.Equal(decimal.NewMoney(450000)), "childA: %s", byID["childA"].GrossShareValue)
	assert.True(t, byID["grandchild1"].GrossShareValue.Equal(decimal.NewMoney(225000)), "grandchild1: %s", byID["grandchild1"].GrossShareValue)
	assert.True(t, byID["grandchild2"].GrossShareValue.Equal(decimal.NewMoney(225000)), "grandchild2: %s", byID["grandchild2"].GrossShareValue)
}

// Scenario 6: spouse donation (DISPOSABLE_QUOTA), 1 child, mass 600,000.
// Spouse gets the disposable quota (1/2, exempt), child gets the reserve
// (1/2 = 300,000), taxed on a 200,000 base after the 100,000 allowance.
func TestSimulate_Scenario6_DDVDisposableQuota(t *testing.T) {
	input := baseInput()
	input.Wishes.HasSpouseDonation = true
	input.Wishes.SpouseChoice = domain.SpouseChoiceDisposableQuota
	input.Assets = []domain.Asset{
		{ID: "estate", EstimatedValue: decimal.NewMoney(600000), AssetOrigin: domain.OriginPersonal},
	}
	input.Heirs = []domain.Heir{
		{ID: "spouse", BirthDate: dateOf(1960, 1, 1), Relationship: domain.RelationSpouse, IsFromCurrentUnion: true},
		{ID: "child", BirthDate: dateOf(1992, 1, 1), Relationship: domain.RelationChild, IsFromCurrentUnion: true},
	}

	params := domain.DefaultLegalParameters2025()
	output, err := Simulate(input, params)
	require.NoError(t, err)

	byID := heirBreakdownByID(output)
	assert.True(t, byID["spouse"].GrossShareValue.Equal(decimal.NewMoney(300000)), "spouse: %s", byID["spouse"].GrossShareValue)
	assert.True(t, byID["spouse"].TaxAmount.IsZero())
	assert.True(t, byID["child"].GrossShareValue.Equal(decimal.NewMoney(300000)), "child: %s", byID["child"].GrossShareValue)
	assert.True(t, byID["child"].TaxableBase.Equal(decimal.NewMoney(200000)), "child base: %s", byID["child"].TaxableBase)
}

// P3: spouse exemption always yields zero tax regardless of share size.
func TestSimulate_P3_SpouseAlwaysExempt(t *testing.T) {
	input := baseInput()
	input.Assets = []domain.Asset{
		{ID: "estate", EstimatedValue: decimal.NewMoney(2000000), AssetOrigin: domain.OriginPersonal},
	}
	input.Heirs = []domain.Heir{
		{ID: "spouse", BirthDate: dateOf(1955, 1, 1), Relationship: domain.RelationSpouse, IsFromCurrentUnion: true},
	}

	params := domain.DefaultLegalParameters2025()
	output, err := Simulate(input, params)
	require.NoError(t, err)

	byID := heirBreakdownByID(output)
	assert.True(t, byID["spouse"].TaxAmount.IsZero())
}

// P7: tax never exceeds the taxable base it was computed on.
func TestSimulate_P7_TaxNeverExceedsBase(t *testing.T) {
	input := baseInput()
	input.Assets = []domain.Asset{
		{ID: "estate", EstimatedValue: decimal.NewMoney(50000), AssetOrigin: domain.OriginPersonal},
	}
	input.Heirs = []domain.Heir{
		{ID: "stranger", BirthDate: dateOf(1970, 1, 1), Relationship: domain.RelationOther},
	}

	params := domain.DefaultLegalParameters2025()
	output, err := Simulate(input, params)
	require.NoError(t, err)

	for _, h := range output.HeirsBreakdown {
		assert.True(t, h.TaxAmount.LessThanOrEqual(h.TaxableBase), "heir %s: tax %s > base %s", h.ID, h.TaxAmount, h.TaxableBase)
	}
}

// P5: idempotence. Simulating the same input twice produces byte-identical
// heir breakdowns and warning ordering.
func TestSimulate_P5_Idempotent(t *testing.T) {
	input := baseInput()
	input.Assets = []domain.Asset{
		{ID: "estate", EstimatedValue: decimal.NewMoney(750000), AssetOrigin: domain.OriginPersonal},
	}
	input.Heirs = []domain.Heir{
		{ID: "child", BirthDate: dateOf(1988, 1, 1), Relationship: domain.RelationChild, IsFromCurrentUnion: true},
		{ID: "nephew", BirthDate: dateOf(1995, 1, 1), Relationship: domain.RelationNephewNiece},
	}

	params := domain.DefaultLegalParameters2025()
	first, err := Simulate(input, params)
	require.NoError(t, err)
	second, err := Simulate(input, params)
	require.NoError(t, err)

	assert.Equal(t, first.HeirsBreakdown, second.HeirsBreakdown)
	assert.Equal(t, first.Warnings, second.Warnings)
}

func heirBreakdownByID(output *domain.SuccessionOutput) map[string]domain.HeirBreakdown {
	out := make(map[string]domain.HeirBreakdown, len(output.HeirsBreakdown))
	for _, h := range output.HeirsBreakdown {
		out[h.ID] = h
	}
	return out
}

func ptrTime(t time.Time) *time.Time { return &t }
func moneyPtr(m decimal.Money) *decimal.Money { return &m }
