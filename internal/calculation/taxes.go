package calculation

import (
	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/dateutil"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// HeirTaxResult is the full audit trail behind one heir's inheritance tax
// (C8, §4.6): the allowance consumed by the 15-year recall, the rate or
// bracket schedule applied, and the resulting tax.
type HeirTaxResult struct {
	Details domain.TaxCalculationDetails
	Tax     decimal.Money
	Keys    []domain.ExplanationKey
}

// CalculateInheritanceTax computes Art. 777 (direct line) / Art. 777 sibling
// brackets / Art. 788 other-relation flat rates over one heir's taxable
// share, after the Art. 784 fifteen-year allowance recall and any partial
// exemption (Dutreil, rural goods, main residence). article757BAddback is
// the heir's after-70 life-insurance remainder computed by C9, which re-enters
// the taxable base here rather than being taxed on its own (§4.6, §4.7).
func CalculateInheritanceTax(heir domain.Heir, grossShareValue decimal.Money, article757BAddback decimal.Money, input domain.SimulationInput, params domain.LegalParameters, tracer *Tracer) HeirTaxResult {
	if heir.Relationship == domain.RelationSpouse || heir.Relationship == domain.RelationPartner {
		tracer.Keys(domain.KeyTaxSpouseExempt)
		return HeirTaxResult{
			Details: domain.TaxCalculationDetails{TaxableBase: decimal.Zero(), AllowanceBase: grossShareValue, AllowanceUsed: grossShareValue},
			Tax:     decimal.Zero(),
			Keys:    []domain.ExplanationKey{domain.KeyTaxSpouseExempt},
		}
	}

	taxableBase, exemptionKeys := applyExemptions(heir, grossShareValue, input, params)
	taxableBase = taxableBase.Add(article757BAddback)

	allowanceBase, brackets, flatRate, keys := classifyHeir(heir, params)
	if article757BAddback.IsPositive() {
		keys = append(keys, domain.KeyLifeInsuranceArt757B)
	}
	keys = append(keys, exemptionKeys...)
	if heir.IsDisabled {
		allowanceBase = allowanceBase.Add(params.Allowances.DisabledSupplement)
		keys = append(keys, domain.KeyAbatementDisabled)
	}

	consumed := consumedAllowance(heir.ID, input, params)
	allowanceRemaining := allowanceBase.Sub(consumed).ClampNonNegative()
	if consumed.IsPositive() {
		keys = append(keys, domain.KeyAbatementConsumed15y)
	}

	afterAllowance := taxableBase.Sub(allowanceRemaining).ClampNonNegative()

	var tax decimal.Money
	var bracketApplications []domain.TaxBracketApplication
	var rateApplied sdecimal.Decimal
	if len(brackets) > 0 {
		tax, bracketApplications = applyBrackets(afterAllowance, brackets)
	} else {
		tax = afterAllowance.Mul(flatRate).Round()
		rateApplied = flatRate
	}

	return HeirTaxResult{
		Details: domain.TaxCalculationDetails{
			TaxableBase:          afterAllowance,
			AllowanceBase:        allowanceBase,
			AllowanceConsumed:    consumed,
			AllowanceUsed:        allowanceRemaining,
			RateApplied:          rateApplied,
			BracketsApplied:      bracketApplications,
			LifeInsuranceAddback: article757BAddback,
		},
		Tax:  tax,
		Keys: keys,
	}
}

// classifyHeir selects the allowance and rate schedule for a heir's
// relationship to the deceased (Art. 777-790).
func classifyHeir(heir domain.Heir, params domain.LegalParameters) (decimal.Money, []domain.TaxBracket, sdecimal.Decimal, []domain.ExplanationKey) {
	switch heir.Relationship {
	case domain.RelationChild, domain.RelationGrandchild, domain.RelationGreatGrandchild:
		if heir.AdoptionType == domain.AdoptionSimple && !heir.HasReceivedContinuousCare {
			return params.Allowances.Other, nil, params.OtherRates.Strangers, []domain.ExplanationKey{domain.KeyLegalFlagAdoptionSimpleNoCare, domain.KeyTaxStrangerRate60}
		}
		keys := []domain.ExplanationKey{domain.KeyAbatementChild100k, domain.KeyTaxDirectLineBrackets}
		if heir.AdoptionType == domain.AdoptionFull {
			keys = append(keys, domain.KeyTaxAdoptionFull)
		} else if heir.AdoptionType == domain.AdoptionSimple {
			keys = append(keys, domain.KeyTaxAdoptionSimpleContinuousCare)
		}
		return params.Allowances.Child, params.DirectLineBrackets, sdecimal.Decimal{}, keys
	case domain.RelationParent:
		return params.Allowances.Parent, params.DirectLineBrackets, sdecimal.Decimal{}, []domain.ExplanationKey{domain.KeyTaxDirectLineBrackets}
	case domain.RelationSibling:
		return params.Allowances.Sibling, params.SiblingBrackets, sdecimal.Decimal{}, []domain.ExplanationKey{domain.KeyAbatementSibling, domain.KeyTaxSiblingRate}
	case domain.RelationNephewNiece:
		return params.Allowances.NephewNiece, nil, params.OtherRates.UpToFourthDegree, []domain.ExplanationKey{domain.KeyAbatementNephewNiece, domain.KeyTaxOtherRate55}
	default:
		return params.Allowances.Other, nil, params.OtherRates.Strangers, []domain.ExplanationKey{domain.KeyAbatementOther, domain.KeyTaxStrangerRate60}
	}
}

// consumedAllowance sums the fiscal (original) value of donations made to this
// heir within the Art. 784 recall window, which is deducted from the
// allowance newly available at death.
func consumedAllowance(heirID string, input domain.SimulationInput, params domain.LegalParameters) decimal.Money {
	consumed := decimal.Zero()
	recallStart := dateutil.AddYears(input.DateOfDeath, -params.RecallYears)
	for _, d := range input.Donations {
		if d.BeneficiaryID != heirID || d.Type == domain.DonationUsage {
			continue
		}
		if d.DonationDate.After(recallStart) {
			consumed = consumed.Add(d.OriginalValue)
		}
	}
	return consumed
}

// applyExemptions applies the Dutreil (Art. 787 B), rural-goods (Art. 793),
// and main-residence (20%) partial exemptions to the portion of a heir's
// share attributable to qualifying assets. Since the allocator works at the
// percentage-of-mass level rather than per-asset, the exemption is applied
// pro rata to the heir's share by the fraction of the estate the qualifying
// assets represent.
func applyExemptions(heir domain.Heir, grossShareValue decimal.Money, input domain.SimulationInput, params domain.LegalParameters) (decimal.Money, []domain.ExplanationKey) {
	totalEstate := decimal.Zero()
	exemptValue := decimal.Zero()
	var keys []domain.ExplanationKey
	for _, asset := range input.Assets {
		if asset.IsLifeInsurance() {
			continue
		}
		totalEstate = totalEstate.Add(asset.EstimatedValue)
		amount, key, ok := assetExemptAmount(asset, params)
		if !ok {
			continue
		}
		exemptValue = exemptValue.Add(amount)
		if key != "" {
			keys = append(keys, key)
		}
	}
	if totalEstate.IsZero() || exemptValue.IsZero() {
		return grossShareValue, keys
	}
	exemptFraction := exemptValue.Decimal.Div(totalEstate.Decimal)
	reduction := grossShareValue.Mul(exemptFraction)
	return grossShareValue.Sub(reduction).ClampNonNegative(), keys
}

// assetExemptAmount computes the absolute Dutreil (Art. 787 B), rural-goods
// (Art. 793), professional, or main-residence partial-exemption value for one
// asset. Shared by applyExemptions (C8, which turns it into a heir-level
// taxable-base reduction) and the Art. 769 debt pro-rata (C4, which uses it to
// scale down a debt linked to the same asset).
func assetExemptAmount(asset domain.Asset, params domain.LegalParameters) (decimal.Money, domain.ExplanationKey, bool) {
	switch {
	case asset.IsDutreilPact:
		// Art. 787 B applies to the share portion excluding the CCA.
		dutreilBase := asset.EstimatedValue.Sub(asset.CCAValue).ClampNonNegative()
		return dutreilBase.Mul(params.DutreilExemptionRate), domain.KeyExemptionDutreil, true
	case asset.IsRuralGoods:
		// Art. 793: 75% on the first threshold slice, 50% beyond it.
		lowSlice := decimal.Min(asset.EstimatedValue, params.RuralGoodsExemption.Threshold)
		highSlice := asset.EstimatedValue.Sub(lowSlice)
		exempt := lowSlice.Mul(params.RuralGoodsExemption.Rate).Add(highSlice.Mul(params.RuralGoodsExemption.ReducedRate))
		return exempt, domain.KeyExemptionRuralGoods, true
	case asset.ProfessionalExemption != nil:
		return asset.EstimatedValue.Mul(*asset.ProfessionalExemption), "", true
	case asset.IsMainResidence && asset.SpouseOccupiesProperty:
		return asset.EstimatedValue.Mul(params.MainResidenceReduction), domain.KeyExemptionMainResidence, true
	default:
		return decimal.Zero(), "", false
	}
}

// applyBrackets walks a progressive-rate table, returning the total tax and
// the per-slice breakdown used for the explanation trail.
func applyBrackets(base decimal.Money, brackets []domain.TaxBracket) (decimal.Money, []domain.TaxBracketApplication) {
	total := decimal.Zero()
	var applications []domain.TaxBracketApplication
	for _, b := range brackets {
		min := decimal.NewMoneyFromDecimal(b.Min)
		max := decimal.NewMoneyFromDecimal(b.Max)
		if base.LessThanOrEqual(min) {
			break
		}
		sliceTop := decimal.Min(base, max)
		taxedInSlice := sliceTop.Sub(min)
		if taxedInSlice.IsNegative() || taxedInSlice.IsZero() {
			continue
		}
		sliceTax := taxedInSlice.Mul(b.Rate).Round()
		total = total.Add(sliceTax)
		applications = append(applications, domain.TaxBracketApplication{
			Min: b.Min, Max: b.Max, Rate: b.Rate, TaxedInSlice: taxedInSlice, TaxAmount: sliceTax,
		})
	}
	return total, applications
}
