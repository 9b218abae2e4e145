package calculation

import (
	"time"

	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/dateutil"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// LifeInsuranceTaxResult is the audit trail behind one beneficiary's share of
// one life-insurance contract (C9, §4.7).
type LifeInsuranceTaxResult struct {
	Details            domain.TaxCalculationDetails
	Tax                decimal.Money
	Article757BAddback decimal.Money
	Keys               []domain.ExplanationKey
}

// CalculateLifeInsuranceTax applies Art. 990 I (premiums paid before age 70)
// to one beneficiary's share of one contract, outside the ordinary succession
// mass (I6). allowanceShare is this beneficiary's apportioned slice of the
// single 30,500 Art. 757 B allowance (the allowance belongs to the contract,
// not each beneficiary, so the caller splits it across beneficiaries before
// calling in). The after-70 remainder beyond allowanceShare is returned as
// Article757BAddback rather than taxed here: it re-enters the beneficiary's
// ordinary inheritance-tax base at C8 (§4.6, §4.7).
func CalculateLifeInsuranceTax(asset domain.Asset, beneficiary domain.LifeInsuranceBeneficiary, heir domain.Heir, allowanceShare decimal.Money, atDate time.Time, params domain.LegalParameters, tracer *Tracer) LifeInsuranceTaxResult {
	if heir.Relationship == domain.RelationSpouse || heir.Relationship == domain.RelationPartner {
		tracer.Keys(domain.KeyLifeInsuranceArt990ISpouseExempt)
		return LifeInsuranceTaxResult{Tax: decimal.Zero(), Keys: []domain.ExplanationKey{domain.KeyLifeInsuranceArt990ISpouseExempt}}
	}
	if asset.LifeInsuranceContractType == domain.ContractAncien {
		tracer.Keys(domain.KeyLifeInsuranceAncienExempt)
		return LifeInsuranceTaxResult{Tax: decimal.Zero(), Keys: []domain.ExplanationKey{domain.KeyLifeInsuranceAncienExempt}}
	}

	share := beneficiary.SharePercent.Div(sdecimal.NewFromInt(100))
	before70 := decimal.Zero()
	if asset.PremiumsBefore70 != nil {
		before70 = asset.PremiumsBefore70.Mul(share)
	}
	after70 := decimal.Zero()
	if asset.PremiumsAfter70 != nil {
		after70 = asset.PremiumsAfter70.Mul(share)
	}

	var keys []domain.ExplanationKey

	// A beneficiary holding this contract in usufruct or bare ownership is
	// only taxed on their Art. 669 share of the capital transmitted.
	if beneficiary.OwnershipMode == domain.OwnershipUsufruct || beneficiary.OwnershipMode == domain.OwnershipBare {
		capital := before70.Add(after70)
		if capital.IsPositive() {
			age := dateutil.Age(heir.BirthDate, atDate)
			valuation := ValueUsufructAtAge(capital, age, params)
			portion := valuation.UsufructValue
			if beneficiary.OwnershipMode == domain.OwnershipBare {
				portion = valuation.BareOwnershipValue
			}
			ratio := portion.Decimal.Div(capital.Decimal)
			before70 = before70.Mul(ratio)
			after70 = after70.Mul(ratio)
			keys = append(keys, valuation.ExplanationKey)
		}
		keys = append(keys, domain.KeyLifeInsuranceDismembered)
	}

	if asset.LifeInsuranceContractType == domain.ContractVieGeneration && before70.IsPositive() {
		reduction := before70.Mul(params.LifeInsurance.VieGenerationReduction)
		before70 = before70.Sub(reduction)
		keys = append(keys, domain.KeyLifeInsuranceVieGeneration)
	}

	tax990I, base990I := applyArt990I(before70, params)
	if before70.IsPositive() {
		keys = append(keys, domain.KeyLifeInsuranceArt990I)
	}

	addback757B := after70.Sub(allowanceShare).ClampNonNegative()
	if addback757B.IsPositive() {
		keys = append(keys, domain.KeyLifeInsuranceArt757B)
	}

	return LifeInsuranceTaxResult{
		Details: domain.TaxCalculationDetails{
			TaxableBase:          base990I,
			AllowanceBase:        params.LifeInsurance.Article990IAllowance.Add(allowanceShare),
			LifeInsuranceAddback: addback757B,
		},
		Tax:                tax990I,
		Article757BAddback: addback757B,
		Keys:               keys,
	}
}

func applyArt990I(before70 decimal.Money, params domain.LegalParameters) (decimal.Money, decimal.Money) {
	base := before70.Sub(params.LifeInsurance.Article990IAllowance).ClampNonNegative()
	if base.IsZero() {
		return decimal.Zero(), decimal.Zero()
	}
	lowSlice := decimal.Min(base, params.LifeInsurance.Article990IThreshold)
	highSlice := base.Sub(lowSlice)
	tax := lowSlice.Mul(params.LifeInsurance.Article990ILowRate).Add(highSlice.Mul(params.LifeInsurance.Article990IHighRate)).Round()
	return tax, base
}
