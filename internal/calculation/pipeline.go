package calculation

import (
	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/config"
	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// Simulate runs the full deterministic pipeline with operational logging
// silenced (see SimulateWithLogger).
func Simulate(input domain.SimulationInput, params domain.LegalParameters) (*domain.SuccessionOutput, error) {
	return SimulateWithLogger(input, params, NopLogger{})
}

// SimulateWithLogger runs the full deterministic pipeline (C10, §6):
// matrimonial liquidation, estate reconstitution, devolution, share
// allocation, life-insurance tax, then inheritance tax, in that fixed order.
// Life insurance runs before the heir tax loop because an Art. 757 B
// after-70 remainder feeds back into the beneficiary's ordinary taxable base.
// It never mutates input or params. The only error it returns is an
// InputValidation failure or an internal invariant violation; every other
// domain issue becomes a Warning on the returned SuccessionOutput.
//
// logger receives operational breakdowns of each stage for troubleshooting;
// it is independent of the Tracer, which records the legal explanation
// trail surfaced to end users on SuccessionOutput itself.
func SimulateWithLogger(input domain.SimulationInput, params domain.LegalParameters, logger Logger) (output *domain.SuccessionOutput, err error) {
	if logger == nil {
		logger = NopLogger{}
	}
	defer func() {
		if r := recover(); r != nil {
			if invErr, ok := r.(*domain.InternalInvariantError); ok {
				logger.Errorf("internal invariant violation: %v", invErr)
				err = invErr
				output = nil
				return
			}
			panic(r)
		}
	}()

	parser := config.NewInputParser()
	if verr := parser.Validate(&input); verr != nil {
		logger.Warnf("input validation failed: %v", verr)
		return nil, domain.NewValidationError("", verr.Error())
	}

	tracer := NewTracer()

	logger.Debugf("liquidating matrimonial regime %s", input.MatrimonialRegime)
	liquidation := LiquidateMatrimony(input, params, tracer)
	logger.Debugf("deceased community share: %s, spouse community share: %s", liquidation.DeceasedCommunityShare, liquidation.SpouseCommunityShare)

	reconstitution := ReconstituteEstate(input, liquidation, params, tracer)
	logger.Debugf("fictive mass: %s", reconstitution.FictiveMass)

	devolution := SolveDevolution(input, tracer)
	logger.Debugf("devolution order: %d, reserve fraction: %s", devolution.Order, devolution.ReserveFraction)

	allocation := AllocateShares(input, devolution, reconstitution, params, tracer)
	logger.Debugf("allocated shares to %d heirs", len(allocation.ByHeir))

	heirByID := make(map[string]domain.Heir, len(input.Heirs))
	for _, h := range input.Heirs {
		heirByID[h.ID] = h
	}

	heirsBreakdown := make(map[string]*domain.HeirBreakdown, len(input.Heirs))
	for _, h := range input.Heirs {
		heirsBreakdown[h.ID] = &domain.HeirBreakdown{ID: h.ID, Name: h.Name}
	}

	totalTax := decimal.Zero()

	// C9 runs before C8: Art. 757 B reintegrates the after-70 life-insurance
	// remainder into each beneficiary's civil taxable base rather than taxing
	// it here, so the addbacks must exist before the heir tax loop runs.
	art757BAddbacks := make(map[string]decimal.Money, len(input.Heirs))
	assetsBreakdown := make([]domain.AssetBreakdown, 0, len(input.Assets))
	for _, asset := range input.Assets {
		if asset.IsLifeInsurance() {
			assetsBreakdown = append(assetsBreakdown, processLifeInsuranceAsset(asset, input, heirByID, heirsBreakdown, params, tracer, &totalTax, art757BAddbacks)...)
			continue
		}
		attribution := liquidation.Attributions[asset.ID]
		assetsBreakdown = append(assetsBreakdown, domain.AssetBreakdown{
			AssetID:        asset.ID,
			EstimatedValue: asset.EstimatedValue,
			DeceasedShare:  attribution.DeceasedShare,
			SpouseShare:    attribution.SpouseShare,
		})
	}

	for heirID, amt := range art757BAddbacks {
		if bd, ok := heirsBreakdown[heirID]; ok {
			bd.Article757BAddback = amt
		}
	}

	for heirID, alloc := range allocation.ByHeir {
		heir := heirByID[heirID]
		addback := art757BAddbacks[heirID]
		taxResult := CalculateInheritanceTax(heir, alloc.GrossShareValue, addback, input, params, tracer)
		breakdown := heirsBreakdown[heirID]
		breakdown.LegalSharePercent = alloc.LegalSharePercent
		breakdown.GrossShareValue = breakdown.GrossShareValue.Add(alloc.GrossShareValue)
		breakdown.TaxableBase = taxResult.Details.TaxableBase
		breakdown.AbatementUsed = taxResult.Details.AllowanceUsed
		breakdown.Article757BAddback = addback
		breakdown.TaxAmount = breakdown.TaxAmount.Add(taxResult.Tax)
		breakdown.NetShareValue = breakdown.NetShareValue.Add(alloc.GrossShareValue.Sub(taxResult.Tax).ClampNonNegative())
		breakdown.TaxCalculationDetails = taxResult.Details
		breakdown.ExplanationKeys = append(breakdown.ExplanationKeys, alloc.ExplanationKeys...)
		breakdown.ExplanationKeys = append(breakdown.ExplanationKeys, taxResult.Keys...)
		totalTax = totalTax.Add(taxResult.Tax)
	}

	totalEstateValue := decimal.Zero()
	for _, a := range input.Assets {
		totalEstateValue = totalEstateValue.Add(a.EstimatedValue)
	}

	globalKeys := append([]domain.ExplanationKey{}, tracer.GlobalExplanationKeys()...)
	global := domain.GlobalMetrics{
		TotalEstateValue:     totalEstateValue,
		LegalReserveValue:    reconstitution.FictiveMass.Mul(devolution.ReserveFraction),
		DisposableQuotaValue: reconstitution.FictiveMass.Mul(effectiveDisposableFraction(devolution)),
		TotalTaxAmount:       totalTax,
		ExplanationKeys:      globalKeys,
	}

	finalHeirs := make([]domain.HeirBreakdown, 0, len(heirsBreakdown))
	for _, h := range input.Heirs {
		finalHeirs = append(finalHeirs, *heirsBreakdown[h.ID])
	}

	output = &domain.SuccessionOutput{
		GlobalMetrics:  global,
		HeirsBreakdown: finalHeirs,
		LiquidationDetails: domain.LiquidationDetails{
			Regime:                 input.MatrimonialRegime,
			CommunityAssetsTotal:   liquidation.CommunityAssetsTotal,
			SpouseCommunityShare:   liquidation.SpouseCommunityShare,
			DeceasedCommunityShare: liquidation.DeceasedCommunityShare,
			HasPreciput:            liquidation.HasPreciput,
			PreciputValue:          liquidation.PreciputValue,
			Details:                liquidation.Details,
		},
		SpouseDetails:    allocation.SpouseDetails,
		AssetsBreakdown:  assetsBreakdown,
		CalculationSteps: tracer.Steps(),
		Warnings:         tracer.Warnings(),
	}

	checkInvariants(output, devolution.Order)
	logger.Debugf("total tax: %s, total estate: %s", totalTax, totalEstateValue)

	return output, nil
}

func effectiveDisposableFraction(d DevolutionResult) sdecimal.Decimal {
	if d.Order == 1 || d.Order == 2 {
		return d.DisposableQuotaFraction
	}
	return sdecimal.NewFromInt(1)
}

// processLifeInsuranceAsset taxes every beneficiary's share of a life
// insurance contract (C9) outside the ordinary succession mass (I6), folds
// Art. 990 I tax into that heir's overall breakdown, and records each
// beneficiary's Art. 757 B remainder in addbacks so the later C8 pass can
// reintegrate it into their civil taxable base (§4.7).
func processLifeInsuranceAsset(asset domain.Asset, input domain.SimulationInput, heirByID map[string]domain.Heir, heirsBreakdown map[string]*domain.HeirBreakdown, params domain.LegalParameters, tracer *Tracer, totalTax *decimal.Money, addbacks map[string]decimal.Money) []domain.AssetBreakdown {
	var out []domain.AssetBreakdown

	// The 30,500 Art. 757 B allowance is shared by the contract, not granted
	// per beneficiary, so it is apportioned by each beneficiary's fraction of
	// the total after-70 premiums before CalculateLifeInsuranceTax runs.
	totalAfter70 := decimal.Zero()
	if asset.PremiumsAfter70 != nil {
		for _, b := range asset.LifeInsuranceBeneficiaries {
			share := b.SharePercent.Div(sdecimal.NewFromInt(100))
			totalAfter70 = totalAfter70.Add(asset.PremiumsAfter70.Mul(share))
		}
	}

	for _, b := range asset.LifeInsuranceBeneficiaries {
		heir, ok := heirByID[b.HeirID]
		if !ok {
			continue
		}

		allowanceShare := decimal.Zero()
		if totalAfter70.IsPositive() && asset.PremiumsAfter70 != nil {
			share := b.SharePercent.Div(sdecimal.NewFromInt(100))
			after70 := asset.PremiumsAfter70.Mul(share)
			fraction := after70.Decimal.Div(totalAfter70.Decimal)
			allowanceShare = params.LifeInsurance.Article757BAllowance.Mul(fraction)
		}

		result := CalculateLifeInsuranceTax(asset, b, heir, allowanceShare, input.DateOfDeath, params, tracer)
		share := b.SharePercent.Div(sdecimal.NewFromInt(100))
		grossShare := asset.EstimatedValue.Mul(share)

		breakdown := heirsBreakdown[b.HeirID]
		breakdown.GrossShareValue = breakdown.GrossShareValue.Add(grossShare)
		breakdown.TaxAmount = breakdown.TaxAmount.Add(result.Tax)
		breakdown.NetShareValue = breakdown.NetShareValue.Add(grossShare.Sub(result.Tax).ClampNonNegative())
		breakdown.ReceivedAssets = append(breakdown.ReceivedAssets, asset.ID)
		breakdown.ExplanationKeys = append(breakdown.ExplanationKeys, result.Keys...)
		*totalTax = totalTax.Add(result.Tax)

		if result.Article757BAddback.IsPositive() {
			addbacks[b.HeirID] = addbacks[b.HeirID].Add(result.Article757BAddback)
		}

		out = append(out, domain.AssetBreakdown{
			AssetID:         asset.ID,
			EstimatedValue:  grossShare,
			IsLifeInsurance: true,
			DeceasedShare:   decimal.Zero(),
			SpouseShare:     decimal.Zero(),
		})
	}
	return out
}
