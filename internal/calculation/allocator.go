package calculation

import (
	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// HeirAllocation is one heir's final civil entitlement before tax (C6).
type HeirAllocation struct {
	LegalSharePercent sdecimal.Decimal
	GrossShareValue   decimal.Money
	ExplanationKeys   []domain.ExplanationKey
}

// AllocationResult is the output of the Share Allocator (C6).
type AllocationResult struct {
	ByHeir        map[string]HeirAllocation
	SpouseDetails domain.SpouseDetails
}

// AllocateShares combines the Devolution Solver's legal order with the
// deceased's testamentary wishes (Art. 757 spouse election, Art. 843 gift
// imputation, Art. 920 reduction of excessive liberalities) to compute each
// heir's final percentage and value of the fictive mass (§4.4).
func AllocateShares(input domain.SimulationInput, devolution DevolutionResult, reconstitution ReconstitutionResult, params domain.LegalParameters, tracer *Tracer) AllocationResult {
	percentByHeir := make(map[string]sdecimal.Decimal)
	keysByHeir := make(map[string][]domain.ExplanationKey)
	spouseDetails := domain.SpouseDetails{}

	switch devolution.Order {
	case 1:
		percentByHeir, spouseDetails = allocateOrder1(input, devolution, params, keysByHeir, tracer)
	default:
		for id, pct := range devolution.ClassShares {
			percentByHeir[id] = pct
		}
		if devolution.SpousePresent {
			tracer.Keys(domain.KeySpouseAndParents)
		} else {
			tracer.Keys(domain.KeySpouseAloneNoDescendants)
		}
	}

	applyWishes(input, &percentByHeir, devolution, keysByHeir, tracer)

	result := AllocationResult{ByHeir: make(map[string]HeirAllocation, len(percentByHeir)), SpouseDetails: spouseDetails}
	for _, heir := range input.Heirs {
		pct, ok := percentByHeir[heir.ID]
		if !ok {
			continue
		}
		raw := reconstitution.FictiveMass.Mul(pct)
		donated := reconstitution.DonationsByHeir[heir.ID]
		net := raw.Sub(donated)
		keys := append([]domain.ExplanationKey{}, keysByHeir[heir.ID]...)
		if !donated.IsZero() {
			keys = append(keys, domain.KeyGiftImputation)
		}
		if net.IsNegative() {
			tracer.Warn(domain.SeverityWarning, domain.AudienceNotary, domain.CategoryLegal,
				"prior donations to this heir exceed the computed share; share clamped to zero", domain.KeyAlertOverAllocation)
			keys = append(keys, domain.KeyAlertOverAllocation)
			net = decimal.Zero()
		}
		result.ByHeir[heir.ID] = HeirAllocation{
			LegalSharePercent: pct.Mul(sdecimal.NewFromInt(100)),
			GrossShareValue:   net.Round(),
			ExplanationKeys:   keys,
		}
	}

	if devolution.Order == 2 || devolution.Order == 3 {
		applyRightOfReturn(input, result.ByHeir, params, tracer)
	}

	tracer.Step("ShareAllocator", "Allocate the fictive mass among heirs per the legal order and testamentary wishes.", "")
	return result
}

// applyRightOfReturn gives a surviving parent priority over the specific
// asset they once gifted to the deceased (Art. 738-2), capped at
// RightOfReturnCap of that asset's value, funded pro rata from the other
// heirs' shares. It only matters when the deceased left no descendants,
// since a reserve-holding child's share cannot be invaded this way.
func applyRightOfReturn(input domain.SimulationInput, byHeir map[string]HeirAllocation, params domain.LegalParameters, tracer *Tracer) {
	for _, asset := range input.Assets {
		if asset.ReceivedFromParentID == "" || asset.IsLifeInsurance() {
			continue
		}
		parent, ok := byHeir[asset.ReceivedFromParentID]
		if !ok {
			continue
		}
		var parentHeir *domain.Heir
		for i := range input.Heirs {
			if input.Heirs[i].ID == asset.ReceivedFromParentID && !input.Heirs[i].Renounced() {
				parentHeir = &input.Heirs[i]
			}
		}
		if parentHeir == nil || parentHeir.Relationship != domain.RelationParent {
			continue
		}

		claim := asset.EstimatedValue.Mul(params.RightOfReturnCap)
		remainingMass := decimal.Zero()
		for id, a := range byHeir {
			if id != asset.ReceivedFromParentID {
				remainingMass = remainingMass.Add(a.GrossShareValue)
			}
		}
		if remainingMass.IsZero() || claim.IsZero() {
			continue
		}
		if claim.GreaterThan(remainingMass) {
			claim = remainingMass
		}

		for id, a := range byHeir {
			if id == asset.ReceivedFromParentID {
				continue
			}
			fraction := a.GrossShareValue.Decimal.Div(remainingMass.Decimal)
			reduction := claim.Mul(fraction)
			a.GrossShareValue = a.GrossShareValue.Sub(reduction).ClampNonNegative()
			byHeir[id] = a
		}
		parent.GrossShareValue = parent.GrossShareValue.Add(claim)
		parent.ExplanationKeys = append(parent.ExplanationKeys, domain.KeyRightOfReturn)
		byHeir[asset.ReceivedFromParentID] = parent
		tracer.Warn(domain.SeverityInfo, domain.AudienceNotary, domain.CategoryLegal,
			"right of return applied: "+asset.ReceivedFromParentID+" reclaims a share of asset "+asset.ID+" gifted to the deceased",
			domain.KeyRightOfReturn)
	}
}

func allocateOrder1(input domain.SimulationInput, devolution DevolutionResult, params domain.LegalParameters, keysByHeir map[string][]domain.ExplanationKey, tracer *Tracer) (map[string]sdecimal.Decimal, domain.SpouseDetails) {
	percent := make(map[string]sdecimal.Decimal)
	spouseDetails := domain.SpouseDetails{}

	var spouse *domain.Heir
	hasOtherUnionChild := false
	for i := range input.Heirs {
		h := input.Heirs[i]
		if h.Relationship == domain.RelationSpouse && !h.Renounced() {
			spouse = &input.Heirs[i]
		}
		if h.Relationship == domain.RelationChild && !h.IsFromCurrentUnion {
			hasOtherUnionChild = true
		}
	}

	if spouse == nil {
		for id, w := range devolution.DescendantShares {
			percent[id] = w
		}
		tracer.Keys(domain.KeyShareChildrenEqual)
		return percent, spouseDetails
	}

	choice := input.Wishes.SpouseChoice
	if choice == "" {
		if hasOtherUnionChild {
			choice = domain.SpouseChoiceQuarterOwnership
		} else {
			choice = domain.SpouseChoiceUsufruct
		}
	}
	if choice == domain.SpouseChoiceUsufruct && hasOtherUnionChild {
		tracer.Warn(domain.SeverityWarning, domain.AudienceNotary, domain.CategoryLegal,
			"usufruct election is not available to the spouse when a child from another union survives; quarter-ownership applied instead", domain.KeyAlertOverAllocation)
		choice = domain.SpouseChoiceQuarterOwnership
	}

	spouseDetails.ChoiceMade = choice

	switch choice {
	case domain.SpouseChoiceUsufruct:
		age := spouse.Age(input.DateOfDeath)
		valuation := ValueUsufructAtAge(decimal.NewMoney(1), age, params)
		spouseDetails.HasUsufruct = true
		spouseDetails.UsufructRate = valuation.Rate
		percent[spouse.ID] = valuation.Rate
		bareRate := sdecimal.NewFromInt(1).Sub(valuation.Rate)
		for id, w := range devolution.DescendantShares {
			percent[id] = w.Mul(bareRate)
		}
		keysByHeir[spouse.ID] = append(keysByHeir[spouse.ID], domain.KeySpouseUsufruct)
		tracer.Keys(domain.KeySpouseUsufruct)
	case domain.SpouseChoiceDisposableQuota:
		percent[spouse.ID] = devolution.DisposableQuotaFraction
		for id, w := range devolution.DescendantShares {
			percent[id] = w.Mul(devolution.ReserveFraction)
		}
		keysByHeir[spouse.ID] = append(keysByHeir[spouse.ID], domain.KeySpouseDisposableQuota)
		tracer.Keys(domain.KeySpouseDisposableQuota)
	default: // QUARTER_OWNERSHIP
		quarter := sdecimal.NewFromFloat(0.25)
		percent[spouse.ID] = quarter
		remaining := sdecimal.NewFromInt(1).Sub(quarter)
		for id, w := range devolution.DescendantShares {
			percent[id] = w.Mul(remaining)
		}
		keysByHeir[spouse.ID] = append(keysByHeir[spouse.ID], domain.KeySpouseQuarterOwnership)
		tracer.Keys(domain.KeySpouseQuarterOwnership)
	}

	return percent, spouseDetails
}

// applyWishes overlays the deceased's testamentary distribution on top of the
// legal percentages computed above, reducing any liberality that would
// invade a reserve heir's share (Art. 920).
func applyWishes(input domain.SimulationInput, percent *map[string]sdecimal.Decimal, devolution DevolutionResult, keysByHeir map[string][]domain.ExplanationKey, tracer *Tracer) {
	reserveHeirIDs := make(map[string]bool)
	if devolution.Order == 1 {
		for id := range devolution.DescendantShares {
			reserveHeirIDs[id] = true
		}
	}

	switch input.Wishes.TestamentDistribution {
	case "", domain.DistributionLegal:
		return
	case domain.DistributionCustom:
		custom := make(map[string]sdecimal.Decimal)
		total := sdecimal.Zero
		for _, share := range input.Wishes.CustomShares {
			frac := share.Percentage.Div(sdecimal.NewFromInt(100))
			custom[share.BeneficiaryID] = frac
			total = total.Add(frac)
		}
		reserveTotal := sdecimal.Zero
		for id := range reserveHeirIDs {
			if _, overridden := custom[id]; !overridden {
				reserveTotal = reserveTotal.Add((*percent)[id])
			}
		}
		if total.Add(reserveTotal).GreaterThan(sdecimal.NewFromInt(1)) {
			scale := sdecimal.NewFromInt(1).Sub(reserveTotal).Div(total)
			tracer.Warn(domain.SeverityWarning, domain.AudienceNotary, domain.CategoryLegal,
				"custom shares exceed the disposable quota once reserve heirs are protected; scaled down proportionally", domain.KeyAlertReserveExceeded)
			for id := range custom {
				custom[id] = custom[id].Mul(scale)
				keysByHeir[id] = append(keysByHeir[id], domain.KeyReductionDonation)
			}
		}
		for id, frac := range custom {
			(*percent)[id] = frac
			keysByHeir[id] = append(keysByHeir[id], domain.KeyShareCustom)
		}
	case domain.DistributionSpecificBequests:
		bequests := make(map[string]sdecimal.Decimal)
		total := sdecimal.Zero
		for _, b := range input.Wishes.SpecificBequests {
			frac := b.SharePercentage.Div(sdecimal.NewFromInt(100))
			bequests[b.BeneficiaryID] = bequests[b.BeneficiaryID].Add(frac)
			total = total.Add(frac)
		}
		disposable := devolution.DisposableQuotaFraction
		if disposable.IsZero() {
			disposable = sdecimal.NewFromInt(1)
		}
		if total.GreaterThan(disposable) {
			scale := disposable.Div(total)
			tracer.Warn(domain.SeverityWarning, domain.AudienceNotary, domain.CategoryLegal,
				"specific bequests exceed the disposable quota; reduced to fit (Art. 920)", domain.KeyReductionBequest)
			for id := range bequests {
				bequests[id] = bequests[id].Mul(scale)
			}
		}
		for id, frac := range bequests {
			(*percent)[id] = (*percent)[id].Add(frac)
			keysByHeir[id] = append(keysByHeir[id], domain.KeyShareSpecificBequest)
		}
	case domain.DistributionSpouseAll:
		var spouseID string
		for _, h := range input.Heirs {
			if h.Relationship == domain.RelationSpouse && !h.Renounced() {
				spouseID = h.ID
			}
		}
		if spouseID != "" {
			if len(reserveHeirIDs) == 0 {
				*percent = map[string]sdecimal.Decimal{spouseID: sdecimal.NewFromInt(1)}
			} else {
				tracer.Warn(domain.SeverityWarning, domain.AudienceNotary, domain.CategoryLegal,
					"descendants hold a reserve; spouse can only receive the disposable quota despite the wish for everything", domain.KeyAlertReserveExceeded)
				(*percent)[spouseID] = devolution.DisposableQuotaFraction
			}
		}
	case domain.DistributionChildrenAll:
		if len(devolution.DescendantShares) > 0 {
			*percent = devolution.DescendantShares
		}
	}
}
