package calculation

import (
	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// dismemberAsset reduces an asset already held in usufruct or bare-ownership
// at the date of death to its Art. 669 share before it enters the
// matrimonial liquidation, instead of passing through at full value.
func dismemberAsset(input domain.SimulationInput, asset domain.Asset, params domain.LegalParameters, tracer *Tracer) domain.Asset {
	if asset.OwnershipMode != domain.OwnershipUsufruct && asset.OwnershipMode != domain.OwnershipBare {
		return asset
	}
	valuation, ok := ValueAssetUsufruct(asset, input.DateOfDeath, params)
	if !ok {
		return asset
	}
	if asset.OwnershipMode == domain.OwnershipBare {
		asset.EstimatedValue = valuation.BareOwnershipValue
	} else {
		asset.EstimatedValue = valuation.UsufructValue
	}
	tracer.Keys(valuation.ExplanationKey)
	return asset
}

// AssetAttribution is the final deceased/spouse/preciput split of one asset
// after the Matrimonial Liquidator has run.
type AssetAttribution struct {
	DeceasedShare decimal.Money
	SpouseShare   decimal.Money
	PreciputShare decimal.Money
	RewardApplied decimal.Money
}

// LiquidationResult is the output of the Matrimonial Liquidator (C3).
type LiquidationResult struct {
	DeceasedNetAssets      decimal.Money
	Attributions           map[string]AssetAttribution
	CommunityAssetsTotal   decimal.Money
	SpouseCommunityShare   decimal.Money
	DeceasedCommunityShare decimal.Money
	HasPreciput            bool
	PreciputValue          decimal.Money
	Details                []domain.LiquidationAssetDetail
}

// LiquidateMatrimony splits every asset between the deceased and the
// surviving spouse per the matrimonial regime (C3, §4.1). A Logger-less,
// pure function: it takes the full input and an attached Tracer and returns
// a value, mirroring the teacher's calculator constructors that hold no
// mutable state beyond the injected Tracer/Logger.
func LiquidateMatrimony(input domain.SimulationInput, params domain.LegalParameters, tracer *Tracer) LiquidationResult {
	result := LiquidationResult{
		Attributions:           make(map[string]AssetAttribution, len(input.Assets)),
		CommunityAssetsTotal:   decimal.Zero(),
		SpouseCommunityShare:   decimal.Zero(),
		DeceasedCommunityShare: decimal.Zero(),
		PreciputValue:          decimal.Zero(),
	}

	hasStepchildren := false
	for _, h := range input.Heirs {
		if h.Relationship == domain.RelationChild && !h.IsFromCurrentUnion {
			hasStepchildren = true
			break
		}
	}

	preciputSet := make(map[string]bool, len(input.MatrimonialAdvantages.PreciputAssetIDs))
	for _, id := range input.MatrimonialAdvantages.PreciputAssetIDs {
		preciputSet[id] = true
	}
	result.HasPreciput = input.MatrimonialAdvantages.HasPreciput

	for _, asset := range input.Assets {
		if asset.IsLifeInsurance() {
			// Life-insurance contracts never enter the matrimonial liquidation
			// or the succession mass (I6); C9 handles them entirely.
			continue
		}

		attribution, detail, isTrueCommunity := classifyAndSplit(input, dismemberAsset(input, asset, params, tracer), hasStepchildren, preciputSet, tracer)
		result.Attributions[asset.ID] = attribution
		result.Details = append(result.Details, detail)
		result.DeceasedNetAssets = result.DeceasedNetAssets.Add(attribution.DeceasedShare)

		if isTrueCommunity {
			result.CommunityAssetsTotal = result.CommunityAssetsTotal.Add(asset.EstimatedValue)
			result.SpouseCommunityShare = result.SpouseCommunityShare.Add(attribution.SpouseShare)
			result.DeceasedCommunityShare = result.DeceasedCommunityShare.Add(attribution.DeceasedShare)
			result.PreciputValue = result.PreciputValue.Add(attribution.PreciputShare)
		}
	}

	tracer.Step("MatrimonialLiquidator", "Split estate assets between deceased and surviving spouse per matrimonial regime.",
		"deceased net assets "+result.DeceasedNetAssets.String())

	return result
}

// classifyAndSplit applies the regime x origin table, Art. 1468 rewards, and
// matrimonial advantages to a single asset.
func classifyAndSplit(input domain.SimulationInput, asset domain.Asset, hasStepchildren bool, preciputSet map[string]bool, tracer *Tracer) (AssetAttribution, domain.LiquidationAssetDetail, bool) {
	regime := input.MatrimonialRegime

	// Step 1: base classification (regime x origin x acquisition date).
	isTrueCommunity := false
	switch regime {
	case domain.RegimeSeparation:
		if asset.AssetOrigin == domain.OriginCommunity {
			tracer.Warn(domain.SeverityWarning, domain.AudienceNotary, domain.CategoryLegal,
				"community-origin asset under separation regime is invalid; treated as personal", domain.KeyAlertSeparationCommunityAsset)
		}
		// PERSONAL / INHERITANCE / (COMMUNITY, downgraded) -> 100% deceased.
	case domain.RegimeCommunityLegal:
		if asset.AssetOrigin == domain.OriginCommunity {
			if asset.AcquisitionDate != nil && input.MarriageDate != nil && asset.AcquisitionDate.Before(*input.MarriageDate) {
				// acquired before marriage: propre, 100% deceased.
			} else {
				isTrueCommunity = true
			}
		}
	case domain.RegimeCommunityUniversal:
		isTrueCommunity = true
	}

	if !isTrueCommunity {
		key := domain.KeyLiquidationSeparationPersonal
		if regime == domain.RegimeCommunityLegal && asset.AssetOrigin == domain.OriginCommunity {
			key = domain.KeyLiquidationCommunityPropre
		}
		attribution := AssetAttribution{DeceasedShare: asset.EstimatedValue, SpouseShare: decimal.Zero(), PreciputShare: decimal.Zero()}
		detail := domain.LiquidationAssetDetail{AssetID: asset.ID, DeceasedShare: attribution.DeceasedShare, SpouseShare: attribution.SpouseShare, ExplanationKeys: []domain.ExplanationKey{key}}
		return attribution, detail, false
	}

	// Step 2: Art. 1468 reward, split 50/50 regardless of final advantage
	// applied — the reward compensates the community/personal estates for
	// funding, independent of the spouse's matrimonial-advantage election.
	reward := decimal.Zero()
	pct := asset.CommunityFundingPercentage
	if pct.IsPositive() && pct.LessThan(sdecimal.NewFromInt(100)) {
		reward = asset.EstimatedValue.Mul(sdecimal.NewFromInt(100).Sub(pct)).Div(sdecimal.NewFromInt(100))
		tracer.Warn(domain.SeverityInfo, domain.AudienceNotary, domain.CategoryLegal,
			"community funding reward computed; payer of the shortfall could not be identified, split 50/50 by policy",
			domain.KeyLiquidationReward, domain.KeyAlertRewardPayerUnknown)
	}
	rewardPerSide := reward.Div(sdecimal.NewFromInt(2))
	remaining := asset.EstimatedValue.Sub(reward)

	var deceasedRemaining, spouseRemaining, preciput decimal.Money
	var keys []domain.ExplanationKey

	switch {
	case input.MatrimonialAdvantages.HasFullAttribution:
		deceasedRemaining = decimal.Zero()
		spouseRemaining = remaining
		keys = append(keys, domain.KeyLiquidationFullAttribution)
		if hasStepchildren {
			tracer.Warn(domain.SeverityWarning, domain.AudienceNotary, domain.CategoryLegal,
				"full attribution to spouse with stepchildren present: action en retranchement may apply, capping the advantage at the special disposable quota",
				domain.KeyAlertRetranchement)
		}
	case preciputSet[asset.ID]:
		// Spouse takes this asset entirely, off-top, before any further division.
		preciput = remaining
		deceasedRemaining = decimal.Zero()
		spouseRemaining = decimal.Zero()
		keys = append(keys, domain.KeyLiquidationPreciput)
	case input.MatrimonialAdvantages.HasUnequalShare:
		spousePct := input.MatrimonialAdvantages.SpouseSharePercentage
		spouseRemaining = remaining.Mul(spousePct).Div(sdecimal.NewFromInt(100))
		deceasedRemaining = remaining.Sub(spouseRemaining)
		keys = append(keys, domain.KeyLiquidationUnequalShare)
	default:
		half := remaining.Div(sdecimal.NewFromInt(2))
		deceasedRemaining = half
		spouseRemaining = remaining.Sub(half)
		keys = append(keys, domain.KeyLiquidationCommunity50)
	}

	attribution := AssetAttribution{
		DeceasedShare: deceasedRemaining.Add(rewardPerSide),
		SpouseShare:   spouseRemaining.Add(rewardPerSide),
		PreciputShare: preciput,
		RewardApplied: reward,
	}
	detail := domain.LiquidationAssetDetail{
		AssetID:         asset.ID,
		DeceasedShare:   attribution.DeceasedShare,
		SpouseShare:     attribution.SpouseShare,
		PreciputShare:   attribution.PreciputShare,
		RewardApplied:   attribution.RewardApplied,
		ExplanationKeys: keys,
	}
	return attribution, detail, true
}
