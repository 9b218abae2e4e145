package calculation

import (
	"testing"
	"time"

	sdecimal "github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

func TestLiquidateMatrimony_CommunityLegalAssetSplitsFiftyFifty(t *testing.T) {
	input := domain.SimulationInput{
		MatrimonialRegime: domain.RegimeCommunityLegal,
		MarriageDate:      ptrTime(time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)),
		Assets: []domain.Asset{
			{ID: "house", EstimatedValue: decimal.NewMoney(400000), AssetOrigin: domain.OriginCommunity, AcquisitionDate: ptrTime(time.Date(1995, 1, 1, 0, 0, 0, 0, time.UTC))},
		},
	}
	tracer := NewTracer()

	result := LiquidateMatrimony(input, domain.DefaultLegalParameters2025(), tracer)

	assert.True(t, result.DeceasedCommunityShare.Equal(decimal.NewMoney(200000)))
	assert.True(t, result.SpouseCommunityShare.Equal(decimal.NewMoney(200000)))
	assert.True(t, result.DeceasedNetAssets.Equal(decimal.NewMoney(200000)))
}

func TestLiquidateMatrimony_SeparationTreatsCommunityOriginAsPersonalWithWarning(t *testing.T) {
	input := domain.SimulationInput{
		MatrimonialRegime: domain.RegimeSeparation,
		Assets: []domain.Asset{
			{ID: "house", EstimatedValue: decimal.NewMoney(400000), AssetOrigin: domain.OriginCommunity},
		},
	}
	tracer := NewTracer()

	result := LiquidateMatrimony(input, domain.DefaultLegalParameters2025(), tracer)

	assert.True(t, result.DeceasedNetAssets.Equal(decimal.NewMoney(400000)))
	found := false
	for _, w := range tracer.Warnings() {
		for _, k := range w.ExplanationKeys {
			if k == domain.KeyAlertSeparationCommunityAsset {
				found = true
			}
		}
	}
	assert.True(t, found, "expected a warning when a community-origin asset appears under a separation regime")
}

func TestLiquidateMatrimony_FullAttributionGivesSpouseEverything(t *testing.T) {
	input := domain.SimulationInput{
		MatrimonialRegime:     domain.RegimeCommunityUniversal,
		MatrimonialAdvantages: domain.MatrimonialAdvantages{HasFullAttribution: true},
		Assets: []domain.Asset{
			{ID: "house", EstimatedValue: decimal.NewMoney(400000), AssetOrigin: domain.OriginCommunity},
		},
	}
	tracer := NewTracer()

	result := LiquidateMatrimony(input, domain.DefaultLegalParameters2025(), tracer)

	attribution := result.Attributions["house"]
	assert.True(t, attribution.SpouseShare.Equal(decimal.NewMoney(400000)))
	assert.True(t, attribution.DeceasedShare.IsZero())
}

func TestLiquidateMatrimony_PreciputRemovesAssetOffTheTop(t *testing.T) {
	input := domain.SimulationInput{
		MatrimonialRegime: domain.RegimeCommunityUniversal,
		MatrimonialAdvantages: domain.MatrimonialAdvantages{
			HasPreciput:      true,
			PreciputAssetIDs: []string{"car"},
		},
		Assets: []domain.Asset{
			{ID: "car", EstimatedValue: decimal.NewMoney(50000), AssetOrigin: domain.OriginCommunity},
			{ID: "cash", EstimatedValue: decimal.NewMoney(100000), AssetOrigin: domain.OriginCommunity},
		},
	}
	tracer := NewTracer()

	result := LiquidateMatrimony(input, domain.DefaultLegalParameters2025(), tracer)

	assert.True(t, result.HasPreciput)
	assert.True(t, result.PreciputValue.Equal(decimal.NewMoney(50000)))
	assert.True(t, result.Attributions["car"].PreciputShare.Equal(decimal.NewMoney(50000)))
	assert.True(t, result.Attributions["cash"].DeceasedShare.Equal(decimal.NewMoney(50000)))
}

func TestLiquidateMatrimony_CommunityFundingRewardSplitsFiftyFifty(t *testing.T) {
	input := domain.SimulationInput{
		MatrimonialRegime: domain.RegimeCommunityUniversal,
		Assets: []domain.Asset{
			{ID: "house", EstimatedValue: decimal.NewMoney(300000), AssetOrigin: domain.OriginCommunity, CommunityFundingPercentage: sdecimal.NewFromInt(60)},
		},
	}
	tracer := NewTracer()

	result := LiquidateMatrimony(input, domain.DefaultLegalParameters2025(), tracer)

	found := false
	for _, w := range tracer.Warnings() {
		for _, k := range w.ExplanationKeys {
			if k == domain.KeyAlertRewardPayerUnknown {
				found = true
			}
		}
	}
	assert.True(t, found, "expected ALERT_REWARD_PAYER_UNKNOWN when community funding is partial")
	detail := result.Details[0]
	assert.True(t, detail.RewardApplied.IsPositive(), "expected a non-zero Art. 1468 reward")
}
