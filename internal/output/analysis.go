package output

import (
	"sort"

	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// HeirRanking ranks one heir by net share received, for the console summary's
// "largest net share" line.
type HeirRanking struct {
	HeirID               string
	Name                 string
	NetShareValue        decimal.Money
	ShareOfEstatePercent sdecimal.Decimal
}

// AnalyzeHeirs ranks heirs by net share value, highest first. Extracted from
// the console formatter for testability, mirroring the teacher's
// AnalyzeScenarios extraction.
func AnalyzeHeirs(result *domain.SuccessionOutput) []HeirRanking {
	rankings := make([]HeirRanking, 0, len(result.HeirsBreakdown))
	total := result.GlobalMetrics.TotalEstateValue
	for _, h := range result.HeirsBreakdown {
		pct := sdecimal.Zero
		if !total.IsZero() {
			pct = h.NetShareValue.Decimal.Div(total.Decimal)
		}
		rankings = append(rankings, HeirRanking{
			HeirID:               h.ID,
			Name:                 h.Name,
			NetShareValue:        h.NetShareValue,
			ShareOfEstatePercent: pct,
		})
	}
	sort.Slice(rankings, func(i, j int) bool {
		return rankings[i].NetShareValue.GreaterThan(rankings[j].NetShareValue)
	})
	return rankings
}
