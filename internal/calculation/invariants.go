package calculation

import (
	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/domain"
)

// invariantTolerance absorbs the cent-level drift that banker's rounding of
// many small per-bracket amounts can introduce into a percentage total.
var invariantTolerance = sdecimal.NewFromFloat(0.01)

// checkInvariants re-verifies the structural guarantees the pipeline is
// supposed to uphold by construction (§7). A violation here means a bug in
// the calculation package, not a domain issue, so it panics with
// domain.InternalInvariantError; Simulate recovers it into a returned error.
func checkInvariants(output *domain.SuccessionOutput, devolutionOrder int) {
	for _, h := range output.HeirsBreakdown {
		if h.GrossShareValue.IsNegative() {
			panic(domain.NewInternalInvariantError("ShareAllocator", "I4", "heir "+h.ID+" has a negative gross share value"))
		}
		if h.NetShareValue.IsNegative() {
			panic(domain.NewInternalInvariantError("InheritanceTax", "I3", "heir "+h.ID+" owes more tax than the value received"))
		}
	}

	if devolutionOrder >= 1 && devolutionOrder <= 3 {
		total := sdecimal.Zero
		for _, h := range output.HeirsBreakdown {
			total = total.Add(h.LegalSharePercent)
		}
		if total.Sub(sdecimal.NewFromInt(100)).Abs().GreaterThan(invariantTolerance) {
			panic(domain.NewInternalInvariantError("ShareAllocator", "I2", "legal share percentages do not sum to 100"))
		}
	}
}
