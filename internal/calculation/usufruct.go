package calculation

import (
	"math"
	"time"

	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/domain"
	"github.com/rpgo/succession-calculator/pkg/dateutil"
	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// UsufructValuation splits one base value into its usufruct and bare-ownership
// components (C7, §4.5).
type UsufructValuation struct {
	Rate               sdecimal.Decimal
	UsufructValue      decimal.Money
	BareOwnershipValue decimal.Money
	ExplanationKey     domain.ExplanationKey
}

// ValueUsufructAtAge applies the Art. 669 I age-based viager scale to a base
// value for a usufructuary of the given age.
func ValueUsufructAtAge(baseValue decimal.Money, age int, params domain.LegalParameters) UsufructValuation {
	rate := params.UsufructRateForAge(age)
	usufruct := baseValue.Mul(rate).Round()
	return UsufructValuation{
		Rate:               rate,
		UsufructValue:      usufruct,
		BareOwnershipValue: baseValue.Sub(usufruct),
		ExplanationKey:     domain.KeyUsufructViagerScale,
	}
}

// ValueTemporaryUsufruct applies the Art. 669 II flat 23%-per-ten-year-period
// rate to a fixed-term usufruct, capped at 100% of the base value.
func ValueTemporaryUsufruct(baseValue decimal.Money, durationYears int, params domain.LegalParameters) UsufructValuation {
	periods := int(math.Ceil(float64(durationYears) / 10.0))
	if periods < 1 {
		periods = 1
	}
	rate := params.TemporaryUsufructRate.Mul(sdecimal.NewFromInt(int64(periods)))
	if rate.GreaterThan(sdecimal.NewFromInt(1)) {
		rate = sdecimal.NewFromInt(1)
	}
	usufruct := baseValue.Mul(rate).Round()
	return UsufructValuation{
		Rate:               rate,
		UsufructValue:      usufruct,
		BareOwnershipValue: baseValue.Sub(usufruct),
		ExplanationKey:     domain.KeyUsufructTemporaire,
	}
}

// ValueAssetUsufruct dispatches to the viager or temporaire valuation based on
// the asset's own dismemberment fields, used when an Asset is already held in
// usufruct/bare-ownership at the date of death (not the spouse's Art. 757
// election, which the allocator computes separately via ValueUsufructAtAge).
func ValueAssetUsufruct(asset domain.Asset, atDate time.Time, params domain.LegalParameters) (UsufructValuation, bool) {
	if asset.UsufructuaryBirthDate == nil && asset.UsufructDurationYears == nil {
		return UsufructValuation{}, false
	}
	if asset.UsufructType == domain.UsufructTemporaire && asset.UsufructDurationYears != nil {
		return ValueTemporaryUsufruct(asset.EstimatedValue, *asset.UsufructDurationYears, params), true
	}
	if asset.UsufructuaryBirthDate != nil {
		age := dateutil.Age(*asset.UsufructuaryBirthDate, atDate)
		return ValueUsufructAtAge(asset.EstimatedValue, age, params), true
	}
	return UsufructValuation{}, false
}
