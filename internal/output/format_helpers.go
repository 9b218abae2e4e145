package output

import (
	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/pkg/decimal"
)

// FormatCurrency formats a Money amount as EUR currency with 2 decimals.
// Kept here so it can be reused by multiple formatters and unit tested in isolation.
func FormatCurrency(amount decimal.Money) string { return amount.String() + " €" }

// FormatPercentage formats a fraction (0-1) as a percentage with 2 decimals.
func FormatPercentage(fraction sdecimal.Decimal) string {
	return fraction.Mul(sdecimal.NewFromInt(100)).StringFixed(2) + "%"
}
