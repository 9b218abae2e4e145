//go:build unit

package output

import (
	"testing"

	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/pkg/decimal"
)

func TestFormatCurrency(t *testing.T) {
	v := decimal.NewMoney(1234.567)
	got := FormatCurrency(v)
	want := "1234.57 €"
	if got != want {
		t.Errorf("FormatCurrency(%v) = %q, want %q", v, got, want)
	}
}

func TestFormatPercentage(t *testing.T) {
	v := sdecimal.NewFromFloat(0.123456)
	got := FormatPercentage(v)
	want := "12.35%"
	if got != want {
		t.Errorf("FormatPercentage(%v) = %q, want %q", v, got, want)
	}
}
