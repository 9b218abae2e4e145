package output

import (
	"bytes"
	"fmt"

	sdecimal "github.com/shopspring/decimal"

	"github.com/rpgo/succession-calculator/internal/domain"
)

// ConsoleFormatter renders a concise human-readable summary of a succession
// simulation: global metrics, per-heir net shares, and warnings.
type ConsoleFormatter struct{}

func (c ConsoleFormatter) Name() string { return "console" }

func (c ConsoleFormatter) Format(result *domain.SuccessionOutput) ([]byte, error) {
	var buf bytes.Buffer
	fmt.Fprintln(&buf, "SUCCESSION SIMULATION SUMMARY")
	fmt.Fprintln(&buf, "=============================")
	fmt.Fprintf(&buf, "Total estate value:     %s\n", FormatCurrency(result.GlobalMetrics.TotalEstateValue))
	fmt.Fprintf(&buf, "Legal reserve value:    %s\n", FormatCurrency(result.GlobalMetrics.LegalReserveValue))
	fmt.Fprintf(&buf, "Disposable quota value: %s\n", FormatCurrency(result.GlobalMetrics.DisposableQuotaValue))
	fmt.Fprintf(&buf, "Total tax amount:       %s\n", FormatCurrency(result.GlobalMetrics.TotalTaxAmount))
	fmt.Fprintln(&buf)

	fmt.Fprintln(&buf, "HEIRS")
	fmt.Fprintln(&buf, "-----")
	for _, h := range result.HeirsBreakdown {
		fmt.Fprintf(&buf, "%s (%s): share=%s gross=%s taxable=%s tax=%s net=%s\n",
			h.Name, h.ID,
			FormatPercentage(h.LegalSharePercent.Div(sdecimal.NewFromInt(100))),
			FormatCurrency(h.GrossShareValue),
			FormatCurrency(h.TaxableBase),
			FormatCurrency(h.TaxAmount),
			FormatCurrency(h.NetShareValue),
		)
	}

	rankings := AnalyzeHeirs(result)
	if len(rankings) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintf(&buf, "Largest net share: %s (%s, %s of estate)\n",
			rankings[0].Name, FormatCurrency(rankings[0].NetShareValue), FormatPercentage(rankings[0].ShareOfEstatePercent))
	}

	if len(result.Warnings) > 0 {
		fmt.Fprintln(&buf)
		fmt.Fprintln(&buf, "WARNINGS")
		fmt.Fprintln(&buf, "--------")
		for _, w := range result.Warnings {
			fmt.Fprintf(&buf, "[%s/%s/%s] %s\n", w.Severity, w.Audience, w.Category, w.Message)
		}
	}

	return buf.Bytes(), nil
}
