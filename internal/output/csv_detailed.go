package output

import (
	"bytes"
	"encoding/csv"
	"strconv"

	"github.com/rpgo/succession-calculator/internal/domain"
)

// CSVFormatter exports one row per heir: legal share, taxable base, tax and net share.
type CSVFormatter struct{}

func (c CSVFormatter) Name() string { return "csv" }

func (c CSVFormatter) Format(result *domain.SuccessionOutput) ([]byte, error) {
	buf := &bytes.Buffer{}
	w := csv.NewWriter(buf)
	header := []string{"HeirID", "Name", "LegalSharePercent", "GrossShareValue", "TaxableBase", "AbatementUsed", "TaxAmount", "NetShareValue"}
	if err := w.Write(header); err != nil {
		return nil, err
	}
	for _, h := range result.HeirsBreakdown {
		row := []string{
			h.ID,
			h.Name,
			h.LegalSharePercent.StringFixed(4),
			h.GrossShareValue.String(),
			h.TaxableBase.String(),
			h.AbatementUsed.String(),
			h.TaxAmount.String(),
			h.NetShareValue.String(),
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	return buf.Bytes(), w.Error()
}

func intToString(i int) string { return strconv.Itoa(i) }
