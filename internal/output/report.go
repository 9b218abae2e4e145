package output

import (
	"errors"
	"fmt"
	"strings"

	"github.com/rpgo/succession-calculator/internal/domain"
)

// ErrUnsupportedFormat is returned when GenerateReport is asked for a format
// that resolves to no registered Formatter.
var ErrUnsupportedFormat = errors.New("unsupported report format")

// GenerateReport writes a SuccessionOutput through the named formatter to a
// timestamped file and returns the error, if any. "all" writes every
// registered formatter.
func GenerateReport(result *domain.SuccessionOutput, format string) error {
	if format == "all" {
		for _, f := range builtInFormatters {
			ext := f.Name()
			if _, err := WriteFormatted(f, result, ext); err != nil {
				return err
			}
		}
		return nil
	}
	f := GetFormatterByName(format)
	if f == nil {
		return fmt.Errorf("%w: %q. Try one of: %s (aliases: %s)", ErrUnsupportedFormat, format,
			strings.Join(AvailableFormatterNames(), ", "), strings.Join(AvailableFormatAliases(), ", "))
	}
	_, err := WriteFormatted(f, result, f.Name())
	return err
}
