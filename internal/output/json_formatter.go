package output

import (
	"encoding/json"

	"github.com/rpgo/succession-calculator/internal/domain"
)

// JSONFormatter serializes the succession output as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.SuccessionOutput) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
