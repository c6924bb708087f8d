package output

import (
	"github.com/goccy/go-json"

	"github.com/praxo/tax-calculator/internal/domain"
)

// JSONFormatter serializes the result record as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(result *domain.ComprehensiveTaxResult) ([]byte, error) {
	return json.MarshalIndent(result, "", "  ")
}
