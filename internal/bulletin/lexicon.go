package bulletin

import (
	_ "embed"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Category names one lexicon table.
type Category string

const (
	CategoryTurbulence Category = "turbulence"
	CategorySkyCover   Category = "sky_cover"
	CategoryPhenomena  Category = "phenomena"
	CategoryDirection  Category = "direction"
	CategoryRemarks    Category = "remarks"
	CategoryAircraft   Category = "aircraft"
	CategoryReportType Category = "report_type"
)

//go:embed lexicon.yaml
var lexiconYAML []byte

// lexicon is loaded once at process start and read-only thereafter, so
// concurrent decodes need no locking.
var lexicon = mustLoadLexicon(lexiconYAML)

func mustLoadLexicon(data []byte) map[Category]map[string]string {
	tables := make(map[Category]map[string]string)
	if err := yaml.Unmarshal(data, &tables); err != nil {
		panic(fmt.Sprintf("bulletin: embedded lexicon is invalid: %v", err))
	}
	return tables
}

// Expand returns the descriptive text for an abbreviation code, or the code
// unchanged when the category or code is unknown. It never fails; an
// unrecognized code renders as itself downstream.
func Expand(category Category, code string) string {
	key := strings.ToUpper(strings.TrimSpace(code))
	if desc, ok := lexicon[category][key]; ok {
		return desc
	}
	return code
}
