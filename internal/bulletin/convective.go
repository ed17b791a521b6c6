package bulletin

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// lineOfTstormsRe extracts line length and affected-length percent from
	// the canonical line-of-thunderstorms criterion phrasing.
	lineOfTstormsRe = regexp.MustCompile(`LINE OF THUNDERSTORMS AT LEAST (\d{1,3}) MILES? LONG WITH THUNDERSTORMS AFFECTING (\d{1,3})% OF ITS LENGTH`)

	// areaOfTstormsRe extracts the area-coverage percent.
	areaOfTstormsRe = regexp.MustCompile(`AREA OF THUNDERSTORMS COVERING AT LEAST (\d{1,3})% OF THE AREA`)

	// embeddedRe matches embedded or severe thunderstorms expected to persist
	// beyond thirty minutes.
	embeddedRe = regexp.MustCompile(`(EMBEDDED|SEVERE) THUNDERSTORMS.*EXPECTED TO OCCUR FOR MORE THAN 30 MINUTES`)

	// gteRe covers the inequality spellings bulletins use.
	gteRe = `(?:≥|>=|GREATER THAN OR EQUAL TO|GTE)`

	hailRe = regexp.MustCompile(`HAIL.*` + gteRe + `.*3/4 INCH`)
	gustRe = regexp.MustCompile(`WIND GUSTS.*` + gteRe + `.*50 KNOTS`)
)

// Official Convective SIGMET issuance thresholds.
const (
	lineLengthThresholdMi  = 60
	lineAffectedThresholdP = 40
	areaCoverageThresholdP = 40
)

// ConvectiveCriteria is the result of evaluating the six independent
// Convective SIGMET issuance checks. The booleans are an unordered
// checklist, not a state machine: a bulletin may satisfy any subset. The raw
// numeric values that produced the line/area decisions are kept alongside.
type ConvectiveCriteria struct {
	LineOfThunderstorms  bool `json:"line_of_tstorms_60mi"`
	AreaOfThunderstorms  bool `json:"area_of_tstorms_40percent"`
	EmbeddedOrSevere     bool `json:"embedded_or_severe_tstorms_30min"`
	TornadoOrFunnel      bool `json:"tornado_or_funnel"`
	HailThreeQuarterInch bool `json:"hail_gte_3_4inch"`
	WindGusts50Kt        bool `json:"wind_gusts_gte_50kt"`

	LineLengthMi *int `json:"line_length_mi,omitempty"`
	AreaPercent  *int `json:"area_percent,omitempty"`
}

// Any reports whether at least one criterion was met.
func (c ConvectiveCriteria) Any() bool {
	return c.LineOfThunderstorms || c.AreaOfThunderstorms || c.EmbeddedOrSevere ||
		c.TornadoOrFunnel || c.HailThreeQuarterInch || c.WindGusts50Kt
}

// EvaluateConvectiveCriteria runs all six checks against normalized bulletin
// text. Thresholds are compared against the extracted numbers, not assumed:
// a 50-mile line does not satisfy the 60-mile criterion even when its
// affected percentage clears 40.
func EvaluateConvectiveCriteria(text string) ConvectiveCriteria {
	var c ConvectiveCriteria

	if m := lineOfTstormsRe.FindStringSubmatch(text); m != nil {
		length, _ := strconv.Atoi(m[1])
		percent, _ := strconv.Atoi(m[2])
		c.LineOfThunderstorms = length >= lineLengthThresholdMi && percent >= lineAffectedThresholdP
		c.LineLengthMi = &length
		c.AreaPercent = &percent
	}

	if m := areaOfTstormsRe.FindStringSubmatch(text); m != nil {
		percent, _ := strconv.Atoi(m[1])
		c.AreaOfThunderstorms = percent >= areaCoverageThresholdP
		c.AreaPercent = &percent
	}

	c.EmbeddedOrSevere = embeddedRe.MatchString(text)
	c.TornadoOrFunnel = strings.Contains(text, "TORNADO") || strings.Contains(text, "FUNNEL CLOUD")
	c.HailThreeQuarterInch = hailRe.MatchString(text)
	c.WindGusts50Kt = gustRe.MatchString(text)

	return c
}
