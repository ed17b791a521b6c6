package bulletin

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	// validRe matches a "VALID DDHHMM/DDHHMM" validity token.
	validRe = regexp.MustCompile(`VALID (\d{6})/(\d{6})`)

	// airmetFIRRe matches the loose AIRMET FIR phrase ("... CZEG FIR ...").
	airmetFIRRe = regexp.MustCompile(`([A-Z]+ FIR)`)

	// sigmetFIRRe matches an ICAO prefix followed by a named FIR phrase,
	// e.g. "KZNY- NEW YORK OCEANIC FIR".
	sigmetFIRRe = regexp.MustCompile(`\b([A-Z]{3,4})-? ?([A-Z ]+ FIR)\b`)

	// areaRe captures the AIRMET free-text area phrase up to the VALID token.
	areaRe = regexp.MustCompile(`(AREA OF .+?)( VALID|$)`)

	// coordRe matches one DDNDDDW polygon vertex.
	coordRe = regexp.MustCompile(`(\d{2})N(\d{3})W`)

	// turbRe and icingRe pair an optional intensity qualifier with the
	// phenomenon keyword.
	turbRe  = regexp.MustCompile(`(?:(OCNL|OCCASIONAL|EMBD|EMBEDDED|SEV|SEVERE|MOD|MODERATE) )?TURB\b`)
	icingRe = regexp.MustCompile(`(?:(OCNL|OCCASIONAL|EMBD|EMBEDDED|SEV|SEVERE|MOD|MODERATE) )?ICING\b`)

	baseFLRe = regexp.MustCompile(`BLW FL(\d{3})`)
	topFLRe  = regexp.MustCompile(`TOP (\d{3,4}) FL`)

	movementRe = regexp.MustCompile(`MOV(?:ING)? ([NSEW]{1,2}) (\d{1,3}) KT`)

	// tsRe matches the combined SIGMET thunderstorm clause:
	// "TS [dir] MOV[ING] <dir> <speed> KT TOP <fl> FL".
	tsRe = regexp.MustCompile(`TS(?: ([NSEW]{1,2}))? MOV(?:ING)? ([NSEW]{1,2}) (\d{1,3}) KT TOP (\d{3,4}) FL`)

	// phraseSplitRe breaks AIRMET weather description text into phrases.
	phraseSplitRe = regexp.MustCompile(`[,.]`)
)

// qualifierWords expands intensity qualifier abbreviations for display.
var qualifierWords = map[string]string{
	"OCNL":       "Occasional",
	"OCCASIONAL": "Occasional",
	"EMBD":       "Embedded",
	"EMBEDDED":   "Embedded",
	"SEV":        "Severe",
	"SEVERE":     "Severe",
	"MOD":        "Moderate",
	"MODERATE":   "Moderate",
}

// Coordinate is one polygon vertex parsed from a DDNDDDW token: degrees
// north and degrees west, kept alongside the raw token. Insertion order
// defines the polygon winding as given in the source text.
type Coordinate struct {
	Raw string  `json:"raw"`
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Movement is a hazard's drift direction and speed.
type Movement struct {
	Direction string `json:"direction"`
	SpeedKt   int    `json:"speed_kt"`
}

// ThunderstormCell is the domestic-SIGMET thunderstorm sub-record.
type ThunderstormCell struct {
	Direction string `json:"direction,omitempty"`
	Movement  string `json:"movement"`
	SpeedKt   int    `json:"speed_kt"`
	TopFL     int    `json:"top_fl"`
}

// HazardRecord is a decoded AIRMET, domestic SIGMET, or Convective SIGMET.
// Every optional field is an explicit pointer or nil slice; a field the
// decoder could not extract is simply absent.
type HazardRecord struct {
	Product    ProductKind     `json:"product"`
	AirmetType *AirmetType     `json:"airmet_type,omitempty"`
	Validity   *ValidityWindow `json:"validity,omitempty"`
	FIR        *string         `json:"fir,omitempty"`

	// Area is the AIRMET free-text region phrase; Polygon the SIGMET/SIGC
	// coordinate ring. The two are mutually exclusive by bulletin family.
	Area    *string      `json:"area,omitempty"`
	Polygon []Coordinate `json:"polygon,omitempty"`

	// WeatherDesc holds the AIRMET condition phrases following the series
	// keyword, split on sentence punctuation.
	WeatherDesc []string `json:"weather_desc,omitempty"`

	Turbulence    *string `json:"turbulence,omitempty"`
	Icing         *string `json:"icing,omitempty"`
	VolcanicAsh   bool    `json:"volcanic_ash,omitempty"`
	DustSandStorm bool    `json:"dust_sand_storm,omitempty"`
	BaseFL        *int    `json:"base_fl,omitempty"`
	TopFL         *int    `json:"top_fl,omitempty"`

	Movement      *Movement           `json:"movement,omitempty"`
	Thunderstorms *ThunderstormCell   `json:"thunderstorms,omitempty"`
	Convective    *ConvectiveCriteria `json:"convective,omitempty"`

	// Notes records data-quality problems (e.g. a malformed validity token)
	// that degraded a field to absent without failing the decode.
	Notes []string `json:"notes,omitempty"`
}

// DecodeHazard decodes a hazard bulletin of the given kind. It never fails:
// any field that cannot be extracted is absent from the result, and a
// malformed validity token is downgraded to a note.
func DecodeHazard(raw string, kind ProductKind) HazardRecord {
	text := CleanText(raw)
	rec := HazardRecord{Product: kind}

	policy := RolloverInvalidDay
	if kind == ProductAirmet {
		policy = RolloverLookBack
	}
	if m := validRe.FindStringSubmatch(text); m != nil {
		window, err := ResolveWindow(m[1], m[2], clock.Now().UTC(), policy)
		if err != nil {
			rec.Notes = append(rec.Notes, fmt.Sprintf("validity dropped: %v", err))
		} else {
			rec.Validity = &window
		}
	}

	switch kind {
	case ProductAirmet:
		decodeAirmet(text, &rec)
	case ProductSigmetDomestic:
		decodeSigmetCommon(text, &rec)
		decodeSigmetPhenomena(text, &rec)
	case ProductSigmetConvective:
		decodeSigmetCommon(text, &rec)
		criteria := EvaluateConvectiveCriteria(text)
		rec.Convective = &criteria
	}
	return rec
}

// decodeAirmet extracts the AIRMET-family fields: series type, loose FIR
// phrase, free-text area, and the condition phrases after the series keyword.
func decodeAirmet(text string, rec *HazardRecord) {
	if t, ok := DetectAirmetType(text); ok {
		rec.AirmetType = &t

		if idx := strings.Index(text, t.keyword()); idx >= 0 {
			rest := text[idx+len(t.keyword()):]
			for _, phrase := range phraseSplitRe.Split(rest, -1) {
				phrase = strings.TrimSpace(phrase)
				if phrase != "" {
					rec.WeatherDesc = append(rec.WeatherDesc, phrase)
				}
			}
		}
	}

	if m := airmetFIRRe.FindStringSubmatch(text); m != nil {
		rec.FIR = &m[1]
	}
	if m := areaRe.FindStringSubmatch(text); m != nil {
		area := strings.TrimSpace(m[1])
		rec.Area = &area
	}
}

// decodeSigmetCommon extracts the fields shared by domestic and convective
// SIGMETs: the named FIR and the coordinate polygon.
func decodeSigmetCommon(text string, rec *HazardRecord) {
	if m := sigmetFIRRe.FindStringSubmatch(text); m != nil {
		fir := strings.TrimSpace(m[2])
		rec.FIR = &fir
	}

	for _, m := range coordRe.FindAllStringSubmatch(text, -1) {
		lat, _ := strconv.Atoi(m[1])
		lon, _ := strconv.Atoi(m[2])
		rec.Polygon = append(rec.Polygon, Coordinate{
			Raw: m[0],
			Lat: float64(lat),
			Lon: -float64(lon),
		})
	}

	if m := movementRe.FindStringSubmatch(text); m != nil {
		speed, _ := strconv.Atoi(m[2])
		rec.Movement = &Movement{Direction: m[1], SpeedKt: speed}
	}
}

// decodeSigmetPhenomena extracts the domestic-SIGMET hazard attributes.
func decodeSigmetPhenomena(text string, rec *HazardRecord) {
	if level, ok := matchQualified(turbRe, text); ok {
		rec.Turbulence = &level
	}
	if level, ok := matchQualified(icingRe, text); ok {
		rec.Icing = &level
	}

	rec.VolcanicAsh = strings.Contains(text, "VOLCANIC ASH")
	rec.DustSandStorm = strings.Contains(text, "DUST STORM") || strings.Contains(text, "SAND STORM")

	if m := baseFLRe.FindStringSubmatch(text); m != nil {
		fl, _ := strconv.Atoi(m[1])
		rec.BaseFL = &fl
	}
	if m := topFLRe.FindStringSubmatch(text); m != nil {
		fl, _ := strconv.Atoi(m[1])
		rec.TopFL = &fl
	}

	if m := tsRe.FindStringSubmatch(text); m != nil {
		speed, _ := strconv.Atoi(m[3])
		top, _ := strconv.Atoi(m[4])
		rec.Thunderstorms = &ThunderstormCell{
			Direction: m[1],
			Movement:  m[2],
			SpeedKt:   speed,
			TopFL:     top,
		}
	}
}

// matchQualified applies a qualifier-plus-keyword regex and returns the
// display form of the intensity qualifier, or "Reported" when the keyword
// appears unqualified.
func matchQualified(re *regexp.Regexp, text string) (string, bool) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return "", false
	}
	if m[1] == "" {
		return "Reported", true
	}
	return qualifierWords[m[1]], true
}
