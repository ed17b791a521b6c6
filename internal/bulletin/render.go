package bulletin

import (
	"fmt"
	"sort"
	"strings"
)

const summaryTimeFormat = "2006-01-02 15:04 UTC"

// Summary renders the hazard record as ordered human-readable lines.
//
// Absence policy: structural fields (type, validity, and for AIRMETs the FIR
// and area) always produce a line, with explicit "not found" / "Unknown"
// text; optional phenomenon attributes are omitted entirely when absent.
func (r HazardRecord) Summary() []string {
	var lines []string

	switch r.Product {
	case ProductAirmet:
		lines = append(lines, "U.S. AIRMET Report Summary:")
		if r.AirmetType != nil {
			lines = append(lines, " - Type: "+r.AirmetType.Label())
		} else {
			lines = append(lines, " - Type: Unknown")
		}
		lines = append(lines, validityLine(r.Validity))
		fir := "Unknown FIR"
		if r.FIR != nil {
			fir = *r.FIR
		}
		lines = append(lines, " - Flight Information Region (FIR): "+fir)
		area := "Area not specified"
		if r.Area != nil {
			area = *r.Area
		}
		lines = append(lines, " - Affected Area: "+area)
		if len(r.WeatherDesc) > 0 {
			lines = append(lines, " - Weather Conditions:")
			for _, phrase := range r.WeatherDesc {
				lines = append(lines, "    * "+phrase)
			}
		}

	case ProductSigmetDomestic:
		lines = append(lines, "U.S. Domestic SIGMET Summary:")
		lines = append(lines, validityLine(r.Validity))
		lines = append(lines, commonSigmetLines(r)...)
		if r.Turbulence != nil {
			lines = append(lines, " - Turbulence: "+*r.Turbulence)
		}
		if r.Icing != nil {
			lines = append(lines, " - Icing: "+*r.Icing)
		}
		if r.VolcanicAsh {
			lines = append(lines, " - Volcanic Ash: Present")
		}
		if r.DustSandStorm {
			lines = append(lines, " - Dust/Sand Storm: Present")
		}
		if r.BaseFL != nil {
			lines = append(lines, fmt.Sprintf(" - Base Flight Level: FL%d", *r.BaseFL))
		}
		if r.TopFL != nil {
			lines = append(lines, fmt.Sprintf(" - Top Flight Level: FL%d", *r.TopFL))
		}
		lines = append(lines, movementLines(r.Movement)...)
		lines = append(lines, thunderstormLines(r.Thunderstorms)...)

	case ProductSigmetConvective:
		lines = append(lines, "U.S. Convective SIGMET Summary:")
		lines = append(lines, validityLine(r.Validity))
		lines = append(lines, commonSigmetLines(r)...)
		if r.Convective != nil {
			lines = append(lines, convectiveLines(*r.Convective)...)
		}
		lines = append(lines, movementLines(r.Movement)...)
	}

	return lines
}

func validityLine(w *ValidityWindow) string {
	if w == nil {
		return " - Validity period not found"
	}
	return fmt.Sprintf(" - Valid from %s to %s",
		w.Start.Format(summaryTimeFormat), w.End.Format(summaryTimeFormat))
}

// commonSigmetLines renders the FIR and polygon shared by both SIGMET
// families. Unlike the AIRMET path, an absent FIR is omitted, not defaulted.
func commonSigmetLines(r HazardRecord) []string {
	var lines []string
	if r.FIR != nil {
		lines = append(lines, " - Flight Information Region (FIR): "+*r.FIR)
	}
	if len(r.Polygon) > 0 {
		raw := make([]string, len(r.Polygon))
		for i, c := range r.Polygon {
			raw[i] = c.Raw
		}
		lines = append(lines, " - Affected area polygon coordinates: "+strings.Join(raw, ", "))
	}
	return lines
}

func movementLines(m *Movement) []string {
	if m == nil {
		return nil
	}
	dir := Expand(CategoryDirection, m.Direction)
	return []string{fmt.Sprintf(" - Movement: %s at %d knots", dir, m.SpeedKt)}
}

func thunderstormLines(ts *ThunderstormCell) []string {
	if ts == nil {
		return nil
	}
	location := "N/A"
	if ts.Direction != "" {
		location = Expand(CategoryDirection, ts.Direction)
	}
	return []string{
		" - Thunderstorms:",
		"    * Location: " + location,
		fmt.Sprintf("    * Movement: %s at %d knots", Expand(CategoryDirection, ts.Movement), ts.SpeedKt),
		fmt.Sprintf("    * Tops: FL%d", ts.TopFL),
	}
}

func convectiveLines(c ConvectiveCriteria) []string {
	lines := []string{" - Convective Criteria Met:"}
	if c.LineOfThunderstorms {
		percent, length := intOrZero(c.AreaPercent), intOrZero(c.LineLengthMi)
		lines = append(lines, fmt.Sprintf("    * Line of thunderstorms ≥ 60 miles long with %d%% affected length (Length: %d mi)", percent, length))
	}
	if c.AreaOfThunderstorms {
		lines = append(lines, fmt.Sprintf("    * Area of thunderstorms covering ≥ 40%% of the area (%d%%)", intOrZero(c.AreaPercent)))
	}
	if c.EmbeddedOrSevere {
		lines = append(lines, "    * Embedded or severe thunderstorms expected for more than 30 minutes")
	}
	if c.TornadoOrFunnel {
		lines = append(lines, "    * Tornado or funnel clouds present")
	}
	if c.HailThreeQuarterInch {
		lines = append(lines, "    * Hail ≥ 3/4 inch diameter observed or forecast")
	}
	if c.WindGusts50Kt {
		lines = append(lines, "    * Wind gusts ≥ 50 knots observed or forecast")
	}
	if !c.Any() {
		lines = append(lines, "    * None")
	}
	return lines
}

func intOrZero(p *int) int {
	if p == nil {
		return 0
	}
	return *p
}

// pirepLineOrder fixes the rendering order of the well-known PIREP fields.
var pirepLineOrder = []string{
	FieldLocation, FieldTime, FieldFlightLevel, FieldAircraft,
	FieldTurbulence, FieldSky, FieldWeather, FieldTemperature, FieldRemarks,
}

// Summary renders the pilot report as ordered human-readable lines.
//
// Absence policy: every well-known field produces a line, absent ones as an
// explicit "No report" (remarks: "None"); unknown field codes are appended
// verbatim in alphabetical order.
func (r PirepRecord) Summary() []string {
	lines := []string{
		"PIREP from station: " + r.Station,
		"Report type: " + Expand(CategoryReportType, r.ReportType),
	}

	for _, code := range pirepLineOrder {
		value, ok := r.Fields[code]
		lines = append(lines, pirepFieldLine(code, value, ok))
	}

	var extras []string
	for code := range r.Fields {
		if !isKnownPirepField(code) {
			extras = append(extras, code)
		}
	}
	sort.Strings(extras)
	for _, code := range extras {
		lines = append(lines, code+": "+r.Fields[code])
	}

	return lines
}

func pirepFieldLine(code, value string, present bool) string {
	switch code {
	case FieldLocation:
		if !present {
			return "Location (OV): No report"
		}
		return "Location (OV): " + DecodeLocation(value)
	case FieldTime:
		if !present {
			return "Time (UTC): No report"
		}
		return "Time (UTC): " + value
	case FieldFlightLevel:
		if !present {
			return "Flight Level: No report"
		}
		return "Flight Level: " + DecodeFlightLevel(value)
	case FieldAircraft:
		if !present {
			return "Aircraft Type: Unknown aircraft"
		}
		return "Aircraft Type: " + DecodeAircraft(value)
	case FieldTurbulence:
		if !present {
			return "Turbulence: No report"
		}
		return "Turbulence: " + DecodeTurbulence(value)
	case FieldSky:
		if !present {
			return "Sky conditions: No report"
		}
		return "Sky conditions: " + DecodeSky(value)
	case FieldWeather:
		if !present {
			return "Weather phenomena: No report"
		}
		return "Weather phenomena: " + DecodeWeather(value)
	case FieldTemperature:
		if !present {
			return "Temperature: No report"
		}
		return "Temperature: " + value + "°C"
	case FieldRemarks:
		if !present {
			return "Remarks: None"
		}
		return "Remarks: " + DecodeRemarks(value)
	}
	return code + ": " + value
}

func isKnownPirepField(code string) bool {
	for _, known := range pirepLineOrder {
		if code == known {
			return true
		}
	}
	return false
}
