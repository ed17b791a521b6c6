package bulletin

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformedPirep reports a PIREP missing its station / report-type header.
// Station and type are load-bearing for every other field, so no partial
// record is produced.
var ErrMalformedPirep = errors.New("malformed pirep")

// Well-known PIREP field codes. Unknown codes are retained in Fields too.
const (
	FieldLocation    = "OV"
	FieldTime        = "TM"
	FieldFlightLevel = "FL"
	FieldAircraft    = "TP"
	FieldTurbulence  = "TB"
	FieldSky         = "SK"
	FieldWeather     = "WX"
	FieldTemperature = "TA"
	FieldRemarks     = "RM"
)

// PirepRecord is a decoded pilot report: the fixed header plus the raw keyed
// fields. Display values are derived on demand by the Decode* functions, so
// a field absent from the raw report never produces a synthetic default.
type PirepRecord struct {
	Station    string            `json:"station"`
	ReportType string            `json:"report_type"` // "UA" routine, "UUA" urgent
	Fields     map[string]string `json:"fields"`
}

// Urgent reports whether the bulletin carried the urgent report-type code.
func (r PirepRecord) Urgent() bool {
	return r.ReportType == "UUA"
}

// DecodePirep splits a slash-delimited keyed pilot report into a PirepRecord.
// The first two whitespace tokens are station and report type; each remaining
// /-segment's first two characters are a field code and the rest its value.
func DecodePirep(raw string) (PirepRecord, error) {
	parts := strings.Fields(strings.TrimSpace(raw))
	if len(parts) < 2 {
		return PirepRecord{}, fmt.Errorf("%w: want at least station and report type, got %q", ErrMalformedPirep, raw)
	}

	rec := PirepRecord{
		Station:    parts[0],
		ReportType: parts[1],
		Fields:     make(map[string]string),
	}

	rest := strings.Join(parts[2:], " ")
	for _, seg := range strings.Split(rest, "/") {
		seg = strings.TrimSpace(seg)
		if seg == "" {
			continue
		}
		if len(seg) < 2 {
			// A stray single character cannot carry a field code; keep it
			// verbatim under itself so rendering still shows it.
			rec.Fields[seg] = ""
			continue
		}
		rec.Fields[seg[:2]] = strings.TrimSpace(seg[2:])
	}
	return rec, nil
}

// DecodeLocation expands an OV value of the form <station><radial><distance>
// ("UIN134015" -> "Over UIN, radial 134°, distance 15 NM"). Values shorter
// than nine characters or with non-numeric radial/distance pass through
// unparsed.
func DecodeLocation(ov string) string {
	if len(ov) < 9 {
		return ov
	}
	station := ov[:3]
	radial, errR := strconv.Atoi(ov[3:6])
	distance, errD := strconv.Atoi(ov[6:9])
	if errR != nil || errD != nil || radial > 359 {
		return ov
	}
	return fmt.Sprintf("Over %s, radial %d°, distance %d NM", station, radial, distance)
}

// DecodeTurbulence expands a TB value: a hyphen-joined intensity range with
// an optional heading range ("LGT-MOD 270-290" -> "Light to Moderate
// turbulence between headings 270-290").
func DecodeTurbulence(tb string) string {
	parts := strings.Fields(tb)
	if len(parts) == 0 {
		return "No turbulence information"
	}
	levels := strings.Split(parts[0], "-")
	for i, lvl := range levels {
		levels[i] = Expand(CategoryTurbulence, lvl)
	}
	desc := strings.Join(levels, " to ") + " turbulence"
	if len(parts) > 1 {
		return desc + " between headings " + parts[1]
	}
	return desc
}

// DecodeSky expands an SK value of the form <cover><base> with an optional
// -TOP<top> suffix. Base and top arrive in hundreds of feet; non-numeric
// values render as "Unknown" rather than failing the record.
func DecodeSky(sk string) string {
	if sk == "" {
		return "No sky cover information"
	}
	parts := strings.Split(sk, "-")
	first := parts[0]
	if len(first) < 3 {
		return sk
	}
	cover := Expand(CategorySkyCover, first[:3])

	base := "Unknown"
	if v, err := strconv.Atoi(first[3:]); err == nil {
		base = strconv.Itoa(v * 100)
	}
	out := fmt.Sprintf("%s at %s feet", cover, base)

	if len(parts) > 1 && len(parts[1]) > 3 {
		if v, err := strconv.Atoi(parts[1][3:]); err == nil {
			out += fmt.Sprintf(", tops at %d feet", v*100)
		}
	}
	return out
}

// DecodeWeather expands a WX value token-wise through the phenomena table.
// Tokens may be whitespace or comma separated; unmatched tokens pass through.
func DecodeWeather(wx string) string {
	if wx == "" {
		return "No weather phenomena reported"
	}
	var decoded []string
	for _, tok := range strings.Fields(wx) {
		for _, ph := range strings.Split(tok, ",") {
			ph = strings.TrimSpace(ph)
			if ph == "" {
				continue
			}
			decoded = append(decoded, Expand(CategoryPhenomena, strings.ToUpper(ph)))
		}
	}
	return strings.Join(decoded, ", ")
}

// DecodeRemarks expands an RM value word-wise through the remarks table.
func DecodeRemarks(rm string) string {
	if rm == "" {
		return "No remarks"
	}
	words := strings.Fields(rm)
	for i, w := range words {
		words[i] = Expand(CategoryRemarks, w)
	}
	return strings.Join(words, " ")
}

// DecodeAircraft expands a TP value through the aircraft-type table.
func DecodeAircraft(tp string) string {
	if tp == "" {
		return "Unknown aircraft"
	}
	return Expand(CategoryAircraft, tp)
}

// DecodeFlightLevel converts an FL value reported in hundreds of feet
// ("085" -> "8500 feet"); non-numeric values pass through unchanged.
func DecodeFlightLevel(fl string) string {
	v, err := strconv.Atoi(fl)
	if err != nil {
		return fl
	}
	return fmt.Sprintf("%d feet", v*100)
}
