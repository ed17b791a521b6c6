package bulletin

import (
	"fmt"
	"regexp"
	"strings"
)

// ProductKind identifies which decoder and record shape apply to a bulletin.
// The kind is supplied by the caller (upstream fetchers know which product
// endpoint they hit); only the AIRMET sub-type is inferred from the text.
type ProductKind string

const (
	ProductAirmet           ProductKind = "airmet"
	ProductSigmetDomestic   ProductKind = "sigmet"
	ProductSigmetConvective ProductKind = "sigc"
	ProductPirep            ProductKind = "pirep"
)

// ParseProductKind maps an envelope/header value to a ProductKind.
func ParseProductKind(s string) (ProductKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "airmet":
		return ProductAirmet, nil
	case "sigmet":
		return ProductSigmetDomestic, nil
	case "sigc", "sigmet-convective", "convective-sigmet":
		return ProductSigmetConvective, nil
	case "pirep":
		return ProductPirep, nil
	}
	return "", fmt.Errorf("unknown product kind %q", s)
}

// AirmetType is the AIRMET series designator.
type AirmetType string

const (
	AirmetSierra AirmetType = "sierra"
	AirmetTango  AirmetType = "tango"
	AirmetZulu   AirmetType = "zulu"
)

// Label returns the descriptive series name used in rendered summaries.
func (t AirmetType) Label() string {
	switch t {
	case AirmetSierra:
		return "Sierra (Mountain Obscuration / IFR)"
	case AirmetTango:
		return "Tango (Moderate Turbulence / Strong Winds)"
	case AirmetZulu:
		return "Zulu (Moderate Icing)"
	}
	return string(t)
}

// keyword returns the token searched for in bulletin text.
func (t AirmetType) keyword() string {
	return strings.ToUpper(string(t))
}

var (
	sierraRe = regexp.MustCompile(`\bSIERRA\b`)
	tangoRe  = regexp.MustCompile(`\bTANGO\b`)
	zuluRe   = regexp.MustCompile(`\bZULU\b`)
)

// DetectAirmetType infers the AIRMET series from normalized text. Search
// order is Sierra, then Tango, then Zulu; the first keyword found wins even
// when several appear.
func DetectAirmetType(text string) (AirmetType, bool) {
	switch {
	case sierraRe.MatchString(text):
		return AirmetSierra, true
	case tangoRe.MatchString(text):
		return AirmetTango, true
	case zuluRe.MatchString(text):
		return AirmetZulu, true
	}
	return "", false
}
