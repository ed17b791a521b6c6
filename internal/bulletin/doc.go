// Package bulletin decodes US aviation hazard bulletins (AIRMET, domestic
// SIGMET, Convective SIGMET/SIGC, and Pilot Reports/PIREP) from their
// fixed-grammar abbreviated text form into structured records, and renders
// those records as human-readable summaries.
//
// # Data Source
//
// Bulletin text originates from NWS/FAA aviation weather products as served
// by aviationweather.gov. The upstream collector fetches raw product text on
// a schedule and publishes each bulletin as a JSON envelope
// {"product": ..., "text": ...} to the Kafka source topic. This package never
// performs I/O; it is a pure function of one input string plus a clock.
//
// # Bulletin Conventions
//
// Validity times:
//
//	"VALID DDHHMM/DDHHMM": day-of-month, hour, minute, UTC, with no month
//	or year. The month is inferred from a reference time: the wall clock for
//	the window start, the resolved start for the window end. Two historical
//	rollover rules exist and both are preserved as named policies; see
//	[RolloverPolicy].
//
// Area descriptions:
//
//	AIRMETs describe the affected region as free text ("AREA OF MTN
//	OBSCURATION ...") while SIGMETs and Convective SIGMETs carry a polygon
//	of DDNDDDW tokens ("FROM 30N050W TO 35N045W ..."): two-digit degrees
//	north, three-digit degrees west. Vertex order follows source order.
//
// PIREP fields:
//
//	"<station> <UA|UUA> /OV .../TM .../FL .../TP .../TB .../SK .../WX
//	.../TA .../RM ...": slash-delimited segments keyed by a two-letter
//	field code. Unknown codes are retained verbatim. Cloud bases and tops
//	are reported in hundreds of feet.
//
// Abbreviation codes (turbulence intensity, sky cover, weather phenomena,
// compass directions, ARTCC identifiers, aircraft types) expand through the
// embedded lexicon tables; codes missing from a table pass through
// unchanged.
//
// # Failure Philosophy
//
// These bulletins are operational safety text. The decoders extract every
// field they can and represent the rest as absent; they do not validate
// against the canonical ICAO/NWS grammar and they never reject a partially
// malformed bulletin. The only structural failure is a PIREP missing its
// station and report-type header ([ErrMalformedPirep]). A malformed DDHHMM
// token inside an otherwise decodable hazard bulletin degrades to an absent
// validity window plus an entry in the record's Notes, so data-quality
// problems stay visible without suppressing the rest of the report.
package bulletin
