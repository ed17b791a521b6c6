package bulletin

import (
	"errors"
	"fmt"
	"strconv"
	"time"
)

// ErrMalformedDateToken reports a DDHHMM token with non-numeric or
// out-of-range components. The resolver fails loudly; bulletin decoders catch
// it and degrade to an absent validity window.
var ErrMalformedDateToken = errors.New("malformed date token")

// RolloverPolicy selects how a day-of-month token that does not fit the
// reference month is pushed into the following month. Both rules existed in
// production and disagree only near month boundaries, so the choice stays
// with the caller per bulletin family.
type RolloverPolicy int

const (
	// RolloverLookBack rolls into the next month when the literal day either
	// does not exist in the reference month or lands more than 15 days before
	// the reference: a day clearly in the past must mean next month.
	// Historical AIRMET behavior.
	RolloverLookBack RolloverPolicy = iota

	// RolloverInvalidDay rolls into the next month only when the literal day
	// does not exist in the reference month (e.g. day 31 in April).
	// Historical SIGMET/SIGC behavior.
	RolloverInvalidDay
)

// lookBackWindow is how far before the reference a candidate may land under
// RolloverLookBack before it is treated as next month's date.
const lookBackWindow = 15 * 24 * time.Hour

// ValidityWindow is a bulletin's resolved validity period.
type ValidityWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ResolveDayTime converts a 6-digit DDHHMM token into an absolute UTC
// timestamp, taking year and month from ref and applying the given rollover
// policy. Resolution is idempotent: feeding the result back as ref yields the
// same timestamp.
func ResolveDayTime(token string, ref time.Time, policy RolloverPolicy) (time.Time, error) {
	day, hour, minute, err := splitDayTime(token)
	if err != nil {
		return time.Time{}, err
	}

	ref = ref.UTC()
	candidate := time.Date(ref.Year(), ref.Month(), day, hour, minute, 0, 0, time.UTC)
	// time.Date normalizes overflow (Apr 31 -> May 1), so a shifted day means
	// the literal day does not exist in the reference month.
	dayExists := candidate.Day() == day

	roll := false
	switch policy {
	case RolloverLookBack:
		roll = !dayExists || candidate.Before(ref.Add(-lookBackWindow))
	case RolloverInvalidDay:
		roll = !dayExists
	}
	if !roll {
		return candidate, nil
	}

	// First day of the next month, then advance day-1 days, keeping HH:MM.
	next := time.Date(ref.Year(), ref.Month()+1, 1, hour, minute, 0, 0, time.UTC)
	return next.AddDate(0, 0, day-1), nil
}

// ResolveWindow resolves a "VALID DDHHMM/DDHHMM" token pair. The end token is
// anchored to the resolved start, never the wall clock, so multi-day windows
// stay internally consistent; an end that still lands before the start is
// rolled one month forward, guaranteeing End >= Start.
func ResolveWindow(startTok, endTok string, now time.Time, policy RolloverPolicy) (ValidityWindow, error) {
	start, err := ResolveDayTime(startTok, now, policy)
	if err != nil {
		return ValidityWindow{}, fmt.Errorf("window start: %w", err)
	}
	end, err := ResolveDayTime(endTok, start, policy)
	if err != nil {
		return ValidityWindow{}, fmt.Errorf("window end: %w", err)
	}
	if end.Before(start) {
		end = end.AddDate(0, 1, 0)
	}
	return ValidityWindow{Start: start, End: end}, nil
}

// splitDayTime parses and range-checks the three DDHHMM components.
func splitDayTime(token string) (day, hour, minute int, err error) {
	if len(token) != 6 {
		return 0, 0, 0, fmt.Errorf("%w: %q: want 6 digits", ErrMalformedDateToken, token)
	}
	day, errD := strconv.Atoi(token[:2])
	hour, errH := strconv.Atoi(token[2:4])
	minute, errM := strconv.Atoi(token[4:6])
	if errD != nil || errH != nil || errM != nil {
		return 0, 0, 0, fmt.Errorf("%w: %q: non-numeric component", ErrMalformedDateToken, token)
	}
	if day < 1 || day > 31 || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, 0, fmt.Errorf("%w: %q: component out of range", ErrMalformedDateToken, token)
	}
	return day, hour, minute, nil
}
