package bulletin

import (
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fixDecodeClock pins the wall clock for validity resolution and restores it
// when the test finishes.
func fixDecodeClock(t *testing.T, at time.Time) {
	t.Helper()
	SetClock(clockwork.NewFakeClockAt(at))
	t.Cleanup(func() { SetClock(nil) })
}

func TestDecodeHazardAirmet(t *testing.T) {
	fixDecodeClock(t, time.Date(2025, 6, 12, 21, 0, 0, 0, time.UTC))

	t.Run("tango with FIR and area", func(t *testing.T) {
		raw := "CHIT WA 121445 AIRMET TANGO FOR TURB. BOS FIR. AREA OF MOD TURB BLW FL180 VALID 121445/122100="
		rec := DecodeHazard(raw, ProductAirmet)

		require.NotNil(t, rec.AirmetType)
		assert.Equal(t, AirmetTango, *rec.AirmetType)

		require.NotNil(t, rec.Validity)
		assert.Equal(t, time.Date(2025, 6, 12, 14, 45, 0, 0, time.UTC), rec.Validity.Start)
		assert.Equal(t, time.Date(2025, 6, 12, 21, 0, 0, 0, time.UTC), rec.Validity.End)

		require.NotNil(t, rec.FIR)
		assert.Equal(t, "BOS FIR", *rec.FIR)

		require.NotNil(t, rec.Area)
		assert.Equal(t, "AREA OF MOD TURB BLW FL180", *rec.Area)

		require.NotEmpty(t, rec.WeatherDesc)
		assert.Equal(t, "FOR TURB", rec.WeatherDesc[0])
		assert.Empty(t, rec.Notes)
	})

	t.Run("missing validity token leaves window absent", func(t *testing.T) {
		rec := DecodeHazard("AIRMET SIERRA FOR IFR AND MTN OBSCN", ProductAirmet)

		assert.Nil(t, rec.Validity)
		require.NotNil(t, rec.AirmetType)
		assert.Equal(t, AirmetSierra, *rec.AirmetType)
		assert.Empty(t, rec.Notes)
	})

	t.Run("malformed validity is downgraded to a note", func(t *testing.T) {
		rec := DecodeHazard("AIRMET ZULU FOR ICE VALID 991445/122100", ProductAirmet)

		assert.Nil(t, rec.Validity)
		require.Len(t, rec.Notes, 1)
		assert.Contains(t, rec.Notes[0], "validity dropped")
	})

	t.Run("no series keyword", func(t *testing.T) {
		rec := DecodeHazard("AIRMET FOR TURB VALID 121445/122100", ProductAirmet)

		assert.Nil(t, rec.AirmetType)
		assert.Empty(t, rec.WeatherDesc)
		require.NotNil(t, rec.Validity)
	})
}

func TestDecodeHazardSigmet(t *testing.T) {
	fixDecodeClock(t, time.Date(2025, 6, 12, 21, 0, 0, 0, time.UTC))

	t.Run("turbulence with polygon and movement", func(t *testing.T) {
		raw := "SIGE KZNY- NEW YORK FIR VALID 121200/121600 OCNL SEV TURB BLW FL240 38N074W 37N073W MOV NE 25 KT"
		rec := DecodeHazard(raw, ProductSigmetDomestic)

		require.NotNil(t, rec.FIR)
		assert.Equal(t, "NEW YORK FIR", *rec.FIR)

		require.Len(t, rec.Polygon, 2)
		assert.Equal(t, "38N074W", rec.Polygon[0].Raw)
		assert.Equal(t, 38.0, rec.Polygon[0].Lat)
		assert.Equal(t, -74.0, rec.Polygon[0].Lon)

		require.NotNil(t, rec.Turbulence)
		assert.Equal(t, "Severe", *rec.Turbulence)
		assert.Nil(t, rec.Icing)

		require.NotNil(t, rec.BaseFL)
		assert.Equal(t, 240, *rec.BaseFL)

		require.NotNil(t, rec.Movement)
		assert.Equal(t, "NE", rec.Movement.Direction)
		assert.Equal(t, 25, rec.Movement.SpeedKt)
	})

	t.Run("unqualified icing reports as Reported", func(t *testing.T) {
		rec := DecodeHazard("KZOA- OAKLAND FIR VALID 121800/122200 ICING TOP 240 FL", ProductSigmetDomestic)

		require.NotNil(t, rec.Icing)
		assert.Equal(t, "Reported", *rec.Icing)
		require.NotNil(t, rec.TopFL)
		assert.Equal(t, 240, *rec.TopFL)
	})

	t.Run("volcanic ash and dust storm flags", func(t *testing.T) {
		rec := DecodeHazard("KZAK FIR VOLCANIC ASH CLOUD AND DUST STORM OBS", ProductSigmetDomestic)

		assert.True(t, rec.VolcanicAsh)
		assert.True(t, rec.DustSandStorm)
	})

	t.Run("thunderstorm clause", func(t *testing.T) {
		rec := DecodeHazard("KZHU- HOUSTON OCEANIC FIR TS SE MOV NE 30 KT TOP 450 FL", ProductSigmetDomestic)

		require.NotNil(t, rec.Thunderstorms)
		assert.Equal(t, "SE", rec.Thunderstorms.Direction)
		assert.Equal(t, "NE", rec.Thunderstorms.Movement)
		assert.Equal(t, 30, rec.Thunderstorms.SpeedKt)
		assert.Equal(t, 450, rec.Thunderstorms.TopFL)
	})

	t.Run("uses invalid-day rollover, not look-back", func(t *testing.T) {
		// Day 5 is 20 days before the June 25 clock. A SIGMET keeps it in
		// June; only a nonexistent day rolls.
		SetClock(clockwork.NewFakeClockAt(time.Date(2025, 6, 25, 12, 0, 0, 0, time.UTC)))
		defer SetClock(nil)

		rec := DecodeHazard("KZNY- NEW YORK FIR VALID 051200/051800 SEV TURB", ProductSigmetDomestic)

		require.NotNil(t, rec.Validity)
		assert.Equal(t, time.Date(2025, 6, 5, 12, 0, 0, 0, time.UTC), rec.Validity.Start)
	})
}

func TestDecodeHazardConvective(t *testing.T) {
	fixDecodeClock(t, time.Date(2025, 6, 12, 21, 0, 0, 0, time.UTC))

	raw := "SIGC CONVECTIVE SIGMET 44C VALID 122055/122255 LINE OF THUNDERSTORMS AT LEAST 70 MILES LONG WITH THUNDERSTORMS AFFECTING 50% OF ITS LENGTH MOV NE 30 KT"
	rec := DecodeHazard(raw, ProductSigmetConvective)

	require.NotNil(t, rec.Validity)
	assert.Equal(t, time.Date(2025, 6, 12, 20, 55, 0, 0, time.UTC), rec.Validity.Start)
	assert.Equal(t, time.Date(2025, 6, 12, 22, 55, 0, 0, time.UTC), rec.Validity.End)

	require.NotNil(t, rec.Convective)
	assert.True(t, rec.Convective.LineOfThunderstorms)

	require.NotNil(t, rec.Movement)
	assert.Equal(t, "NE", rec.Movement.Direction)
}
