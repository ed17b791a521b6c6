// Command genmock runs the decoder over a built-in set of sample bulletins
// and writes the decoded output as a JSON fixture. It uses the actual
// bulletin package with a fixed clock so fixture IDs and timestamps are
// reproducible across runs.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/decoded_bulletins.json
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/aviation-hazard-etl/internal/bulletin"
)

type sample struct {
	product bulletin.ProductKind
	text    string
}

// samples covers every product family plus the edge cases the decoder is
// expected to shrug off (missing VALID group, unknown codes).
var samples = []sample{
	{bulletin.ProductAirmet, "WAUS43 KKCI 121445 CHIT WA 121445 AIRMET TANGO FOR TURB VALID UNTIL 122100. BOS FIR. AREA OF MOD TURB BLW FL180, VALID 121445/122100"},
	{bulletin.ProductAirmet, "WAUS46 KKCI 120845 SFOS WA 120845 AIRMET SIERRA FOR IFR AND MTN OBSCN VALID 120845/121500. SFO FIR. AREA OF IFR CIG BLW 010"},
	{bulletin.ProductAirmet, "WAUS44 KKCI 120245 DFWZ WA AIRMET ZULU FOR ICE VALID UNTIL 120900"},
	{bulletin.ProductSigmetDomestic, "WSUS31 KKCI 121200 SIGE KZNY-NEW YORK FIR VALID 121200/121600 OCNL SEV TURB BLW FL240 MOV NE 25 KT"},
	{bulletin.ProductSigmetDomestic, "WSUS33 KKCI 121800 SIGW KZOA- OAKLAND FIR VALID 121800/122200 SEV ICING 38N122W 37N121W TOP 240 FL"},
	{bulletin.ProductSigmetConvective, "WSUS32 KKCI 122055 SIGC CONVECTIVE SIGMET 44C VALID 122055/122255 LINE OF THUNDERSTORMS AT LEAST 70 MILES LONG WITH THUNDERSTORMS AFFECTING 50% OF ITS LENGTH TS MOV NE 30 KT TOP 450 FL"},
	{bulletin.ProductSigmetConvective, "WSUS32 KKCI 121655 SIGC CONVECTIVE SIGMET 21C VALID 121655/121855 AREA OF THUNDERSTORMS COVERING AT LEAST 45% OF THE AREA. HAIL GREATER THAN OR EQUAL TO 3/4 INCH MOV E 20 KT"},
	{bulletin.ProductPirep, "UIN UA /OV UIN134015/TM 1505/FL085/TP C182/TB LGT-MOD 270-290/SK OVC017-TOP020/TA 05/RM ZKC"},
	{bulletin.ProductPirep, "DEN UUA /OV DEN270045/TM 2212/FL350/TP B738/TB SEV/IC MOD RIME/RM LLWS"},
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output path for the decoded bulletin JSON fixture")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	// Fixed clock for reproducible IDs and DecodedAt timestamps. The date
	// anchors the DDHHMM resolver so validity windows stay stable too.
	bulletin.SetClock(clockwork.NewFakeClockAt(
		time.Date(2025, time.June, 12, 21, 0, 0, 0, time.UTC),
	))
	defer bulletin.SetClock(nil)

	decoded := make([]bulletin.DecodedBulletin, 0, len(samples))
	counts := map[bulletin.ProductKind]int{}
	for _, s := range samples {
		d, err := bulletin.Decode(s.product, s.text)
		if err != nil {
			return fmt.Errorf("decoding %s sample: %w", s.product, err)
		}
		decoded = append(decoded, d)
		counts[s.product]++
	}

	if err := writeJSON(*out, decoded); err != nil {
		return fmt.Errorf("writing fixture: %w", err)
	}

	log.Printf("wrote %d decoded bulletins to %s", len(decoded), *out)
	log.Printf("by product: airmet=%d, sigmet=%d, sigc=%d, pirep=%d",
		counts[bulletin.ProductAirmet], counts[bulletin.ProductSigmetDomestic],
		counts[bulletin.ProductSigmetConvective], counts[bulletin.ProductPirep])
	return nil
}

func writeJSON(path string, v any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	return os.WriteFile(path, data, 0o600)
}
