package bulletin

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"
)

// DecodedBulletin pairs the structured record with its rendered summary.
// This is the serialized form published to the sink topic and returned by the
// decode endpoint. Exactly one of Hazard/Pirep is set, matching Product.
type DecodedBulletin struct {
	ID        string        `json:"id"`
	Product   ProductKind   `json:"product"`
	Hazard    *HazardRecord `json:"hazard,omitempty"`
	Pirep     *PirepRecord  `json:"pirep,omitempty"`
	Summary   []string      `json:"summary"`
	DecodedAt time.Time     `json:"decoded_at"`
}

// Decode runs the decoder selected by product over raw bulletin text.
// Hazard bulletins never fail; a PIREP missing its header returns
// ErrMalformedPirep, and an unrecognized product is an error.
func Decode(product ProductKind, raw string) (DecodedBulletin, error) {
	out := DecodedBulletin{
		ID:        ContentID(product, raw),
		Product:   product,
		DecodedAt: clock.Now().UTC(),
	}

	switch product {
	case ProductPirep:
		rec, err := DecodePirep(raw)
		if err != nil {
			return DecodedBulletin{}, err
		}
		out.Pirep = &rec
		out.Summary = rec.Summary()
	case ProductAirmet, ProductSigmetDomestic, ProductSigmetConvective:
		rec := DecodeHazard(raw, product)
		out.Hazard = &rec
		out.Summary = rec.Summary()
	default:
		return DecodedBulletin{}, fmt.Errorf("decode: unknown product kind %q", product)
	}
	return out, nil
}

// ContentID produces a deterministic ID from the product and normalized
// bulletin text. Reprocessing the same bulletin yields the same ID, which
// keeps downstream consumers idempotent under replay.
func ContentID(product ProductKind, raw string) string {
	input := fmt.Sprintf("%s|%s", product, CleanText(raw))
	hash := sha256.Sum256([]byte(input))
	return string(product) + "-" + hex.EncodeToString(hash[:8])
}
