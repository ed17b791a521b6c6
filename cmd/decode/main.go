// Command decode runs the bulletin decoder over a single bulletin and prints
// its human-readable summary, without touching Kafka. Text comes from the
// positional argument or, when absent, from stdin.
//
// Usage:
//
//	go run ./cmd/decode -product pirep "UIN UA /OV UIN134015/TM 1505/FL085/TP C182"
//	cat bulletin.txt | go run ./cmd/decode -product sigc
//	go run ./cmd/decode -product airmet -json "..."
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/couchcryptid/aviation-hazard-etl/internal/bulletin"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "decode: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	product := flag.String("product", "", "bulletin product: airmet, sigmet, sigc, or pirep")
	asJSON := flag.Bool("json", false, "print the full decoded record as JSON instead of the summary")
	flag.Parse()

	if *product == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -product")
	}

	kind, err := bulletin.ParseProductKind(*product)
	if err != nil {
		return err
	}

	text, err := readText()
	if err != nil {
		return err
	}
	if strings.TrimSpace(text) == "" {
		return fmt.Errorf("empty bulletin text")
	}

	decoded, err := bulletin.Decode(kind, text)
	if err != nil {
		return err
	}

	if *asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(decoded)
	}

	for _, line := range decoded.Summary {
		fmt.Println(line)
	}
	return nil
}

func readText() (string, error) {
	if flag.NArg() > 0 {
		return strings.Join(flag.Args(), " "), nil
	}
	data, err := io.ReadAll(os.Stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	return string(data), nil
}
