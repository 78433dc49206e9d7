// Command genmock generates a mock storm events CSV with the columns the
// loader consumes. The output mixes clean labels, case/whitespace variants,
// dataset misspellings, and unmappable noise rows, so it exercises the same
// normalization paths as the real dataset.
//
// Usage:
//
//	go run ./cmd/genmock -out data/mock/storm_events.csv -rows 5000 -seed 1
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"
)

// eventTypes mirrors the flavor of the real EVTYPE column: canonical labels,
// variants that normalize to the same category, and noise that maps to
// nothing.
var eventTypes = []string{
	"TORNADO",
	"TORNDAO",
	"WATERSPOUT",
	"TSTM WIND",
	"THUNDERSTORM WINDS",
	" Tstm Wind ",
	"FLASH FLOOD",
	"COASTAL FLOODING",
	"URBAN/SML STREAM FLD",
	"HAIL",
	"EXCESSIVE HEAT",
	"HEAT WAVE",
	"HEAVY SNOW",
	"BLIZZARD",
	"FREEZING RAIN",
	"EXTREME COLD/WIND CHILL",
	"HIGH WIND",
	"WND",
	"LIGHTNING",
	"WILD/FOREST FIRE",
	"RIP CURRENT",
	"DROUGHT",
	"APACHE COUNTY",
	"SUMMARY OF MARCH 24",
}

var magnitudes = []string{"", "K", "M", "B", "k", "m", "H", "0", "5", "+", "?"}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	out := flag.String("out", "", "output CSV path")
	rows := flag.Int("rows", 1000, "number of data rows to generate")
	seed := flag.Int64("seed", 1, "random seed, fixed for reproducible fixtures")
	flag.Parse()

	if *out == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out")
	}

	if err := os.MkdirAll(filepath.Dir(*out), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	f, err := os.Create(*out)
	if err != nil {
		return fmt.Errorf("create output file: %w", err)
	}
	defer f.Close() //nolint:errcheck // flushed and synced below

	rng := rand.New(rand.NewSource(*seed))
	w := csv.NewWriter(f)

	header := []string{
		"STATE__", "BGN_DATE", "BGN_TIME", "TIME_ZONE", "STATE", "EVTYPE",
		"FATALITIES", "INJURIES", "PROPDMG", "PROPDMGEXP", "CROPDMG", "CROPDMGEXP",
	}
	if err := w.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	for i := 0; i < *rows; i++ {
		if err := w.Write(mockRow(rng)); err != nil {
			return fmt.Errorf("write row %d: %w", i, err)
		}
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}

	log.Printf("wrote %d rows to %s", *rows, *out)
	return nil
}

func mockRow(rng *rand.Rand) []string {
	year := 1950 + rng.Intn(62)
	month := 1 + rng.Intn(12)
	day := 1 + rng.Intn(28)

	// A few percent of rows get an unparseable date so yearless handling
	// shows up in fixtures.
	bgnDate := fmt.Sprintf("%d/%d/%d 0:00:00", month, day, year)
	if rng.Intn(50) == 0 {
		bgnDate = "unknown"
	}

	return []string{
		strconv.Itoa(1 + rng.Intn(50)),
		bgnDate,
		fmt.Sprintf("%02d%02d", rng.Intn(24), rng.Intn(60)),
		"CST",
		"TX",
		eventTypes[rng.Intn(len(eventTypes))],
		strconv.Itoa(pick(rng, 0, 0, 0, 1, 2, 5)),
		strconv.Itoa(pick(rng, 0, 0, 0, 1, 3, 15)),
		fmt.Sprintf("%.1f", rng.Float64()*float64(pick(rng, 0, 1, 10, 100))),
		magnitudes[rng.Intn(len(magnitudes))],
		fmt.Sprintf("%.1f", rng.Float64()*float64(pick(rng, 0, 0, 1, 10))),
		magnitudes[rng.Intn(len(magnitudes))],
	}
}

func pick(rng *rand.Rand, choices ...int) int {
	return choices[rng.Intn(len(choices))]
}
