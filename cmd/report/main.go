// Command report runs the analysis once and prints the ranked impact tables
// to stdout. It reads a local dataset file when -dataset is given, otherwise
// it downloads from -url.
//
// Usage:
//
//	go run ./cmd/report -dataset data/StormData.csv.bz2 -top 10
//	go run ./cmd/report -url https://example.com/StormData.csv.bz2 -trends
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"
	"time"

	"github.com/couchcryptid/storm-impact-report/internal/analysis"
	"github.com/couchcryptid/storm-impact-report/internal/loader"
	"github.com/couchcryptid/storm-impact-report/internal/report"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func run() error {
	dataset := flag.String("dataset", "", "path to a local storm events CSV (optionally .bz2)")
	url := flag.String("url", "", "dataset URL, used when -dataset is not given")
	top := flag.Int("top", 10, "number of categories in each ranked table")
	trends := flag.Bool("trends", false, "also print per-year trend rows")
	timeout := flag.Duration("timeout", 5*time.Minute, "download timeout")
	flag.Parse()

	if *dataset == "" && *url == "" {
		flag.Usage()
		return fmt.Errorf("one of -dataset or -url is required")
	}
	if *top <= 0 {
		return fmt.Errorf("-top must be positive")
	}

	// The CLI only surfaces loader warnings; tables go to stdout.
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	var recordLoader report.RecordLoader
	if *dataset != "" {
		recordLoader = loader.NewFileLoader(*dataset, logger)
	} else {
		recordLoader = loader.NewHTTPLoader(*url, *timeout, logger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ds, err := recordLoader.LoadRecords(ctx)
	if err != nil {
		return err
	}

	r := report.Build(ds, *top)

	fmt.Printf("storm impact report, generated %s\n", r.GeneratedAt.Format(time.RFC3339))
	fmt.Printf("records: %d  skipped rows: %d  unmapped labels: %d  yearless: %d\n\n",
		r.RecordCount, r.SkippedRows, r.UnmappedLabels, r.YearlessRecords)

	printCategoryTable("Top categories by health impact", r.TopHealthImpact)
	printCategoryTable("Top categories by economic impact", r.TopEconomicImpact)

	if *trends {
		printTrendTable("Health impact by year", r.HealthTrends)
		printTrendTable("Economic impact by year", r.EconomicTrends)
	}
	return nil
}

func printCategoryTable(title string, rows []analysis.CategoryTotals) {
	fmt.Println(title)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "#\tCATEGORY\tFATALITIES\tINJURIES\tHEALTH\tDAMAGE ($B)")
	for i, row := range rows {
		fmt.Fprintf(w, "%d\t%s\t%d\t%d\t%d\t%.3f\n",
			i+1, row.Category, row.Fatalities, row.Injuries, row.HealthImpact, row.EconomicImpactBillions)
	}
	w.Flush() //nolint:errcheck // stdout
	fmt.Println()
}

func printTrendTable(title string, rows []analysis.YearlyTotals) {
	fmt.Println(title)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "CATEGORY\tYEAR\tHEALTH\tDAMAGE ($B)")
	for _, row := range rows {
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3f\n",
			row.Category, row.Year, row.HealthImpact, row.EconomicImpactBillions)
	}
	w.Flush() //nolint:errcheck // stdout
	fmt.Println()
}
