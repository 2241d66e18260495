package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"

	"salespulse/internal/analytics"
	"salespulse/internal/basket"
	"salespulse/internal/config"
	"salespulse/internal/exporter"
	"salespulse/internal/forecast"
	"salespulse/internal/infrastructure"
	"salespulse/internal/ingest"
	"salespulse/internal/mining"
	"salespulse/pkg/contracts/domain"
)

func main() {
	inFile := flag.String("in", "", "input spreadsheet (.xlsx or .csv)")
	outDir := flag.String("out", "", "output directory for reports (defaults to configured output dir)")
	includeNonSales := flag.Bool("include-non-sales", false, "count gift and donation rows in quantity figures")
	minSupport := flag.Float64("min-support", 0, "minimum basket support for association pairs (defaults to configured value)")
	topProducts := flag.Int("top", 0, "number of growing products to report (defaults to configured value)")
	format := flag.String("format", "both", "output format: csv, json or both")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}

	// Flags override the configured values.
	if *inFile == "" {
		*inFile = cfg.Paths.InputFile
	}
	if *outDir == "" {
		*outDir = cfg.Paths.OutputDir
	}
	if *minSupport == 0 {
		*minSupport = cfg.Pipeline.MinSupport
	}
	if *topProducts == 0 {
		*topProducts = cfg.Pipeline.TopProducts
	}
	withNonSales := *includeNonSales || cfg.Pipeline.IncludeNonSales

	if *inFile == "" {
		logger.Error("No input file given; pass -in or set SALESPULSE_PATHS_INPUT_FILE")
		os.Exit(1)
	}

	exportFormat := exporter.Format(*format)
	if !exportFormat.IsValid() {
		logger.Error("Invalid output format", slog.String("format", *format))
		os.Exit(1)
	}

	ctx := context.Background()

	logger.Info("Starting sales analysis",
		slog.String("input_file", *inFile),
		slog.String("output_dir", *outDir),
		slog.Bool("include_non_sales", withNonSales),
		slog.Float64("min_support", *minSupport))

	rows, err := ingest.ReadFile(ctx, *inFile)
	if err != nil {
		logger.Error("Failed to read input file",
			slog.String("path", *inFile),
			slog.String("error", err.Error()))
		os.Exit(1)
	}
	logger.Info("Rows read from file", slog.Int("row_count", len(rows)))

	ingestor := ingest.NewIngestor(logger)
	records, quality := ingestor.Normalize(ctx, rows)

	logger.Info("Ingestion complete",
		slog.String("run_id", quality.RunID),
		slog.Int("total_rows", quality.TotalRows),
		slog.Int("valid_rows", quality.ValidRows),
		slog.Float64("percent_valid", quality.PercentValid))

	report := exporter.Report{
		RunID:   quality.RunID,
		Records: records,
		Quality: *quality,
	}

	// The analysis stages are pure functions over the same immutable record
	// slice, so they can run concurrently.
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		report.Overview = analytics.Overview(records, withNonSales)
		report.Products = analytics.RankProducts(records, withNonSales)
		report.Cycles = analytics.CycleRollup(records, withNonSales)
		report.Clients = analytics.BuildClientMetrics(records, withNonSales)
		return nil
	})
	g.Go(func() error {
		report.Baskets = basket.Build(records, withNonSales)
		report.Pairs = mining.Mine(report.Baskets, *minSupport)
		return nil
	})
	g.Go(func() error {
		report.Predictions = forecast.Predict(records, withNonSales)
		return nil
	})
	if err := g.Wait(); err != nil {
		logger.Error("Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	reports := exporter.NewReportExporter(*outDir)
	if err := reports.ExportAll(report, exportFormat); err != nil {
		logger.Error("Failed to write reports", slog.String("error", err.Error()))
		os.Exit(1)
	}

	growing := forecast.GrowingProducts(report.Predictions, *topProducts)

	logger.Info("Analysis complete",
		slog.Int("records", len(records)),
		slog.Float64("percent_valid", quality.PercentValid),
		slog.Int("customers", report.Overview.DistinctCustomers),
		slog.Float64("revenue", report.Overview.TotalRevenue),
		slog.Int("baskets", len(report.Baskets)),
		slog.Int("association_pairs", len(report.Pairs)),
		slog.Int("predictions", len(report.Predictions)),
		slog.Int("growing_products", len(growing)))

	printSummary(report, growing)
}

// printSummary writes a short plain-text digest to stdout for interactive runs
func printSummary(report exporter.Report, growing []domain.Prediction) {
	fmt.Printf("Rows ingested:    %d (%.1f%% valid)\n", report.Quality.TotalRows, report.Quality.PercentValid)
	fmt.Printf("Customers:        %d\n", report.Overview.DistinctCustomers)
	fmt.Printf("Revenue:          %.2f\n", report.Overview.TotalRevenue)
	fmt.Printf("Products ranked:  %d\n", len(report.Products))
	fmt.Printf("Baskets:          %d (%d association pairs)\n", len(report.Baskets), len(report.Pairs))
	fmt.Printf("Forecasts:        %d\n", len(report.Predictions))

	if len(growing) > 0 {
		fmt.Println("Growing products:")
		for _, p := range growing {
			fmt.Printf("  %s  %-40s forecast %d (%s)\n", p.SKU, p.ProductName, p.NextCycleForecast, p.Confidence)
		}
	}
}
