package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"riskbook/adapters/export"
	"riskbook/adapters/hypotest"
	"riskbook/adapters/ingest"
	"riskbook/adapters/ml"
	"riskbook/adapters/postgres"
	"riskbook/adapters/postgres/migrations"
	"riskbook/app"
	"riskbook/internal"
	"riskbook/internal/analysis"
	"riskbook/internal/config"
	"riskbook/internal/report"
	"riskbook/ports"

	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"
)

func main() {
	_ = godotenv.Load()

	rootCmd := &cobra.Command{
		Use:   "riskbook",
		Short: "Insurance risk analytics over a historical claims book",
	}

	rootCmd.AddCommand(
		newQualityCmd(),
		newEDACmd(),
		newHypothesesCmd(),
		newModelCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadBook(ctx context.Context, cfg *config.Config, path string) (*ports.LoadResult, string, error) {
	if path == "" {
		path = cfg.Data.FilePath
	}
	loader := ingest.NewLoader(cfg.Data.Delimiter, internal.DefaultLogger)
	loaded, err := loader.Load(ctx, path)
	return loaded, path, err
}

func newQualityCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "quality",
		Short: "Assess data quality: missingness and descriptive statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			loaded, path, err := loadBook(cmd.Context(), cfg, file)
			if err != nil {
				return err
			}

			eda := app.NewEDAService(nil, internal.DefaultLogger)
			result, err := eda.Analyze(path, loaded, nil)
			if err != nil {
				return err
			}
			return printJSON(result.Profile)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "source file (defaults to DATA_FILE)")
	return cmd
}

func newEDACmd() *cobra.Command {
	var file string
	var exportDir string
	var workbook bool

	cmd := &cobra.Command{
		Use:   "eda",
		Short: "Compute loss ratios by dimension and export summary tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			loaded, path, err := loadBook(cmd.Context(), cfg, file)
			if err != nil {
				return err
			}

			eda := app.NewEDAService(nil, internal.DefaultLogger)
			result, err := eda.Analyze(path, loaded, cfg.Analysis.Dimensions)
			if err != nil {
				return err
			}

			builder := report.NewBuilder()
			fmt.Println(builder.BuildMarkdown(&report.Input{
				SourceFile: path,
				Overall:    result.Overall,
				Tables:     result.Tables,
				Profile:    result.Profile,
				TopN:       15,
			}))

			if exportDir == "" {
				exportDir = cfg.Data.ExportDir
			}
			if err := eda.ExportCSV(exportDir, result); err != nil {
				return err
			}
			if workbook {
				return eda.ExportWorkbook(filepath.Join(exportDir, "riskbook.xlsx"), result)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "source file (defaults to DATA_FILE)")
	cmd.Flags().StringVar(&exportDir, "out", "", "export directory (defaults to EXPORT_DIR)")
	cmd.Flags().BoolVar(&workbook, "xlsx", false, "also export an xlsx workbook")
	return cmd
}

func newHypothesesCmd() *cobra.Command {
	var file string
	var persist bool

	cmd := &cobra.Command{
		Use:   "hypotheses",
		Short: "Run the frequency/severity/margin test battery across dimensions",
		Long: `Run the statistical test battery over the book.

Claim frequency differences use a chi-square test of independence; severity
and margin comparisons use rank-based tests. Results state the significance
threshold and a plain-language conclusion. Groups below the minimum sample
count are skipped and reported as such.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			loaded, path, err := loadBook(cmd.Context(), cfg, file)
			if err != nil {
				return err
			}

			runner := hypotest.NewRunner(cfg.Analysis.Alpha, cfg.Analysis.MinGroupSize)
			sweep := analysis.NewSweep(runner, cfg.Analysis.TopPostalCodes, internal.DefaultLogger)

			var runs ports.RunRepository
			var results ports.ResultRepository
			var aggregates ports.AggregateRepository
			if persist {
				if !cfg.Database.Enabled {
					return fmt.Errorf("--persist requires DATABASE_URL")
				}
				db, err := sqlx.Connect("postgres", cfg.Database.URL)
				if err != nil {
					return fmt.Errorf("database connection failed: %w", err)
				}
				defer db.Close()
				if err := migrations.Apply(db); err != nil {
					return err
				}
				runs = postgres.NewRunRepository(db)
				results = postgres.NewResultRepository(db)
				aggregates = postgres.NewAggregateRepository(db)
			}

			service := app.NewHypothesisService(sweep, runs, results, aggregates, internal.DefaultLogger)
			result, runID, err := service.RunSweep(cmd.Context(), path, loaded, cfg.Analysis.Dimensions)
			if err != nil {
				return err
			}

			fmt.Printf("run %s: %d results, %d skipped\n\n", runID, len(result.Results), len(result.Skipped))
			for _, r := range result.Results {
				fmt.Println(r.Conclusion)
			}
			for _, s := range result.Skipped {
				fmt.Printf("skipped %s/%s: %s\n", s.Dimension, s.Metric, s.Reason)
			}

			exporter := export.NewCSVExporter()
			out := filepath.Join(cfg.Data.ExportDir, "test_results.csv")
			if err := exporter.ExportResults(out, result.Results); err != nil {
				return err
			}
			fmt.Printf("\nwrote %s\n", out)
			return nil
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "source file (defaults to DATA_FILE)")
	cmd.Flags().BoolVar(&persist, "persist", false, "store the run in Postgres")
	return cmd
}

func newModelCmd() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "model",
		Short: "Fit baseline claim models and report held-out metrics",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			loaded, _, err := loadBook(cmd.Context(), cfg, file)
			if err != nil {
				return err
			}

			trainer := ml.NewTrainer(cfg.Model.TestFraction, cfg.Model.Seed,
				cfg.Model.LogisticIters, cfg.Model.LearningRate)
			service := app.NewModelService(trainer, internal.DefaultLogger)

			modelReport, err := service.TrainBaselines(cmd.Context(), loaded.Records)
			if err != nil {
				return err
			}
			return printJSON(modelReport)
		},
	}
	cmd.Flags().StringVar(&file, "file", "", "source file (defaults to DATA_FILE)")
	return cmd
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
