package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/franz/band-scout/internal/report"
	"github.com/franz/band-scout/internal/store"
	"github.com/franz/band-scout/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate a dataset summary report",
	Long: `Generate a Markdown summary of the loaded datasets.

The report includes:
- Row counts per dataset
- Referential integrity (orphaned theme rows, dangling edges)
- Country resolution coverage
- The most connected bands in the crowd similarity graph

The report is saved to artifacts/reports/<timestamp>/summary.md`,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().String("out", "", "Output directory for report (default: artifacts/reports/<timestamp>)")
	reportCmd.Flags().String("event-log", "", "Path to event log file (optional)")
}

func runReport(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	dbPath := viper.GetString("db")
	util.InfoLog("=== Generating Dataset Report ===")
	util.InfoLog("Database: %s", dbPath)

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	eventLogPath, _ := cmd.Flags().GetString("event-log")

	util.InfoLog("Analyzing data...")
	summary, err := report.GenerateSummaryReport(db, eventLogPath)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}
	summary.DatabasePath = dbPath

	outputDir, _ := cmd.Flags().GetString("out")
	if outputDir == "" {
		timestamp := time.Now().Format("20060102-150405")
		outputDir = filepath.Join("artifacts", "reports", timestamp)
	}
	outputPath := filepath.Join(outputDir, "summary.md")

	util.InfoLog("Writing report to: %s", outputPath)
	if err := report.WriteMarkdownReport(summary, outputPath); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	util.SuccessLog("Report generated successfully!")
	util.InfoLog("")
	util.InfoLog("Summary:")
	util.InfoLog("  Bands: %d", summary.Bands)
	util.InfoLog("  Themes: %d", summary.Themes)
	util.InfoLog("  Edges: %d", summary.Edges)
	util.InfoLog("  Countries: %d", summary.Countries)
	if summary.OrphanThemes > 0 {
		util.WarnLog("  Orphan themes: %d", summary.OrphanThemes)
	}
	if summary.DanglingEdges > 0 {
		util.WarnLog("  Dangling edges: %d", summary.DanglingEdges)
	}
	if n := len(summary.UnresolvedCountries); n > 0 {
		util.WarnLog("  Unresolved countries: %d", n)
	}

	return nil
}
