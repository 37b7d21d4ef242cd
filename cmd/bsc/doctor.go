package main

import (
	"fmt"

	"github.com/franz/band-scout/internal/geo"
	"github.com/franz/band-scout/internal/store"
	"github.com/franz/band-scout/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run diagnostic checks on the state database",
	Long: `Run diagnostic checks to ensure bsc can answer queries.

This command checks:
- Database accessibility and integrity
- Each dataset table is populated
- Theme rows referencing missing bands
- Similarity edges referencing missing bands
- Band countries that fail to resolve to coordinates

Unresolved countries are warnings (the geographic signal falls back to
zero for those bands); empty tables are errors.`,
	RunE: runDoctor,
}

func init() {
	rootCmd.AddCommand(doctorCmd)
}

type checkResult struct {
	name    string
	message string
	error   bool
	warning bool
}

func runDoctor(cmd *cobra.Command, args []string) error {
	util.InfoLog("=== BSC Doctor - State Diagnostics ===")
	util.InfoLog("")

	dbPath := viper.GetString("db")
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database %s: %w", dbPath, err)
	}
	defer db.Close()

	results := []checkResult{
		checkIntegrity(db),
		checkTableCounts(db),
		checkOrphanThemes(db),
		checkDanglingEdges(db),
		checkCountryResolution(db),
	}

	errors := 0
	warnings := 0
	for _, r := range results {
		switch {
		case r.error:
			util.ErrorLog("%-20s %s", r.name, r.message)
			errors++
		case r.warning:
			util.WarnLog("%-20s %s", r.name, r.message)
			warnings++
		default:
			util.SuccessLog("%-20s %s", r.name, r.message)
		}
	}

	util.InfoLog("")
	if errors > 0 {
		return fmt.Errorf("doctor found %d error(s) and %d warning(s)", errors, warnings)
	}
	if warnings > 0 {
		util.WarnLog("Doctor found %d warning(s)", warnings)
	} else {
		util.SuccessLog("All checks passed")
	}
	return nil
}

func checkIntegrity(db *store.Store) checkResult {
	if err := db.CheckIntegrity(); err != nil {
		return checkResult{name: "integrity", message: err.Error(), error: true}
	}
	return checkResult{name: "integrity", message: "database integrity ok"}
}

func checkTableCounts(db *store.Store) checkResult {
	counts := map[string]func() (int, error){
		"bands":     db.CountBands,
		"themes":    db.CountThemes,
		"edges":     db.CountEdges,
		"countries": db.CountCountries,
	}

	summary := ""
	for name, count := range counts {
		n, err := count()
		if err != nil {
			return checkResult{name: "tables", message: err.Error(), error: true}
		}
		if n == 0 {
			return checkResult{
				name:    "tables",
				message: fmt.Sprintf("table %s is empty - run 'bsc load'", name),
				error:   true,
			}
		}
		summary += fmt.Sprintf("%s=%d ", name, n)
	}

	return checkResult{name: "tables", message: summary}
}

func checkOrphanThemes(db *store.Store) checkResult {
	n, err := db.CountOrphanThemes()
	if err != nil {
		return checkResult{name: "themes", message: err.Error(), error: true}
	}
	if n > 0 {
		return checkResult{
			name:    "themes",
			message: fmt.Sprintf("%d theme rows reference bands not in the bands table", n),
			warning: true,
		}
	}
	return checkResult{name: "themes", message: "all theme rows reference known bands"}
}

func checkDanglingEdges(db *store.Store) checkResult {
	n, err := db.CountDanglingEdges()
	if err != nil {
		return checkResult{name: "edges", message: err.Error(), error: true}
	}
	if n > 0 {
		return checkResult{
			name:    "edges",
			message: fmt.Sprintf("%d edges reference bands not in the bands table", n),
			warning: true,
		}
	}
	return checkResult{name: "edges", message: "all edges reference known bands"}
}

func checkCountryResolution(db *store.Store) checkResult {
	countries, err := db.GetDistinctBandCountries()
	if err != nil {
		return checkResult{name: "countries", message: err.Error(), error: true}
	}

	coords, err := db.GetAllCountries()
	if err != nil {
		return checkResult{name: "countries", message: err.Error(), error: true}
	}

	var unresolved []string
	for _, c := range countries {
		std := geo.StandardizeCountryName(c)
		if std == "" {
			continue
		}
		if _, ok := coords[std]; !ok {
			unresolved = append(unresolved, c)
		}
	}

	if len(unresolved) > 0 {
		sample := unresolved
		if len(sample) > 5 {
			sample = sample[:5]
		}
		return checkResult{
			name:    "countries",
			message: fmt.Sprintf("%d band countries unresolvable (geo signal is 0 for them): %v", len(unresolved), sample),
			warning: true,
		}
	}

	return checkResult{name: "countries", message: fmt.Sprintf("all %d band countries resolve", len(countries))}
}
