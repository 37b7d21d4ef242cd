package main

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/franz/band-scout/internal/catalog"
	"github.com/franz/band-scout/internal/crowd"
	"github.com/franz/band-scout/internal/genre"
	"github.com/franz/band-scout/internal/geo"
	"github.com/franz/band-scout/internal/store"
	"github.com/franz/band-scout/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var showCmd = &cobra.Command{
	Use:   "show <band-id>",
	Short: "Show one band's stored record",
	Long: `Display everything the pipeline knows about one band:
the stored row, processed genre tags, normalized theme text, country
resolution, and incident crowd similarity scores.

Use this to understand why a band did (or did not) appear in a
recommendation.`,
	Args: cobra.ExactArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

// lookupBand fetches one band row, distinguishing a missing id from a
// database failure
func lookupBand(db *store.Store, bandID int64) (*store.Band, error) {
	band, err := db.GetBand(bandID)
	if err != nil {
		return nil, fmt.Errorf("failed to get band: %w", err)
	}
	if band == nil {
		return nil, fmt.Errorf("band %d (run 'bsc load' first or check the id): %w", bandID, util.ErrUnknownBand)
	}
	return band, nil
}

func runShow(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	bandID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("band id must be an integer: %w", err)
	}

	db, err := store.Open(viper.GetString("db"))
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	band, err := lookupBand(db, bandID)
	if err != nil {
		return err
	}

	fmt.Printf("Band %d: %s\n", band.ID, band.Name)
	fmt.Printf("  Country:       %s", band.Country)
	std := geo.StandardizeCountryName(band.Country)
	if std != "" && std != strings.ToLower(band.Country) {
		fmt.Printf(" (standardized: %s)", std)
	}
	fmt.Println()

	fmt.Printf("  Genre:         %s\n", band.Genre)
	fmt.Printf("  Genre tags:    %s\n", strings.Join(genre.Tags(band.Genre), " | "))

	theme, err := db.GetTheme(bandID)
	if err != nil {
		return fmt.Errorf("failed to get themes: %w", err)
	}
	if theme == nil {
		fmt.Println("  Themes:        (none - excluded from candidacy)")
	} else {
		fmt.Printf("  Themes:        %s\n", catalog.NormalizeThemes(theme.Themes))
	}

	edges, err := db.GetEdgesForBand(bandID)
	if err != nil {
		return fmt.Errorf("failed to get edges: %w", err)
	}

	if len(edges) == 0 {
		fmt.Println("  Crowd scores:  (none)")
		return nil
	}

	flat := make([]store.Edge, 0, len(edges))
	for _, e := range edges {
		flat = append(flat, *e)
	}
	aggregated := crowd.Aggregate(flat, bandID)

	type crowdRow struct {
		id    int64
		score float64
	}
	rows := make([]crowdRow, 0, len(aggregated))
	for id, score := range aggregated {
		rows = append(rows, crowdRow{id: id, score: score})
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].score != rows[j].score {
			return rows[i].score > rows[j].score
		}
		return rows[i].id < rows[j].id
	})

	fmt.Printf("  Crowd scores:  %d edges, %d counterparts\n", len(edges), len(aggregated))
	for _, row := range rows {
		counterpart, err := db.GetBand(row.id)
		name := "(unknown)"
		if err == nil && counterpart != nil {
			name = counterpart.Name
		}
		fmt.Printf("    %-8d %-40s %.2f\n", row.id, name, row.score)
	}

	return nil
}
