package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/franz/band-scout/internal/catalog"
	"github.com/franz/band-scout/internal/geo"
	"github.com/franz/band-scout/internal/recommend"
	"github.com/franz/band-scout/internal/store"
	"github.com/franz/band-scout/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var recommendCmd = &cobra.Command{
	Use:   "recommend <band-id>",
	Short: "Rank bands similar to the given band",
	Long: `Compute the ranked similar-band list for a band.

Four signals are min-max normalized across the candidate set and
combined with the given weights:
  genre text similarity    (--genre-weight)
  lyrical theme similarity (--lyrical-weight)
  crowd similarity scores  (--similar-weight)
  geographic proximity     (--country-weight)

Weights do not have to sum to 1; a larger weight simply pulls the
ranking toward that signal.`,
	Args: cobra.ExactArgs(1),
	RunE: runRecommend,
}

func init() {
	rootCmd.AddCommand(recommendCmd)

	recommendCmd.Flags().Float64("genre-weight", 0.333, "weight of the genre text similarity signal")
	recommendCmd.Flags().Float64("lyrical-weight", 0.333, "weight of the lyrical theme similarity signal")
	recommendCmd.Flags().Float64("similar-weight", 0.333, "weight of the crowd similarity signal")
	recommendCmd.Flags().Float64("country-weight", 0.1, "weight of the geographic proximity signal")
	recommendCmd.Flags().Int("top", recommend.DefaultTopK, "number of recommendations to return")
	recommendCmd.Flags().Bool("json", false, "emit the ranked table as JSON")

	viper.BindPFlag("genre-weight", recommendCmd.Flags().Lookup("genre-weight"))
	viper.BindPFlag("lyrical-weight", recommendCmd.Flags().Lookup("lyrical-weight"))
	viper.BindPFlag("similar-weight", recommendCmd.Flags().Lookup("similar-weight"))
	viper.BindPFlag("country-weight", recommendCmd.Flags().Lookup("country-weight"))
	viper.BindPFlag("top", recommendCmd.Flags().Lookup("top"))
}

func runRecommend(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	bandID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return fmt.Errorf("band id must be an integer: %w", err)
	}

	weights := recommend.Weights{
		Genre:   viper.GetFloat64("genre-weight"),
		Lyrical: viper.GetFloat64("lyrical-weight"),
		Similar: viper.GetFloat64("similar-weight"),
		Country: viper.GetFloat64("country-weight"),
	}
	if err := weights.Validate(); err != nil {
		return err
	}

	dbPath := viper.GetString("db")
	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	cat, err := catalog.Load(db)
	if err != nil {
		return fmt.Errorf("failed to build catalog: %w", err)
	}
	if cat.Len() == 0 {
		util.WarnLog("Catalog is empty. Run 'bsc load' first.")
		return nil
	}

	logger := newEventLogger()
	defer logger.Close()

	recommender := recommend.New(&recommend.Config{
		Catalog: cat,
		Geo:     geo.NewProvider(cat.Coords()),
		Logger:  logger,
		TopK:    GetConfigInt("top", recommend.DefaultTopK),
	})

	result, err := recommender.Recommend(context.Background(), bandID, weights)
	if err != nil {
		return fmt.Errorf("recommendation failed: %w", err)
	}

	asJSON, _ := cmd.Flags().GetBool("json")
	if asJSON {
		return printResultJSON(result)
	}

	printResultTable(result)
	return nil
}

func printResultJSON(result *recommend.Result) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

func printResultTable(result *recommend.Result) {
	if len(result.Recommendations) == 0 {
		if result.Reason != "" {
			fmt.Printf("No recommendations: %s\n", result.Reason)
		} else {
			fmt.Println("No recommendations.")
		}
		return
	}

	fmt.Printf("Bands similar to %s (from %d candidates):\n\n", result.TargetName, result.Candidates)
	fmt.Printf("%-5s %-8s %-40s %s\n", "Rank", "ID", "Band", "Score")
	for i, rec := range result.Recommendations {
		fmt.Printf("%-5d %-8d %-40s %.4f\n", i+1, rec.BandID, rec.Name, rec.TotalScore)
	}
}
