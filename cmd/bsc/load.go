package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/franz/band-scout/internal/ingest"
	"github.com/franz/band-scout/internal/report"
	"github.com/franz/band-scout/internal/store"
	"github.com/franz/band-scout/internal/util"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var loadCmd = &cobra.Command{
	Use:   "load",
	Short: "Load the band datasets into the state database",
	Long: `Load the four CSV datasets (bands, lyrical themes, crowd similarity
scores, country coordinates) into the local SQLite state database.

Each run replaces the previous contents atomically, so a partially
failed load never leaves mixed generations behind. With --watch the
command keeps running and reloads whenever a dataset file changes.`,
	RunE: runLoad,
}

func init() {
	rootCmd.AddCommand(loadCmd)

	loadCmd.Flags().String("bands", "", "bands CSV file (or set bands in config / BSC_BANDS)")
	loadCmd.Flags().String("lyrics", "", "lyrical themes CSV file")
	loadCmd.Flags().String("similar", "", "crowd similarity scores CSV file")
	loadCmd.Flags().String("countries", "", "country coordinates CSV file")
	loadCmd.Flags().Bool("watch", false, "keep running and reload on dataset changes")

	viper.BindPFlag("bands", loadCmd.Flags().Lookup("bands"))
	viper.BindPFlag("lyrics", loadCmd.Flags().Lookup("lyrics"))
	viper.BindPFlag("similar", loadCmd.Flags().Lookup("similar"))
	viper.BindPFlag("countries", loadCmd.Flags().Lookup("countries"))
}

func runLoad(cmd *cobra.Command, args []string) error {
	util.SetVerbose(viper.GetBool("verbose"))
	util.SetQuiet(viper.GetBool("quiet"))

	paths := ingest.Paths{
		Bands:     viper.GetString("bands"),
		Lyrics:    viper.GetString("lyrics"),
		Edges:     viper.GetString("similar"),
		Countries: viper.GetString("countries"),
	}
	if err := validateDatasetPaths(paths); err != nil {
		return err
	}

	dbPath := viper.GetString("db")
	util.InfoLog("Opening database: %s", dbPath)

	db, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	logger := newEventLogger()
	defer logger.Close()

	loader := ingest.New(&ingest.Config{
		Store:        db,
		Logger:       logger,
		ShowProgress: !viper.GetBool("quiet"),
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if _, err := loader.LoadAll(ctx, paths); err != nil {
		return fmt.Errorf("load failed: %w", err)
	}

	watch, _ := cmd.Flags().GetBool("watch")
	if !watch {
		return nil
	}

	err = loader.Watch(ctx, paths, func(result *ingest.Result) {
		logger.LogRefresh(result.Bands, result.Edges)
	})
	if errors.Is(err, context.Canceled) {
		util.InfoLog("Watch stopped")
		return nil
	}
	return err
}

// validateDatasetPaths checks that all four dataset paths are configured
// and point at readable files
func validateDatasetPaths(paths ingest.Paths) error {
	for name, p := range map[string]string{
		"bands": paths.Bands, "lyrics": paths.Lyrics,
		"similar": paths.Edges, "countries": paths.Countries,
	} {
		if p == "" {
			return fmt.Errorf("%s dataset is required (use --%s or set in config): %w", name, name, util.ErrInvalidConfig)
		}
		if _, err := os.Stat(p); err != nil {
			return fmt.Errorf("%s dataset not readable: %w", name, err)
		}
	}
	return nil
}

// newEventLogger creates the JSONL event logger shared by all commands
func newEventLogger() *report.EventLogger {
	logLevel := report.LevelInfo
	if viper.GetBool("quiet") {
		logLevel = report.LevelWarning
	} else if viper.GetBool("verbose") {
		logLevel = report.LevelDebug
	}

	logger, err := report.NewEventLogger(GetConfigString("artifacts", "artifacts"), logLevel)
	if err != nil {
		util.WarnLog("Failed to create event logger: %v", err)
		return report.NullLogger()
	}

	if logger.Path() != "" {
		util.InfoLog("Event log: %s", logger.Path())
	}
	return logger
}
