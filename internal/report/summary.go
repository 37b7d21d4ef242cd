package report

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/franz/band-scout/internal/geo"
	"github.com/franz/band-scout/internal/store"
)

// SummaryReport represents a complete dataset summary
type SummaryReport struct {
	GeneratedAt time.Time

	// Dataset statistics
	Bands     int
	Themes    int
	Edges     int
	Countries int

	// Referential integrity
	OrphanThemes  int
	DanglingEdges int

	// Country resolution
	ResolvedCountries   int
	UnresolvedCountries []string

	// Details
	MostConnected []ConnectedBand

	// Metadata
	DatabasePath string
	EventLogPath string
}

// ConnectedBand is a band with its incident crowd edge count
type ConnectedBand struct {
	BandID    int64
	Name      string
	EdgeCount int
	TopScore  float64
}

// GenerateSummaryReport builds a summary from the state database
func GenerateSummaryReport(db *store.Store, eventLogPath string) (*SummaryReport, error) {
	report := &SummaryReport{
		GeneratedAt:  time.Now(),
		EventLogPath: eventLogPath,
	}

	var err error
	if report.Bands, err = db.CountBands(); err != nil {
		return nil, fmt.Errorf("failed to count bands: %w", err)
	}
	if report.Themes, err = db.CountThemes(); err != nil {
		return nil, fmt.Errorf("failed to count themes: %w", err)
	}
	if report.Edges, err = db.CountEdges(); err != nil {
		return nil, fmt.Errorf("failed to count edges: %w", err)
	}
	if report.Countries, err = db.CountCountries(); err != nil {
		return nil, fmt.Errorf("failed to count countries: %w", err)
	}

	if report.OrphanThemes, err = db.CountOrphanThemes(); err != nil {
		return nil, fmt.Errorf("failed to count orphan themes: %w", err)
	}
	if report.DanglingEdges, err = db.CountDanglingEdges(); err != nil {
		return nil, fmt.Errorf("failed to count dangling edges: %w", err)
	}

	resolved, unresolved, err := gatherCountryResolution(db)
	if err != nil {
		return nil, err
	}
	report.ResolvedCountries = resolved
	report.UnresolvedCountries = unresolved

	report.MostConnected, err = gatherMostConnected(db, 10)
	if err != nil {
		return nil, err
	}

	return report, nil
}

// gatherCountryResolution joins the bands' country strings against the
// countries table
func gatherCountryResolution(db *store.Store) (int, []string, error) {
	countries, err := db.GetDistinctBandCountries()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to query band countries: %w", err)
	}

	coords, err := db.GetAllCountries()
	if err != nil {
		return 0, nil, fmt.Errorf("failed to query country coordinates: %w", err)
	}

	resolved := 0
	var unresolved []string
	for _, c := range countries {
		std := geo.StandardizeCountryName(c)
		if std == "" {
			continue
		}
		if _, ok := coords[std]; ok {
			resolved++
		} else {
			unresolved = append(unresolved, c)
		}
	}
	sort.Strings(unresolved)

	return resolved, unresolved, nil
}

// gatherMostConnected returns the bands with the most incident crowd
// edges, most connected first
func gatherMostConnected(db *store.Store, limit int) ([]ConnectedBand, error) {
	edges, err := db.GetAllEdges()
	if err != nil {
		return nil, fmt.Errorf("failed to query edges: %w", err)
	}

	counts := make(map[int64]int)
	best := make(map[int64]float64)
	for _, e := range edges {
		for _, id := range []int64{e.BandID, e.SimilarID} {
			counts[id]++
			if e.Score > best[id] {
				best[id] = e.Score
			}
		}
	}

	connected := make([]ConnectedBand, 0, len(counts))
	for id, n := range counts {
		connected = append(connected, ConnectedBand{BandID: id, EdgeCount: n, TopScore: best[id]})
	}
	sort.Slice(connected, func(i, j int) bool {
		if connected[i].EdgeCount != connected[j].EdgeCount {
			return connected[i].EdgeCount > connected[j].EdgeCount
		}
		return connected[i].BandID < connected[j].BandID
	})

	if len(connected) > limit {
		connected = connected[:limit]
	}

	for i := range connected {
		band, err := db.GetBand(connected[i].BandID)
		if err != nil {
			return nil, err
		}
		if band != nil {
			connected[i].Name = band.Name
		} else {
			connected[i].Name = "(unknown)"
		}
	}

	return connected, nil
}

// WriteMarkdownReport writes the summary report as Markdown
func WriteMarkdownReport(report *SummaryReport, outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	var md strings.Builder

	md.WriteString("# Band Scout - Dataset Report\n\n")
	md.WriteString(fmt.Sprintf("**Generated:** %s\n\n", report.GeneratedAt.Format("2006-01-02 15:04:05")))

	if report.DatabasePath != "" {
		md.WriteString(fmt.Sprintf("**Database:** `%s`\n\n", report.DatabasePath))
	}
	if report.EventLogPath != "" {
		md.WriteString(fmt.Sprintf("**Event Log:** `%s`\n\n", report.EventLogPath))
	}

	md.WriteString("---\n\n")

	md.WriteString("## 📊 Datasets\n\n")
	md.WriteString("| Dataset | Rows |\n")
	md.WriteString("|---------|------|\n")
	md.WriteString(fmt.Sprintf("| Bands | %s |\n", humanize.Comma(int64(report.Bands))))
	md.WriteString(fmt.Sprintf("| Lyrical Themes | %s |\n", humanize.Comma(int64(report.Themes))))
	md.WriteString(fmt.Sprintf("| Similarity Edges | %s |\n", humanize.Comma(int64(report.Edges))))
	md.WriteString(fmt.Sprintf("| Countries | %s |\n", humanize.Comma(int64(report.Countries))))
	md.WriteString("\n")

	md.WriteString("## 🔗 Referential Integrity\n\n")
	md.WriteString("| Check | Count |\n")
	md.WriteString("|-------|-------|\n")
	md.WriteString(fmt.Sprintf("| Theme rows without a band | %d |\n", report.OrphanThemes))
	md.WriteString(fmt.Sprintf("| Edges referencing missing bands | %d |\n", report.DanglingEdges))
	md.WriteString("\n")

	md.WriteString("## 🌍 Country Resolution\n\n")
	md.WriteString(fmt.Sprintf("**Resolved:** %d band countries\n\n", report.ResolvedCountries))
	if len(report.UnresolvedCountries) > 0 {
		md.WriteString("**Unresolved** (geographic signal is 0 for these bands):\n\n")
		for _, c := range report.UnresolvedCountries {
			md.WriteString(fmt.Sprintf("- `%s`\n", c))
		}
		md.WriteString("\n")
	}

	if len(report.MostConnected) > 0 {
		md.WriteString("## 🔍 Most Connected Bands\n\n")
		md.WriteString("*Bands with the most incident crowd similarity edges*\n\n")
		md.WriteString("| Band | ID | Edges | Top Score |\n")
		md.WriteString("|------|----|-------|-----------|\n")
		for _, b := range report.MostConnected {
			md.WriteString(fmt.Sprintf("| %s | %d | %d | %.2f |\n", b.Name, b.BandID, b.EdgeCount, b.TopScore))
		}
		md.WriteString("\n")
	}

	md.WriteString("---\n\n")
	md.WriteString("*Generated by bsc - Band Scout*\n")

	if err := os.WriteFile(outputPath, []byte(md.String()), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
