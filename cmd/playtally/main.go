// Package main provides the PlayTally command: it computes playback
// statistics summaries over the local event log and prints them.
//
// Usage:
//
//	playtally -range week
//	playtally -range all -json
//	playtally -db-path ~/PlayTally/playtally.db -range month -top-n 5
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/samber/do/v2"

	"github.com/playtally/playtally/internal/di"
	"github.com/playtally/playtally/internal/domain"
	"github.com/playtally/playtally/internal/logger"
	"github.com/playtally/playtally/internal/service"
)

// Registered before config.LoadConfig parses the default flag set, so they
// ride along with the config flags.
var (
	rangeFlag = flag.String("range", "week", "Range to summarize (day, week, month, year, all)")
	jsonFlag  = flag.Bool("json", false, "Print the full summary as JSON")
)

func main() {
	// Create DI container
	injector := di.NewContainer()

	// Bootstrap all services
	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to bootstrap: %v\n", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)
	stats := do.MustInvoke[*service.StatsService](injector)

	summary, err := stats.ComputeSummary(context.Background(), domain.TimeRange(*rangeFlag), 0)
	if err != nil {
		log.Error("Failed to compute summary", "range", *rangeFlag, "error", err)
		shutdown(injector, log)
		os.Exit(1)
	}

	if *jsonFlag {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(summary); err != nil {
			log.Error("Failed to encode summary", "error", err)
		}
	} else {
		printSummary(summary)
	}

	shutdown(injector, log)
}

// shutdown closes all services in reverse order.
func shutdown(injector interface{ Shutdown() *do.ShutdownReport }, log *logger.Logger) {
	if report := injector.Shutdown(); report != nil && !report.Succeed {
		log.Error("Shutdown error", "error", report)
	}
}

// printSummary renders the headline numbers as text.
func printSummary(s *domain.PlaybackStatsSummary) {
	fmt.Printf("Range: %s (%s to %s)\n", s.Range,
		s.StartAt.Format(time.RFC3339), s.EndAt.Format(time.RFC3339))
	fmt.Printf("Plays: %d\n", s.TotalPlayCount)
	fmt.Printf("Listened: %s\n", time.Duration(s.TotalDurationMs)*time.Millisecond)
	fmt.Printf("Sessions: %d (avg %s, longest %s, %.2f/day)\n",
		s.TotalSessions,
		time.Duration(s.AverageSessionDurationMs)*time.Millisecond,
		time.Duration(s.LongestSessionDurationMs)*time.Millisecond,
		s.AverageSessionsPerDay,
	)
	if s.PeakDayLabel != "" {
		fmt.Printf("Peak day: %s (%s)\n", s.PeakDayLabel,
			time.Duration(s.PeakDayDurationMs)*time.Millisecond)
	}
	if s.PeakTimelineEntry != nil {
		fmt.Printf("Peak slot: %s (%s)\n", s.PeakTimelineEntry.Label,
			time.Duration(s.PeakTimelineEntry.DurationMs)*time.Millisecond)
	}
	if s.SkippedEventCount > 0 {
		fmt.Printf("Skipped events: %d\n", s.SkippedEventCount)
	}

	printGroups("Top genres", s.TopGenres)
	printGroups("Top artists", s.TopArtists)
	printGroups("Top albums", s.TopAlbums)
	printGroups("Top songs", s.TopSongs)
}

func printGroups(title string, groups []domain.DimensionGroup) {
	if len(groups) == 0 {
		return
	}
	fmt.Printf("\n%s:\n", title)
	for i, g := range groups {
		fmt.Printf("  %2d. %s  %s, %d plays\n", i+1, g.Key,
			time.Duration(g.DurationMs)*time.Millisecond, g.PlayCount)
	}
}
