package stats

import (
	"slices"
	"strings"

	"github.com/playtally/playtally/internal/domain"
)

// DefaultTopN bounds the top-genre/artist/album/song lists.
const DefaultTopN = 10

// DefaultSongListCap bounds the full ranked song list.
const DefaultSongListCap = 200

// DimensionRankings holds the fully ranked group lists for all four
// grouping dimensions.
type DimensionRankings struct {
	Genres  []domain.DimensionGroup
	Artists []domain.DimensionGroup
	Albums  []domain.DimensionGroup
	Songs   []domain.DimensionGroup
}

// AggregateDimensions groups events along genre, artist, album and song.
// Keys match exactly as supplied (callers wanting identity merging supply
// stable IDs); blank genres group under domain.UnknownGenre. Every event
// lands in exactly one group per dimension, so each dimension's group
// durations sum to the range total.
func AggregateDimensions(events []*domain.PlaybackEvent) DimensionRankings {
	return DimensionRankings{
		Genres: aggregateBy(events,
			func(e *domain.PlaybackEvent) string { return e.GenreKey() },
			func(e *domain.PlaybackEvent) string { return e.Artist }),
		Artists: aggregateBy(events,
			func(e *domain.PlaybackEvent) string { return e.Artist },
			func(e *domain.PlaybackEvent) string { return e.SongID }),
		Albums: aggregateBy(events,
			func(e *domain.PlaybackEvent) string { return e.Album },
			func(e *domain.PlaybackEvent) string { return e.SongID }),
		Songs: aggregateBy(events,
			func(e *domain.PlaybackEvent) string { return e.SongID },
			nil),
	}
}

type groupAccum struct {
	durationMs int64
	playCount  int
	sub        map[string]struct{}
}

// aggregateBy groups events by key, accumulating duration, play count and
// (when subKey is non-nil) the distinct sub-entity count, then ranks the
// groups.
func aggregateBy(
	events []*domain.PlaybackEvent,
	key func(*domain.PlaybackEvent) string,
	subKey func(*domain.PlaybackEvent) string,
) []domain.DimensionGroup {
	accum := make(map[string]*groupAccum)
	for _, e := range events {
		k := key(e)
		g := accum[k]
		if g == nil {
			g = &groupAccum{}
			if subKey != nil {
				g.sub = make(map[string]struct{})
			}
			accum[k] = g
		}
		g.durationMs += e.ListenedMs
		g.playCount++
		if subKey != nil {
			g.sub[subKey(e)] = struct{}{}
		}
	}

	groups := make([]domain.DimensionGroup, 0, len(accum))
	for k, g := range accum {
		group := domain.DimensionGroup{
			Key:        k,
			DurationMs: g.durationMs,
			PlayCount:  g.playCount,
		}
		if subKey != nil {
			group.UniqueSubCount = len(g.sub)
		}
		groups = append(groups, group)
	}

	slices.SortFunc(groups, compareGroups)
	return groups
}

// compareGroups is the deterministic, reproducible ranking order: total
// duration descending, play count descending, key ascending.
func compareGroups(a, b domain.DimensionGroup) int {
	if a.DurationMs != b.DurationMs {
		if b.DurationMs > a.DurationMs {
			return 1
		}
		return -1
	}
	if a.PlayCount != b.PlayCount {
		if b.PlayCount > a.PlayCount {
			return 1
		}
		return -1
	}
	return strings.Compare(a.Key, b.Key)
}

// truncateGroups bounds a ranked list to its first n entries.
func truncateGroups(groups []domain.DimensionGroup, n int) []domain.DimensionGroup {
	if len(groups) > n {
		return groups[:n:n]
	}
	return groups
}
