package curate

import (
	"sort"
	"time"

	"github.com/theprob/frontpage/internal/models"
)

const (
	TickerCount     = 10
	TickerSportsCap = 3
)

// tickerCategoryCap bounds non-sports categories so no single topic floods
// the strip. Technology is tightest because AI markets cluster hard.
func tickerCategoryCap(c models.Category) int {
	if c == models.CategoryTechnology {
		return 1
	}
	return 2
}

// PickTicker fills the scrolling ticker with a single greedy pass over the
// pool sorted by score. No slot template: the ticker reads as a mix, so
// caps and series dedup are the only structure.
func PickTicker(pool []models.Market, now time.Time) []models.Market {
	sorted := make([]models.Market, 0, len(pool))
	for _, m := range pool {
		if IsResolved(m) || IsJunk(m) {
			continue
		}
		sorted = append(sorted, m)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return Score(sorted[i], now) > Score(sorted[j], now)
	})

	seenID := make(map[string]bool)
	seenSeries := make(map[string]bool)
	catCount := make(map[models.Category]int)
	sportsCount := 0

	var picked []models.Market
	for _, m := range sorted {
		if len(picked) >= TickerCount {
			break
		}
		id := string(m.Source) + ":" + m.ID
		if seenID[id] || seenSeries[SeriesKey(m)] {
			continue
		}
		if m.IsSports {
			if sportsCount >= TickerSportsCap {
				continue
			}
		} else if catCount[m.Category] >= tickerCategoryCap(m.Category) {
			continue
		}

		picked = append(picked, m)
		seenID[id] = true
		seenSeries[SeriesKey(m)] = true
		if m.IsSports {
			sportsCount++
		} else {
			catCount[m.Category]++
		}
	}
	return picked
}
