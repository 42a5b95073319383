package curate

import (
	"sort"
	"time"

	"github.com/theprob/frontpage/internal/models"
)

const (
	MoversCount         = 6
	MoversSportsCap     = 2
	MinoritySourceFloor = 2
)

// moversTemplate is the editorial slot layout for the movers grid. Each
// slot prefers its category; fallbacks keep the grid full when a category
// has no candidate left.
var moversTemplate = []models.Category{
	models.CategoryPolitics,
	models.CategorySports,
	models.CategoryFinance,
	models.CategoryWorld,
	models.CategoryTechnology,
	models.CategorySports,
}

// PickMovers builds the fixed-size movers list: category-templated
// slot-filling over series-deduplicated candidates, then a source-mix pass
// that guarantees minority-feed representation.
func PickMovers(pool []models.Market, hero *models.Market, now time.Time) []models.Market {
	candidates := make([]models.Market, 0, len(pool))
	for _, m := range pool {
		if hero != nil && m.Source == hero.Source && m.ID == hero.ID {
			continue
		}
		if IsResolved(m) || IsJunk(m) {
			continue
		}
		// Kalshi's list endpoint has no reliable 24h change, so zero-move
		// entries from it must stay representable.
		if m.ChangePts == 0 && m.Source != models.SourceKalshi {
			continue
		}
		candidates = append(candidates, m)
	}

	candidates = CollapseBySeries(candidates, now)
	sort.SliceStable(candidates, func(i, j int) bool {
		return Score(candidates[i], now) > Score(candidates[j], now)
	})

	used := make([]bool, len(candidates))
	var picked []models.Market
	sportsCount := 0

	take := func(i int) {
		used[i] = true
		picked = append(picked, candidates[i])
		if candidates[i].IsSports {
			sportsCount++
		}
	}

	// pickBest returns the index of the best unused candidate passing keep,
	// or -1. Candidates are already score-ordered.
	pickBest := func(keep func(models.Market) bool) int {
		for i, m := range candidates {
			if used[i] {
				continue
			}
			if m.IsSports && sportsCount >= MoversSportsCap {
				continue
			}
			if keep(m) {
				return i
			}
		}
		return -1
	}

	for _, slot := range moversTemplate {
		if len(picked) >= MoversCount {
			break
		}
		i := pickBest(func(m models.Market) bool { return m.Category == slot })
		if i < 0 {
			i = pickBest(func(m models.Market) bool { return !m.IsSports })
		}
		if i < 0 {
			i = pickBest(func(models.Market) bool { return true })
		}
		if i < 0 {
			break
		}
		take(i)
	}

	return enforceSourceMix(picked, candidates, used, now)
}

// enforceSourceMix swaps unused minority-source candidates over the
// lowest-scoring majority-source slots until the floor is met or no
// minority candidate remains.
func enforceSourceMix(picked []models.Market, candidates []models.Market, used []bool, now time.Time) []models.Market {
	if len(picked) == 0 {
		return picked
	}

	counts := map[models.Source]int{}
	sportsCount := 0
	for _, m := range picked {
		counts[m.Source]++
		if m.IsSports {
			sportsCount++
		}
	}

	minority, majority := models.SourceKalshi, models.SourcePolymarket
	if counts[models.SourcePolymarket] < counts[models.SourceKalshi] {
		minority, majority = models.SourcePolymarket, models.SourceKalshi
	}

	for counts[minority] < MinoritySourceFloor {
		// Best unused minority candidate.
		next := -1
		for i, m := range candidates {
			if !used[i] && m.Source == minority {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}

		// Lowest-scoring majority-source slot.
		lowest := -1
		for j, m := range picked {
			if m.Source != majority {
				continue
			}
			if lowest < 0 || Score(m, now) < Score(picked[lowest], now) {
				lowest = j
			}
		}
		if lowest < 0 {
			break
		}

		replacement := candidates[next]
		if replacement.IsSports && !picked[lowest].IsSports && sportsCount >= MoversSportsCap {
			used[next] = true // burn it, the cap blocks this swap
			continue
		}

		if picked[lowest].IsSports {
			sportsCount--
		}
		if replacement.IsSports {
			sportsCount++
		}
		used[next] = true
		picked[lowest] = replacement
		counts[majority]--
		counts[minority]++
	}

	return picked
}
