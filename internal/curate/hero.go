package curate

import (
	"math"
	"time"

	"github.com/theprob/frontpage/internal/models"
)

const (
	// HeroMinVolume is the floor for any hero candidate; the sports floor
	// is far higher so only a genuine blockbuster event qualifies over
	// routine games.
	HeroMinVolume       = 500_000
	SportsHeroMinVolume = 2_000_000

	// HeroMoveThreshold is the preferred minimum move, in points, for the
	// top slot. Pools fall back to any movement, then to everything.
	HeroMoveThreshold = 3.0

	// RepeatPenalty is subtracted when a candidate shares yesterday's hero
	// topic. Soft on purpose: a singular event can still win twice.
	RepeatPenalty = 12.0
)

// PickHero selects the single most editorially significant market, or nil
// when nothing clears the bar. priorTopicKey is the topic fingerprint of
// the previous run's hero; empty means no repetition penalty applies.
func PickHero(pool []models.Market, priorTopicKey string, now time.Time) *models.Market {
	eligible := make([]models.Market, 0, len(pool))
	for _, m := range pool {
		if IsResolved(m) || IsJunk(m) {
			continue
		}
		if m.Volume < HeroMinVolume {
			continue
		}
		if m.IsSports && m.Volume < SportsHeroMinVolume {
			continue
		}
		eligible = append(eligible, m)
	}

	heroScore := func(m models.Market) float64 {
		s := Score(m, now) + models.CategoryBonus[m.Category]
		if priorTopicKey != "" && TopicKey(m) == priorTopicKey {
			s -= RepeatPenalty
		}
		return s
	}

	eligible = CollapseByTopic(eligible, heroScore)

	// Staleness gate: prefer real movers, then anything that moved, then
	// give up and take the best of the whole pool.
	candidates := filterMarkets(eligible, func(m models.Market) bool {
		return math.Abs(m.ChangePts) >= HeroMoveThreshold
	})
	if len(candidates) == 0 {
		candidates = filterMarkets(eligible, func(m models.Market) bool {
			return m.ChangePts != 0
		})
	}
	if len(candidates) == 0 {
		candidates = eligible
	}
	if len(candidates) == 0 {
		return nil
	}

	best := candidates[0]
	bestScore := heroScore(best)
	for _, m := range candidates[1:] {
		if s := heroScore(m); s > bestScore {
			best, bestScore = m, s
		}
	}
	return &best
}

func filterMarkets(ms []models.Market, keep func(models.Market) bool) []models.Market {
	var out []models.Market
	for _, m := range ms {
		if keep(m) {
			out = append(out, m)
		}
	}
	return out
}
