package curate

import (
	"math"
	"time"

	"github.com/theprob/frontpage/internal/models"
)

// Scoring weights. Each signal is individually bounded so none can dominate
// on its own; the move term is deliberately the strongest.
const (
	moveWeight      = 2.5
	volume24hWeight = 0.3
	volumeWeight    = 0.1

	urgencyHorizon = 7 * 24 * time.Hour
	urgencyMax     = 1.5

	surgeThreshold = 0.15
	surgeMax       = 3.0
)

// Score computes the buzz score for a market at the given instant. It is a
// pure function of the record and is recomputed at every use, never cached,
// so each selection stage sees the current change and volume.
func Score(m models.Market, now time.Time) float64 {
	move := math.Abs(m.ChangePts) * moveWeight

	// Log scales: a 10x volume difference is a constant increment.
	surge24 := math.Log10(math.Max(m.Volume24h, 1)) * volume24hWeight
	total := math.Log10(math.Max(m.Volume, 1)) * volumeWeight

	// Markets near 50% are genuinely uncertain; near-certainties are not.
	interest := 1 - math.Abs(m.Probability-50)/50

	return move + surge24 + total + interest + urgencyBonus(m, now) + surgeBonus(m)
}

// urgencyBonus ramps linearly from 0 at seven days out to urgencyMax at
// resolution. Markets without a parsable end date get nothing.
func urgencyBonus(m models.Market, now time.Time) float64 {
	if m.EndDateRaw == "" {
		return 0
	}
	end, err := time.Parse(time.RFC3339, m.EndDateRaw)
	if err != nil {
		return 0
	}
	remaining := end.Sub(now)
	if remaining >= urgencyHorizon {
		return 0
	}
	if remaining < 0 {
		remaining = 0
	}
	return urgencyMax * (1 - float64(remaining)/float64(urgencyHorizon))
}

// surgeBonus flags markets whose last 24h account for an outsized share of
// lifetime volume, i.e. suddenly receiving disproportionate attention.
func surgeBonus(m models.Market) float64 {
	if m.Volume <= 0 {
		return 0
	}
	frac := m.Volume24h / m.Volume
	if frac <= surgeThreshold {
		return 0
	}
	bonus := surgeMax * frac
	if bonus > surgeMax {
		bonus = surgeMax
	}
	return bonus
}
