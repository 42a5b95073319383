package curate

import (
	"testing"
	"time"

	"github.com/theprob/frontpage/internal/models"
)

var scoreNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestScoreMoveDominates(t *testing.T) {
	quiet := models.Market{Probability: 50, ChangePts: 0.5, Volume: 1_000_000, Volume24h: 10_000}
	mover := models.Market{Probability: 50, ChangePts: 8, Volume: 1_000_000, Volume24h: 10_000}

	if Score(mover, scoreNow) <= Score(quiet, scoreNow) {
		t.Errorf("8-point mover scored %v, quiet market %v; mover should win",
			Score(mover, scoreNow), Score(quiet, scoreNow))
	}
}

func TestScoreUncertaintyTerm(t *testing.T) {
	mid := models.Market{Probability: 50, ChangePts: 2, Volume: 100_000, Volume24h: 5_000}
	edge := models.Market{Probability: 95, ChangePts: 2, Volume: 100_000, Volume24h: 5_000}

	if Score(mid, scoreNow) <= Score(edge, scoreNow) {
		t.Errorf("50%% market scored %v, 95%% market %v; coin flip should score higher",
			Score(mid, scoreNow), Score(edge, scoreNow))
	}
}

func TestScoreUrgencyBonus(t *testing.T) {
	base := models.Market{Probability: 50, ChangePts: 2, Volume: 100_000, Volume24h: 5_000}

	soon := base
	soon.EndDateRaw = scoreNow.Add(24 * time.Hour).Format(time.RFC3339)

	far := base
	far.EndDateRaw = scoreNow.Add(60 * 24 * time.Hour).Format(time.RFC3339)

	if Score(soon, scoreNow) <= Score(far, scoreNow) {
		t.Errorf("market resolving tomorrow scored %v, distant one %v",
			Score(soon, scoreNow), Score(far, scoreNow))
	}
	if Score(far, scoreNow) != Score(base, scoreNow) {
		t.Errorf("distant end date changed score: %v vs %v",
			Score(far, scoreNow), Score(base, scoreNow))
	}
}

func TestScoreUnparsableEndDate(t *testing.T) {
	base := models.Market{Probability: 50, ChangePts: 2, Volume: 100_000, Volume24h: 5_000}
	bad := base
	bad.EndDateRaw = "soon"

	if Score(bad, scoreNow) != Score(base, scoreNow) {
		t.Errorf("unparsable end date changed score: %v vs %v",
			Score(bad, scoreNow), Score(base, scoreNow))
	}
}

func TestScoreSurgeBonus(t *testing.T) {
	steady := models.Market{Probability: 50, ChangePts: 2, Volume: 1_000_000, Volume24h: 50_000}
	surging := models.Market{Probability: 50, ChangePts: 2, Volume: 1_000_000, Volume24h: 400_000}

	// The surge term alone must favor the surging market beyond what the
	// 24h volume log term adds.
	diff := Score(surging, scoreNow) - Score(steady, scoreNow)
	if diff < 1 {
		t.Errorf("surge bonus too small: score diff %v", diff)
	}
}

func TestScoreZeroVolume(t *testing.T) {
	m := models.Market{Probability: 50}
	got := Score(m, scoreNow)
	if got != 1 {
		// Only the uncertainty term should remain.
		t.Errorf("Score(zeroed market) = %v, want 1", got)
	}
}
