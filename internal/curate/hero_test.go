package curate

import (
	"testing"
	"time"

	"github.com/theprob/frontpage/internal/models"
)

var heroNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func heroMarket(id, question string, cat models.Category, change, volume float64) models.Market {
	return models.Market{
		Source:      models.SourcePolymarket,
		ID:          id,
		Question:    question,
		Category:    cat,
		Probability: 50,
		ChangePts:   change,
		Volume:      volume,
		Volume24h:   volume / 20,
	}
}

func TestPickHeroVolumeFloor(t *testing.T) {
	pool := []models.Market{
		heroMarket("thin", "Will the US strike Iran?", models.CategoryWorld, 8, 400_000),
	}
	if hero := PickHero(pool, "", heroNow); hero != nil {
		t.Errorf("PickHero picked %q below the volume floor", hero.ID)
	}

	pool[0].Volume = 600_000
	if hero := PickHero(pool, "", heroNow); hero == nil {
		t.Error("PickHero returned nil for an eligible market")
	}
}

func TestPickHeroSportsFloor(t *testing.T) {
	game := heroMarket("chiefs-win", "Will the Chiefs win the Super Bowl?", models.CategorySports, 9, 1_000_000)
	game.IsSports = true

	if hero := PickHero([]models.Market{game}, "", heroNow); hero != nil {
		t.Errorf("PickHero picked sports market %q below the sports floor", hero.ID)
	}

	game.Volume = 3_000_000
	if hero := PickHero([]models.Market{game}, "", heroNow); hero == nil {
		t.Error("PickHero rejected a blockbuster sports market")
	}
}

func TestPickHeroRepeatPenalty(t *testing.T) {
	leader := heroMarket("iran-strike", "Will the US strike Iran?", models.CategoryWorld, 9, 2_000_000)
	runnerUp := heroMarket("fed-cut", "Will the Fed cut rates?", models.CategoryFinance, 7, 2_000_000)
	pool := []models.Market{leader, runnerUp}

	hero := PickHero(pool, "", heroNow)
	if hero == nil || hero.ID != "iran-strike" {
		t.Fatalf("without prior topic, hero = %v, want iran-strike", hero)
	}

	hero = PickHero(pool, TopicKey(leader), heroNow)
	if hero == nil || hero.ID != "fed-cut" {
		t.Errorf("with prior topic, hero = %v, want fed-cut", hero)
	}
}

func TestPickHeroStalenessGate(t *testing.T) {
	// A smaller mover above the threshold beats a huge stale market.
	stale := heroMarket("stale", "Will the treaty be signed?", models.CategoryWorld, 0, 50_000_000)
	mover := heroMarket("mover", "Will the Fed cut rates?", models.CategoryFinance, 4, 800_000)

	hero := PickHero([]models.Market{stale, mover}, "", heroNow)
	if hero == nil || hero.ID != "mover" {
		t.Errorf("hero = %v, want the moving market", hero)
	}
}

func TestPickHeroFallsBackToStalePool(t *testing.T) {
	stale := heroMarket("stale", "Will the treaty be signed?", models.CategoryWorld, 0, 50_000_000)

	hero := PickHero([]models.Market{stale}, "", heroNow)
	if hero == nil || hero.ID != "stale" {
		t.Errorf("hero = %v, want the only eligible market", hero)
	}
}

func TestPickHeroCollapsesTopics(t *testing.T) {
	a := heroMarket("iran-a", "Will the US strike Iran?", models.CategoryWorld, 5, 2_000_000)
	b := heroMarket("iran-b", "Will the US or Israel strike Iran before July?", models.CategoryWorld, 8, 1_000_000)
	b.Source = models.SourceKalshi

	hero := PickHero([]models.Market{a, b}, "", heroNow)
	if hero == nil || hero.ID != "iran-b" {
		t.Errorf("hero = %v, want the larger-move variant iran-b", hero)
	}
}

func TestPickHeroEmptyPool(t *testing.T) {
	if hero := PickHero(nil, "", heroNow); hero != nil {
		t.Errorf("PickHero(nil) = %v, want nil", hero)
	}
}
