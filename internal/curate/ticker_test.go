package curate

import (
	"fmt"
	"testing"
	"time"

	"github.com/theprob/frontpage/internal/models"
)

var tickerNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

// widePool spreads candidates across every category so the ticker can fill.
func widePool() []models.Market {
	var pool []models.Market
	id := 0
	add := func(cat models.Category, n int) {
		for i := 0; i < n; i++ {
			id++
			pool = append(pool, models.Market{
				Source:      models.SourcePolymarket,
				ID:          fmt.Sprintf("m-%d", id),
				Question:    fmt.Sprintf("Completely unrelated question number %d about topic %d?", id, id),
				Category:    cat,
				IsSports:    cat == models.CategorySports,
				Probability: 50,
				ChangePts:   float64(2 + id%5),
				Volume:      500_000,
				Volume24h:   40_000,
			})
		}
	}

	add(models.CategoryPolitics, 4)
	add(models.CategoryFinance, 4)
	add(models.CategoryTechnology, 4)
	add(models.CategoryCrypto, 4)
	add(models.CategorySports, 6)
	add(models.CategoryCulture, 4)
	add(models.CategoryWorld, 4)
	return pool
}

func TestPickTickerCount(t *testing.T) {
	ticker := PickTicker(widePool(), tickerNow)
	if len(ticker) != TickerCount {
		t.Fatalf("PickTicker returned %d entries, want %d", len(ticker), TickerCount)
	}
}

func TestPickTickerSportsCap(t *testing.T) {
	ticker := PickTicker(widePool(), tickerNow)
	sports := 0
	for _, m := range ticker {
		if m.IsSports {
			sports++
		}
	}
	if sports > TickerSportsCap {
		t.Errorf("ticker has %d sports entries, cap is %d", sports, TickerSportsCap)
	}
}

func TestPickTickerCategoryCaps(t *testing.T) {
	ticker := PickTicker(widePool(), tickerNow)
	counts := map[models.Category]int{}
	for _, m := range ticker {
		if !m.IsSports {
			counts[m.Category]++
		}
	}
	for cat, n := range counts {
		limit := 2
		if cat == models.CategoryTechnology {
			limit = 1
		}
		if n > limit {
			t.Errorf("category %v has %d ticker entries, cap is %d", cat, n, limit)
		}
	}
}

func TestPickTickerNoDuplicateSeries(t *testing.T) {
	pool := widePool()
	// Two rungs of the same series, both high scoring.
	pool = append(pool,
		models.Market{Source: models.SourcePolymarket, ID: "btc-above-100k-march-7", Question: "BTC above 100k by March 7?", Category: models.CategoryCrypto, Probability: 50, ChangePts: 9, Volume: 2_000_000, Volume24h: 400_000},
		models.Market{Source: models.SourcePolymarket, ID: "btc-above-100k-march-31", Question: "BTC above 100k by March 31?", Category: models.CategoryCrypto, Probability: 50, ChangePts: 8, Volume: 2_000_000, Volume24h: 400_000},
	)

	ticker := PickTicker(pool, tickerNow)
	seen := map[string]int{}
	for _, m := range ticker {
		seen[SeriesKey(m)]++
	}
	for k, n := range seen {
		if n > 1 {
			t.Errorf("series %q appears %d times in ticker", k, n)
		}
	}
}

func TestPickTickerSkipsResolved(t *testing.T) {
	pool := widePool()
	pool = append(pool, models.Market{
		Source: models.SourcePolymarket, ID: "decided", Question: "Already decided?",
		Category: models.CategoryWorld, Probability: 99.2, ChangePts: 10,
		Volume: 5_000_000, Volume24h: 500_000,
	})

	for _, m := range PickTicker(pool, tickerNow) {
		if m.ID == "decided" {
			t.Error("resolved market reached the ticker")
		}
	}
}
