package curate

import (
	"testing"
	"time"

	"github.com/theprob/frontpage/internal/models"
)

var dedupNow = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func TestSeriesKey(t *testing.T) {
	tests := []struct {
		name string
		a    models.Market
		b    models.Market
		same bool
	}{
		{
			"event id wins",
			models.Market{Source: models.SourcePolymarket, EventID: "ev1", ID: "btc-100k-march"},
			models.Market{Source: models.SourcePolymarket, EventID: "ev1", ID: "btc-150k-june"},
			true,
		},
		{
			"date suffix stripped",
			models.Market{Source: models.SourcePolymarket, ID: "btc-above-100k-march-7"},
			models.Market{Source: models.SourcePolymarket, ID: "btc-above-100k-march-31"},
			true,
		},
		{
			"band suffix stripped",
			models.Market{Source: models.SourcePolymarket, ID: "eth-above-3000"},
			models.Market{Source: models.SourcePolymarket, ID: "eth-above-4000"},
			true,
		},
		{
			"stacked suffixes",
			models.Market{Source: models.SourcePolymarket, ID: "btc-above-100k-march-7"},
			models.Market{Source: models.SourcePolymarket, ID: "btc-above-150k-june"},
			true,
		},
		{
			"direction suffix stripped",
			models.Market{Source: models.SourceKalshi, ID: "spx-up-or-down"},
			models.Market{Source: models.SourceKalshi, ID: "spx-up"},
			true,
		},
		{
			"different sources never merge",
			models.Market{Source: models.SourcePolymarket, ID: "btc-above-100k"},
			models.Market{Source: models.SourceKalshi, ID: "btc-above-100k"},
			false,
		},
		{
			"different subjects stay apart",
			models.Market{Source: models.SourcePolymarket, ID: "btc-above-100k"},
			models.Market{Source: models.SourcePolymarket, ID: "eth-above-100k"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ka, kb := SeriesKey(tt.a), SeriesKey(tt.b)
			if (ka == kb) != tt.same {
				t.Errorf("SeriesKey(%q) = %q, SeriesKey(%q) = %q, same = %v, want %v",
					tt.a.ID, ka, tt.b.ID, kb, ka == kb, tt.same)
			}
		})
	}
}

func TestTopicKey(t *testing.T) {
	m := models.Market{Question: "Will the US or Israel strike Iran before July?"}
	if got := TopicKey(m); got != "iran strike us" {
		t.Errorf("TopicKey() = %q, want %q", got, "iran strike us")
	}
}

func TestTopicKeyMergesParaphrases(t *testing.T) {
	pairs := []struct {
		name string
		a, b string
	}{
		{
			"coalition phrasing",
			"Will the US or Israel strike Iran before July?",
			"Will the US strike Iran?",
		},
		{
			"date phrase irrelevant",
			"Will the Fed cut rates in March 2026?",
			"Will the Fed cut rates?",
		},
		{
			"plural folds",
			"Will the Fed cut rates?",
			"Will the Fed cut its rate?",
		},
	}

	for _, tt := range pairs {
		t.Run(tt.name, func(t *testing.T) {
			ka := TopicKey(models.Market{Question: tt.a})
			kb := TopicKey(models.Market{Question: tt.b})
			if ka != kb {
				t.Errorf("TopicKey(%q) = %q, TopicKey(%q) = %q, want equal", tt.a, ka, tt.b, kb)
			}
		})
	}
}

func TestTopicKeyKeepsDistinctTopics(t *testing.T) {
	a := TopicKey(models.Market{Question: "Will the US strike Iran?"})
	b := TopicKey(models.Market{Question: "Will the Fed cut rates?"})
	if a == b {
		t.Errorf("distinct topics share key %q", a)
	}
}

func TestCollapseBySeries(t *testing.T) {
	markets := []models.Market{
		{Source: models.SourcePolymarket, ID: "btc-above-100k-march-7", Probability: 60, ChangePts: 2, Volume: 500_000, Volume24h: 50_000},
		{Source: models.SourcePolymarket, ID: "btc-above-100k-march-31", Probability: 55, ChangePts: 6, Volume: 500_000, Volume24h: 50_000},
		{Source: models.SourcePolymarket, ID: "will-trump-win", Probability: 50, ChangePts: 1, Volume: 500_000, Volume24h: 50_000},
	}

	got := CollapseBySeries(markets, dedupNow)
	if len(got) != 2 {
		t.Fatalf("CollapseBySeries returned %d markets, want 2", len(got))
	}
	if got[0].ID != "btc-above-100k-march-31" {
		t.Errorf("kept %q, want the higher-scoring rung", got[0].ID)
	}

	// Idempotent.
	again := CollapseBySeries(got, dedupNow)
	if len(again) != len(got) {
		t.Errorf("second collapse changed length: %d -> %d", len(got), len(again))
	}
	for i := range got {
		if again[i].ID != got[i].ID {
			t.Errorf("second collapse changed order at %d: %q -> %q", i, got[i].ID, again[i].ID)
		}
	}
}

func TestCollapseByTopic(t *testing.T) {
	rank := func(m models.Market) float64 { return Score(m, dedupNow) }

	markets := []models.Market{
		{Source: models.SourcePolymarket, ID: "a", Question: "Will the US strike Iran?", ChangePts: 3, Probability: 40, Volume: 1_000_000},
		{Source: models.SourceKalshi, ID: "b", Question: "Will the US or Israel strike Iran before July?", ChangePts: -7, Probability: 35, Volume: 800_000},
		{Source: models.SourcePolymarket, ID: "c", Question: "Will the Fed cut rates?", ChangePts: 1, Probability: 60, Volume: 900_000},
	}

	got := CollapseByTopic(markets, rank)
	if len(got) != 2 {
		t.Fatalf("CollapseByTopic returned %d markets, want 2", len(got))
	}
	for _, m := range got {
		if m.ID == "a" {
			t.Errorf("kept %q, want the larger absolute change variant %q", "a", "b")
		}
	}
}
