package curate

import (
	"testing"

	"github.com/theprob/frontpage/internal/models"
)

func TestIsSportsMarket(t *testing.T) {
	tests := []struct {
		name   string
		market models.Market
		want   bool
	}{
		{
			"sports tag",
			models.Market{Question: "Who wins the finals?", Tags: []string{"sports"}},
			true,
		},
		{
			"league tag",
			models.Market{Question: "Who wins the finals?", Tags: []string{"nba"}},
			true,
		},
		{
			"kalshi ticker prefix",
			models.Market{ID: "KXNFLGAME-25SEP07-KC", Question: "Chiefs to win?"},
			true,
		},
		{
			"game day phrasing",
			models.Market{Question: "Will the Lakers win on Mar 7?"},
			true,
		},
		{
			"versus phrasing",
			models.Market{Question: "Arsenal vs. Chelsea: who advances?"},
			true,
		},
		{
			"league keyword",
			models.Market{Question: "Will an NFL team relocate this year?"},
			true,
		},
		{
			"inflation is not the NFL",
			models.Market{Question: "Will inflation exceed 4% this year?"},
			false,
		},
		{
			"election market",
			models.Market{ID: "will-trump-win", Question: "Will Trump win the election?"},
			false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsSportsMarket(tt.market); got != tt.want {
				t.Errorf("IsSportsMarket(%q) = %v, want %v", tt.market.Question, got, tt.want)
			}
		})
	}
}
