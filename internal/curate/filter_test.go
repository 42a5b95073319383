package curate

import (
	"testing"

	"github.com/theprob/frontpage/internal/models"
)

func TestIsResolved(t *testing.T) {
	tests := []struct {
		name string
		prob float64
		want bool
	}{
		{"mid market", 50, false},
		{"high but live", 97.9, false},
		{"upper bound inclusive", 98, true},
		{"effectively decided", 99.2, true},
		{"certain", 100, true},
		{"lower bound inclusive", 2, true},
		{"low but live", 2.1, false},
		{"dead", 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := models.Market{Probability: tt.prob}
			if got := IsResolved(m); got != tt.want {
				t.Errorf("IsResolved(%v) = %v, want %v", tt.prob, got, tt.want)
			}
		})
	}
}

func TestIsJunk(t *testing.T) {
	tests := []struct {
		name     string
		question string
		tags     []string
		want     bool
	}{
		{"view counter", "Will MrBeast's video hit 100M YouTube views by Friday?", nil, true},
		{"price band", "Will ETH close between $3200 and $3400?", nil, true},
		{"daily coin flip", "Bitcoin up or down on March 14?", nil, true},
		{"tweet counter", "How many tweets will Elon post this week?", nil, true},
		{"hidden tag", "Will the Fed cut rates in March?", []string{"hide-from-new"}, true},
		{"recurring tag", "Will it rain in NYC tomorrow?", []string{"recurring"}, true},
		{"real market", "Will the US strike Iran before July?", []string{"geopolitics"}, false},
		{"real finance market", "Will the Fed cut rates in March?", []string{"fed"}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := models.Market{Question: tt.question, Tags: tt.tags}
			if got := IsJunk(m); got != tt.want {
				t.Errorf("IsJunk(%q) = %v, want %v", tt.question, got, tt.want)
			}
		})
	}
}
