// Package content turns selected markets into front-page copy. Every LLM
// call is optional: when the model is unavailable or fails, a template
// built from the market's own numbers takes its place, so copy generation
// can never sink a run.
package content

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/theprob/frontpage/internal/llm"
	"github.com/theprob/frontpage/internal/models"
)

const (
	heroTakeMaxTokens  = 120
	moverLineMaxTokens = 60
	callTimeout        = 20 * time.Second
)

// Generator writes the hero take and mover one-liners.
type Generator struct {
	llm *llm.Client
}

// NewGenerator creates a generator. A nil client means fallback copy only.
func NewGenerator(client *llm.Client) *Generator {
	return &Generator{llm: client}
}

// Enrich fills the Take field on the hero and each mover in place.
func (g *Generator) Enrich(ctx context.Context, result *models.SelectionResult) {
	if result.Hero != nil {
		result.Hero.Take = g.heroTake(ctx, *result.Hero)
	}
	for i := range result.Movers {
		result.Movers[i].Take = g.moverLine(ctx, result.Movers[i])
	}
}

// heroTake writes 2-3 sentences of context for the lead market.
func (g *Generator) heroTake(ctx context.Context, m models.Market) string {
	if g.llm == nil {
		return fallbackHeroTake(m)
	}

	prompt := fmt.Sprintf(
		"Write 2-3 short sentences on this prediction market for the front page. "+
			"Lead with what moved and why it matters. Do not restate the question verbatim.\n\n"+
			"Question: %s\nProbability: %.0f%%\n24h change: %+.1f points\nVolume: %s\nCategory: %s",
		m.Question, m.Probability, m.ChangePts, m.VolumeFmt, m.Category)

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	take, err := g.llm.Complete(callCtx, prompt, heroTakeMaxTokens)
	if err != nil || take == "" {
		log.Warn().Err(err).Str("market", m.ID).Msg("Hero take generation failed, using fallback")
		return fallbackHeroTake(m)
	}
	return take
}

// moverLine writes one punchy line for a movers slot.
func (g *Generator) moverLine(ctx context.Context, m models.Market) string {
	if g.llm == nil {
		return fallbackMoverLine(m)
	}

	prompt := fmt.Sprintf(
		"Write one sentence, under 15 words, on this prediction market move. "+
			"No preamble.\n\nQuestion: %s\nProbability: %.0f%%\n24h change: %+.1f points\nVolume: %s",
		m.Question, m.Probability, m.ChangePts, m.VolumeFmt)

	callCtx, cancel := context.WithTimeout(ctx, callTimeout)
	defer cancel()

	line, err := g.llm.Complete(callCtx, prompt, moverLineMaxTokens)
	if err != nil || line == "" {
		log.Warn().Err(err).Str("market", m.ID).Msg("Mover line generation failed, using fallback")
		return fallbackMoverLine(m)
	}
	return line
}

// fallbackHeroTake builds copy from the market's own numbers.
func fallbackHeroTake(m models.Market) string {
	var b strings.Builder
	switch m.Direction {
	case models.DirectionUp:
		fmt.Fprintf(&b, "Traders pushed this to %.0f%%, up %.1f points in 24 hours.", m.Probability, m.ChangePts)
	case models.DirectionDown:
		fmt.Fprintf(&b, "Traders marked this down to %.0f%%, off %.1f points in 24 hours.", m.Probability, -m.ChangePts)
	default:
		fmt.Fprintf(&b, "The market sits at %.0f%% and is not budging.", m.Probability)
	}
	if m.VolumeFmt != "" {
		fmt.Fprintf(&b, " %s has traded so far.", m.VolumeFmt)
	}
	if m.EndDate != "" {
		fmt.Fprintf(&b, " Resolves around %s.", m.EndDate)
	}
	return b.String()
}

// fallbackMoverLine builds a one-liner from the market's own numbers.
func fallbackMoverLine(m models.Market) string {
	switch m.Direction {
	case models.DirectionUp:
		return fmt.Sprintf("Up %.1f points to %.0f%%.", m.ChangePts, m.Probability)
	case models.DirectionDown:
		return fmt.Sprintf("Down %.1f points to %.0f%%.", -m.ChangePts, m.Probability)
	default:
		return fmt.Sprintf("Holding at %.0f%% on %s of volume.", m.Probability, m.VolumeFmt)
	}
}
