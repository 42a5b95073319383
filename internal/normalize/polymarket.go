package normalize

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/theprob/frontpage/internal/models"
	"github.com/theprob/frontpage/internal/polymarket"
)

// FromPolymarket converts one Gamma market into a canonical record. The
// second return is false when mandatory numeric fields cannot be derived.
func FromPolymarket(ev polymarket.Event, m polymarket.Market) (models.Market, bool) {
	if len(m.OutcomePrices) == 0 {
		return models.Market{}, false
	}
	if m.Question == "" || m.Slug == "" {
		return models.Market{}, false
	}

	// Gamma quotes a decimal share price; scale to points.
	prob := round1(m.YesPrice * 100)
	change := round1(ValidateChange(prob, m.OneDayPriceChange*100))

	endRaw := m.EndDate
	if endRaw == "" {
		endRaw = m.EndDateISO
	}

	var tags []string
	for _, t := range ev.Tags {
		tags = append(tags, strings.ToLower(t.Slug))
	}

	return models.Market{
		Source:      models.SourcePolymarket,
		Question:    m.Question,
		ID:          m.Slug,
		URL:         "https://polymarket.com/event/" + ev.Slug,
		EventID:     ev.ID,
		Probability: prob,
		ChangePts:   change,
		Direction:   models.DirectionFor(change),
		Volume:      m.VolumeNum,
		VolumeFmt:   models.FormatVolume(m.VolumeNum),
		Volume24h:   m.Volume24hr,
		Liquidity:   m.LiquidityNum,
		EndDate:     models.FormatEndDate(endRaw),
		EndDateRaw:  endRaw,
		Tags:        tags,
	}, true
}

// PolymarketMarkets flattens a page of events into canonical records,
// dropping malformed entries with a count logged.
func PolymarketMarkets(events []polymarket.Event) []models.Market {
	var out []models.Market
	dropped := 0

	for _, ev := range events {
		for _, pm := range ev.Markets {
			m, ok := FromPolymarket(ev, pm)
			if !ok {
				dropped++
				continue
			}
			out = append(out, m)
		}
	}

	if dropped > 0 {
		log.Info().Int("dropped", dropped).Msg("Dropped malformed Polymarket records")
	}
	return CollapseDateLadders(out)
}
