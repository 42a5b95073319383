package normalize

import (
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/theprob/frontpage/internal/kalshi"
	"github.com/theprob/frontpage/internal/models"
)

// liquidityEstimate approximates liquidity for a feed that does not report
// it directly.
const liquidityEstimate = 0.1

// FromKalshi converts one Kalshi market into a canonical record. The second
// return is false when no resolvable yes price exists.
func FromKalshi(m kalshi.Market) (models.Market, bool) {
	if m.YesBid == 0 && m.YesAsk == 0 {
		return models.Market{}, false
	}
	if m.Title == "" || m.Ticker == "" {
		return models.Market{}, false
	}

	// Bid/ask quotes are cents, which are already probability points.
	prob := round1((m.YesBid + m.YesAsk) / 2)

	prevBid := m.PreviousYesBid
	if prevBid == 0 {
		prevBid = m.YesBid
	}
	prevAsk := m.PreviousYesAsk
	if prevAsk == 0 {
		prevAsk = m.YesAsk
	}
	prevProb := (prevBid + prevAsk) / 2
	change := round1(ValidateChange(prob, prob-prevProb))

	// Notional volume arrives in cents.
	volume := m.Volume / 100
	volume24h := m.Volume24h / 100

	var tags []string
	if m.Category != "" {
		tags = append(tags, strings.ToLower(m.Category))
	}

	return models.Market{
		Source:      models.SourceKalshi,
		Question:    m.Title,
		ID:          m.Ticker,
		URL:         "https://kalshi.com/markets/" + m.Ticker,
		EventID:     m.EventTicker,
		Probability: prob,
		ChangePts:   change,
		Direction:   models.DirectionFor(change),
		Volume:      volume,
		VolumeFmt:   models.FormatVolume(volume),
		Volume24h:   volume24h,
		Liquidity:   volume * liquidityEstimate,
		EndDate:     models.FormatEndDate(m.CloseTime),
		EndDateRaw:  m.CloseTime,
		Tags:        tags,
	}, true
}

// KalshiMarkets converts a batch of raw markets, dropping malformed entries
// with a count logged.
func KalshiMarkets(raw []kalshi.Market) []models.Market {
	var out []models.Market
	dropped := 0

	for _, km := range raw {
		m, ok := FromKalshi(km)
		if !ok {
			dropped++
			continue
		}
		out = append(out, m)
	}

	if dropped > 0 {
		log.Info().Int("dropped", dropped).Msg("Dropped malformed Kalshi records")
	}
	return CollapseDateLadders(out)
}
