package normalize

import (
	"regexp"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/theprob/frontpage/internal/models"
)

// datePhraseRe matches the resolution-date phrasing that distinguishes the
// rungs of a contract ladder ("by March 7", "before June", "in Q1", "in
// 2026", "this week").
var datePhraseRe = regexp.MustCompile(`(?i)\b(?:by|before|on|in|through|until)?\s*(?:the\s+end\s+of\s+)?(?:(?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|jun(?:e)?|jul(?:y)?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)\.?\s*\d{0,2}(?:st|nd|rd|th)?,?\s*(?:20\d\d)?|q[1-4]\s*(?:20\d\d)?|20\d\d|tomorrow|today|this\s+(?:week|month|year)|next\s+(?:week|month|year))\b`)

var spaceRe = regexp.MustCompile(`\s+`)

// StripDatePhrases removes date phrasing from a question so that ladder
// rungs of the same proposition compare equal.
func StripDatePhrases(q string) string {
	s := datePhraseRe.ReplaceAllString(q, " ")
	s = spaceRe.ReplaceAllString(s, " ")
	return strings.TrimSpace(strings.ToLower(s))
}

// CollapseDateLadders keeps one representative per contract ladder: when one
// real-world question is listed as several contracts differing only by
// resolution date, only the rung with the highest 24h volume survives, since
// its price change reflects trading on the currently live contract.
func CollapseDateLadders(markets []models.Market) []models.Market {
	type group struct {
		best  int
		count int
	}

	groups := make(map[string]*group)
	key := func(m models.Market) string {
		return m.EventID + "|" + StripDatePhrases(m.Question)
	}

	for i, m := range markets {
		k := key(m)
		g, ok := groups[k]
		if !ok {
			groups[k] = &group{best: i, count: 1}
			continue
		}
		g.count++
		b := markets[g.best]
		if m.Volume24h > b.Volume24h || (m.Volume24h == b.Volume24h && m.Volume > b.Volume) {
			g.best = i
		}
	}

	collapsed := 0
	out := make([]models.Market, 0, len(groups))
	for i, m := range markets {
		g := groups[key(m)]
		if g.best != i {
			collapsed++
			continue
		}
		out = append(out, m)
	}

	if collapsed > 0 {
		log.Debug().Int("collapsed", collapsed).Msg("Collapsed date-ladder contracts")
	}
	return out
}
