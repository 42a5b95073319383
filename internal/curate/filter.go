// Package curate turns normalized market records into the front-page
// selection: one hero, six movers, a ten-slot ticker, and the browsable
// catalog behind them.
package curate

import (
	"strings"

	"github.com/theprob/frontpage/internal/models"
)

// Resolution bounds, inclusive. A market at 98 or 2 still shows a large
// change but carries no remaining information.
const (
	ResolvedHigh = 98
	ResolvedLow  = 2
)

// IsResolved reports whether a market is effectively decided.
func IsResolved(m models.Market) bool {
	return m.Probability >= ResolvedHigh || m.Probability <= ResolvedLow
}

// junkPhrases marks recurring low-editorial-value market families: viral
// view counters, narrow price-band micro-markets, next-day direction
// coin-flips, and per-person tweet counters.
var junkPhrases = []string{
	"youtube views",
	"tiktok views",
	"views by",
	"how many views",
	"between $",
	"what price will",
	"up or down on",
	"higher or lower on",
	"up or down today",
	"how many tweets",
	"tweet today",
	"tweets this week",
	"times this week",
	"say during",
}

// junkTags are operational labels a feed uses to mark a market as
// non-editorial.
var junkTags = []string{
	"hide-from-new",
	"recurring",
	"internal",
}

// IsJunk reports whether a market should never reach the front page.
func IsJunk(m models.Market) bool {
	q := strings.ToLower(m.Question)
	for _, phrase := range junkPhrases {
		if strings.Contains(q, phrase) {
			return true
		}
	}
	for _, tag := range m.Tags {
		for _, junk := range junkTags {
			if tag == junk {
				return true
			}
		}
	}
	return false
}
