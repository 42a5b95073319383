package curate

import (
	"regexp"
	"strings"

	"github.com/theprob/frontpage/internal/models"
)

// gameDayRe matches single-game phrasing like "Will the Lakers win on Mar
// 7?", which identifies routine game markets even without a league keyword.
var gameDayRe = regexp.MustCompile(`(?i)^will .+ win on (?:jan|feb|mar|apr|may|jun|jul|aug|sep|oct|nov|dec|\d{1,2}/)`)

// IsSportsMarket reports whether a market is sports. The flag is separate
// from the display category because selection applies both a category quota
// and an extra volume floor to sports.
func IsSportsMarket(m models.Market) bool {
	for _, tag := range m.Tags {
		if tag == "sports" {
			return true
		}
		if cat, ok := models.PolymarketTagCategories[tag]; ok && cat == models.CategorySports {
			return true
		}
		if cat, ok := models.KalshiCategoryCategories[tag]; ok && cat == models.CategorySports {
			return true
		}
	}

	id := strings.ToUpper(m.ID)
	for _, prefix := range models.SportsTickerPrefixes {
		if strings.HasPrefix(id, prefix) {
			return true
		}
	}

	if gameDayRe.MatchString(m.Question) {
		return true
	}

	q := foldQuestion(m.Question)
	for _, kw := range models.SportsKeywords {
		if containsWord(q, kw) {
			return true
		}
	}
	return false
}
