package curate

import (
	"github.com/theprob/frontpage/internal/models"
)

// Classify assigns the display category for a market. Priority: the
// source's own taxonomy (first matching tag wins, in feed order), then the
// sports heuristic, then keyword lists in fixed order, then World. Callers
// cache the result on the record; quotas depend on it staying stable
// within a run.
func Classify(m models.Market) models.Category {
	if cat, ok := categoryFromTags(m); ok {
		return cat
	}

	if IsSportsMarket(m) {
		return models.CategorySports
	}

	q := foldQuestion(m.Question)
	for _, cat := range models.ClassifierOrder {
		for _, kw := range models.CategoryKeywords[cat] {
			if containsWord(q, kw) {
				return cat
			}
		}
	}

	return models.CategoryWorld
}

func categoryFromTags(m models.Market) (models.Category, bool) {
	table := models.PolymarketTagCategories
	if m.Source == models.SourceKalshi {
		table = models.KalshiCategoryCategories
	}
	for _, tag := range m.Tags {
		if cat, ok := table[tag]; ok {
			return cat, true
		}
	}
	return "", false
}
