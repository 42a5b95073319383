// Package models defines the canonical market record and the static
// classification tables for The Prob front page.
package models

// Category is the coarse display category shown on the front page.
type Category string

const (
	CategoryPolitics   Category = "Politics"
	CategoryFinance    Category = "Finance"
	CategoryTechnology Category = "Technology"
	CategoryCrypto     Category = "Crypto"
	CategorySports     Category = "Sports"
	CategoryCulture    Category = "Culture"
	CategoryWorld      Category = "World"
)

// Categories lists every display category in page order.
var Categories = []Category{
	CategoryPolitics,
	CategoryFinance,
	CategoryTechnology,
	CategoryCrypto,
	CategorySports,
	CategoryCulture,
	CategoryWorld,
}

// PolymarketTagCategories maps Polymarket taxonomy tag slugs to display
// categories. First matching tag wins, in the order the feed supplied them.
var PolymarketTagCategories = map[string]Category{
	"politics":      CategoryPolitics,
	"elections":     CategoryPolitics,
	"us-politics":   CategoryPolitics,
	"geopolitics":   CategoryWorld,
	"world":         CategoryWorld,
	"middle-east":   CategoryWorld,
	"ukraine":       CategoryWorld,
	"business":      CategoryFinance,
	"economy":       CategoryFinance,
	"finance":       CategoryFinance,
	"fed":           CategoryFinance,
	"stocks":        CategoryFinance,
	"tech":          CategoryTechnology,
	"ai":            CategoryTechnology,
	"science":       CategoryTechnology,
	"crypto":        CategoryCrypto,
	"bitcoin":       CategoryCrypto,
	"ethereum":      CategoryCrypto,
	"sports":        CategorySports,
	"nfl":           CategorySports,
	"nba":           CategorySports,
	"mlb":           CategorySports,
	"nhl":           CategorySports,
	"soccer":        CategorySports,
	"pop-culture":   CategoryCulture,
	"culture":       CategoryCulture,
	"entertainment": CategoryCulture,
	"movies":        CategoryCulture,
	"music":         CategoryCulture,
}

// KalshiCategoryCategories maps Kalshi's first-party category labels
// (lowercased) to display categories.
var KalshiCategoryCategories = map[string]Category{
	"politics":               CategoryPolitics,
	"elections":              CategoryPolitics,
	"economics":              CategoryFinance,
	"financials":             CategoryFinance,
	"companies":              CategoryFinance,
	"crypto":                 CategoryCrypto,
	"science and technology": CategoryTechnology,
	"climate and weather":    CategoryWorld,
	"world":                  CategoryWorld,
	"entertainment":          CategoryCulture,
	"sports":                 CategorySports,
}

// ClassifierOrder fixes the priority in which keyword lists are tested so a
// question matching several lists resolves deterministically.
var ClassifierOrder = []Category{
	CategoryPolitics,
	CategoryFinance,
	CategoryTechnology,
	CategoryCrypto,
	CategoryCulture,
}

// CategoryKeywords drives keyword classification when the source carries no
// usable taxonomy. Keys are lowercase substrings matched against the
// question text.
var CategoryKeywords = map[Category][]string{
	CategoryPolitics: {
		"president", "election", "senate", "congress", "house of",
		"governor", "mayor", "nominee", "nomination", "impeach",
		"cabinet", "supreme court", "legislation", "executive order",
		"government shutdown", "trump", "vance", "democrat", "republican",
		"primary", "ballot", "veto", "pardon",
	},
	CategoryFinance: {
		"fed ", "federal reserve", "interest rate", "rate cut", "rate hike",
		"inflation", "cpi", "gdp", "recession", "jobs report",
		"unemployment", "s&p", "nasdaq", "dow", "stock", "ipo",
		"acquisition", "merger", "earnings", "treasury", "tariff",
	},
	CategoryTechnology: {
		"openai", "gpt", "chatgpt", "anthropic", "claude", "gemini",
		"artificial intelligence", " ai ", "agi", "spacex", "starship",
		"nasa", "apple", "iphone", "google", "microsoft", "meta ",
		"nvidia", "tesla", "semiconductor", "chip",
	},
	CategoryCrypto: {
		"bitcoin", "btc", "ethereum", "eth ", "solana", "crypto",
		"stablecoin", "dogecoin", "xrp", "token", "blockchain",
		"coinbase", "binance",
	},
	CategoryCulture: {
		"oscar", "grammy", "emmy", "golden globe", "box office",
		"album", "movie", "film", "netflix", "taylor swift", "celebrity",
		"tiktok", "youtube", "spotify", "bachelor", "eurovision",
		"time person of the year",
	},
}

// CategoryBonus is the editorial tilt added to the hero score, largest for
// Politics and zero for Crypto. A big enough move overcomes any of these.
var CategoryBonus = map[Category]float64{
	CategoryPolitics:   2.0,
	CategoryWorld:      1.5,
	CategoryFinance:    1.2,
	CategoryTechnology: 1.0,
	CategoryCulture:    0.8,
	CategorySports:     0.5,
	CategoryCrypto:     0,
}
