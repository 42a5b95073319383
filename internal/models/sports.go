package models

// SportsTickerPrefixes are Kalshi series prefixes for league markets. A
// ticker beginning with one of these is a sports market regardless of what
// the question text says.
var SportsTickerPrefixes = []string{
	"KXNFL", "KXNBA", "KXMLB", "KXNHL", "KXNCAA",
	"KXUFC", "KXEPL", "KXUCL", "KXLALIGA", "KXSERIEA",
	"KXATP", "KXWTA", "KXPGA", "KXF1", "KXNASCAR",
}

// SportsKeywords are lowercase substrings that mark a question as sports.
// Includes league names, major events, and the "X vs. Y" phrasing.
var SportsKeywords = []string{
	"nfl", "nba", "mlb", "nhl", "ncaa", "ufc", "premier league",
	"champions league", "la liga", "serie a", "bundesliga", "mls",
	"super bowl", "world series", "stanley cup", "world cup",
	"march madness", "final four", "playoffs", "grand slam",
	"wimbledon", "us open", "masters", "heisman", "olympic",
	"formula 1", "grand prix", "vs",
}
