package curate

import (
	"regexp"
	"strings"
)

var nonWordRe = regexp.MustCompile(`[^a-z0-9$&%]+`)

// foldQuestion lowercases a question, turns punctuation into spaces, and
// pads the ends so keyword lists can match on word boundaries with a plain
// substring check.
func foldQuestion(q string) string {
	s := nonWordRe.ReplaceAllString(strings.ToLower(q), " ")
	return " " + strings.TrimSpace(s) + " "
}

// containsWord reports whether the folded question contains the keyword on
// word boundaries. Keywords that already carry spaces are used as-is.
func containsWord(folded, kw string) bool {
	if !strings.HasPrefix(kw, " ") {
		kw = " " + kw
	}
	if !strings.HasSuffix(kw, " ") {
		kw = kw + " "
	}
	return strings.Contains(folded, kw)
}
