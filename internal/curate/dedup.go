package curate

import (
	"math"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/theprob/frontpage/internal/models"
	"github.com/theprob/frontpage/internal/normalize"
)

// Series-key suffix strippers. Applied repeatedly so stacked suffixes
// ("-above-100k-march-7") all come off.
var (
	seriesDateRe = regexp.MustCompile(`(?:[-_](?:by|on|in|before))?[-_](?:jan(?:uary)?|feb(?:ruary)?|mar(?:ch)?|apr(?:il)?|may|june?|july?|aug(?:ust)?|sep(?:t|tember)?|oct(?:ober)?|nov(?:ember)?|dec(?:ember)?)(?:[-_]?\d{1,2})?$|[-_]20\d\d$|[-_]q[1-4]$`)

	seriesBandRe = regexp.MustCompile(`[-_](?:above|below|over|under|between|at)[-_]?\$?\d+(?:[.,]\d+)?[kmb]?(?:[-_](?:and[-_])?\$?\d+(?:[.,]\d+)?[kmb]?)?$|[-_]\$?\d+(?:[.,]\d+)?[kmb]$`)

	seriesDirectionRe = regexp.MustCompile(`[-_](?:up[-_]or[-_]down|up|down|higher|lower|rise|rises|fall|falls|increase|decrease|hit|hits|reach|reaches)$`)
)

// SeriesKey collapses contracts that are date, price-band, or direction
// variants of one market. When the feed already groups contracts under a
// parent event, that grouping wins. Keys always incorporate the source
// because identifiers are only unique per feed.
func SeriesKey(m models.Market) string {
	if m.EventID != "" {
		return string(m.Source) + ":" + m.EventID
	}
	id := strings.ToLower(m.ID)
	for {
		stripped := seriesDateRe.ReplaceAllString(id, "")
		stripped = seriesBandRe.ReplaceAllString(stripped, "")
		stripped = seriesDirectionRe.ReplaceAllString(stripped, "")
		if stripped == id || stripped == "" {
			break
		}
		id = stripped
	}
	return string(m.Source) + ":" + id
}

// topicStopwords are structural words removed before fingerprinting a
// question.
var topicStopwords = map[string]bool{
	"will": true, "the": true, "a": true, "an": true, "to": true,
	"of": true, "in": true, "on": true, "at": true, "by": true,
	"be": true, "is": true, "are": true, "and": true, "or": true,
	"for": true, "before": true, "after": true, "than": true,
	"with": true, "from": true, "does": true, "do": true, "did": true,
	"what": true, "who": true, "how": true, "many": true, "much": true,
	"over": true, "under": true, "above": true, "below": true,
	"it": true, "its": true, "this": true, "that": true, "there": true,
	"any": true, "more": true, "least": true, "end": true,
}

// coalitionRe collapses "X or Y" actor phrasings to the first actor so that
// "US or Israel strike" and "US strike" fingerprint identically.
var coalitionRe = regexp.MustCompile(`\b(us|usa|united states|israel|russia|china|iran|ukraine|nato)(?: or (?:the )?(?:us|usa|united states|israel|russia|china|iran|ukraine|nato))+\b`)

// topicWordCount is how many content words make up a topic fingerprint.
const topicWordCount = 4

// TopicKey builds the coarse fingerprint used by hero selection. It merges
// paraphrased questions about the same real-world event: date phrases go,
// stopwords go, coalition phrasing and plural/tense suffixes are
// normalized, and the first four remaining content words, sorted, form the
// key.
func TopicKey(m models.Market) string {
	q := normalize.StripDatePhrases(m.Question)
	q = coalitionRe.ReplaceAllString(q, "$1")

	var words []string
	for _, w := range strings.Fields(foldQuestion(q)) {
		w = stemWord(w)
		if w == "" || topicStopwords[w] {
			continue
		}
		words = append(words, w)
		if len(words) == topicWordCount {
			break
		}
	}

	sort.Strings(words)
	return strings.Join(words, " ")
}

// stemWord strips a trailing plural/third-person "s" so "strikes" and
// "strike" compare equal. Short words and -ss words are left alone.
func stemWord(w string) string {
	if len(w) > 3 && strings.HasSuffix(w, "s") && !strings.HasSuffix(w, "ss") {
		return w[:len(w)-1]
	}
	return w
}

// CollapseBySeries keeps the highest-scoring member of each series group,
// preserving input order of the winners. Idempotent: collapsing an already
// collapsed list changes nothing.
func CollapseBySeries(markets []models.Market, now time.Time) []models.Market {
	best := make(map[string]int)
	for i, m := range markets {
		k := SeriesKey(m)
		j, ok := best[k]
		if !ok || Score(m, now) > Score(markets[j], now) {
			best[k] = i
		}
	}

	out := make([]models.Market, 0, len(best))
	for i, m := range markets {
		if best[SeriesKey(m)] == i {
			out = append(out, m)
		}
	}
	return out
}

// CollapseByTopic keeps one variant per topic group: the one with the
// larger absolute change, ties broken by the higher score under rank.
func CollapseByTopic(markets []models.Market, rank func(models.Market) float64) []models.Market {
	best := make(map[string]int)
	for i, m := range markets {
		k := TopicKey(m)
		j, ok := best[k]
		if !ok {
			best[k] = i
			continue
		}
		cur := markets[j]
		if math.Abs(m.ChangePts) > math.Abs(cur.ChangePts) ||
			(math.Abs(m.ChangePts) == math.Abs(cur.ChangePts) && rank(m) > rank(cur)) {
			best[k] = i
		}
	}

	out := make([]models.Market, 0, len(best))
	for i, m := range markets {
		if best[TopicKey(m)] == i {
			out = append(out, m)
		}
	}
	return out
}
