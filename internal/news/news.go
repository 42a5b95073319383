// Package news fetches prediction-market coverage from Google News RSS and
// writes the news sidebar document. Summaries come from the LLM collaborator
// when one is configured, with the article's own snippet as fallback.
package news

import (
	"context"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"

	"github.com/theprob/frontpage/internal/llm"
	"github.com/theprob/frontpage/internal/models"
)

const (
	gnewsBase = "https://news.google.com/rss/search"

	// MaxArticles caps the stored article list; HomepageCount of those
	// surface on the front page.
	MaxArticles   = 12
	HomepageCount = 3

	perQueryLimit  = 15
	summaryTokens  = 120
	summaryTimeout = 20 * time.Second
)

// SearchQueries are run in priority order and merged.
var SearchQueries = []string{
	"Polymarket prediction market",
	"Kalshi prediction market",
	"prediction markets news",
}

// Article is one news item as stored in the sidebar document.
type Article struct {
	Title       string `json:"title"`
	URL         string `json:"url"`
	Source      string `json:"source"`
	PubISO      string `json:"pub_iso"`
	PubDisplay  string `json:"pub_display"`
	Description string `json:"description"`
	Summary     string `json:"summary"`
}

// Document is the persisted news.json layout.
type Document struct {
	Updated       string    `json:"updated"`
	UpdatedISO    string    `json:"updated_iso"`
	HomepageCount int       `json:"homepage_count"`
	Articles      []Article `json:"articles"`
}

// rss mirrors the Google News feed shape.
type rss struct {
	Channel struct {
		Items []rssItem `xml:"item"`
	} `xml:"channel"`
}

type rssItem struct {
	Title       string `xml:"title"`
	Link        string `xml:"link"`
	PubDate     string `xml:"pubDate"`
	Description string `xml:"description"`
}

var htmlTagRe = regexp.MustCompile(`<[^>]+>`)
var spaceRe = regexp.MustCompile(`\s+`)

// Fetcher pulls the RSS queries and assembles the news document.
type Fetcher struct {
	http *resty.Client
	llm  *llm.Client
	path string
}

// NewFetcher creates a fetcher that writes to path. A nil LLM client means
// snippet-only summaries.
func NewFetcher(client *llm.Client, path string, timeout time.Duration) *Fetcher {
	httpClient := resty.New().
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0").
		SetRetryCount(2).
		SetRetryWaitTime(1 * time.Second)

	return &Fetcher{http: httpClient, llm: client, path: path}
}

// Refresh fetches all queries, dedups, summarizes, and writes the document.
func (f *Fetcher) Refresh(ctx context.Context) error {
	cached := f.loadCachedSummaries()

	var batches [][]Article
	for _, q := range SearchQueries {
		batch, err := f.fetchQuery(ctx, q)
		if err != nil {
			log.Warn().Err(err).Str("query", q).Msg("News query failed")
			continue
		}
		log.Debug().Str("query", q).Int("articles", len(batch)).Msg("Fetched news query")
		batches = append(batches, batch)
	}

	articles := mergeAndDedup(batches)
	if len(articles) == 0 {
		return fmt.Errorf("no news articles fetched")
	}
	if len(articles) > MaxArticles {
		articles = articles[:MaxArticles]
	}

	for i := range articles {
		a := &articles[i]
		if s, ok := cached[a.URL]; ok {
			a.Summary = s
		} else {
			a.Summary = f.summarize(ctx, *a)
		}
		a.PubDisplay = formatPubDate(a.PubISO)
	}

	now := time.Now().UTC()
	doc := Document{
		Updated:       models.FormatUpdated(now),
		UpdatedISO:    now.Format(time.RFC3339),
		HomepageCount: HomepageCount,
		Articles:      articles,
	}

	if err := f.write(doc); err != nil {
		return err
	}
	log.Info().Int("articles", len(articles)).Str("path", f.path).Msg("Wrote news document")
	return nil
}

// fetchQuery pulls one RSS query and parses its items.
func (f *Fetcher) fetchQuery(ctx context.Context, query string) ([]Article, error) {
	resp, err := f.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"q":    query,
			"hl":   "en-US",
			"gl":   "US",
			"ceid": "US:en",
		}).
		Get(gnewsBase)
	if err != nil {
		return nil, fmt.Errorf("fetch rss: %w", err)
	}
	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("rss returned status %d", resp.StatusCode())
	}

	var feed rss
	if err := xml.Unmarshal(resp.Body(), &feed); err != nil {
		return nil, fmt.Errorf("parse rss: %w", err)
	}

	items := feed.Channel.Items
	if len(items) > perQueryLimit {
		items = items[:perQueryLimit]
	}

	var articles []Article
	for _, item := range items {
		title := strings.TrimSpace(item.Title)
		link := strings.TrimSpace(item.Link)
		if title == "" || link == "" {
			continue
		}

		desc := htmlTagRe.ReplaceAllString(item.Description, " ")
		desc = strings.TrimSpace(spaceRe.ReplaceAllString(desc, " "))

		// Google News appends " - Source Name" to titles.
		source := ""
		if idx := strings.LastIndex(title, " - "); idx > 0 {
			source = strings.TrimSpace(title[idx+3:])
			title = strings.TrimSpace(title[:idx])
		}

		pubISO := time.Now().UTC().Format(time.RFC3339)
		if t, err := time.Parse(time.RFC1123, item.PubDate); err == nil {
			pubISO = t.UTC().Format(time.RFC3339)
		} else if t, err := time.Parse(time.RFC1123Z, item.PubDate); err == nil {
			pubISO = t.UTC().Format(time.RFC3339)
		}

		articles = append(articles, Article{
			Title:       title,
			URL:         link,
			Source:      source,
			PubISO:      pubISO,
			Description: desc,
		})
	}
	return articles, nil
}

// mergeAndDedup merges batches in query-priority order, drops duplicate
// URLs, and sorts newest first.
func mergeAndDedup(batches [][]Article) []Article {
	seen := make(map[string]bool)
	var merged []Article
	for _, batch := range batches {
		for _, a := range batch {
			if seen[a.URL] {
				continue
			}
			seen[a.URL] = true
			merged = append(merged, a)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].PubISO > merged[j].PubISO
	})
	return merged
}

// summarize writes a 2-sentence summary, or falls back to the snippet.
func (f *Fetcher) summarize(ctx context.Context, a Article) string {
	if f.llm == nil {
		return snippetFallback(a.Description)
	}

	prompt := fmt.Sprintf(
		"Article title: %s\n\nArticle snippet: %s\n\n"+
			"Write exactly 2 sentences summarizing this article for The Prob newsletter. "+
			"Sentence 1: what happened. Sentence 2: why it matters for prediction markets or bettors. "+
			"No quotes. No intro phrases like 'This article' or 'The piece'. Just the two sentences.",
		a.Title, a.Description)

	callCtx, cancel := context.WithTimeout(ctx, summaryTimeout)
	defer cancel()

	summary, err := f.llm.Complete(callCtx, prompt, summaryTokens)
	if err != nil || summary == "" {
		log.Warn().Err(err).Str("title", a.Title).Msg("Summary generation failed, using snippet")
		return snippetFallback(a.Description)
	}
	return summary
}

func snippetFallback(desc string) string {
	if len(desc) > 180 {
		return desc[:180] + "..."
	}
	return desc
}

// formatPubDate renders "Feb 22", adding the year when it is not current.
func formatPubDate(iso string) string {
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		return ""
	}
	if t.Year() == time.Now().UTC().Year() {
		return fmt.Sprintf("%s %d", t.Format("Jan"), t.Day())
	}
	return fmt.Sprintf("%s %d, %d", t.Format("Jan"), t.Day(), t.Year())
}

// loadCachedSummaries reads summaries from the previous document so already
// covered articles are not re-summarized.
func (f *Fetcher) loadCachedSummaries() map[string]string {
	cached := make(map[string]string)
	data, err := os.ReadFile(f.path)
	if err != nil {
		return cached
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return cached
	}
	for _, a := range doc.Articles {
		if a.URL != "" && a.Summary != "" {
			cached[a.URL] = a.Summary
		}
	}
	log.Debug().Int("cached", len(cached)).Msg("Loaded cached news summaries")
	return cached
}

// write persists the document with an atomic rename.
func (f *Fetcher) write(doc Document) error {
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal news: %w", err)
	}

	dir := filepath.Dir(f.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create news dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".news-*.json")
	if err != nil {
		return fmt.Errorf("create temp news file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp news file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp news file: %w", err)
	}
	if err := os.Rename(tmpName, f.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace news file: %w", err)
	}
	return nil
}

// Load returns the current news document, for serving over the API.
func (f *Fetcher) Load() (*Document, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read news: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse news: %w", err)
	}
	return &doc, nil
}
