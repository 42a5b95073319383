package models

import (
	"fmt"
	"time"
)

// Source identifies which upstream feed a market came from.
type Source string

const (
	SourcePolymarket Source = "Polymarket"
	SourceKalshi     Source = "Kalshi"
)

// Direction tags the sign of a market's trailing change.
type Direction string

const (
	DirectionUp      Direction = "up"
	DirectionDown    Direction = "down"
	DirectionNeutral Direction = "neutral"
)

// DirectionDeadband is the probability-point band around zero inside which a
// change is displayed as neutral.
const DirectionDeadband = 0.5

// DirectionFor maps a change in probability points to a display direction.
func DirectionFor(changePts float64) Direction {
	switch {
	case changePts > DirectionDeadband:
		return DirectionUp
	case changePts < -DirectionDeadband:
		return DirectionDown
	default:
		return DirectionNeutral
	}
}

// Market is the canonical market record produced by the normalizer. All
// probabilities and changes are in 0-100 points regardless of how the
// upstream feed quotes prices; conversion happens before a Market exists,
// so nothing downstream branches on Source for numeric semantics.
type Market struct {
	Source   Source `json:"source" bson:"source"`
	Question string `json:"question" bson:"question"`

	// ID is the upstream identifier (Polymarket slug, Kalshi ticker).
	// Unique within a source, not across sources.
	ID  string `json:"slug" bson:"slug"`
	URL string `json:"url" bson:"url"`

	// EventID is the upstream parent-event grouping key when the source
	// provides one. Empty for feeds that list markets flat.
	EventID string `json:"event_id,omitempty" bson:"event_id,omitempty"`

	Probability float64   `json:"prob" bson:"prob"`
	ChangePts   float64   `json:"change_pts" bson:"change_pts"`
	Direction   Direction `json:"direction" bson:"direction"`

	Volume    float64 `json:"volume" bson:"volume"`
	VolumeFmt string  `json:"volume_fmt" bson:"volume_fmt"`
	Volume24h float64 `json:"volume_24h" bson:"volume_24h"`
	Liquidity float64 `json:"liquidity" bson:"liquidity"`

	// EndDate is the short display form ("Mar 19"); EndDateRaw keeps the
	// machine-parsable timestamp from the feed.
	EndDate    string `json:"end_date" bson:"end_date"`
	EndDateRaw string `json:"end_date_raw,omitempty" bson:"end_date_raw,omitempty"`

	// Category is assigned once by the classifier and read downstream,
	// never recomputed. IsSports is a cross-cutting flag independent of
	// Category because selection applies extra volume floors to sports.
	Category Category `json:"category" bson:"category"`
	IsSports bool     `json:"is_sports" bson:"is_sports"`

	// Tags are lowercase taxonomy labels carried from the source.
	Tags []string `json:"tags,omitempty" bson:"tags,omitempty"`

	// Take is editorial copy filled by the content generator. Empty until
	// enrichment runs; the generator substitutes templated text when the
	// LLM collaborator is absent.
	Take string `json:"take,omitempty" bson:"take,omitempty"`
}

// SelectionResult is the output of one full pipeline run. Hero may be nil
// when no candidate clears the eligibility bar.
type SelectionResult struct {
	Hero        *Market   `json:"hero" bson:"hero"`
	Movers      []Market  `json:"movers" bson:"movers"`
	Ticker      []Market  `json:"ticker" bson:"ticker"`
	Catalog     []Market  `json:"catalog" bson:"catalog"`
	GeneratedAt time.Time `json:"generated_at" bson:"generated_at"`
}

// FormatVolume renders a dollar volume as $1.2M / $450K.
func FormatVolume(v float64) string {
	switch {
	case v >= 1_000_000:
		return fmt.Sprintf("$%.1fM", v/1_000_000)
	case v >= 1_000:
		return fmt.Sprintf("$%.0fK", v/1_000)
	default:
		return fmt.Sprintf("$%.0f", v)
	}
}

// FormatEndDate turns an RFC3339 timestamp into "Mar 19". Unparsable input
// falls back to its date prefix.
func FormatEndDate(iso string) string {
	if iso == "" {
		return ""
	}
	t, err := time.Parse(time.RFC3339, iso)
	if err != nil {
		if len(iso) > 10 {
			return iso[:10]
		}
		return iso
	}
	return fmt.Sprintf("%s %d", t.Format("Jan"), t.Day())
}

// FormatUpdated renders the display timestamp shown on the page, in ET.
func FormatUpdated(t time.Time) string {
	et := t.UTC().Add(-5 * time.Hour)
	h := et.Hour() % 12
	if h == 0 {
		h = 12
	}
	meridiem := "AM"
	if et.Hour() >= 12 {
		meridiem = "PM"
	}
	return fmt.Sprintf("%s %d, %d · %d:%02d %s ET",
		et.Format("Jan"), et.Day(), et.Year(), h, et.Minute(), meridiem)
}
