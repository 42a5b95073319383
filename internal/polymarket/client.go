// Package polymarket provides a client for Polymarket's Gamma API, the
// richer metadata surface for active markets.
package polymarket

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog/log"
)

const (
	GammaAPIBase = "https://gamma-api.polymarket.com"

	// PageLimit is the Gamma per-request cap we use; PageCap bounds how many
	// pages one run will pull.
	PageLimit = 100
	PageCap   = 5
)

// Client provides access to the Gamma API.
type Client struct {
	gamma *resty.Client
}

// NewClient creates a new Polymarket client.
func NewClient(timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		gamma: resty.New().
			SetBaseURL(GammaAPIBase).
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(1 * time.Second),
	}
}

// JSONStringArray handles fields that come as JSON-encoded strings.
type JSONStringArray []string

func (j *JSONStringArray) UnmarshalJSON(data []byte) error {
	// Try to unmarshal as a regular array first
	var arr []string
	if err := json.Unmarshal(data, &arr); err == nil {
		*j = arr
		return nil
	}

	// Try to unmarshal as a string containing a JSON array
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}

	if str == "" {
		*j = []string{}
		return nil
	}

	if err := json.Unmarshal([]byte(str), &arr); err != nil {
		return err
	}
	*j = arr
	return nil
}

// Market is the raw Gamma market record, limited to the fields the
// normalizer consumes.
type Market struct {
	ID                string          `json:"id"`
	Question          string          `json:"question"`
	Slug              string          `json:"slug"`
	EndDate           string          `json:"endDate"`
	EndDateISO        string          `json:"endDateIso"`
	Outcomes          JSONStringArray `json:"outcomes"`
	OutcomePrices     JSONStringArray `json:"outcomePrices"`
	VolumeNum         float64         `json:"volumeNum"`
	Volume24hr        float64         `json:"volume24hr"`
	LiquidityNum      float64         `json:"liquidityNum"`
	OneDayPriceChange float64         `json:"oneDayPriceChange"`
	Active            bool            `json:"active"`
	Closed            bool            `json:"closed"`

	// Computed from OutcomePrices after decode.
	YesPrice float64 `json:"-"`
}

// Event groups related markets under one parent with shared taxonomy tags.
type Event struct {
	ID         string   `json:"id"`
	Title      string   `json:"title"`
	Slug       string   `json:"slug"`
	EndDate    string   `json:"endDate"`
	Volume     float64  `json:"volume"`
	Volume24hr float64  `json:"volume24hr"`
	Markets    []Market `json:"markets"`
	Tags       []Tag    `json:"tags"`
}

// Tag is a taxonomy label attached to an event.
type Tag struct {
	ID    string `json:"id"`
	Label string `json:"label"`
	Slug  string `json:"slug"`
}

// EventFilters represents filters for event queries.
type EventFilters struct {
	Active    *bool
	Closed    *bool
	Limit     int
	Offset    int
	Order     string
	Ascending bool
}

// GetEvents retrieves one page of events from the Gamma API.
func (c *Client) GetEvents(ctx context.Context, filters EventFilters) ([]Event, error) {
	params := url.Values{}

	if filters.Active != nil {
		params.Set("active", strconv.FormatBool(*filters.Active))
	}
	if filters.Closed != nil {
		params.Set("closed", strconv.FormatBool(*filters.Closed))
	}
	if filters.Limit > 0 {
		params.Set("limit", strconv.Itoa(filters.Limit))
	}
	if filters.Offset > 0 {
		params.Set("offset", strconv.Itoa(filters.Offset))
	}
	if filters.Order != "" {
		params.Set("order", filters.Order)
		// Gamma defaults to ascending=true, so always pin it when ordering.
		params.Set("ascending", strconv.FormatBool(filters.Ascending))
	}

	log.Debug().
		Str("endpoint", "/events").
		Str("params", params.Encode()).
		Msg("Fetching events from Gamma API")

	resp, err := c.gamma.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params).
		Get("/events")

	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, fmt.Errorf("events API returned %d: %s", resp.StatusCode(), resp.String())
	}

	var events []Event
	if err := json.Unmarshal(resp.Body(), &events); err != nil {
		return nil, fmt.Errorf("failed to parse events: %w", err)
	}

	for i := range events {
		for j := range events[i].Markets {
			m := &events[i].Markets[j]
			if len(m.OutcomePrices) > 0 {
				m.YesPrice, _ = strconv.ParseFloat(m.OutcomePrices[0], 64)
			}
		}
	}

	return events, nil
}

// GetTopEvents pages through active events ordered by 24h volume, up to
// PageCap pages. A mid-pagination failure returns what was fetched so far.
func (c *Client) GetTopEvents(ctx context.Context) ([]Event, error) {
	active := true
	closed := false

	var all []Event
	for page := 0; page < PageCap; page++ {
		batch, err := c.GetEvents(ctx, EventFilters{
			Active:    &active,
			Closed:    &closed,
			Limit:     PageLimit,
			Offset:    page * PageLimit,
			Order:     "volume24hr",
			Ascending: false,
		})
		if err != nil {
			if len(all) > 0 {
				log.Warn().Err(err).Int("page", page).Msg("Polymarket pagination stopped early")
				return all, nil
			}
			return nil, err
		}
		all = append(all, batch...)
		if len(batch) < PageLimit {
			break
		}
	}

	log.Debug().Int("count", len(all)).Msg("Fetched Polymarket events")
	return all, nil
}
