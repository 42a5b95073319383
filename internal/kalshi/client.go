// Package kalshi provides a client for the Kalshi Trade API v2 market list.
package kalshi

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
	APIBase     = "https://api.elections.kalshi.com/trade-api/v2"
	marketsPath = "/trade-api/v2/markets"

	PageLimit = 100
	PageCap   = 5
)

// Client talks to the Kalshi Trade API. Credentials are optional; without
// them requests go out unsigned.
type Client struct {
	http  *resty.Client
	creds *Credentials
}

// NewClient builds a configured Kalshi API client.
func NewClient(creds *Credentials, timeout time.Duration) *Client {
	if timeout == 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		http: resty.New().
			SetBaseURL(APIBase).
			SetTimeout(timeout).
			SetRetryCount(2).
			SetRetryWaitTime(1 * time.Second),
		creds: creds,
	}
}

// Market is the raw Kalshi market record. Prices are cents (0-100), volume
// is in cents of notional.
type Market struct {
	Ticker          string  `json:"ticker"`
	EventTicker     string  `json:"event_ticker"`
	Title           string  `json:"title"`
	Subtitle        string  `json:"subtitle"`
	Category        string  `json:"category"`
	Status          string  `json:"status"`
	YesBid          float64 `json:"yes_bid"`
	YesAsk          float64 `json:"yes_ask"`
	PreviousYesBid  float64 `json:"previous_yes_bid"`
	PreviousYesAsk  float64 `json:"previous_yes_ask"`
	Volume          float64 `json:"volume"`
	Volume24h       float64 `json:"volume_24h"`
	OpenInterest    float64 `json:"open_interest"`
	CloseTime       string  `json:"close_time"`
	ExpirationTime  string  `json:"expiration_time"`
}

type marketsResponse struct {
	Markets []Market `json:"markets"`
	Cursor  string   `json:"cursor"`
}

// GetOpenMarkets pages through open markets, cursor-based, up to PageCap
// pages. A mid-pagination failure returns what was fetched so far.
func (c *Client) GetOpenMarkets(ctx context.Context) ([]Market, error) {
	var all []Market
	cursor := ""

	for page := 0; page < PageCap; page++ {
		batch, next, err := c.getMarketsPage(ctx, cursor)
		if err != nil {
			if len(all) > 0 {
				log.Warn().Err(err).Int("page", page).Msg("Kalshi pagination stopped early")
				return all, nil
			}
			return nil, err
		}
		all = append(all, batch...)
		if next == "" {
			break
		}
		cursor = next
	}

	log.Debug().Int("count", len(all)).Msg("Fetched Kalshi markets")
	return all, nil
}

func (c *Client) getMarketsPage(ctx context.Context, cursor string) ([]Market, string, error) {
	params := url.Values{}
	params.Set("limit", strconv.Itoa(PageLimit))
	params.Set("status", "open")
	if cursor != "" {
		params.Set("cursor", cursor)
	}

	req := c.http.R().
		SetContext(ctx).
		SetQueryParamsFromValues(params)

	if c.creds != nil {
		headers, err := c.creds.SignRequest("GET", marketsPath)
		if err != nil {
			return nil, "", fmt.Errorf("sign markets request: %w", err)
		}
		req.SetHeaders(headers)
	}

	resp, err := req.Get("/markets")
	if err != nil {
		return nil, "", fmt.Errorf("failed to fetch markets: %w", err)
	}

	if resp.StatusCode() != 200 {
		return nil, "", fmt.Errorf("markets API returned %d: %s", resp.StatusCode(), resp.String())
	}

	var out marketsResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, "", fmt.Errorf("failed to parse markets: %w", err)
	}

	return out.Markets, out.Cursor, nil
}
