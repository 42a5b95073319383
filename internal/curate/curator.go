package curate

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/theprob/frontpage/internal/kalshi"
	"github.com/theprob/frontpage/internal/models"
	"github.com/theprob/frontpage/internal/normalize"
	"github.com/theprob/frontpage/internal/polymarket"
)

// MinVolumeUSD is the floor below which a market is too thin to consider.
const MinVolumeUSD = 50_000

// ErrNoData means both feeds came back empty. The run must not overwrite
// the last good artifact in that case.
var ErrNoData = errors.New("no markets fetched from any source")

// Curator runs the full selection pipeline against both upstream feeds.
type Curator struct {
	poly *polymarket.Client
	kal  *kalshi.Client
}

// NewCurator creates a curator over the two feed clients.
func NewCurator(poly *polymarket.Client, kal *kalshi.Client) *Curator {
	return &Curator{poly: poly, kal: kal}
}

// Run fetches both feeds, builds the selection, and returns it.
// priorTopicKey is yesterday's hero topic fingerprint (empty for none).
// One feed failing is survivable; both empty is fatal for the run.
func (c *Curator) Run(ctx context.Context, priorTopicKey string) (*models.SelectionResult, error) {
	pool := c.fetchPool(ctx)
	if len(pool) == 0 {
		return nil, ErrNoData
	}
	return BuildSelection(pool, priorTopicKey, time.Now().UTC()), nil
}

// fetchPool pulls both feeds concurrently and normalizes them. A failed
// feed contributes an empty list; the run proceeds with the other.
func (c *Curator) fetchPool(ctx context.Context) []models.Market {
	var (
		wg         sync.WaitGroup
		polyPool   []models.Market
		kalshiPool []models.Market
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		events, err := c.poly.GetTopEvents(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Polymarket fetch failed")
			return
		}
		polyPool = normalize.PolymarketMarkets(events)
	}()
	go func() {
		defer wg.Done()
		raw, err := c.kal.GetOpenMarkets(ctx)
		if err != nil {
			log.Warn().Err(err).Msg("Kalshi fetch failed")
			return
		}
		kalshiPool = normalize.KalshiMarkets(raw)
	}()
	wg.Wait()

	log.Info().
		Int("polymarket", len(polyPool)).
		Int("kalshi", len(kalshiPool)).
		Msg("Fetched market pool")

	return append(polyPool, kalshiPool...)
}

// BuildSelection is the pure selection pipeline over an already-normalized
// pool: quality filter, classification, catalog, then the three
// allocators. Everything here is deterministic given pool, prior key, and
// now.
func BuildSelection(pool []models.Market, priorTopicKey string, now time.Time) *models.SelectionResult {
	catalog := make([]models.Market, 0, len(pool))
	for _, m := range pool {
		if m.Volume < MinVolumeUSD {
			continue
		}
		if IsResolved(m) || IsJunk(m) {
			continue
		}
		// Classification happens exactly once; quotas downstream depend on
		// the cached value staying put.
		m.IsSports = IsSportsMarket(m)
		m.Category = Classify(m)
		catalog = append(catalog, m)
	}

	sort.SliceStable(catalog, func(i, j int) bool {
		return Score(catalog[i], now) > Score(catalog[j], now)
	})

	hero := PickHero(catalog, priorTopicKey, now)
	movers := PickMovers(catalog, hero, now)
	ticker := PickTicker(catalog, now)

	heroQuestion := "none"
	if hero != nil {
		heroQuestion = hero.Question
	}
	log.Info().
		Int("catalog", len(catalog)).
		Int("movers", len(movers)).
		Int("ticker", len(ticker)).
		Str("hero", heroQuestion).
		Msg("Selection built")

	return &models.SelectionResult{
		Hero:        hero,
		Movers:      movers,
		Ticker:      ticker,
		Catalog:     catalog,
		GeneratedAt: now,
	}
}
