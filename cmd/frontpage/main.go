// The Prob front-page engine. Refreshes the curated market selection and
// the news sidebar on a schedule and serves both over HTTP.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/theprob/frontpage/internal/api"
	"github.com/theprob/frontpage/internal/config"
	"github.com/theprob/frontpage/internal/content"
	"github.com/theprob/frontpage/internal/curate"
	"github.com/theprob/frontpage/internal/kalshi"
	"github.com/theprob/frontpage/internal/llm"
	"github.com/theprob/frontpage/internal/news"
	"github.com/theprob/frontpage/internal/polymarket"
	"github.com/theprob/frontpage/internal/scheduler"
	"github.com/theprob/frontpage/internal/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("The Prob - Starting front-page engine")

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatal().Err(err).Msg("Invalid configuration")
	}

	ctx := context.Background()

	polyClient := polymarket.NewClient(cfg.FetchTimeout)
	kalshiClient := kalshi.NewClient(loadKalshiCredentials(cfg), cfg.FetchTimeout)

	var llmClient *llm.Client
	if cfg.LLMAPIKey != "" {
		llmClient = llm.NewClient(llm.Config{
			APIKey:   cfg.LLMAPIKey,
			Endpoint: cfg.LLMEndpoint,
			Model:    cfg.LLMModel,
		})
		log.Info().Str("model", cfg.LLMModel).Msg("LLM client initialized")
	} else {
		log.Warn().Msg("LLM client not initialized (no API key), using templated copy")
	}

	store := storage.NewArtifactStore(cfg.ArtifactPath)
	curator := curate.NewCurator(polyClient, kalshiClient)
	generator := content.NewGenerator(llmClient)
	newsFetcher := news.NewFetcher(llmClient, cfg.NewsPath, cfg.FetchTimeout)

	// The run archive is optional. The artifact file is the only state the
	// pipeline itself depends on.
	var archive *storage.Archive
	if cfg.ArchiveRuns {
		archive, err = storage.NewArchive(ctx, cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			log.Warn().Err(err).Msg("Run archive unavailable, continuing without it")
			archive = nil
		} else {
			defer archive.Close(ctx)
		}
	}

	refresh := func(ctx context.Context) error {
		priorTopicKey := ""
		if prior := store.LoadPriorHero(); prior != nil {
			priorTopicKey = curate.TopicKey(*prior)
		}

		result, err := curator.Run(ctx, priorTopicKey)
		if err != nil {
			return err
		}

		generator.Enrich(ctx, result)

		if err := store.Write(result); err != nil {
			return err
		}
		if archive != nil {
			if err := archive.SaveRun(ctx, result); err != nil {
				log.Warn().Err(err).Msg("Failed to archive run")
			}
		}
		return nil
	}

	sched := scheduler.NewScheduler()
	sched.AddJob(&scheduler.Job{
		Name: "market-refresh",
		Schedule: scheduler.Schedule{
			Type:     scheduler.ScheduleInterval,
			Interval: cfg.RefreshInterval,
		},
		Handler: refresh,
	})
	sched.AddJob(&scheduler.Job{
		Name: "news-refresh",
		Schedule: scheduler.Schedule{
			Type:     scheduler.ScheduleInterval,
			Interval: cfg.NewsInterval,
		},
		Handler: newsFetcher.Refresh,
	})

	apiServer := api.NewServer(store, archive, newsFetcher, sched, cfg.HTTPAddr)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := apiServer.Start(); err != nil {
			log.Error().Err(err).Msg("API server error")
		}
	}()

	sched.Start()

	// Populate both documents immediately rather than waiting a full
	// interval.
	go func() {
		if err := refresh(ctx); err != nil {
			log.Error().Err(err).Msg("Initial market refresh failed")
		}
		if err := newsFetcher.Refresh(ctx); err != nil {
			log.Error().Err(err).Msg("Initial news refresh failed")
		}
	}()

	log.Info().
		Str("api", cfg.HTTPAddr).
		Msg("Front-page engine running")

	<-sigChan
	log.Info().Msg("Shutdown signal received")

	shutdownCtx := context.Background()
	sched.Stop()
	apiServer.Shutdown(shutdownCtx)

	log.Info().Msg("Front-page engine stopped")
}

// loadKalshiCredentials returns signing credentials, or nil for unsigned
// requests when no key is configured or the key fails to parse.
func loadKalshiCredentials(cfg *config.Config) *kalshi.Credentials {
	if cfg.KalshiKeyID == "" {
		return nil
	}

	var (
		creds *kalshi.Credentials
		err   error
	)
	switch {
	case cfg.KalshiPrivateKeyPEM != "":
		creds, err = kalshi.LoadCredentialsPEM(cfg.KalshiKeyID, cfg.KalshiPrivateKeyPEM)
	case cfg.KalshiPrivateKeyPath != "":
		creds, err = kalshi.LoadCredentialsFile(cfg.KalshiKeyID, cfg.KalshiPrivateKeyPath)
	default:
		log.Warn().Msg("KALSHI_KEY_ID set but no private key provided, requests will be unsigned")
		return nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("Failed to load Kalshi credentials, requests will be unsigned")
		return nil
	}
	return creds
}
