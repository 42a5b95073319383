// fetch-markets runs one full front-page selection: fetch both feeds,
// curate, enrich with copy, and write the artifact. Built for cron and CI
// runners; the daemon in cmd/frontpage wraps the same pipeline with a
// scheduler and an API.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/theprob/frontpage/internal/config"
	"github.com/theprob/frontpage/internal/content"
	"github.com/theprob/frontpage/internal/curate"
	"github.com/theprob/frontpage/internal/kalshi"
	"github.com/theprob/frontpage/internal/llm"
	"github.com/theprob/frontpage/internal/polymarket"
	"github.com/theprob/frontpage/internal/storage"
)

func main() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

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

	creds := loadKalshiCredentials(cfg)
	kalshiClient := kalshi.NewClient(creds, cfg.FetchTimeout)

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

	priorTopicKey := ""
	if prior := store.LoadPriorHero(); prior != nil {
		priorTopicKey = curate.TopicKey(*prior)
		log.Info().Str("prior_hero", prior.Question).Msg("Loaded previous hero for repeat penalty")
	}

	curator := curate.NewCurator(polyClient, kalshiClient)
	result, err := curator.Run(ctx, priorTopicKey)
	if err != nil {
		// Keeping the last good artifact beats publishing an empty page.
		log.Fatal().Err(err).Msg("Selection run failed, artifact left untouched")
	}

	generator := content.NewGenerator(llmClient)
	generator.Enrich(ctx, result)

	if err := store.Write(result); err != nil {
		log.Fatal().Err(err).Msg("Failed to write artifact")
	}

	log.Info().
		Int("catalog", len(result.Catalog)).
		Int("movers", len(result.Movers)).
		Int("ticker", len(result.Ticker)).
		Msg("Front page updated")
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
