package main

import (
	"context"
	"time"

	"github.com/rotisserie/eris"

	"github.com/sells-group/company-intake/internal/clean"
	"github.com/sells-group/company-intake/internal/enrich"
	"github.com/sells-group/company-intake/internal/intake"
	"github.com/sells-group/company-intake/internal/resilience"
	"github.com/sells-group/company-intake/internal/store"
	"github.com/sells-group/company-intake/pkg/completion"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "sqlite":
		dsn := cfg.Store.DatabaseURL
		if dsn == "" {
			dsn = "intake.db"
		}
		return store.NewSQLite(dsn)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{
			MaxConns: cfg.Store.MaxConns,
			MinConns: cfg.Store.MinConns,
		})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// applyCountryAliases overlays the configured alias file, if any, on the
// built-in country table.
func applyCountryAliases() error {
	if cfg.Clean.CountryAliasFile == "" {
		return nil
	}
	return clean.LoadCountryAliases(cfg.Clean.CountryAliasFile)
}

func newEnricher() (intake.Enricher, error) {
	if cfg.Anthropic.Key == "" {
		return nil, eris.New("anthropic key is required for ai and hybrid modes (INTAKE_ANTHROPIC_KEY)")
	}
	client := completion.NewClient(cfg.Anthropic.Key, cfg.Anthropic.Model)
	return enrich.New(client, enrich.Config{
		Model:       cfg.Anthropic.Model,
		Temperature: cfg.Anthropic.Temperature,
		MaxTokens:   cfg.Anthropic.MaxTokens,
		GroupSize:   cfg.Enrich.GroupSize,
		GroupPause:  time.Duration(cfg.Enrich.PauseSecs) * time.Second,
		Retry:       resilience.RetryConfig{MaxAttempts: cfg.Enrich.MaxRetries},
	}), nil
}

// newProcessor builds a processor for the requested mode, attaching an
// enricher only when the mode needs one.
func newProcessor(mode intake.Mode) (*intake.Processor, error) {
	var enricher intake.Enricher
	if mode != intake.ModeDeterministic {
		e, err := newEnricher()
		if err != nil {
			return nil, err
		}
		enricher = e
	}
	return intake.NewProcessor(mode, enricher)
}
