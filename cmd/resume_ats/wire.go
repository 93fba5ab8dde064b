package main

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/jonathan/resume-ats/internal/advisor"
	"github.com/jonathan/resume-ats/internal/archive"
	"github.com/jonathan/resume-ats/internal/config"
	"github.com/jonathan/resume-ats/internal/events"
	"github.com/jonathan/resume-ats/internal/fetch"
	"github.com/jonathan/resume-ats/internal/llm"
	"github.com/jonathan/resume-ats/internal/parsing"
	"github.com/jonathan/resume-ats/internal/pipeline"
	"github.com/jonathan/resume-ats/internal/server/ratelimit"
	"github.com/jonathan/resume-ats/internal/storage"
)

// app holds the wired pipeline and everything that must be closed after it.
type app struct {
	pipeline *pipeline.Pipeline
	archive  archive.Store
	closers  []func() error
}

// Close releases resources in reverse order of creation.
func (a *app) Close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			log.Printf("[shutdown] close failed: %v", err)
		}
	}
}

// appOptions selects which side channels to open. The CLI analyze command
// skips persistence; serve opens everything that is configured.
type appOptions struct {
	persist bool
}

// buildApp wires the pipeline from cfg.
func buildApp(ctx context.Context, cfg *config.Config, opts appOptions) (*app, error) {
	a := &app{}

	adv, err := buildAdvisor(ctx, cfg, a)
	if err != nil {
		a.Close()
		return nil, err
	}

	popts := pipeline.Options{
		Resolver: parsing.NewResolver(cfg.Upload.MaxFileBytes),
		Advisor:  adv,
	}
	if cfg.Fetch.Enabled {
		popts.Fetcher = fetch.New(fetch.Options{
			Timeout:   cfg.FetchTimeout(),
			UserAgent: cfg.Fetch.UserAgent,
			Browser:   cfg.Fetch.UseBrowser,
		})
	}

	if opts.persist {
		if err := openPersistence(ctx, cfg, a, &popts); err != nil {
			a.Close()
			return nil, err
		}
	}

	a.pipeline = pipeline.New(popts)
	return a, nil
}

func buildAdvisor(ctx context.Context, cfg *config.Config, a *app) (*advisor.Advisor, error) {
	retries := cfg.LLM.Retries
	if retries <= 0 {
		retries = -1
	}
	aopts := advisor.Options{Timeout: cfg.LLMTimeout(), Retries: retries}

	if cfg.LLM.APIKey == "" {
		log.Printf("[advisor] no API key configured, improvements will use fallback advice")
		return advisor.New(nil, aopts), nil
	}

	llmCfg := llm.ConfigFor(llm.Provider(strings.ToLower(cfg.LLM.Provider)))
	if cfg.LLM.BaseURL != "" {
		llmCfg.BaseURL = cfg.LLM.BaseURL
	}
	if cfg.LLM.Model != "" {
		llmCfg = llmCfg.WithModel(llm.TierStandard, cfg.LLM.Model)
	}

	client, err := llm.NewClient(ctx, llmCfg, cfg.LLM.APIKey)
	if err != nil {
		return nil, fmt.Errorf("failed to create LLM client: %w", err)
	}
	limited := llm.NewRateLimitedClient(client, cfg.LLM.RequestsPerMinute, 2)
	a.closers = append(a.closers, limited.Close)

	return advisor.New(limited, aopts), nil
}

func openPersistence(ctx context.Context, cfg *config.Config, a *app, popts *pipeline.Options) error {
	if cfg.Archive.Driver != "" {
		store, err := archive.Open(ctx, cfg.Archive.Driver, cfg.Archive.DSN)
		if err != nil {
			return fmt.Errorf("failed to open archive: %w", err)
		}
		a.archive = store
		a.closers = append(a.closers, store.Close)
		popts.Archive = store
	}

	blobs, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to open object storage: %w", err)
	}
	if blobs != nil {
		popts.Blobs = blobs
	}

	if cfg.Events.URL != "" {
		pub, err := events.DialAMQP(cfg.Events.URL, cfg.Events.Exchange)
		if err != nil {
			return fmt.Errorf("failed to connect event publisher: %w", err)
		}
		a.closers = append(a.closers, pub.Close)
		popts.Events = pub
	}
	return nil
}

// rateLimitConfig converts the file/env settings into limiter settings.
func rateLimitConfig(c config.RateLimitConfig) ratelimit.Config {
	rl := ratelimit.DefaultConfig()
	rl.Enabled = c.Enabled
	if c.DefaultLimit > 0 {
		rl.DefaultLimit = c.DefaultLimit
	}
	if c.WindowSeconds > 0 {
		rl.DefaultWindow = time.Duration(c.WindowSeconds) * time.Second
	}
	if c.AnalyzeLimit > 0 {
		for i := range rl.EndpointConfigs {
			if rl.EndpointConfigs[i].Path == "/api/resumeAI" {
				rl.EndpointConfigs[i].Limit = c.AnalyzeLimit
			}
		}
	}
	// The streaming variant runs the same analysis.
	for _, ec := range rl.EndpointConfigs {
		if ec.Path == "/api/resumeAI" {
			ec.Path = "/api/resumeAI/stream"
			rl.EndpointConfigs = append(rl.EndpointConfigs, ec)
			break
		}
	}
	rl.Whitelist = ratelimit.ParseIPList(strings.Join(c.Whitelist, ","))
	rl.Blacklist = ratelimit.ParseIPList(strings.Join(c.Blacklist, ","))
	return rl
}
