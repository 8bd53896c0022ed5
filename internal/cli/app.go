package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/ppiankov/sstrack/internal/cache"
	"github.com/ppiankov/sstrack/internal/files"
	"github.com/ppiankov/sstrack/internal/llm"
	"github.com/ppiankov/sstrack/internal/logging"
	"github.com/ppiankov/sstrack/internal/model"
	"github.com/ppiankov/sstrack/internal/pipeline"
	"github.com/ppiankov/sstrack/internal/store"
	"github.com/ppiankov/sstrack/internal/worker"
)

// app holds the components shared by the commands
type app struct {
	cfg      model.Config
	logger   *slog.Logger
	store    store.Store
	view     *store.View
	files    *files.LocalStore
	ai       llm.Provider
	pipeline *pipeline.Pipeline
}

// newApp opens the store and attachment directory and wires the pipeline.
// When requireAI is false a missing provider only fails ingestion.
func newApp(cfg model.Config, requireAI bool) (*app, error) {
	logger := logging.New(cfg.Log, os.Stderr)

	ai, err := newAnalyzer(cfg)
	if err != nil {
		if requireAI {
			return nil, err
		}
		logger.Warn("AI provider unavailable, ingestion disabled", "error", err)
		ai = offlineProvider{err: err}
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return nil, err
	}
	attachments, err := files.NewLocalStore(cfg.Files.Dir)
	if err != nil {
		_ = st.Close()
		return nil, err
	}

	view := store.NewView(st)
	p := pipeline.New(ai, st, attachments, logger, pipeline.OptionsFromModel(cfg.Validation)).WithView(view)

	return &app{
		cfg:      cfg,
		logger:   logger,
		store:    st,
		view:     view,
		files:    attachments,
		ai:       ai,
		pipeline: p,
	}, nil
}

func (a *app) Close() error {
	return a.store.Close()
}

// newAnalyzer builds the configured provider behind the answer cache and
// the per-provider rate limiter.
func newAnalyzer(cfg model.Config) (llm.Provider, error) {
	provider, err := llm.NewProvider(llm.ConfigFromModel(cfg.AI))
	if err != nil {
		return nil, fmt.Errorf("create AI provider: %w", err)
	}

	var answers cache.Cache
	if cfg.Cache.Enabled {
		answers = cache.NewLayeredCache(cfg.Cache.MemoryTTL, cfg.Cache.DiskDir, cfg.Cache.DiskTTL)
	}
	return llm.NewAnalyzer(provider, answers, cfg.Cache.DiskTTL).
		WithLimiter(worker.LimiterFromModel(cfg.RateLimiting)), nil
}

// offlineProvider stands in when no provider could be configured
type offlineProvider struct {
	err error
}

func (o offlineProvider) Name() string { return "offline" }

func (o offlineProvider) IsAvailable(ctx context.Context) bool { return false }

func (o offlineProvider) Ask(ctx context.Context, req llm.AskRequest) (*llm.AskResponse, error) {
	return nil, errors.Join(errors.New("no AI provider available"), o.err)
}
