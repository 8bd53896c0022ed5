package llm

import (
	"context"
	"encoding/json"
	"time"

	"github.com/ppiankov/sstrack/internal/cache"
)

// Waiter gates calls to a provider, keyed by provider name
type Waiter interface {
	Wait(ctx context.Context, key string) error
}

// Analyzer wraps a provider with an answer cache and an optional rate
// limiter. It is itself a Provider.
type Analyzer struct {
	provider Provider
	cache    cache.Cache
	ttl      time.Duration
	limiter  Waiter
}

// NewAnalyzer creates an analyzer. A nil cache disables caching.
func NewAnalyzer(provider Provider, c cache.Cache, ttl time.Duration) *Analyzer {
	return &Analyzer{provider: provider, cache: c, ttl: ttl}
}

// WithLimiter sets the limiter consulted before every uncached call
func (a *Analyzer) WithLimiter(l Waiter) *Analyzer {
	a.limiter = l
	return a
}

// Name returns the wrapped provider's name
func (a *Analyzer) Name() string {
	return a.provider.Name()
}

// IsAvailable delegates to the wrapped provider
func (a *Analyzer) IsAvailable(ctx context.Context) bool {
	return a.provider.IsAvailable(ctx)
}

// Ask returns a cached answer for the same document, prompt and model, or
// asks the provider and caches its answer.
func (a *Analyzer) Ask(ctx context.Context, req AskRequest) (*AskResponse, error) {
	key := cache.Key(req.Document.Data, []byte(req.Prompt), []byte(a.provider.Name()), []byte(req.Model))

	if a.cache != nil {
		if data, ok := a.cache.Get(key); ok {
			var resp AskResponse
			if err := json.Unmarshal(data, &resp); err == nil {
				resp.Cached = true
				return &resp, nil
			}
		}
	}

	if a.limiter != nil {
		if err := a.limiter.Wait(ctx, a.provider.Name()); err != nil {
			return nil, err
		}
	}

	resp, err := a.provider.Ask(ctx, req)
	if err != nil {
		return nil, err
	}

	if a.cache != nil {
		if data, err := json.Marshal(resp); err == nil {
			_ = a.cache.Set(key, data, a.ttl)
		}
	}

	return resp, nil
}
