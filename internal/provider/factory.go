package provider

import (
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/yuki-mtmr/SystemPromptDiagnoser/internal/logging"
)

const factoryCacheSize = 16

// Factory builds providers by symbolic name and caches instances so
// repeated lookups for the same backend and model reuse one client.
type Factory struct {
	cache  *lru.Cache[string, Provider]
	logger logging.Logger
}

// NewFactory returns a factory with an instance cache. logger may be
// nil.
func NewFactory(logger logging.Logger) *Factory {
	// lru.New only errors on a non-positive size.
	cache, _ := lru.New[string, Provider](factoryCacheSize)
	return &Factory{
		cache:  cache,
		logger: logging.OrNop(logger),
	}
}

// Available lists the registered backend names.
func Available() []string {
	return []string{"openai", "groq", "gemini", "echo"}
}

// Create returns a provider for name, building it on first use.
// Unknown names return *UnknownProviderError.
func (f *Factory) Create(name string, cfg Config) (Provider, error) {
	cfg = cfg.ApplyDefaults()

	key := name + ":" + cfg.Model
	if p, ok := f.cache.Get(key); ok {
		return p, nil
	}

	var p Provider
	switch name {
	case "openai":
		p = NewOpenAI(cfg)
	case "groq":
		p = NewGroq(cfg)
	case "gemini":
		p = NewGemini(cfg)
	case "echo":
		p = NewEcho(cfg.Model)
	default:
		return nil, &UnknownProviderError{Name: name}
	}

	f.cache.Add(key, p)
	f.logger.Info("Provider created: %s (model=%s)", name, cfg.Model)
	return p, nil
}
