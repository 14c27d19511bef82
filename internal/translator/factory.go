package translator

import (
	"fmt"
	"strings"

	"github.com/petems/triplespace/internal/config"
)

// New builds the configured backend wrapped with retries
func New(cfg config.TranslatorConfig) (Translator, error) {
	langs := Languages{Source: cfg.SourceLanguage, Target: cfg.TargetLanguage}
	http := newHTTPClient(cfg.Timeout())

	var backend Translator
	switch strings.ToLower(cfg.Provider) {
	case config.ProviderOpenAI, "":
		backend = NewOpenAI(OpenAIOptions{
			BaseURL: cfg.OpenAI.BaseURL,
			APIKey:  cfg.OpenAI.Key(),
			Model:   cfg.OpenAI.Model,
		}, langs, http)
	case config.ProviderLibreTranslate:
		backend = NewLibre(LibreOptions{
			URL:    cfg.LibreTranslate.URL,
			APIKey: cfg.LibreTranslate.APIKey,
		}, langs, http)
	case config.ProviderGoogle:
		backend = NewGoogle(cfg.GoogleURL, langs, http)
	default:
		return nil, fmt.Errorf("unsupported translator provider: %s", cfg.Provider)
	}

	opts := DefaultRetryOptions()
	if cfg.MaxRetries >= 0 {
		opts.MaxRetries = uint64(cfg.MaxRetries)
	}
	return WithRetry(backend, opts), nil
}
