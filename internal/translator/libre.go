package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const defaultLibreURL = "https://libretranslate.com/translate"

// LibreOptions points at a LibreTranslate instance
type LibreOptions struct {
	URL    string
	APIKey string
}

// Libre translates through a LibreTranslate server, typically self hosted
type Libre struct {
	opts  LibreOptions
	langs Languages
	http  *resty.Client
}

func NewLibre(opts LibreOptions, langs Languages, http *resty.Client) *Libre {
	if strings.TrimSpace(opts.URL) == "" {
		opts.URL = defaultLibreURL
	}
	return &Libre{opts: opts, langs: langs, http: http}
}

func (l *Libre) Translate(ctx context.Context, text string, dir Direction) (string, error) {
	from, to := l.langs.Resolve(dir)
	body := map[string]any{
		"q":      text,
		"source": shortCode(from),
		"target": shortCode(to),
		"format": "text",
	}
	if strings.TrimSpace(l.opts.APIKey) != "" {
		body["api_key"] = l.opts.APIKey
	}

	var resp struct {
		TranslatedText *string `json:"translatedText"`
	}
	rr, err := l.http.R().SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&resp).
		ForceContentType("application/json").
		Post(l.opts.URL)
	if err != nil {
		return "", fmt.Errorf("libretranslate request: %w", err)
	}
	if rr.IsError() {
		return "", &StatusError{Provider: "libretranslate", Code: rr.StatusCode(), Body: rr.String()}
	}
	if resp.TranslatedText == nil {
		return "", fmt.Errorf("libretranslate: response missing translatedText")
	}

	out := strings.TrimSpace(*resp.TranslatedText)
	if out == "" {
		return "", fmt.Errorf("libretranslate: %w", ErrEmptyTranslation)
	}
	return out, nil
}
