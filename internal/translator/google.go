package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

const defaultGoogleURL = "https://translate.google.com/translate_a/single"

// Google uses the keyless gtx web endpoint
type Google struct {
	url   string
	langs Languages
	http  *resty.Client
}

func NewGoogle(url string, langs Languages, http *resty.Client) *Google {
	if strings.TrimSpace(url) == "" {
		url = defaultGoogleURL
	}
	return &Google{url: url, langs: langs, http: http}
}

func (g *Google) Translate(ctx context.Context, text string, dir Direction) (string, error) {
	from, to := g.langs.Resolve(dir)
	rr, err := g.http.R().SetContext(ctx).
		SetQueryParams(map[string]string{
			"client": "gtx",
			"sl":     from,
			"tl":     to,
			"dt":     "t",
			"q":      text,
		}).
		Get(g.url)
	if err != nil {
		return "", fmt.Errorf("google request: %w", err)
	}
	if rr.IsError() {
		return "", &StatusError{Provider: "google", Code: rr.StatusCode(), Body: rr.String()}
	}

	out, err := parseGoogleResponse(rr.Body())
	if err != nil {
		return "", err
	}
	if out == "" {
		return "", fmt.Errorf("google: %w", ErrEmptyTranslation)
	}
	return out, nil
}

// parseGoogleResponse joins the translated segments of
// [[["seg1","src1",...],["seg2","src2",...]], ...]
func parseGoogleResponse(body []byte) (string, error) {
	var result []any
	if err := sonic.Unmarshal(body, &result); err != nil {
		return "", fmt.Errorf("google: decode response: %w", err)
	}
	if len(result) == 0 {
		return "", fmt.Errorf("google: empty response")
	}
	segments, ok := result[0].([]any)
	if !ok {
		return "", fmt.Errorf("google: unexpected response shape")
	}

	var b strings.Builder
	for _, seg := range segments {
		parts, ok := seg.([]any)
		if !ok || len(parts) == 0 {
			continue
		}
		if s, ok := parts[0].(string); ok {
			b.WriteString(s)
		}
	}
	return strings.TrimSpace(b.String()), nil
}
