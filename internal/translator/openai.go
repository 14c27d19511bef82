package translator

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-resty/resty/v2"
)

const defaultOpenAIBaseURL = "https://api.openai.com/v1"

// OpenAIOptions configures any OpenAI compatible chat completions endpoint
type OpenAIOptions struct {
	BaseURL string
	APIKey  string
	Model   string
}

// OpenAI translates with a chat completion model
type OpenAI struct {
	opts  OpenAIOptions
	langs Languages
	http  *resty.Client
}

func NewOpenAI(opts OpenAIOptions, langs Languages, http *resty.Client) *OpenAI {
	if opts.Model == "" {
		opts.Model = "gpt-4o-mini"
	}
	return &OpenAI{opts: opts, langs: langs, http: http}
}

func (o *OpenAI) Translate(ctx context.Context, text string, dir Direction) (string, error) {
	if strings.TrimSpace(o.opts.APIKey) == "" {
		return "", fmt.Errorf("openai: %w", ErrMissingAPIKey)
	}

	from, to := o.langs.Resolve(dir)
	body := map[string]any{
		"model":       o.opts.Model,
		"temperature": 0,
		"messages": []map[string]string{
			{"role": "system", "content": systemPrompt(from, to)},
			{"role": "user", "content": text},
		},
	}

	var resp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}

	endpoint := chatCompletionsEndpoint(o.opts.BaseURL)
	rr, err := o.http.R().SetContext(ctx).
		SetAuthToken(o.opts.APIKey).
		SetHeader("Content-Type", "application/json").
		SetBody(body).
		SetResult(&resp).
		ForceContentType("application/json").
		Post(endpoint)
	if err != nil {
		return "", fmt.Errorf("openai request: %w", err)
	}
	if rr.IsError() {
		return "", &StatusError{Provider: "openai", Code: rr.StatusCode(), Body: rr.String()}
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai: no choices returned: %w", ErrEmptyTranslation)
	}

	out := strings.TrimSpace(resp.Choices[0].Message.Content)
	if out == "" {
		return "", fmt.Errorf("openai: %w", ErrEmptyTranslation)
	}
	return out, nil
}

func systemPrompt(from, to string) string {
	return fmt.Sprintf("You are a translation engine. Translate %s to concise natural %s. Return only translated text.",
		Label(from), Label(to))
}

// chatCompletionsEndpoint accepts a bare host, a /v1 root or a full endpoint
func chatCompletionsEndpoint(base string) string {
	b := strings.TrimSpace(base)
	if b == "" {
		b = defaultOpenAIBaseURL
	}
	b = strings.TrimRight(b, "/")
	lower := strings.ToLower(b)

	switch {
	case strings.HasSuffix(lower, "/chat/completions"):
		return b
	case strings.HasSuffix(lower, "/responses"):
		return b[:len(b)-len("/responses")] + "/chat/completions"
	case strings.HasSuffix(lower, "/chat"):
		return b + "/completions"
	case strings.HasSuffix(lower, "/v1"):
		return b + "/chat/completions"
	default:
		return b + "/v1/chat/completions"
	}
}
