package openrouter

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/therrabiz/therrabiz-api/internal/config"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Message is one chat-completion turn in the OpenAI-compatible wire format.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Chat roles on the wire.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Client talks to the OpenRouter chat-completion endpoint. Requests are not
// retried and in-flight calls are not canceled beyond context propagation.
type Client interface {
	ChatCompletion(ctx context.Context, messages []Message, temperature float64) (string, error)
}

type OpenRouterClient struct {
	httpClient *http.Client
	cfg        *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &OpenRouterClient{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.OpenRouter.TimeoutSeconds) * time.Second,
		},
		cfg: cfg,
	}
}

type completionRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
}

type completionResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

// ChatCompletion sends the conversation and returns the first choice's text.
func (c *OpenRouterClient) ChatCompletion(ctx context.Context, messages []Message, temperature float64) (string, error) {
	if c.cfg.OpenRouter.APIKey == "" {
		return "", errors.New("openrouter api key is not configured")
	}

	payload, err := json.Marshal(completionRequest{
		Model:       c.cfg.OpenRouter.Model,
		Messages:    messages,
		Temperature: temperature,
	})
	if err != nil {
		return "", errors.Wrap(err, "encoding chat completion request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.OpenRouter.URL, bytes.NewReader(payload))
	if err != nil {
		return "", errors.Wrap(err, "building chat completion request")
	}

	req.Header.Set("Authorization", "Bearer "+c.cfg.OpenRouter.APIKey)
	req.Header.Set("HTTP-Referer", c.cfg.OpenRouter.SiteURL)
	req.Header.Set("X-Title", c.cfg.OpenRouter.SiteName)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrap(err, "calling openrouter")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Wrap(err, "reading openrouter response")
	}

	if resp.StatusCode != http.StatusOK {
		return "", errors.Errorf("openrouter returned status %d: %s", resp.StatusCode, string(body))
	}

	var completion completionResponse
	if err := json.Unmarshal(body, &completion); err != nil {
		return "", errors.Wrap(err, "decoding openrouter response")
	}

	if len(completion.Choices) == 0 {
		return "", nil
	}

	return completion.Choices[0].Message.Content, nil
}
