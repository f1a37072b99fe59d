// internal/chat/genai.go
package chat

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"scholarship-workers/internal/common/errors"
	commonhttp "scholarship-workers/internal/common/http"
)

var ErrRateLimited = stderrors.New("GENAI_RATE_LIMITED")

// Completer produces one assistant message for a system prompt and a user
// message.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

type GenAIConfig struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	MaxRetries  int
	Timeout     time.Duration
}

// GenAIClient calls an OpenAI-compatible chat completions endpoint.
type GenAIClient struct {
	cfg  GenAIConfig
	http *commonhttp.Client
}

func NewGenAIClient(cfg GenAIConfig) *GenAIClient {
	if cfg.Timeout == 0 {
		cfg.Timeout = 60 * time.Second
	}
	return &GenAIClient{cfg: cfg, http: commonhttp.NewClient(cfg.MaxRetries)}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type completionRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
}

type completionResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Configured is false when no real API key is set.
func (c *GenAIClient) Configured() bool {
	key := strings.TrimSpace(c.cfg.APIKey)
	return key != "" && key != "your_openai_api_key_here"
}

func (c *GenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	if !c.Configured() {
		return "", errors.NewLLMNotConfiguredError()
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	req := completionRequest{
		Model: c.cfg.Model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.cfg.Temperature,
		MaxTokens:   c.cfg.MaxTokens,
	}
	headers := map[string]string{"Authorization": "Bearer " + c.cfg.APIKey}

	var resp completionResponse
	err := c.http.PostJSON(ctx, strings.TrimRight(c.cfg.BaseURL, "/")+"/chat/completions", headers, req, &resp)
	if err != nil {
		if stderrors.Is(err, context.DeadlineExceeded) {
			return "", errors.NewLLMTimeoutError()
		}
		var statusErr *commonhttp.StatusError
		if stderrors.As(err, &statusErr) && statusErr.StatusCode == http.StatusTooManyRequests {
			return "", fmt.Errorf("%w: %v", ErrRateLimited, err)
		}
		return "", errors.NewLLMSynthesisFailedError(err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return MessageNoResponse, nil
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}
