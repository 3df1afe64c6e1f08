// Package genai is the optional pass-through to an OpenAI-compatible
// chat-completions backend. Generate never returns a Go error: failures are
// reported in the Completion so callers can fall back to heuristics.
package genai

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"listing-assistant/internal/common/config"
	"listing-assistant/internal/common/logger"
	"listing-assistant/internal/common/metrics"
)

const (
	DefaultMaxTokens   = 1000
	DefaultTemperature = 0.7
	DefaultTimeout     = 8 * time.Second

	maxErrorBody = 512
)

// Completion is the result of one generative call.
type Completion struct {
	Success  bool   `json:"success"`
	Content  string `json:"content,omitempty"`
	Error    string `json:"error,omitempty"`
	DemoMode bool   `json:"demoMode,omitempty"`
}

// Generator is what action handlers depend on.
type Generator interface {
	Generate(ctx context.Context, prompt, systemPrompt string) Completion
}

type Config struct {
	BaseURL     string
	APIKey      string
	Model       string
	MaxTokens   int
	Temperature float64
	Timeout     time.Duration
}

// FromAppConfig maps the apis.genai config section.
func FromAppConfig(c config.GenAIConfig) Config {
	return Config{
		BaseURL:     c.BaseURL,
		APIKey:      c.APIKey,
		Model:       c.Model,
		MaxTokens:   c.MaxTokens,
		Temperature: c.Temperature,
		Timeout:     config.GetDuration(c.Timeout),
	}
}

type Client struct {
	cfg      Config
	endpoint string
	http     *http.Client
	logger   logger.Logger
}

func NewClient(cfg Config, log logger.Logger) *Client {
	if cfg.MaxTokens <= 0 {
		cfg.MaxTokens = DefaultMaxTokens
	}
	if cfg.Temperature <= 0 {
		cfg.Temperature = DefaultTemperature
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		cfg:      cfg,
		endpoint: chatEndpoint(cfg.BaseURL),
		// the per-call context carries the deadline
		http:   &http.Client{},
		logger: log.With(map[string]interface{}{"component": "genai"}),
	}
}

func chatEndpoint(baseURL string) string {
	endpoint := strings.TrimRight(strings.TrimSpace(baseURL), "/")
	if endpoint == "" {
		return "https://api.openai.com/v1/chat/completions"
	}
	if strings.HasSuffix(endpoint, "/chat/completions") {
		return endpoint
	}
	if strings.HasSuffix(endpoint, "/v1") {
		return endpoint + "/chat/completions"
	}
	return endpoint + "/v1/chat/completions"
}

// Enabled reports whether a credential is configured.
func (c *Client) Enabled() bool {
	return strings.TrimSpace(c.cfg.APIKey) != ""
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Generate issues one chat-completions request bounded by the configured
// timeout. Without an API key it returns a demo-mode failure immediately.
func (c *Client) Generate(ctx context.Context, prompt, systemPrompt string) Completion {
	if !c.Enabled() {
		metrics.GenAIRequests.WithLabelValues(metrics.OutcomeDemo).Inc()
		return Completion{Success: false, DemoMode: true, Error: "generative backend not configured"}
	}

	ctx, cancel := context.WithTimeout(ctx, c.cfg.Timeout)
	defer cancel()

	start := time.Now()
	content, err := c.send(ctx, prompt, systemPrompt)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			err = fmt.Errorf("generative backend timed out after %s", c.cfg.Timeout)
		}
		metrics.GenAIRequests.WithLabelValues(metrics.OutcomeError).Inc()
		c.logger.Warn("generative call failed", map[string]interface{}{
			"error":      err.Error(),
			"durationMs": time.Since(start).Milliseconds(),
		})
		return Completion{Success: false, Error: err.Error()}
	}

	metrics.GenAIRequests.WithLabelValues(metrics.OutcomeSuccess).Inc()
	c.logger.Debug("generative call completed", map[string]interface{}{
		"durationMs":    time.Since(start).Milliseconds(),
		"contentLength": len(content),
	})
	return Completion{Success: true, Content: content}
}

func (c *Client) send(ctx context.Context, prompt, systemPrompt string) (string, error) {
	messages := make([]chatMessage, 0, 2)
	if systemPrompt != "" {
		messages = append(messages, chatMessage{Role: "system", Content: systemPrompt})
	}
	messages = append(messages, chatMessage{Role: "user", Content: prompt})

	body, err := json.Marshal(chatRequest{
		Model:       c.cfg.Model,
		Messages:    messages,
		MaxTokens:   c.cfg.MaxTokens,
		Temperature: c.cfg.Temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return "", fmt.Errorf("generative request failed (%d): %s", resp.StatusCode, strings.TrimSpace(string(snippet)))
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("response contained no choices")
	}
	return parsed.Choices[0].Message.Content, nil
}
