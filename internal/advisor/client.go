package advisor

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"fitlog/internal/log"
)

const (
	notConfiguredMessage = "Advice is unavailable: no API key is configured. Set OPENAI_API_KEY (or DEEPSEEK_API_KEY) and restart."

	chatCompletionsPath = "/chat/completions"
	requestTimeout      = 60 * time.Second
	temperature         = 0.7
)

// Client calls an OpenAI-compatible chat completions endpoint.
type Client struct {
	settings Settings
	http     *http.Client
	logger   *log.Logger
}

func NewClient(settings Settings, logger *log.Logger) *Client {
	return &Client{
		settings: settings,
		http:     &http.Client{Timeout: requestTimeout},
		logger:   logger.WithComponent(log.ComponentAdvisor),
	}
}

func (c *Client) Configured() bool {
	return c.settings.Configured()
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}

// Advise sends a system and user prompt and always returns displayable
// text. Any failure is reported as a message with the API key redacted.
func (c *Client) Advise(ctx context.Context, systemPrompt, userPrompt string) string {
	if !c.Configured() {
		return notConfiguredMessage
	}

	text, err := c.complete(ctx, systemPrompt, userPrompt)
	if err != nil {
		c.logger.ErrorContext(ctx, "advice request failed",
			log.FieldError, c.redact(err.Error()),
			"model", c.settings.Model)
		return "Advice is unavailable right now: " + c.redact(err.Error())
	}
	return text
}

func (c *Client) complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	body, err := json.Marshal(chatRequest{
		Model: c.settings.Model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userPrompt},
		},
		Temperature: temperature,
	})
	if err != nil {
		return "", fmt.Errorf("encode request: %w", err)
	}

	url := strings.TrimRight(c.settings.BaseURL, "/") + chatCompletionsPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.settings.APIKey)

	resp, err := c.http.Do(req)
	if err != nil {
		return "", fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("decode response (status %d): %w", resp.StatusCode, err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("upstream error (status %d): %s", resp.StatusCode, parsed.Error.Message)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d: %s", resp.StatusCode, strings.TrimSpace(string(raw)))
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("empty response")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// redact strips the API key from text destined for users or logs.
func (c *Client) redact(s string) string {
	if c.settings.APIKey == "" {
		return s
	}
	return strings.ReplaceAll(s, c.settings.APIKey, "***")
}
