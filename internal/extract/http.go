package extract

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/kn713606pp/Lne-task-bot/internal/reliability"
)

// HTTPClassifier calls an OpenAI-compatible chat-completions endpoint.
type HTTPClassifier struct {
	url    string
	apiKey string
	model  string
	client *http.Client
}

func NewHTTPClassifier(cfg Config) *HTTPClassifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &HTTPClassifier{
		url:    strings.TrimSpace(cfg.HTTPURL),
		apiKey: strings.TrimSpace(cfg.APIKey),
		model:  strings.TrimSpace(cfg.Model),
		client: &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model,omitempty"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (c *HTTPClassifier) Complete(ctx context.Context, systemPrompt, userText string) (string, error) {
	payload, err := json.Marshal(chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: userText},
		},
		Temperature: 0,
	})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	var text string
	err = reliability.Retry(ctx, 2, 500*time.Millisecond, 2*time.Second, func() (bool, error) {
		out, retryable, err := c.once(ctx, payload)
		if err != nil {
			return retryable, err
		}
		text = out
		return false, nil
	})
	if err != nil {
		return "", err
	}
	return text, nil
}

func (c *HTTPClassifier) once(ctx context.Context, payload []byte) (string, bool, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(payload))
	if err != nil {
		return "", false, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	res, err := c.client.Do(req)
	if err != nil {
		return "", true, fmt.Errorf("send request: %w", err)
	}
	defer res.Body.Close()

	if res.StatusCode < 200 || res.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(res.Body, 4<<10))
		return "", reliability.IsRetryableHTTPStatus(res.StatusCode),
			fmt.Errorf("classifier http status %d: %s", res.StatusCode, string(body))
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return "", true, fmt.Errorf("read response: %w", err)
	}

	var obj chatResponse
	if err := json.Unmarshal(body, &obj); err != nil {
		return "", false, fmt.Errorf("decode response: %w", err)
	}
	if len(obj.Choices) == 0 {
		return "", false, fmt.Errorf("classifier returned no choices")
	}
	return strings.TrimSpace(obj.Choices[0].Message.Content), false, nil
}
