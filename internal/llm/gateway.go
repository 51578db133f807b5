package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v4"
	"voice-scheduler-go/internal/logger"
)

// GatewayClient talks to an OpenAI-compatible chat completions endpoint.
type GatewayClient struct {
	URL        string
	APIKey     string
	Model      string
	HTTPClient *http.Client

	// MaxRetryTime bounds the exponential backoff around transient failures.
	MaxRetryTime time.Duration
}

func NewGateway(url, apiKey, model string, timeout time.Duration) *GatewayClient {
	return &GatewayClient{
		URL:          url,
		APIKey:       apiKey,
		Model:        model,
		HTTPClient:   &http.Client{Timeout: timeout},
		MaxRetryTime: 20 * time.Second,
	}
}

func (c *GatewayClient) Complete(ctx context.Context, prompt string) (string, error) {
	log := logger.New().WithField("component", "llm.gateway")

	if c.URL == "" || c.APIKey == "" {
		return "", fmt.Errorf("llm gateway not configured")
	}

	reqBody := map[string]any{
		"model": c.Model,
		"messages": []map[string]string{
			{"role": "user", "content": prompt},
		},
		"temperature": 0.0,
	}
	data, _ := json.Marshal(reqBody)

	var content string
	var lastErr error

	op := func() error {
		req, err := http.NewRequestWithContext(ctx, "POST", c.URL, bytes.NewReader(data))
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer "+c.APIKey)

		resp, err := c.HTTPClient.Do(req)
		if err != nil {
			lastErr = err
			log.WithError(err).Warn("llm request failed")
			return err
		}
		defer resp.Body.Close()

		body, _ := io.ReadAll(resp.Body)
		if resp.StatusCode >= 500 {
			lastErr = fmt.Errorf("llm server error: %s", string(body))
			return lastErr
		}
		if resp.StatusCode >= 400 {
			lastErr = fmt.Errorf("llm client error %d: %s", resp.StatusCode, string(body))
			return backoff.Permanent(lastErr)
		}

		var parsed struct {
			Choices []struct {
				Message struct {
					Content string `json:"content"`
				} `json:"message"`
			} `json:"choices"`
		}
		if err := json.Unmarshal(body, &parsed); err != nil || len(parsed.Choices) == 0 {
			lastErr = fmt.Errorf("unexpected llm response: %s", string(body))
			return lastErr
		}
		content = parsed.Choices[0].Message.Content
		lastErr = nil
		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.MaxElapsedTime = c.MaxRetryTime
	if err := backoff.Retry(op, backoff.WithContext(bo, ctx)); err != nil {
		return "", fmt.Errorf("llm completion failed: %w", lastErr)
	}
	return content, nil
}
