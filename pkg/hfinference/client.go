package hfinference

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Client calls the Hugging Face hosted inference API for a single model.
type Client struct {
	apiKey     string
	modelURL   string
	httpClient *http.Client
}

// Config holds configuration for the inference client
type Config struct {
	APIKey   string
	BaseURL  string // Default: https://api-inference.huggingface.co/models
	Model    string // Default: facebook/blenderbot-3B
	Timeout  time.Duration
}

// NewClient creates a new Hugging Face inference client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://api-inference.huggingface.co/models"
	}
	if config.Model == "" {
		config.Model = "facebook/blenderbot-3B"
	}
	if config.Timeout == 0 {
		config.Timeout = 30 * time.Second
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   10 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        100,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 10 * time.Second,
		ForceAttemptHTTP2:   true,
	}

	return &Client{
		apiKey:   config.APIKey,
		modelURL: config.BaseURL + "/" + config.Model,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
	}
}

type inferenceRequest struct {
	Inputs string `json:"inputs"`
}

type inferenceResponse struct {
	GeneratedText string `json:"generated_text"`
}

// ErrMalformed marks a 2xx response whose payload could not be parsed.
var ErrMalformed = errors.New("malformed response")

// StatusError reports a non-2xx response from the API.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("API returned status %d: %s", e.StatusCode, e.Body)
}

// Generate sends input text to the model and returns the generated reply.
func (c *Client) Generate(ctx context.Context, input string) (string, error) {
	body, err := json.Marshal(inferenceRequest{Inputs: input})
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.modelURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return "", &StatusError{StatusCode: resp.StatusCode, Body: string(body)}
	}

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}

	// The inference API answers either with a single object or a list of them
	// depending on the model, so try both shapes.
	var single inferenceResponse
	if err := json.Unmarshal(raw, &single); err == nil && single.GeneratedText != "" {
		return single.GeneratedText, nil
	}

	var many []inferenceResponse
	if err := json.Unmarshal(raw, &many); err == nil && len(many) > 0 {
		return many[0].GeneratedText, nil
	}

	return "", fmt.Errorf("%w: %s", ErrMalformed, string(raw))
}
