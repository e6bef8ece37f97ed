package libretranslate

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"
)

// Client talks to a LibreTranslate-compatible endpoint.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// Config holds configuration for the translation client
type Config struct {
	BaseURL string        // Default: https://libretranslate.de
	APIKey  string        // Optional; most public mirrors do not require one
	Timeout time.Duration // Default: 5s
}

// NewClient creates a new LibreTranslate HTTP client
func NewClient(config Config) *Client {
	if config.BaseURL == "" {
		config.BaseURL = "https://libretranslate.de"
	}
	if config.Timeout == 0 {
		config.Timeout = 5 * time.Second
	}

	transport := &http.Transport{
		DialContext: (&net.Dialer{
			Timeout:   5 * time.Second,
			KeepAlive: 30 * time.Second,
		}).DialContext,
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     90 * time.Second,
		TLSHandshakeTimeout: 5 * time.Second,
	}

	return &Client{
		baseURL: config.BaseURL,
		apiKey:  config.APIKey,
		httpClient: &http.Client{
			Timeout:   config.Timeout,
			Transport: transport,
		},
	}
}

type translateRequest struct {
	Q      string `json:"q"`
	Source string `json:"source"`
	Target string `json:"target"`
	Format string `json:"format"`
	APIKey string `json:"api_key,omitempty"`
}

type translateResponse struct {
	TranslatedText string `json:"translatedText"`
}

type detectRequest struct {
	Q      string `json:"q"`
	APIKey string `json:"api_key,omitempty"`
}

type detection struct {
	Language   string  `json:"language"`
	Confidence float64 `json:"confidence"`
}

// Translate translates text from source to target language code.
func (c *Client) Translate(ctx context.Context, text, source, target string) (string, error) {
	reqBody := translateRequest{
		Q:      text,
		Source: source,
		Target: target,
		Format: "text",
		APIKey: c.apiKey,
	}

	var resp translateResponse
	if err := c.post(ctx, "/translate", reqBody, &resp); err != nil {
		return "", err
	}

	if resp.TranslatedText == "" {
		return "", fmt.Errorf("empty translation result")
	}

	return resp.TranslatedText, nil
}

// Detect returns the most likely language code for the given text.
func (c *Client) Detect(ctx context.Context, text string) (string, error) {
	reqBody := detectRequest{Q: text, APIKey: c.apiKey}

	var detections []detection
	if err := c.post(ctx, "/detect", reqBody, &detections); err != nil {
		return "", err
	}

	if len(detections) == 0 {
		return "", fmt.Errorf("no language detected")
	}

	// The endpoint returns candidates sorted by confidence
	return detections[0].Language, nil
}

func (c *Client) post(ctx context.Context, path string, reqBody, out interface{}) error {
	body, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	return nil
}
