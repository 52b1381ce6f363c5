// Package cambai implements the Camb AI text-to-speech vendor backend.
//
// Camb AI exposes an asynchronous synthesis protocol: a submit call issues a
// task id, the task is polled until it reports a terminal status, and the
// finished audio is fetched by run id in a final call.
package cambai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/buddybot/buddyvoice/internal/voice/vendors"
)

const (
	defaultBaseURL      = "https://client.camb.ai/apis"
	defaultTimeout      = 30 * time.Second
	defaultPollAttempts = 15
	defaultPollInitial  = time.Second
	defaultPollMax      = 3 * time.Second

	// pollMultiplier grows the inter-poll delay mildly rather than
	// exponentially; the vendor finishes most jobs within a few seconds.
	pollMultiplier = 1.1
)

func init() {
	vendors.TTS.Register("cambai", func(config map[string]string) (vendors.TTSVendor, error) {
		apiKey := config["cambai_api_key"]
		if apiKey == "" {
			apiKey = config["api_key"]
		}
		if apiKey == "" {
			return nil, fmt.Errorf("cambai API key required (set cambai_api_key in config)")
		}
		c := NewClient(apiKey)
		if v := config["base_url"]; v != "" {
			c.baseURL = v
		}
		if v := config["timeout_sec"]; v != "" {
			if sec, err := strconv.Atoi(v); err == nil && sec > 0 {
				c.httpClient.Timeout = time.Duration(sec) * time.Second
			}
		}
		if v := config["poll_attempts"]; v != "" {
			if n, err := strconv.Atoi(v); err == nil && n > 0 {
				c.pollMaxAttempts = n
			}
		}
		if v := config["poll_initial_ms"]; v != "" {
			if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
				c.pollInitialDelay = time.Duration(ms) * time.Millisecond
			}
		}
		if v := config["poll_max_ms"]; v != "" {
			if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
				c.pollMaxDelay = time.Duration(ms) * time.Millisecond
			}
		}
		return c, nil
	})
}

type cambVoice struct {
	ID          int    `json:"id"`
	VoiceName   string `json:"voice_name"`
	Name        string `json:"name"`
	Gender      int    `json:"gender"`
	Age         int    `json:"age"`
	Language    int    `json:"language"`
	Description string `json:"description"`
	IsPublished bool   `json:"is_published"`
}

func (v cambVoice) displayName() string {
	if v.VoiceName != "" {
		return v.VoiceName
	}
	return v.Name
}

// Client talks to the Camb AI REST API. One instance shares a single
// HTTP client with a deliberately small connection pool so concurrent
// synthesis calls queue at the transport instead of fanning out.
type Client struct {
	apiKey  string
	baseURL string

	httpClient *http.Client

	pollMaxAttempts  int
	pollInitialDelay time.Duration
	pollMaxDelay     time.Duration
}

// NewClient creates a Camb AI client with default tuning.
func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: defaultTimeout,
			Transport: &http.Transport{
				MaxConnsPerHost:     5,
				MaxIdleConnsPerHost: 2,
				IdleConnTimeout:     90 * time.Second,
			},
		},
		pollMaxAttempts:  defaultPollAttempts,
		pollInitialDelay: defaultPollInitial,
		pollMaxDelay:     defaultPollMax,
	}
}

// ListVoices fetches the vendor's voice catalog.
func (c *Client) ListVoices(ctx context.Context) ([]vendors.Voice, error) {
	var raw []cambVoice
	if err := c.doJSON(ctx, http.MethodGet, c.baseURL+"/list-voices", nil, &raw); err != nil {
		return nil, fmt.Errorf("cambai list voices: %w", err)
	}

	voices := make([]vendors.Voice, 0, len(raw))
	for _, v := range raw {
		voices = append(voices, vendors.Voice{
			ID:          v.ID,
			Name:        v.displayName(),
			Gender:      v.Gender,
			Age:         v.Age,
			Language:    v.Language,
			Description: v.Description,
			IsPublished: v.IsPublished,
		})
	}
	return voices, nil
}

// Close releases pooled connections.
func (c *Client) Close() error {
	if t, ok := c.httpClient.Transport.(*http.Transport); ok {
		t.CloseIdleConnections()
	}
	return nil
}

func (c *Client) headers() map[string]string {
	return map[string]string{
		"x-api-key":    c.apiKey,
		"Content-Type": "application/json",
	}
}

// doJSON sends a JSON request and decodes the JSON response into dest.
func (c *Client) doJSON(ctx context.Context, method, url string, body any, dest any) error {
	var bodyReader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		bodyReader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.headers() {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	if dest != nil {
		if err := json.NewDecoder(resp.Body).Decode(dest); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}

// doRaw sends a request and returns the raw response body.
func (c *Client) doRaw(ctx context.Context, method, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	for k, v := range c.headers() {
		req.Header.Set(k, v)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("HTTP %d: %s", resp.StatusCode, string(respBody))
	}

	return io.ReadAll(resp.Body)
}
