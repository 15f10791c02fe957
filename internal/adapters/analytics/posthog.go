// Package analytics provides a best-effort event sink. Captures are
// sent after the caller's response is decided; failures are logged and
// never surfaced.
package analytics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"devevent/internal/domain"
)

const captureTimeout = 5 * time.Second

// Config holds configuration for the analytics sink.
type Config struct {
	Provider string
	APIKey   string
	// Endpoint is the PostHog instance base URL, e.g. https://app.posthog.com.
	Endpoint string
}

// PosthogClient sends capture calls to a PostHog-compatible endpoint.
type PosthogClient struct {
	logger   *slog.Logger
	client   *http.Client
	apiKey   string
	endpoint string
}

// NewPosthogClient returns a capture client for the given endpoint.
func NewPosthogClient(logger *slog.Logger, client *http.Client, config Config) *PosthogClient {
	if client == nil {
		client = &http.Client{Timeout: captureTimeout}
	}
	return &PosthogClient{
		logger:   logger,
		client:   client,
		apiKey:   config.APIKey,
		endpoint: strings.TrimSuffix(config.Endpoint, "/"),
	}
}

type capturePayload struct {
	APIKey     string         `json:"api_key"`
	Event      string         `json:"event"`
	DistinctID string         `json:"distinct_id"`
	Properties map[string]any `json:"properties"`
	Timestamp  string         `json:"timestamp"`
}

func (p *PosthogClient) Capture(event string, properties map[string]any) {
	distinctID := "devevent-api"
	if v, ok := properties["email"].(string); ok && v != "" {
		distinctID = v
	}
	payload := capturePayload{
		APIKey:     p.apiKey,
		Event:      event,
		DistinctID: distinctID,
		Properties: properties,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
	}
	body, err := json.Marshal(payload)
	if err != nil {
		p.logger.Warn("analytics capture skipped", "event", event, "err", err)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), captureTimeout)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint+"/capture/", bytes.NewReader(body))
	if err != nil {
		p.logger.Warn("analytics capture skipped", "event", event, "err", err)
		return
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		p.logger.Warn("analytics capture failed", "event", event, "err", err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode >= http.StatusBadRequest {
		p.logger.Warn("analytics capture failed", "event", event, "status", resp.StatusCode)
	}
}

// NewSink creates an analytics sink from config. Provider "posthog" sends
// captures over HTTP; "noop" or unknown discards them.
func NewSink(logger *slog.Logger, config Config) domain.Analytics {
	switch config.Provider {
	case "posthog":
		return NewPosthogClient(logger, nil, config)
	case "noop":
		return &noopSink{}
	default:
		if config.Provider != "" {
			logger.Warn(fmt.Sprintf("unknown analytics provider %q, using noop", config.Provider))
		}
		return &noopSink{}
	}
}

type noopSink struct{}

func (n *noopSink) Capture(string, map[string]any) {}
