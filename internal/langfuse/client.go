// Package langfuse talks to the Langfuse HTTP ingestion API. The product
// uses it for two things: recording insight-generation traces and attaching
// user feedback scores to them. Unconfigured clients degrade to no-ops so
// the API runs without a Langfuse deployment.
package langfuse

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"
)

const (
	ingestionPath = "/api/public/ingestion"

	// Events are shipped fire-and-forget off the request path; this bounds
	// how long a background send may hang.
	publishTimeout = 5 * time.Second
)

// Client records traces and scores in Langfuse.
type Client interface {
	// IsEnabled reports whether the client is configured to send anything.
	IsEnabled() bool
	// CreateTrace records a trace and returns its ID.
	CreateTrace(ctx context.Context, in TraceInput) (string, error)
	// CreateScore attaches a score to an existing trace.
	CreateScore(ctx context.Context, in ScoreInput) error
}

// TraceInput describes one trace. ID is optional; a UUID is generated when
// it is empty.
type TraceInput struct {
	ID       string
	UserID   string
	Name     string
	Input    any
	Output   any
	Tags     []string
	Metadata map[string]any
}

// ScoreInput describes one score attached to a trace, e.g. a user_rating
// from the insights feedback endpoint.
type ScoreInput struct {
	TraceID string
	Name    string
	Value   float64
	Comment string
}

// Config holds Langfuse connection settings.
type Config struct {
	BaseURL     string
	PublicKey   string
	SecretKey   string
	Environment string
}

// Wire format for the ingestion endpoint: a batch of typed events, each
// wrapping a body whose shape depends on the event type.

type ingestBatch struct {
	Batch []ingestEvent `json:"batch"`
}

type ingestEvent struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Timestamp string `json:"timestamp"`
	Body      any    `json:"body"`
}

type traceBody struct {
	ID       string         `json:"id"`
	Name     string         `json:"name,omitempty"`
	UserID   string         `json:"userId,omitempty"`
	Input    any            `json:"input,omitempty"`
	Output   any            `json:"output,omitempty"`
	Tags     []string       `json:"tags,omitempty"`
	Metadata map[string]any `json:"metadata,omitempty"`
}

type scoreBody struct {
	ID      string  `json:"id"`
	TraceID string  `json:"traceId"`
	Name    string  `json:"name"`
	Value   float64 `json:"value"`
	Comment string  `json:"comment,omitempty"`
}

type client struct {
	cfg        Config
	enabled    bool
	httpClient *http.Client
}

// NewClient builds a Client from cfg. Missing base URL or keys produce a
// disabled client that accepts calls and sends nothing.
func NewClient(cfg Config) Client {
	enabled := cfg.BaseURL != "" && cfg.PublicKey != "" && cfg.SecretKey != ""
	if enabled {
		log.Printf("[langfuse] enabled: base_url=%s env=%s", cfg.BaseURL, cfg.Environment)
	} else {
		log.Println("[langfuse] disabled: base URL or API keys not configured")
	}

	return &client{
		cfg:        cfg,
		enabled:    enabled,
		httpClient: &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *client) IsEnabled() bool {
	return c.enabled
}

func (c *client) CreateTrace(ctx context.Context, in TraceInput) (string, error) {
	if !c.enabled {
		return "", nil
	}

	traceID := in.ID
	if traceID == "" {
		traceID = uuid.New().String()
	}

	metadata := in.Metadata
	if c.cfg.Environment != "" {
		if metadata == nil {
			metadata = make(map[string]any)
		}
		metadata["environment"] = c.cfg.Environment
	}

	c.publish("trace-create", traceBody{
		ID:       traceID,
		Name:     in.Name,
		UserID:   in.UserID,
		Input:    in.Input,
		Output:   in.Output,
		Tags:     in.Tags,
		Metadata: metadata,
	})

	return traceID, nil
}

func (c *client) CreateScore(ctx context.Context, in ScoreInput) error {
	if !c.enabled {
		return nil
	}
	if in.TraceID == "" {
		return fmt.Errorf("langfuse: score requires a trace ID")
	}

	c.publish("score-create", scoreBody{
		ID:      uuid.New().String(),
		TraceID: in.TraceID,
		Name:    in.Name,
		Value:   in.Value,
		Comment: in.Comment,
	})

	return nil
}

// publish ships one event in the background. Failures are logged, never
// surfaced: observability must not fail user requests.
func (c *client) publish(eventType string, body any) {
	event := ingestEvent{
		ID:        uuid.New().String(),
		Type:      eventType,
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Body:      body,
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
		defer cancel()

		if err := c.send(ctx, ingestBatch{Batch: []ingestEvent{event}}); err != nil {
			log.Printf("[langfuse] %s send failed: %v", eventType, err)
		}
	}()
}

func (c *client) send(ctx context.Context, batch ingestBatch) error {
	payload, err := json.Marshal(batch)
	if err != nil {
		return fmt.Errorf("marshal batch: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+ingestionPath, bytes.NewReader(payload))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.SetBasicAuth(c.cfg.PublicKey, c.cfg.SecretKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return fmt.Errorf("ingestion failed with status %d", resp.StatusCode)
	}
	return nil
}
