package langfuse

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

type receivedEvent struct {
	auth  string
	event ingestEvent
}

// newIngestionServer fakes the Langfuse ingestion endpoint and forwards
// every received event to a channel, since the client ships events from a
// background goroutine.
func newIngestionServer(t *testing.T) (*httptest.Server, chan receivedEvent) {
	t.Helper()
	events := make(chan receivedEvent, 4)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != ingestionPath {
			t.Errorf("path = %s, want %s", r.URL.Path, ingestionPath)
		}

		var batch ingestBatch
		if err := json.NewDecoder(r.Body).Decode(&batch); err != nil {
			t.Errorf("failed to decode batch: %v", err)
		}
		for _, ev := range batch.Batch {
			events <- receivedEvent{auth: r.Header.Get("Authorization"), event: ev}
		}
		w.WriteHeader(http.StatusMultiStatus)
	}))
	t.Cleanup(server.Close)

	return server, events
}

func waitForEvent(t *testing.T, events chan receivedEvent) receivedEvent {
	t.Helper()
	select {
	case ev := <-events:
		return ev
	case <-time.After(2 * time.Second):
		t.Fatal("no event received")
		return receivedEvent{}
	}
}

func TestClient_Disabled(t *testing.T) {
	c := NewClient(Config{})

	if c.IsEnabled() {
		t.Error("IsEnabled() = true for empty config")
	}

	traceID, err := c.CreateTrace(context.Background(), TraceInput{Name: "ignored"})
	if err != nil {
		t.Errorf("CreateTrace() error = %v", err)
	}
	if traceID != "" {
		t.Errorf("CreateTrace() = %q, want empty for disabled client", traceID)
	}

	if err := c.CreateScore(context.Background(), ScoreInput{}); err != nil {
		t.Errorf("CreateScore() error = %v for disabled client", err)
	}
}

func TestClient_CreateTrace(t *testing.T) {
	server, events := newIngestionServer(t)

	c := NewClient(Config{
		BaseURL:     server.URL,
		PublicKey:   "pk-test",
		SecretKey:   "sk-test",
		Environment: "test",
	})

	traceID, err := c.CreateTrace(context.Background(), TraceInput{
		UserID: "user-1",
		Name:   "stress-insights",
		Tags:   []string{"insights"},
	})
	if err != nil {
		t.Fatalf("CreateTrace() error = %v", err)
	}
	if traceID == "" {
		t.Fatal("CreateTrace() returned empty trace ID")
	}

	got := waitForEvent(t, events)
	if got.auth == "" {
		t.Error("request carried no basic auth header")
	}
	if got.event.Type != "trace-create" {
		t.Errorf("event type = %q, want trace-create", got.event.Type)
	}

	body, err := json.Marshal(got.event.Body)
	if err != nil {
		t.Fatalf("remarshal body: %v", err)
	}
	var trace traceBody
	if err := json.Unmarshal(body, &trace); err != nil {
		t.Fatalf("decode trace body: %v", err)
	}
	if trace.ID != traceID {
		t.Errorf("trace body ID = %q, want %q", trace.ID, traceID)
	}
	if trace.Metadata["environment"] != "test" {
		t.Errorf("metadata environment = %v, want test", trace.Metadata["environment"])
	}
}

func TestClient_CreateScore(t *testing.T) {
	server, events := newIngestionServer(t)

	c := NewClient(Config{
		BaseURL:   server.URL,
		PublicKey: "pk-test",
		SecretKey: "sk-test",
	})

	if err := c.CreateScore(context.Background(), ScoreInput{Name: "user_rating", Value: 4}); err == nil {
		t.Error("CreateScore() with empty trace ID should fail")
	}

	err := c.CreateScore(context.Background(), ScoreInput{
		TraceID: "trace-1",
		Name:    "user_rating",
		Value:   4,
		Comment: "helpful",
	})
	if err != nil {
		t.Fatalf("CreateScore() error = %v", err)
	}

	got := waitForEvent(t, events)
	if got.event.Type != "score-create" {
		t.Errorf("event type = %q, want score-create", got.event.Type)
	}

	body, err := json.Marshal(got.event.Body)
	if err != nil {
		t.Fatalf("remarshal body: %v", err)
	}
	var score scoreBody
	if err := json.Unmarshal(body, &score); err != nil {
		t.Fatalf("decode score body: %v", err)
	}
	if score.TraceID != "trace-1" || score.Value != 4 {
		t.Errorf("score body = %+v, want traceId=trace-1 value=4", score)
	}
}
