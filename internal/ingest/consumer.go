// Package ingest consumes wearable samples from NATS and stores them through
// the measurement service. Devices publish one JSON sample per message on the
// HRV and heart-rate subjects.
package ingest

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"

	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/service"
)

// handleTimeout bounds the database work done per message.
const handleTimeout = 5 * time.Second

// SampleMessage is the wire format devices publish on the ingest subjects.
type SampleMessage struct {
	UserID     uuid.UUID `json:"user_id"`
	Value      float64   `json:"value"`
	RecordedAt time.Time `json:"recorded_at"`
}

// Config holds consumer subjects and queue group.
type Config struct {
	HRVSubject       string
	HeartRateSubject string
	QueueName        string
}

// Consumer subscribes to the sample subjects and stores incoming readings.
type Consumer struct {
	measurementService service.MeasurementService
	baselineService    service.BaselineService
	cfg                Config

	subs []*nats.Subscription
}

// NewConsumer creates a Consumer. Subscriptions start on Start.
func NewConsumer(measurementService service.MeasurementService, baselineService service.BaselineService, cfg Config) *Consumer {
	return &Consumer{
		measurementService: measurementService,
		baselineService:    baselineService,
		cfg:                cfg,
	}
}

// Connect dials NATS with retry-friendly options.
func Connect(url string) (*nats.Conn, error) {
	return nats.Connect(
		url,
		nats.Name("stress-monitor-ingest"),
		nats.Timeout(3*time.Second),
		nats.ReconnectWait(500*time.Millisecond),
		nats.MaxReconnects(-1),
	)
}

// Start subscribes to both sample subjects using a queue group so multiple
// ingest workers share the load.
func (c *Consumer) Start(nc *nats.Conn) error {
	hrvSub, err := nc.QueueSubscribe(c.cfg.HRVSubject, c.cfg.QueueName, func(msg *nats.Msg) {
		c.handle(msg.Data, service.KindHRV)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.cfg.HRVSubject, err)
	}
	c.subs = append(c.subs, hrvSub)

	hrSub, err := nc.QueueSubscribe(c.cfg.HeartRateSubject, c.cfg.QueueName, func(msg *nats.Msg) {
		c.handle(msg.Data, service.KindHeartRate)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", c.cfg.HeartRateSubject, err)
	}
	c.subs = append(c.subs, hrSub)

	log.Printf("ingest consumer running: subjects=%s,%s queue=%s", c.cfg.HRVSubject, c.cfg.HeartRateSubject, c.cfg.QueueName)
	return nil
}

// Stop drains the subscriptions.
func (c *Consumer) Stop() {
	for _, sub := range c.subs {
		if err := sub.Drain(); err != nil {
			log.Printf("ingest drain failed: %v", err)
		}
	}
}

// handle decodes and stores a single sample. Malformed or unknown-user
// messages are logged and dropped; the stream must keep moving.
func (c *Consumer) handle(data []byte, kind service.MeasurementKind) {
	var sample SampleMessage
	if err := json.Unmarshal(data, &sample); err != nil {
		log.Printf("ingest: dropping malformed %s message: %v", kind, err)
		return
	}
	if sample.UserID == uuid.Nil || sample.Value <= 0 || sample.RecordedAt.IsZero() {
		log.Printf("ingest: dropping invalid %s sample for user %s", kind, sample.UserID)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	req := &domain.CreateMeasurementBatchRequest{
		Measurements: []domain.MeasurementInput{
			{Value: sample.Value, RecordedAt: sample.RecordedAt},
		},
		Source: domain.SourceStream,
	}

	if _, _, err := c.measurementService.StoreBatch(ctx, sample.UserID, kind, req); err != nil {
		log.Printf("ingest: store %s sample for user %s failed: %v", kind, sample.UserID, err)
		return
	}

	// Streamed HRV keeps the baseline current. Recalculate applies the
	// update policy itself, so this is a cheap no-op most of the time.
	if kind == service.KindHRV {
		if _, _, err := c.baselineService.Recalculate(ctx, sample.UserID, false); err != nil &&
			err != domain.ErrInsufficientSamples {
			log.Printf("ingest: baseline refresh for user %s failed: %v", sample.UserID, err)
		}
	}
}
