// Ingest worker: consumes HRV and heart rate samples from NATS subjects
// published by wearable sync gateways and stores them through the
// measurement service.
package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/hrvlabs/stress-monitor/internal/config"
	"github.com/hrvlabs/stress-monitor/internal/ingest"
	"github.com/hrvlabs/stress-monitor/internal/repository"
	"github.com/hrvlabs/stress-monitor/internal/service"
)

func main() {
	cfg := config.Load()

	db, err := config.NewDatabase(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	userRepo := repository.NewUserRepository(db)
	measurementRepo := repository.NewMeasurementRepository(db)
	baselineRepo := repository.NewBaselineRepository(db)

	baselineCalc := service.NewBaselineCalculator(cfg.BaselineMinSamples, cfg.BaselineWindowDays)

	measurementService := service.NewMeasurementService(measurementRepo, userRepo)
	baselineService := service.NewBaselineService(baselineCalc, baselineRepo, measurementRepo, userRepo)

	nc, err := ingest.Connect(cfg.NATSUrl)
	if err != nil {
		log.Fatalf("Failed to connect to NATS at %s: %v", cfg.NATSUrl, err)
	}
	defer nc.Close()

	consumer := ingest.NewConsumer(measurementService, baselineService, ingest.Config{
		HRVSubject:       cfg.NATSHRVSubject,
		HeartRateSubject: cfg.NATSHRSubject,
		QueueName:        cfg.IngestQueueName,
	})

	if err := consumer.Start(nc); err != nil {
		log.Fatalf("Failed to subscribe: %v", err)
	}
	log.Printf("Ingest worker listening on %s and %s (queue %s)", cfg.NATSHRVSubject, cfg.NATSHRSubject, cfg.IngestQueueName)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	log.Println("Shutting down ingest worker...")
	consumer.Stop()
}
