package service

import (
	"context"
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/repository"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultTrendsWindowDays is the default window for trend calculation.
	DefaultTrendsWindowDays = 30
)

// TrendsService computes stress trend statistics from stored results.
type TrendsService interface {
	// Compute calculates trends for a user over the given window.
	Compute(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.TrendsResponse, error)
	// ComputeWindow calculates WindowTrends for a specific time range.
	ComputeWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (*domain.WindowTrends, error)
}

type trendsService struct {
	resultRepo repository.StressResultRepository
	userRepo   repository.UserRepository
}

// NewTrendsService creates a new TrendsService.
func NewTrendsService(resultRepo repository.StressResultRepository, userRepo repository.UserRepository) TrendsService {
	return &trendsService{
		resultRepo: resultRepo,
		userRepo:   userRepo,
	}
}

func (s *trendsService) Compute(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.TrendsResponse, error) {
	// Validate user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	if windowDays <= 0 {
		windowDays = DefaultTrendsWindowDays
	}

	now := time.Now().UTC()
	from := now.AddDate(0, 0, -windowDays)

	windowTrends, err := s.ComputeWindow(ctx, userID, from, now)
	if err != nil {
		return nil, err
	}

	response := &domain.TrendsResponse{
		Readings:   windowTrends.Readings,
		Categories: windowTrends.Categories,
		Daily:      windowTrends.Daily,
	}
	response.Window.From = windowTrends.From
	response.Window.To = windowTrends.To

	return response, nil
}

func (s *trendsService) ComputeWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (*domain.WindowTrends, error) {
	tracer := otel.Tracer("stress-monitor-api/trends")
	ctx, span := tracer.Start(ctx, "TrendsService.ComputeWindow",
		trace.WithAttributes(
			attribute.String("user.id", userID.String()),
			attribute.String("window.from", from.Format(time.RFC3339)),
			attribute.String("window.to", to.Format(time.RFC3339)),
		),
	)
	defer span.End()

	windowDays := int(to.Sub(from).Hours() / 24)
	if windowDays < 1 {
		windowDays = 1
	}
	span.SetAttributes(
		attribute.Int("window.days", windowDays),
		attribute.String("window.description", fmt.Sprintf("%dd window", windowDays)),
	)

	// Attach input payload for Langfuse
	inputPayload := map[string]any{
		"user_id":     userID.String(),
		"from":        from.Format(time.RFC3339),
		"to":          to.Format(time.RFC3339),
		"window_days": windowDays,
	}
	if inputJSON, err := json.Marshal(inputPayload); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.input", string(inputJSON)))
	}

	results, err := s.resultRepo.ListByRange(ctx, userID, from, to)
	if err != nil {
		return nil, err
	}

	trends := &domain.WindowTrends{
		From:       from,
		To:         to,
		Readings:   computeReadingMetrics(results),
		Categories: computeCategoryBreakdown(results),
		Daily:      computeDailyPoints(results),
	}

	// Attach output payload for Langfuse
	if outputJSON, err := json.Marshal(trends); err == nil {
		span.SetAttributes(attribute.String("langfuse.observation.output", string(outputJSON)))
	}

	return trends, nil
}

// computeReadingMetrics calculates per-reading statistics for a window.
func computeReadingMetrics(results []domain.StressResult) domain.ReadingMetrics {
	metrics := domain.ReadingMetrics{ReadingCount: len(results)}
	if len(results) == 0 {
		return metrics
	}

	levels := make([]float64, len(results))
	hrvs := make([]float64, len(results))
	heartRates := make([]float64, len(results))
	for i, r := range results {
		levels[i] = r.Level
		hrvs[i] = r.HRV
		heartRates[i] = r.HeartRate
	}

	metrics.Level = computeStats(levels)
	metrics.HRV = computeStats(hrvs)
	metrics.HeartRate = computeStats(heartRates)
	return metrics
}

// computeCategoryBreakdown counts readings per stress band.
func computeCategoryBreakdown(results []domain.StressResult) domain.CategoryBreakdown {
	var breakdown domain.CategoryBreakdown
	for _, r := range results {
		switch r.Category {
		case domain.StressRelaxed:
			breakdown.Relaxed++
		case domain.StressMild:
			breakdown.Mild++
		case domain.StressModerate:
			breakdown.Moderate++
		case domain.StressHigh:
			breakdown.High++
		}
	}
	return breakdown
}

// computeDailyPoints groups results by UTC day and averages the level.
func computeDailyPoints(results []domain.StressResult) []domain.DailyStressPoint {
	if len(results) == 0 {
		return nil
	}

	type dayAgg struct {
		sum   float64
		count int
	}
	days := make(map[string]*dayAgg)
	for _, r := range results {
		date := r.Timestamp.UTC().Format("2006-01-02")
		agg, ok := days[date]
		if !ok {
			agg = &dayAgg{}
			days[date] = agg
		}
		agg.sum += r.Level
		agg.count++
	}

	points := make([]domain.DailyStressPoint, 0, len(days))
	for date, agg := range days {
		points = append(points, domain.DailyStressPoint{
			Date:         date,
			AvgLevel:     math.Round(agg.sum/float64(agg.count)*100) / 100,
			ReadingCount: agg.count,
		})
	}

	sort.Slice(points, func(i, j int) bool {
		return points[i].Date < points[j].Date
	})
	return points
}

// computeStats calculates descriptive statistics for a slice of values.
func computeStats(values []float64) domain.DescriptiveStats {
	if len(values) == 0 {
		return domain.DescriptiveStats{}
	}

	minVal := values[0]
	maxVal := values[0]
	for _, v := range values {
		minVal = math.Min(minVal, v)
		maxVal = math.Max(maxVal, v)
	}

	std := 0.0
	if len(values) > 1 {
		std = stat.StdDev(values, nil)
	}

	return domain.DescriptiveStats{
		Avg: math.Round(stat.Mean(values, nil)*100) / 100,
		Std: math.Round(std*100) / 100,
		Min: math.Round(minVal*100) / 100,
		Max: math.Round(maxVal*100) / 100,
	}
}
