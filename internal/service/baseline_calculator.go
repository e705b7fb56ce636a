package service

import (
	"math"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"gonum.org/v1/gonum/stat"
)

const (
	// DefaultMinimumSampleCount is the minimum HRV batch size for a baseline.
	DefaultMinimumSampleCount = 30
	// DefaultBaselineWindowDays is the history window for baseline samples.
	DefaultBaselineWindowDays = 30

	// Outlier filtering is skipped below this batch size to avoid throwing
	// away real data from sparse batches.
	minSamplesForFiltering = 5

	// Modified z-score cutoff for outlier rejection (Iglewicz-Hoaglin).
	outlierZScoreCutoff = 3.5
	madScaleFactor      = 0.6745

	// Floor for the MAD denominator, in ms. Very tight clusters otherwise
	// produce a near-zero MAD and reject physiologically normal values a
	// few ms off the median.
	minMADMilliseconds = 1.0

	// Resting HR is the mean of the lowest quartile of samples.
	restingHRQuantile = 0.25

	// Update policy: a baseline is stale after a week, and enough fresh
	// samples force an early update.
	baselineStaleAfter        = 7 * 24 * time.Hour
	samplesForcingEarlyUpdate = 10
)

// BaselineCalculator derives a personal baseline from a window of historical
// HRV and heart-rate samples. It is configured once at construction and holds
// no other state, so it is safe to share across goroutines.
type BaselineCalculator struct {
	minimumSampleCount int
	timeWindowDays     int
}

// NewBaselineCalculator creates a BaselineCalculator. Non-positive arguments
// fall back to the defaults.
func NewBaselineCalculator(minimumSampleCount, timeWindowDays int) *BaselineCalculator {
	if minimumSampleCount <= 0 {
		minimumSampleCount = DefaultMinimumSampleCount
	}
	if timeWindowDays <= 0 {
		timeWindowDays = DefaultBaselineWindowDays
	}
	return &BaselineCalculator{
		minimumSampleCount: minimumSampleCount,
		timeWindowDays:     timeWindowDays,
	}
}

// MinimumSampleCount returns the configured minimum batch size.
func (c *BaselineCalculator) MinimumSampleCount() int {
	return c.minimumSampleCount
}

// TimeWindowDays returns the configured history window in days.
func (c *BaselineCalculator) TimeWindowDays() int {
	return c.timeWindowDays
}

// CalculateBaseline turns a batch of HRV measurements into a baseline.
// Returns domain.ErrInsufficientSamples when the batch is smaller than the
// configured minimum; no partial baseline is produced in that case. The
// resting heart rate defaults to 60 bpm here; callers with heart-rate data
// override it via CalculateRestingHeartRate.
func (c *BaselineCalculator) CalculateBaseline(userID uuid.UUID, measurements []domain.HRVMeasurement) (domain.PersonalBaseline, error) {
	if len(measurements) < c.minimumSampleCount {
		return domain.PersonalBaseline{}, domain.ErrInsufficientSamples
	}

	filtered := c.FilterOutliers(measurements)

	values := make([]float64, len(filtered))
	for i, m := range filtered {
		values[i] = m.Value
	}

	return domain.PersonalBaseline{
		UserID:           userID,
		RestingHeartRate: domain.DefaultRestingHeartRate,
		BaselineHRV:      stat.Mean(values, nil),
		SampleCount:      len(filtered),
		LastUpdated:      time.Now().UTC(),
	}, nil
}

// FilterOutliers removes statistically implausible values from a batch.
// Pure function: batches below minSamplesForFiltering are returned unchanged,
// larger ones drop values whose modified z-score (median/MAD based, so a
// couple of gross outliers cannot mask each other) exceeds the cutoff. The
// MAD is floored at minMADMilliseconds so degenerate or near-constant
// batches reject only genuinely implausible values, not normal jitter.
func (c *BaselineCalculator) FilterOutliers(measurements []domain.HRVMeasurement) []domain.HRVMeasurement {
	if len(measurements) < minSamplesForFiltering {
		return measurements
	}

	values := make([]float64, len(measurements))
	for i, m := range measurements {
		values[i] = m.Value
	}

	med := median(values)
	mad := math.Max(medianAbsoluteDeviation(values, med), minMADMilliseconds)

	filtered := make([]domain.HRVMeasurement, 0, len(measurements))
	for _, m := range measurements {
		score := madScaleFactor * (m.Value - med) / mad
		if math.Abs(score) <= outlierZScoreCutoff {
			filtered = append(filtered, m)
		}
	}
	return filtered
}

// CalculateRestingHeartRate estimates the resting heart rate from a batch of
// samples: the mean of the lowest quartile, which tolerates single noisy
// minimums better than min() while still tracking the low end. With one or
// two samples the quartile collapses to the minimum. Empty input yields the
// default resting rate.
func (c *BaselineCalculator) CalculateRestingHeartRate(samples []domain.HeartRateSample) float64 {
	if len(samples) == 0 {
		return domain.DefaultRestingHeartRate
	}

	values := make([]float64, len(samples))
	for i, s := range samples {
		values[i] = s.Value
	}
	sort.Float64s(values)

	bottom := int(math.Ceil(float64(len(values)) * restingHRQuantile))
	if bottom < 1 {
		bottom = 1
	}

	return stat.Mean(values[:bottom], nil)
}

// ShouldUpdateBaseline decides whether a baseline needs recomputation:
// staleness and accumulated sample volume are each independently sufficient.
func (c *BaselineCalculator) ShouldUpdateBaseline(lastUpdate time.Time, newSamples int) bool {
	if time.Since(lastUpdate) >= baselineStaleAfter {
		return true
	}
	return newSamples >= samplesForcingEarlyUpdate
}

func median(values []float64) float64 {
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

func medianAbsoluteDeviation(values []float64, med float64) float64 {
	deviations := make([]float64, len(values))
	for i, v := range values {
		deviations[i] = math.Abs(v - med)
	}
	return median(deviations)
}
