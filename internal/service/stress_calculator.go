package service

import (
	"math"
	"time"

	"github.com/hrvlabs/stress-monitor/internal/domain"
)

const (
	// HRVWeight and HRWeight combine the two components into one level.
	// HRV dominates: it is the primary physiological stress indicator.
	HRVWeight = 0.7
	HRWeight  = 0.3

	// HRVCurveExponent shapes the HRV deviation sub-linearly so small drops
	// below baseline register more strongly than linear scaling would.
	HRVCurveExponent = 0.8

	// Confidence penalty factors
	lowHRVThreshold     = 20.0
	lowHRVPenalty       = 0.5
	minPlausibleHR      = 40.0
	maxPlausibleHR      = 180.0
	extremeHRPenalty    = 0.6
	fullConfidenceCount = 10
	minSamplePenalty    = 0.7
)

// StressCalculator converts one (HRV, heart rate) reading plus a personal
// baseline into a stress result. It holds no state; every method is a pure
// function and safe for concurrent use.
type StressCalculator struct{}

// NewStressCalculator creates a new StressCalculator.
func NewStressCalculator() *StressCalculator {
	return &StressCalculator{}
}

// CalculateStress scores a single reading against the given baseline.
// Out-of-range inputs (zero or negative HRV or heart rate) are absorbed by
// the formulas and still produce a level clamped to [0,100]; they are never
// rejected. sampleCount feeds the confidence model and is treated as 1 when
// smaller.
func (c *StressCalculator) CalculateStress(hrv, heartRate float64, baseline domain.PersonalBaseline, sampleCount int) domain.StressResult {
	baselineHRV := baseline.BaselineHRV
	if baselineHRV <= 0 {
		baselineHRV = domain.DefaultBaselineHRV
	}
	restingHR := baseline.RestingHeartRate
	if restingHR <= 0 {
		restingHR = domain.DefaultRestingHeartRate
	}

	// Only lower-than-baseline HRV contributes stress; higher HRV clamps to
	// zero rather than producing negative stress.
	normalizedHRV := clamp((baselineHRV-hrv)/baselineHRV, 0, 1)
	hrvComponent := math.Pow(normalizedHRV, HRVCurveExponent)

	// Signed deviation: below-resting heart rate maps through atan to a
	// negative contribution, which the final clamp absorbs.
	normalizedHR := (heartRate - restingHR) / restingHR
	hrComponent := math.Atan(normalizedHR*2) / (math.Pi / 2)

	level := clamp((hrvComponent*HRVWeight+hrComponent*HRWeight)*100, 0, 100)

	return domain.StressResult{
		UserID:     baseline.UserID,
		Level:      level,
		Category:   domain.CategoryForLevel(level),
		Confidence: c.CalculateConfidence(hrv, heartRate, sampleCount),
		HRV:        hrv,
		HeartRate:  heartRate,
		Timestamp:  time.Now().UTC(),
	}
}

// CalculateConfidence returns a [0,1] trust score for a reading. It starts at
// 1.0 and compounds multiplicative penalties: very low HRV halves it, a heart
// rate outside the plausible band multiplies by 0.6, and sparse sample counts
// ramp linearly from 0.7 at one sample up to 1.0 at ten.
func (c *StressCalculator) CalculateConfidence(hrv, heartRate float64, samples int) float64 {
	confidence := 1.0

	if hrv < lowHRVThreshold {
		confidence *= lowHRVPenalty
	}
	if heartRate < minPlausibleHR || heartRate > maxPlausibleHR {
		confidence *= extremeHRPenalty
	}

	if samples < 1 {
		samples = 1
	}
	if samples < fullConfidenceCount {
		ramp := float64(samples-1) / float64(fullConfidenceCount-1)
		confidence *= minSamplePenalty + (1-minSamplePenalty)*ramp
	}

	return confidence
}

func clamp(v, lo, hi float64) float64 {
	if v < lo || math.IsNaN(v) {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
