package domain

import "time"

// DescriptiveStats holds basic statistical measures.
// @Description Basic statistical measures for a metric.
type DescriptiveStats struct {
	Avg float64 `json:"avg" example:"41.2"`
	Std float64 `json:"std" example:"12.6"`
	Min float64 `json:"min" example:"8.0"`
	Max float64 `json:"max" example:"83.5"`
}

// ReadingMetrics contains per-reading statistics for a window.
// @Description Statistics over all stress readings in a time window.
type ReadingMetrics struct {
	// Stress level statistics (0-100)
	Level DescriptiveStats `json:"level"`
	// HRV input statistics (ms)
	HRV DescriptiveStats `json:"hrv"`
	// Heart rate input statistics (bpm)
	HeartRate DescriptiveStats `json:"heart_rate"`
	// Number of readings in this window
	ReadingCount int `json:"reading_count" example:"64"`
}

// CategoryBreakdown counts readings per stress band.
// @Description Distribution of readings across stress bands.
type CategoryBreakdown struct {
	Relaxed  int `json:"relaxed" example:"30"`
	Mild     int `json:"mild" example:"20"`
	Moderate int `json:"moderate" example:"10"`
	High     int `json:"high" example:"4"`
}

// DailyStressPoint is the average stress for one local day.
// @Description Daily aggregate used for trend charts.
type DailyStressPoint struct {
	// Local date in YYYY-MM-DD format
	Date string `json:"date" example:"2024-01-15"`
	// Average stress level for the day
	AvgLevel float64 `json:"avg_level" example:"38.7"`
	// Number of readings on the day
	ReadingCount int `json:"reading_count" example:"5"`
}

// WindowTrends contains all trend data for a single time window.
// @Description Complete stress trends for a time window.
type WindowTrends struct {
	// Window start date
	From time.Time `json:"from" example:"2024-01-01T00:00:00Z"`
	// Window end date
	To time.Time `json:"to" example:"2024-01-31T23:59:59Z"`
	// Per-reading statistics
	Readings ReadingMetrics `json:"readings"`
	// Distribution across stress bands
	Categories CategoryBreakdown `json:"categories"`
	// Daily averages (oldest first)
	Daily []DailyStressPoint `json:"daily"`
}

// TrendsResponse is the response for the trends endpoint.
// @Description Stress trend response with window statistics.
type TrendsResponse struct {
	// Analysis window
	Window struct {
		From time.Time `json:"from" example:"2024-01-01T00:00:00Z"`
		To   time.Time `json:"to" example:"2024-01-31T23:59:59Z"`
	} `json:"window"`
	// Per-reading statistics
	Readings ReadingMetrics `json:"readings"`
	// Distribution across stress bands
	Categories CategoryBreakdown `json:"categories"`
	// Daily averages (oldest first)
	Daily []DailyStressPoint `json:"daily"`
}

// TrendsRequest contains query parameters for the trends endpoint.
type TrendsRequest struct {
	WindowDays int `json:"window_days" validate:"omitempty,min=1,max=365"`
}
