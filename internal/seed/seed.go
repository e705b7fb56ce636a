package seed

import (
	"fmt"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/hrvlabs/stress-monitor/internal/domain"
)

const (
	seededDays       = 40
	samplesPerDay    = 3
	hrSamplesPerDay  = 6
	scoredPerDay     = 2
	seededSampleBase = 52.0
)

// Run seeds the database with sample users, measurements, baselines, and
// stress results. Safe to call multiple times.
func Run(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&domain.User{},
		&domain.HRVMeasurement{},
		&domain.HeartRateSample{},
		&domain.PersonalBaseline{},
		&domain.StressResult{},
	); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}

	users := []domain.User{
		{ID: uuid.MustParse("11111111-1111-1111-1111-111111111111"), DisplayName: "Demo Amsterdam", Timezone: "Europe/Amsterdam", WearableModel: "Watch Series 9"},
		{ID: uuid.MustParse("22222222-2222-2222-2222-222222222222"), DisplayName: "Demo New York", Timezone: "America/New_York", WearableModel: "Polar H10"},
		{ID: uuid.MustParse("33333333-3333-3333-3333-333333333333"), DisplayName: "Demo Tokyo", Timezone: "Asia/Tokyo", WearableModel: "Garmin Venu 3"},
	}

	for _, user := range users {
		if err := db.Where("id = ?", user.ID).FirstOrCreate(&user).Error; err != nil {
			return fmt.Errorf("failed to create user %s: %w", user.ID, err)
		}
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	for i, user := range users {
		// Stagger the users so their baselines differ
		baseHRV := seededSampleBase + float64(i*6)
		restingHR := 56.0 + float64(i*4)
		if err := seedUserData(db, user, baseHRV, restingHR, rng); err != nil {
			return err
		}
	}

	log.Println("Seed completed")
	return nil
}

func seedUserData(db *gorm.DB, user domain.User, baseHRV, restingHR float64, rng *rand.Rand) error {
	now := time.Now().UTC()

	var hrvValues []float64
	for day := 0; day < seededDays; day++ {
		date := now.AddDate(0, 0, -day)

		for s := 0; s < samplesPerDay; s++ {
			recorded := time.Date(date.Year(), date.Month(), date.Day(), 6+s*6, rng.Intn(60), 0, 0, time.UTC)
			value := baseHRV + rng.Float64()*10 - 5
			hrvValues = append(hrvValues, value)

			clientReqID := fmt.Sprintf("seed-hrv-%s-%d-%d", user.ID, day, s)
			sample := domain.HRVMeasurement{
				UserID:          user.ID,
				Value:           math.Round(value*10) / 10,
				RecordedAt:      recorded,
				Source:          domain.SourceHealthSync,
				ClientRequestID: &clientReqID,
			}
			if err := db.Where("client_request_id = ?", clientReqID).FirstOrCreate(&sample).Error; err != nil {
				return fmt.Errorf("failed to create hrv sample: %w", err)
			}
		}

		for s := 0; s < hrSamplesPerDay; s++ {
			recorded := time.Date(date.Year(), date.Month(), date.Day(), 2+s*4, rng.Intn(60), 0, 0, time.UTC)
			// Night samples sit near the resting rate, daytime ones above it
			value := restingHR + 4 + rng.Float64()*24
			if s == 0 || s == 1 {
				value = restingHR + rng.Float64()*4
			}

			clientReqID := fmt.Sprintf("seed-hr-%s-%d-%d", user.ID, day, s)
			sample := domain.HeartRateSample{
				UserID:          user.ID,
				Value:           math.Round(value),
				RecordedAt:      recorded,
				Source:          domain.SourceHealthSync,
				ClientRequestID: &clientReqID,
			}
			if err := db.Where("client_request_id = ?", clientReqID).FirstOrCreate(&sample).Error; err != nil {
				return fmt.Errorf("failed to create hr sample: %w", err)
			}
		}
	}

	var mean float64
	for _, v := range hrvValues {
		mean += v
	}
	mean /= float64(len(hrvValues))

	baseline := domain.PersonalBaseline{
		UserID:           user.ID,
		RestingHeartRate: restingHR,
		BaselineHRV:      math.Round(mean*10) / 10,
		SampleCount:      len(hrvValues),
		LastUpdated:      now.Add(-24 * time.Hour),
	}
	if err := db.Where("user_id = ?", user.ID).FirstOrCreate(&baseline).Error; err != nil {
		return fmt.Errorf("failed to create baseline: %w", err)
	}

	// A thin score history so trends and insights render immediately
	for day := 0; day < seededDays; day++ {
		date := now.AddDate(0, 0, -day)
		for s := 0; s < scoredPerDay; s++ {
			ts := time.Date(date.Year(), date.Month(), date.Day(), 9+s*8, rng.Intn(60), 0, 0, time.UTC)
			level := math.Round(rng.Float64()*6000) / 100
			result := domain.StressResult{
				UserID:     user.ID,
				Level:      level,
				Category:   domain.CategoryForLevel(level),
				Confidence: 1.0,
				HRV:        math.Round((baseHRV-level/4)*10) / 10,
				HeartRate:  math.Round(restingHR + level/3),
				Timestamp:  ts,
			}
			if err := db.Where("user_id = ? AND timestamp = ?", user.ID, ts).FirstOrCreate(&result).Error; err != nil {
				return fmt.Errorf("failed to create stress result: %w", err)
			}
		}
	}

	return nil
}
