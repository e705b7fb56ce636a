package domain

import (
	"testing"

	"github.com/google/uuid"
)

func TestCategoryForLevel_Bands(t *testing.T) {
	tests := []struct {
		level float64
		want  StressCategory
	}{
		{0, StressRelaxed},
		{10, StressRelaxed},
		{24.999, StressRelaxed},
		{25, StressMild},
		{37.5, StressMild},
		{49.999, StressMild},
		{50, StressModerate},
		{74.999, StressModerate},
		{75, StressHigh},
		{99, StressHigh},
		{100, StressHigh},
	}

	for _, tt := range tests {
		if got := CategoryForLevel(tt.level); got != tt.want {
			t.Errorf("CategoryForLevel(%v) = %v, want %v", tt.level, got, tt.want)
		}
	}
}

func TestDefaultBaseline(t *testing.T) {
	b := DefaultBaseline(uuid.New())

	if b.RestingHeartRate != DefaultRestingHeartRate {
		t.Errorf("RestingHeartRate = %v, want %v", b.RestingHeartRate, DefaultRestingHeartRate)
	}
	if b.BaselineHRV != DefaultBaselineHRV {
		t.Errorf("BaselineHRV = %v, want %v", b.BaselineHRV, DefaultBaselineHRV)
	}
	if b.LastUpdated.IsZero() {
		t.Error("LastUpdated should be stamped")
	}
	if !b.ToResponse().IsDefault {
		t.Error("default baseline should report IsDefault")
	}
}
