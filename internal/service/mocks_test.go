package service

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/hrvlabs/stress-monitor/internal/domain"
)

// MockUserRepository is a mock implementation of UserRepository
type MockUserRepository struct {
	users map[uuid.UUID]*domain.User
	err   error
}

func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{
		users: make(map[uuid.UUID]*domain.User),
	}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.err != nil {
		return m.err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	m.users[user.ID] = user
	return nil
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if m.err != nil {
		return nil, m.err
	}
	user, ok := m.users[id]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return user, nil
}

func (m *MockUserRepository) Exists(ctx context.Context, id uuid.UUID) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	_, ok := m.users[id]
	return ok, nil
}

func (m *MockUserRepository) SetError(err error) {
	m.err = err
}

// MockMeasurementRepository is a mock implementation of MeasurementRepository
type MockMeasurementRepository struct {
	hrv              []domain.HRVMeasurement
	heartRate        []domain.HeartRateSample
	clientRequestIDs map[string]bool
	err              error
}

func NewMockMeasurementRepository() *MockMeasurementRepository {
	return &MockMeasurementRepository{
		clientRequestIDs: make(map[string]bool),
	}
}

func (m *MockMeasurementRepository) CreateHRVBatch(ctx context.Context, measurements []domain.HRVMeasurement) error {
	if m.err != nil {
		return m.err
	}
	for i := range measurements {
		if measurements[i].ID == uuid.Nil {
			measurements[i].ID = uuid.New()
		}
		if measurements[i].ClientRequestID != nil {
			key := measurements[i].UserID.String() + ":" + *measurements[i].ClientRequestID
			m.clientRequestIDs[key] = true
		}
	}
	m.hrv = append(m.hrv, measurements...)
	return nil
}

func (m *MockMeasurementRepository) CreateHeartRateBatch(ctx context.Context, samples []domain.HeartRateSample) error {
	if m.err != nil {
		return m.err
	}
	for i := range samples {
		if samples[i].ID == uuid.Nil {
			samples[i].ID = uuid.New()
		}
		if samples[i].ClientRequestID != nil {
			key := samples[i].UserID.String() + ":" + *samples[i].ClientRequestID
			m.clientRequestIDs[key] = true
		}
	}
	m.heartRate = append(m.heartRate, samples...)
	return nil
}

func (m *MockMeasurementRepository) ListHRV(ctx context.Context, userID uuid.UUID, filter domain.MeasurementFilter) ([]domain.HRVMeasurement, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.HRVMeasurement
	for _, mm := range m.hrv {
		if mm.UserID == userID {
			result = append(result, mm)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	return result, nil
}

func (m *MockMeasurementRepository) ListHeartRate(ctx context.Context, userID uuid.UUID, filter domain.MeasurementFilter) ([]domain.HeartRateSample, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.HeartRateSample
	for _, s := range m.heartRate {
		if s.UserID == userID {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.After(result[j].RecordedAt)
	})
	return result, nil
}

func (m *MockMeasurementRepository) ListHRVByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HRVMeasurement, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.HRVMeasurement
	for _, mm := range m.hrv {
		if mm.UserID == userID && !mm.RecordedAt.Before(from) && !mm.RecordedAt.After(to) {
			result = append(result, mm)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.Before(result[j].RecordedAt)
	})
	return result, nil
}

func (m *MockMeasurementRepository) ListHeartRateByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.HeartRateSample, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.HeartRateSample
	for _, s := range m.heartRate {
		if s.UserID == userID && !s.RecordedAt.Before(from) && !s.RecordedAt.After(to) {
			result = append(result, s)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RecordedAt.Before(result[j].RecordedAt)
	})
	return result, nil
}

func (m *MockMeasurementRepository) CountHRVSince(ctx context.Context, userID uuid.UUID, since time.Time) (int64, error) {
	if m.err != nil {
		return 0, m.err
	}
	var count int64
	for _, mm := range m.hrv {
		if mm.UserID == userID && mm.RecordedAt.After(since) {
			count++
		}
	}
	return count, nil
}

func (m *MockMeasurementRepository) HasClientRequestID(ctx context.Context, userID uuid.UUID, clientRequestID string) (bool, error) {
	if m.err != nil {
		return false, m.err
	}
	return m.clientRequestIDs[userID.String()+":"+clientRequestID], nil
}

func (m *MockMeasurementRepository) SetError(err error) {
	m.err = err
}

// MockBaselineRepository is a mock implementation of BaselineRepository
type MockBaselineRepository struct {
	baselines map[uuid.UUID]*domain.PersonalBaseline
	err       error
}

func NewMockBaselineRepository() *MockBaselineRepository {
	return &MockBaselineRepository{
		baselines: make(map[uuid.UUID]*domain.PersonalBaseline),
	}
}

func (m *MockBaselineRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*domain.PersonalBaseline, error) {
	if m.err != nil {
		return nil, m.err
	}
	baseline, ok := m.baselines[userID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	copied := *baseline
	return &copied, nil
}

func (m *MockBaselineRepository) Upsert(ctx context.Context, baseline *domain.PersonalBaseline) error {
	if m.err != nil {
		return m.err
	}
	if baseline.ID == uuid.Nil {
		baseline.ID = uuid.New()
	}
	copied := *baseline
	m.baselines[baseline.UserID] = &copied
	return nil
}

func (m *MockBaselineRepository) SetError(err error) {
	m.err = err
}

// MockStressResultRepository is a mock implementation of StressResultRepository
type MockStressResultRepository struct {
	results []domain.StressResult
	err     error
}

func NewMockStressResultRepository() *MockStressResultRepository {
	return &MockStressResultRepository{}
}

func (m *MockStressResultRepository) Create(ctx context.Context, result *domain.StressResult) error {
	if m.err != nil {
		return m.err
	}
	if result.ID == uuid.Nil {
		result.ID = uuid.New()
	}
	m.results = append(m.results, *result)
	return nil
}

func (m *MockStressResultRepository) List(ctx context.Context, userID uuid.UUID, filter domain.StressFilter) ([]domain.StressResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.StressResult
	for _, r := range m.results {
		if r.UserID == userID {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})
	return result, nil
}

func (m *MockStressResultRepository) ListByRange(ctx context.Context, userID uuid.UUID, from, to time.Time) ([]domain.StressResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	var result []domain.StressResult
	for _, r := range m.results {
		if r.UserID == userID && !r.Timestamp.Before(from) && !r.Timestamp.After(to) {
			result = append(result, r)
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})
	return result, nil
}

func (m *MockStressResultRepository) Latest(ctx context.Context, userID uuid.UUID) (*domain.StressResult, error) {
	if m.err != nil {
		return nil, m.err
	}
	var latest *domain.StressResult
	for i := range m.results {
		r := &m.results[i]
		if r.UserID != userID {
			continue
		}
		if latest == nil || r.Timestamp.After(latest.Timestamp) {
			latest = r
		}
	}
	if latest == nil {
		return nil, domain.ErrNotFound
	}
	copied := *latest
	return &copied, nil
}

func (m *MockStressResultRepository) SetError(err error) {
	m.err = err
}

// MockInsightsLLM is a mock implementation of llm.InsightsLLM
type MockInsightsLLM struct {
	output *domain.LLMInsightsOutput
	err    error
}

func (m *MockInsightsLLM) GenerateInsights(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.LLMInsightsOutput, error) {
	if m.err != nil {
		return nil, m.err
	}
	if m.output != nil {
		return m.output, nil
	}
	return &domain.LLMInsightsOutput{
		Summary:      "Stress has been mostly mild over the past week.",
		Observations: []string{"Morning readings tend to be lower"},
		Guidance:     []string{"Keep a consistent sleep schedule"},
	}, nil
}

// Helper functions
func strPtr(s string) *string {
	return &s
}

func floatPtr(f float64) *float64 {
	return &f
}
