package handler

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/langfuse"
	"github.com/hrvlabs/stress-monitor/internal/service"
)

// MockMeasurementService is a mock implementation of MeasurementService
type MockMeasurementService struct {
	storeBatchFunc func(ctx context.Context, userID uuid.UUID, kind service.MeasurementKind, req *domain.CreateMeasurementBatchRequest) (int, bool, error)
	listFunc       func(ctx context.Context, userID uuid.UUID, kind service.MeasurementKind, filter domain.MeasurementFilter) (*domain.MeasurementListResponse, error)
}

func (m *MockMeasurementService) StoreBatch(ctx context.Context, userID uuid.UUID, kind service.MeasurementKind, req *domain.CreateMeasurementBatchRequest) (int, bool, error) {
	if m.storeBatchFunc != nil {
		return m.storeBatchFunc(ctx, userID, kind, req)
	}
	return len(req.Measurements), false, nil
}

func (m *MockMeasurementService) List(ctx context.Context, userID uuid.UUID, kind service.MeasurementKind, filter domain.MeasurementFilter) (*domain.MeasurementListResponse, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, userID, kind, filter)
	}
	return &domain.MeasurementListResponse{
		Data:       []domain.MeasurementResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// MockStressService is a mock implementation of StressService
type MockStressService struct {
	scoreFunc   func(ctx context.Context, userID uuid.UUID, req *domain.ScoreStressRequest) (*domain.StressResult, error)
	historyFunc func(ctx context.Context, userID uuid.UUID, filter domain.StressFilter) (*domain.StressHistoryResponse, error)
}

func (m *MockStressService) Score(ctx context.Context, userID uuid.UUID, req *domain.ScoreStressRequest) (*domain.StressResult, error) {
	if m.scoreFunc != nil {
		return m.scoreFunc(ctx, userID, req)
	}
	return &domain.StressResult{
		ID:         uuid.New(),
		UserID:     userID,
		Level:      17.7,
		Category:   domain.StressRelaxed,
		Confidence: 1.0,
		HRV:        *req.HRV,
		HeartRate:  *req.HeartRate,
		Timestamp:  time.Now().UTC(),
	}, nil
}

func (m *MockStressService) History(ctx context.Context, userID uuid.UUID, filter domain.StressFilter) (*domain.StressHistoryResponse, error) {
	if m.historyFunc != nil {
		return m.historyFunc(ctx, userID, filter)
	}
	return &domain.StressHistoryResponse{
		Data:       []domain.StressResultResponse{},
		Pagination: domain.PaginationResponse{HasMore: false},
	}, nil
}

// MockTrendsService is a mock implementation of TrendsService
type MockTrendsService struct {
	computeFunc       func(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.TrendsResponse, error)
	computeWindowFunc func(ctx context.Context, userID uuid.UUID, from, to time.Time) (*domain.WindowTrends, error)
}

func (m *MockTrendsService) Compute(ctx context.Context, userID uuid.UUID, windowDays int) (*domain.TrendsResponse, error) {
	if m.computeFunc != nil {
		return m.computeFunc(ctx, userID, windowDays)
	}
	return &domain.TrendsResponse{}, nil
}

func (m *MockTrendsService) ComputeWindow(ctx context.Context, userID uuid.UUID, from, to time.Time) (*domain.WindowTrends, error) {
	if m.computeWindowFunc != nil {
		return m.computeWindowFunc(ctx, userID, from, to)
	}
	return &domain.WindowTrends{}, nil
}

// MockBaselineService is a mock implementation of BaselineService
type MockBaselineService struct {
	getFunc         func(ctx context.Context, userID uuid.UUID) (*domain.PersonalBaseline, error)
	recalculateFunc func(ctx context.Context, userID uuid.UUID, force bool) (*domain.PersonalBaseline, bool, error)
}

func (m *MockBaselineService) Get(ctx context.Context, userID uuid.UUID) (*domain.PersonalBaseline, error) {
	if m.getFunc != nil {
		return m.getFunc(ctx, userID)
	}
	baseline := domain.DefaultBaseline(userID)
	return &baseline, nil
}

func (m *MockBaselineService) Recalculate(ctx context.Context, userID uuid.UUID, force bool) (*domain.PersonalBaseline, bool, error) {
	if m.recalculateFunc != nil {
		return m.recalculateFunc(ctx, userID, force)
	}
	return &domain.PersonalBaseline{
		UserID:           userID,
		RestingHeartRate: 58.5,
		BaselineHRV:      52.3,
		SampleCount:      38,
		LastUpdated:      time.Now().UTC(),
	}, true, nil
}

// MockInsightsService is a mock implementation of InsightsService
type MockInsightsService struct {
	generateFunc func(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error)
}

func (m *MockInsightsService) Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error) {
	if m.generateFunc != nil {
		return m.generateFunc(ctx, userID)
	}
	return &domain.InsightsResponse{
		Insights: domain.LLMInsightsOutput{
			Summary:      "Stress has been mostly mild this week.",
			Observations: []string{"Morning readings are lower than evening ones"},
			Guidance:     []string{"Take short breaks in the afternoon"},
		},
	}, nil
}

// MockLangfuseClient is a mock implementation of langfuse.Client
type MockLangfuseClient struct {
	enabled     bool
	scoreInputs []langfuse.ScoreInput
	scoreErr    error
}

func (m *MockLangfuseClient) IsEnabled() bool {
	return m.enabled
}

func (m *MockLangfuseClient) CreateTrace(ctx context.Context, in langfuse.TraceInput) (string, error) {
	return uuid.New().String(), nil
}

func (m *MockLangfuseClient) CreateScore(ctx context.Context, in langfuse.ScoreInput) error {
	m.scoreInputs = append(m.scoreInputs, in)
	return m.scoreErr
}
