package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/hrvlabs/stress-monitor/internal/llm"
	"github.com/hrvlabs/stress-monitor/internal/repository"
)

const (
	// Window sizes for insights
	HistoryWindowDays = 30
	RecentWindowDays  = 7
)

// InsightsService generates comprehensive stress insights.
type InsightsService interface {
	// Generate creates stress insights for a user.
	Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error)
}

type insightsService struct {
	baselineService BaselineService
	trendsService   TrendsService
	llmClient       llm.InsightsLLM
	resultRepo      repository.StressResultRepository
	userRepo        repository.UserRepository
}

// NewInsightsService creates a new InsightsService.
func NewInsightsService(
	baselineService BaselineService,
	trendsService TrendsService,
	llmClient llm.InsightsLLM,
	resultRepo repository.StressResultRepository,
	userRepo repository.UserRepository,
) InsightsService {
	return &insightsService{
		baselineService: baselineService,
		trendsService:   trendsService,
		llmClient:       llmClient,
		resultRepo:      resultRepo,
		userRepo:        userRepo,
	}
}

func (s *insightsService) Generate(ctx context.Context, userID uuid.UUID) (*domain.InsightsResponse, error) {
	// Validate user exists
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, domain.ErrNotFound
	}

	now := time.Now().UTC()

	baseline, err := s.baselineService.Get(ctx, userID)
	if err != nil {
		return nil, err
	}

	historyFrom := now.AddDate(0, 0, -HistoryWindowDays)
	history, err := s.trendsService.ComputeWindow(ctx, userID, historyFrom, now)
	if err != nil {
		return nil, err
	}

	recentFrom := now.AddDate(0, 0, -RecentWindowDays)
	recent, err := s.trendsService.ComputeWindow(ctx, userID, recentFrom, now)
	if err != nil {
		return nil, err
	}

	var latest *domain.StressResultResponse
	latestResult, err := s.resultRepo.Latest(ctx, userID)
	if err != nil && err != domain.ErrNotFound {
		return nil, err
	}
	if latestResult != nil {
		resp := latestResult.ToResponse()
		latest = &resp
	}

	insightsCtx := &domain.InsightsContext{
		Baseline: baseline.ToResponse(),
		History:  *history,
		Recent:   *recent,
		Latest:   latest,
	}

	llmOutput, err := s.llmClient.GenerateInsights(ctx, insightsCtx)
	if err != nil {
		return nil, err
	}

	response := &domain.InsightsResponse{
		Baseline: baseline.ToResponse(),
		Latest:   latest,
		Insights: *llmOutput,
	}
	response.Trends.History = *history
	response.Trends.Recent = *recent

	return response, nil
}
