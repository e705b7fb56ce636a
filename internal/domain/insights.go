package domain

// LLMInsightsOutput contains the structured output from the LLM.
// @Description LLM-generated stress insights.
type LLMInsightsOutput struct {
	// Summary of stress patterns (2-3 sentences)
	Summary string `json:"summary" example:"Your stress has been mostly mild this week..."`
	// Observations about patterns (3-6 items)
	Observations []string `json:"observations" example:"[\"Morning readings are consistently lower than evening ones\"]"`
	// Actionable guidance (3-5 items)
	Guidance []string `json:"guidance" example:"[\"Schedule short breaks during the afternoon peak\"]"`
}

// InsightsContext is the context object sent to the LLM.
// @Description Context data for LLM insights generation.
type InsightsContext struct {
	Baseline BaselineResponse      `json:"baseline"`
	History  WindowTrends          `json:"history"`
	Recent   WindowTrends          `json:"recent"`
	Latest   *StressResultResponse `json:"latest,omitempty"`
}

// InsightsResponse is the response for the insights endpoint.
// @Description Complete stress insights response.
type InsightsResponse struct {
	// Personal baseline used for scoring
	Baseline BaselineResponse `json:"baseline"`
	// Trends for different time windows
	Trends struct {
		History WindowTrends `json:"history"`
		Recent  WindowTrends `json:"recent"`
	} `json:"trends"`
	// Most recent stress result, if any
	Latest *StressResultResponse `json:"latest,omitempty"`
	// LLM-generated insights
	Insights LLMInsightsOutput `json:"insights"`
	// Trace ID for feedback (optional, only present when Langfuse is enabled)
	TraceID string `json:"trace_id,omitempty" example:"550e8400-e29b-41d4-a716-446655440000"`
}
