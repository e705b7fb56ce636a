package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/hrvlabs/stress-monitor/internal/domain"
	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
)

var (
	// ErrOpenAIUnavailable indicates the OpenAI service is not configured or unavailable.
	ErrOpenAIUnavailable = errors.New("OpenAI service unavailable")
	// ErrOpenAIRequest indicates an error during the OpenAI API request.
	ErrOpenAIRequest = errors.New("OpenAI request failed")
	// ErrOpenAIResponse indicates an error parsing the OpenAI response.
	ErrOpenAIResponse = errors.New("failed to parse OpenAI response")
)

const defaultSystemPrompt = `You are a non-medical stress tracking assistant.

You receive a user's personal baseline (resting heart rate and baseline HRV), aggregated stress trends, and their most recent stress reading. You must base your conclusions only on the provided data.

Your goals:
- Describe the user's recent stress levels in clear, neutral language.
- Highlight patterns in stress level, HRV, and heart rate across the day and the window.
- Compare the recent week to the longer history.
- Relate readings to the user's personal baseline where that helps explain them.
- Give practical, behavioral suggestions to manage everyday stress.

Rules:
- Do NOT provide medical advice or diagnoses.
- Do NOT mention diseases, disorders, doctors, or treatment.
- Focus only on behavior and routines (breaks, breathing exercises, sleep regularity, screen habits, etc.).
- If data is limited or mixed, say that explicitly.
- Be concise and concrete.

You must respond as strict JSON with exactly this shape:

{
  "summary": "2-3 sentences summarizing the user's stress, comparing the recent window to the longer history.",
  "observations": [
    "3-6 bullet points about patterns in stress level, HRV, heart rate, and daily distribution.",
    "At least one item comparing the recent window to the longer history.",
    "If relevant, one item about how readings sit relative to the personal baseline."
  ],
  "guidance": [
    "3-5 concrete, non-medical suggestions tailored to these numbers.",
    "Include at least one suggestion about recovery habits if stress has been elevated.",
    "Include at least one suggestion about daily routine if the daily distribution is uneven."
  ]
}

No extra fields. No comments. No backticks.`

const userPromptTemplate = `Here is JSON describing this user's stress data.

- "baseline" is their personal reference point (resting heart rate in bpm, baseline HRV in ms).
- "history" and "recent" each contain:
  - per-reading statistics (stress level, HRV, heart rate),
  - a breakdown of readings across the four stress bands,
  - daily average levels.
- "latest" is the most recent scored reading, if any.

Use:
- "history" to understand the long-term picture (about 30 days),
- "recent" to see short-term changes (about 7 days),
- "latest" to judge how the current moment compares to both.

JSON:

%s

Based on this data, respond in the required JSON format.`

// InsightsLLM is the interface for generating stress insights using an LLM.
type InsightsLLM interface {
	// GenerateInsights takes a context object and returns LLM-generated insights.
	GenerateInsights(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.LLMInsightsOutput, error)
}

// OpenAIClient implements InsightsLLM using the OpenAI API.
type OpenAIClient struct {
	client       openai.Client
	model        string
	systemPrompt string
}

// NewOpenAIClient creates a new OpenAI client for generating insights.
// systemPrompt overrides the built-in prompt when non-empty (e.g. a prompt
// managed in Langfuse). Returns nil if apiKey is empty.
func NewOpenAIClient(apiKey, model, systemPrompt string) *OpenAIClient {
	if apiKey == "" {
		return nil
	}

	if model == "" {
		model = "gpt-4o-mini"
	}
	if systemPrompt == "" {
		systemPrompt = defaultSystemPrompt
	}

	client := openai.NewClient(option.WithAPIKey(apiKey))

	return &OpenAIClient{
		client:       client,
		model:        model,
		systemPrompt: systemPrompt,
	}
}

// GenerateInsights calls OpenAI to generate stress insights.
func (c *OpenAIClient) GenerateInsights(ctx context.Context, insightsCtx *domain.InsightsContext) (*domain.LLMInsightsOutput, error) {
	if c == nil {
		return nil, ErrOpenAIUnavailable
	}

	// Serialize context to JSON
	contextJSON, err := json.MarshalIndent(insightsCtx, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: failed to serialize context: %v", ErrOpenAIRequest, err)
	}

	userPrompt := fmt.Sprintf(userPromptTemplate, string(contextJSON))

	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.SystemMessage(c.systemPrompt),
			openai.UserMessage(userPrompt),
		},
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIRequest, err)
	}

	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("%w: no choices in response", ErrOpenAIResponse)
	}

	content := resp.Choices[0].Message.Content

	var output domain.LLMInsightsOutput
	if err := json.Unmarshal([]byte(content), &output); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrOpenAIResponse, err)
	}

	return &output, nil
}
