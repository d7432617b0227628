package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"regexp"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

// ─── Types ────────────────────────────────────────────────────────────────────

type DayPlan struct {
	Day           int     `json:"day"`
	Title         string  `json:"title"`
	Morning       string  `json:"morning"`
	Afternoon     string  `json:"afternoon"`
	Evening       string  `json:"evening"`
	EstimatedCost float64 `json:"estimated_cost"`
}

type BudgetBreakdown struct {
	Transport  float64 `json:"transport"`
	Stay       float64 `json:"stay"`
	Food       float64 `json:"food"`
	Activities float64 `json:"activities"`
}

type Itinerary struct {
	Days            []DayPlan       `json:"days"`
	Tips            []string        `json:"tips"`
	BestAttractions []string        `json:"best_attractions"`
	BudgetBreakdown BudgetBreakdown `json:"budget_breakdown"`
}

// MinimumBudget is the floor below which trip generation is rejected.
const MinimumBudget = 1000

// SplitBudget computes the fixed four-way allocation: 40% transport,
// 35% stay, 15% food, 10% activities. Deterministic; never depends on the
// model's output.
func SplitBudget(budget float64) BudgetBreakdown {
	return BudgetBreakdown{
		Transport:  budget * 0.40,
		Stay:       budget * 0.35,
		Food:       budget * 0.15,
		Activities: budget * 0.10,
	}
}

// ─── Client ───────────────────────────────────────────────────────────────────

const defaultModel = "google/gemini-2.5-flash"

// ItineraryClient generates day-by-day trip plans via an OpenAI-compatible
// chat gateway. Unlike the search adapters, generation failures are surfaced
// to the caller: a fabricated itinerary is never silently substituted.
type ItineraryClient struct {
	client *openai.Client
	model  string
	apiKey string
}

func NewItineraryClient(apiKey, baseURL, model string) *ItineraryClient {
	if model == "" {
		model = defaultModel
	}

	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{
		Timeout: 60 * time.Second,
	}

	return &ItineraryClient{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
		apiKey: apiKey,
	}
}

// Generate produces a validated itinerary for the destination. days must be
// at least 1 and budget at least MinimumBudget; the budget breakdown is
// computed locally and attached to whatever plan the model returns.
func (c *ItineraryClient) Generate(ctx context.Context, destination string, days int, budget float64) (*Itinerary, error) {
	if days < 1 {
		return nil, &ValidationError{Field: "days", Reason: "trip must span at least one day"}
	}
	if budget < MinimumBudget {
		return nil, &ValidationError{Field: "budget", Reason: fmt.Sprintf("must be at least %d", MinimumBudget)}
	}
	if c.apiKey == "" {
		return nil, &ConfigError{Service: "itinerary"}
	}

	breakdown := SplitBudget(budget)

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: "You are an expert Indian travel planner. Always respond with valid JSON only, no markdown or extra text.",
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: buildItineraryPrompt(destination, days, budget),
			},
		},
	})
	if err != nil {
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			return nil, &ProviderError{Service: "itinerary", StatusCode: apiErr.HTTPStatusCode, Message: apiErr.Message}
		}
		return nil, &ProviderError{Service: "itinerary", Message: err.Error()}
	}

	if len(resp.Choices) == 0 {
		return nil, &ParseError{Service: "itinerary", Err: errors.New("empty completion")}
	}

	itinerary, err := parseItinerary(resp.Choices[0].Message.Content)
	if err != nil {
		return nil, err
	}

	// The model's day count is advisory; a mismatch is worth a diagnostic
	// but not a failure.
	if len(itinerary.Days) != days {
		log.Printf("itinerary for %s: model returned %d days, %d requested", destination, len(itinerary.Days), days)
	}

	itinerary.BudgetBreakdown = breakdown
	return itinerary, nil
}

func buildItineraryPrompt(destination string, days int, budget float64) string {
	return fmt.Sprintf(`Create a detailed %d-day travel itinerary for %s, India with a budget of ₹%.0f.

Include:
- Day-wise breakdown with morning, afternoon, and evening activities
- Top attractions and their estimated costs
- Local food recommendations
- Transportation tips
- Budget allocation (40%% transport, 35%% stay, 15%% food, 10%% activities)
- Best times to visit each place
- Cultural tips and important information

Format the response as a structured JSON with the following schema:
{
  "days": [
    {
      "day": 1,
      "title": "Day title",
      "morning": "Activity description",
      "afternoon": "Activity description",
      "evening": "Activity description",
      "estimated_cost": 5000
    }
  ],
  "budget_breakdown": {
    "transport": 40000,
    "stay": 35000,
    "food": 15000,
    "activities": 10000
  },
  "tips": ["Tip 1", "Tip 2"],
  "best_attractions": ["Attraction 1", "Attraction 2"]
}`, days, destination, budget)
}

var codeFenceRe = regexp.MustCompile("```(?:json)?\n?")

// parseItinerary cleans and validates the model's raw response. Every day
// entry must deserialize fully; there are no partial-day records.
func parseItinerary(raw string) (*Itinerary, error) {
	clean := strings.TrimSpace(codeFenceRe.ReplaceAllString(raw, ""))

	var payload struct {
		Days            []DayPlan `json:"days"`
		Tips            []string  `json:"tips"`
		BestAttractions []string  `json:"best_attractions"`
		// budget_breakdown intentionally ignored: the persisted split is
		// always computed locally so budget math stays auditable.
	}
	if err := json.Unmarshal([]byte(clean), &payload); err != nil {
		return nil, &ParseError{Service: "itinerary", Err: err}
	}

	if len(payload.Days) == 0 {
		return nil, &ParseError{Service: "itinerary", Err: errors.New("no day plans in response")}
	}

	for i, d := range payload.Days {
		if d.Day < 1 || d.Title == "" || d.Morning == "" || d.Afternoon == "" || d.Evening == "" {
			return nil, &ParseError{Service: "itinerary", Err: fmt.Errorf("day entry %d is incomplete", i+1)}
		}
		if d.EstimatedCost < 0 {
			return nil, &ParseError{Service: "itinerary", Err: fmt.Errorf("day entry %d has negative cost", i+1)}
		}
	}

	if payload.Tips == nil {
		payload.Tips = []string{}
	}
	if payload.BestAttractions == nil {
		payload.BestAttractions = []string{}
	}

	return &Itinerary{
		Days:            payload.Days,
		Tips:            payload.Tips,
		BestAttractions: payload.BestAttractions,
	}, nil
}
